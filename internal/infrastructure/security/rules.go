package security

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nlshell/nlsh/assets"
	"github.com/nlshell/nlsh/internal/domain"
)

// Rule is one entry in the safety catalog. Either Pattern (a regex over the
// normalized segment) or Command (an exact first-token match, used by the
// safe allowlist) must be set. Rules are loaded once at startup and never
// mutated afterwards.
type Rule struct {
	ID        string `yaml:"id"`
	Level     string `yaml:"level"`
	Pattern   string `yaml:"pattern,omitempty"`
	Command   string `yaml:"command,omitempty"`
	Scope     string `yaml:"scope,omitempty"`
	Rationale string `yaml:"rationale"`
}

// RulesFile is the YAML schema root of ~/.nlsh/rules.yaml.
type RulesFile struct {
	Rules []Rule `yaml:"rules"`
}

const (
	scopeSegment = "segment"
	scopeCommand = "command"
)

type compiledRule struct {
	id        string
	level     domain.RiskLevel
	re        *regexp.Regexp
	command   string
	scope     string
	rationale string
}

func compileRules(rules []Rule) (tiers map[domain.RiskLevel][]compiledRule, err error) {
	tiers = map[domain.RiskLevel][]compiledRule{}
	for _, rule := range rules {
		level, err := parseRiskLevel(rule.Level)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", rule.ID, err)
		}
		compiled := compiledRule{
			id:        rule.ID,
			level:     level,
			command:   rule.Command,
			scope:     rule.Scope,
			rationale: rule.Rationale,
		}
		if compiled.scope == "" {
			compiled.scope = scopeSegment
		}
		if rule.Pattern != "" {
			re, err := regexp.Compile(rule.Pattern)
			if err != nil {
				return nil, fmt.Errorf("rule %s: compile pattern: %w", rule.ID, err)
			}
			compiled.re = re
		} else if rule.Command == "" {
			return nil, fmt.Errorf("rule %s: needs a pattern or a command", rule.ID)
		}
		tiers[level] = append(tiers[level], compiled)
	}
	return tiers, nil
}

func parseRiskLevel(value string) (domain.RiskLevel, error) {
	switch strings.ToLower(value) {
	case "safe":
		return domain.RiskSafe, nil
	case "caution":
		return domain.RiskCaution, nil
	case "dangerous":
		return domain.RiskDangerous, nil
	default:
		return domain.RiskUnclassified, fmt.Errorf("unknown risk level %q", value)
	}
}

// loadRules reads the rule file, falling back to the embedded defaults when
// the file is missing or empty.
func loadRules(path string) (RulesFile, error) {
	var rules RulesFile

	data, err := os.ReadFile(expandPath(path))
	if err != nil {
		data = assets.DefaultRulesYAML
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return RulesFile{}, fmt.Errorf("parse rules: %w", err)
	}
	if len(rules.Rules) == 0 {
		if err := yaml.Unmarshal(assets.DefaultRulesYAML, &rules); err != nil {
			return RulesFile{}, fmt.Errorf("parse embedded rules: %w", err)
		}
	}
	return rules, nil
}

func expandPath(path string) string {
	if path == "" {
		return filepath.Join(userHomeDir(), ".nlsh", "rules.yaml")
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(userHomeDir(), path[2:])
	}
	return path
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}
