// Package security classifies commands against an ordered safety rule set.
// It is a best-effort heuristic gate, not a security boundary: encoded or
// otherwise obfuscated payloads beyond the catalog's patterns will pass as
// caution, never as safe.
package security

import (
	"strings"

	"github.com/nlshell/nlsh/internal/domain"
	"github.com/nlshell/nlsh/internal/ports"
)

// Policy is the process-wide, read-only safety rule set. Classification is a
// pure function of the input and the rules, so Policy is safe for concurrent
// use without locking.
type Policy struct {
	tiers map[domain.RiskLevel][]compiledRule
}

// tierOrder checks dangerous rules before caution before the safe
// allowlist, so a single dangerous indicator overrides weaker signals.
var tierOrder = []domain.RiskLevel{domain.RiskDangerous, domain.RiskCaution, domain.RiskSafe}

// NewPolicy loads rules from path (or the embedded defaults when missing)
// and compiles them once.
func NewPolicy(path string) (*Policy, error) {
	rules, err := loadRules(path)
	if err != nil {
		return nil, err
	}
	return NewPolicyFromRules(rules.Rules)
}

// NewPolicyFromRules compiles an explicit rule list. Used by tests and by
// callers that manage rule storage themselves.
func NewPolicyFromRules(rules []Rule) (*Policy, error) {
	tiers, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	return &Policy{tiers: tiers}, nil
}

// Classify implements ports.SafetyPolicy. Each segment is judged
// independently; the verdict is the highest risk level across all segments.
// Whole-command rules run against the full command line so they can see
// across pipe boundaries (curl | sh, fork bombs). A segment matching no rule
// defaults to caution: unknown commands are never auto-approved.
func (p *Policy) Classify(raw string, segments []domain.Segment) domain.Verdict {
	verdict := domain.Verdict{}

	flattened := flatten(segments)
	for _, level := range tierOrder {
		if finding, ok := p.matchCommand(level, raw, flattened); ok {
			verdict.Findings = append(verdict.Findings, finding)
			if domain.MoreSevere(finding.Level, verdict.Level) {
				verdict.Level = finding.Level
			}
			break
		}
	}

	for _, seg := range segments {
		finding := p.classifySegment(seg)
		verdict.Findings = append(verdict.Findings, finding)
		if domain.MoreSevere(finding.Level, verdict.Level) {
			verdict.Level = finding.Level
		}
	}
	return verdict
}

func (p *Policy) classifySegment(seg domain.Segment) domain.Finding {
	normalized := seg.Normalized()
	for _, level := range tierOrder {
		for _, rule := range p.tiers[level] {
			if rule.scope != scopeSegment {
				continue
			}
			if rule.matchesSegment(normalized, seg) {
				return domain.Finding{
					Segment:   seg.Raw,
					RuleID:    rule.id,
					Level:     rule.level,
					Rationale: rule.rationale,
				}
			}
		}
	}
	return domain.Finding{
		Segment:   seg.Raw,
		Level:     domain.RiskCaution,
		Rationale: "no rule matched; unknown commands are not auto-approved",
	}
}

func (p *Policy) matchCommand(level domain.RiskLevel, raw, flattened string) (domain.Finding, bool) {
	for _, rule := range p.tiers[level] {
		if rule.scope != scopeCommand || rule.re == nil {
			continue
		}
		if rule.re.MatchString(raw) || rule.re.MatchString(flattened) {
			return domain.Finding{
				Segment:   raw,
				RuleID:    rule.id,
				Level:     rule.level,
				Rationale: rule.rationale,
			}, true
		}
	}
	return domain.Finding{}, false
}

func (r compiledRule) matchesSegment(normalized string, seg domain.Segment) bool {
	if r.command != "" {
		return len(seg.Tokens) > 0 && seg.Tokens[0].Text == r.command
	}
	return r.re.MatchString(normalized)
}

// flatten rebuilds the whole command from normalized segments with their
// joining operators, so command-scope patterns see resolved quoting.
func flatten(segments []domain.Segment) string {
	var b strings.Builder
	for i, seg := range segments {
		b.WriteString(seg.Normalized())
		if seg.Next != domain.OpNone && i < len(segments)-1 {
			b.WriteString(" " + string(seg.Next) + " ")
		}
	}
	return b.String()
}

var _ ports.SafetyPolicy = (*Policy)(nil)
