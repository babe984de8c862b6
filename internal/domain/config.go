package domain

import "time"

// Config mirrors ~/.nlsh/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Preferences         Preferences       `yaml:"preferences"`
	Models              []ModelDefinition `yaml:"models"`
	Security            SecuritySettings  `yaml:"security"`
	Execution           ExecutionSettings `yaml:"execution"`
}

// Preferences captures user-level toggles.
type Preferences struct {
	DefaultModel string `yaml:"default_model"`
	Verbose      bool   `yaml:"verbose"`
}

// SecuritySettings configures the safety policy.
type SecuritySettings struct {
	RulesFile string `yaml:"rules_file"`
}

// ExecutionSettings controls how approved commands run.
type ExecutionSettings struct {
	Shell          string `yaml:"shell"`
	WorkDir        string `yaml:"work_dir"`
	TimeoutSeconds int    `yaml:"timeout"`
}

// Timeout converts the configured timeout, falling back to the default.
func (e ExecutionSettings) Timeout() time.Duration {
	if e.TimeoutSeconds <= 0 {
		return DefaultCommandTimeout
	}
	return time.Duration(e.TimeoutSeconds) * time.Second
}

// ModelDefinition describes one translation backend.
type ModelDefinition struct {
	Name       string `yaml:"name"`
	Endpoint   string `yaml:"endpoint"`
	AuthEnvVar string `yaml:"auth_env_var"`
	ModelID    string `yaml:"model_id"`
	MaxTokens  int    `yaml:"max_tokens"`
}
