// ABOUTME: Settings loading with global + project YAML config deep merge
// ABOUTME: Defaults and validation for the classifier's AI attempt knobs

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	nrlog "github.com/mauromedda/nova-router/internal/log"
)

// Defaults for the AI attempt.
const (
	DefaultTemperature = 0.1
	DefaultMaxTokens   = 10
	DefaultTimeout     = 5 * time.Second
	DefaultRetries     = 1
)

// Settings holds the merged configuration.
type Settings struct {
	Model    string            `yaml:"model,omitempty"`
	BaseURL  string            `yaml:"base_url,omitempty"`
	LogLevel string            `yaml:"log_level,omitempty"`
	AI       *AISettings       `yaml:"ai,omitempty"`
	Env      map[string]string `yaml:"env,omitempty"`
}

// AISettings controls the single model attempt made per classification.
type AISettings struct {
	Enabled       *bool         `yaml:"enabled,omitempty"`
	Temperature   *float64      `yaml:"temperature,omitempty"`
	MaxTokens     int           `yaml:"max_tokens,omitempty"`
	Timeout       time.Duration `yaml:"timeout,omitempty"`
	Retries       *int          `yaml:"retries,omitempty"`
	Cooldown      time.Duration `yaml:"cooldown,omitempty"`
	RatePerSecond float64       `yaml:"rate_per_second,omitempty"`
	Burst         int           `yaml:"burst,omitempty"`
}

// IsEnabled reports whether the model should be consulted. Defaults to true.
func (a *AISettings) IsEnabled() bool {
	return a == nil || a.Enabled == nil || *a.Enabled
}

// EffectiveTemperature returns the configured temperature or DefaultTemperature.
func (a *AISettings) EffectiveTemperature() float64 {
	if a == nil || a.Temperature == nil {
		return DefaultTemperature
	}
	return *a.Temperature
}

// EffectiveMaxTokens returns the configured token cap or DefaultMaxTokens.
func (a *AISettings) EffectiveMaxTokens() int {
	if a == nil || a.MaxTokens == 0 {
		return DefaultMaxTokens
	}
	return a.MaxTokens
}

// EffectiveTimeout returns the configured attempt deadline or DefaultTimeout.
func (a *AISettings) EffectiveTimeout() time.Duration {
	if a == nil || a.Timeout == 0 {
		return DefaultTimeout
	}
	return a.Timeout
}

// EffectiveCooldown returns how long the provider is skipped after a failed
// call. Zero disables the cooldown.
func (a *AISettings) EffectiveCooldown() time.Duration {
	if a == nil {
		return 0
	}
	return a.Cooldown
}

// EffectiveRate returns the call budget in calls per second and its burst.
// Zero means unlimited.
func (a *AISettings) EffectiveRate() (float64, int) {
	if a == nil {
		return 0, 0
	}
	return a.RatePerSecond, a.Burst
}

// EffectiveRetries returns the HTTP retry count for 429/5xx responses.
func (a *AISettings) EffectiveRetries() int {
	if a == nil || a.Retries == nil {
		return DefaultRetries
	}
	return *a.Retries
}

// Load reads and merges global and project-local settings, then any extra
// files in order. Later files override earlier ones. Missing files are
// skipped, except for extra files which must exist.
func Load(projectRoot string, extra ...string) (*Settings, error) {
	global, err := loadFile(GlobalConfigFile())
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	project, err := loadFile(ProjectConfigFile(projectRoot))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	merged := merge(global, project)
	for _, path := range extra {
		s, err := loadFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
		merged = merge(merged, s)
	}

	ResolveEnvVars(merged)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

// loadFile reads a Settings from a YAML file. Returns zero Settings if file
// does not exist.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// Validate rejects values the classifier cannot use.
func (s *Settings) Validate() error {
	var errs []error
	if s.LogLevel != "" {
		if _, err := nrlog.ParseLevel(s.LogLevel); err != nil {
			errs = append(errs, fmt.Errorf("log_level: %w", err))
		}
	}
	if a := s.AI; a != nil {
		if t := a.EffectiveTemperature(); t <= 0 || t > 2 {
			errs = append(errs, fmt.Errorf("ai.temperature %.2f out of range (0, 2]", t))
		}
		if a.MaxTokens < 0 {
			errs = append(errs, fmt.Errorf("ai.max_tokens %d must be positive", a.MaxTokens))
		}
		if a.Timeout < 0 || a.Cooldown < 0 {
			errs = append(errs, errors.New("ai.timeout and ai.cooldown must not be negative"))
		}
		if a.Retries != nil && *a.Retries < 0 {
			errs = append(errs, fmt.Errorf("ai.retries %d must not be negative", *a.Retries))
		}
		if a.RatePerSecond < 0 || a.Burst < 0 {
			errs = append(errs, errors.New("ai.rate_per_second and ai.burst must not be negative"))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// merge deep-merges project settings onto global settings.
// Non-zero project values override global values.
func merge(global, project *Settings) *Settings {
	if global == nil {
		global = &Settings{}
	}
	if project == nil {
		return global
	}

	result := *global

	if project.Model != "" {
		result.Model = project.Model
	}
	if project.BaseURL != "" {
		result.BaseURL = project.BaseURL
	}
	if project.LogLevel != "" {
		result.LogLevel = project.LogLevel
	}
	result.AI = mergeAI(global.AI, project.AI)

	if len(project.Env) > 0 {
		env := make(map[string]string, len(global.Env)+len(project.Env))
		for k, v := range global.Env {
			env[k] = v
		}
		for k, v := range project.Env {
			env[k] = v
		}
		result.Env = env
	}

	return &result
}

func mergeAI(global, project *AISettings) *AISettings {
	if project == nil {
		return global
	}
	if global == nil {
		cp := *project
		return &cp
	}

	result := *global
	if project.Enabled != nil {
		result.Enabled = project.Enabled
	}
	if project.Temperature != nil {
		result.Temperature = project.Temperature
	}
	if project.MaxTokens != 0 {
		result.MaxTokens = project.MaxTokens
	}
	if project.Timeout != 0 {
		result.Timeout = project.Timeout
	}
	if project.Retries != nil {
		result.Retries = project.Retries
	}
	if project.Cooldown != 0 {
		result.Cooldown = project.Cooldown
	}
	if project.RatePerSecond != 0 {
		result.RatePerSecond = project.RatePerSecond
	}
	if project.Burst != 0 {
		result.Burst = project.Burst
	}
	return &result
}
