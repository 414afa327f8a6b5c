// ABOUTME: Human-readable rendering of effective configuration
// ABOUTME: Used by "config explain" CLI subcommand to show merged settings with defaults

package config

import (
	"fmt"
	"slices"
	"strings"
)

// Explain renders a human-readable summary of the effective settings.
// AI knobs always show their effective value; defaults are marked.
func Explain(s *Settings) string {
	if s == nil {
		s = &Settings{}
	}

	var b strings.Builder

	b.WriteString("=== General ===\n")
	model := s.Model
	if model == "" {
		model = "(default)"
	}
	fmt.Fprintf(&b, "  Model:    %s\n", model)
	if s.BaseURL != "" {
		fmt.Fprintf(&b, "  BaseURL:  %s\n", s.BaseURL)
	}
	if s.LogLevel != "" {
		fmt.Fprintf(&b, "  LogLevel: %s\n", s.LogLevel)
	}
	b.WriteString("\n")

	a := s.AI
	b.WriteString("=== AI ===\n")
	fmt.Fprintf(&b, "  Enabled:     %v%s\n", a.IsEnabled(), defaultMark(a == nil || a.Enabled == nil))
	fmt.Fprintf(&b, "  Temperature: %.2f%s\n", a.EffectiveTemperature(), defaultMark(a == nil || a.Temperature == nil))
	fmt.Fprintf(&b, "  MaxTokens:   %d%s\n", a.EffectiveMaxTokens(), defaultMark(a == nil || a.MaxTokens == 0))
	fmt.Fprintf(&b, "  Timeout:     %s%s\n", a.EffectiveTimeout(), defaultMark(a == nil || a.Timeout == 0))
	fmt.Fprintf(&b, "  Retries:     %d%s\n", a.EffectiveRetries(), defaultMark(a == nil || a.Retries == nil))
	if a != nil && a.Cooldown > 0 {
		fmt.Fprintf(&b, "  Cooldown:    %s\n", a.Cooldown)
	}
	if a != nil && a.RatePerSecond > 0 {
		fmt.Fprintf(&b, "  Rate:        %.2f/s (burst %d)\n", a.RatePerSecond, max(a.Burst, 1))
	}
	b.WriteString("\n")

	b.WriteString("=== Env ===\n")
	keys := make([]string, 0, len(s.Env))
	for k := range s.Env {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "  %s=%s\n", k, s.Env[k])
	}
	b.WriteString("\n")

	return b.String()
}

func defaultMark(isDefault bool) string {
	if isDefault {
		return " (default)"
	}
	return ""
}
