// ABOUTME: Tests for the logging package
// ABOUTME: Validates level filtering, output redirection, and preview truncation

package log

import (
	"bytes"
	"strings"
	"testing"
)

// Tests in this file mutate package state, so they do not run in parallel.

func TestSetLevel(t *testing.T) {
	saved := GetLevel()
	defer SetLevel(saved)

	SetLevel(LevelDebug)
	if GetLevel() != LevelDebug {
		t.Errorf("GetLevel() = %v; want %v", GetLevel(), LevelDebug)
	}

	SetLevel(LevelError)
	if GetLevel() != LevelError {
		t.Errorf("GetLevel() = %v; want %v", GetLevel(), LevelError)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"debug", "DEBUG", false},
		{"INFO", "INFO", false},
		{" warn ", "WARN", false},
		{"error", "ERROR", false},
		{"loud", "", true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseLevel(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLevel(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("ParseLevel(%q) = %v; want %s", tt.in, got, tt.want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	saved := GetLevel()
	defer SetLevel(saved)

	var buf bytes.Buffer
	prev := SetOutput(&buf)
	defer SetOutput(prev)

	SetLevel(LevelWarn)
	Debug("hidden %d", 1)
	Info("hidden %d", 2)
	Warn("shown %d", 3)
	Error("shown %d", 4)

	got := buf.String()
	if strings.Contains(got, "hidden") {
		t.Errorf("output contains suppressed messages: %q", got)
	}
	if !strings.Contains(got, "[WARN] shown 3\n") {
		t.Errorf("missing warn line in %q", got)
	}
	if !strings.Contains(got, "[ERROR] shown 4\n") {
		t.Errorf("missing error line in %q", got)
	}
}

func TestDebugEmittedAtDebugLevel(t *testing.T) {
	saved := GetLevel()
	defer SetLevel(saved)

	var buf bytes.Buffer
	prev := SetOutput(&buf)
	defer SetOutput(prev)

	SetLevel(LevelDebug)
	Debug("rule=%s", "greeting")

	if buf.String() != "[DEBUG] rule=greeting\n" {
		t.Errorf("output = %q; want %q", buf.String(), "[DEBUG] rule=greeting\n")
	}
}

func TestPreview(t *testing.T) {
	short := "add tags"
	if got := Preview(short); got != short {
		t.Errorf("Preview(%q) = %q; want unchanged", short, got)
	}

	long := strings.Repeat("a", 50)
	want := strings.Repeat("a", 40) + "…"
	if got := Preview(long); got != want {
		t.Errorf("Preview(long) = %q; want %q", got, want)
	}

	// Flag emoji are two runes but one grapheme; they must not be split.
	flags := strings.Repeat("🇮🇹", 45)
	got := Preview(flags)
	if got != strings.Repeat("🇮🇹", 40)+"…" {
		t.Errorf("Preview(flags) split a grapheme cluster: %q", got)
	}
}
