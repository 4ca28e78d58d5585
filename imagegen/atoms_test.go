package imagegen

import (
	"regexp"
	"testing"
	"time"
)

func TestContainsBangla(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"bangla word", "আমি", true},
		{"english word", "hello", false},
		{"mixed", "hi আমি", true},
		{"empty", "", false},
		{"digits and punctuation", "123 !?", false},
		{"bangla digit", "৯", true},
		{"devanagari is not bangla", "नमस्ते", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainsBangla(tt.input); got != tt.want {
				t.Errorf("ContainsBangla(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewVariationTag_Length(t *testing.T) {
	tag := NewVariationTag()
	if len(tag) != 8 {
		t.Errorf("expected 8-character tag, got %q (%d chars)", tag, len(tag))
	}
}

func TestNewVariationTag_Distinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		tag := NewVariationTag()
		if seen[tag] {
			t.Fatalf("duplicate tag %q after %d generations", tag, i)
		}
		seen[tag] = true
	}
}

func TestTagPrompt(t *testing.T) {
	got := TagPrompt("  a red fox  ", "1a2b3c4d")
	want := "a red fox\n\n[variation:1a2b3c4d]"
	if got != want {
		t.Errorf("TagPrompt() = %q, want %q", got, want)
	}
}

func TestImageFileName(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	name := ImageFileName("1a2b3c4d", now)

	if name != "ai-photo-1700000000000-1a2b3c4d.png" {
		t.Errorf("unexpected filename: %q", name)
	}

	pattern := regexp.MustCompile(`^ai-photo-\d+-[0-9a-f]{8}\.png$`)
	if !pattern.MatchString(name) {
		t.Errorf("filename %q does not match expected pattern", name)
	}
}
