package validation

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckEnvFile_Missing(t *testing.T) {
	v := NewConfigValidator().WithEnvPath(filepath.Join(t.TempDir(), ".env"))

	result := v.CheckEnvFile()

	if !result.Valid {
		t.Error("missing .env file should not be a failure")
	}
}

func TestCheckEnvFile_Present(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("OPENAI_API_KEY=sk-test\n"), 0644); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}

	v := NewConfigValidator().WithEnvPath(path)

	result := v.CheckEnvFile()

	if !result.Valid {
		t.Errorf("expected valid result, got message: %s", result.Message)
	}
}

func TestCheckAPIKey(t *testing.T) {
	tests := []struct {
		name      string
		apiKey    string
		legacyKey string
		wantValid bool
	}{
		{"both missing", "", "", false},
		{"primary set", "sk-primary", "", true},
		{"legacy set", "", "sk-legacy", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OPENAI_API_KEY", tt.apiKey)
			t.Setenv("OPENAI_KEY", tt.legacyKey)

			result := NewConfigValidator().CheckAPIKey()

			if result.Valid != tt.wantValid {
				t.Errorf("CheckAPIKey() valid = %v, want %v", result.Valid, tt.wantValid)
			}
			if !tt.wantValid && result.Error == nil {
				t.Error("expected error for invalid result")
			}
		})
	}
}

func TestCheckPort(t *testing.T) {
	tests := []struct {
		name      string
		port      string
		wantValid bool
	}{
		{"unset uses default", "", true},
		{"valid port", "8080", true},
		{"not a number", "abc", false},
		{"zero", "0", false},
		{"too large", "70000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PORT", tt.port)

			result := NewConfigValidator().CheckPort()

			if result.Valid != tt.wantValid {
				t.Errorf("CheckPort() valid = %v, want %v", result.Valid, tt.wantValid)
			}
		})
	}
}

func TestCheckImageSize(t *testing.T) {
	tests := []struct {
		name      string
		size      string
		wantValid bool
	}{
		{"unset uses default", "", true},
		{"square", "1024x1024", true},
		{"landscape", "1792x1024", true},
		{"missing separator", "1024", false},
		{"words", "bigxsmall", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("IMAGE_SIZE", tt.size)

			result := NewConfigValidator().CheckImageSize()

			if result.Valid != tt.wantValid {
				t.Errorf("CheckImageSize(%q) valid = %v, want %v", tt.size, result.Valid, tt.wantValid)
			}
		})
	}
}
