package validation

import (
	"bytes"
	"strings"
	"testing"
)

func setValidEnv(t *testing.T) {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "sk-test-key")
	t.Setenv("OPENAI_KEY", "")
	t.Setenv("PORT", "5173")
	t.Setenv("IMAGE_SIZE", "1024x1024")
}

func TestValidationSuite_AllPass(t *testing.T) {
	setValidEnv(t)

	var buf bytes.Buffer
	suite := NewValidationSuite().WithOutput(&buf).WithShowProgress(true)

	result := suite.Validate()

	if !result.Success {
		t.Fatalf("expected success, first error: %v", result.GetFirstError())
	}
	if result.TotalSteps != 4 {
		t.Errorf("expected 4 steps, got %d", result.TotalSteps)
	}
	if result.PassedSteps != 4 {
		t.Errorf("expected 4 passed steps, got %d", result.PassedSteps)
	}
	if !strings.Contains(buf.String(), "Validation passed") {
		t.Error("expected success summary in output")
	}
}

func TestValidationSuite_MissingAPIKey(t *testing.T) {
	setValidEnv(t)
	t.Setenv("OPENAI_API_KEY", "")

	var buf bytes.Buffer
	suite := NewValidationSuite().WithOutput(&buf)

	result := suite.Validate()

	if result.Success {
		t.Fatal("expected validation failure for missing API key")
	}
	if result.FailedSteps != 1 {
		t.Errorf("expected 1 failed step, got %d", result.FailedSteps)
	}
	if result.GetFirstError() == nil {
		t.Error("expected GetFirstError to return the credential error")
	}
}

func TestValidationSuite_FailFast(t *testing.T) {
	setValidEnv(t)
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("PORT", "not-a-port")

	var buf bytes.Buffer
	suite := NewValidationSuite().WithOutput(&buf).WithFailFast(true)

	result := suite.Validate()

	if result.Success {
		t.Fatal("expected failure")
	}
	// Fail-fast stops after the credential check fails; the port check never runs.
	if result.TotalSteps != 2 {
		t.Errorf("expected 2 steps with fail-fast, got %d", result.TotalSteps)
	}
}

func TestValidationSuite_QuietMode(t *testing.T) {
	setValidEnv(t)

	var buf bytes.Buffer
	suite := NewValidationSuite().WithOutput(&buf).WithShowProgress(false)

	suite.Validate()

	if buf.Len() != 0 {
		t.Errorf("expected no output with progress disabled, got %q", buf.String())
	}
}

func TestStepStatus_String(t *testing.T) {
	tests := []struct {
		status StepStatus
		want   string
	}{
		{StepPending, "pending"},
		{StepRunning, "running"},
		{StepPassed, "passed"},
		{StepFailed, "failed"},
		{StepStatus(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("StepStatus(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}
