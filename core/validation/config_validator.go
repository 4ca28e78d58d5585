// Package validation provides startup validation for the relay configuration.
package validation

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
)

// ValidationResult represents the result of a single configuration check.
type ValidationResult struct {
	Valid   bool
	Message string
	Error   error
}

// imageSizePattern matches size strings like "1024x1024".
var imageSizePattern = regexp.MustCompile(`^\d+x\d+$`)

// ConfigValidator runs environment-level configuration checks before the
// server starts. Checks read the process environment directly because they
// run before LoadConfig.
type ConfigValidator struct {
	envPath string
}

// NewConfigValidator creates a ConfigValidator with the default .env path.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{envPath: ".env"}
}

// WithEnvPath sets a custom path for the .env file.
func (v *ConfigValidator) WithEnvPath(path string) *ConfigValidator {
	v.envPath = path
	return v
}

// CheckEnvFile verifies that the .env file exists. A missing file is not a
// failure since configuration may come from the process environment.
func (v *ConfigValidator) CheckEnvFile() ValidationResult {
	if _, err := os.Stat(v.envPath); err != nil {
		return ValidationResult{
			Valid:   true,
			Message: fmt.Sprintf("%s not found, using process environment", v.envPath),
		}
	}
	return ValidationResult{Valid: true, Message: v.envPath + " found"}
}

// CheckAPIKey verifies that the image API credential is present.
// The process must not start without it.
func (v *ConfigValidator) CheckAPIKey() ValidationResult {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		key = os.Getenv("OPENAI_KEY")
	}
	if key == "" {
		return ValidationResult{
			Valid:   false,
			Message: "image API credential is missing",
			Error:   fmt.Errorf("OPENAI_API_KEY is not set"),
		}
	}
	return ValidationResult{Valid: true, Message: "API credential present"}
}

// CheckPort verifies that PORT, when set, is a valid TCP port number.
func (v *ConfigValidator) CheckPort() ValidationResult {
	value := os.Getenv("PORT")
	if value == "" {
		return ValidationResult{Valid: true, Message: "using default port 5173"}
	}

	port, err := strconv.Atoi(value)
	if err != nil {
		return ValidationResult{
			Valid:   false,
			Message: "PORT is not a number",
			Error:   fmt.Errorf("invalid PORT value %q: %w", value, err),
		}
	}
	if port < 1 || port > 65535 {
		return ValidationResult{
			Valid:   false,
			Message: "PORT is out of range",
			Error:   fmt.Errorf("PORT must be between 1 and 65535, got %d", port),
		}
	}
	return ValidationResult{Valid: true, Message: "listening on port " + value}
}

// CheckImageSize verifies that IMAGE_SIZE, when set, looks like "<w>x<h>".
func (v *ConfigValidator) CheckImageSize() ValidationResult {
	value := os.Getenv("IMAGE_SIZE")
	if value == "" {
		return ValidationResult{Valid: true, Message: "using default size 1024x1024"}
	}

	if !imageSizePattern.MatchString(value) {
		return ValidationResult{
			Valid:   false,
			Message: "IMAGE_SIZE is malformed",
			Error:   fmt.Errorf("IMAGE_SIZE must look like 1024x1024, got %q", value),
		}
	}
	return ValidationResult{Valid: true, Message: "image size " + value}
}
