// Package imagegen provides prompt preparation utilities and the upstream
// image-generation client.
//
// atoms.go contains pure utility functions with no dependencies beyond
// UUID generation.
package imagegen

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// banglaRangeLow and banglaRangeHigh bound the Bangla Unicode block.
const (
	banglaRangeLow  = 0x0980
	banglaRangeHigh = 0x09FF
)

// ContainsBangla reports whether the string contains any code point in the
// Bangla Unicode block (U+0980 to U+09FF).
//
// This is a pure function used to pick which error message language the
// client foregrounds.
//
// Example:
//
//	ContainsBangla("আমি")      // true
//	ContainsBangla("hello")    // false
//	ContainsBangla("hi আমি")   // true
func ContainsBangla(s string) bool {
	for _, r := range s {
		if r >= banglaRangeLow && r <= banglaRangeHigh {
			return true
		}
	}
	return false
}

// NewVariationTag creates a short random identifier appended to prompts to
// discourage the upstream service from returning cached results. Uses UUID v4
// truncated to 8 characters: unique with overwhelming probability across
// concurrent requests without any global coordination.
func NewVariationTag() string {
	return uuid.New().String()[:8]
}

// TagPrompt appends a variation marker to a trimmed prompt. The tagged form
// is what gets sent upstream.
//
// Example:
//
//	TagPrompt("  a red fox  ", "1a2b3c4d")
//	// Returns: "a red fox\n\n[variation:1a2b3c4d]"
func TagPrompt(prompt, tag string) string {
	return strings.TrimSpace(prompt) + "\n\n[variation:" + tag + "]"
}

// ImageFileName synthesizes a download filename from the variation tag and a
// timestamp, in the form ai-photo-<epoch-millis>-<tag>.png.
func ImageFileName(tag string, now time.Time) string {
	return fmt.Sprintf("ai-photo-%d-%s.png", now.UnixMilli(), tag)
}
