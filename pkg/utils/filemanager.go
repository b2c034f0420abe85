// =============================================================================
// Kunstlotteri Report Tool - File Utilities
// =============================================================================
//
// Shared helpers for placing export artifacts on disk: output directory
// creation and placeholder-based file naming.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EnsureDir creates the directory (and any parents) if it does not exist.
func EnsureDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GenerateOutputFileName expands a file-name format string.
//
// Supported placeholders:
//   {uuid}      - a random UUID
//   {timestamp} - current timestamp (YYYYMMDD_HHMMSS)
//
// plus any caller-supplied placeholders in params, e.g. {artwork}. Unused
// placeholders in params are ignored; unknown placeholders in the format
// pass through untouched.
func GenerateOutputFileName(format string, params map[string]string) string {
	result := format

	if strings.Contains(result, "{uuid}") {
		result = strings.ReplaceAll(result, "{uuid}", uuid.New().String())
	}
	if strings.Contains(result, "{timestamp}") {
		result = strings.ReplaceAll(result, "{timestamp}", time.Now().Format("20060102_150405"))
	}
	for key, value := range params {
		result = strings.ReplaceAll(result, "{"+key+"}", value)
	}

	return result
}

// FileExists checks if a file exists and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
