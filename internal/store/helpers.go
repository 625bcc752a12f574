// ABOUTME: SQL helper functions for query construction.
// ABOUTME: Utilities for escaping LIKE patterns safely.

package store

import "strings"

// escapeSQLLike escapes SQL LIKE pattern special characters so member search
// input cannot introduce unintended wildcards. The backslash must be escaped
// first to avoid double-escaping.
func escapeSQLLike(pattern string) string {
	pattern = strings.ReplaceAll(pattern, "\\", "\\\\")
	pattern = strings.ReplaceAll(pattern, "%", "\\%")
	pattern = strings.ReplaceAll(pattern, "_", "\\_")
	return pattern
}
