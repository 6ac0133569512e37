package logger

import (
	"regexp"
	"strings"
)

// Redacted replaces values that must never be persisted or logged.
const Redacted = "[REDACTED]"

// credentialPattern matches "key=value", "key: value" and "key value" pairs
// whose key names a credential.
var credentialPattern = regexp.MustCompile(`(?i)\b(password|passwd|pwd|token|jwt|bearer|api[_-]?key|secret|private[_-]?key)[\s:=]+\S+`)

var sensitiveKeyParts = []string{
	"password", "passwd", "pwd",
	"token", "jwt", "bearer",
	"apikey", "api_key", "api-key",
	"secret", "private_key", "private-key",
}

// SanitizeLogMessage redacts credential values embedded in free text.
func SanitizeLogMessage(message string) string {
	return credentialPattern.ReplaceAllString(message, "${1}="+Redacted)
}

// SanitizeMap returns a copy of data with credential-like keys redacted.
// Nested maps are sanitized recursively.
func SanitizeMap(data map[string]any) map[string]any {
	if data == nil {
		return nil
	}
	out := make(map[string]any, len(data))
	for k, v := range data {
		switch {
		case isSensitiveKey(k):
			out[k] = Redacted
		case isMap(v):
			out[k] = SanitizeMap(v.(map[string]any))
		default:
			out[k] = v
		}
	}
	return out
}

func isSensitiveKey(key string) bool {
	key = strings.ToLower(key)
	for _, part := range sensitiveKeyParts {
		if strings.Contains(key, part) {
			return true
		}
	}
	return false
}

func isMap(v any) bool {
	_, ok := v.(map[string]any)
	return ok
}
