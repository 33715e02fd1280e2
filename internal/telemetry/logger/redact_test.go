package logger

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestRedactSensitive_BearerValue(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{
		Level:  "info",
		Format: "json",
		Output: &buf,
	}

	l, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// Log a full bearer header value (should be partially masked)
	header := "Bearer ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklm"
	l.Info("header received", "header", header)

	var logEntry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}

	headerVal, ok := logEntry["header"].(string)
	if !ok {
		t.Fatal("Expected header field in log")
	}

	if headerVal == header {
		t.Errorf("Bearer value should be redacted, got original value: %s", headerVal)
	}

	// Should contain the prefix and partial mask
	if headerVal != "Bearer ABC...klm" {
		t.Errorf("Bearer mask format incorrect, got: %s", headerVal)
	}
}

func TestRedactSensitive_SensitiveKeyName(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{
		Level:  "info",
		Format: "json",
		Output: &buf,
	}

	l, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// Log with sensitive key names (should be redacted regardless of value)
	tests := []struct {
		key      string
		value    string
		expected string
	}{
		{"password", "mysecret123", "***REDACTED***"},
		{"passphrase", "correct horse battery", "***REDACTED***"},
		{"api_key", "some-key-value", "***REDACTED***"},
		{"auth_token", "bearer-xyz", "***REDACTED***"},
		{"credential", "cred123", "***REDACTED***"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			buf.Reset()
			l.Info("test", tt.key, tt.value)

			var logEntry map[string]any
			if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
				t.Fatalf("Failed to parse JSON log: %v", err)
			}

			val, ok := logEntry[tt.key].(string)
			if !ok {
				t.Fatalf("Expected %s field in log", tt.key)
			}

			if val != tt.expected {
				t.Errorf("Key %q should be redacted to %q, got %q", tt.key, tt.expected, val)
			}
		})
	}
}

func TestRedactSensitive_NormalValues(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{
		Level:  "info",
		Format: "json",
		Output: &buf,
	}

	l, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// Normal values should not be redacted
	l.Info("snippet saved", "user_id", "user123", "snippet_id", "snip-abc123")

	var logEntry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}

	if userID, ok := logEntry["user_id"].(string); !ok || userID != "user123" {
		t.Errorf("Normal user_id should not be redacted, got: %v", logEntry["user_id"])
	}

	if snippetID, ok := logEntry["snippet_id"].(string); !ok || snippetID != "snip-abc123" {
		t.Errorf("Snippet ID (public) should not be redacted, got: %v", logEntry["snippet_id"])
	}
}

func TestRedactString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bearer header",
			input:    "Bearer ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklm",
			expected: "Bearer ABC...klm",
		},
		{
			name:     "short bearer",
			input:    "Bearer ABCDEF",
			expected: "Bearer ***",
		},
		{
			name:     "normal value",
			input:    "normalvalue123",
			expected: "normalvalue123",
		},
		{
			name:     "snippet id (not sensitive)",
			input:    "snip-abc123def456",
			expected: "snip-abc123def456",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RedactString(tt.input)
			if result != tt.expected {
				t.Errorf("RedactString(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsSensitiveKey(t *testing.T) {
	tests := []struct {
		key       string
		sensitive bool
	}{
		{"password", true},
		{"passphrase", true},
		{"PASSWORD", true},
		{"secret", true},
		{"api_secret", true},
		{"token", true},
		{"auth_token", true},
		{"key", true},
		{"api_key", true},
		{"credential", true},
		{"auth", true},
		{"bearer", true},
		{"username", false},
		{"user_id", false},
		{"snippet_id", false},
		{"request_id", false},
		{"data", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			result := IsSensitiveKey(tt.key)
			if result != tt.sensitive {
				t.Errorf("IsSensitiveKey(%q) = %v, want %v", tt.key, result, tt.sensitive)
			}
		})
	}
}

func TestIsSensitiveValue(t *testing.T) {
	tests := []struct {
		value     string
		sensitive bool
	}{
		{"Bearer abc123", true},
		{"snip-abc123", false}, // Snippet ID is public
		{"normal_value", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			result := IsSensitiveValue(tt.value)
			if result != tt.sensitive {
				t.Errorf("IsSensitiveValue(%q) = %v, want %v", tt.value, result, tt.sensitive)
			}
		})
	}
}

func TestMaskValue(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		prefix   string
		expected string
	}{
		{
			name:     "long value",
			value:    "Bearer ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklm",
			prefix:   "Bearer ",
			expected: "Bearer ABC...klm",
		},
		{
			name:     "short value",
			value:    "Bearer ABCDEF",
			prefix:   "Bearer ",
			expected: "Bearer ***",
		},
		{
			name:     "minimal value",
			value:    "Bearer AB",
			prefix:   "Bearer ",
			expected: "Bearer ***",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := maskValue(tt.value, tt.prefix)
			if result != tt.expected {
				t.Errorf("maskValue(%q, %q) = %q, want %q", tt.value, tt.prefix, result, tt.expected)
			}
		})
	}
}
