// Package extract pulls JSON payloads out of raw model output. Models
// frequently wrap their answer in markdown fences or surround it with
// prose, so the extractor scans for the first balanced object or array
// that decodes instead of trusting the whole string.
package extract

import (
	"encoding/json"
	"strings"

	"ai-lessonplan-be/internal/pkg/apperrors"
)

// JSON returns the first decodable JSON value found in raw.
func JSON(raw string) (interface{}, error) {
	var out interface{}
	if err := Into(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Into decodes the first decodable JSON value found in raw into v.
func Into(raw string, v interface{}) error {
	candidate := stripFences(raw)

	// Fast path: the whole (fence-stripped) payload is valid JSON.
	trimmed := strings.TrimSpace(candidate)
	if trimmed != "" && (trimmed[0] == '{' || trimmed[0] == '[') {
		if json.Unmarshal([]byte(trimmed), v) == nil {
			return nil
		}
	}

	// Otherwise scan for a balanced object or array inside the prose.
	// Prose may contain stray brace pairs ahead of the real payload, so
	// every opening brace is a candidate until one decodes.
	for i := 0; i < len(candidate); i++ {
		if candidate[i] != '{' && candidate[i] != '[' {
			continue
		}
		frag, ok := balancedFrom(candidate, i)
		if !ok {
			continue
		}
		if json.Unmarshal([]byte(frag), v) == nil {
			return nil
		}
	}

	return &apperrors.MalformedOutputError{Raw: raw}
}

// stripFences removes a surrounding markdown code fence if present.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if idx := strings.Index(s, "```json"); idx >= 0 {
		s = s[idx+len("```json"):]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
		return strings.TrimSpace(s)
	}
	if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[idx+len("```"):]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
		return strings.TrimSpace(s)
	}
	return s
}

// balancedFrom returns the balanced JSON object or array opening at
// s[start], respecting string literals and escape sequences.
func balancedFrom(s string, start int) (string, bool) {
	open := s[start]
	close := byte('}')
	if open == '[' {
		close = ']'
	}
	depth := 1
	inString := false
	escaped := false

	for i := start + 1; i < len(s); i++ {
		c := s[i]

		if inString {
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
