package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"
)

// decodeModelJSON unmarshals untrusted model output into v. Models are
// instructed to return bare JSON but still occasionally wrap it in markdown
// code fences; those are stripped before decoding. Any remaining decode
// error is a malformed-output event for the caller to absorb with its
// documented fallback.
func decodeModelJSON(raw string, v interface{}) error {
	text := stripCodeFences(raw)
	if text == "" {
		return fmt.Errorf("empty model output")
	}
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return fmt.Errorf("parsing model JSON output: %w (raw: %s)", err, truncate(raw, 500))
	}
	return nil
}

// stripCodeFences removes a surrounding ```...``` block, including an
// optional language tag on the opening fence.
func stripCodeFences(s string) string {
	text := strings.TrimSpace(s)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		// Drop the language tag line ("json", "JSON", or empty)
		text = text[idx+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
