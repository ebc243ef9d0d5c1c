package llm

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var (
	leadingFence  = regexp.MustCompile("(?i)^```(?:json)?\\s*")
	trailingFence = regexp.MustCompile("\\s*```$")
)

// StripCodeFences removes a leading ``` or ```json fence and a trailing ``` fence.
func StripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	text = leadingFence.ReplaceAllString(text, "")
	text = trailingFence.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// DecodeJSON strips fences from raw and unmarshals it into out.
func DecodeJSON(raw string, out any) error {
	cleaned := StripCodeFences(raw)
	if cleaned == "" {
		return errors.Wrap(ErrMalformedOutput, "empty output")
	}
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return errors.Wrapf(ErrMalformedOutput, "decode json: %v", err)
	}
	return nil
}
