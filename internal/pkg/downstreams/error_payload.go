package downstreams

import (
	"encoding/json"
	"strings"
)

const maxRemoteMessageLength = 300

// remoteErrorPayload mirrors the error bodies the platform's services emit.
// Field names vary per service, so every known spelling is tried in order.
type remoteErrorPayload struct {
	Message               string `json:"message"`
	Mensaje               string `json:"mensaje"`
	ErrorDetails          string `json:"errorDetails"`
	InnerExceptionDetails string `json:"innerExceptionDetails"`
}

// ExtractRemoteMessage pulls a human-readable message out of a downstream
// error body. It returns the first non-empty candidate field, truncated, or
// "" when the body is not JSON or carries no known field.
func ExtractRemoteMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var payload remoteErrorPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	for _, candidate := range []string{
		payload.Message,
		payload.Mensaje,
		payload.ErrorDetails,
		payload.InnerExceptionDetails,
	} {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		// Remote messages are Spanish text, so truncation counts runes to
		// avoid cutting a multi-byte character in half.
		if runes := []rune(candidate); len(runes) > maxRemoteMessageLength {
			return string(runes[:maxRemoteMessageLength])
		}
		return candidate
	}

	return ""
}
