package common

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseJSON unmarshals a JSON object embedded in model output into T. Models
// routinely wrap the object in prose or markdown fences, so the payload is
// taken from the first '{' through the last '}'.
func ParseJSON[T any](response string) (T, error) {
	var zero T

	start := strings.IndexByte(response, '{')
	if start == -1 {
		return zero, fmt.Errorf("no JSON object found in response (missing '{')")
	}
	payload := response[start:]
	if end := strings.LastIndexByte(payload, '}'); end != -1 {
		payload = payload[:end+1]
	}

	var result T
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return zero, fmt.Errorf("unmarshal embedded JSON: %w\nData: %s", err, payload)
	}
	return result, nil
}
