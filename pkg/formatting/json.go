package formatting

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoJSONObject is returned when content holds no complete
	// brace-delimited object.
	ErrNoJSONObject = errors.New("no JSON object found")
	// ErrParseFailed is returned when an extracted object is not valid JSON
	// or does not decode into the target type.
	ErrParseFailed = errors.New("failed to parse response")
)

// ExtractObject returns the first balanced {...} substring of content.
// Braces inside JSON string literals (including escaped quotes) do not
// affect nesting, so conversational text before or after the object and
// braces embedded in string values are tolerated. A '{' that never closes
// is skipped and the search resumes at the next one.
func ExtractObject(content string) (string, error) {
	start, end, ok := nextObject(content, 0)
	if !ok {
		return "", ErrNoJSONObject
	}
	return content[start:end], nil
}

// Parse decodes the first balanced object in content that unmarshals into T.
// A candidate that fails to decode is skipped whole, including any objects
// nested in it. Content with no candidate wraps ErrNoJSONObject; content whose
// candidates all fail wraps ErrParseFailed with the first decode error.
func Parse[T any](content string) (T, error) {
	var firstErr error

	for from := 0; ; {
		start, end, ok := nextObject(content, from)
		if !ok {
			break
		}

		var result T
		err := json.Unmarshal([]byte(content[start:end]), &result)
		if err == nil {
			return result, nil
		}
		if firstErr == nil {
			firstErr = err
		}
		from = end
	}

	var zero T
	if firstErr != nil {
		return zero, fmt.Errorf("%w: %w", ErrParseFailed, firstErr)
	}
	return zero, ErrNoJSONObject
}

// nextObject finds the first balanced object starting at or after from and
// returns its bounds as content[start:end].
func nextObject(content string, from int) (start, end int, ok bool) {
	for from < len(content) {
		i := strings.IndexByte(content[from:], '{')
		if i < 0 {
			return 0, 0, false
		}
		start = from + i

		if end, ok = closeObject(content, start); ok {
			return start, end, true
		}
		from = start + 1
	}
	return 0, 0, false
}

// closeObject scans from the '{' at start and returns the index just past
// its matching '}'.
func closeObject(content string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(content); i++ {
		c := content[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}
