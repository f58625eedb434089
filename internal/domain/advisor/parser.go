package advisor

import (
	"encoding/json"
	"errors"
	"strings"
)

var errNoJSON = errors.New("no JSON object in reply")

// extractJSON finds the first balanced {...} object in free text and
// unmarshals it into v. LLM replies routinely wrap JSON in prose or
// markdown fences; absent fields simply stay zero-valued.
func extractJSON(text string, v any) error {
	start := strings.IndexByte(text, '{')
	if start == -1 {
		return errNoJSON
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
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
				return json.Unmarshal([]byte(text[start:i+1]), v)
			}
		}
	}

	return errNoJSON
}
