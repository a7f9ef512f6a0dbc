package analyses

import (
	"errors"
	"strings"
)

var (
	// ErrNoJSONBlock means the completion text contains no JSON object at all.
	ErrNoJSONBlock = errors.New("no json object in completion text")
	// ErrAmbiguousJSON means the text contains more than one top-level JSON
	// object outside a fenced block, so there is no single answer to extract.
	ErrAmbiguousJSON = errors.New("multiple json objects in completion text")
)

// ExtractJSONBlock isolates the single JSON object embedded in free-form
// completion text. A fenced code block (```json or bare ```) takes precedence;
// otherwise the first top-level balanced {...} span is used. Brace depth is
// tracked explicitly, with string and escape handling, so braces inside JSON
// strings do not confuse the scan.
func ExtractJSONBlock(raw string) (string, error) {
	for _, body := range fencedBodies(raw) {
		if start, end, ok := firstBalancedObject(body); ok {
			return body[start:end], nil
		}
	}

	start, end, ok := firstBalancedObject(raw)
	if !ok {
		return "", ErrNoJSONBlock
	}
	if _, _, again := firstBalancedObject(raw[end:]); again {
		return "", ErrAmbiguousJSON
	}
	return raw[start:end], nil
}

// fencedBodies returns the contents of each ``` fenced block in order,
// with any language tag on the opening line stripped.
func fencedBodies(raw string) []string {
	var bodies []string
	rest := raw
	for {
		open := strings.Index(rest, "```")
		if open < 0 {
			return bodies
		}
		rest = rest[open+3:]
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 && isFenceTag(rest[:nl]) {
			rest = rest[nl+1:]
		}
		closing := strings.Index(rest, "```")
		if closing < 0 {
			bodies = append(bodies, rest)
			return bodies
		}
		bodies = append(bodies, rest[:closing])
		rest = rest[closing+3:]
	}
}

func isFenceTag(line string) bool {
	tag := strings.TrimSpace(line)
	if tag == "" {
		return true
	}
	for _, r := range tag {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// firstBalancedObject finds the first '{' and walks forward until its match.
// It returns the half-open span of the balanced object.
func firstBalancedObject(s string) (int, int, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return 0, 0, false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
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
				return start, i + 1, true
			}
		}
	}
	return 0, 0, false
}
