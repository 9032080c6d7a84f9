package youtube

import "strings"

// initialDataMarker immediately follows the script object that assigns
// the embedded history payload.
const initialDataMarker = "});ytcfg.set({'YTMUSIC_INITIAL_DATA': initialData});"

const dataFieldPrefix = ", data: '"

// extractInitialData isolates the raw JSON string embedded in the
// history page HTML. The payload lives inside a script as a JS object
// literal whose `data:` field holds the JSON, single-quoted and
// escaped. Every structural expectation that fails produces a
// ScrapeError naming it.
func extractInitialData(html string) (string, error) {
	markerPos := strings.Index(html, initialDataMarker)
	if markerPos < 0 {
		return "", &ScrapeError{Detail: "initial data marker not found in HTML"}
	}

	objStart := strings.LastIndex(html[:markerPos], "{")
	if objStart < 0 {
		return "", &ScrapeError{Detail: "no object literal before initial data marker"}
	}

	obj, ok := scanBalancedObject(html, objStart)
	if !ok {
		return "", &ScrapeError{Detail: "unbalanced braces in embedded object literal"}
	}

	decoded := decodeHexEscapes(obj)

	dataPos := strings.Index(decoded, dataFieldPrefix)
	if dataPos < 0 {
		return "", &ScrapeError{Detail: "data field not found in embedded object"}
	}
	rest := decoded[dataPos+len(dataFieldPrefix):]

	closing := strings.LastIndex(rest, "'}")
	if closing < 0 {
		return "", &ScrapeError{Detail: "data field not terminated"}
	}

	raw := rest[:closing]
	raw = strings.ReplaceAll(raw, `\'`, "'")
	raw = strings.ReplaceAll(raw, `\\`, `\`)
	return raw, nil
}

// scanBalancedObject scans forward from an opening brace until nesting
// depth returns to zero. Brace characters inside double-quoted string
// literals do not affect depth; backslash escapes inside strings are
// honored so an escaped quote does not end the string.
func scanBalancedObject(s string, start int) (string, bool) {
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
				return s[start : i+1], true
			}
		}
	}

	return "", false
}

// decodeHexEscapes replaces \xHH sequences with the code point they
// denote, leaving all other bytes untouched.
func decodeHexEscapes(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+3 < len(s) && s[i+1] == 'x' {
			if v, ok := hexByte(s[i+2], s[i+3]); ok {
				b.WriteRune(rune(v))
				i += 3
				continue
			}
		}
		b.WriteByte(s[i])
	}

	return b.String()
}

func hexByte(hi, lo byte) (byte, bool) {
	h, ok1 := hexDigit(hi)
	l, ok2 := hexDigit(lo)
	return h<<4 | l, ok1 && ok2
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
