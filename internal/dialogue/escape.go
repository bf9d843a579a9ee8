package dialogue

import (
	"strconv"
	"unicode/utf16"
	"unicode/utf8"
)

// literalUnicode rewrites \uXXXX escapes inside the string literals of a valid
// JSON document as literal UTF-8. Surrogate pairs are combined. Control
// characters, quote, backslash and lone surrogates stay escaped so the output
// remains valid JSON.
func literalUnicode(src []byte) []byte {
	out := make([]byte, 0, len(src))
	inString := false

	for i := 0; i < len(src); i++ {
		c := src[i]
		if !inString {
			if c == '"' {
				inString = true
			}
			out = append(out, c)
			continue
		}

		switch c {
		case '"':
			inString = false
			out = append(out, c)
			continue
		case '\\':
		default:
			out = append(out, c)
			continue
		}

		if i+1 >= len(src) {
			out = append(out, c)
			continue
		}
		if src[i+1] != 'u' {
			out = append(out, c, src[i+1])
			i++
			continue
		}

		r, ok := hexRune(src, i+2)
		if !ok {
			out = append(out, c)
			continue
		}
		width := 6
		if utf16.IsSurrogate(r) {
			lo, ok := hexRune(src, i+8)
			if ok && src[i+6] == '\\' && src[i+7] == 'u' {
				if pair := utf16.DecodeRune(r, lo); pair != utf8.RuneError {
					r, width = pair, 12
				}
			}
		}

		if r < 0x20 || r == '"' || r == '\\' || utf16.IsSurrogate(r) {
			out = append(out, src[i:i+width]...)
		} else {
			out = utf8.AppendRune(out, r)
		}
		i += width - 1
	}
	return out
}

// hexRune parses the four hex digits at src[at:at+4].
func hexRune(src []byte, at int) (rune, bool) {
	if at < 0 || at+4 > len(src) {
		return 0, false
	}
	n, err := strconv.ParseUint(string(src[at:at+4]), 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(n), true
}
