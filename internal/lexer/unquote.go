package lexer

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

var errBadEscape = errors.New("invalid escape sequence")

// Unquote decodes the text of a string or character literal token,
// including its surrounding quotes.
func Unquote(lit string) (string, error) {
	if len(lit) < 2 {
		return "", errBadEscape
	}
	body := lit[1 : len(lit)-1]
	if !strings.ContainsRune(body, '\\') {
		return body, nil
	}
	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", errBadEscape
		}
		switch body[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '0':
			sb.WriteByte(0)
		case 'a':
			sb.WriteByte('\a')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'v':
			sb.WriteByte('\v')
		case '\\', '\'', '"':
			sb.WriteByte(body[i])
		case 'u':
			if i+5 > len(body) {
				return "", errBadEscape
			}
			v, err := strconv.ParseUint(body[i+1:i+5], 16, 32)
			if err != nil {
				return "", errBadEscape
			}
			sb.WriteRune(rune(v))
			i += 4
		default:
			return "", errBadEscape
		}
	}
	return sb.String(), nil
}

// UnquoteChar decodes a character literal to its UTF-16 code unit value.
func UnquoteChar(lit string) (rune, error) {
	s, err := Unquote(lit)
	if err != nil {
		return 0, err
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || r == utf8.RuneError || r > 0xFFFF {
		return 0, errBadEscape
	}
	return r, nil
}
