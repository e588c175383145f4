package parser

import (
	"strconv"
	"strings"
	"time"

	"isl/internal/token"
)

// decodeString strips the surrounding quotes and resolves escape
// sequences. Escapes were validated by the lexer; anything unrecognized
// here is passed through verbatim rather than dropped.
func decodeString(raw string) string {
	if len(raw) >= 2 && raw[0] == '"' {
		raw = raw[1:]
		if n := len(raw); n > 0 && raw[n-1] == '"' {
			raw = raw[:n-1]
		}
	}
	if !strings.ContainsRune(raw, '\\') {
		return raw
	}
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); {
		c := raw[i]
		if c != '\\' || i+1 >= len(raw) {
			b.WriteByte(c)
			i++
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			b.WriteByte('\n')
			i++
		case 't':
			b.WriteByte('\t')
			i++
		case 'r':
			b.WriteByte('\r')
			i++
		case '0':
			b.WriteByte(0)
			i++
		case '\\', '"', '/':
			b.WriteByte(raw[i])
			i++
		case 'x':
			if i+2 < len(raw) {
				if v, err := strconv.ParseUint(raw[i+1:i+3], 16, 8); err == nil {
					b.WriteByte(byte(v))
					i += 3
					continue
				}
			}
			i++
		case 'u':
			if i+1 < len(raw) && raw[i+1] == '{' {
				end := strings.IndexByte(raw[i:], '}')
				if end > 2 {
					if v, err := strconv.ParseUint(raw[i+2:i+end], 16, 32); err == nil {
						b.WriteRune(rune(v))
					}
					i += end + 1
					continue
				}
			}
			i++
		default:
			b.WriteByte(raw[i])
			i++
		}
	}
	return b.String()
}

// decodeDuration resolves a duration literal spelling (either "200ms" or
// "15.minutes") into a time.Duration. The lexer only emits DurationLit
// for known units, so failure here means a malformed token slipped
// through and the caller keeps a zero value.
func decodeDuration(raw string) (time.Duration, bool) {
	i := len(raw)
	for i > 0 && isUnitByte(raw[i-1]) {
		i--
	}
	unit := raw[i:]
	num := strings.TrimSuffix(raw[:i], ".")
	num = strings.ReplaceAll(num, "_", "")
	mult, ok := token.LookupDurationUnit(unit)
	if !ok || num == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	return time.Duration(f * float64(mult)), true
}

func isUnitByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

// regexPattern strips the slash delimiters from a regex literal.
func regexPattern(raw string) string {
	if len(raw) >= 2 && raw[0] == '/' {
		raw = raw[1:]
		if n := len(raw); n > 0 && raw[n-1] == '/' {
			raw = raw[:n-1]
		}
	}
	return raw
}
