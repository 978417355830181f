package properties

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"golang.org/x/text/encoding/charmap"
)

// Properties is an insertion-ordered set of string pairs. Later duplicates of
// a key replace the earlier value but keep its position.
type Properties struct {
	keys   []string
	values map[string]string
}

// New builds properties from alternating key, value arguments. A trailing key
// without a value is ignored.
func New(pairs ...string) *Properties {
	p := &Properties{values: make(map[string]string, len(pairs)/2)}
	for i := 0; i+1 < len(pairs); i += 2 {
		p.set(pairs[i], pairs[i+1])
	}
	return p
}

// Load reads and decodes a properties stream.
func Load(r io.Reader) (*Properties, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read properties: %w", err)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("decode properties charset: %w", err)
	}

	p := &Properties{values: map[string]string{}}
	for _, line := range logicalLines(string(decoded)) {
		rawKey, rawValue := splitLine(line)
		key, err := unescape(rawKey)
		if err != nil {
			return nil, fmt.Errorf("parse properties: key %q: %w", rawKey, err)
		}
		value, err := unescape(rawValue)
		if err != nil {
			return nil, fmt.Errorf("parse properties: value of %q: %w", key, err)
		}
		p.set(key, value)
	}
	return p, nil
}

// Get returns the value for key.
func (p *Properties) Get(key string) (string, bool) {
	if p == nil {
		return "", false
	}
	value, ok := p.values[key]
	return value, ok
}

// GetOrDefault returns the value for key or fallback when absent.
func (p *Properties) GetOrDefault(key, fallback string) string {
	if value, ok := p.Get(key); ok {
		return value
	}
	return fallback
}

// Has reports whether key is present.
func (p *Properties) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Keys returns the keys in file order.
func (p *Properties) Keys() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Len returns the number of distinct keys.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

func (p *Properties) set(key, value string) {
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\f'
}

// logicalLines joins continued lines and drops blank and comment lines.
// Leading whitespace is stripped from every natural line; a line ending in
// an odd number of backslashes continues on the next one.
func logicalLines(text string) []string {
	var (
		out        []string
		current    strings.Builder
		continuing bool
	)
	for _, natural := range naturalLines(text) {
		trimmed := strings.TrimLeft(natural, " \t\f")
		if !continuing && (trimmed == "" || trimmed[0] == '#' || trimmed[0] == '!') {
			continue
		}
		if trailingBackslashes(trimmed)%2 == 1 {
			current.WriteString(trimmed[:len(trimmed)-1])
			continuing = true
			continue
		}
		current.WriteString(trimmed)
		out = append(out, current.String())
		current.Reset()
		continuing = false
	}
	if continuing {
		out = append(out, current.String())
	}
	return out
}

// naturalLines splits on \n, \r, and \r\n.
func naturalLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, text[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, text[start:i])
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

func trailingBackslashes(s string) int {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n
}

// splitLine separates a logical line at the first unescaped '=', ':' or
// whitespace. Whitespace around the separator is skipped, and a whitespace
// separator may be followed by one '=' or ':'. A line without a separator is
// a key with an empty value. Both halves are still escaped.
func splitLine(line string) (key, value string) {
	keyEnd, valueStart := len(line), len(line)
	hasSep := false
	backslash := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == '\\' {
			backslash = !backslash
			continue
		}
		if !backslash {
			if c == '=' || c == ':' {
				keyEnd, valueStart, hasSep = i, i+1, true
				break
			}
			if isBlank(c) {
				keyEnd, valueStart = i, i+1
				break
			}
		}
		backslash = false
	}
	for valueStart < len(line) {
		c := line[valueStart]
		if isBlank(c) {
			valueStart++
			continue
		}
		if !hasSep && (c == '=' || c == ':') {
			hasSep = true
			valueStart++
			continue
		}
		break
	}
	return line[:keyEnd], line[valueStart:]
}

var errMalformedEscape = errors.New("malformed \\uxxxx encoding")

func unescape(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			break
		}
		switch s[i] {
		case 't':
			b.WriteByte('\t')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 'f':
			b.WriteByte('\f')
		case 'u':
			r, err := hexRune(s, i+1)
			if err != nil {
				return "", err
			}
			i += 4
			if utf16.IsSurrogate(r) {
				// A high surrogate pairs with a directly following \uXXXX escape.
				if i+2 < len(s) && s[i+1] == '\\' && s[i+2] == 'u' {
					if low, err := hexRune(s, i+3); err == nil {
						if pair := utf16.DecodeRune(r, low); pair != unicode.ReplacementChar {
							b.WriteRune(pair)
							i += 6
							continue
						}
					}
				}
			}
			b.WriteRune(r)
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String(), nil
}

func hexRune(s string, start int) (rune, error) {
	if start+4 > len(s) {
		return 0, errMalformedEscape
	}
	code, err := strconv.ParseUint(s[start:start+4], 16, 16)
	if err != nil {
		return 0, errMalformedEscape
	}
	return rune(code), nil
}
