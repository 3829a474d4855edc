// Package literal evaluates numeric and textual literal tokens into their
// semantic values, following the source language's conventions for bases,
// digit underscores, imaginary suffixes, string prefixes, and escapes.
//
// The lowering engine consumes this through the Evaluator interface so a
// host runtime can substitute its own literal semantics.
package literal

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Evaluator converts raw literal source text into semantic values.
type Evaluator interface {
	// EvalNumber evaluates a numeric literal token. It returns int64,
	// *big.Int (for integers beyond 64 bits), float64, or complex128.
	EvalNumber(raw string) (any, error)
	// EvalString evaluates a string literal token. It returns string or
	// []byte depending on the literal's prefix.
	EvalString(raw string) (any, error)
}

// Python evaluates literals with the reference language's rules.
type Python struct{}

// EvalNumber implements Evaluator.
func (Python) EvalNumber(raw string) (any, error) {
	if raw == "" {
		return nil, fmt.Errorf("empty number literal")
	}
	if last := raw[len(raw)-1]; last == 'j' || last == 'J' {
		// Imaginary literal: mantissa followed by j.
		c, err := strconv.ParseComplex(raw[:len(raw)-1]+"i", 128)
		if err != nil {
			return nil, fmt.Errorf("invalid imaginary literal %q", raw)
		}
		return c, nil
	}
	if i, err := strconv.ParseInt(raw, 0, 64); err == nil {
		return i, nil
	} else if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
		n := new(big.Int)
		if _, ok := n.SetString(raw, 0); ok {
			return n, nil
		}
		return nil, fmt.Errorf("invalid integer literal %q", raw)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f, nil
	}
	return nil, fmt.Errorf("invalid number literal %q", raw)
}

// EvalString implements Evaluator.
func (Python) EvalString(raw string) (any, error) {
	isRaw := false
	isBytes := false
	i := 0
prefix:
	for ; i < len(raw); i++ {
		switch raw[i] {
		case 'r', 'R':
			isRaw = true
		case 'b', 'B':
			isBytes = true
		case 'u', 'U':
			// Legacy unicode prefix, no effect.
		case 'f', 'F':
			return nil, fmt.Errorf("formatted string literal has no constant value")
		default:
			break prefix
		}
	}
	body, err := unquote(raw[i:])
	if err != nil {
		return nil, err
	}
	if isRaw {
		if isBytes {
			return []byte(body), nil
		}
		return body, nil
	}
	return decodeEscapes(body, isBytes)
}

// unquote strips the surrounding quotes, handling triple quoting.
func unquote(s string) (string, error) {
	if len(s) < 2 || (s[0] != '\'' && s[0] != '"') {
		return "", fmt.Errorf("malformed string literal %q", s)
	}
	quote := s[0]
	if len(s) >= 6 && s[1] == quote && s[2] == quote {
		if s[len(s)-1] != quote || s[len(s)-2] != quote || s[len(s)-3] != quote {
			return "", fmt.Errorf("unterminated triple-quoted literal %q", s)
		}
		return s[3 : len(s)-3], nil
	}
	if s[len(s)-1] != quote {
		return "", fmt.Errorf("unterminated string literal %q", s)
	}
	return s[1 : len(s)-1], nil
}

// decodeEscapes resolves backslash escapes. Unrecognized escapes keep the
// backslash, matching the reference language.
func decodeEscapes(body string, isBytes bool) (any, error) {
	var b strings.Builder
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(body) {
			return nil, fmt.Errorf("trailing backslash in string literal")
		}
		esc := body[i+1]
		i += 2
		switch esc {
		case '\n':
			// Line continuation inside the literal.
		case '\\', '\'', '"':
			b.WriteByte(esc)
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'v':
			b.WriteByte('\v')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			val := int(esc - '0')
			for n := 1; n < 3 && i < len(body) && body[i] >= '0' && body[i] <= '7'; n++ {
				val = val*8 + int(body[i]-'0')
				i++
			}
			b.WriteByte(byte(val))
		case 'x':
			if i+2 > len(body) {
				return nil, fmt.Errorf("truncated \\x escape")
			}
			val, err := strconv.ParseUint(body[i:i+2], 16, 8)
			if err != nil {
				return nil, fmt.Errorf("invalid \\x escape %q", body[i:i+2])
			}
			b.WriteByte(byte(val))
			i += 2
		case 'u', 'U':
			if isBytes {
				// Not an escape in bytes literals.
				b.WriteByte('\\')
				b.WriteByte(esc)
				break
			}
			width := 4
			if esc == 'U' {
				width = 8
			}
			if i+width > len(body) {
				return nil, fmt.Errorf("truncated \\%c escape", esc)
			}
			val, err := strconv.ParseUint(body[i:i+width], 16, 32)
			if err != nil || val > 0x10FFFF {
				return nil, fmt.Errorf("invalid \\%c escape %q", esc, body[i:i+width])
			}
			b.WriteRune(rune(val))
			i += width
		case 'N':
			if isBytes {
				b.WriteByte('\\')
				b.WriteByte(esc)
				break
			}
			return nil, fmt.Errorf("named unicode escapes are not supported")
		default:
			b.WriteByte('\\')
			b.WriteByte(esc)
		}
	}
	if isBytes {
		return []byte(b.String()), nil
	}
	return b.String(), nil
}
