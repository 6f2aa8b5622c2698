package script

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenize lexes src into tokens using maximal munch: at each position the
// longest valid token is consumed before advancing. It never fails; any
// byte sequence produces a token stream whose concatenated values equal
// src exactly.
func Tokenize(src string) []Token {
	var tokens []Token
	pos := 0

	emit := func(t TokenType, end int) {
		tokens = append(tokens, Token{Type: t, Value: src[pos:end], Start: pos, End: end})
		pos = end
	}

	for pos < len(src) {
		c := src[pos]

		switch {
		case c == '\n':
			emit(TokenNewline, pos+1)

		case c == ' ' || c == '\t' || c == '\r':
			end := pos
			for end < len(src) && (src[end] == ' ' || src[end] == '\t' || src[end] == '\r') {
				end++
			}
			emit(TokenWhitespace, end)

		// Line comment to end of line; the newline stays its own token.
		case strings.HasPrefix(src[pos:], "//"):
			end := strings.IndexByte(src[pos:], '\n')
			if end == -1 {
				end = len(src)
			} else {
				end += pos
			}
			emit(TokenComment, end)

		// Block comment delimited by --- on both ends. Unterminated
		// comments run to end-of-input.
		case strings.HasPrefix(src[pos:], "---"):
			end := strings.Index(src[pos+3:], "---")
			if end == -1 {
				end = len(src)
			} else {
				end += pos + 3 + 3
			}
			emit(TokenComment, end)

		case c == '"' || c == '\'':
			emit(TokenString, scanString(src, pos, c))

		case isDigit(c) || (c == '.' && pos+1 < len(src) && isDigit(src[pos+1])):
			emit(TokenNumber, scanNumber(src, pos))

		case strings.HasPrefix(src[pos:], ":="):
			emit(TokenOperator, pos+2)

		case hasTwoCharOp(src[pos:]):
			emit(TokenOperator, pos+2)

		case strings.IndexByte("+-*/%=<>", c) >= 0:
			emit(TokenOperator, pos+1)

		case strings.IndexByte("()[]{},.;:", c) >= 0:
			emit(TokenPunctuation, pos+1)

		default:
			r, size := utf8.DecodeRuneInString(src[pos:])
			if unicode.IsLetter(r) || r == '_' {
				end := scanWord(src, pos)
				emit(classifyWord(src, pos, end), end)
			} else {
				// Unknown character: pass through as an identifier so
				// the stream stays lossless.
				emit(TokenIdentifier, pos+size)
			}
		}
	}

	return tokens
}

// scanString consumes a quoted string. A backslash escape consumes the
// following character unconditionally, even if it is the closing quote.
// An unterminated string runs to end-of-input.
func scanString(src string, pos int, quote byte) int {
	end := pos + 1
	for end < len(src) {
		switch {
		case src[end] == '\\' && end+1 < len(src):
			end += 2
		case src[end] == quote:
			return end + 1
		default:
			end++
		}
	}
	return end
}

// scanNumber consumes digits with at most one decimal point and an
// optional signed exponent.
func scanNumber(src string, pos int) int {
	end := pos
	hasDot := false
	for end < len(src) {
		switch {
		case isDigit(src[end]):
			end++
		case src[end] == '.' && !hasDot:
			hasDot = true
			end++
		case (src[end] == 'e' || src[end] == 'E') && end+1 < len(src) &&
			(isDigit(src[end+1]) || src[end+1] == '+' || src[end+1] == '-'):
			end++
			if end < len(src) && (src[end] == '+' || src[end] == '-') {
				end++
			}
		default:
			return end
		}
	}
	return end
}

func scanWord(src string, pos int) int {
	end := pos
	for end < len(src) {
		r, size := utf8.DecodeRuneInString(src[end:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}
		end += size
	}
	return end
}

// classifyWord disambiguates a scanned word into keyword, builtin, table
// code, field code or plain identifier.
func classifyWord(src string, pos, end int) TokenType {
	word := src[pos:end]
	lower := strings.ToLower(word)

	if IsKeyword(lower) {
		return TokenKeyword
	}

	// A builtin name is only a BUILTIN when a call actually follows;
	// otherwise it is an ordinary identifier shadowing the library name.
	if IsBuiltin(lower) && nextNonBlank(src, end) == '(' {
		return TokenBuiltin
	}

	// A word reached through a dot is a member access on a table or
	// record, so it names a field.
	if prevNonBlank(src, pos) == '.' {
		return TokenField
	}

	// Bare short all-caps alphanumeric tokens model the platform's
	// generated table/field codes (A, B3, ZZ). A following dot marks a
	// table reference; without one it is a field code.
	if isShortCode(word) {
		if nextNonBlank(src, end) == '.' {
			return TokenTable
		}
		return TokenField
	}

	return TokenIdentifier
}

// nextNonBlank returns the first byte after pos that is not a space or
// tab, or 0 at end-of-input.
func nextNonBlank(src string, pos int) byte {
	for pos < len(src) && (src[pos] == ' ' || src[pos] == '\t') {
		pos++
	}
	if pos < len(src) {
		return src[pos]
	}
	return 0
}

// prevNonBlank returns the last byte before pos that is not a space or
// tab, or 0 at start-of-input.
func prevNonBlank(src string, pos int) byte {
	for pos > 0 && (src[pos-1] == ' ' || src[pos-1] == '\t') {
		pos--
	}
	if pos > 0 {
		return src[pos-1]
	}
	return 0
}

// isShortCode reports whether word matches [A-Z][A-Z0-9]{0,3}.
func isShortCode(word string) bool {
	if len(word) < 1 || len(word) > 4 {
		return false
	}
	if word[0] < 'A' || word[0] > 'Z' {
		return false
	}
	for i := 1; i < len(word); i++ {
		c := word[i]
		if (c < 'A' || c > 'Z') && !isDigit(c) {
			return false
		}
	}
	return true
}

func hasTwoCharOp(s string) bool {
	if len(s) < 2 {
		return false
	}
	switch s[:2] {
	case "<=", ">=", "!=", "<>":
		return true
	}
	return false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
