// Package script implements lexical analysis of the embedded Ninox script
// language: a hand-written maximal-munch tokenizer, an HTML and a terminal
// highlighter, and a cosmetic re-indenting formatter.
//
// The tokenizer is lossless: concatenating every emitted token's value in
// order reproduces the input exactly. It never fails on malformed input;
// an unterminated string or block comment simply runs to end-of-input.
package script

// TokenType classifies a token.
type TokenType int

const (
	TokenKeyword TokenType = iota
	TokenOperator
	TokenString
	TokenNumber
	TokenComment
	TokenBuiltin
	TokenField
	TokenTable
	TokenPunctuation
	TokenIdentifier
	TokenWhitespace
	TokenNewline
)

func (t TokenType) String() string {
	switch t {
	case TokenKeyword:
		return "KEYWORD"
	case TokenOperator:
		return "OPERATOR"
	case TokenString:
		return "STRING"
	case TokenNumber:
		return "NUMBER"
	case TokenComment:
		return "COMMENT"
	case TokenBuiltin:
		return "BUILTIN"
	case TokenField:
		return "FIELD"
	case TokenTable:
		return "TABLE"
	case TokenPunctuation:
		return "PUNCTUATION"
	case TokenIdentifier:
		return "IDENTIFIER"
	case TokenWhitespace:
		return "WHITESPACE"
	case TokenNewline:
		return "NEWLINE"
	}
	return "UNKNOWN"
}

// Token is a single lexed token. Start and End are byte offsets into the
// source; Value is source[Start:End].
type Token struct {
	Type  TokenType
	Value string
	Start int
	End   int
}
