package script

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nxlens/nxlens/internal/theme"
)

// CSSClass returns the presentation class for a token type, or "" for
// whitespace and newlines, which pass through unstyled.
func CSSClass(t TokenType) string {
	switch t {
	case TokenKeyword:
		return "nx-keyword"
	case TokenOperator:
		return "nx-operator"
	case TokenString:
		return "nx-string"
	case TokenNumber:
		return "nx-number"
	case TokenComment:
		return "nx-comment"
	case TokenBuiltin:
		return "nx-builtin"
	case TokenField:
		return "nx-field"
	case TokenTable:
		return "nx-table"
	case TokenPunctuation:
		return "nx-punctuation"
	case TokenIdentifier:
		return "nx-identifier"
	}
	return ""
}

// Lines groups tokens into display lines by splitting strictly on NEWLINE
// tokens. A string or comment token that itself contains embedded newline
// characters remains one token and is never split.
func Lines(tokens []Token) [][]Token {
	lines := [][]Token{nil}
	for _, tok := range tokens {
		if tok.Type == TokenNewline {
			lines = append(lines, nil)
			continue
		}
		lines[len(lines)-1] = append(lines[len(lines)-1], tok)
	}
	return lines
}

// HTMLOptions controls HTML rendering.
type HTMLOptions struct {
	// Highlight wraps case-insensitive substring matches of this search
	// term in a nx-highlight span.
	Highlight string
	// LineNumbers prefixes each line with its number.
	LineNumbers bool
}

// HTML renders code as syntax-highlighted HTML: one span per token,
// carrying the token's presentation class; markup-unsafe characters are
// escaped.
func HTML(code string, opts HTMLOptions) string {
	var b strings.Builder
	b.WriteString(`<div class="nx-code">`)

	for i, line := range Lines(Tokenize(code)) {
		if i > 0 {
			b.WriteByte('\n')
		}
		if opts.LineNumbers {
			fmt.Fprintf(&b, `<span class="nx-line-number">%d</span>`, i+1)
		}
		b.WriteString(`<span class="nx-line">`)
		for _, tok := range line {
			writeTokenHTML(&b, tok, opts.Highlight)
		}
		b.WriteString(`</span>`)
	}

	b.WriteString(`</div>`)
	return b.String()
}

func writeTokenHTML(b *strings.Builder, tok Token, highlight string) {
	value := markHTML(tok.Value, highlight)
	if class := CSSClass(tok.Type); class != "" {
		fmt.Fprintf(b, `<span class="%s">%s</span>`, class, value)
	} else {
		b.WriteString(value)
	}
}

// markHTML escapes value and wraps every case-insensitive occurrence of
// term in a highlight span. Escaping happens per segment so the inserted
// markup survives.
func markHTML(value, term string) string {
	if term == "" {
		return escapeHTML(value)
	}
	lowerValue := strings.ToLower(value)
	lowerTerm := strings.ToLower(term)

	var b strings.Builder
	for {
		idx := strings.Index(lowerValue, lowerTerm)
		if idx < 0 {
			b.WriteString(escapeHTML(value))
			return b.String()
		}
		b.WriteString(escapeHTML(value[:idx]))
		b.WriteString(`<span class="nx-highlight">`)
		b.WriteString(escapeHTML(value[idx : idx+len(term)]))
		b.WriteString(`</span>`)
		value = value[idx+len(term):]
		lowerValue = lowerValue[idx+len(term):]
	}
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escapeHTML(s string) string { return htmlEscaper.Replace(s) }

// Terminal renders code for the terminal, styling each token with the
// corresponding lipgloss style from th. Newlines are emitted as-is so
// multi-line scripts render correctly; a token containing embedded
// newlines is styled per segment. A nil theme returns the code unchanged.
func Terminal(code string, th *theme.Theme) string {
	if th == nil {
		return code
	}

	var b strings.Builder
	b.Grow(len(code) * 2) // rough estimate

	for _, tok := range Tokenize(code) {
		if tok.Type == TokenNewline || tok.Type == TokenWhitespace {
			b.WriteString(tok.Value)
			continue
		}
		style := styleFor(tok.Type, th)

		if strings.Contains(tok.Value, "\n") {
			segments := strings.Split(tok.Value, "\n")
			for i, seg := range segments {
				if seg != "" {
					b.WriteString(style.Render(seg))
				}
				if i < len(segments)-1 {
					b.WriteByte('\n')
				}
			}
		} else {
			b.WriteString(style.Render(tok.Value))
		}
	}

	return b.String()
}

func styleFor(t TokenType, th *theme.Theme) lipgloss.Style {
	switch t {
	case TokenKeyword:
		return th.Keyword
	case TokenOperator:
		return th.Operator
	case TokenString:
		return th.String
	case TokenNumber:
		return th.Number
	case TokenComment:
		return th.Comment
	case TokenBuiltin:
		return th.Builtin
	case TokenField:
		return th.Field
	case TokenTable:
		return th.Table
	case TokenPunctuation:
		return th.Punctuation
	default:
		return th.Identifier
	}
}
