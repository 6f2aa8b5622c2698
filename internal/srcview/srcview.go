// Package srcview renders raw schema YAML source for the terminal so the
// on-disk file can be shown next to the extracted script text. The YAML is
// tokenised with chroma and styled with lipgloss styles from the active
// theme.
package srcview

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/charmbracelet/lipgloss"

	"github.com/nxlens/nxlens/internal/theme"
)

// Renderer highlights YAML source text.
type Renderer struct {
	lexer chroma.Lexer
}

// NewRenderer creates a Renderer using chroma's YAML lexer, falling back
// to the plain-text lexer if it is unavailable.
func NewRenderer() *Renderer {
	l := lexers.Get("YAML")
	if l == nil {
		l = lexers.Fallback
	}
	// Coalesce runs of identical token types so the render loop
	// processes fewer, larger chunks.
	l = chroma.Coalesce(l)

	return &Renderer{lexer: l}
}

// Render tokenises src and returns a string where each token is styled
// with the corresponding lipgloss style from th. Newlines are preserved so
// multi-line files render correctly. A nil theme returns src unchanged.
func (r *Renderer) Render(src string, th *theme.Theme) string {
	if th == nil {
		return src
	}

	iter, err := r.lexer.Tokenise(nil, src)
	if err != nil {
		return src
	}

	var b strings.Builder
	b.Grow(len(src) * 2)

	for _, tok := range iter.Tokens() {
		value := tok.Value
		if value == "" {
			continue
		}

		style, ok := styleFor(tok.Type, th)
		if !ok {
			b.WriteString(value)
			continue
		}

		// Style each segment of a multi-line token individually so that
		// a newline is always emitted as-is.
		if strings.Contains(value, "\n") {
			segments := strings.Split(value, "\n")
			for i, seg := range segments {
				if seg != "" {
					b.WriteString(style.Render(seg))
				}
				if i < len(segments)-1 {
					b.WriteByte('\n')
				}
			}
		} else {
			b.WriteString(style.Render(value))
		}
	}

	return b.String()
}

// styleFor maps a chroma token type to the theme style to use. The second
// return value is false when the token should pass through unstyled.
func styleFor(tt chroma.TokenType, th *theme.Theme) (lipgloss.Style, bool) {
	switch {
	case tt.InCategory(chroma.Comment):
		return th.YAMLComment, true
	case tt.InCategory(chroma.LiteralString):
		return th.YAMLString, true
	case tt.InCategory(chroma.LiteralNumber):
		return th.YAMLNumber, true
	case tt.InCategory(chroma.Name), tt.InCategory(chroma.Keyword):
		return th.YAMLKey, true
	default:
		return lipgloss.Style{}, false
	}
}
