package script

import "strings"

// Keywords that increase the indent level for the following lines.
var indentAfter = map[string]struct{}{"do": {}, "then": {}}

// Keywords that decrease the indent level before being emitted.
var dedentBefore = map[string]struct{}{"end": {}, "else": {}}

// Keywords that are forced onto their own line when not already at line
// start.
var ownLine = map[string]struct{}{
	"let": {}, "for": {}, "if": {}, "switch": {}, "case": {},
	"else": {}, "end": {},
}

// Format re-flows code with indentation: the level increases after
// block-opening keywords and braces, decreases before block-closing ones,
// a line break follows statement-terminating semicolons, and certain
// keywords start their own line. The transformation is strictly cosmetic:
// token content and order never change, only whitespace is inserted or
// removed.
func Format(code string, indentSize int) string {
	if code == "" {
		return code
	}
	if indentSize <= 0 {
		indentSize = 4
	}

	var b strings.Builder
	level := 0
	lineStart := true

	indent := func() string {
		return strings.Repeat(" ", level*indentSize)
	}

	for _, tok := range Tokenize(code) {
		if tok.Type == TokenNewline {
			b.WriteByte('\n')
			lineStart = true
			continue
		}
		// Original leading whitespace is replaced by our own indent.
		if tok.Type == TokenWhitespace && lineStart {
			continue
		}

		lower := strings.ToLower(tok.Value)
		keyword := tok.Type == TokenKeyword

		if keyword {
			if _, ok := dedentBefore[lower]; ok && level > 0 {
				level--
			}
		}
		if tok.Type == TokenPunctuation && tok.Value == "}" && level > 0 {
			level--
		}

		if !lineStart && keyword {
			if _, ok := ownLine[lower]; ok {
				b.WriteByte('\n')
				lineStart = true
			}
		}

		if lineStart && tok.Type != TokenWhitespace {
			b.WriteString(indent())
			lineStart = false
		}

		b.WriteString(tok.Value)

		opensBlock := (keyword && hasKey(indentAfter, lower)) ||
			(tok.Type == TokenPunctuation && tok.Value == "{")
		if opensBlock {
			level++
			b.WriteByte('\n')
			lineStart = true
		}
		if tok.Type == TokenPunctuation && tok.Value == ";" {
			b.WriteByte('\n')
			lineStart = true
		}
	}

	return strings.TrimSpace(b.String())
}

func hasKey(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}
