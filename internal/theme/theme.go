// Package theme provides a centralized styling system for nxlens terminal
// output. Every visual element references a lipgloss.Style held in a Theme
// struct so that the entire look-and-feel can be swapped at runtime.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme holds lipgloss.Style values for every element nxlens draws.
type Theme struct {
	Name string

	// Script syntax highlighting
	Keyword     lipgloss.Style
	Operator    lipgloss.Style
	String      lipgloss.Style
	Number      lipgloss.Style
	Comment     lipgloss.Style
	Builtin     lipgloss.Style
	Field       lipgloss.Style
	Table       lipgloss.Style
	Punctuation lipgloss.Style
	Identifier  lipgloss.Style

	// Raw YAML source view
	YAMLKey     lipgloss.Style
	YAMLString  lipgloss.Style
	YAMLNumber  lipgloss.Style
	YAMLComment lipgloss.Style

	// Browser chrome
	BrowserBorder   lipgloss.Style
	BrowserTitle    lipgloss.Style
	BrowserSelected lipgloss.Style
	BrowserMatch    lipgloss.Style
	LineNumber      lipgloss.Style

	// General
	StatusBar   lipgloss.Style
	ErrorText   lipgloss.Style
	WarningText lipgloss.Style
	MutedText   lipgloss.Style
}

// ---------------------------------------------------------------------------
// Theme definitions
// ---------------------------------------------------------------------------

// newDefaultTheme builds the default dark theme.
func newDefaultTheme() *Theme {
	return &Theme{
		Name: "default",

		Keyword: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#C586C0")),
		Operator: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D4D4D4")),
		String: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CE9178")),
		Number: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#B5CEA8")),
		Comment: lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#6A9955")),
		Builtin: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#DCDCAA")),
		Field: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CDCFE")),
		Table: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4EC9B0")),
		Punctuation: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D4D4D4")),
		Identifier: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D4D4D4")),

		YAMLKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CDCFE")),
		YAMLString: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CE9178")),
		YAMLNumber: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#B5CEA8")),
		YAMLComment: lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#6A9955")),

		BrowserBorder: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3C3C3C")),
		BrowserTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#569CD6")).
			PaddingLeft(1),
		BrowserSelected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#264F78")),
		BrowserMatch: lipgloss.NewStyle().
			Background(lipgloss.Color("#613214")),
		LineNumber: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#858585")),

		StatusBar: lipgloss.NewStyle().
			Background(lipgloss.Color("#007ACC")).
			Foreground(lipgloss.Color("#FFFFFF")),
		ErrorText: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F44747")),
		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCA700")),
		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#808080")),
	}
}

// newLightTheme builds a light theme for bright terminals.
func newLightTheme() *Theme {
	return &Theme{
		Name: "light",

		Keyword: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#AF00DB")),
		Operator: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")),
		String: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A31515")),
		Number: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#098658")),
		Comment: lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#008000")),
		Builtin: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#795E26")),
		Field: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#001080")),
		Table: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#267F99")),
		Punctuation: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")),
		Identifier: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")),

		YAMLKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#001080")),
		YAMLString: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A31515")),
		YAMLNumber: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#098658")),
		YAMLComment: lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#008000")),

		BrowserBorder: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#D0D0D0")),
		BrowserTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0000FF")).
			PaddingLeft(1),
		BrowserSelected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#ADD6FF")),
		BrowserMatch: lipgloss.NewStyle().
			Background(lipgloss.Color("#FFF3CD")),
		LineNumber: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E7781")),

		StatusBar: lipgloss.NewStyle().
			Background(lipgloss.Color("#007ACC")).
			Foreground(lipgloss.Color("#FFFFFF")),
		ErrorText: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#CD3131")),
		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#795E26")),
		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E7781")),
	}
}

// ---------------------------------------------------------------------------
// Registry
// ---------------------------------------------------------------------------

var themes = map[string]func() *Theme{
	"default": newDefaultTheme,
	"light":   newLightTheme,
}

// Default returns the default dark theme.
func Default() *Theme {
	return newDefaultTheme()
}

// Get returns the theme with the given name, falling back to the default
// theme for unknown names.
func Get(name string) *Theme {
	if build, ok := themes[name]; ok {
		return build()
	}
	return Default()
}

// Names returns the available theme names.
func Names() []string {
	return []string{"default", "light"}
}
