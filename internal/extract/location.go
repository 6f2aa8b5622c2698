// Package extract flattens a typed schema into a list of code locations:
// one record per embedded script occurrence, carrying its structural
// address (level, category, path) alongside the unescaped script text.
package extract

import (
	"strings"
)

// Level is the structural level a script attaches to.
type Level int

const (
	LevelDatabase Level = iota + 1
	LevelTable
	LevelField
	LevelUI
	LevelView
	LevelReport
)

func (l Level) String() string {
	switch l {
	case LevelDatabase:
		return "DATABASE"
	case LevelTable:
		return "TABLE"
	case LevelField:
		return "FIELD"
	case LevelUI:
		return "UI"
	case LevelView:
		return "VIEW"
	case LevelReport:
		return "REPORT"
	}
	return "UNKNOWN"
}

// Category is the derived classification of a code occurrence, a
// deterministic function of (level, code type).
type Category string

const (
	CategoryGlobal        Category = "global"
	CategoryTrigger       Category = "trigger"
	CategoryFormula       Category = "formula"
	CategoryButton        Category = "button"
	CategoryVisibility    Category = "visibility"
	CategoryPermission    Category = "permission"
	CategoryDynamicChoice Category = "dchoice"
	CategoryValidation    Category = "validation"
	CategoryReference     Category = "reference"
	CategoryView          Category = "view"
	CategoryReport        Category = "report"
	CategoryOther         Category = "other"
)

// categoryNames maps categories to their display names.
var categoryNames = map[Category]string{
	CategoryGlobal:        "Global Code",
	CategoryTrigger:       "Triggers",
	CategoryFormula:       "Formulas",
	CategoryButton:        "Buttons",
	CategoryVisibility:    "Visibility",
	CategoryPermission:    "Permissions",
	CategoryDynamicChoice: "Dynamic Choices",
	CategoryValidation:    "Validation",
	CategoryReference:     "References",
	CategoryView:          "Views",
	CategoryReport:        "Reports",
	CategoryOther:         "Other",
}

// DisplayName returns the human-readable category name.
func (c Category) DisplayName() string {
	if n, ok := categoryNames[c]; ok {
		return n
	}
	return categoryNames[CategoryOther]
}

// Location is one discrete occurrence of embedded script text together
// with its structural address. Code is always non-blank.
type Location struct {
	DatabaseName string
	DatabaseID   string
	TableName    string
	TableID      string
	ElementName  string // field or UI element display name
	ElementID    string

	CodeType string
	Code     string
	Level    Level
	Category Category

	ElementBase string // base type of the owning field/UI element
	SourcePath  string // position inside the YAML tree
	FilePath    string // originating YAML file
	LineCount   int
}

// newLocation fills the derived fields common to every constructor.
func newLocation(loc Location) Location {
	loc.LineCount = strings.Count(loc.Code, "\n") + 1
	return loc
}

// Path returns the full hierarchical path, e.g. "DB.Table.Field.fn".
// Paths are unique within one database snapshot.
func (l *Location) Path() string {
	parts := []string{l.DatabaseName}
	if l.TableName != "" {
		parts = append(parts, l.TableName)
	}
	if l.ElementName != "" {
		parts = append(parts, l.ElementName)
	}
	parts = append(parts, l.CodeType)
	return strings.Join(parts, ".")
}

// ShortPath returns the path without the database name.
func (l *Location) ShortPath() string {
	var parts []string
	if l.TableName != "" {
		parts = append(parts, l.TableName)
	}
	if l.ElementName != "" {
		parts = append(parts, l.ElementName)
	}
	parts = append(parts, l.CodeType)
	return strings.Join(parts, ".")
}

// TypeDisplayName returns the human-readable name of the code type.
func (l *Location) TypeDisplayName() string {
	if n, ok := codeTypeNames[l.CodeType]; ok {
		return n
	}
	return l.CodeType
}

// CategoryName returns the human-readable category name.
func (l *Location) CategoryName() string {
	return l.Category.DisplayName()
}

// Icon returns the icon key for the code type, for list displays.
func (l *Location) Icon() string {
	if icon, ok := codeTypeIcons[l.CodeType]; ok {
		return icon
	}
	return "code"
}

// Preview returns a single-line, whitespace-collapsed preview of the code,
// truncated to max characters.
func (l *Location) Preview(max int) string {
	preview := strings.Join(strings.Fields(l.Code), " ")
	if max > 3 && len(preview) > max {
		preview = preview[:max-3] + "..."
	}
	return preview
}
