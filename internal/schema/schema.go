// Package schema defines the typed in-memory model of one exported Ninox
// database: tables, fields, UI elements, views and reports, each of which
// may carry embedded script text in its attribute map. A Database is an
// immutable snapshot produced by the loader; it is rebuilt wholesale on
// resync and never mutated in place.
package schema

import (
	"sort"
	"strings"
)

// Database is the root of one loaded schema snapshot.
type Database struct {
	ID      string
	Name    string
	Version int
	Path    string
	// Layout names the on-disk layout generation the loader detected
	// ("flat" or "nested").
	Layout string
	// SourceFile is the database YAML file name relative to Path.
	SourceFile string

	// Tables is keyed by the stable on-disk table identifier. Caption is
	// display-only; see TableByName for caption lookup.
	Tables  map[string]*Table
	Views   []View
	Reports []Report

	// Attrs holds database-level script attributes (globalCode, afterOpen,
	// beforeOpen) as raw text.
	Attrs map[string]string

	// RawFiles maps relative file paths to their decoded neutral value
	// trees. The dependency scanner consumes these independently of the
	// typed model.
	RawFiles map[string]any

	// Warnings collects non-fatal problems encountered during the load
	// (skipped files, malformed entries). A database with warnings is
	// still usable.
	Warnings []string
}

// Table is one table definition.
type Table struct {
	ID      string
	Caption string

	// SourceFile is the path of the YAML file that defines this table,
	// relative to the database directory. In the flat layout every table
	// shares the database file.
	SourceFile string

	Fields map[string]*Field
	UIs    map[string]*UIElement

	// Attrs holds table-level script attributes (triggers, permission
	// predicates, print layout).
	Attrs map[string]string
}

// Field is one field definition.
type Field struct {
	ID       string
	Caption  string
	Base     string // base type tag: text, number, ref, fn, button, ...
	Required bool

	// Reference targets. RefTypeID points at a table in the same
	// database; DBID marks a cross-database reference and names the
	// referenced database.
	RefTypeID   string
	RefTypeUUID string
	DBID        string
	DBName      string

	Attrs map[string]string
}

// UIElement is one UI widget (button, embedded view, layout element).
type UIElement struct {
	ID      string
	Caption string
	Base    string

	Attrs map[string]string
}

// View is a database-level saved view.
type View struct {
	ID   string
	Name string

	Attrs map[string]string
}

// Report is a print/report definition. Column expressions live in an
// ordered array rather than a map.
type Report struct {
	ID   string
	Name string

	Attrs   map[string]string
	Columns []ReportColumn
}

// ReportColumn is one column of a report.
type ReportColumn struct {
	Name  string
	Attrs map[string]string
}

// DisplayName returns the field caption, falling back to the id.
func (f *Field) DisplayName() string {
	if f.Caption != "" {
		return f.Caption
	}
	return f.ID
}

// DisplayName returns the UI element caption, falling back to the id.
func (u *UIElement) DisplayName() string {
	if u.Caption != "" {
		return u.Caption
	}
	return u.ID
}

// DisplayName returns the table caption, falling back to the id.
func (t *Table) DisplayName() string {
	if t.Caption != "" {
		return t.Caption
	}
	return t.ID
}

// IsExternalRef reports whether the field points at another database.
func (f *Field) IsExternalRef() bool {
	return f.DBID != ""
}

// TableIDs returns the table ids in sorted order for deterministic
// iteration.
func (d *Database) TableIDs() []string {
	ids := make([]string, 0, len(d.Tables))
	for id := range d.Tables {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// TableByName resolves a table by display caption, falling back to the
// on-disk id. When two tables share a caption the one with the smaller id
// wins, so lookups stay deterministic while both tables remain in the
// model.
func (d *Database) TableByName(name string) *Table {
	for _, id := range d.TableIDs() {
		t := d.Tables[id]
		if strings.EqualFold(t.Caption, name) {
			return t
		}
	}
	return d.Tables[name]
}

// TableCount returns the number of tables.
func (d *Database) TableCount() int { return len(d.Tables) }

// FieldIDs returns the field ids in sorted order.
func (t *Table) FieldIDs() []string {
	ids := make([]string, 0, len(t.Fields))
	for id := range t.Fields {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// UIIDs returns the UI element ids in sorted order.
func (t *Table) UIIDs() []string {
	ids := make([]string, 0, len(t.UIs))
	for id := range t.UIs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
