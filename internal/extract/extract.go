package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nxlens/nxlens/internal/schema"
)

// Formula attributes shorter than this (after trimming) are plain field
// references, not code, and are excluded as noise.
const minFormulaLen = 3

// FromDatabase walks the typed model and emits one Location per present,
// textual, non-blank code attribute. Output order is deterministic:
// database attributes first, then tables (sorted by id) with their fields
// and UI elements (sorted by id), then views and reports in file order.
func FromDatabase(db *schema.Database) []Location {
	var locs []Location

	// Database level.
	for _, spec := range databaseAttrs {
		code, ok := presentCode(db.Attrs, spec.name)
		if !ok {
			continue
		}
		locs = append(locs, newLocation(Location{
			DatabaseName: db.Name,
			DatabaseID:   db.ID,
			CodeType:     spec.name,
			Code:         Unescape(code),
			Level:        LevelDatabase,
			Category:     spec.cat,
			SourcePath:   "database.schema." + spec.name,
			FilePath:     databaseFile(db),
		}))
	}

	for _, tid := range db.TableIDs() {
		t := db.Tables[tid]
		tableName := t.DisplayName()
		tableFile := sourceFile(db, t.SourceFile)

		// Table level.
		for _, spec := range tableAttrs {
			code, ok := presentCode(t.Attrs, spec.name)
			if !ok {
				continue
			}
			locs = append(locs, newLocation(Location{
				DatabaseName: db.Name,
				DatabaseID:   db.ID,
				TableName:    tableName,
				TableID:      t.ID,
				CodeType:     spec.name,
				Code:         Unescape(code),
				Level:        LevelTable,
				Category:     spec.cat,
				SourcePath:   fmt.Sprintf("tables.%s.%s", t.ID, spec.name),
				FilePath:     tableFile,
			}))
		}

		// Field level.
		for _, fid := range t.FieldIDs() {
			f := t.Fields[fid]
			for _, spec := range fieldAttrs {
				code, ok := presentCode(f.Attrs, spec.name)
				if !ok {
					continue
				}
				if spec.name == "fn" && len(strings.TrimSpace(code)) < minFormulaLen {
					continue
				}
				locs = append(locs, newLocation(Location{
					DatabaseName: db.Name,
					DatabaseID:   db.ID,
					TableName:    tableName,
					TableID:      t.ID,
					ElementName:  f.DisplayName(),
					ElementID:    f.ID,
					CodeType:     spec.name,
					Code:         Unescape(code),
					Level:        LevelField,
					Category:     spec.cat,
					ElementBase:  f.Base,
					SourcePath:   fmt.Sprintf("tables.%s.fields.%s.%s", t.ID, f.ID, spec.name),
					FilePath:     tableFile,
				}))
			}
		}

		// UI level.
		for _, uid := range t.UIIDs() {
			u := t.UIs[uid]
			for _, spec := range uiAttrs {
				code, ok := presentCode(u.Attrs, spec.name)
				if !ok {
					continue
				}
				locs = append(locs, newLocation(Location{
					DatabaseName: db.Name,
					DatabaseID:   db.ID,
					TableName:    tableName,
					TableID:      t.ID,
					ElementName:  u.DisplayName(),
					ElementID:    u.ID,
					CodeType:     spec.name,
					Code:         Unescape(code),
					Level:        LevelUI,
					Category:     spec.cat,
					ElementBase:  u.Base,
					SourcePath:   fmt.Sprintf("tables.%s.uis.%s.%s", t.ID, u.ID, spec.name),
					FilePath:     tableFile,
				}))
			}
		}
	}

	// View level. Node-less views group under the "[Views]" sentinel.
	for _, view := range db.Views {
		name := view.Name
		if name == "" {
			name = "View"
		}
		for _, spec := range viewAttrs {
			code, ok := presentCode(view.Attrs, spec.name)
			if !ok {
				continue
			}
			locs = append(locs, newLocation(Location{
				DatabaseName: db.Name,
				DatabaseID:   db.ID,
				TableName:    "[Views]",
				ElementName:  name,
				ElementID:    view.ID,
				CodeType:     spec.name,
				Code:         Unescape(code),
				Level:        LevelView,
				Category:     spec.cat,
				SourcePath:   fmt.Sprintf("views.%s.%s", name, spec.name),
				FilePath:     filepath.Join(db.Path, "views.yaml"),
			}))
		}
	}

	// Report level, including per-column expressions. Columns live in an
	// array, so each gets a synthesized element id.
	for _, rep := range db.Reports {
		name := rep.Name
		if name == "" {
			name = "Report"
		}
		for _, spec := range reportAttrs {
			code, ok := presentCode(rep.Attrs, spec.name)
			if !ok {
				continue
			}
			locs = append(locs, newLocation(Location{
				DatabaseName: db.Name,
				DatabaseID:   db.ID,
				TableName:    "[Reports]",
				ElementName:  name,
				ElementID:    rep.ID,
				CodeType:     spec.name,
				Code:         Unescape(code),
				Level:        LevelReport,
				Category:     spec.cat,
				SourcePath:   fmt.Sprintf("reports.%s.%s", name, spec.name),
				FilePath:     filepath.Join(db.Path, "reports.yaml"),
			}))
		}
		for i, col := range rep.Columns {
			colName := col.Name
			if colName == "" {
				colName = fmt.Sprintf("Column%d", i)
			}
			for _, spec := range reportColumnAttrs {
				code, ok := presentCode(col.Attrs, spec.name)
				if !ok {
					continue
				}
				locs = append(locs, newLocation(Location{
					DatabaseName: db.Name,
					DatabaseID:   db.ID,
					TableName:    "[Reports]",
					ElementName:  name + "." + colName,
					ElementID:    fmt.Sprintf("%s_col%d", rep.ID, i),
					CodeType:     spec.name,
					Code:         Unescape(code),
					Level:        LevelReport,
					Category:     spec.cat,
					SourcePath:   fmt.Sprintf("reports.%s.columns.%s.%s", name, colName, spec.name),
					FilePath:     filepath.Join(db.Path, "reports.yaml"),
				}))
			}
		}
	}

	return locs
}

// databaseFile returns the absolute path of the database YAML file.
func databaseFile(db *schema.Database) string {
	return sourceFile(db, db.SourceFile)
}

// sourceFile resolves a file path relative to the database directory,
// falling back to the canonical database file name for older snapshots
// that carry no source file information.
func sourceFile(db *schema.Database, rel string) string {
	if rel == "" {
		rel = db.SourceFile
	}
	if rel == "" {
		rel = "database.yaml"
	}
	return filepath.Join(db.Path, rel)
}

// presentCode returns the attribute value when it is present and non-blank
// after trimming. Attributes of unexpected type never reach the Attrs map,
// so absence covers the silent-skip policy for those.
func presentCode(attrs map[string]string, name string) (string, bool) {
	code, ok := attrs[name]
	if !ok || strings.TrimSpace(code) == "" {
		return "", false
	}
	return code, true
}

// Unescape reconstructs the script author's original formatting from the
// stored YAML text: one layer of surrounding quotes is stripped, then the
// literal escape sequences \n, \t, \", \' and \\ are converted, in that
// order.
func Unescape(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			value = value[1 : len(value)-1]
		}
	}
	value = strings.ReplaceAll(value, `\n`, "\n")
	value = strings.ReplaceAll(value, `\t`, "\t")
	value = strings.ReplaceAll(value, `\"`, `"`)
	value = strings.ReplaceAll(value, `\'`, "'")
	value = strings.ReplaceAll(value, `\\`, `\`)
	return value
}
