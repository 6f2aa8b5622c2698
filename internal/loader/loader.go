// Package loader reads the on-disk file tree of one exported database into
// the typed schema model. Two generations of export layout coexist in the
// wild: the flat layout embeds every table definition in the database YAML
// under schema.types, while the nested layout stores one subfolder per
// table. The layout is detected once per load and dispatched through a
// small strategy; it is never re-probed file by file.
//
// The loader is fail-soft: a malformed individual file is skipped with a
// recorded warning and the rest of the load proceeds. Missing optional
// files (views, reports, UI definitions) mean "empty", never an error.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nxlens/nxlens/internal/rawval"
	"github.com/nxlens/nxlens/internal/schema"
)

// Layout identifies the on-disk layout generation of an export.
type Layout int

const (
	// LayoutFlat embeds all table definitions in the database YAML under
	// schema.types.
	LayoutFlat Layout = iota
	// LayoutNested stores one subfolder per table containing its own
	// table YAML.
	LayoutNested
)

func (l Layout) String() string {
	switch l {
	case LayoutFlat:
		return "flat"
	case LayoutNested:
		return "nested"
	}
	return fmt.Sprintf("Layout(%d)", int(l))
}

// Keys that describe structure rather than embedded script text. Everything
// else that holds a string is kept in the Attrs map; the extractor decides
// which attribute names actually carry code.
var structuralKeys = map[string]struct{}{
	"caption": {}, "captions": {}, "name": {}, "id": {}, "uuid": {},
	"base": {}, "required": {}, "refTypeId": {}, "refTypeUUID": {},
	"dbId": {}, "dbName": {}, "icon": {}, "hidden": {}, "order": {},
	"nextFieldId": {}, "fields": {}, "uis": {}, "columns": {},
	"_dir_name": {},
}

// LoadAll loads every database found under base/src/Objects, sorted by
// display name. A directory whose database cannot be loaded is skipped
// with a warning in the returned list, so one broken database never hides
// the others. A missing Objects directory yields an empty slice, not an
// error, so a fresh checkout behaves like an empty export.
func LoadAll(base string) ([]*schema.Database, []string, error) {
	objects := filepath.Join(base, "src", "Objects")
	entries, err := os.ReadDir(objects)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("read objects dir: %w", err)
	}

	var dbs []*schema.Database
	var warnings []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		db, err := Load(filepath.Join(objects, e.Name()))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", e.Name(), err))
			continue
		}
		dbs = append(dbs, db)
	}
	sort.Slice(dbs, func(i, j int) bool {
		return strings.ToLower(dbs[i].Name) < strings.ToLower(dbs[j].Name)
	})
	return dbs, warnings, nil
}

// Load reads one exported database directory into a schema.Database.
// It returns an error only when no database YAML can be found or decoded
// at all; everything below that is fail-soft.
func Load(dbPath string) (*schema.Database, error) {
	l := &load{path: dbPath}

	if err := l.loadDatabaseFile(); err != nil {
		return nil, err
	}

	strategy := l.detectLayout()
	l.db.Layout = strategy.layout().String()
	strategy.loadTables(l)

	l.loadViews()
	l.loadReports()

	return l.db, nil
}

// load carries the state of one load cycle.
type load struct {
	path string
	db   *schema.Database
	// schemaNode is the decoded schema section of the database YAML,
	// kept for the flat layout's table pass.
	schemaNode map[string]any
}

func (l *load) warnf(format string, args ...any) {
	l.db.Warnings = append(l.db.Warnings, fmt.Sprintf(format, args...))
}

// readYAML decodes one YAML file into a neutral value tree and records it
// under its path relative to the database directory.
func (l *load) readYAML(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var v map[string]any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	if l.db != nil {
		rel, relErr := filepath.Rel(l.path, path)
		if relErr != nil {
			rel = filepath.Base(path)
		}
		l.db.RawFiles[rel] = v
	}
	return v, nil
}

// loadDatabaseFile locates and decodes database.yaml (or database_*.yaml)
// and fills the database-level portion of the model.
func (l *load) loadDatabaseFile() error {
	dbFile := filepath.Join(l.path, "database.yaml")
	if _, err := os.Stat(dbFile); err != nil {
		matches, _ := filepath.Glob(filepath.Join(l.path, "database_*.yaml"))
		if len(matches) == 0 {
			return fmt.Errorf("no database YAML in %s", l.path)
		}
		sort.Strings(matches)
		dbFile = matches[0]
	}

	dirName := filepath.Base(l.path)
	id := strings.TrimPrefix(dirName, "database_")

	l.db = &schema.Database{
		ID:       id,
		Path:     l.path,
		Tables:   make(map[string]*schema.Table),
		Attrs:    make(map[string]string),
		RawFiles: make(map[string]any),
	}

	l.db.SourceFile = filepath.Base(dbFile)

	raw, err := l.readYAML(dbFile)
	if err != nil {
		return fmt.Errorf("load %s: %w", filepath.Base(dbFile), err)
	}

	// The export tool wraps everything in a top-level "database" key;
	// older exports do not.
	body := rawval.Map(raw, "database")
	if body == nil {
		body = raw
	}

	settings := rawval.Map(body, "settings")
	name := rawval.FirstNonEmpty(settings, "name")
	if name == "" {
		name = rawval.FirstNonEmpty(body, "name", "caption")
	}
	if name == "" {
		name = id
	}
	l.db.Name = name
	if v, ok := rawval.Int(body, "version"); ok {
		l.db.Version = v
	}

	l.schemaNode = rawval.Map(body, "schema")
	if l.schemaNode == nil {
		l.schemaNode = body
	}
	if v, ok := rawval.Int(l.schemaNode, "version"); ok && l.db.Version == 0 {
		l.db.Version = v
	}
	l.db.Attrs = scriptAttrs(l.schemaNode)

	return nil
}

// detectLayout picks the layout strategy once per load. Any per-table
// subfolder marks the nested generation; otherwise the flat generation is
// assumed and tables come from schema.types.
func (l *load) detectLayout() tableSource {
	if dirs := l.tableDirs(); len(dirs) > 0 {
		return nestedSource{dirs: dirs}
	}
	return flatSource{}
}

// tableDirs returns every per-table subfolder, covering both naming
// conventions: tables/<table>/ and table_<id>/ in the database root.
func (l *load) tableDirs() []string {
	var dirs []string
	if entries, err := os.ReadDir(filepath.Join(l.path, "tables")); err == nil {
		for _, e := range entries {
			if e.IsDir() {
				dirs = append(dirs, filepath.Join(l.path, "tables", e.Name()))
			}
		}
	}
	if entries, err := os.ReadDir(l.path); err == nil {
		for _, e := range entries {
			if e.IsDir() && strings.HasPrefix(e.Name(), "table_") {
				dirs = append(dirs, filepath.Join(l.path, e.Name()))
			}
		}
	}
	sort.Strings(dirs)
	return dirs
}

// tableSource is the per-layout strategy for producing table definitions.
type tableSource interface {
	layout() Layout
	loadTables(l *load)
}

type flatSource struct{}

func (flatSource) layout() Layout { return LayoutFlat }

func (flatSource) loadTables(l *load) {
	types := rawval.Map(l.schemaNode, "types")
	for id, v := range types {
		node, ok := rawval.AsMap(v)
		if !ok {
			l.warnf("table %s: definition is not a mapping, skipped", id)
			continue
		}
		t := parseTable(id, node)
		t.SourceFile = l.db.SourceFile
		l.db.Tables[id] = t
	}
}

type nestedSource struct {
	dirs []string
}

func (nestedSource) layout() Layout { return LayoutNested }

func (s nestedSource) loadTables(l *load) {
	for _, dir := range s.dirs {
		id, node, file, err := l.readTableDir(dir)
		if err != nil {
			l.warnf("table dir %s: %v, skipped", filepath.Base(dir), err)
			continue
		}
		t := parseTable(id, node)
		if rel, relErr := filepath.Rel(l.path, file); relErr == nil {
			t.SourceFile = rel
		}
		l.db.Tables[id] = t
	}
}

// readTableDir locates the table YAML inside one per-table subfolder:
// either table.yaml or table_*.yaml, optionally wrapped in a "table" key.
func (l *load) readTableDir(dir string) (string, map[string]any, string, error) {
	file := filepath.Join(dir, "table.yaml")
	if _, err := os.Stat(file); err != nil {
		matches, _ := filepath.Glob(filepath.Join(dir, "table_*.yaml"))
		if len(matches) == 0 {
			return "", nil, "", fmt.Errorf("no table YAML")
		}
		sort.Strings(matches)
		file = matches[0]
	}

	raw, err := l.readYAML(file)
	if err != nil {
		return "", nil, "", err
	}
	node := rawval.Map(raw, "table")
	if node == nil {
		node = raw
	}

	id := rawval.String(node, "id")
	if id == "" {
		id = strings.TrimPrefix(filepath.Base(dir), "table_")
	}
	return id, node, file, nil
}

func (l *load) loadViews() {
	raw, err := l.readYAML(filepath.Join(l.path, "views.yaml"))
	if err != nil {
		if !os.IsNotExist(err) {
			l.warnf("views.yaml: %v, skipped", err)
		}
		return
	}
	for _, v := range viewList(raw) {
		node, ok := rawval.AsMap(v)
		if !ok {
			continue
		}
		l.db.Views = append(l.db.Views, schema.View{
			ID:    rawval.String(node, "id"),
			Name:  rawval.FirstNonEmpty(node, "name", "caption"),
			Attrs: scriptAttrs(node),
		})
	}
}

func (l *load) loadReports() {
	raw, err := l.readYAML(filepath.Join(l.path, "reports.yaml"))
	if err != nil {
		if !os.IsNotExist(err) {
			l.warnf("reports.yaml: %v, skipped", err)
		}
		return
	}
	for _, v := range viewList(raw) {
		node, ok := rawval.AsMap(v)
		if !ok {
			continue
		}
		rep := schema.Report{
			ID:    rawval.String(node, "id"),
			Name:  rawval.FirstNonEmpty(node, "name", "caption"),
			Attrs: scriptAttrs(node),
		}
		for i, cv := range rawval.Slice(node, "columns") {
			col, ok := rawval.AsMap(cv)
			if !ok {
				continue
			}
			name := rawval.FirstNonEmpty(col, "caption", "name")
			if name == "" {
				name = fmt.Sprintf("Column%d", i)
			}
			rep.Columns = append(rep.Columns, schema.ReportColumn{
				Name:  name,
				Attrs: scriptAttrs(col),
			})
		}
		l.db.Reports = append(l.db.Reports, rep)
	}
}

// viewList normalizes the views/reports file shape: either a bare list or
// a mapping with a single list value (views: [...]).
func viewList(raw map[string]any) []any {
	for _, key := range []string{"views", "reports", "items"} {
		if s := rawval.Slice(raw, key); s != nil {
			return s
		}
	}
	// A single definition directly in the file.
	if len(raw) > 0 {
		return []any{map[string]any(raw)}
	}
	return nil
}

// parseTable builds a typed table from its neutral node.
func parseTable(id string, node map[string]any) *schema.Table {
	t := &schema.Table{
		ID:      id,
		Caption: rawval.FirstNonEmpty(node, "caption", "name"),
		Fields:  make(map[string]*schema.Field),
		UIs:     make(map[string]*schema.UIElement),
		Attrs:   scriptAttrs(node),
	}
	for fid, fv := range rawval.Map(node, "fields") {
		fnode, ok := rawval.AsMap(fv)
		if !ok {
			continue
		}
		t.Fields[fid] = parseField(fid, fnode)
	}
	for uid, uv := range rawval.Map(node, "uis") {
		unode, ok := rawval.AsMap(uv)
		if !ok {
			continue
		}
		t.UIs[uid] = &schema.UIElement{
			ID:      uid,
			Caption: rawval.FirstNonEmpty(unode, "caption", "name"),
			Base:    rawval.String(unode, "base"),
			Attrs:   scriptAttrs(unode),
		}
	}
	return t
}

func parseField(id string, node map[string]any) *schema.Field {
	return &schema.Field{
		ID:          id,
		Caption:     rawval.FirstNonEmpty(node, "caption", "name"),
		Base:        rawval.String(node, "base"),
		Required:    rawval.Bool(node, "required"),
		RefTypeID:   refString(node, "refTypeId"),
		RefTypeUUID: rawval.String(node, "refTypeUUID"),
		DBID:        rawval.String(node, "dbId"),
		DBName:      rawval.String(node, "dbName"),
		Attrs:       scriptAttrs(node),
	}
}

// refString reads a reference id that may be encoded as a string or a
// number depending on export generation.
func refString(node map[string]any, key string) string {
	if s := rawval.String(node, key); s != "" {
		return s
	}
	if n, ok := rawval.Int(node, key); ok {
		return fmt.Sprintf("%d", n)
	}
	return ""
}

// scriptAttrs collects every non-structural string attribute of a node.
// The raw text is kept as-is; unescaping happens at extraction time.
func scriptAttrs(node map[string]any) map[string]string {
	attrs := make(map[string]string)
	for k, v := range node {
		if _, structural := structuralKeys[k]; structural {
			continue
		}
		if s, ok := rawval.AsString(v); ok {
			attrs[k] = s
		}
	}
	return attrs
}
