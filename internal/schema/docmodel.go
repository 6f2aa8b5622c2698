package schema

// Export views consumed by downstream generators. The documentation and
// diagram generators must never re-read raw files; everything they need is
// projected from the typed model here.

// DatabaseDoc is the shape handed to the documentation generator.
type DatabaseDoc struct {
	Name       string
	DatabaseID string
	TableCount int
	GlobalCode map[string]string // attribute name -> script text
	Tables     []TableDoc
}

// TableDoc describes one table for documentation purposes.
type TableDoc struct {
	Name       string
	ID         string
	FieldCount int
	Code       map[string]string // table-level attribute name -> script text
	Fields     []FieldDoc
}

// FieldDoc describes one field for documentation purposes.
type FieldDoc struct {
	Name        string
	ID          string
	Type        string
	Required    bool
	RefTypeID   string
	RefTypeUUID string
	DBID        string
	DBName      string
	HasFormula  bool
	Code        map[string]string
}

// DocModel projects the database into the documentation-generator shape.
// Tables and fields appear in sorted id order.
func (d *Database) DocModel() DatabaseDoc {
	doc := DatabaseDoc{
		Name:       d.Name,
		DatabaseID: d.ID,
		TableCount: d.TableCount(),
		GlobalCode: copyAttrs(d.Attrs),
	}

	for _, tid := range d.TableIDs() {
		t := d.Tables[tid]
		td := TableDoc{
			Name:       t.DisplayName(),
			ID:         t.ID,
			FieldCount: len(t.Fields),
			Code:       copyAttrs(t.Attrs),
		}
		for _, fid := range t.FieldIDs() {
			f := t.Fields[fid]
			td.Fields = append(td.Fields, FieldDoc{
				Name:        f.DisplayName(),
				ID:          f.ID,
				Type:        f.Base,
				Required:    f.Required,
				RefTypeID:   f.RefTypeID,
				RefTypeUUID: f.RefTypeUUID,
				DBID:        f.DBID,
				DBName:      f.DBName,
				HasFormula:  f.Attrs["fn"] != "",
				Code:        copyAttrs(f.Attrs),
			})
		}
		doc.Tables = append(doc.Tables, td)
	}
	return doc
}

// DiagramTable describes one table for the diagram generator.
type DiagramTable struct {
	ID      string
	Caption string
	Fields  []DiagramField
}

// DiagramField carries the relationship information a diagram needs: the
// base type, the in-database reference target, and the external-database
// marker when the field points at another database.
type DiagramField struct {
	ID             string
	Caption        string
	Base           string
	RefTypeID      string
	ExternalDB     string // referenced database id, "" for local fields
	ExternalDBName string
}

// DiagramModel projects the database into the diagram-generator shape.
func (d *Database) DiagramModel() []DiagramTable {
	var out []DiagramTable
	for _, tid := range d.TableIDs() {
		t := d.Tables[tid]
		dt := DiagramTable{ID: t.ID, Caption: t.DisplayName()}
		for _, fid := range t.FieldIDs() {
			f := t.Fields[fid]
			dt.Fields = append(dt.Fields, DiagramField{
				ID:             f.ID,
				Caption:        f.DisplayName(),
				Base:           f.Base,
				RefTypeID:      f.RefTypeID,
				ExternalDB:     f.DBID,
				ExternalDBName: f.DBName,
			})
		}
		out = append(out, dt)
	}
	return out
}

func copyAttrs(attrs map[string]string) map[string]string {
	out := make(map[string]string, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}
