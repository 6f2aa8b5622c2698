package extract

import (
	"strings"
	"testing"

	"github.com/nxlens/nxlens/internal/schema"
)

// ---------------------------------------------------------------------------
// Helper: build a database with code at every level
// ---------------------------------------------------------------------------

func testDatabase() *schema.Database {
	return &schema.Database{
		ID:   "db1",
		Name: "Invoicing",
		Attrs: map[string]string{
			"globalCode": "function total() do 1 end",
			"afterOpen":  "openLog()",
		},
		Tables: map[string]*schema.Table{
			"A": {
				ID:      "A",
				Caption: "Customers",
				Attrs: map[string]string{
					"afterUpdate": "updateIndex(this)",
				},
				Fields: map[string]*schema.Field{
					"F1": {
						ID:      "F1",
						Caption: "Total",
						Base:    "number",
						Attrs: map[string]string{
							"fn": "sum(Items.price)",
						},
					},
					"F2": {
						ID:      "F2",
						Caption: "Ref",
						Attrs: map[string]string{
							"fn": "A1", // below the noise threshold
						},
					},
					"F3": {
						ID:      "F3",
						Caption: "Status",
						Attrs: map[string]string{
							"visibility": "me.isAdmin",
							"note":       "not a code attribute",
						},
					},
				},
				UIs: map[string]*schema.UIElement{
					"U1": {
						ID:      "U1",
						Caption: "Save",
						Attrs: map[string]string{
							"onClick": "saveRecord(this)",
						},
					},
				},
			},
		},
		Views: []schema.View{
			{ID: "v1", Name: "Open Invoices", Attrs: map[string]string{
				"filter": "status = 1",
			}},
		},
		Reports: []schema.Report{
			{
				ID:   "r1",
				Name: "Monthly",
				Attrs: map[string]string{
					"customDataExp": "select Invoices",
				},
				Columns: []schema.ReportColumn{
					{Name: "Sum", Attrs: map[string]string{"expression": "sum(total)"}},
					{Name: "Cnt", Attrs: map[string]string{"expression": "cnt(total)"}},
				},
			},
		},
	}
}

func findByType(locs []Location, level Level, codeType string) *Location {
	for i := range locs {
		if locs[i].Level == level && locs[i].CodeType == codeType {
			return &locs[i]
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// 1. FromDatabase
// ---------------------------------------------------------------------------

func TestFromDatabaseCount(t *testing.T) {
	locs := FromDatabase(testDatabase())
	// globalCode, afterOpen, table afterUpdate, F1 fn, F3 visibility,
	// U1 onClick, view filter, report customDataExp, two column
	// expressions. F2's two-character formula and F3's unknown "note"
	// attribute are excluded.
	if len(locs) != 10 {
		for i := range locs {
			t.Logf("  %s", locs[i].Path())
		}
		t.Fatalf("got %d locations, want 10", len(locs))
	}
}

func TestFromDatabaseCategories(t *testing.T) {
	locs := FromDatabase(testDatabase())
	cases := []struct {
		level    Level
		codeType string
		want     Category
	}{
		{LevelDatabase, "globalCode", CategoryGlobal},
		{LevelDatabase, "afterOpen", CategoryTrigger},
		{LevelTable, "afterUpdate", CategoryTrigger},
		{LevelField, "fn", CategoryFormula},
		{LevelField, "visibility", CategoryVisibility},
		{LevelUI, "onClick", CategoryButton},
		{LevelView, "filter", CategoryView},
		{LevelReport, "customDataExp", CategoryReport},
		{LevelReport, "expression", CategoryReport},
	}
	for _, c := range cases {
		loc := findByType(locs, c.level, c.codeType)
		if loc == nil {
			t.Errorf("no %v/%s location extracted", c.level, c.codeType)
			continue
		}
		if loc.Category != c.want {
			t.Errorf("%v/%s: category = %q, want %q", c.level, c.codeType, loc.Category, c.want)
		}
	}
}

func TestShortFormulaFiltered(t *testing.T) {
	locs := FromDatabase(testDatabase())
	for i := range locs {
		if locs[i].ElementID == "F2" {
			t.Errorf("two-character formula extracted: %s", locs[i].Path())
		}
	}
	// The threshold applies only to fn; a short visibility script passes.
	db := testDatabase()
	db.Tables["A"].Fields["F3"].Attrs["visibility"] = "x<1"
	locs = FromDatabase(db)
	if findByType(locs, LevelField, "visibility") == nil {
		t.Errorf("short non-formula attribute filtered out")
	}
}

func TestBlankCodeSkipped(t *testing.T) {
	db := testDatabase()
	db.Attrs["beforeOpen"] = "   \t  "
	locs := FromDatabase(db)
	if findByType(locs, LevelDatabase, "beforeOpen") != nil {
		t.Errorf("blank attribute extracted")
	}
}

func TestViewReportSentinelTables(t *testing.T) {
	locs := FromDatabase(testDatabase())
	if loc := findByType(locs, LevelView, "filter"); loc.TableName != "[Views]" {
		t.Errorf("view table = %q, want [Views]", loc.TableName)
	}
	if loc := findByType(locs, LevelReport, "customDataExp"); loc.TableName != "[Reports]" {
		t.Errorf("report table = %q, want [Reports]", loc.TableName)
	}
}

func TestReportColumnIDs(t *testing.T) {
	locs := FromDatabase(testDatabase())
	var ids []string
	for i := range locs {
		if locs[i].Level == LevelReport && locs[i].CodeType == "expression" {
			ids = append(ids, locs[i].ElementID)
		}
	}
	if len(ids) != 2 || ids[0] != "r1_col0" || ids[1] != "r1_col1" {
		t.Errorf("column ids = %v, want [r1_col0 r1_col1]", ids)
	}
}

func TestPathsUnique(t *testing.T) {
	locs := FromDatabase(testDatabase())
	seen := make(map[string]bool)
	for i := range locs {
		p := locs[i].Path()
		if seen[p] {
			t.Errorf("duplicate path %q", p)
		}
		seen[p] = true
		if !strings.HasPrefix(p, "Invoicing.") {
			t.Errorf("path %q does not start with database name", p)
		}
	}
}

func TestLineCount(t *testing.T) {
	db := testDatabase()
	db.Attrs["globalCode"] = "line1\nline2\nline3"
	locs := FromDatabase(db)
	loc := findByType(locs, LevelDatabase, "globalCode")
	if loc.LineCount != 3 {
		t.Errorf("line count = %d, want 3", loc.LineCount)
	}
}

// ---------------------------------------------------------------------------
// 2. Categorize
// ---------------------------------------------------------------------------

func TestCategorize(t *testing.T) {
	cases := []struct {
		level    Level
		codeType string
		want     Category
	}{
		{LevelDatabase, "globalCode", CategoryGlobal},
		{LevelTable, "canRead", CategoryPermission},
		{LevelField, "fn", CategoryFormula},
		{LevelField, "dchoiceValues", CategoryDynamicChoice},
		{LevelField, "constraint", CategoryValidation},
		{LevelUI, "fn", CategoryButton}, // same attribute, different level
		{LevelReport, "expression", CategoryReport},
		{LevelField, "unknownAttr", CategoryOther},
		{LevelDatabase, "fn", CategoryOther},
	}
	for _, c := range cases {
		if got := Categorize(c.level, c.codeType); got != c.want {
			t.Errorf("Categorize(%v, %q) = %q, want %q", c.level, c.codeType, got, c.want)
		}
	}
}

// ---------------------------------------------------------------------------
// 3. Unescape
// ---------------------------------------------------------------------------

func TestUnescape(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{`"quoted"`, "quoted"},
		{`'quoted'`, "quoted"},
		{`"mismatched'`, `"mismatched'`},
		{`line1\nline2`, "line1\nline2"},
		{`col1\tcol2`, "col1\tcol2"},
		{`say \"hi\"`, `say "hi"`},
		{`it\'s`, "it's"},
		{`back\\slash`, `back\slash`},
		{`"a\nb\tc"`, "a\nb\tc"},
		{"", ""},
		{`"`, `"`}, // single quote char, too short to strip
	}
	for _, c := range cases {
		if got := Unescape(c.in); got != c.want {
			t.Errorf("Unescape(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestUnescapeAppliedToCode(t *testing.T) {
	db := testDatabase()
	db.Attrs["globalCode"] = `"let x := \"a\""`
	locs := FromDatabase(db)
	loc := findByType(locs, LevelDatabase, "globalCode")
	if loc.Code != `let x := "a"` {
		t.Errorf("code = %q, want unescaped text", loc.Code)
	}
}

// ---------------------------------------------------------------------------
// 4. Location accessors
// ---------------------------------------------------------------------------

func TestPathAndShortPath(t *testing.T) {
	loc := Location{
		DatabaseName: "DB", TableName: "Customers",
		ElementName: "Total", CodeType: "fn",
	}
	if got := loc.Path(); got != "DB.Customers.Total.fn" {
		t.Errorf("Path() = %q", got)
	}
	if got := loc.ShortPath(); got != "Customers.Total.fn" {
		t.Errorf("ShortPath() = %q", got)
	}

	// Empty middle components are skipped, not joined as blanks.
	dbLoc := Location{DatabaseName: "DB", CodeType: "globalCode"}
	if got := dbLoc.Path(); got != "DB.globalCode" {
		t.Errorf("database-level Path() = %q", got)
	}
}

func TestPreview(t *testing.T) {
	loc := Location{Code: "let x := 1\n\tlet   y := 2"}
	if got := loc.Preview(100); got != "let x := 1 let y := 2" {
		t.Errorf("Preview = %q", got)
	}
	if got := loc.Preview(10); got != "let x :..." {
		t.Errorf("truncated Preview = %q", got)
	}
}
