package script

import "sort"

// Fixed, closed word sets of the script language. Membership checks are
// case-insensitive; callers must pass lowercased words.

var keywords = map[string]struct{}{
	// Control flow
	"if": {}, "then": {}, "else": {}, "end": {}, "switch": {}, "case": {},
	"default": {}, "for": {}, "do": {}, "while": {}, "break": {},
	"continue": {}, "try": {}, "catch": {}, "throw": {},

	// Declarations
	"let": {}, "var": {}, "function": {},

	// Word operators
	"and": {}, "or": {}, "not": {}, "in": {}, "like": {},

	// Values
	"true": {}, "false": {}, "null": {}, "this": {}, "me": {},

	// Context modifiers
	"as": {}, "database": {}, "server": {}, "transaction": {}, "user": {},

	// Data operations
	"select": {}, "from": {}, "where": {}, "order": {}, "by": {},
	"group": {}, "limit": {}, "asc": {}, "desc": {}, "distinct": {},
}

var builtins = map[string]struct{}{
	// Record operations
	"create": {}, "delete": {}, "duplicate": {}, "record": {}, "records": {},
	"first": {}, "last": {}, "item": {}, "count": {}, "sum": {}, "avg": {},
	"min": {}, "max": {},

	// String functions
	"text": {}, "number": {}, "upper": {}, "lower": {}, "trim": {},
	"length": {}, "substr": {}, "replace": {}, "split": {}, "join": {},
	"contains": {}, "format": {}, "formatnumber": {}, "parsenumber": {},

	// Date functions
	"today": {}, "now": {}, "date": {}, "time": {}, "datetime": {},
	"year": {}, "month": {}, "day": {}, "hour": {}, "minute": {},
	"second": {}, "weekday": {}, "week": {}, "quarter": {},
	"dateadd": {}, "datediff": {}, "dateformat": {},
	"startofday": {}, "endofday": {}, "startofweek": {}, "endofweek": {},
	"startofmonth": {}, "endofmonth": {}, "startofyear": {}, "endofyear": {},

	// Math functions
	"abs": {}, "ceil": {}, "floor": {}, "round": {}, "sqrt": {}, "pow": {},
	"sin": {}, "cos": {}, "tan": {}, "asin": {}, "acos": {}, "atan": {},
	"log": {}, "exp": {}, "random": {},

	// Array functions
	"array": {}, "unique": {}, "sort": {}, "reverse": {}, "slice": {},
	"concat": {}, "indexof": {}, "includes": {}, "filter": {}, "map": {},

	// UI functions
	"alert": {}, "confirm": {}, "prompt": {}, "dialog": {},
	"popuprecord": {}, "openrecord": {}, "closepopup": {},
	"openprintlayout": {}, "printrecord": {},

	// File functions
	"importfile": {}, "exportfile": {}, "downloadfile": {},
	"importcsv": {}, "importjson": {}, "exportcsv": {}, "exportjson": {},

	// HTTP functions
	"http": {}, "httpget": {}, "httppost": {}, "httpput": {}, "httpdelete": {},

	// Email
	"sendemail": {}, "email": {},

	// Utility
	"debug": {}, "print": {}, "sleep": {}, "eval": {}, "typeof": {},
	"isnull": {}, "isempty": {}, "coalesce": {}, "choose": {}, "switch": {},

	// UI state
	"setstyle": {}, "getstyle": {}, "focus": {}, "blur": {},

	// Navigation
	"navigate": {}, "openurl": {}, "opentable": {}, "openview": {},

	// User
	"userid": {}, "username": {}, "useremail": {}, "userroles": {},
	"hasrole": {}, "isadmin": {},

	// Database info
	"databaseid": {}, "databasename": {}, "tableid": {}, "tablename": {},
	"fieldid": {}, "fieldname": {},

	// Archiving
	"archive": {}, "unarchive": {}, "isarchived": {},

	// Clipboard
	"copytoclipboard": {}, "readfromclipboard": {},

	// JSON
	"parsejson": {}, "formatjson": {}, "json": {},

	// Colors
	"rgb": {}, "rgba": {}, "hex": {}, "color": {},

	// Location
	"location": {}, "geodistance": {},
}

// IsKeyword reports whether the lowercased word is a language keyword.
func IsKeyword(lower string) bool {
	_, ok := keywords[lower]
	return ok
}

// IsBuiltin reports whether the lowercased word is a library function
// name. Note the lexer additionally requires a following parenthesis
// before classifying a word as BUILTIN.
func IsBuiltin(lower string) bool {
	_, ok := builtins[lower]
	return ok
}

// Keywords returns the sorted keyword list.
func Keywords() []string { return sortedWords(keywords) }

// Builtins returns the sorted builtin function name list.
func Builtins() []string { return sortedWords(builtins) }

func sortedWords(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
