package extract

// Fixed mapping of (level, attribute name) -> category, covering every
// known code-bearing attachment point of the export format. The slices are
// ordered so extraction output is deterministic.

type attrSpec struct {
	name string
	cat  Category
}

var databaseAttrs = []attrSpec{
	{"afterOpen", CategoryTrigger},
	{"beforeOpen", CategoryTrigger},
	{"globalCode", CategoryGlobal},
}

var tableAttrs = []attrSpec{
	{"afterCreate", CategoryTrigger},
	{"afterUpdate", CategoryTrigger},
	{"afterDelete", CategoryTrigger},
	{"beforeDelete", CategoryTrigger},
	{"canRead", CategoryPermission},
	{"canWrite", CategoryPermission},
	{"canCreate", CategoryPermission},
	{"canDelete", CategoryPermission},
	{"printout", CategoryOther},
}

var fieldAttrs = []attrSpec{
	{"fn", CategoryFormula},
	{"afterUpdate", CategoryTrigger},
	{"afterCreate", CategoryTrigger},
	{"constraint", CategoryValidation},
	{"validation", CategoryValidation},
	{"dchoiceValues", CategoryDynamicChoice},
	{"dchoiceCaption", CategoryDynamicChoice},
	{"dchoiceColor", CategoryDynamicChoice},
	{"dchoiceIcon", CategoryDynamicChoice},
	{"referenceFormat", CategoryReference},
	{"visibility", CategoryVisibility},
	{"onClick", CategoryButton},
	{"onDoubleClick", CategoryButton},
	{"canRead", CategoryPermission},
	{"canWrite", CategoryPermission},
	{"color", CategoryOther},
}

var uiAttrs = []attrSpec{
	{"fn", CategoryButton},
	{"onClick", CategoryButton},
	{"beforeShow", CategoryTrigger},
	{"afterShow", CategoryTrigger},
	{"afterHide", CategoryTrigger},
	{"expression", CategoryView},
	{"filter", CategoryView},
}

var viewAttrs = []attrSpec{
	{"filter", CategoryView},
	{"sortExp", CategoryView},
	{"customDataExp", CategoryView},
}

var reportAttrs = []attrSpec{
	{"customDataExp", CategoryReport},
	{"filter", CategoryReport},
	{"sortExp", CategoryReport},
}

var reportColumnAttrs = []attrSpec{
	{"expression", CategoryReport},
	{"filter", CategoryReport},
}

var attrsByLevel = map[Level][]attrSpec{
	LevelDatabase: databaseAttrs,
	LevelTable:    tableAttrs,
	LevelField:    fieldAttrs,
	LevelUI:       uiAttrs,
	LevelView:     viewAttrs,
	LevelReport:   reportAttrs,
}

// Categorize returns the category for a (level, code type) pair, or
// CategoryOther for unknown combinations.
func Categorize(level Level, codeType string) Category {
	for _, spec := range attrsByLevel[level] {
		if spec.name == codeType {
			return spec.cat
		}
	}
	if level == LevelReport {
		for _, spec := range reportColumnAttrs {
			if spec.name == codeType {
				return spec.cat
			}
		}
	}
	return CategoryOther
}

// codeTypeNames maps attribute names to display names.
var codeTypeNames = map[string]string{
	"afterOpen":  "After Open (DB)",
	"beforeOpen": "Before Open (DB)",
	"globalCode": "Global Code",

	"afterCreate":  "After Create",
	"afterUpdate":  "After Update",
	"afterDelete":  "After Delete",
	"beforeDelete": "Before Delete",

	"fn":              "Formula",
	"constraint":      "Constraint",
	"validation":      "Validation",
	"dchoiceValues":   "Dynamic Choice Values",
	"dchoiceCaption":  "Dynamic Choice Caption",
	"dchoiceColor":    "Dynamic Choice Color",
	"dchoiceIcon":     "Dynamic Choice Icon",
	"referenceFormat": "Reference Format",
	"visibility":      "Visibility",
	"onClick":         "On Click",
	"onDoubleClick":   "On Double Click",

	"beforeShow": "Before Show",
	"afterShow":  "After Show",
	"afterHide":  "After Hide",
	"expression": "Expression",
	"filter":     "Filter",

	"canRead":   "Can Read",
	"canWrite":  "Can Write",
	"canCreate": "Can Create",
	"canDelete": "Can Delete",

	"printout":      "Print Layout",
	"color":         "Color Formula",
	"customDataExp": "Custom Data Expression",
	"sortExp":       "Sort Expression",
}

// codeTypeIcons maps attribute names to icon keys for list displays.
var codeTypeIcons = map[string]string{
	"globalCode":      "public",
	"afterOpen":       "play_arrow",
	"beforeOpen":      "schedule",
	"afterCreate":     "add_circle",
	"afterUpdate":     "edit",
	"afterDelete":     "delete",
	"beforeDelete":    "delete_outline",
	"fn":              "functions",
	"visibility":      "visibility",
	"onClick":         "touch_app",
	"onDoubleClick":   "ads_click",
	"beforeShow":      "visibility",
	"afterShow":       "visibility",
	"afterHide":       "visibility_off",
	"canWrite":        "edit_off",
	"canRead":         "visibility_off",
	"canCreate":       "add_circle_outline",
	"canDelete":       "delete_outline",
	"dchoiceValues":   "list",
	"dchoiceCaption":  "label",
	"dchoiceColor":    "palette",
	"dchoiceIcon":     "emoji_symbols",
	"constraint":      "rule",
	"validation":      "check_circle",
	"referenceFormat": "link",
	"expression":      "calculate",
	"filter":          "filter_list",
	"customDataExp":   "data_object",
	"sortExp":         "sort",
	"printout":        "print",
	"color":           "palette",
}
