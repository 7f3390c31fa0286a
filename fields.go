package labelforge

import "github.com/labelforge/labelforge/store"

// BuiltinFields is the field catalog available without a template service.
// Each field may bind at most one element on a label.
var BuiltinFields = []string{
	"QTY",
	"COLOR",
	"PCS",
	"SIZE",
	"DESCRIPTION",
	"PRICE",
	"UPC",
	"DEPT",
	"CLASS",
	"STYLE",
}

// BuiltinFonts lists the font families every print runtime ships with,
// mapped to their TTF file names.
var BuiltinFonts = []store.Font{
	{Family: "Arial", File: "arial.ttf"},
	{Family: "Arial Black", File: "ariblk.ttf"},
	{Family: "Courier New", File: "cour.ttf"},
	{Family: "Georgia", File: "georgia.ttf"},
	{Family: "Impact", File: "impact.ttf"},
	{Family: "Times New Roman", File: "times.ttf"},
	{Family: "Verdana", File: "verdana.ttf"},
}
