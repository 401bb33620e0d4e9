package resource

import "embed"

// Default holds the bundled resource files shipped with the module. They
// are a deliberately representative sample — enough to exercise every
// supported script family — rather than the full production-scale rule
// tables (see DESIGN.md's "Resource data scope" entry).
//
//go:embed data/*.txt data/*.jsonl
var Default embed.FS

const (
	FileRomTable         = "data/romanization-table.txt"
	FileRomAutoTable     = "data/romanization-auto-table.txt"
	FileUnicodeOverwrite = "data/UnicodeDataOverwrite.txt"
	FileUnicodeDecomp    = "data/UnicodeDataDecomp.txt"
	FileScripts          = "data/Scripts.txt"
	FileUnicodeProps     = "data/UnicodeDataProps.txt"
	FileNumProps         = "data/NumProps.jsonl"
	FileChinesePinyin    = "data/Chinese_to_Pinyin.txt"
)
