package fonts

import "strings"

// Script classifies the writing system a language's font covers. Only
// Latin-script languages get a true bold face; the built-in bold font
// cannot render the other scripts.
type Script int

const (
	Latin Script = iota
	Cyrillic
	CJK
	Arabic
	Hebrew
	Thai
	Devanagari
)

// Config describes the font set for one language: the family name the
// files are registered under, the regular and italic program files, and
// the chain of alternative files tried when the primary fails. A missing
// italic file means the script has no italic cut and the regular program
// doubles as the italic face.
type Config struct {
	Family      string
	RegularFile string
	ItalicFile  string
	Fallbacks   []string
	Script      Script
	RTL         bool
}

var latinSans = Config{
	Family:      "NotoSans",
	RegularFile: "NotoSans-Regular.ttf",
	ItalicFile:  "NotoSans-Italic.ttf",
	Script:      Latin,
}

// registry is keyed by primary language subtag. Full locale tags resolve
// through their prefix, so en-US, en-GB and bare en share one entry.
var registry = map[string]Config{
	"en": latinSans,
	"de": latinSans,
	"es": latinSans,
	"fr": latinSans,
	"pt": latinSans,
	"ru": {
		Family:      "NotoSans",
		RegularFile: "NotoSans-Regular.ttf",
		ItalicFile:  "NotoSans-Italic.ttf",
		Script:      Cyrillic,
	},
	"zh": {
		Family:      "NotoSansSC",
		RegularFile: "NotoSansSC-Regular.ttf",
		Fallbacks:   []string{"NotoSans-Regular.ttf"},
		Script:      CJK,
	},
	"ja": {
		Family:      "NotoSansJP",
		RegularFile: "NotoSansJP-Regular.ttf",
		Fallbacks:   []string{"NotoSans-Regular.ttf"},
		Script:      CJK,
	},
	"ar": {
		Family:      "NotoSansArabic",
		RegularFile: "NotoSansArabic-Regular.ttf",
		Fallbacks:   []string{"NotoSans-Regular.ttf"},
		Script:      Arabic,
		RTL:         true,
	},
	"he": {
		Family:      "NotoSansHebrew",
		RegularFile: "NotoSansHebrew-Regular.ttf",
		Fallbacks:   []string{"NotoSans-Regular.ttf"},
		Script:      Hebrew,
		RTL:         true,
	},
	"th": {
		Family:      "NotoSansThai",
		RegularFile: "NotoSansThai-Regular.ttf",
		Fallbacks:   []string{"NotoSans-Regular.ttf"},
		Script:      Thai,
	},
	"hi": {
		Family:      "NotoSansDevanagari",
		RegularFile: "NotoSansDevanagari-Regular.ttf",
		Fallbacks:   []string{"NotoSans-Regular.ttf"},
		Script:      Devanagari,
	},
}

// DefaultLanguage is used when a language tag is unknown.
const DefaultLanguage = "en"

// ConfigFor resolves a BCP 47 language tag to its font configuration.
// Matching is case-insensitive and accepts underscores in place of
// hyphens; unknown tags resolve to the default language.
func ConfigFor(lang string) Config {
	tag := strings.ToLower(strings.ReplaceAll(lang, "_", "-"))
	if cfg, ok := registry[tag]; ok {
		return cfg
	}
	if i := strings.IndexByte(tag, '-'); i > 0 {
		if cfg, ok := registry[tag[:i]]; ok {
			return cfg
		}
	}
	return registry[DefaultLanguage]
}
