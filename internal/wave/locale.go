package wave

// Country codes used by ltxt and CSET records.
var countries = map[uint16]string{
	1:   "USA",
	2:   "Canada",
	3:   "Latin America",
	30:  "Greece",
	31:  "Netherlands",
	32:  "Belgium",
	33:  "France",
	34:  "Spain",
	39:  "Italy",
	41:  "Switzerland",
	43:  "Austria",
	44:  "United Kingdom",
	45:  "Denmark",
	46:  "Sweden",
	47:  "Norway",
	49:  "West Germany",
	52:  "Mexico",
	55:  "Brazil",
	61:  "Australia",
	64:  "New Zealand",
	81:  "Japan",
	82:  "Korea",
	86:  "People's Republic of China",
	88:  "Taiwan",
	90:  "Turkey",
	351: "Portugal",
	352: "Luxembourg",
	354: "Iceland",
	358: "Finland",
}

type languageKey struct {
	language, dialect uint16
}

// Language and dialect codes used by ltxt and CSET records.
var languages = map[languageKey]string{
	{1, 1}:  "Arabic",
	{2, 1}:  "Bulgarian",
	{3, 1}:  "Catalan",
	{4, 1}:  "Traditional Chinese",
	{4, 2}:  "Simplified Chinese",
	{5, 1}:  "Czech",
	{6, 1}:  "Danish",
	{7, 1}:  "German",
	{7, 2}:  "Swiss German",
	{8, 1}:  "Greek",
	{9, 1}:  "US English",
	{9, 2}:  "UK English",
	{10, 1}: "Spanish",
	{10, 2}: "Spanish Mexican",
	{11, 1}: "Finnish",
	{12, 1}: "French",
	{12, 2}: "Belgian French",
	{12, 3}: "Canadian French",
	{12, 4}: "Swiss French",
	{13, 1}: "Hebrew",
	{14, 1}: "Hungarian",
	{15, 1}: "Icelandic",
	{16, 1}: "Italian",
	{16, 2}: "Swiss Italian",
	{17, 1}: "Japanese",
	{18, 1}: "Korean",
	{19, 1}: "Dutch",
	{19, 2}: "Belgian Dutch",
	{20, 1}: "Norwegian - Bokmal",
	{20, 2}: "Norwegian - Nynorsk",
	{21, 1}: "Polish",
	{22, 1}: "Brazilian Portuguese",
	{22, 2}: "Portuguese",
	{23, 1}: "Rhaeto-Romanic",
	{24, 1}: "Romanian",
	{25, 1}: "Russian",
	{26, 1}: "Serbo-Croatian (Latin)",
	{26, 2}: "Serbo-Croatian (Cyrillic)",
	{27, 1}: "Slovak",
	{28, 1}: "Albanian",
	{29, 1}: "Swedish",
	{30, 1}: "Thai",
	{31, 1}: "Turkish",
	{32, 1}: "Urdu",
	{33, 1}: "Bahasa",
}

func countryName(code uint16) string {
	return countries[code]
}

func languageName(language, dialect uint16) string {
	return languages[languageKey{language, dialect}]
}
