package gobangla

/**
 * gobangla - A phonetic Bengali transliteration library
 * Licensed under AGPL-3.0-only
 */

// Standalone vowel => Kar (vowel sign) used after a consonant.
// অ is the inherent vowel and has no sign.
var standaloneVowelToKar = map[string]string{
	"অ": "",
	"আ": "া",
	"ই": "ি",
	"ঈ": "ী",
	"উ": "ু",
	"ঊ": "ূ",
	"এ": "ে",
	"ঐ": "ৈ",
	"ও": "ো",
	"ঔ": "ৌ",
}

var banglaConsonants = map[string]bool{
	"ক": true, "খ": true, "গ": true, "ঘ": true, "ঙ": true,
	"চ": true, "ছ": true, "জ": true, "ঝ": true, "ঞ": true,
	"ট": true, "ঠ": true, "ড": true, "ঢ": true, "ণ": true,
	"ত": true, "থ": true, "দ": true, "ধ": true, "ন": true,
	"প": true, "ফ": true, "ব": true, "ভ": true, "ম": true,
	"য": true, "র": true, "ল": true, "শ": true, "ষ": true,
	"স": true, "হ": true,
}

var banglaStandaloneVowels = map[string]bool{
	"অ": true, "আ": true, "ই": true, "ঈ": true, "উ": true,
	"ঊ": true, "এ": true, "ঐ": true, "ও": true, "ঔ": true,
}

// IsBanglaConsonant tells whether ch is one of the Bengali consonant letters
func IsBanglaConsonant(ch string) bool {
	return banglaConsonants[ch]
}

// IsBanglaStandaloneVowel tells whether ch is a Bengali standalone vowel letter
func IsBanglaStandaloneVowel(ch string) bool {
	return banglaStandaloneVowels[ch]
}

// KarOf gives the vowel sign of a standalone vowel.
// ok is false if vowel is not a standalone vowel.
func KarOf(vowel string) (kar string, ok bool) {
	kar, ok = standaloneVowelToKar[vowel]
	return
}

// Mappings of the built-in bn-phonetic scheme.
// Segment keys are case sensitive and at most 3 characters.
// Longer keys, or keys mapping to more than one character, are whole words.
var defaultSchemeMappings = map[string]string{
	/* Vowels */
	"o":  "অ",
	"a":  "আ",
	"A":  "আ",
	"i":  "ই",
	"I":  "ঈ",
	"ee": "ঈ",
	"u":  "উ",
	"U":  "ঊ",
	"oo": "ঊ",
	"e":  "এ",
	"E":  "এ",
	"OI": "ঐ",
	"O":  "ও",
	"OU": "ঔ",

	/* Consonants */
	"k":  "ক",
	"kh": "খ",
	"g":  "গ",
	"gh": "ঘ",
	"Ng": "ঙ",
	"c":  "চ",
	"ch": "ছ",
	"j":  "জ",
	"J":  "জ",
	"jh": "ঝ",
	"z":  "ঝ",
	"NG": "ঞ",
	"T":  "ট",
	"Th": "ঠ",
	"D":  "ড",
	"Dh": "ঢ",
	"N":  "ণ",
	"t":  "ত",
	"th": "থ",
	"d":  "দ",
	"dh": "ধ",
	"n":  "ন",
	"p":  "প",
	"ph": "ফ",
	"f":  "ফ",
	"b":  "ব",
	"bh": "ভ",
	"v":  "ভ",
	"m":  "ম",
	"Z":  "য",
	"r":  "র",
	"l":  "ল",
	"sh": "শ",
	"Sh": "ষ",
	"s":  "স",
	"h":  "হ",
	"R":  "\u09A1\u09BC",
	"Rh": "\u09A2\u09BC",
	"y":  "\u09AF\u09BC",
	"Y":  "\u09AF\u09BC",

	/* Signs */
	"t`": "ৎ",
	"ng": "ং",
	":":  "ঃ",
	"^":  "ঁ",
	".":  "।",

	/* Conjuncts */
	"kSh": "ক্ষ",
	"GY":  "জ্ঞ",
	"kk":  "ক্ক",
	"kt":  "ক্ত",
	"kr":  "ক্র",
	"tr":  "ত্র",
	"pr":  "প্র",
	"shr": "শ্র",
	"nd":  "ন্দ",
	"nt":  "ন্ত",
	"sk":  "স্ক",
	"st":  "স্ত",

	/* Whole words */
	"ami":       "আমি",
	"amar":      "আমার",
	"amra":      "আমরা",
	"tumi":      "তুমি",
	"tomar":     "তোমার",
	"apni":      "আপনি",
	"apnar":     "আপনার",
	"bangla":    "বাংলা",
	"bhalo":     "ভালো",
	"ki":        "কি",
	"kemon":     "কেমন",
	"ache":      "আছে",
	"acho":      "আছো",
	"na":        "না",
	"hy":        "হ্যাঁ",
	"ar":        "আর",
	"ebong":     "এবং",
	"kintu":     "কিন্তু",
	"dhonnobad": "ধন্যবাদ",
	"taka":      "টাকা",
	"hisab":     "হিসাব",
	"khoroc":    "খরচ",
	"aay":       "আ\u09AF\u09BC",
	"bajar":     "বাজার",
	"mash":      "মাস",
	"din":       "দিন",
	"bochor":    "বছর",
}
