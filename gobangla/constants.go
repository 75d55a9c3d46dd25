package gobangla

/**
 * gobangla - A phonetic Bengali transliteration library
 * Licensed under AGPL-3.0-only
 */

import (
	"os"
	"path"
)

/* Segment matching */

// Longest pattern tried at each position while scanning a word
const GOBANGLA_SEGMENT_MAX = 3

/* Mapping limits for the scheme maker */
const GOBANGLA_SYMBOL_MAX = 30

/* Tags stored along with mappings */
const GOBANGLA_TAG_SEGMENT = "segment"
const GOBANGLA_TAG_WORD = "word"

/* Metadata keys in scheme files */
const GOBANGLA_METADATA_SCHEME_IDENTIFIER = "scheme-id"
const GOBANGLA_METADATA_SCHEME_LANGUAGE_CODE = "lang-code"
const GOBANGLA_METADATA_SCHEME_DISPLAY_NAME = "scheme-display-name"
const GOBANGLA_METADATA_SCHEME_AUTHOR = "scheme-author"
const GOBANGLA_METADATA_SCHEME_COMPILED_DATE = "scheme-compiled-date"
const GOBANGLA_METADATA_SCHEME_STABLE = "scheme-stable"

const GOBANGLA_SCHEMA_VERSION = 1

// Identifier of the scheme compiled into the library
const DEFAULT_SCHEME_ID = "bn-phonetic"

// Extension of scheme files
const SCHEME_FILE_EXT = ".scheme"

// GOBANGLA_SCHEME_DIR scheme lookup directories according to priority
var GOBANGLA_SCHEME_DIR = []string{
	"schemes",
	"/usr/local/share/gobangla/schemes",
	"/usr/share/gobangla/schemes",
}

// SetSchemeLookupDir makes dir the first place to look for scheme files
func SetSchemeLookupDir(dir string) {
	os.Setenv("GOBANGLA_SCHEME_DIR", dir)
}

func schemeLookupDirs() []string {
	envDir := os.Getenv("GOBANGLA_SCHEME_DIR")
	if envDir != "" {
		return append([]string{envDir}, GOBANGLA_SCHEME_DIR...)
	}
	return GOBANGLA_SCHEME_DIR
}

// FindSchemeDir returns the first existing scheme lookup directory
func FindSchemeDir() (string, error) {
	for _, loc := range schemeLookupDirs() {
		if dirExists(loc) {
			return loc, nil
		}
	}
	return "", ErrSchemeDirNotFound
}

func findSchemePath(schemeID string) (string, error) {
	for _, loc := range schemeLookupDirs() {
		temp := path.Join(loc, schemeID+SCHEME_FILE_EXT)
		if fileExists(temp) {
			return temp, nil
		}
	}
	return "", ErrSchemeNotFound
}
