package gobangla

/**
 * gobangla - A phonetic Bengali transliteration library
 * Licensed under AGPL-3.0-only
 */

import (
	"errors"
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"
)

// GetAllSchemePaths get available scheme files' location as a string array
func GetAllSchemePaths() ([]string, error) {
	schemesDir, err := FindSchemeDir()
	if err != nil {
		return nil, err
	}

	var schemePaths []string

	err = filepath.WalkDir(schemesDir, func(s string, d fs.DirEntry, e error) error {
		if e != nil {
			return e
		}
		if !d.IsDir() && filepath.Ext(d.Name()) == SCHEME_FILE_EXT {
			schemePaths = append(schemePaths, s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return schemePaths, nil
}

// GetAllSchemeDetails get information of all schemes available.
// The built-in scheme is always first. Files that can't be read are
// logged to logger and skipped, logger may be nil.
func GetAllSchemeDetails(logger *zap.Logger) ([]SchemeDetails, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	schemeDetails := []SchemeDetails{DefaultScheme().Details()}

	schemePaths, err := GetAllSchemePaths()
	if errors.Is(err, ErrSchemeDirNotFound) {
		return schemeDetails, nil
	}
	if err != nil {
		return nil, err
	}

	for _, schemePath := range schemePaths {
		scheme, err := loadScheme(schemePath)
		if err != nil {
			logger.Warn("skipping scheme", zap.String("path", schemePath), zap.Error(err))
			continue
		}
		schemeDetails = append(schemeDetails, scheme.Details())
	}

	return schemeDetails, nil
}
