package gobangla

import "errors"

var (
	// ErrSchemeNotFound no scheme file matched the requested identifier
	ErrSchemeNotFound = errors.New("scheme not found")

	// ErrSchemeDirNotFound none of the lookup directories exist
	ErrSchemeDirNotFound = errors.New("no scheme directory found")

	// ErrInvalidMapping pattern or value is empty, too long or malformed
	ErrInvalidMapping = errors.New("invalid mapping")

	// ErrDuplicateMapping pattern already exists in the scheme
	ErrDuplicateMapping = errors.New("duplicate mapping")

	// ErrNotWordLevel a trained word would not be taken as a whole-word override
	ErrNotWordLevel = errors.New("mapping is not word level")

	// ErrInvalidSchemeDetails metadata rejected by the scheme maker
	ErrInvalidSchemeDetails = errors.New("invalid scheme details")
)
