package gobangla

/**
 * gobangla - A phonetic Bengali transliteration library
 * Licensed under AGPL-3.0-only
 */

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Engine converts phonetic Latin text to Bengali using one scheme.
// It holds no mutable state apart from its logger and can be shared by
// any number of goroutines.
type Engine struct {
	scheme     *Scheme
	schemePath string
	logger     *zap.Logger
}

// NewEngine makes an engine over scheme
func NewEngine(scheme *Scheme) *Engine {
	return &Engine{scheme: scheme, logger: zap.NewNop()}
}

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

// DefaultEngine engine over the built-in scheme
func DefaultEngine() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = NewEngine(DefaultScheme())
	})
	return defaultEngine
}

// Init load the scheme file at schemePath
func Init(schemePath string) (*Engine, error) {
	scheme, err := loadScheme(schemePath)
	if err != nil {
		return nil, err
	}

	engine := NewEngine(scheme)
	engine.schemePath = schemePath

	return engine, nil
}

// InitFromID Init from scheme ID. The built-in scheme is used for
// DEFAULT_SCHEME_ID if no scheme file overrides it.
func InitFromID(schemeID string) (*Engine, error) {
	schemePath, err := findSchemePath(schemeID)
	if err != nil {
		if errors.Is(err, ErrSchemeNotFound) && schemeID == DEFAULT_SCHEME_ID {
			return NewEngine(DefaultScheme()), nil
		}
		return nil, fmt.Errorf("couldn't find scheme for %s: %w", schemeID, err)
	}

	return Init(schemePath)
}

// Debug switch to a development logger. Engines are meant to be
// configured before being shared.
func (engine *Engine) Debug(val bool) {
	if !val {
		engine.logger = zap.NewNop()
		return
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return
	}
	engine.logger = logger.Named("gobangla")
}

// SetLogger use logger for debug output
func (engine *Engine) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	engine.logger = logger
}

// Scheme used by this engine
func (engine *Engine) Scheme() *Scheme {
	return engine.scheme
}

// SchemePath file this engine was loaded from, empty for the built-in scheme
func (engine *Engine) SchemePath() string {
	return engine.schemePath
}

// Close flushes the logger. Engines keep no connections open.
func (engine *Engine) Close() error {
	// Sync fails on stderr/stdout for some platforms, nothing to do about it
	engine.logger.Sync()
	return nil
}
