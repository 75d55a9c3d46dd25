package gobangla

/**
 * gobangla - A phonetic Bengali transliteration library
 * Licensed under AGPL-3.0-only
 */

import (
	"context"
	sql "database/sql"
	"fmt"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SM, sm = Scheme Maker

// SchemeMakerConfig knobs for writing scheme files
type SchemeMakerConfig struct {
	// Skip a mapping whose pattern already exists instead of failing
	IgnoreDuplicateMappings bool
}

// SchemeMaker writes scheme files
type SchemeMaker struct {
	conn   *sql.DB
	tx     *sql.Tx
	path   string
	logger *zap.Logger

	Config SchemeMakerConfig
}

// MappingSearch criteria for SMSearchMappings. Empty fields are ignored.
// A value starting with "LIKE " is matched with SQL LIKE.
type MappingSearch struct {
	Pattern string
	Value   string
	Tag     string
}

// Both *sql.DB and *sql.Tx
type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// SMInit open or create the scheme file at schemePath
func SMInit(schemePath string) (*SchemeMaker, error) {
	conn, err := openDB(schemePath)
	if err != nil {
		return nil, err
	}

	// One writer, so a buffered transaction sees its own writes
	conn.SetMaxOpenConns(1)

	sm := &SchemeMaker{conn: conn, path: schemePath, logger: zap.NewNop()}

	err = sm.smEnsureSchemaExists()
	if err != nil {
		conn.Close()
		return nil, err
	}

	return sm, nil
}

func (sm *SchemeMaker) smEnsureSchemaExists() error {
	migrationsFS, err := schemeMigrations()
	if err != nil {
		return err
	}

	mg, err := InitMigrate(sm.conn, migrationsFS)
	if err != nil {
		return err
	}

	ran, err := mg.Run()
	if err != nil {
		return err
	}

	if ran > 0 {
		sm.logger.Debug("ran migrations", zap.Int("count", ran), zap.String("path", sm.path))
	}

	return nil
}

// Debug switch to a development logger
func (sm *SchemeMaker) Debug(val bool) {
	if !val {
		sm.logger = zap.NewNop()
		return
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return
	}
	sm.logger = logger.Named("scheme-maker")
}

// SetLogger use logger for progress output
func (sm *SchemeMaker) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	sm.logger = logger
}

func (sm *SchemeMaker) db() dbExecutor {
	if sm.tx != nil {
		return sm.tx
	}
	return sm.conn
}

func (sm *SchemeMaker) smStartBuffering() error {
	if sm.tx != nil {
		return nil
	}

	tx, err := sm.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to start buffering: %w", err)
	}
	sm.tx = tx
	return nil
}

func (sm *SchemeMaker) smFlushChanges() error {
	if sm.tx == nil {
		return nil
	}

	sm.logger.Info("writing changes to file", zap.String("path", sm.path))
	err := sm.tx.Commit()
	sm.tx = nil
	if err != nil {
		return fmt.Errorf("failed to flush changes: %w", err)
	}

	sm.logger.Info("compacting file", zap.String("path", sm.path))
	if _, err = sm.conn.Exec("VACUUM"); err != nil {
		return fmt.Errorf("failed to compact db: %w", err)
	}

	return nil
}

// This function is called when something went wrong. Rollback scheme DB
func (sm *SchemeMaker) smDiscardChanges() {
	if sm.tx == nil {
		return
	}

	sm.tx.Rollback()
	sm.tx = nil
}

func validateMapping(pattern string, value string) error {
	if pattern == "" || value == "" {
		return fmt.Errorf("pattern or value is empty: %w", ErrInvalidMapping)
	}

	if charCount(pattern) > GOBANGLA_SYMBOL_MAX || charCount(value) > GOBANGLA_SYMBOL_MAX {
		return fmt.Errorf("length of pattern and value should be less than %d: %w", GOBANGLA_SYMBOL_MAX, ErrInvalidMapping)
	}

	if strings.IndexFunc(pattern, unicode.IsSpace) != -1 {
		return fmt.Errorf("pattern %q has whitespace: %w", pattern, ErrInvalidMapping)
	}

	// Longer patterns are only looked up as lower-cased whole words
	if charCount(pattern) > GOBANGLA_SEGMENT_MAX && cases.Lower(language.Und).String(pattern) != pattern {
		return fmt.Errorf("pattern %q is longer than %d characters and not lower case, it can never match: %w", pattern, GOBANGLA_SEGMENT_MAX, ErrInvalidMapping)
	}

	return nil
}

func defaultTag(pattern string) string {
	if charCount(pattern) > GOBANGLA_SEGMENT_MAX {
		return GOBANGLA_TAG_WORD
	}
	return GOBANGLA_TAG_SEGMENT
}

// SMCreateMapping add pattern => value to the scheme.
// With buffered, writes wait for SMFlushBuffer.
func (sm *SchemeMaker) SMCreateMapping(pattern string, value string, tag string, buffered bool) error {
	pattern = strings.TrimSpace(pattern)
	value = strings.TrimSpace(value)

	if err := validateMapping(pattern, value); err != nil {
		return err
	}

	if tag == "" {
		tag = defaultTag(pattern)
	}

	if buffered {
		if err := sm.smStartBuffering(); err != nil {
			return err
		}
	}

	err := sm.smPersistMapping(pattern, value, tag, false)
	if err != nil {
		if buffered {
			sm.smDiscardChanges()
		}
		return err
	}

	if !buffered {
		return sm.smStampVersion()
	}

	return nil
}

// SMTrainWord make word convert to value as a whole.
// Training an existing word replaces its value.
func (sm *SchemeMaker) SMTrainWord(word string, value string) error {
	word = cases.Lower(language.Und).String(strings.TrimSpace(word))
	value = strings.TrimSpace(value)

	if err := validateMapping(word, value); err != nil {
		return err
	}

	if !IsWordLevelMapping(word, value) {
		return fmt.Errorf("%s => %s: %w", word, value, ErrNotWordLevel)
	}

	if err := sm.smPersistMapping(word, value, GOBANGLA_TAG_WORD, true); err != nil {
		return err
	}

	sm.logger.Debug("trained word", zap.String("word", word), zap.String("value", value))

	if sm.tx == nil {
		return sm.smStampVersion()
	}
	return nil
}

func (sm *SchemeMaker) smPersistMapping(pattern string, value string, tag string, replace bool) error {
	ctx, cancelFunc := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelFunc()

	query := "INSERT INTO mappings (pattern, value, tag, created_on) VALUES (?, ?, ?, strftime('%s', 'now'))"

	if replace {
		query += " ON CONFLICT(pattern) DO UPDATE SET value = excluded.value, tag = excluded.tag"
	} else {
		persisted, err := sm.smAlreadyPersisted(ctx, pattern)
		if err != nil {
			return err
		}

		if persisted {
			if sm.Config.IgnoreDuplicateMappings {
				sm.logger.Debug("ignoring duplicate mapping", zap.String("pattern", pattern), zap.String("value", value))
				return nil
			}
			return fmt.Errorf("there is already a mapping for '%s': %w", pattern, ErrDuplicateMapping)
		}
	}

	_, err := sm.db().ExecContext(ctx, query, pattern, value, tag)
	if err != nil {
		return fmt.Errorf("failed to persist mapping: %w", err)
	}

	return nil
}

func (sm *SchemeMaker) smAlreadyPersisted(ctx context.Context, pattern string) (bool, error) {
	result, err := sm.SMSearchMappings(ctx, MappingSearch{Pattern: pattern})
	if err != nil {
		return false, err
	}
	return len(result) > 0, nil
}

func makeSearchMappingQuery(queryPrefix string, search MappingSearch) (string, []interface{}) {
	var (
		clauses []string
		values  []interface{}
	)

	addItem := func(name string, val string) {
		if val == "" {
			return
		}

		if len(val) > 5 && val[0:5] == "LIKE " {
			clauses = append(clauses, name+" LIKE ?")
			values = append(values, val[5:])
			return
		}

		clauses = append(clauses, name+" = ?")
		values = append(values, val)
	}

	addItem("pattern", search.Pattern)
	addItem("value", search.Value)
	addItem("tag", search.Tag)

	query := queryPrefix

	if len(values) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	return query, values
}

// SMSearchMappings find mappings matching search
func (sm *SchemeMaker) SMSearchMappings(ctx context.Context, search MappingSearch) ([]Mapping, error) {
	var results []Mapping

	query, values := makeSearchMappingQuery("SELECT id, pattern, value, tag, created_on FROM mappings", search)
	query += " ORDER BY id ASC"

	rows, err := sm.db().QueryContext(ctx, query, values...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item      Mapping
			tag       sql.NullString
			createdOn sql.NullInt64
		)
		if err := rows.Scan(&item.Identifier, &item.Pattern, &item.Value, &tag, &createdOn); err != nil {
			return nil, err
		}
		item.Tag = tag.String
		item.CreatedOn = int(createdOn.Int64)
		results = append(results, item)
	}

	return results, rows.Err()
}

// SMDeleteMapping removes pattern from the scheme
func (sm *SchemeMaker) SMDeleteMapping(pattern string) error {
	if pattern == "" {
		return fmt.Errorf("pattern is empty: %w", ErrInvalidMapping)
	}

	query, values := makeSearchMappingQuery("DELETE FROM mappings", MappingSearch{Pattern: pattern})
	result, err := sm.db().ExecContext(context.Background(), query, values...)
	if err != nil {
		return fmt.Errorf("failed to delete mapping: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	sm.logger.Debug("deleted mappings", zap.String("pattern", pattern), zap.Int64("count", rowsAffected))

	return nil
}

func (sm *SchemeMaker) smStampVersion() error {
	_, err := sm.db().ExecContext(context.Background(), fmt.Sprintf("PRAGMA user_version=%d", GOBANGLA_SCHEMA_VERSION))
	return err
}

func (sm *SchemeMaker) smAddMetadata(key string, value string) error {
	_, err := sm.db().ExecContext(context.Background(), "INSERT OR REPLACE INTO metadata (key, value) VALUES (?, ?)", key, value)
	return err
}

// SMSetSchemeDetails set scheme details
func (sm *SchemeMaker) SMSetSchemeDetails(sd SchemeDetails) error {
	if len(sd.LangCode) != 2 {
		return fmt.Errorf("language code should be one of ISO 639-1 two letter codes: %w", ErrInvalidSchemeDetails)
	}

	if sd.Identifier == "" {
		return fmt.Errorf("identifier is empty: %w", ErrInvalidSchemeDetails)
	}

	isStable := "1"
	if !sd.IsStable {
		isStable = "0"
	}

	if sd.CompiledDate == "" {
		sd.CompiledDate = time.Now().UTC().Format(time.RFC3339)
	}

	type item struct {
		name  string
		key   string
		value string
	}

	items := []item{
		{"language code", GOBANGLA_METADATA_SCHEME_LANGUAGE_CODE, sd.LangCode},
		{"identifier", GOBANGLA_METADATA_SCHEME_IDENTIFIER, sd.Identifier},
		{"display name", GOBANGLA_METADATA_SCHEME_DISPLAY_NAME, sd.DisplayName},
		{"author", GOBANGLA_METADATA_SCHEME_AUTHOR, sd.Author},
		{"compiled date", GOBANGLA_METADATA_SCHEME_COMPILED_DATE, sd.CompiledDate},
		{"stable", GOBANGLA_METADATA_SCHEME_STABLE, isStable},
	}

	for _, o := range items {
		if err := sm.smAddMetadata(o.key, o.value); err != nil {
			return err
		}
		sm.logger.Debug("set "+o.name, zap.String("value", o.value))
	}

	return nil
}

// SMImportScheme write every mapping and the details of scheme.
// Existing patterns are kept if Config.IgnoreDuplicateMappings is set,
// otherwise the import fails and nothing is written.
func (sm *SchemeMaker) SMImportScheme(scheme *Scheme) error {
	if err := sm.smStartBuffering(); err != nil {
		return err
	}

	if err := sm.SMSetSchemeDetails(scheme.Details()); err != nil {
		sm.smDiscardChanges()
		return err
	}

	for _, pattern := range scheme.Patterns() {
		value, _ := scheme.Lookup(pattern)
		if err := sm.SMCreateMapping(pattern, value, "", true); err != nil {
			// SMCreateMapping already rolled back
			return fmt.Errorf("importing %q: %w", pattern, err)
		}
	}

	sm.logger.Info("imported scheme", zap.String("scheme", scheme.Details().Identifier), zap.Int("mappings", scheme.Len()))

	return sm.SMFlushBuffer()
}

// SMFlushBuffer write buffered changes to the file
func (sm *SchemeMaker) SMFlushBuffer() error {
	if err := sm.smStampVersion(); err != nil {
		return err
	}

	return sm.smFlushChanges()
}

// Close discards unflushed changes and closes the file
func (sm *SchemeMaker) Close() error {
	sm.smDiscardChanges()
	sm.logger.Sync()
	return sm.conn.Close()
}
