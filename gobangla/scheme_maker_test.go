package gobangla

import (
	"context"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initialize a fresh scheme maker for tests
func initTestSM(t *testing.T, name string) (*SchemeMaker, string) {
	t.Helper()

	schemePath := path.Join(testTempDir, name+".sm"+SCHEME_FILE_EXT)
	os.Remove(schemePath)

	sm, err := SMInit(schemePath)
	require.NoError(t, err)
	t.Cleanup(func() { sm.Close() })

	return sm, schemePath
}

func searchPattern(t *testing.T, sm *SchemeMaker, pattern string) []Mapping {
	t.Helper()
	mappings, err := sm.SMSearchMappings(context.Background(), MappingSearch{Pattern: pattern})
	require.NoError(t, err)
	return mappings
}

func TestCreateMappingWithoutBuffering(t *testing.T) {
	sm, _ := initTestSM(t, "create")

	require.NoError(t, sm.SMCreateMapping("kh", "খ", "", false))

	mappings := searchPattern(t, sm, "kh")
	require.Len(t, mappings, 1)
	assert.Equal(t, "খ", mappings[0].Value)
	assert.Equal(t, GOBANGLA_TAG_SEGMENT, mappings[0].Tag)
	assert.NotZero(t, mappings[0].CreatedOn)
}

func TestCreateMappingWithBuffering(t *testing.T) {
	sm, _ := initTestSM(t, "buffered")

	require.NoError(t, sm.SMCreateMapping("k", "ক", "", true))

	// Visible inside the buffer
	assert.Len(t, searchPattern(t, sm, "k"), 1)

	require.NoError(t, sm.SMFlushBuffer())
	assert.Len(t, searchPattern(t, sm, "k"), 1)
}

func TestCloseDiscardsBuffer(t *testing.T) {
	sm, schemePath := initTestSM(t, "discard")

	require.NoError(t, sm.SMCreateMapping("k", "ক", "", true))
	require.NoError(t, sm.Close())

	sm, err := SMInit(schemePath)
	require.NoError(t, err)
	defer sm.Close()

	assert.Len(t, searchPattern(t, sm, "k"), 0)
}

func TestDuplicateMappings(t *testing.T) {
	sm, _ := initTestSM(t, "duplicates")

	require.NoError(t, sm.SMCreateMapping("g", "গ", "", false))

	err := sm.SMCreateMapping("g", "ঘ", "", false)
	assert.ErrorIs(t, err, ErrDuplicateMapping)

	sm.Config.IgnoreDuplicateMappings = true
	require.NoError(t, sm.SMCreateMapping("g", "ঘ", "", false))

	// First one stays
	mappings := searchPattern(t, sm, "g")
	require.Len(t, mappings, 1)
	assert.Equal(t, "গ", mappings[0].Value)
}

func TestDuplicateMappingsCaseSensitive(t *testing.T) {
	sm, _ := initTestSM(t, "case")

	require.NoError(t, sm.SMCreateMapping("sh", "শ", "", false))
	require.NoError(t, sm.SMCreateMapping("Sh", "ষ", "", false))

	assert.Len(t, searchPattern(t, sm, "sh"), 1)
	assert.Len(t, searchPattern(t, sm, "Sh"), 1)
}

func TestInvalidMappings(t *testing.T) {
	sm, _ := initTestSM(t, "invalid")

	assert.ErrorIs(t, sm.SMCreateMapping("", "ক", "", false), ErrInvalidMapping)
	assert.ErrorIs(t, sm.SMCreateMapping("k", "", "", false), ErrInvalidMapping)
	assert.ErrorIs(t, sm.SMCreateMapping("k h", "ক", "", false), ErrInvalidMapping)

	// Too long to be a segment and not lower case, never reachable
	assert.ErrorIs(t, sm.SMCreateMapping("Amar", "আমার", "", false), ErrInvalidMapping)

	long := strings.Repeat("a", GOBANGLA_SYMBOL_MAX+1)
	assert.ErrorIs(t, sm.SMCreateMapping(long, "আ", "", false), ErrInvalidMapping)
}

func TestWordTag(t *testing.T) {
	sm, _ := initTestSM(t, "tags")

	require.NoError(t, sm.SMCreateMapping("amar", "আমার", "", false))

	mappings := searchPattern(t, sm, "amar")
	require.Len(t, mappings, 1)
	assert.Equal(t, GOBANGLA_TAG_WORD, mappings[0].Tag)

	words, err := sm.SMSearchMappings(context.Background(), MappingSearch{Tag: GOBANGLA_TAG_WORD})
	require.NoError(t, err)
	assert.Len(t, words, 1)
}

func TestTrainWord(t *testing.T) {
	sm, schemePath := initTestSM(t, "train")

	require.NoError(t, sm.SMSetSchemeDetails(SchemeDetails{Identifier: "bn-train", LangCode: "bn"}))

	require.NoError(t, sm.SMTrainWord("Taka", "টাকা"))
	mappings := searchPattern(t, sm, "taka")
	require.Len(t, mappings, 1)
	assert.Equal(t, GOBANGLA_TAG_WORD, mappings[0].Tag)

	// Training again replaces
	require.NoError(t, sm.SMTrainWord("taka", "টাকায়"))
	mappings = searchPattern(t, sm, "taka")
	require.Len(t, mappings, 1)
	assert.Equal(t, "টাকায়", mappings[0].Value)

	// Would never be taken as a whole word
	assert.ErrorIs(t, sm.SMTrainWord("k", "ক"), ErrNotWordLevel)

	require.NoError(t, sm.Close())

	engine, err := Init(schemePath)
	require.NoError(t, err)
	assert.Equal(t, "টাকায়", engine.Convert("taka"))
}

func TestDeleteMapping(t *testing.T) {
	sm, _ := initTestSM(t, "delete")

	require.NoError(t, sm.SMCreateMapping("p", "প", "", false))
	require.NoError(t, sm.SMCreateMapping("ph", "ফ", "", false))

	require.NoError(t, sm.SMDeleteMapping("p"))
	assert.Len(t, searchPattern(t, sm, "p"), 0)
	assert.Len(t, searchPattern(t, sm, "ph"), 1)

	assert.ErrorIs(t, sm.SMDeleteMapping(""), ErrInvalidMapping)
}

func TestSearchLike(t *testing.T) {
	sm, _ := initTestSM(t, "like")

	require.NoError(t, sm.SMCreateMapping("k", "ক", "", false))
	require.NoError(t, sm.SMCreateMapping("kh", "খ", "", false))
	require.NoError(t, sm.SMCreateMapping("Kh", "খ", "", false))

	mappings, err := sm.SMSearchMappings(context.Background(), MappingSearch{Pattern: "LIKE k%"})
	require.NoError(t, err)
	// LIKE is case sensitive on scheme files
	assert.Len(t, mappings, 2)
}

func TestSetSchemeDetails(t *testing.T) {
	sm, _ := initTestSM(t, "details")

	err := sm.SMSetSchemeDetails(SchemeDetails{Identifier: "x", LangCode: "ben"})
	assert.ErrorIs(t, err, ErrInvalidSchemeDetails)

	err = sm.SMSetSchemeDetails(SchemeDetails{LangCode: "bn"})
	assert.ErrorIs(t, err, ErrInvalidSchemeDetails)

	require.NoError(t, sm.SMSetSchemeDetails(SchemeDetails{
		Identifier:  "bn-test",
		LangCode:    "bn",
		DisplayName: "Test",
		Author:      "Anon",
		IsStable:    true,
	}))
}

func TestImportDefaultScheme(t *testing.T) {
	sm, schemePath := initTestSM(t, "import")

	require.NoError(t, sm.SMImportScheme(DefaultScheme()))
	require.NoError(t, sm.Close())

	engine, err := Init(schemePath)
	require.NoError(t, err)

	loaded := engine.Scheme()
	assert.Equal(t, DefaultScheme().Len(), loaded.Len())
	assert.Equal(t, DefaultScheme().Patterns(), loaded.Patterns())
	assert.Equal(t, DEFAULT_SCHEME_ID, loaded.Details().Identifier)
	assert.Equal(t, "bn", loaded.Details().LangCode)
	assert.True(t, loaded.Details().IsStable)
	assert.NotEmpty(t, loaded.Details().CompiledDate)

	input := "ami bangla bhalobashi, xyz123 Sha sha kSha"
	assert.Equal(t, Convert(input), engine.Convert(input))
}

func TestImportDuplicateRollsBack(t *testing.T) {
	sm, _ := initTestSM(t, "import-dup")

	require.NoError(t, sm.SMCreateMapping("k", "খ", "", false))

	err := sm.SMImportScheme(DefaultScheme())
	assert.ErrorIs(t, err, ErrDuplicateMapping)

	// Nothing from the failed import is left behind
	mappings, err := sm.SMSearchMappings(context.Background(), MappingSearch{})
	require.NoError(t, err)
	assert.Len(t, mappings, 1)
}
