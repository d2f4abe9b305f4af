package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfaustino/boycott-evil/internal/model"
)

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	paths := Paths{
		Boycotted: writeTestFile(t, dir, "evil.json",
			`{"nestle": {"evil": true, "reason": "water extraction"}}`),
		Recommended: writeTestFile(t, dir, "good.json",
			`{"fairtrade foods": {"good": true}}`),
		Aliases: writeTestFile(t, dir, "aliases.json",
			`{"pure life": "nestle"}`),
	}

	lib, err := Load(context.Background(), paths)
	require.NoError(t, err)

	b, r, a := lib.Counts()
	assert.Equal(t, 1, b)
	assert.Equal(t, 1, r)
	assert.Equal(t, 1, a)
}

func TestLoad_OptionalFilesOmitted(t *testing.T) {
	dir := t.TempDir()
	paths := Paths{
		Boycotted: writeTestFile(t, dir, "evil.json", `{"nestle": {"evil": true}}`),
	}

	lib, err := Load(context.Background(), paths)
	require.NoError(t, err)

	b, r, a := lib.Counts()
	assert.Equal(t, 1, b)
	assert.Zero(t, r)
	assert.Zero(t, a)
}

func TestLoad_MissingBoycottedFatal(t *testing.T) {
	_, err := Load(context.Background(), Paths{Boycotted: filepath.Join(t.TempDir(), "absent.json")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load boycotted companies")
}

func TestLoad_MalformedJSONFatal(t *testing.T) {
	dir := t.TempDir()
	paths := Paths{
		Boycotted: writeTestFile(t, dir, "evil.json", `{"nestle": `),
	}
	_, err := Load(context.Background(), paths)
	require.Error(t, err)
}

func TestWriteCompanyFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	companies := map[string]model.CompanyRecord{
		"nestle": {Evil: true, Reason: "water extraction", Supports: []string{"Occupation"}},
	}
	require.NoError(t, WriteCompanyFile(path, companies))

	got, err := readCompanyFile(path)
	require.NoError(t, err)
	assert.Equal(t, companies, got)
}

func TestWriteAliasFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aliases.json")
	aliases := map[string]string{"pure life": "nestle"}
	require.NoError(t, WriteAliasFile(path, aliases))

	got, err := readAliasFile(path)
	require.NoError(t, err)
	assert.Equal(t, aliases, got)
}
