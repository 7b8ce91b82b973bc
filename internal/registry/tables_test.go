// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/health-report/pkg/types"
)

func TestDefaultTables(t *testing.T) {
	tables := DefaultTables()

	ch, ok := tables.Chapter(types.SourceDeepDivePerformanceHealth)
	require.True(t, ok)
	assert.Equal(t, "PH", ch)
	assert.Equal(t, []string{"OPS", "FIN"}, tables.Dimensions("PH"))
	assert.Equal(t, []string{"GE", "PH", "PL", "RS"}, tables.Chapters())

	_, ok = tables.Chapter(types.SourceExecutiveSummary)
	assert.False(t, ok, "summary documents have no chapter")

	name, ok := tables.DisplayName("tin")
	require.True(t, ok)
	assert.Equal(t, "Technology & Innovation", name)

	mgr, ok := tables.Manager("FIN")
	require.True(t, ok)
	assert.Equal(t, FinancialManager, mgr)

	owner, ok := tables.ChapterOf("CMP")
	require.True(t, ok)
	assert.Equal(t, "RS", owner)

	assert.True(t, tables.Known("ops"))
	assert.False(t, tables.Known("XYZ"))
	assert.Nil(t, tables.Dimensions("ZZ"))
	assert.Len(t, tables.AllDimensions(), 12)
}

func TestDimensionsReturnsCopy(t *testing.T) {
	tables := DefaultTables()
	dims := tables.Dimensions("GE")
	dims[0] = "MUTATED"
	assert.Equal(t, "STR", tables.Dimensions("GE")[0])
}

func TestNewTablesValidation(t *testing.T) {
	dim := func(code string) DimensionSpec {
		return DimensionSpec{Code: code, Name: code + " name", Manager: "m"}
	}
	tests := []struct {
		name   string
		spec   TablesSpec
		errMsg string
	}{
		{
			name:   "empty chapter code",
			spec:   TablesSpec{Chapters: []ChapterSpec{{Name: "x"}}},
			errMsg: "empty code",
		},
		{
			name:   "duplicate chapter",
			spec:   TablesSpec{Chapters: []ChapterSpec{{Code: "A"}, {Code: "a"}}},
			errMsg: "duplicate code",
		},
		{
			name: "duplicate dimension across chapters",
			spec: TablesSpec{Chapters: []ChapterSpec{
				{Code: "A", Dimensions: []DimensionSpec{dim("X")}},
				{Code: "B", Dimensions: []DimensionSpec{dim("X")}},
			}},
			errMsg: "already defined in chapter A",
		},
		{
			name: "missing manager",
			spec: TablesSpec{Chapters: []ChapterSpec{
				{Code: "A", Dimensions: []DimensionSpec{{Code: "X", Name: "X"}}},
			}},
			errMsg: "empty manager",
		},
		{
			name: "missing display name",
			spec: TablesSpec{Chapters: []ChapterSpec{
				{Code: "A", Dimensions: []DimensionSpec{{Code: "X", Manager: "m"}}},
			}},
			errMsg: "empty display name",
		},
		{
			name: "source with unknown chapter",
			spec: TablesSpec{
				Chapters: []ChapterSpec{{Code: "A", Dimensions: []DimensionSpec{dim("X")}}},
				Sources:  map[types.SourceFileType]string{"doc": "B"},
			},
			errMsg: "unknown chapter",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTables(tt.spec)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	content := `chapters:
  - code: ch
    name: Custom Chapter
    dimensions:
      - code: abc
        name: Alpha Beta
        manager: alphaManager
      - code: DEF
        name: Delta
        manager: deltaManager
sources:
  custom-doc: CH
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tables, err := LoadTables(path)
	require.NoError(t, err)

	ch, ok := tables.Chapter("custom-doc")
	require.True(t, ok)
	assert.Equal(t, "CH", ch)
	assert.Equal(t, []string{"ABC", "DEF"}, tables.Dimensions("ch"))
	name, _ := tables.ChapterName("CH")
	assert.Equal(t, "Custom Chapter", name)

	spec := tables.Spec()
	again, err := NewTables(spec)
	require.NoError(t, err)
	assert.Equal(t, tables.AllDimensions(), again.AllDimensions())
}

func TestLoadTablesErrors(t *testing.T) {
	_, err := LoadTables(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading tables")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chapters: [unterminated"), 0o644))
	_, err = LoadTables(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing tables")
}
