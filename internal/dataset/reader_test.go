package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSniff(t *testing.T) {
	tests := []struct {
		name   string
		sample string
		def    rune
		want   rune
	}{
		{"tab", "a\tb\tc\n1\t2\t3\n", ',', '\t'},
		{"comma", "a,b,c\n1,2,3\n", '\t', ','},
		{"semicolon", "a;b\n1;2\n", '\t', ';'},
		{"pipe", "a|b\n1|2\n", '\t', '|'},
		{"header without commas keeps tab", "Title\tDescription\nDev\tGo, Rust\n", ',', '\t'},
		{"single column falls back", "title\ndev\n", '\t', '\t'},
		{"empty falls back", "", ';', ';'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, string(tt.want), string(Sniff([]byte(tt.sample), tt.def)))
		})
	}
}

func TestRead(t *testing.T) {
	input := "\ufeffJobTitle\tCompanyName\tSalary\n" +
		"Go Developer\tAcme\t80k-100k\n" +
		"Designer\tStudio\n"

	rows, err := Read(strings.NewReader(input), ',')
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Go Developer", rows[0]["JobTitle"])
	assert.Equal(t, "Acme", rows[0]["CompanyName"])
	assert.Equal(t, "80k-100k", rows[0]["Salary"])

	assert.Equal(t, "Designer", rows[1]["JobTitle"])
	_, ok := rows[1]["Salary"]
	assert.False(t, ok, "short record should not invent missing columns")
}

func TestRead_InvalidUTF8IsReplaced(t *testing.T) {
	input := "City,Country\nZ\xfcrich,CH\n"

	rows, err := Read(strings.NewReader(input), ',')
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Z\uFFFDrich", rows[0]["City"])
}

func TestReadFile_Missing(t *testing.T) {
	rows, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"), ',')
	assert.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadFile_HeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.csv")
	require.NoError(t, os.WriteFile(path, []byte("JobTitle,CompanyName\n"), 0o644))

	rows, err := ReadFile(path, ',')
	assert.NoError(t, err)
	assert.Empty(t, rows)
}
