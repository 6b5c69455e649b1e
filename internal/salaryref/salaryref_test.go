package salaryref

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Lookup(t *testing.T) {
	idx := Build([]map[string]string{
		{"City": "Berlin", "Country": "DE", "MedianSalary": "6000", "MinSalary": "4000", "CurrencyTicker": "eur"},
		{"City": "", "Country": "DE", "MedianSalary": "5000"},
		{"City": "Zurich", "Country": "CH", "MedianSalary": "9000.75", "MinSalary": "n/a"},
		{"City": "Nowhere", "Country": "", "MedianSalary": "1"},
	})

	t.Run("exact city match", func(t *testing.T) {
		e, ok := idx.Lookup("berlin", "de")
		require.True(t, ok)
		require.NotNil(t, e.Median)
		assert.Equal(t, 6000, *e.Median)
		assert.Equal(t, 4000, *e.Min)
		assert.Equal(t, "EUR", e.Currency)
		assert.Equal(t, "Berlin", e.Label)
	})

	t.Run("case insensitive", func(t *testing.T) {
		e, ok := idx.Lookup(" BERLIN ", "De")
		require.True(t, ok)
		assert.Equal(t, 6000, *e.Median)
	})

	t.Run("country fallback is the first row for that country", func(t *testing.T) {
		e, ok := idx.Lookup("munich", "de")
		require.True(t, ok)
		require.NotNil(t, e.Median)
		assert.Equal(t, 6000, *e.Median)
		assert.Equal(t, "DE", e.Label)
	})

	t.Run("unparseable numbers are nil", func(t *testing.T) {
		e, ok := idx.Lookup("zurich", "ch")
		require.True(t, ok)
		assert.Equal(t, 9000, *e.Median)
		assert.Nil(t, e.Min)
		assert.Equal(t, DefaultCurrency, e.Currency)
	})

	t.Run("rows without a country are skipped", func(t *testing.T) {
		_, ok := idx.Lookup("nowhere", "")
		assert.False(t, ok)
	})

	t.Run("unknown country", func(t *testing.T) {
		_, ok := idx.Lookup("paris", "fr")
		assert.False(t, ok)
	})
}

func TestBuild_EmptyCityRowFirstOwnsFallback(t *testing.T) {
	idx := Build([]map[string]string{
		{"City": "", "Country": "DE", "MedianSalary": "5000"},
		{"City": "Berlin", "Country": "DE", "MedianSalary": "6000"},
	})

	e, ok := idx.Lookup("munich", "de")
	require.True(t, ok)
	assert.Equal(t, 5000, *e.Median)

	e, ok = idx.Lookup("berlin", "de")
	require.True(t, ok)
	assert.Equal(t, 6000, *e.Median)
}

func TestBuild_LaterCityRowOverwrites(t *testing.T) {
	idx := Build([]map[string]string{
		{"City": "Berlin", "Country": "DE", "MedianSalary": "6000"},
		{"City": "Berlin", "Country": "DE", "MedianSalary": "6500"},
	})

	e, _ := idx.Lookup("berlin", "de")
	assert.Equal(t, 6500, *e.Median)
	fallback, _ := idx.Lookup("", "de")
	assert.Equal(t, 6000, *fallback.Median)
	assert.Equal(t, 1, idx.Len())
}

func TestIndex_NilIsEmpty(t *testing.T) {
	var idx *Index
	assert.True(t, idx.Empty())
	_, ok := idx.Lookup("berlin", "de")
	assert.False(t, ok)
}

func TestMtimeCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "salary.csv")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	median := "6000"
	reads := 0
	cache := NewMtimeCache(func(string) ([]map[string]string, error) {
		reads++
		return []map[string]string{{"City": "Berlin", "Country": "DE", "MedianSalary": median}}, nil
	})

	first, err := cache.Get(path)
	require.NoError(t, err)
	second, err := cache.Get(path)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, reads)

	median = "7000"
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, later, later))

	third, err := cache.Get(path)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, 2, cache.Builds())

	e, ok := third.Lookup("berlin", "de")
	require.True(t, ok)
	assert.Equal(t, 7000, *e.Median)
}

func TestMtimeCache_MissingFile(t *testing.T) {
	cache := NewMtimeCache(func(string) ([]map[string]string, error) {
		t.Fatal("reader should not be called for a missing file")
		return nil, nil
	})

	idx, err := cache.Get(filepath.Join(t.TempDir(), "missing.csv"))
	require.NoError(t, err)
	assert.True(t, idx.Empty())
}

func TestDefaultDelimiter(t *testing.T) {
	assert.Equal(t, '\t', DefaultDelimiter("ref/salary.tsv"))
	assert.Equal(t, ',', DefaultDelimiter("ref/salary.csv"))
}

func TestNewFileCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "salary.tsv")
	require.NoError(t, os.WriteFile(path, []byte(
		"City\tCountry\tCurrencyTicker\tMedianSalary\tMinSalary\n"+
			"Zurich\tCH\tchf\t120000.9\t95000\n"), 0o644))

	idx, err := NewFileCache().Get(path)
	require.NoError(t, err)

	e, ok := idx.Lookup("zurich", "ch")
	require.True(t, ok)
	assert.Equal(t, 120000, *e.Median)
	assert.Equal(t, 95000, *e.Min)
	assert.Equal(t, "CHF", e.Currency)
}
