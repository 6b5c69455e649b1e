package listings

import (
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/jonathan/catalitium/internal/dataset"
	"github.com/jonathan/catalitium/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRows(t *testing.T) {
	rows := []dataset.Row{
		{
			"JobID": "j-1", "JobTitle": "Backend Engineer", "CompanyName": "Acme",
			"City": "Berlin", "Country": "Germany", "Salary": "€70k - €90k",
			"CreatedAt": "2024-05-01T10:00:00Z", "Description": "<p>Build <b>APIs</b></p>",
		},
		{"Title": "", "Company": ""},
		{"Title": "Designer", "Location": "Zurich", "Country": "Schweiz"},
		{"Company": "Ghost Corp", "Summary": "Mystery role", "DatePosted": "2024-06"},
	}

	got := FromRows(rows)
	require.Len(t, got, 3)

	first := got[0]
	assert.Equal(t, "j-1", first.ID)
	assert.Equal(t, "Berlin, Germany", first.Location)
	assert.Equal(t, "DE", first.CountryCode)
	assert.Equal(t, "2024-05-01", first.DatePosted)
	assert.Equal(t, "Build APIs", first.Description)
	require.NotNil(t, first.SalaryMin)
	require.NotNil(t, first.SalaryMax)
	assert.Equal(t, 70000, *first.SalaryMin)
	assert.Equal(t, 90000, *first.SalaryMax)
	assert.Equal(t, "Berlin", first.City)
	assert.Equal(t, "Germany", first.CountryRaw)

	designer := got[1]
	assert.Equal(t, "3", designer.ID, "id falls back to the row number")
	assert.Equal(t, types.UnknownCompany, designer.Company)
	assert.Equal(t, "Zurich", designer.Location)
	assert.Equal(t, "CH", designer.CountryCode, "country column is used when the location has no code")
	assert.Equal(t, "Designer", designer.Description)
	assert.Nil(t, designer.SalaryMin)
	assert.Nil(t, designer.SalaryMax)

	ghost := got[2]
	assert.Equal(t, types.UntitledListing, ghost.Title)
	assert.Equal(t, "Mystery role", ghost.Description)
	assert.Equal(t, RemoteLocation, ghost.Location)
	assert.Equal(t, "2024-06", ghost.DatePosted)
	assert.Equal(t, "", ghost.CountryCode)
}

func TestFromRows_DatePostedTruncatesRunes(t *testing.T) {
	tests := []struct {
		name string
		date string
		want string
	}{
		{"ascii timestamp", "2024-05-01T10:00:00Z", "2024-05-01"},
		{"short value kept", "2024-06", "2024-06"},
		{"multibyte kept whole", "2024年05月01日 10時", "2024年05月01"},
		{"multibyte at cut", "2024-05-0é1", "2024-05-0é"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromRows([]dataset.Row{{"Title": "Dev", "DatePosted": tt.date}})
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].DatePosted)
			assert.True(t, utf8.ValidString(got[0].DatePosted))
			assert.LessOrEqual(t, utf8.RuneCountInString(got[0].DatePosted), 10)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jobs.tsv")
	content := "JobTitle\tCompanyName\tLocation\tSalary\n" +
		"Go Developer\tAcme\tVienna, AT\t60000\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "AT", got[0].CountryCode)
	assert.Equal(t, 60000, *got[0].SalaryMin)
	assert.Nil(t, got[0].SalaryMax)

	missing, err := Load(filepath.Join(dir, "missing.tsv"))
	require.NoError(t, err)
	assert.Empty(t, missing)
}
