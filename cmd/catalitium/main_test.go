package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/catalitium/internal/db"
	"github.com/jonathan/catalitium/internal/types"
)

const testJobs = "JobID\tJobTitle\tCompanyName\tCity\tCountry\tSalary\tDescription\n" +
	"1\tSenior Software Engineer\tAcme\tBerlin\tDE\t90k-110k\tGo services\n" +
	"2\tData Analyst\tBeta\tHamburg\tDE\t\tSQL reports\n" +
	"3\tSoftware Engineer\tGamma\tZurich\tCH\t130000\tRust\n"

const testSalary = "City,Country,CurrencyTicker,MedianSalary,MinSalary\n" +
	"Hamburg,DE,EUR,60000,45000\n"

// setupEnv points the CLI at temporary datasets and a SQLite database.
func setupEnv(t *testing.T) (dbPath string) {
	t.Helper()
	dir := t.TempDir()

	jobs := filepath.Join(dir, "jobs.tsv")
	salary := filepath.Join(dir, "salary.csv")
	require.NoError(t, os.WriteFile(jobs, []byte(testJobs), 0o644))
	require.NoError(t, os.WriteFile(salary, []byte(testSalary), 0o644))

	dbPath = filepath.Join(dir, "catalitium.db")
	t.Setenv("JOBS_CSV", jobs)
	t.Setenv("SALARY_CSV", salary)
	t.Setenv("DATABASE_URL", "sqlite://"+dbPath)
	t.Setenv("PORT", "")
	t.Setenv("PER_PAGE", "")
	return dbPath
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSearchCommand_JSON(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "search", "--title", "Engineer!", "--json")
	require.NoError(t, err)

	var result types.SearchResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, "engineer", result.TitleQuery)
	require.Len(t, result.Results, 2)
	assert.Equal(t, "1", result.Results[0].ID)
	assert.Equal(t, "3", result.Results[1].ID)
}

func TestSearchCommand_CountryAndSalary(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "search", "--country", "germany", "--title", ">50k", "--json")
	require.NoError(t, err)

	var result types.SearchResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "DE", result.Country)
	require.NotNil(t, result.SalaryMin)
	assert.Equal(t, 50000, *result.SalaryMin)
	require.Len(t, result.Results, 2, "the analyst matches through the Hamburg reference median")
	assert.Equal(t, "EUR", result.Results[1].RefCurrency)
}

func TestSearchCommand_Pages(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "search", "--page", "2", "--per-page", "2", "--json")
	require.NoError(t, err)

	var result types.SearchResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 3, result.Count)
	assert.Equal(t, 2, result.Pagination.TotalPages)
	require.Len(t, result.Results, 1)
	assert.Equal(t, "3", result.Results[0].ID)
}

func TestSearchCommand_Printer(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "search", "--title", "analyst")
	require.NoError(t, err)
	assert.Contains(t, out, "SEARCH RESULTS")
	assert.Contains(t, out, "Data Analyst")
	assert.Contains(t, out, "45000-60000 EUR")
}

func TestSearchCommand_MissingDatasetIsEmpty(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "search", "--jobs", filepath.Join(t.TempDir(), "none.tsv"), "--json")
	require.NoError(t, err)

	var result types.SearchResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 0, result.Count)
}

func TestSearchCommand_ConfigFile(t *testing.T) {
	setupEnv(t)
	t.Setenv("JOBS_CSV", "")

	dir := t.TempDir()
	jobs := filepath.Join(dir, "other.tsv")
	require.NoError(t, os.WriteFile(jobs, []byte("JobTitle\tCompanyName\nPlumber\tPipes Ltd\n"), 0o644))
	cfgPath := filepath.Join(dir, "catalitium.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("jobs_path: "+jobs+"\n"), 0o644))

	out, err := run(t, "--config", cfgPath, "search", "--json")
	require.NoError(t, err)

	var result types.SearchResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Results, 1)
	assert.Equal(t, "Plumber", result.Results[0].Title)
}

func TestSearchCommand_InvalidConfig(t *testing.T) {
	setupEnv(t)
	cfgPath := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"port": "eighty"}`), 0o644))

	_, err := run(t, "--config", cfgPath, "search")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestSearchesCommand(t *testing.T) {
	dbPath := setupEnv(t)
	ctx := context.Background()

	store, err := db.OpenSQLite(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.LogSearch(ctx, "golang", "DE"))
	require.NoError(t, store.LogSearch(ctx, "rust", ""))
	store.Close()

	out, err := run(t, "searches", "--json", "--limit", "1")
	require.NoError(t, err)

	var logs []db.SearchLog
	require.NoError(t, json.Unmarshal([]byte(out), &logs))
	require.Len(t, logs, 1)
	assert.Equal(t, "rust", logs[0].Term)

	out, err = run(t, "searches")
	require.NoError(t, err)
	assert.Contains(t, out, "RECENT SEARCHES (2)")
	assert.Contains(t, out, "golang")
}

func TestSearchesCommand_Empty(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "searches", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}
