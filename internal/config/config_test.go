package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Test Biz", "corporation")
	cfg.Reports.Sort = "endingDebitAmount:desc"

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default("My Company", "corporation")

	assert.Equal(t, "My Company", cfg.Business.Name)
	assert.Equal(t, int64(1), cfg.Business.AccountBookID)
	assert.Equal(t, "01-01", cfg.Fiscal.YearStart)
	assert.Equal(t, 50, cfg.Reports.PageSize)
	assert.Equal(t, "accumulate", cfg.Reports.CashFlowPolicy)
	assert.Equal(t, "production", cfg.Logging.Mode)
	assert.True(t, cfg.Git.AutoCommit)
	assert.NoError(t, cfg.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default("Env Co", "corporation")))

	t.Setenv("LEDGERLINE_LOG_MODE", "debug")
	t.Setenv("LEDGERLINE_PAGE_SIZE", "5")
	t.Setenv("LEDGERLINE_CASH_FLOW_POLICY", "first-match")
	t.Setenv("LEDGERLINE_SORT", "createdAt:asc")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Mode)
	assert.Equal(t, 5, cfg.Reports.PageSize)
	assert.Equal(t, "first-match", cfg.Reports.CashFlowPolicy)
	assert.Equal(t, "createdAt:asc", cfg.Reports.Sort)
}

func TestEnvOverride_BadNumber(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default("Env Co", "corporation")))
	t.Setenv("LEDGERLINE_PAGE_SIZE", "lots")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing name", func(c *Config) { c.Business.Name = "" }},
		{"bad year start", func(c *Config) { c.Fiscal.YearStart = "13-40" }},
		{"zero page size", func(c *Config) { c.Reports.PageSize = 0 }},
		{"unknown policy", func(c *Config) { c.Reports.CashFlowPolicy = "greedy" }},
		{"unknown log mode", func(c *Config) { c.Logging.Mode = "loud" }},
		{"bad author email", func(c *Config) { c.Git.AuthorEmail = "not-an-email" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default("Biz", "corporation")
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default("Test Biz", "corporation")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Test Biz")
	assert.Contains(t, contents, "year_start: 01-01")
	assert.Contains(t, contents, "page_size: 50")
	assert.Contains(t, contents, "cash_flow_policy: accumulate")
	assert.Contains(t, contents, "mode: production")
}
