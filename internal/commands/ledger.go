package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/ledgerline/ledgerline/internal/accounts"
	"github.com/ledgerline/ledgerline/internal/config"
	"github.com/ledgerline/ledgerline/internal/gitops"
	"github.com/ledgerline/ledgerline/internal/journal"
	"github.com/ledgerline/ledgerline/internal/logging"
)

// ledger is an opened ledger repository.
type ledger struct {
	root    string
	cfg     *config.Config
	logger  *zap.Logger
	chart   *accounts.Service
	journal *journal.Service
}

func openLedger(repoDir string) (*ledger, error) {
	root, err := filepath.Abs(repoDir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		return nil, fmt.Errorf("loading config (run 'ledgerline init' first?): %w", err)
	}

	logger, err := logging.New(cfg.Logging.Mode)
	if err != nil {
		return nil, err
	}

	chart, err := accounts.Load(root)
	if err != nil {
		return nil, err
	}

	logger.Debug("ledger opened",
		zap.String("root", root),
		zap.String("business", cfg.Business.Name),
		zap.Int("accounts", len(chart.All())),
	)
	return &ledger{
		root:    root,
		cfg:     cfg,
		logger:  logger,
		chart:   chart,
		journal: journal.NewService(root, chart),
	}, nil
}

func (l *ledger) git() gitops.Repo {
	return gitops.Repo{
		Dir:    l.root,
		Author: gitops.Author{Name: l.cfg.Git.AuthorName, Email: l.cfg.Git.AuthorEmail},
	}
}

func (l *ledger) close() {
	_ = l.logger.Sync()
}

// parseDate parses a YYYY-MM-DD flag value.
func parseDate(flag, value string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: %w", flag, err)
	}
	return t, nil
}

// fiscalYearStart returns the most recent fiscal year start on or before
// day. yearStart is "MM-DD".
func fiscalYearStart(yearStart string, day time.Time) (time.Time, error) {
	md, err := time.Parse("01-02", yearStart)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing fiscal year start %q: %w", yearStart, err)
	}
	start := time.Date(day.Year(), md.Month(), md.Day(), 0, 0, 0, 0, time.UTC)
	if start.After(day) {
		start = start.AddDate(-1, 0, 0)
	}
	return start, nil
}

func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
