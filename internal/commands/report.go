package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ledgerline/ledgerline/internal/cashflow"
	"github.com/ledgerline/ledgerline/internal/report"
	"github.com/ledgerline/ledgerline/internal/runlog"
	"github.com/ledgerline/ledgerline/internal/trialbalance"
)

// reportFlags are shared by every report subcommand.
type reportFlags struct {
	from   string
	to     string
	format string
}

func newReportCommand(repoDir *string) *cobra.Command {
	var rf reportFlags

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Build financial statements and the trial balance",
	}
	reportCmd.PersistentFlags().StringVar(&rf.from, "from", "", "period start (YYYY-MM-DD, default: fiscal year start)")
	reportCmd.PersistentFlags().StringVar(&rf.to, "to", "", "period end, inclusive (YYYY-MM-DD, default: today)")
	reportCmd.PersistentFlags().StringVar(&rf.format, "format", string(report.FormatTable), "output format: table, json or yaml")

	reportCmd.AddCommand(
		newBalanceSheetCommand(repoDir, &rf),
		newIncomeCommand(repoDir, &rf),
		newCashFlowCommand(repoDir, &rf),
		newTrialBalanceCommand(repoDir, &rf),
	)
	return reportCmd
}

func newBalanceSheetCommand(repoDir *string, rf *reportFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "balance-sheet",
		Short: "Balance sheet as of --to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, *repoDir, rf, "balance-sheet", func(ctx context.Context, l *ledger, svc *report.Service, period trialbalance.Period) (any, int, error) {
				bs, err := svc.BalanceSheet(ctx, period.End)
				rows := 0
				for _, s := range bs.Sections {
					rows += len(s.Rows)
				}
				return bs, rows, err
			})
		},
	}
}

func newIncomeCommand(repoDir *string, rf *reportFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "income",
		Short: "Income statement for the period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, *repoDir, rf, "income", func(ctx context.Context, l *ledger, svc *report.Service, period trialbalance.Period) (any, int, error) {
				st, err := svc.IncomeStatement(ctx, period)
				return st, len(st.Rows), err
			})
		},
	}
}

func newCashFlowCommand(repoDir *string, rf *reportFlags) *cobra.Command {
	var policy string

	cmd := &cobra.Command{
		Use:   "cash-flow",
		Short: "Cash flow statement for the period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, *repoDir, rf, "cash-flow", func(ctx context.Context, l *ledger, svc *report.Service, period trialbalance.Period) (any, int, error) {
				st, err := svc.CashFlow(ctx, period)
				return st, len(st.Rows), err
			}, withPolicy(policy))
		},
	}
	cmd.Flags().StringVar(&policy, "policy", "", "rule precedence: accumulate or first-match (default from config)")
	return cmd
}

func newTrialBalanceCommand(repoDir *string, rf *reportFlags) *cobra.Command {
	var sortFlag string
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Trial balance for the period, sorted and paginated",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, *repoDir, rf, "trial-balance", func(ctx context.Context, l *ledger, svc *report.Service, period trialbalance.Period) (any, int, error) {
				keys := sortFlag
				if !cmd.Flags().Changed("sort") {
					keys = l.cfg.Reports.Sort
				}
				opts, err := trialbalance.ParseSortOptions(keys)
				if err != nil {
					return nil, 0, err
				}
				size := pageSize
				if !cmd.Flags().Changed("page-size") {
					size = l.cfg.Reports.PageSize
				}
				p, err := svc.TrialBalance(ctx, trialbalance.Query{
					Period:      period,
					Sort:        opts,
					PageRequest: trialbalance.PageRequest{Page: page, PageSize: size},
				})
				return p, len(p.Data), err
			})
		},
	}
	cmd.Flags().StringVar(&sortFlag, "sort", "", "sort keys, e.g. endingDebitAmount:desc,createdAt (default from config)")
	cmd.Flags().IntVar(&page, "page", 1, "page number, starting at 1")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "rows per page (default from config)")
	return cmd
}

type buildFunc func(ctx context.Context, l *ledger, svc *report.Service, period trialbalance.Period) (v any, rows int, err error)

type reportOption func(*report.Options) error

func withPolicy(policy string) reportOption {
	return func(o *report.Options) error {
		if policy == "" {
			return nil
		}
		p, err := cashflow.ParsePolicy(policy)
		if err != nil {
			return err
		}
		o.Policy = p
		return nil
	}
}

// runReport opens the ledger, builds one report, renders it and appends
// the run to the report log, failed runs included.
func runReport(cmd *cobra.Command, repoDir string, rf *reportFlags, name string, build buildFunc, opts ...reportOption) error {
	format, err := report.ParseFormat(rf.format)
	if err != nil {
		return err
	}

	l, err := openLedger(repoDir)
	if err != nil {
		return err
	}
	defer l.close()

	period, err := resolvePeriod(l, rf)
	if err != nil {
		return err
	}

	policy, err := cashflow.ParsePolicy(l.cfg.Reports.CashFlowPolicy)
	if err != nil {
		return err
	}
	svcOpts := report.Options{Policy: policy, Logger: l.logger}
	for _, o := range opts {
		if err := o(&svcOpts); err != nil {
			return err
		}
	}
	svc := report.NewService(l.chart, l.journal, svcOpts)

	entry := runlog.NewEntry(name, runParams(cmd, period), time.Now().UTC())
	v, rows, buildErr := build(cmd.Context(), l, svc, period)
	entry.Rows = rows
	entry.Duration = time.Since(entry.Started)
	if buildErr != nil {
		entry.Err = buildErr.Error()
	}
	if err := runlog.Append(l.root, []runlog.Entry{entry}); err != nil {
		l.logger.Warn("failed to write report log", zap.Error(err))
	}
	if buildErr != nil {
		return buildErr
	}

	l.logger.Debug("report rendered", zap.String("report", name), zap.Stringer("run_id", entry.RunID))
	return render(cmd.OutOrStdout(), format, v)
}

func render(out io.Writer, format report.Format, v any) error {
	if err := report.Render(out, format, v); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return nil
}

func resolvePeriod(l *ledger, rf *reportFlags) (trialbalance.Period, error) {
	end := today()
	if rf.to != "" {
		var err error
		if end, err = parseDate("to", rf.to); err != nil {
			return trialbalance.Period{}, err
		}
	}

	var begin time.Time
	var err error
	if rf.from != "" {
		begin, err = parseDate("from", rf.from)
	} else {
		begin, err = fiscalYearStart(l.cfg.Fiscal.YearStart, end)
	}
	if err != nil {
		return trialbalance.Period{}, err
	}

	period := trialbalance.Period{Begin: begin, End: end}
	return period, period.Validate()
}

// runParams records the explicitly set flags of a run.
func runParams(cmd *cobra.Command, period trialbalance.Period) string {
	parts := []string{
		"from=" + period.Begin.Format(time.DateOnly),
		"to=" + period.End.Format(time.DateOnly),
	}
	for _, name := range []string{"format", "policy", "sort", "page", "page-size"} {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			parts = append(parts, name+"="+f.Value.String())
		}
	}
	return strings.Join(parts, " ")
}
