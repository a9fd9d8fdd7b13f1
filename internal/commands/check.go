package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ledgerline/ledgerline/internal/journal"
)

func newCheckCommand(repoDir *string) *cobra.Command {
	var year, month int

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate one month of the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if month < 1 || month > 12 {
				return fmt.Errorf("--month must be 1..12, got %d", month)
			}
			l, err := openLedger(*repoDir)
			if err != nil {
				return err
			}
			defer l.close()
			return runCheck(cmd.OutOrStdout(), l, year, month)
		},
	}

	cmd.Flags().IntVar(&year, "year", today().Year(), "journal year")
	cmd.Flags().IntVar(&month, "month", int(today().Month()), "journal month")

	return cmd
}

func runCheck(out io.Writer, l *ledger, year, month int) error {
	lines, err := l.journal.ReadMonth(year, month)
	if err != nil {
		return err
	}

	verrs := journal.ValidateMonth(lines, l.chart, year, month)
	vouchers := journal.Vouchers(lines)
	l.logger.Info("journal checked",
		zap.Int("year", year),
		zap.Int("month", month),
		zap.Int("vouchers", len(vouchers)),
		zap.Int("violations", len(verrs)),
	)

	for _, ve := range verrs {
		fmt.Fprintln(out, ve.Error())
	}
	if len(verrs) > 0 {
		return fmt.Errorf("%04d-%02d: %d violation(s)", year, month, len(verrs))
	}
	fmt.Fprintf(out, "%04d-%02d: %d vouchers, %d lines OK\n", year, month, len(vouchers), len(lines))
	return nil
}
