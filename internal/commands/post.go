package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ledgerline/ledgerline/internal/journal"
)

type postParams struct {
	date        string
	debitCode   string
	creditCode  string
	amount      string
	description string
}

func newPostCommand(repoDir *string) *cobra.Command {
	var p postParams

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Append a two-line voucher to the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := openLedger(*repoDir)
			if err != nil {
				return err
			}
			defer l.close()
			return runPost(cmd.Context(), cmd.OutOrStdout(), l, p)
		},
	}

	cmd.Flags().StringVar(&p.date, "date", today().Format("2006-01-02"), "voucher date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&p.debitCode, "debit", "", "account code to debit (required)")
	cmd.Flags().StringVar(&p.creditCode, "credit", "", "account code to credit (required)")
	cmd.Flags().StringVar(&p.amount, "amount", "", "amount (required)")
	cmd.Flags().StringVar(&p.description, "description", "", "voucher description")
	_ = cmd.MarkFlagRequired("debit")
	_ = cmd.MarkFlagRequired("credit")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runPost(ctx context.Context, out io.Writer, l *ledger, p postParams) error {
	date, err := parseDate("date", p.date)
	if err != nil {
		return err
	}
	amount, err := decimal.NewFromString(p.amount)
	if err != nil {
		return fmt.Errorf("--amount: %w", err)
	}

	debit, ok := l.chart.ByCode(p.debitCode)
	if !ok {
		return fmt.Errorf("unknown account code %q", p.debitCode)
	}
	credit, ok := l.chart.ByCode(p.creditCode)
	if !ok {
		return fmt.Errorf("unknown account code %q", p.creditCode)
	}

	voucherID, err := l.journal.AddVoucher(journal.AddVoucherParams{
		Date:        date,
		Description: p.description,
		Postings: []journal.Posting{
			{AccountID: debit.ID, Amount: amount, Debit: true},
			{AccountID: credit.ID, Amount: amount, Debit: false},
		},
	})
	if err != nil {
		return err
	}
	l.logger.Info("voucher posted",
		zap.String("voucher_id", voucherID),
		zap.String("debit", debit.Code),
		zap.String("credit", credit.Code),
		zap.Stringer("amount", amount),
	)

	if repo := l.git(); l.cfg.Git.AutoCommit && repo.IsRepo() {
		journalPath := filepath.Join(fmt.Sprintf("%04d", date.Year()), fmt.Sprintf("%02d", int(date.Month())), "journal.csv")
		if _, err := repo.Commit(ctx, "post: "+voucherID, journalPath); err != nil {
			return err
		}
	}

	fmt.Fprintln(out, voucherID)
	return nil
}
