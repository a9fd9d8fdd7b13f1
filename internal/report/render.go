package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/ledgerline/ledgerline/internal/trialbalance"
)

// Format selects a renderer.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want table, json or yaml)", s)
}

// Render writes a report value in the given format. The table format
// accepts the report types of this package and trialbalance.Page.
func Render(w io.Writer, f Format, v any) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatTable:
		return renderTable(w, v)
	}
	return fmt.Errorf("unknown format %q", f)
}

func renderTable(w io.Writer, v any) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	switch r := v.(type) {
	case BalanceSheet:
		fmt.Fprintf(tw, "Balance sheet as of %s\t\t\t\n", r.AsOf.Format(dateLayout))
		for _, s := range r.Sections {
			fmt.Fprintf(tw, "%s\t\t\t\n", strings.ToUpper(string(s.Type)))
			writeStatementRows(tw, s.Rows)
			fmt.Fprintf(tw, "Total %s\t\t%s\t\n", s.Type, money(s.Total))
		}
		fmt.Fprintf(tw, "Current earnings\t\t%s\t\n", money(r.CurrentEarnings))
		fmt.Fprintf(tw, "Balanced\t\t%t\t\n", r.Balanced)
	case IncomeStatement:
		fmt.Fprintf(tw, "Income statement %s to %s\t\t\t\n", r.Begin.Format(dateLayout), r.End.Format(dateLayout))
		writeStatementRows(tw, r.Rows)
	case CashFlowStatement:
		fmt.Fprintf(tw, "Cash flow %s to %s (%s)\t\t\t\t\n", r.Begin.Format(dateLayout), r.End.Format(dateLayout), r.Policy)
		for _, l := range r.Rows {
			dir := "out"
			if l.CashInflow {
				dir = "in"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", l.Code, l.Name, dir, money(l.Amount))
		}
		fmt.Fprintf(tw, "Net change\t\t\t%s\t\n", money(r.NetChange))
	case trialbalance.Page:
		fmt.Fprintln(tw, "Code\tTitle\tBegin Dr\tBegin Cr\tPeriod Dr\tPeriod Cr\tEnd Dr\tEnd Cr\t")
		writeTrialBalanceRows(tw, r.Data, 0)
		writeTrialBalanceRows(tw, []trialbalance.Item{r.Totals}, 0)
		fmt.Fprintf(tw, "Page %d of %d (%d accounts)\t\t\t\t\t\t\t\t\n", r.Page, r.TotalPages, r.TotalCount)
	default:
		return fmt.Errorf("no table layout for %T", v)
	}
	return tw.Flush()
}

const dateLayout = "2006-01-02"

func writeStatementRows(w io.Writer, rows []StatementRow) {
	for _, r := range rows {
		fmt.Fprintf(w, "%s%s %s\t%s\t%s\t\n", strings.Repeat("  ", r.Indent), r.Code, r.Name, percent(r.Percentage), money(r.Amount))
		writeStatementRows(w, r.Children)
	}
}

func writeTrialBalanceRows(w io.Writer, items []trialbalance.Item, depth int) {
	for _, it := range items {
		fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			strings.Repeat("  ", depth), it.AccountCode, it.AccountingTitle,
			money(it.BeginningDebitAmount), money(it.BeginningCreditAmount),
			money(it.MidtermDebitAmount), money(it.MidtermCreditAmount),
			money(it.EndingDebitAmount), money(it.EndingCreditAmount),
		)
		writeTrialBalanceRows(w, it.SubAccounts, depth+1)
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

var hundred = decimal.NewFromInt(100)

func percent(d decimal.Decimal) string {
	return d.Mul(hundred).StringFixed(2) + "%"
}
