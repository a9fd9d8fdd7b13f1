// Package journal reads, validates and appends the monthly journal files
// that hold a company's vouchers.
package journal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/ledgerline/internal/id"
	"github.com/ledgerline/ledgerline/internal/model"
)

// Service provides business logic for journal vouchers.
type Service struct {
	repoRoot string
	accounts AccountChecker
}

// NewService creates a journal Service.
func NewService(repoRoot string, accounts AccountChecker) *Service {
	return &Service{repoRoot: repoRoot, accounts: accounts}
}

// Posting is one side of a new voucher.
type Posting struct {
	AccountID int64
	Amount    decimal.Decimal
	Debit     bool
}

// AddVoucherParams holds parameters for a new voucher.
type AddVoucherParams struct {
	Date        time.Time
	Description string
	Postings    []Posting
}

// AddVoucher validates a voucher against the rest of its month and appends
// it to the month's journal.csv. Returns the voucher ID.
func (s *Service) AddVoucher(params AddVoucherParams) (string, error) {
	year := params.Date.Year()
	month := int(params.Date.Month())

	if len(params.Postings) < 2 {
		return "", fmt.Errorf("voucher needs at least two postings, got %d", len(params.Postings))
	}

	seq, err := s.NextVoucherSeq(year, month)
	if err != nil {
		return "", err
	}
	voucherID := id.Voucher(year, month, seq)

	newLines := make([]model.DatedLineItem, len(params.Postings))
	for i, p := range params.Postings {
		newLines[i] = model.DatedLineItem{
			LineItem: model.LineItem{
				ID:          id.LineItem(voucherID, i),
				VoucherID:   voucherID,
				AccountID:   p.AccountID,
				Amount:      p.Amount,
				Debit:       p.Debit,
				Description: params.Description,
			},
			Date: params.Date,
		}
	}

	existing, err := s.ReadMonth(year, month)
	if err != nil {
		return "", err
	}

	all := append(existing, newLines...)
	if verrs := ValidateMonth(all, s.accounts, year, month); len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return "", fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}

	journalPath := s.monthPath(year, month)
	if err := os.MkdirAll(filepath.Dir(journalPath), 0o755); err != nil {
		return "", fmt.Errorf("creating journal dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(journalPath); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(journalPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return "", fmt.Errorf("opening journal: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return "", fmt.Errorf("writing header: %w", err)
		}
	}
	if err := AppendLines(f, newLines); err != nil {
		return "", fmt.Errorf("appending lines: %w", err)
	}

	return voucherID, nil
}

// ReadMonth reads all lines for a given year/month.
func (s *Service) ReadMonth(year, month int) ([]model.DatedLineItem, error) {
	return readFile(s.monthPath(year, month))
}

// ReadAll reads every monthly journal under the repo root in chronological
// order.
func (s *Service) ReadAll() ([]model.DatedLineItem, error) {
	paths, err := filepath.Glob(filepath.Join(s.repoRoot, "[0-9][0-9][0-9][0-9]", "[0-9][0-9]", "journal.csv"))
	if err != nil {
		return nil, fmt.Errorf("listing journals: %w", err)
	}

	var all []model.DatedLineItem
	for _, p := range paths {
		lines, err := readFile(p)
		if err != nil {
			return nil, err
		}
		all = append(all, lines...)
	}
	return all, nil
}

// Vouchers reads every journal and groups the lines into vouchers.
func (s *Service) Vouchers() ([]model.Voucher, error) {
	lines, err := s.ReadAll()
	if err != nil {
		return nil, err
	}
	return Vouchers(lines), nil
}

// NextVoucherSeq returns the next available sequence number for a month.
func (s *Service) NextVoucherSeq(year, month int) (int, error) {
	lines, err := s.ReadMonth(year, month)
	if err != nil {
		return 0, err
	}

	maxSeq := 0
	for _, line := range lines {
		ref, err := id.Parse(line.ID)
		if err != nil {
			continue
		}
		maxSeq = max(maxSeq, ref.Seq)
	}
	return maxSeq + 1, nil
}

func (s *Service) monthPath(year, month int) string {
	return filepath.Join(s.repoRoot, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), "journal.csv")
}

// Vouchers groups lines by voucher ID in first-seen order. A voucher takes
// the date of its first line.
func Vouchers(lines []model.DatedLineItem) []model.Voucher {
	pos := make(map[string]int)
	var out []model.Voucher
	for _, line := range lines {
		vid := line.VoucherID
		if vid == "" {
			vid = id.VoucherOf(line.ID)
		}
		i, ok := pos[vid]
		if !ok {
			i = len(out)
			pos[vid] = i
			out = append(out, model.Voucher{ID: vid, Date: line.Date})
		}
		li := line.LineItem
		li.VoucherID = vid
		out[i].LineItems = append(out[i].LineItems, li)
	}
	return out
}

func readFile(path string) ([]model.DatedLineItem, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", path, err)
	}
	defer f.Close()

	lines, err := ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("reading journal %s: %w", path, err)
	}
	return lines, nil
}
