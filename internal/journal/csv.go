package journal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/ledgerline/internal/id"
	"github.com/ledgerline/ledgerline/internal/model"
)

// Header is the CSV header for journal.csv.
const Header = "line_id,date,account_id,description,debit,credit"

const (
	numFields  = 6
	dateFormat = "2006-01-02"
	colLineID  = 0
	colDate    = 1
	colAcctID  = 2
	colDesc    = 3
	colDebit   = 4
	colCredit  = 5
)

// ErrAmbiguousSide is returned for a row with both or neither of debit and
// credit filled in.
var ErrAmbiguousSide = errors.New("row must fill exactly one of debit or credit")

// ReadLines reads all line items from a journal.csv reader.
func ReadLines(r io.Reader) ([]model.DatedLineItem, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var lines []model.DatedLineItem
	for i, rec := range records[1:] {
		line, err := UnmarshalLine(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// WriteLines writes lines to a journal.csv writer, header included.
func WriteLines(w io.Writer, lines []model.DatedLineItem) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, line := range lines {
		if err := cw.Write(MarshalLine(line)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// AppendLines appends lines to an existing journal.csv writer (no header).
func AppendLines(w io.Writer, lines []model.DatedLineItem) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, line := range lines {
		if err := cw.Write(MarshalLine(line)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return cw.Error()
}

// MarshalLine converts a line item to a CSV row. The amount goes in the
// debit or credit column according to its side.
func MarshalLine(line model.DatedLineItem) []string {
	row := make([]string, numFields)
	row[colLineID] = line.ID
	row[colDate] = line.Date.Format(dateFormat)
	row[colAcctID] = strconv.FormatInt(line.AccountID, 10)
	row[colDesc] = line.Description

	if line.Debit {
		row[colDebit] = line.Amount.StringFixed(2)
	} else {
		row[colCredit] = line.Amount.StringFixed(2)
	}
	return row
}

// UnmarshalLine converts a CSV row to a line item. The voucher ID is
// derived from the line ID.
func UnmarshalLine(record []string) (model.DatedLineItem, error) {
	if len(record) != numFields {
		return model.DatedLineItem{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.DatedLineItem{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	accountID, err := strconv.ParseInt(record[colAcctID], 10, 64)
	if err != nil {
		return model.DatedLineItem{}, fmt.Errorf("parsing account_id %q: %w", record[colAcctID], err)
	}

	debitCol, creditCol := record[colDebit], record[colCredit]
	if (debitCol == "") == (creditCol == "") {
		return model.DatedLineItem{}, fmt.Errorf("line %s: %w", record[colLineID], ErrAmbiguousSide)
	}

	isDebit := debitCol != ""
	raw := creditCol
	if isDebit {
		raw = debitCol
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return model.DatedLineItem{}, fmt.Errorf("parsing amount %q: %w", raw, err)
	}

	return model.DatedLineItem{
		LineItem: model.LineItem{
			ID:          record[colLineID],
			VoucherID:   id.VoucherOf(record[colLineID]),
			AccountID:   accountID,
			Amount:      amount,
			Debit:       isDebit,
			Description: record[colDesc],
		},
		Date: date,
	}, nil
}
