package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ledgerline/ledgerline/internal/model"
)

// Header is the CSV header for chart-of-accounts.csv.
const Header = "id,account_book_id,code,parent_code,root_code,type,debit,liquidity,level,for_user,name,created_at"

const (
	numFields     = 12
	colID         = 0
	colBook       = 1
	colCode       = 2
	colParentCode = 3
	colRootCode   = 4
	colType       = 5
	colDebit      = 6
	colLiquidity  = 7
	colLevel      = 8
	colForUser    = 9
	colName       = 10
	colCreatedAt  = 11
)

// ReadAccounts reads chart-of-accounts.csv.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes chart-of-accounts.csv.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, numFields)
	row[colID] = strconv.FormatInt(acct.ID, 10)
	row[colBook] = strconv.FormatInt(acct.AccountBookID, 10)
	row[colCode] = acct.Code
	row[colParentCode] = acct.ParentCode
	row[colRootCode] = acct.RootCode
	row[colType] = string(acct.Type)
	row[colDebit] = strconv.FormatBool(acct.Debit)
	row[colLiquidity] = strconv.FormatBool(acct.Liquidity)
	row[colLevel] = strconv.Itoa(acct.Level)
	row[colForUser] = strconv.FormatBool(acct.ForUser)
	row[colName] = acct.Name
	if !acct.CreatedAt.IsZero() {
		row[colCreatedAt] = acct.CreatedAt.UTC().Format(time.RFC3339)
	}
	return row
}

// UnmarshalAccount converts a CSV row to an Account.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	id, err := strconv.ParseInt(record[colID], 10, 64)
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing id %q: %w", record[colID], err)
	}

	book, err := strconv.ParseInt(record[colBook], 10, 64)
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing account_book_id %q: %w", record[colBook], err)
	}

	if record[colCode] == "" {
		return model.Account{}, fmt.Errorf("empty code for account %d", id)
	}

	accountType := model.AccountType(record[colType])
	if !accountType.Valid() {
		return model.Account{}, fmt.Errorf("unknown account type %q", record[colType])
	}

	flags := make([]bool, 3)
	for i, col := range []int{colDebit, colLiquidity, colForUser} {
		flags[i], err = strconv.ParseBool(record[col])
		if err != nil {
			return model.Account{}, fmt.Errorf("parsing flag %q: %w", record[col], err)
		}
	}

	level, err := strconv.Atoi(record[colLevel])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing level %q: %w", record[colLevel], err)
	}

	var createdAt time.Time
	if record[colCreatedAt] != "" {
		createdAt, err = time.Parse(time.RFC3339, record[colCreatedAt])
		if err != nil {
			return model.Account{}, fmt.Errorf("parsing created_at %q: %w", record[colCreatedAt], err)
		}
	}

	return model.Account{
		ID:            id,
		AccountBookID: book,
		Code:          record[colCode],
		ParentCode:    record[colParentCode],
		RootCode:      record[colRootCode],
		Type:          accountType,
		Debit:         flags[0],
		Liquidity:     flags[1],
		Level:         level,
		ForUser:       flags[2],
		Name:          record[colName],
		CreatedAt:     createdAt,
	}, nil
}
