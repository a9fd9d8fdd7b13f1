package accounts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ledgerline/ledgerline/internal/model"
)

// ErrDuplicateCode is returned when two accounts of one chart share a code.
var ErrDuplicateCode = errors.New("accounts: duplicate account code")

// chartPath is the chart location relative to a ledger repo root.
var chartPath = filepath.Join("accounts", "chart-of-accounts.csv")

// Service provides in-memory lookup over one account book's chart.
type Service struct {
	accounts []model.Account
	byID     map[int64]model.Account
	byCode   map[string]model.Account
}

// NewService creates a Service from a slice of accounts. Codes must be unique.
func NewService(accounts []model.Account) (*Service, error) {
	byID := make(map[int64]model.Account, len(accounts))
	byCode := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		if _, dup := byCode[a.Code]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, a.Code)
		}
		byID[a.ID] = a
		byCode[a.Code] = a
	}
	return &Service{accounts: accounts, byID: byID, byCode: byCode}, nil
}

// Load reads accounts/chart-of-accounts.csv from a repo root and returns a Service.
func Load(repoRoot string) (*Service, error) {
	f, err := os.Open(filepath.Join(repoRoot, chartPath))
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return NewService(accts)
}

// All returns all accounts in chart order.
func (s *Service) All() []model.Account {
	return s.accounts
}

// Get returns an account by ID.
func (s *Service) Get(id int64) (model.Account, bool) {
	a, ok := s.byID[id]
	return a, ok
}

// Exists reports whether an account ID exists.
func (s *Service) Exists(id int64) bool {
	_, ok := s.byID[id]
	return ok
}

// Postable reports whether line items may reference the account. Hidden
// heading accounts only collect their children's amounts.
func (s *Service) Postable(id int64) bool {
	a, ok := s.byID[id]
	return ok && a.ForUser
}

// ByCode returns an account by code.
func (s *Service) ByCode(code string) (model.Account, bool) {
	a, ok := s.byCode[code]
	return a, ok
}

// CodeOf returns the code of the account with the given ID.
func (s *Service) CodeOf(id int64) (string, bool) {
	a, ok := s.byID[id]
	return a.Code, ok
}

// Save writes the chart of accounts to accounts/chart-of-accounts.csv.
func (s *Service) Save(repoRoot string) error {
	path := filepath.Join(repoRoot, chartPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, s.accounts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}
