// Package report assembles financial statements and the trial balance from
// a chart of accounts and a journal snapshot.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ledgerline/ledgerline/internal/accounts"
	"github.com/ledgerline/ledgerline/internal/cashflow"
	"github.com/ledgerline/ledgerline/internal/logging"
	"github.com/ledgerline/ledgerline/internal/model"
	"github.com/ledgerline/ledgerline/internal/trialbalance"
)

// Chart is the account lookup the reports need.
type Chart interface {
	All() []model.Account
	Get(id int64) (model.Account, bool)
	CodeOf(id int64) (string, bool)
}

// VoucherSource supplies every voucher of the ledger.
type VoucherSource interface {
	Vouchers() ([]model.Voucher, error)
}

// Options tune a Service. Zero values fall back to the defaults.
type Options struct {
	Rules  []cashflow.Rule
	Policy cashflow.Policy
	Logger *zap.Logger
}

// Service builds reports. Every call reads a fresh snapshot.
type Service struct {
	chart   Chart
	journal VoucherSource
	rules   []cashflow.Rule
	policy  cashflow.Policy
	logger  *zap.Logger
}

// NewService creates a report Service.
func NewService(chart Chart, journal VoucherSource, opts Options) *Service {
	s := &Service{
		chart:   chart,
		journal: journal,
		rules:   opts.Rules,
		policy:  opts.Policy,
		logger:  opts.Logger,
	}
	if s.rules == nil {
		s.rules = cashflow.DefaultRules()
	}
	if s.policy == "" {
		s.policy = cashflow.AccumulateAll
	}
	if s.logger == nil {
		s.logger = logging.Nop()
	}
	return s
}

var balanceSheetTypes = []model.AccountType{
	model.AccountTypeAsset,
	model.AccountTypeLiability,
	model.AccountTypeEquity,
}

var incomeTypes = map[model.AccountType]bool{
	model.AccountTypeRevenue:                  true,
	model.AccountTypeCost:                     true,
	model.AccountTypeExpense:                  true,
	model.AccountTypeIncome:                   true,
	model.AccountTypeOtherComprehensiveIncome: true,
}

// BalanceSheet reports every asset, liability and equity account as of
// asOf, inclusive.
func (s *Service) BalanceSheet(ctx context.Context, asOf time.Time) (BalanceSheet, error) {
	start := time.Now()
	vouchers, err := s.snapshot(ctx)
	if err != nil {
		return BalanceSheet{}, err
	}
	vouchers = filterVouchers(vouchers, func(d time.Time) bool { return !d.After(asOf) })

	rolled, err := s.rollupUser(vouchers)
	if err != nil {
		return BalanceSheet{}, err
	}
	shown := accounts.AnnotatePercentages(accounts.PrunePrivate(rolled))

	bs := BalanceSheet{AsOf: asOf}
	for _, t := range balanceSheetTypes {
		roots := rootsOf(shown, func(a model.Account) bool { return a.Type == t })
		bs.Sections = append(bs.Sections, Section{
			Type:  t,
			Total: sectionTotal(roots, t == model.AccountTypeAsset),
			Rows:  Rows(roots),
		})
	}

	subtotals := IncomeSubtotals(accounts.AmountsByCode(rootsOf(rolled, isIncome)))
	bs.CurrentEarnings = subtotals[CodeComprehensiveIncome]

	assets, _ := bs.Section(model.AccountTypeAsset)
	liabilities, _ := bs.Section(model.AccountTypeLiability)
	equity, _ := bs.Section(model.AccountTypeEquity)
	bs.Balanced = assets.Total.Equal(liabilities.Total.Add(equity.Total).Add(bs.CurrentEarnings))

	s.logger.Info("balance sheet built",
		zap.Time("as_of", asOf),
		zap.Int("vouchers", len(vouchers)),
		zap.Bool("balanced", bs.Balanced),
		zap.Duration("elapsed", time.Since(start)),
	)
	return bs, nil
}

// IncomeStatement reports revenue through comprehensive income for period,
// with the subtotal chain filled in. Percentages are shares of operating
// revenue.
func (s *Service) IncomeStatement(ctx context.Context, period trialbalance.Period) (IncomeStatement, error) {
	start := time.Now()
	if err := period.Validate(); err != nil {
		return IncomeStatement{}, err
	}
	vouchers, err := s.snapshot(ctx)
	if err != nil {
		return IncomeStatement{}, err
	}
	vouchers = filterVouchers(vouchers, period.Contains)

	rolled, err := s.rollupUser(vouchers)
	if err != nil {
		return IncomeStatement{}, err
	}
	roots := rootsOf(rolled, isIncome)

	subtotals := IncomeSubtotals(accounts.AmountsByCode(roots))
	for _, root := range roots {
		root.Walk(func(n *model.AccountNode, _ int) {
			if IsSubtotal(n.Code) {
				n.Amount = subtotals[n.Code]
			}
		})
	}
	revenue := decimal.Zero
	if n := accounts.Find(roots, CodeRevenue); n != nil {
		revenue = n.Amount
	}
	shown := accounts.AnnotatePercentagesOf(accounts.PrunePrivate(roots), revenue)

	st := IncomeStatement{
		Begin:               period.Begin,
		End:                 period.End,
		Rows:                Rows(shown),
		NetIncome:           subtotals[CodeNetIncome],
		ComprehensiveIncome: subtotals[CodeComprehensiveIncome],
	}
	s.logger.Info("income statement built",
		zap.Time("begin", period.Begin),
		zap.Time("end", period.End),
		zap.Int("vouchers", len(vouchers)),
		zap.Stringer("net_income", st.NetIncome),
		zap.Duration("elapsed", time.Since(start)),
	)
	return st, nil
}

// CashFlow classifies every voucher dated within period.
func (s *Service) CashFlow(ctx context.Context, period trialbalance.Period) (CashFlowStatement, error) {
	start := time.Now()
	if err := period.Validate(); err != nil {
		return CashFlowStatement{}, err
	}
	vouchers, err := s.snapshot(ctx)
	if err != nil {
		return CashFlowStatement{}, err
	}
	vouchers = filterVouchers(vouchers, period.Contains)

	res := cashflow.NewClassifier(s.rules, s.policy, s.chart).Classify(vouchers)
	st := newCashFlowStatement(period, s.policy, res)

	s.logger.Info("cash flow statement built",
		zap.Time("begin", period.Begin),
		zap.Time("end", period.End),
		zap.String("policy", string(s.policy)),
		zap.Int("vouchers", len(vouchers)),
		zap.Int("lines", len(st.Rows)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return st, nil
}

// TrialBalance periodizes the whole journal and returns one page of rows.
// Company-custom accounts are included.
func (s *Service) TrialBalance(ctx context.Context, q trialbalance.Query) (trialbalance.Page, error) {
	start := time.Now()
	vouchers, err := s.snapshot(ctx)
	if err != nil {
		return trialbalance.Page{}, err
	}
	forest, err := accounts.BuildForest(s.chart.All())
	if err != nil {
		return trialbalance.Page{}, fmt.Errorf("building account forest: %w", err)
	}

	page, err := trialbalance.Run(forest, model.DatedItems(vouchers), q)
	if err != nil {
		return trialbalance.Page{}, err
	}
	s.logger.Info("trial balance built",
		zap.Time("begin", q.Period.Begin),
		zap.Time("end", q.Period.End),
		zap.Int("page", page.Page),
		zap.Int("total_count", page.TotalCount),
		zap.Duration("elapsed", time.Since(start)),
	)
	return page, nil
}

func (s *Service) snapshot(ctx context.Context) ([]model.Voucher, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	vouchers, err := s.journal.Vouchers()
	if err != nil {
		return nil, fmt.Errorf("loading journal: %w", err)
	}
	s.logger.Debug("journal loaded", zap.Int("vouchers", len(vouchers)))
	return vouchers, nil
}

// rollupUser rolls vouchers up through the user-facing forest.
func (s *Service) rollupUser(vouchers []model.Voucher) ([]*model.AccountNode, error) {
	forest, err := accounts.BuildUserForest(s.chart.All())
	if err != nil {
		return nil, fmt.Errorf("building account forest: %w", err)
	}
	var items []model.LineItem
	for _, v := range vouchers {
		items = append(items, v.LineItems...)
	}
	return accounts.Rollup(forest, accounts.AggregateLineItems(items, s.chart)), nil
}

func filterVouchers(vouchers []model.Voucher, keep func(time.Time) bool) []model.Voucher {
	var out []model.Voucher
	for _, v := range vouchers {
		if keep(v.Date) {
			out = append(out, v)
		}
	}
	return out
}

func rootsOf(forest []*model.AccountNode, keep func(model.Account) bool) []*model.AccountNode {
	var out []*model.AccountNode
	for _, n := range forest {
		if keep(n.Account) {
			out = append(out, n)
		}
	}
	return out
}

func isIncome(a model.Account) bool {
	return incomeTypes[a.Type]
}

// sectionTotal sums roots against the section's natural side.
func sectionTotal(roots []*model.AccountNode, debit bool) decimal.Decimal {
	total := decimal.Zero
	for _, r := range roots {
		if r.Debit == debit {
			total = total.Add(r.Amount)
		} else {
			total = total.Sub(r.Amount)
		}
	}
	return total
}
