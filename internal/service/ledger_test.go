package service

import (
	"sync"
	"testing"

	"github.com/RoyceAzure/lab/fulfillment/internal/constants"
	"github.com/RoyceAzure/lab/fulfillment/internal/domain/model"
	"github.com/RoyceAzure/lab/fulfillment/internal/pkg/app_err"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	env    *testEnv
	wallet *model.Wallet
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.env = newTestEnv(suite.T())
	wallet, err := suite.env.ledger.OpenWallet(suite.env.ctx, "customer-1")
	suite.Require().NoError(err)
	suite.wallet = wallet
}

func (suite *LedgerServiceTestSuite) requireBalanceMatchesLog(walletID string) decimal.Decimal {
	wallet, err := suite.env.ledger.GetWallet(suite.env.ctx, walletID)
	suite.Require().NoError(err)
	sum, err := suite.env.ledger.RecomputeBalance(suite.env.ctx, walletID)
	suite.Require().NoError(err)
	suite.Require().Truef(wallet.Balance.Equal(sum), "balance %s != log sum %s", wallet.Balance, sum)
	return wallet.Balance
}

func (suite *LedgerServiceTestSuite) TestOpenWalletIdempotent() {
	again, err := suite.env.ledger.OpenWallet(suite.env.ctx, "customer-1")
	suite.Require().NoError(err)
	suite.Equal(suite.wallet.WalletID, again.WalletID)

	byCustomer, err := suite.env.ledger.GetWalletByCustomer(suite.env.ctx, "customer-1")
	suite.Require().NoError(err)
	suite.Equal(suite.wallet.WalletID, byCustomer.WalletID)
	suite.True(byCustomer.Balance.IsZero())
}

func (suite *LedgerServiceTestSuite) TestAddFundsAndPay() {
	ctx := suite.env.ctx
	entry, err := suite.env.ledger.AddFunds(ctx, suite.wallet.WalletID, decimal.NewFromInt(100), "")
	suite.Require().NoError(err)
	suite.Equal(model.TransactionTypeCredit, entry.Type)
	requireDecimal(suite.T(), 100, entry.BalanceAfter)
	suite.Equal(constants.DescriptionDeposit, entry.Description)

	entry, err = suite.env.ledger.Pay(ctx, suite.wallet.WalletID, decimal.NewFromInt(30), "")
	suite.Require().NoError(err)
	suite.Equal(model.TransactionTypeDebit, entry.Type)
	requireDecimal(suite.T(), 70, entry.BalanceAfter)

	requireDecimal(suite.T(), 70, suite.requireBalanceMatchesLog(suite.wallet.WalletID))

	entries, err := suite.env.ledger.ListTransactions(ctx, suite.wallet.WalletID)
	suite.Require().NoError(err)
	suite.Len(entries, 2)
}

func (suite *LedgerServiceTestSuite) TestDebitInsufficientFundsNoEffect() {
	ctx := suite.env.ctx
	_, err := suite.env.ledger.AddFunds(ctx, suite.wallet.WalletID, decimal.NewFromInt(10), "")
	suite.Require().NoError(err)

	_, err = suite.env.ledger.Debit(ctx, suite.wallet.WalletID, decimal.NewFromInt(11), "too much")
	suite.Require().ErrorIs(err, app_err.ErrInsufficientFunds)

	entries, err := suite.env.ledger.ListTransactions(ctx, suite.wallet.WalletID)
	suite.Require().NoError(err)
	suite.Len(entries, 1)
	requireDecimal(suite.T(), 10, suite.requireBalanceMatchesLog(suite.wallet.WalletID))
}

func (suite *LedgerServiceTestSuite) TestInvalidAmount() {
	ctx := suite.env.ctx
	_, err := suite.env.ledger.Credit(ctx, suite.wallet.WalletID, decimal.Zero, "zero")
	suite.ErrorIs(err, app_err.ErrInvalidAmount)
	_, err = suite.env.ledger.Debit(ctx, suite.wallet.WalletID, decimal.NewFromInt(-5), "negative")
	suite.ErrorIs(err, app_err.ErrInvalidAmount)
}

func (suite *LedgerServiceTestSuite) TestAddFundsDescription() {
	entry, err := suite.env.ledger.AddFunds(suite.env.ctx, suite.wallet.WalletID, decimal.NewFromInt(5), "birthday gift")
	suite.Require().NoError(err)
	suite.Equal("birthday gift", entry.Description)

	entries, err := suite.env.ledger.ListTransactions(suite.env.ctx, suite.wallet.WalletID)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Equal("birthday gift", entries[0].Description)
}

// 超出 decimal(12,2) 的金額在寫入前就拒絕, 不留下任何交易紀錄
func (suite *LedgerServiceTestSuite) TestAmountOutsideColumnPrecision() {
	ctx := suite.env.ctx
	testCases := []struct {
		name   string
		amount string
	}{
		{"three decimals", "0.001"},
		{"sub cent", "10.125"},
		{"too large", "10000000000"},
	}
	for _, tc := range testCases {
		_, err := suite.env.ledger.AddFunds(ctx, suite.wallet.WalletID, decimal.RequireFromString(tc.amount), "")
		suite.ErrorIs(err, app_err.ErrInvalidAmount, tc.name)
		_, err = suite.env.ledger.Pay(ctx, suite.wallet.WalletID, decimal.RequireFromString(tc.amount), "")
		suite.ErrorIs(err, app_err.ErrInvalidAmount, tc.name)
	}

	entry, err := suite.env.ledger.AddFunds(ctx, suite.wallet.WalletID, decimal.RequireFromString("9999999999.99"), "")
	suite.Require().NoError(err)
	suite.True(entry.BalanceAfter.Equal(model.MaxAmount))

	_, err = suite.env.ledger.AddFunds(ctx, suite.wallet.WalletID, decimal.RequireFromString("0.01"), "")
	suite.ErrorIs(err, app_err.ErrInvalidAmount)

	entries, err := suite.env.ledger.ListTransactions(ctx, suite.wallet.WalletID)
	suite.Require().NoError(err)
	suite.Len(entries, 1)
}

func (suite *LedgerServiceTestSuite) TestUnknownWallet() {
	_, err := suite.env.ledger.AddFunds(suite.env.ctx, "missing", decimal.NewFromInt(1), "")
	suite.ErrorIs(err, app_err.ErrWalletNotFound)
	_, err = suite.env.ledger.ListTransactions(suite.env.ctx, "missing")
	suite.ErrorIs(err, app_err.ErrWalletNotFound)
}

// 同一錢包並發扣款, 餘額不會變成負數且與交易紀錄一致
func (suite *LedgerServiceTestSuite) TestConcurrentDebitNeverOverdraws() {
	ctx := suite.env.ctx
	_, err := suite.env.ledger.AddFunds(ctx, suite.wallet.WalletID, decimal.NewFromInt(100), "")
	suite.Require().NoError(err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	success, insufficient := 0, 0
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.env.ledger.Debit(ctx, suite.wallet.WalletID, decimal.NewFromInt(10), "concurrent")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				success++
			} else if app_err.IsUserError(err) {
				insufficient++
			}
		}()
	}
	wg.Wait()

	suite.Equal(10, success)
	suite.Equal(20, insufficient)
	suite.True(suite.requireBalanceMatchesLog(suite.wallet.WalletID).IsZero())
}

func (suite *LedgerServiceTestSuite) TestCustomerHookOpensWallet() {
	hook := NewCustomerHook(suite.env.ledger, nopLogger())
	wallet, err := hook.OnCustomerCreated(suite.env.ctx, "customer-2")
	suite.Require().NoError(err)

	again, err := hook.OnCustomerCreated(suite.env.ctx, "customer-2")
	suite.Require().NoError(err)
	suite.Equal(wallet.WalletID, again.WalletID)
	suite.NotEqual(suite.wallet.WalletID, wallet.WalletID)
}
