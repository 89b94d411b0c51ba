package service

import (
	"context"

	"github.com/RoyceAzure/lab/fulfillment/internal/domain/model"
	"github.com/rs/zerolog"
)

// CustomerHook 客戶生命週期, 由外部客戶系統呼叫
type CustomerHook struct {
	ledger *LedgerService
	logger *zerolog.Logger
}

func NewCustomerHook(ledger *LedgerService, logger *zerolog.Logger) *CustomerHook {
	return &CustomerHook{ledger: ledger, logger: logger}
}

// OnCustomerCreated 開立錢包, 重複呼叫回傳同一個錢包
func (h *CustomerHook) OnCustomerCreated(ctx context.Context, customerID string) (*model.Wallet, error) {
	wallet, err := h.ledger.OpenWallet(ctx, customerID)
	if err != nil {
		return nil, err
	}
	h.logger.Info().Str("customer_id", customerID).Str("wallet_id", wallet.WalletID).Msg("wallet opened")
	return wallet, nil
}
