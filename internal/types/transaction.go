package types

import (
	"github.com/samber/lo"
	ierr "github.com/subsynth/subsynth/internal/errors"
)

// TransactionStatus is the outcome of a billing attempt. Failed attempts are
// kept in the dataset with zero revenue rather than dropped, so failure rates
// stay observable downstream.
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

func (s TransactionStatus) String() string {
	return string(s)
}

func (s TransactionStatus) Validate() error {
	allowed := []TransactionStatus{
		TransactionStatusCompleted,
		TransactionStatusFailed,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid transaction status").
			WithHint("Invalid transaction status").
			WithReportableDetails(map[string]any{
				"status":         s,
				"allowed_status": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PaymentMethodType is the instrument used for a transaction.
type PaymentMethodType string

const (
	PaymentMethodCard     PaymentMethodType = "card"
	PaymentMethodTransfer PaymentMethodType = "transfer"
	PaymentMethodWallet   PaymentMethodType = "wallet"
)

func (m PaymentMethodType) String() string {
	return string(m)
}

func (m PaymentMethodType) Validate() error {
	allowed := []PaymentMethodType{
		PaymentMethodCard,
		PaymentMethodTransfer,
		PaymentMethodWallet,
	}
	if !lo.Contains(allowed, m) {
		return ierr.NewError("invalid payment method").
			WithHint("Invalid payment method").
			WithReportableDetails(map[string]any{
				"payment_method": m,
				"allowed_values": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
