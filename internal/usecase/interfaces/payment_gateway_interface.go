package interfaces

import (
	"context"
	"time"

	"qutlas/internal/domain/entities"
)

type PaymentInitRequest struct {
	Reference  string
	JobID      string
	Title      string
	Amount     float64
	Currency   string
	PayerEmail string
}

type PaymentInitResult struct {
	GatewayID    string
	RedirectLink string
}

// GatewayTransaction is the gateway's view of a payment, already mapped to
// the platform's event statuses. Reference is the external reference the
// payment was created with.
type GatewayTransaction struct {
	TransactionID string
	Reference     string
	Status        entities.PaymentEventStatus
	Amount        float64
	Currency      string
	Timestamp     time.Time
}

// IPaymentGateway abstracts external payment providers (e.g. Mercado Pago).
//
// The gateway is the source of truth for payment status; the marketplace
// only initializes transactions and reads them back.
type IPaymentGateway interface {
	InitializeTransaction(ctx context.Context, req PaymentInitRequest) (PaymentInitResult, error)
	VerifyByReference(ctx context.Context, reference string) (GatewayTransaction, error)
	VerifyByID(ctx context.Context, transactionID string) (GatewayTransaction, error)
}
