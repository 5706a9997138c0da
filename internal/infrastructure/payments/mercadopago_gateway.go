package payments

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	appconfig "qutlas/internal/config"
	"qutlas/internal/domain/entities"
	"qutlas/internal/usecase/interfaces"
	"qutlas/pkg/clock"
	"qutlas/pkg/errs"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

var ErrMissingMercadoPagoAccessToken = errs.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errs.New("mercado pago gateway not configured")

// paymentAPI and preferenceAPI are the parts of the SDK clients the gateway
// calls.
type paymentAPI interface {
	Get(ctx context.Context, id int) (*payment.Response, error)
	Search(ctx context.Context, request payment.SearchRequest) (*payment.SearchResponse, error)
}

type preferenceAPI interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

// MercadoPagoGateway initializes checkout preferences and reads payments
// back. Our payment reference travels as the preference external_reference.
type MercadoPagoGateway struct {
	payments        paymentAPI
	preferences     preferenceAPI
	notificationURL string
	successURL      string
	logger          *slog.Logger

	mockMode bool
	mock     *mockLedger
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(cfg appconfig.MercadoPagoConfig, c clock.Clock, logger *slog.Logger) (*MercadoPagoGateway, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Mock || isPaymentGatewayMockEnabled() {
		logger.Info("[payment][gateway] mock mode enabled")
		return NewMockGateway(c, logger), nil
	}

	if cfg.AccessToken == "" {
		logger.Error("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	sdkCfg, err := config.New(cfg.AccessToken)
	if err != nil {
		logger.Error("[payment][gateway] failed creating sdk config", "error", err)
		return nil, errs.Wrap(err, "mercado pago sdk config")
	}
	logger.Info("[payment][gateway] Mercado Pago client initialized")

	return newMercadoPagoGateway(payment.NewClient(sdkCfg), preference.NewClient(sdkCfg), cfg, logger), nil
}

func newMercadoPagoGateway(p paymentAPI, pr preferenceAPI, cfg appconfig.MercadoPagoConfig, logger *slog.Logger) *MercadoPagoGateway {
	return &MercadoPagoGateway{
		payments:        p,
		preferences:     pr,
		notificationURL: cfg.NotificationURL,
		successURL:      cfg.SuccessURL,
		logger:          logger,
	}
}

// NewMockGateway returns a gateway that approves every transaction it
// initializes. Used for local runs without Mercado Pago credentials.
func NewMockGateway(c clock.Clock, logger *slog.Logger) *MercadoPagoGateway {
	if c == nil {
		c = clock.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MercadoPagoGateway{
		logger:   logger,
		mockMode: true,
		mock:     &mockLedger{clock: c, byRef: map[string]interfaces.GatewayTransaction{}, byID: map[string]string{}},
	}
}

func (g *MercadoPagoGateway) InitializeTransaction(ctx context.Context, req interfaces.PaymentInitRequest) (interfaces.PaymentInitResult, error) {
	if g != nil && g.mockMode {
		return g.mock.initialize(req, g.logger), nil
	}
	if g == nil || g.preferences == nil {
		return interfaces.PaymentInitResult{}, errs.Mark(ErrMercadoPagoGatewayNotConfigured, errs.ErrDataUnavailable)
	}
	g.logger.Info("[payment][gateway] create preference start", "reference", req.Reference, "job_id", req.JobID)

	prefReq := preference.Request{
		ExternalReference: req.Reference,
		NotificationURL:   g.notificationURL,
		Items: []preference.ItemRequest{{
			ID:         req.JobID,
			Title:      req.Title,
			Quantity:   1,
			UnitPrice:  req.Amount,
			CurrencyID: req.Currency,
		}},
	}
	if req.PayerEmail != "" {
		prefReq.Payer = &preference.PayerRequest{Email: req.PayerEmail}
	}
	if g.successURL != "" {
		prefReq.BackURLs = &preference.BackURLsRequest{Success: g.successURL}
	}

	resp, err := g.preferences.Create(ctx, prefReq)
	if err != nil {
		g.logger.Error("[payment][gateway] sdk create preference failed", "reference", req.Reference, "error", err)
		return interfaces.PaymentInitResult{}, errs.Mark(errs.Wrap(err, "create mercado pago preference"), errs.ErrDataUnavailable)
	}

	link := resp.InitPoint
	if link == "" {
		link = resp.SandboxInitPoint
	}
	g.logger.Info("[payment][gateway] create preference success", "reference", req.Reference, "preference_id", resp.ID)
	return interfaces.PaymentInitResult{GatewayID: resp.ID, RedirectLink: link}, nil
}

// VerifyByReference returns the most recently updated payment carrying the
// reference.
func (g *MercadoPagoGateway) VerifyByReference(ctx context.Context, reference string) (interfaces.GatewayTransaction, error) {
	if g != nil && g.mockMode {
		return g.mock.byReference(reference)
	}
	if g == nil || g.payments == nil {
		return interfaces.GatewayTransaction{}, errs.Mark(ErrMercadoPagoGatewayNotConfigured, errs.ErrDataUnavailable)
	}

	resp, err := g.payments.Search(ctx, payment.SearchRequest{
		Filters: map[string]string{"external_reference": reference},
	})
	if err != nil {
		g.logger.Error("[payment][gateway] sdk search failed", "reference", reference, "error", err)
		return interfaces.GatewayTransaction{}, errs.Mark(errs.Wrap(err, "search mercado pago payments"), errs.ErrDataUnavailable)
	}
	if resp == nil || len(resp.Results) == 0 {
		return interfaces.GatewayTransaction{}, errs.Markf(errs.ErrNotFound, "no gateway payment for reference %s", reference)
	}

	latest := resp.Results[0]
	for _, r := range resp.Results[1:] {
		if r.DateCreated.After(latest.DateCreated) {
			latest = r
		}
	}
	return toGatewayTransaction(latest), nil
}

func (g *MercadoPagoGateway) VerifyByID(ctx context.Context, transactionID string) (interfaces.GatewayTransaction, error) {
	if g != nil && g.mockMode {
		return g.mock.byTransactionID(transactionID)
	}
	if g == nil || g.payments == nil {
		return interfaces.GatewayTransaction{}, errs.Mark(ErrMercadoPagoGatewayNotConfigured, errs.ErrDataUnavailable)
	}

	id, err := strconv.Atoi(strings.TrimSpace(transactionID))
	if err != nil {
		return interfaces.GatewayTransaction{}, errs.Markf(errs.ErrInvalidInput, "transaction id %q is not numeric", transactionID)
	}
	resp, err := g.payments.Get(ctx, id)
	if err != nil {
		g.logger.Error("[payment][gateway] sdk get failed", "transaction_id", transactionID, "error", err)
		return interfaces.GatewayTransaction{}, errs.Mark(errs.Wrap(err, "get mercado pago payment"), errs.ErrDataUnavailable)
	}
	if resp == nil || resp.ID == 0 {
		return interfaces.GatewayTransaction{}, errs.Markf(errs.ErrNotFound, "gateway payment %s not found", transactionID)
	}
	return toGatewayTransaction(*resp), nil
}

func toGatewayTransaction(r payment.Response) interfaces.GatewayTransaction {
	return interfaces.GatewayTransaction{
		TransactionID: strconv.Itoa(r.ID),
		Reference:     r.ExternalReference,
		Status:        MapPaymentStatus(r.Status),
		Amount:        r.TransactionAmount,
		Currency:      r.CurrencyID,
		Timestamp:     r.DateCreated.UTC(),
	}
}

// MapPaymentStatus folds Mercado Pago payment statuses into the three
// statuses the reconciler understands. Unknown statuses stay pending.
func MapPaymentStatus(status string) entities.PaymentEventStatus {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "approved":
		return entities.PaymentEventSuccessful
	case "rejected", "cancelled", "refunded", "charged_back":
		return entities.PaymentEventFailed
	default:
		return entities.PaymentEventPending
	}
}

type mockLedger struct {
	mu    sync.Mutex
	clock clock.Clock
	seq   int64
	byRef map[string]interfaces.GatewayTransaction
	byID  map[string]string
}

func (m *mockLedger) initialize(req interfaces.PaymentInitRequest, logger *slog.Logger) interfaces.PaymentInitResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	if tx, ok := m.byRef[req.Reference]; ok {
		return interfaces.PaymentInitResult{GatewayID: "mock-pref-" + tx.TransactionID, RedirectLink: mockLink(tx.TransactionID)}
	}
	m.seq++
	id := strconv.FormatInt(m.clock.Now().UTC().Unix(), 10) + strconv.FormatInt(m.seq, 10)
	m.byRef[req.Reference] = interfaces.GatewayTransaction{
		TransactionID: id,
		Reference:     req.Reference,
		Status:        entities.PaymentEventSuccessful,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Timestamp:     m.clock.Now().UTC(),
	}
	m.byID[id] = req.Reference
	logger.Info("[payment][gateway] mock create success", "reference", req.Reference, "transaction_id", id, "provider_status", "approved")
	return interfaces.PaymentInitResult{GatewayID: "mock-pref-" + id, RedirectLink: mockLink(id)}
}

func (m *mockLedger) byReference(reference string) (interfaces.GatewayTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.byRef[reference]
	if !ok {
		return interfaces.GatewayTransaction{}, errs.Markf(errs.ErrNotFound, "no gateway payment for reference %s", reference)
	}
	return tx, nil
}

func (m *mockLedger) byTransactionID(id string) (interfaces.GatewayTransaction, error) {
	m.mu.Lock()
	ref, ok := m.byID[id]
	m.mu.Unlock()
	if !ok {
		return interfaces.GatewayTransaction{}, errs.Markf(errs.ErrNotFound, "gateway payment %s not found", id)
	}
	return m.byReference(ref)
}

func mockLink(id string) string {
	return "https://mock.mercadopago.local/checkout/" + id
}

func isPaymentGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
