package payments

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	appconfig "qutlas/internal/config"
	"qutlas/internal/domain/entities"
	"qutlas/internal/usecase/interfaces"
	"qutlas/pkg/clock"
	"qutlas/pkg/errs"

	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakePayments struct {
	getResp    *payment.Response
	getErr     error
	searchResp *payment.SearchResponse
	searchErr  error
	lastSearch payment.SearchRequest
	lastGetID  int
}

func (f *fakePayments) Get(_ context.Context, id int) (*payment.Response, error) {
	f.lastGetID = id
	return f.getResp, f.getErr
}

func (f *fakePayments) Search(_ context.Context, req payment.SearchRequest) (*payment.SearchResponse, error) {
	f.lastSearch = req
	return f.searchResp, f.searchErr
}

type fakePreferences struct {
	resp *preference.Response
	err  error
	last preference.Request
}

func (f *fakePreferences) Create(_ context.Context, req preference.Request) (*preference.Response, error) {
	f.last = req
	return f.resp, f.err
}

func TestMapPaymentStatus(t *testing.T) {
	cases := map[string]entities.PaymentEventStatus{
		"approved":     entities.PaymentEventSuccessful,
		"APPROVED":     entities.PaymentEventSuccessful,
		"rejected":     entities.PaymentEventFailed,
		"cancelled":    entities.PaymentEventFailed,
		"refunded":     entities.PaymentEventFailed,
		"charged_back": entities.PaymentEventFailed,
		"pending":      entities.PaymentEventPending,
		"in_process":   entities.PaymentEventPending,
		"authorized":   entities.PaymentEventPending,
		"something":    entities.PaymentEventPending,
	}
	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, MapPaymentStatus(in))
		})
	}
}

func TestInitializeTransaction_BuildsPreference(t *testing.T) {
	prefs := &fakePreferences{resp: &preference.Response{ID: "pref-1", InitPoint: "https://mp/checkout/pref-1"}}
	g := newMercadoPagoGateway(&fakePayments{}, prefs, appconfig.MercadoPagoConfig{NotificationURL: "https://api.qutlas.io/v1/payments/webhook"}, testLogger)

	res, err := g.InitializeTransaction(context.Background(), interfaces.PaymentInitRequest{
		Reference: "ref-1", JobID: "job-1", Title: "Job job-1", Amount: 349.6, Currency: "BRL", PayerEmail: "buyer@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "pref-1", res.GatewayID)
	assert.Equal(t, "https://mp/checkout/pref-1", res.RedirectLink)

	assert.Equal(t, "ref-1", prefs.last.ExternalReference)
	assert.Equal(t, "https://api.qutlas.io/v1/payments/webhook", prefs.last.NotificationURL)
	require.Len(t, prefs.last.Items, 1)
	assert.Equal(t, 349.6, prefs.last.Items[0].UnitPrice)
	assert.Equal(t, 1, prefs.last.Items[0].Quantity)
	assert.Equal(t, "BRL", prefs.last.Items[0].CurrencyID)
	require.NotNil(t, prefs.last.Payer)
	assert.Equal(t, "buyer@example.com", prefs.last.Payer.Email)
}

func TestInitializeTransaction_SandboxFallbackAndErrors(t *testing.T) {
	prefs := &fakePreferences{resp: &preference.Response{ID: "pref-2", SandboxInitPoint: "https://sandbox/pref-2"}}
	g := newMercadoPagoGateway(&fakePayments{}, prefs, appconfig.MercadoPagoConfig{}, testLogger)
	res, err := g.InitializeTransaction(context.Background(), interfaces.PaymentInitRequest{Reference: "ref-2"})
	require.NoError(t, err)
	assert.Equal(t, "https://sandbox/pref-2", res.RedirectLink)
	assert.Nil(t, prefs.last.Payer)

	failing := newMercadoPagoGateway(&fakePayments{}, &fakePreferences{err: errors.New("502")}, appconfig.MercadoPagoConfig{}, testLogger)
	_, err = failing.InitializeTransaction(context.Background(), interfaces.PaymentInitRequest{Reference: "ref-3"})
	assert.True(t, errs.Is(err, errs.ErrDataUnavailable))
}

func TestVerifyByReference_PicksLatest(t *testing.T) {
	older := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	pays := &fakePayments{searchResp: &payment.SearchResponse{Results: []payment.Response{
		{ID: 11, Status: "rejected", TransactionAmount: 349.6, CurrencyID: "BRL", ExternalReference: "ref-1", DateCreated: older},
		{ID: 12, Status: "approved", TransactionAmount: 349.6, CurrencyID: "BRL", ExternalReference: "ref-1", DateCreated: older.Add(time.Minute)},
	}}}
	g := newMercadoPagoGateway(pays, &fakePreferences{}, appconfig.MercadoPagoConfig{}, testLogger)

	tx, err := g.VerifyByReference(context.Background(), "ref-1")
	require.NoError(t, err)
	assert.Equal(t, "ref-1", pays.lastSearch.Filters["external_reference"])
	assert.Equal(t, "12", tx.TransactionID)
	assert.Equal(t, entities.PaymentEventSuccessful, tx.Status)
	assert.Equal(t, 349.6, tx.Amount)
}

func TestVerifyByReference_Errors(t *testing.T) {
	empty := newMercadoPagoGateway(&fakePayments{searchResp: &payment.SearchResponse{}}, &fakePreferences{}, appconfig.MercadoPagoConfig{}, testLogger)
	_, err := empty.VerifyByReference(context.Background(), "ref-x")
	assert.True(t, errs.Is(err, errs.ErrNotFound))

	down := newMercadoPagoGateway(&fakePayments{searchErr: errors.New("timeout")}, &fakePreferences{}, appconfig.MercadoPagoConfig{}, testLogger)
	_, err = down.VerifyByReference(context.Background(), "ref-x")
	assert.True(t, errs.Is(err, errs.ErrDataUnavailable))
}

func TestVerifyByID(t *testing.T) {
	pays := &fakePayments{getResp: &payment.Response{ID: 42, Status: "in_process", TransactionAmount: 10, CurrencyID: "BRL", ExternalReference: "ref-42"}}
	g := newMercadoPagoGateway(pays, &fakePreferences{}, appconfig.MercadoPagoConfig{}, testLogger)

	tx, err := g.VerifyByID(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, 42, pays.lastGetID)
	assert.Equal(t, "ref-42", tx.Reference)
	assert.Equal(t, entities.PaymentEventPending, tx.Status)

	_, err = g.VerifyByID(context.Background(), "abc")
	assert.True(t, errs.Is(err, errs.ErrInvalidInput))
}

func TestMockGateway_ApprovesInitializedTransactions(t *testing.T) {
	c := clock.NewMockClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	g := NewMockGateway(c, testLogger)
	ctx := context.Background()

	res, err := g.InitializeTransaction(ctx, interfaces.PaymentInitRequest{Reference: "ref-1", Amount: 349.6, Currency: "BRL"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.RedirectLink)

	again, err := g.InitializeTransaction(ctx, interfaces.PaymentInitRequest{Reference: "ref-1", Amount: 349.6, Currency: "BRL"})
	require.NoError(t, err)
	assert.Equal(t, res, again)

	tx, err := g.VerifyByReference(ctx, "ref-1")
	require.NoError(t, err)
	assert.Equal(t, entities.PaymentEventSuccessful, tx.Status)
	assert.Equal(t, 349.6, tx.Amount)

	byID, err := g.VerifyByID(ctx, tx.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, tx, byID)

	_, err = g.VerifyByReference(ctx, "ref-unknown")
	assert.True(t, errs.Is(err, errs.ErrNotFound))
}

func TestNewMercadoPagoGateway_RequiresTokenOutsideMockMode(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_MOCK", "")
	t.Setenv("MERCADOPAGO_MOCK", "")
	_, err := NewMercadoPagoGateway(appconfig.MercadoPagoConfig{}, nil, testLogger)
	assert.ErrorIs(t, err, ErrMissingMercadoPagoAccessToken)

	t.Setenv("MERCADOPAGO_MOCK", "on")
	g, err := NewMercadoPagoGateway(appconfig.MercadoPagoConfig{}, nil, testLogger)
	require.NoError(t, err)
	assert.True(t, g.mockMode)
}
