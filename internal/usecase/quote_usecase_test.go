package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"qutlas/internal/domain/entities"
	mock_interfaces "qutlas/internal/usecase/interfaces/mocks"
	"qutlas/pkg/clock"
	"qutlas/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestQuoteUseCase_CreateAndGet(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	q, err := f.quotes.CreateQuote(ctx, bracketRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, q.ID)
	assert.Equal(t, 349.60, q.TotalPrice)

	got, err := f.quotes.GetQuote(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.ID, got.ID)
	assert.Equal(t, q.TotalPrice, got.TotalPrice)

	f.clock.Add(24 * time.Hour)
	_, err = f.quotes.GetQuote(ctx, q.ID)
	assert.True(t, errs.Is(err, errs.ErrQuoteExpired), "got %v", err)
}

func TestQuoteUseCase_GetQuote_Unknown(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.quotes.GetQuote(context.Background(), "missing")
	assert.True(t, errs.Is(err, errs.ErrQuoteExpired))

	_, err = f.quotes.GetQuote(context.Background(), " ")
	assert.True(t, errs.Is(err, errs.ErrInvalidInput))
}

func TestQuoteUseCase_CreateQuote_Errors(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	t.Run("unknown template", func(t *testing.T) {
		req := bracketRequest()
		req.TemplateID = "nope"
		_, err := f.quotes.CreateQuote(ctx, req)
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})

	t.Run("missing template id", func(t *testing.T) {
		req := bracketRequest()
		req.TemplateID = ""
		_, err := f.quotes.CreateQuote(ctx, req)
		assert.True(t, errs.Is(err, errs.ErrInvalidInput))
	})

	t.Run("zero quantity", func(t *testing.T) {
		req := bracketRequest()
		req.Quantity = 0
		_, err := f.quotes.CreateQuote(ctx, req)
		assert.True(t, errs.Is(err, errs.ErrInvalidInput))
	})
}

func TestQuoteUseCase_StoreFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store := mock_interfaces.NewMockIQuoteStore(ctrl)
	c := clock.NewMockClock(testNow)
	uc := NewQuoteUseCase(testCatalog(), store, nil, c, discardLogger())

	t.Run("save failure is data unavailable", func(t *testing.T) {
		store.EXPECT().Save(gomock.Any(), gomock.Any(), 24*time.Hour).Return(errors.New("redis down"))
		_, err := uc.CreateQuote(context.Background(), bracketRequest())
		assert.True(t, errs.Is(err, errs.ErrDataUnavailable), "got %v", err)
	})

	t.Run("get failure is data unavailable", func(t *testing.T) {
		store.EXPECT().Get(gomock.Any(), "q-1").Return(entities.Quote{}, false, errors.New("redis down"))
		_, err := uc.GetQuote(context.Background(), "q-1")
		assert.True(t, errs.Is(err, errs.ErrDataUnavailable), "got %v", err)
	})
}

func TestQuoteUseCase_QuoteFor(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	q, err := f.quotes.CreateQuote(ctx, bracketRequest())
	require.NoError(t, err)

	t.Run("reuses cached quote", func(t *testing.T) {
		req := bracketRequest()
		req.QuoteID = q.ID
		got, err := f.quotes.QuoteFor(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, q.ID, got.ID)
	})

	t.Run("rejects quote for another request", func(t *testing.T) {
		req := bracketRequest()
		req.QuoteID = q.ID
		req.Quantity = 50
		_, err := f.quotes.QuoteFor(ctx, req)
		assert.True(t, errs.Is(err, errs.ErrInvalidInput))
	})

	t.Run("computes a new quote without id", func(t *testing.T) {
		got, err := f.quotes.QuoteFor(ctx, bracketRequest())
		require.NoError(t, err)
		assert.NotEqual(t, q.ID, got.ID)
	})
}
