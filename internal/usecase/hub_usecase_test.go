package usecase

import (
	"context"
	"testing"

	"qutlas/internal/domain/entities"
	mock_interfaces "qutlas/internal/usecase/interfaces/mocks"
	"qutlas/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHubUseCase_MatchHubs(t *testing.T) {
	f := newFixture(t, nil)

	got, err := f.hubs.MatchHubs(context.Background(), bracketRequest())
	require.NoError(t, err)
	require.Len(t, got, 3, "uncertified hub-d must be excluded")
	assert.Equal(t, "hub-b", got[0].HubID)
	assert.Equal(t, "hub-a", got[1].HubID)
	assert.Equal(t, "hub-c", got[2].HubID)
	assert.True(t, got[0].Feasible)
	assert.False(t, got[2].Feasible)
}

func TestHubUseCase_MatchHubs_UnsupportedMaterialUsesDefault(t *testing.T) {
	f := newFixture(t, nil)
	req := bracketRequest()
	req.Material = "Unobtainium"

	got, err := f.hubs.MatchHubs(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.True(t, got[0].Feasible)
}

func TestHubUseCase_MatchHubs_Validation(t *testing.T) {
	f := newFixture(t, nil)
	req := bracketRequest()
	req.Quantity = 0
	_, err := f.hubs.MatchHubs(context.Background(), req)
	assert.True(t, errs.Is(err, errs.ErrInvalidInput))
}

func TestHubUseCase_AdjustLoad(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	h, applied, err := f.hubs.AdjustLoad(ctx, "hub-b", 0.1)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, h.CurrentLoad, 1e-9)
	assert.InDelta(t, 0.1, applied, 1e-9)
	assert.Equal(t, int64(2), h.Version)

	h, applied, err = f.hubs.AdjustLoad(ctx, "hub-b", 5)
	require.NoError(t, err)
	assert.Equal(t, 1.0, h.CurrentLoad)
	assert.InDelta(t, 0.5, applied, 1e-9)

	h, applied, err = f.hubs.AdjustLoad(ctx, "hub-b", 0.2)
	require.NoError(t, err)
	assert.Equal(t, 1.0, h.CurrentLoad)
	assert.Zero(t, applied)

	h, applied, err = f.hubs.AdjustLoad(ctx, "hub-b", -5)
	require.NoError(t, err)
	assert.Equal(t, 0.0, h.CurrentLoad)
	assert.InDelta(t, -1.0, applied, 1e-9)

	_, _, err = f.hubs.AdjustLoad(ctx, "hub-zzz", 0.1)
	assert.True(t, errs.Is(err, errs.ErrNotFound))
}

func TestHubUseCase_AdjustLoad_RetriesConflicts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIHubRepository(ctrl)
	uc := NewHubUseCase(repo, nil, nil, RetryPolicy{MaxAttempts: 3}, discardLogger())

	hub := entities.Hub{ID: "hub-a", CurrentLoad: 0.5, Version: 7}
	conflict := errs.Markf(errs.ErrConflict, "version moved")

	t.Run("succeeds on third attempt", func(t *testing.T) {
		gomock.InOrder(
			repo.EXPECT().GetByID(gomock.Any(), "hub-a").Return(hub, nil),
			repo.EXPECT().UpdateLoad(gomock.Any(), "hub-a", 0.6, int64(7)).Return(entities.Hub{}, conflict),
			repo.EXPECT().GetByID(gomock.Any(), "hub-a").Return(hub, nil),
			repo.EXPECT().UpdateLoad(gomock.Any(), "hub-a", 0.6, int64(7)).Return(entities.Hub{}, conflict),
			repo.EXPECT().GetByID(gomock.Any(), "hub-a").Return(hub, nil),
			repo.EXPECT().UpdateLoad(gomock.Any(), "hub-a", 0.6, int64(7)).Return(entities.Hub{ID: "hub-a", CurrentLoad: 0.6, Version: 8}, nil),
		)
		got, applied, err := uc.AdjustLoad(context.Background(), "hub-a", 0.1)
		require.NoError(t, err)
		assert.Equal(t, int64(8), got.Version)
		assert.InDelta(t, 0.1, applied, 1e-9)
	})

	t.Run("surfaces conflict when attempts run out", func(t *testing.T) {
		repo.EXPECT().GetByID(gomock.Any(), "hub-a").Return(hub, nil).Times(3)
		repo.EXPECT().UpdateLoad(gomock.Any(), "hub-a", gomock.Any(), int64(7)).Return(entities.Hub{}, conflict).Times(3)
		_, applied, err := uc.AdjustLoad(context.Background(), "hub-a", 0.1)
		assert.True(t, errs.Is(err, errs.ErrConflict), "got %v", err)
		assert.Zero(t, applied)
	})
}
