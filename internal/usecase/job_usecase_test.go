package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"qutlas/internal/domain/entities"
	mock_interfaces "qutlas/internal/usecase/interfaces/mocks"
	"qutlas/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestJobUseCase_SubmitJob(t *testing.T) {
	f := newFixture(t, nil)
	before := f.hubLoad(t, "hub-b")

	job, err := f.jobs.SubmitJob(context.Background(), "cust-1", bracketRequest(), "hub-b")
	require.NoError(t, err)

	assert.NotEmpty(t, job.ID)
	assert.Equal(t, entities.JobStatusSubmitted, job.Status)
	assert.Equal(t, "hub-b", job.HubID)
	require.NotNil(t, job.Quote)
	assert.Equal(t, 349.60, job.Quote.TotalPrice)
	require.Len(t, job.Tracking.Timeline, 1)
	assert.Equal(t, entities.JobStatusSubmitted, job.Tracking.Timeline[0].Status)
	assert.Equal(t, int64(1), job.Version)
	assert.Equal(t, DefaultHubLoadPerJob, job.HubLoadReserved)

	assert.InDelta(t, before+DefaultHubLoadPerJob, f.hubLoad(t, "hub-b"), 1e-9)

	stored, err := f.jobs.GetJob(context.Background(), job.ID, "cust-1")
	require.NoError(t, err)
	assert.Equal(t, job.ID, stored.ID)
}

func TestJobUseCase_SubmitJob_HubIncompatible(t *testing.T) {
	cases := map[string]string{
		"wrong process":    "hub-c",
		"uncertified":      "hub-d",
		"unknown hub":      "hub-zzz",
		"material missing": "hub-b",
	}
	for name, hubID := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, nil)
			req := bracketRequest()
			if name == "material missing" {
				req.Material = "Stainless Steel 304"
			}
			_, err := f.jobs.SubmitJob(context.Background(), "cust-1", req, hubID)
			assert.True(t, errs.Is(err, errs.ErrHubIncompatible), "got %v", err)

			jobs, err := f.jobsRepo.ListByCustomerID(context.Background(), "cust-1")
			require.NoError(t, err)
			assert.Empty(t, jobs)
		})
	}
}

func TestJobUseCase_SubmitJob_WithQuote(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	q, err := f.quotes.CreateQuote(ctx, bracketRequest())
	require.NoError(t, err)

	req := bracketRequest()
	req.QuoteID = q.ID
	job, err := f.jobs.SubmitJob(ctx, "cust-1", req, "hub-b")
	require.NoError(t, err)
	assert.Equal(t, q.ID, job.Quote.ID)

	f.clock.Add(25 * time.Hour)
	_, err = f.jobs.SubmitJob(ctx, "cust-1", req, "hub-b")
	assert.True(t, errs.Is(err, errs.ErrQuoteExpired), "got %v", err)
}

func TestJobUseCase_SubmitJob_Validation(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.jobs.SubmitJob(ctx, "", bracketRequest(), "hub-b")
	assert.True(t, errs.Is(err, errs.ErrInvalidInput))

	_, err = f.jobs.SubmitJob(ctx, "cust-1", bracketRequest(), "")
	assert.True(t, errs.Is(err, errs.ErrInvalidInput))

	req := bracketRequest()
	req.Quantity = 0
	_, err = f.jobs.SubmitJob(ctx, "cust-1", req, "hub-b")
	assert.True(t, errs.Is(err, errs.ErrInvalidInput))
}

func TestJobUseCase_SubmitJob_CancelledContextPersistsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	designs := mock_interfaces.NewMockIDesignStorage(ctrl)
	ctx, cancel := context.WithCancel(context.Background())

	f := newFixture(t, nil, WithDesignStorage(designs))
	designs.EXPECT().Exists(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, entities.DesignLocation) (bool, error) {
		cancel()
		return true, nil
	})

	req := bracketRequest()
	req.Design = &entities.DesignLocation{Bucket: "designs", Key: "cust-1/bracket.step"}
	_, err := f.jobs.SubmitJob(ctx, "cust-1", req, "hub-b")
	assert.ErrorIs(t, err, context.Canceled)

	jobs, err := f.jobsRepo.ListByCustomerID(context.Background(), "cust-1")
	require.NoError(t, err)
	assert.Empty(t, jobs)
	assert.Equal(t, 0.4, f.hubLoad(t, "hub-b"))
}

func TestJobUseCase_SubmitJob_Design(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	designs := mock_interfaces.NewMockIDesignStorage(ctrl)
	f := newFixture(t, nil, WithDesignStorage(designs))
	loc := entities.DesignLocation{Bucket: "designs", Key: "cust-1/bracket.step"}

	t.Run("missing object", func(t *testing.T) {
		designs.EXPECT().Exists(gomock.Any(), loc).Return(false, nil)
		req := bracketRequest()
		req.Design = &loc
		_, err := f.jobs.SubmitJob(context.Background(), "cust-1", req, "hub-b")
		assert.True(t, errs.Is(err, errs.ErrInvalidInput))
	})

	t.Run("storage down", func(t *testing.T) {
		designs.EXPECT().Exists(gomock.Any(), loc).Return(false, errors.New("minio unreachable"))
		req := bracketRequest()
		req.Design = &loc
		_, err := f.jobs.SubmitJob(context.Background(), "cust-1", req, "hub-b")
		assert.True(t, errs.Is(err, errs.ErrDataUnavailable))
	})

	t.Run("invalid location never reaches storage", func(t *testing.T) {
		req := bracketRequest()
		req.Design = &entities.DesignLocation{Bucket: "designs", Key: "../etc/passwd"}
		_, err := f.jobs.SubmitJob(context.Background(), "cust-1", req, "hub-b")
		assert.True(t, errs.Is(err, errs.ErrInvalidInput))
	})

	t.Run("existing object is kept on the job", func(t *testing.T) {
		designs.EXPECT().Exists(gomock.Any(), loc).Return(true, nil)
		req := bracketRequest()
		req.Design = &loc
		job, err := f.jobs.SubmitJob(context.Background(), "cust-1", req, "hub-b")
		require.NoError(t, err)
		require.NotNil(t, job.Design)
		assert.Equal(t, loc, *job.Design)
	})
}

func TestJobUseCase_GetJob_OtherCustomer(t *testing.T) {
	f := newFixture(t, nil)
	job := f.submit(t, "")

	_, err := f.jobs.GetJob(context.Background(), job.ID, "cust-2")
	assert.True(t, errs.Is(err, errs.ErrNotFound))

	_, err = f.jobs.GetJob(context.Background(), "missing", "cust-1")
	assert.True(t, errs.Is(err, errs.ErrNotFound))
}

func TestJobUseCase_CancelReleasesHubLoad(t *testing.T) {
	f := newFixture(t, nil)
	job := f.submit(t, "")
	assert.InDelta(t, 0.45, f.hubLoad(t, "hub-b"), 1e-9)

	cancelled, err := f.jobs.CancelJob(context.Background(), job.ID, "cust-1", "changed my mind")
	require.NoError(t, err)
	assert.Equal(t, entities.JobStatusCancelled, cancelled.Status)
	assert.Zero(t, cancelled.HubLoadReserved)
	last := cancelled.Tracking.Timeline[len(cancelled.Tracking.Timeline)-1]
	assert.Equal(t, "changed my mind", last.Note)
	assert.InDelta(t, 0.4, f.hubLoad(t, "hub-b"), 1e-9)

	_, err = f.jobs.CancelJob(context.Background(), job.ID, "cust-1", "")
	assert.True(t, errs.Is(err, errs.ErrInvalidTransition))
	assert.InDelta(t, 0.4, f.hubLoad(t, "hub-b"), 1e-9)
}

func TestJobUseCase_ReservationFollowsClampedLoad(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	hub, err := f.hubsRepo.GetByID(ctx, "hub-b")
	require.NoError(t, err)
	_, err = f.hubsRepo.UpdateLoad(ctx, "hub-b", 0.98, hub.Version)
	require.NoError(t, err)

	job := f.submit(t, "")
	assert.InDelta(t, 0.02, job.HubLoadReserved, 1e-9)
	assert.Equal(t, 1.0, f.hubLoad(t, "hub-b"))

	stored, err := f.jobsRepo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0.02, stored.HubLoadReserved, 1e-9)

	full := f.submit(t, "")
	assert.Zero(t, full.HubLoadReserved)
	_, err = f.jobs.CancelJob(ctx, full.ID, "cust-1", "")
	require.NoError(t, err)
	assert.Equal(t, 1.0, f.hubLoad(t, "hub-b"))

	_, err = f.jobs.CancelJob(ctx, job.ID, "cust-1", "")
	require.NoError(t, err)
	assert.InDelta(t, 0.98, f.hubLoad(t, "hub-b"), 1e-9)
}

func TestJobUseCase_UpdateJob(t *testing.T) {
	status := func(s entities.JobStatus) *entities.JobStatus { return &s }
	str := func(s string) *string { return &s }

	t.Run("payment driven statuses are not patchable", func(t *testing.T) {
		f := newFixture(t, nil)
		job := f.submit(t, "")
		for _, s := range []entities.JobStatus{entities.JobStatusPaid, entities.JobStatusManufacturing} {
			_, err := f.jobs.UpdateJob(context.Background(), job.ID, "cust-1", JobPatch{Status: status(s)})
			assert.True(t, errs.Is(err, errs.ErrInvalidTransition), "%s: %v", s, err)
		}
	})

	t.Run("unknown status and empty patch", func(t *testing.T) {
		f := newFixture(t, nil)
		job := f.submit(t, "")
		_, err := f.jobs.UpdateJob(context.Background(), job.ID, "cust-1", JobPatch{Status: status("shipped")})
		assert.True(t, errs.Is(err, errs.ErrInvalidInput))
		_, err = f.jobs.UpdateJob(context.Background(), job.ID, "cust-1", JobPatch{})
		assert.True(t, errs.Is(err, errs.ErrInvalidInput))
		_, err = f.jobs.UpdateJob(context.Background(), job.ID, "cust-1", JobPatch{Note: str("hello")})
		assert.True(t, errs.Is(err, errs.ErrInvalidInput))
	})

	t.Run("customer cannot report progress", func(t *testing.T) {
		f := newFixture(t, nil)
		job := f.submit(t, "")
		for _, s := range []entities.JobStatus{entities.JobStatusCompleted, entities.JobStatusConfirmed, entities.JobStatusInProgress} {
			_, err := f.jobs.UpdateJob(context.Background(), job.ID, "cust-1", JobPatch{Status: status(s)})
			assert.True(t, errs.Is(err, errs.ErrInvalidTransition), "%s: %v", s, err)
		}
		_, err := f.jobs.UpdateJob(context.Background(), job.ID, "cust-1", JobPatch{Carrier: str("DHL")})
		assert.True(t, errs.Is(err, errs.ErrInvalidInput), "got %v", err)

		stored, err := f.jobsRepo.GetByID(context.Background(), job.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.JobStatusSubmitted, stored.Status)
		assert.Empty(t, stored.Tracking.Carrier)
	})

	t.Run("hub cannot cancel", func(t *testing.T) {
		f := newFixture(t, nil)
		job := f.submit(t, "")
		_, err := f.jobs.ReportProgress(context.Background(), job.ID, "hub-b", JobPatch{Status: status(entities.JobStatusCancelled)})
		assert.True(t, errs.Is(err, errs.ErrInvalidTransition), "got %v", err)
	})

	t.Run("narration only while manufacturing", func(t *testing.T) {
		f := newFixture(t, nil)
		job := f.submit(t, "")
		_, err := f.jobs.ReportProgress(context.Background(), job.ID, "hub-b", JobPatch{Status: status(entities.JobStatusConfirmed)})
		assert.True(t, errs.Is(err, errs.ErrInvalidTransition))
	})

	t.Run("tracking fields", func(t *testing.T) {
		f := newFixture(t, nil)
		job := f.submit(t, "")
		eta := testNow.Add(96 * time.Hour)
		got, err := f.jobs.ReportProgress(context.Background(), job.ID, "hub-b", JobPatch{
			EstimatedCompletion: &eta, Carrier: str(" Correios "), TrackingNumber: str("BR123"),
		})
		require.NoError(t, err)
		assert.Equal(t, entities.JobStatusSubmitted, got.Status)
		assert.Equal(t, "Correios", got.Tracking.Carrier)
		assert.Equal(t, "BR123", got.Tracking.TrackingNumber)
		require.NotNil(t, got.Tracking.EstimatedCompletion)
		assert.Equal(t, eta, *got.Tracking.EstimatedCompletion)
		assert.Equal(t, int64(2), got.Version)
	})

	t.Run("other customer", func(t *testing.T) {
		f := newFixture(t, nil)
		job := f.submit(t, "")
		_, err := f.jobs.UpdateJob(context.Background(), job.ID, "cust-2", JobPatch{Status: status(entities.JobStatusCancelled)})
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})

	t.Run("other hub", func(t *testing.T) {
		f := newFixture(t, nil)
		job := f.submit(t, "")
		_, err := f.jobs.ReportProgress(context.Background(), job.ID, "hub-a", JobPatch{Carrier: str("x")})
		assert.True(t, errs.Is(err, errs.ErrInvalidInput))
		_, err = f.jobs.ReportProgress(context.Background(), job.ID, " ", JobPatch{Carrier: str("x")})
		assert.True(t, errs.Is(err, errs.ErrInvalidInput))
	})
}

func TestJobUseCase_FullLifecycle(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	job := f.submit(t, "ref-1")

	_, err := f.jobs.AcknowledgeJob(ctx, job.ID, "hub-b")
	assert.True(t, errs.Is(err, errs.ErrInvalidTransition), "ack before payment: %v", err)

	_, err = f.payments.ApplyPaymentEvent(ctx, entities.PaymentEvent{
		Reference: "ref-1", TransactionID: "tx-1", Status: entities.PaymentEventSuccessful, Amount: 349.60, Currency: "BRL",
	})
	require.NoError(t, err)

	_, err = f.jobs.AcknowledgeJob(ctx, job.ID, "hub-a")
	assert.True(t, errs.Is(err, errs.ErrInvalidInput), "wrong hub: %v", err)

	f.clock.Add(time.Hour)
	acked, err := f.jobs.AcknowledgeJob(ctx, job.ID, "hub-b")
	require.NoError(t, err)
	assert.Equal(t, entities.JobStatusManufacturing, acked.Status)
	require.NotNil(t, acked.Tracking.EstimatedCompletion)
	assert.Equal(t, testNow.Add(time.Hour).Add(5*24*time.Hour), *acked.Tracking.EstimatedCompletion)

	_, err = f.jobs.CancelJob(ctx, job.ID, "cust-1", "")
	assert.True(t, errs.Is(err, errs.ErrInvalidTransition), "cancel while manufacturing: %v", err)

	confirmed := entities.JobStatusInProgress
	narrated, err := f.jobs.ReportProgress(ctx, job.ID, "hub-b", JobPatch{Status: &confirmed})
	require.NoError(t, err)
	assert.Equal(t, entities.JobStatusManufacturing, narrated.Status)

	completed := entities.JobStatusCompleted
	_, err = f.jobs.UpdateJob(ctx, job.ID, "cust-1", JobPatch{Status: &completed})
	assert.True(t, errs.Is(err, errs.ErrInvalidTransition), "customer completing: %v", err)

	done, err := f.jobs.ReportProgress(ctx, job.ID, "hub-b", JobPatch{Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, entities.JobStatusCompleted, done.Status)

	var statuses []entities.JobStatus
	for _, e := range done.Tracking.Timeline {
		statuses = append(statuses, e.Status)
	}
	assert.Equal(t, []entities.JobStatus{
		entities.JobStatusSubmitted, entities.JobStatusPaid, entities.JobStatusManufacturing,
		entities.JobStatusInProgress, entities.JobStatusCompleted,
	}, statuses)
	assert.InDelta(t, 0.4, f.hubLoad(t, "hub-b"), 1e-9)
}

func TestJobUseCase_UpdateJob_ConflictAfterRetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIJobRepository(ctrl)
	f := newFixture(t, nil)
	uc := NewJobUseCase(repo, f.quotes, f.hubs, f.clock, discardLogger(), WithJobRetryPolicy(RetryPolicy{MaxAttempts: 3}))

	stored := entities.NewSubmittedJob("job-1", "cust-1", "hub-b", entities.Quote{TotalPrice: 10}, testNow)
	stored.Version = 4
	carrier := "DHL"

	repo.EXPECT().GetByID(gomock.Any(), "job-1").Return(stored, nil).Times(3)
	repo.EXPECT().Update(gomock.Any(), gomock.Any(), int64(4)).Return(entities.Job{}, errs.Markf(errs.ErrConflict, "moved")).Times(3)

	_, err := uc.ReportProgress(context.Background(), "job-1", "hub-b", JobPatch{Carrier: &carrier})
	assert.True(t, errs.Is(err, errs.ErrConflict), "got %v", err)
}

func TestJobUseCase_SubmitJob_CreateFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIJobRepository(ctrl)
	f := newFixture(t, nil)
	uc := NewJobUseCase(repo, f.quotes, f.hubs, f.clock, discardLogger())

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Job{}, errs.Markf(errs.ErrDataUnavailable, "dynamodb down"))

	_, err := uc.SubmitJob(context.Background(), "cust-1", bracketRequest(), "hub-b")
	assert.True(t, errs.Is(err, errs.ErrDataUnavailable))
	assert.Equal(t, 0.4, f.hubLoad(t, "hub-b"))
}
