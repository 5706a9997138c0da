package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"qutlas/internal/adapter/persistence/memory"
	"qutlas/internal/domain/entities"
	"qutlas/internal/domain/pricing"
	"qutlas/internal/usecase/interfaces"
	"qutlas/pkg/clock"
	"qutlas/pkg/errs"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fastRetry() RetryPolicy {
	return RetryPolicy{MaxAttempts: 5, Backoff: time.Millisecond}
}

type staticCatalog map[string]entities.PartTemplate

var _ interfaces.IPartCatalog = staticCatalog(nil)

func (c staticCatalog) GetTemplate(_ context.Context, id string) (entities.PartTemplate, error) {
	t, ok := c[id]
	if !ok {
		return entities.PartTemplate{}, errs.Markf(errs.ErrNotFound, "part template %s not found", id)
	}
	return t, nil
}

func (c staticCatalog) ListTemplates(context.Context) ([]entities.PartTemplate, error) {
	out := make([]entities.PartTemplate, 0, len(c))
	for _, t := range c {
		out = append(out, t)
	}
	return out, nil
}

func testCatalog() staticCatalog {
	return staticCatalog{
		"bracket-l": {
			ID: "bracket-l", Name: "L Bracket", Process: "CNC Milling",
			BasePrice: 32, BaseLeadTimeDays: 5, DefaultMaterial: "Aluminum 6061-T6",
			Materials: map[string]float64{"Aluminum 6061-T6": 1.0, "Stainless Steel 304": 1.4},
		},
		"enclosure-box": {
			ID: "enclosure-box", Name: "Enclosure Box", Process: "Injection Molding",
			BasePrice: 4.5, BaseLeadTimeDays: 10, DefaultMaterial: "ABS Plastic",
			Materials: map[string]float64{"ABS Plastic": 1.0},
		},
	}
}

func testHubs() []entities.Hub {
	return []entities.Hub{
		{ID: "hub-a", Name: "Hub A", Processes: []string{"CNC Milling", "CNC Turning"}, Materials: []string{"Aluminum 6061-T6", "Stainless Steel 304"},
			CurrentLoad: 0.6, QualityRating: 4.9, BasePrice: 30, AvgLeadTimeDays: 5, Certified: true},
		{ID: "hub-b", Name: "Hub B", Processes: []string{"CNC Milling"}, Materials: []string{"Aluminum 6061-T6"},
			CurrentLoad: 0.4, QualityRating: 4.7, BasePrice: 28, AvgLeadTimeDays: 6, Certified: true},
		{ID: "hub-c", Name: "Hub C", Processes: []string{"Injection Molding"}, Materials: []string{"ABS Plastic"},
			CurrentLoad: 0.2, QualityRating: 4.2, BasePrice: 3, AvgLeadTimeDays: 12, Certified: true},
		{ID: "hub-d", Name: "Hub D", Processes: []string{"CNC Milling"}, Materials: []string{"Aluminum 6061-T6"},
			CurrentLoad: 0, QualityRating: 5, BasePrice: 10, AvgLeadTimeDays: 2, Certified: false},
	}
}

type fixture struct {
	clock      *clock.MockClock
	jobsRepo   *memory.JobRepository
	hubsRepo   *memory.HubRepository
	attempts   *memory.PaymentAttemptRepository
	quoteStore *memory.QuoteStore
	quotes     *QuoteUseCase
	hubs       *HubUseCase
	jobs       *JobUseCase
	payments   *PaymentReconcilerUseCase
}

func newFixture(t *testing.T, gateway interfaces.IPaymentGateway, opts ...JobUseCaseOption) *fixture {
	t.Helper()
	c := clock.NewMockClock(testNow)
	f := &fixture{
		clock:      c,
		jobsRepo:   memory.NewJobRepository(),
		hubsRepo:   memory.NewHubRepository(c, testHubs()...),
		attempts:   memory.NewPaymentAttemptRepository(),
		quoteStore: memory.NewQuoteStore(c),
	}
	logger := discardLogger()
	f.quotes = NewQuoteUseCase(testCatalog(), f.quoteStore, pricing.NewEngine(c), c, logger)
	f.hubs = NewHubUseCase(f.hubsRepo, testCatalog(), nil, fastRetry(), logger)
	f.jobs = NewJobUseCase(f.jobsRepo, f.quotes, f.hubs, c, logger, append([]JobUseCaseOption{WithJobRetryPolicy(fastRetry())}, opts...)...)
	f.payments = NewPaymentReconcilerUseCase(f.jobsRepo, f.attempts, gateway, c, fastRetry(), logger)
	return f
}

func bracketRequest() entities.PartRequest {
	return entities.PartRequest{TemplateID: "bracket-l", Quantity: 10, Material: "Aluminum 6061-T6", ManufacturabilityScore: 87}
}

// submit creates a job for cust-1 on hub-b and registers a payment attempt
// for reference ref so events can be routed to it.
func (f *fixture) submit(t *testing.T, ref string) entities.Job {
	t.Helper()
	job, err := f.jobs.SubmitJob(context.Background(), "cust-1", bracketRequest(), "hub-b")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if ref != "" {
		if _, err := f.attempts.Create(context.Background(), entities.PaymentAttempt{
			Reference: ref, JobID: job.ID, CustomerID: job.CustomerID,
			Amount: job.Quote.TotalPrice, Currency: job.Quote.Currency, CreatedAt: testNow,
		}); err != nil {
			t.Fatalf("attempt: %v", err)
		}
	}
	return job
}

func (f *fixture) hubLoad(t *testing.T, id string) float64 {
	t.Helper()
	h, err := f.hubsRepo.GetByID(context.Background(), id)
	if err != nil || h.ID == "" {
		t.Fatalf("hub %s: %v", id, err)
	}
	return h.CurrentLoad
}
