package memory

import (
	"context"
	"sort"
	"sync"

	"qutlas/internal/domain/entities"
	"qutlas/internal/usecase/interfaces"
	"qutlas/pkg/clock"
	"qutlas/pkg/errs"
)

type HubRepository struct {
	mu    sync.RWMutex
	hubs  map[string]entities.Hub
	clock clock.Clock
}

var _ interfaces.IHubRepository = (*HubRepository)(nil)

func NewHubRepository(c clock.Clock, seed ...entities.Hub) *HubRepository {
	if c == nil {
		c = clock.NewRealClock()
	}
	r := &HubRepository{hubs: make(map[string]entities.Hub), clock: c}
	for _, h := range seed {
		h.Version = 1
		r.hubs[h.ID] = cloneHub(h)
	}
	return r
}

func (r *HubRepository) List(ctx context.Context) ([]entities.Hub, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.Hub, 0, len(r.hubs))
	for _, h := range r.hubs {
		out = append(out, cloneHub(h))
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out, nil
}

func (r *HubRepository) GetByID(ctx context.Context, id string) (entities.Hub, error) {
	if err := ctx.Err(); err != nil {
		return entities.Hub{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.hubs[id]
	if !ok {
		return entities.Hub{}, nil
	}
	return cloneHub(h), nil
}

func (r *HubRepository) Upsert(ctx context.Context, hub entities.Hub) (entities.Hub, error) {
	if err := ctx.Err(); err != nil {
		return entities.Hub{}, err
	}
	if hub.ID == "" {
		return entities.Hub{}, errs.Markf(errs.ErrInvalidInput, "hub id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	hub.Version = r.hubs[hub.ID].Version + 1
	hub.UpdatedAt = r.clock.Now().UTC()
	r.hubs[hub.ID] = cloneHub(hub)
	return cloneHub(hub), nil
}

func (r *HubRepository) UpdateLoad(ctx context.Context, id string, load float64, expectedVersion int64) (entities.Hub, error) {
	if err := ctx.Err(); err != nil {
		return entities.Hub{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.hubs[id]
	if !ok {
		return entities.Hub{}, errs.Markf(errs.ErrNotFound, "hub %s not found", id)
	}
	if h.Version != expectedVersion {
		return entities.Hub{}, errs.Markf(errs.ErrConflict, "hub %s at version %d, expected %d", id, h.Version, expectedVersion)
	}
	h.CurrentLoad = load
	h.Version++
	h.UpdatedAt = r.clock.Now().UTC()
	r.hubs[id] = h
	return cloneHub(h), nil
}

func cloneHub(h entities.Hub) entities.Hub {
	out := h
	out.Processes = append([]string(nil), h.Processes...)
	out.Materials = append([]string(nil), h.Materials...)
	if h.Location != nil {
		loc := *h.Location
		out.Location = &loc
	}
	return out
}
