package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/sanosuguru/carnival-corner/internal/domain/location"
)

// LocationRepository は都市・エリア一覧のインメモリ実装
type LocationRepository struct {
	mu        sync.RWMutex
	locations []*location.Location
}

func NewLocationRepository() *LocationRepository {
	return &LocationRepository{}
}

func (r *LocationRepository) List(ctx context.Context) ([]*location.Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*location.Location, len(r.locations))
	for i, l := range r.locations {
		out[i] = cloneLocation(l)
	}
	return out, nil
}

func (r *LocationRepository) GetByCity(ctx context.Context, city string) (*location.Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, l := range r.locations {
		if l.City == city {
			return cloneLocation(l), nil
		}
	}
	return nil, location.ErrCityNotFound
}

func (r *LocationRepository) Replace(ctx context.Context, locations []*location.Location) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.locations = make([]*location.Location, len(locations))
	for i, l := range locations {
		r.locations[i] = cloneLocation(l)
	}
	return nil
}

func cloneLocation(l *location.Location) *location.Location {
	return &location.Location{City: l.City, Areas: slices.Clone(l.Areas)}
}
