package memory

import (
	"context"
	"sync"

	"github.com/sanosuguru/carnival-corner/internal/domain/vendor"
)

// VendorRepository はベンダー申請台帳のインメモリ実装
type VendorRepository struct {
	mu           sync.RWMutex
	applications []*vendor.Application
	lastID       int
}

func NewVendorRepository() *VendorRepository {
	return &VendorRepository{}
}

func (r *VendorRepository) Append(ctx context.Context, a *vendor.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	a.ID = r.lastID
	c := *a
	r.applications = append(r.applications, &c)
	return nil
}

func (r *VendorRepository) GetByID(ctx context.Context, id int) (*vendor.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.applications {
		if a.ID == id {
			c := *a
			return &c, nil
		}
	}
	return nil, vendor.ErrApplicationNotFound
}

func (r *VendorRepository) List(ctx context.Context) ([]*vendor.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*vendor.Application, len(r.applications))
	for i, a := range r.applications {
		c := *a
		out[i] = &c
	}
	return out, nil
}

func (r *VendorRepository) Update(ctx context.Context, id int, fn func(a *vendor.Application) error) (*vendor.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, a := range r.applications {
		if a.ID != id {
			continue
		}
		working := *a
		if err := fn(&working); err != nil {
			return nil, err
		}
		working.ID = id
		r.applications[i] = &working
		c := working
		return &c, nil
	}
	return nil, vendor.ErrApplicationNotFound
}

func (r *VendorRepository) Replace(ctx context.Context, applications []*vendor.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.applications = make([]*vendor.Application, 0, len(applications))
	for _, a := range applications {
		c := *a
		r.applications = append(r.applications, &c)
		r.lastID = max(r.lastID, a.ID)
	}
	return nil
}
