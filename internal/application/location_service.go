package application

import (
	"context"

	"github.com/sanosuguru/carnival-corner/internal/domain/location"
)

type LocationService struct {
	locationRepo location.Repository
}

func NewLocationService(lr location.Repository) *LocationService {
	return &LocationService{locationRepo: lr}
}

func (s *LocationService) ListLocations(ctx context.Context) ([]*location.Location, error) {
	return s.locationRepo.List(ctx)
}

// AreasOf は都市のエリア一覧を返す
func (s *LocationService) AreasOf(ctx context.Context, city string) ([]string, error) {
	l, err := s.locationRepo.GetByCity(ctx, city)
	if err != nil {
		return nil, err
	}
	return l.Areas, nil
}
