package service

import (
	"context"
	"fmt"

	"github.com/sakif/applyhelp/internal/repository"
)

// HomeService backs the landing page counters.
type HomeService struct {
	catalog   repository.CatalogRepository
	resources repository.ResourceRepository
}

func NewHomeService(catalog repository.CatalogRepository, resources repository.ResourceRepository) *HomeService {
	return &HomeService{catalog: catalog, resources: resources}
}

type HomeStats struct {
	Guides       int `json:"totalGuides"`
	Universities int `json:"totalUniversities"`
	Countries    int `json:"totalCountries"`
}

// Stats counts published guides, active universities and active countries.
func (s *HomeService) Stats(ctx context.Context) (*HomeStats, error) {
	var (
		h   HomeStats
		err error
	)
	if h.Guides, err = s.resources.CountGuides(ctx); err != nil {
		return nil, fmt.Errorf("home stats: %w", err)
	}
	if h.Universities, err = s.catalog.CountUniversities(ctx); err != nil {
		return nil, fmt.Errorf("home stats: %w", err)
	}
	if h.Countries, err = s.catalog.CountCountries(ctx); err != nil {
		return nil, fmt.Errorf("home stats: %w", err)
	}
	return &h, nil
}
