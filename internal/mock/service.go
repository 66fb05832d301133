package mock

import (
	"context"

	"github.com/m-zajac/busfactor/internal/app"
)

// Service mocks app.Service
type Service struct {
	BusFactorsFunc func(ctx context.Context, language string, projectsCount int) ([]app.BusFactorResult, error)
}

// BusFactors returns bus factor results for top repositories of given language
func (m *Service) BusFactors(ctx context.Context, language string, projectsCount int) ([]app.BusFactorResult, error) {
	if m.BusFactorsFunc != nil {
		return m.BusFactorsFunc(ctx, language, projectsCount)
	}

	return []app.BusFactorResult{}, nil
}
