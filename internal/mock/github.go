package mock

import (
	"context"

	"github.com/m-zajac/busfactor/internal/app"
)

// GithubClient mocks app.GithubClient
type GithubClient struct {
	ProjectsByLanguageFunc       func(ctx context.Context, language string, count int) ([]app.Repository, error)
	ContributorsByRepositoryFunc func(ctx context.Context, owner string, name string) ([]app.Contributor, error)
}

// ProjectsByLanguage returns repositories by given programming language name
func (m *GithubClient) ProjectsByLanguage(ctx context.Context, language string, count int) ([]app.Repository, error) {
	if m.ProjectsByLanguageFunc != nil {
		return m.ProjectsByLanguageFunc(ctx, language, count)
	}

	return []app.Repository{}, nil
}

// ContributorsByRepository returns contributors by given github repository params
func (m *GithubClient) ContributorsByRepository(ctx context.Context, owner string, name string) ([]app.Contributor, error) {
	if m.ContributorsByRepositoryFunc != nil {
		return m.ContributorsByRepositoryFunc(ctx, owner, name)
	}

	return []app.Contributor{}, nil
}
