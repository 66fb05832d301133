package app

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// GithubClient returns details about github repositories and their contributors.
type GithubClient interface {
	ProjectsByLanguage(ctx context.Context, language string, count int) ([]Repository, error)
	ContributorsByRepository(ctx context.Context, owner string, name string) ([]Contributor, error)
}

const defaultConcurrency = 8

// Service is main apps entry point. Provides all app functionality.
type Service struct {
	githubClient GithubClient
	concurrency  int
	l            logrus.FieldLogger

	onProgress func(done int, total int)
}

// NewService creates new Service instance.
// concurrency limits the number of contributor fetches in flight at any time.
func NewService(githubClient GithubClient, concurrency int, l logrus.FieldLogger) *Service {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	return &Service{
		githubClient: githubClient,
		concurrency:  concurrency,
		l:            l,
	}
}

// OnProgress registers a callback invoked after each repository fetch
// completes. Callbacks may run concurrently with each other.
// Must be called before the first BusFactors call.
func (s *Service) OnProgress(f func(done int, total int)) {
	s.onProgress = f
}

// BusFactors computes the bus factor for the top `projectsCount` repositories
// (by stars) for the given language.
//
// The result list is aligned with the repository listing: result[i] always
// corresponds to the i-th listed repository, no matter in which order the
// fetches finish. A failed contributor fetch is recorded in that
// repository's slot and never affects the other repositories.
//
// A failure to list the repositories is fatal and ends the whole run.
func (s *Service) BusFactors(ctx context.Context, language string, projectsCount int) ([]BusFactorResult, error) {
	if language == "" {
		return nil, InvalidRequestError("language cannot be empty")
	}
	if projectsCount <= 0 {
		return nil, InvalidRequestError("projects count must be greater than zero")
	}

	repos, err := s.githubClient.ProjectsByLanguage(ctx, language, projectsCount)
	if err != nil {
		return nil, errors.Wrap(err, "retrieving projects")
	}
	s.l.Infof("computing bus factor for %d %s repositories", len(repos), language)

	results := make([]BusFactorResult, len(repos))

	workers := s.concurrency
	if workers > len(repos) {
		workers = len(repos)
	}

	jobs := make(chan int)
	var done int32
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = s.repositoryBusFactor(ctx, repos[i])

				d := int(atomic.AddInt32(&done, 1))
				s.l.Debugf("progress: %d/%d", d, len(repos))
				if s.onProgress != nil {
					s.onProgress(d, len(repos))
				}
			}
		}()
	}

	for i := range repos {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results, nil
}

func (s *Service) repositoryBusFactor(ctx context.Context, repo Repository) BusFactorResult {
	contributors, err := s.githubClient.ContributorsByRepository(ctx, repo.OwnerLogin, repo.Name)
	if err != nil {
		s.l.Warnf("fetching %s contributors failed: %v", repo.ID(), err)
		return BusFactorResult{
			Repository: repo,
			Err:        errors.Wrapf(err, "retrieving %s contributors", repo.ID()),
		}
	}

	set := ContributionSet{
		Repository:   repo,
		Contributors: contributors,
	}

	return BusFactorResult{
		Repository: repo,
		BusFactor:  BusFactor(set),
	}
}
