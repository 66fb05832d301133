package github

import (
	"context"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/m-zajac/busfactor/internal/app"
)

// CachedClient wraps github client with in-memory caching layer.
type CachedClient struct {
	client            app.GithubClient
	projectsCache     *lru.Cache
	contributorsCache *lru.Cache
	ttl               time.Duration
}

// NewCachedClient creates new CachedClient instance.
func NewCachedClient(client app.GithubClient, size int, ttl time.Duration) (*CachedClient, error) {
	if size <= 0 {
		return nil, errors.New("cache size must be greater than 0")
	}
	projectsCache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("creating lru cache for projects: %w", err)
	}
	contributorsCache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("creating lru cache for contributors: %w", err)
	}

	return &CachedClient{
		client:            client,
		projectsCache:     projectsCache,
		contributorsCache: contributorsCache,
		ttl:               ttl,
	}, nil
}

// ProjectsByLanguage returns repositories by given programming language name.
func (c *CachedClient) ProjectsByLanguage(ctx context.Context, language string, count int) ([]app.Repository, error) {
	key := c.projectsCacheKey(language)
	val, ok := c.projectsCache.Get(key)
	if ok {
		entry := val.(projectsCacheEntry)
		if entry.count >= count && entry.created.Add(c.ttl).After(time.Now()) {
			repos := entry.data
			if len(repos) > count {
				repos = repos[:count]
			}
			return repos, nil
		}
	}

	repos, err := c.client.ProjectsByLanguage(ctx, language, count)
	if err != nil {
		return repos, err
	}

	entry := projectsCacheEntry{
		created: time.Now(),
		count:   count,
		data:    repos,
	}
	c.projectsCache.Add(key, entry)

	return repos, nil
}

// ContributorsByRepository returns contributors by given github repository params.
func (c *CachedClient) ContributorsByRepository(ctx context.Context, owner string, name string) ([]app.Contributor, error) {
	key := c.contributorsCacheKey(owner, name)
	val, ok := c.contributorsCache.Get(key)
	if ok {
		entry := val.(contributorsCacheEntry)
		if entry.created.Add(c.ttl).After(time.Now()) {
			return entry.data, nil
		}
	}

	contributors, err := c.client.ContributorsByRepository(ctx, owner, name)
	if err != nil {
		return contributors, err
	}

	entry := contributorsCacheEntry{
		created: time.Now(),
		data:    contributors,
	}
	c.contributorsCache.Add(key, entry)

	return contributors, nil
}

func (c *CachedClient) projectsCacheKey(language string) string {
	return language
}

func (c *CachedClient) contributorsCacheKey(owner string, name string) string {
	return owner + "/" + name
}

type projectsCacheEntry struct {
	created time.Time
	count   int
	data    []app.Repository
}

type contributorsCacheEntry struct {
	created time.Time
	data    []app.Contributor
}
