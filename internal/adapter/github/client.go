package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/m-zajac/busfactor/internal/app"
	"github.com/pkg/errors"
)

// HTTPDoer can execute http request.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Search api caps results at 1000 items no matter how far you page.
const maxSearchResults = 1000

// maxContributorPages bounds a single contributors walk.
const maxContributorPages = 100

// Client fetches repositories and contributor counts from github rest api.
// This struct is an adapter for app.GithubClient.
type Client struct {
	doer      HTTPDoer
	address   string
	authToken string

	limits *rateLimitState

	pageSize             int
	acceptWaitTime       time.Duration
	numRetriesOnAccepted int

	pagerMaxRetries  int
	pagerBackoffBase time.Duration
	pagerBackoffCap  time.Duration

	searchResponseMaxSize       int
	contributorsResponseMaxSize int
}

var _ app.GithubClient = &Client{}

// NewClient creates new github client.
// authToken is optional.
func NewClient(doer HTTPDoer, address string, authToken string) *Client {
	c := Client{
		doer:      doer,
		address:   address,
		authToken: authToken,
		limits:    &rateLimitState{},

		pageSize:             100,
		acceptWaitTime:       time.Second,
		numRetriesOnAccepted: 10,

		pagerMaxRetries:  3,
		pagerBackoffBase: 200 * time.Millisecond,
		pagerBackoffCap:  5 * time.Second,

		searchResponseMaxSize:       1024 * 1024 * 10,
		contributorsResponseMaxSize: 1024 * 1024 * 30,
	}

	return &c
}

func (c *Client) newPager(want int, maxPages int) pager {
	p := newPager(c.pageSize, want, maxPages)
	p.maxRetries = c.pagerMaxRetries
	p.backoffBase = c.pagerBackoffBase
	p.backoffCap = c.pagerBackoffCap

	return p
}

// ProjectsByLanguage returns top repositories by given programming language
// name, ordered by stars descending with "owner/name" id as the tiebreak.
//
// The listing is all-or-nothing: any page failing past its retry budget
// fails the whole call.
func (c *Client) ProjectsByLanguage(ctx context.Context, language string, count int) ([]app.Repository, error) {
	if language == "" {
		return nil, app.InvalidRequestError("language cannot be empty")
	}
	if count < 1 || count > maxSearchResults {
		return nil, app.InvalidRequestError(fmt.Sprintf("count must be in range <1..%d>", maxSearchResults))
	}

	var repos []app.Repository
	maxPages := (count+c.pageSize-1)/c.pageSize + 1
	p := c.newPager(count, maxPages)
	err := p.walk(ctx, func(page int) (int, error) {
		u, err := c.searchURL(language, page)
		if err != nil {
			return 0, err
		}

		body, _, err := c.get(ctx, u, c.searchResponseMaxSize)
		if err != nil {
			return 0, err
		}

		var resp searchResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return 0, app.MalformedError(fmt.Sprintf("unmarshalling search response: %v", err))
		}
		items, err := resp.ToRepositories()
		if err != nil {
			return 0, err
		}
		repos = append(repos, items...)

		return len(resp.Items), nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "walking search pages")
	}

	sort.Slice(repos, func(i, j int) bool {
		if repos[i].Stars != repos[j].Stars {
			return repos[i].Stars > repos[j].Stars
		}
		return repos[i].ID() < repos[j].ID()
	})
	if len(repos) > count {
		repos = repos[:count]
	}

	return repos, nil
}

// ContributorsByRepository returns contributors with their commit counts for
// given github repository params.
//
// Github returns status 202 while it computes the stats. On 202 the whole
// fetch is retried after a short wait, up to numRetriesOnAccepted attempts.
// A repository with no contributors is a valid, empty result.
func (c *Client) ContributorsByRepository(ctx context.Context, owner string, name string) ([]app.Contributor, error) {
	if owner == "" {
		return nil, app.InvalidRequestError("repository's owner login cannot be empty")
	}
	if name == "" {
		return nil, app.InvalidRequestError("repository's name cannot be empty")
	}

	for attempt := 1; ; attempt++ {
		contributors, deferred, err := c.contributorsOnce(ctx, owner, name)
		if err != nil {
			return nil, err
		}
		if !deferred {
			return contributors, nil
		}

		if attempt >= c.numRetriesOnAccepted {
			return nil, app.StatsUnavailableError(
				fmt.Sprintf("%s/%s contributor stats still computing after %d attempts", owner, name, attempt),
			)
		}
		if err := sleepCtx(ctx, c.acceptWaitTime); err != nil {
			return nil, err
		}
	}
}

// contributorsOnce walks all contributor pages.
// deferred is true when the api responded with 202 (stats still computing).
func (c *Client) contributorsOnce(ctx context.Context, owner string, name string) (contributors []app.Contributor, deferred bool, err error) {
	p := c.newPager(0, maxContributorPages)
	err = p.walk(ctx, func(page int) (int, error) {
		u, err := c.contributorsURL(owner, name, page)
		if err != nil {
			return 0, err
		}

		body, code, err := c.get(ctx, u, c.contributorsResponseMaxSize)
		if err != nil {
			return 0, err
		}
		switch code {
		case http.StatusAccepted:
			deferred = true
			return 0, nil
		case http.StatusNoContent:
			// Repository without commits.
			return 0, nil
		}

		var resp contributorsResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return 0, app.MalformedError(fmt.Sprintf("unmarshalling contributors response: %v", err))
		}
		items, err := resp.ToContributors()
		if err != nil {
			return 0, err
		}
		contributors = append(contributors, items...)

		return len(resp), nil
	})
	if err != nil {
		return nil, false, errors.Wrap(err, "walking contributor pages")
	}
	if deferred {
		return nil, true, nil
	}
	if contributors == nil {
		contributors = []app.Contributor{}
	}

	return contributors, false, nil
}

// get performs a single api call.
//
// The response status is classified into the app error taxonomy and rate
// limit headers are consumed on every response, success or failure. When the
// last known quota is exhausted, get waits for the reported reset before
// sending the request. Retrying is the caller's job.
func (c *Client) get(ctx context.Context, u string, maxBytes int) ([]byte, int, error) {
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, errors.Wrap(err, "creating http request")
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "token "+c.authToken)
	}

	if wait := c.limits.waitTime(time.Now()); wait > 0 {
		if err := sleepCtx(ctx, wait); err != nil {
			return nil, 0, err
		}
	}

	resp, err := c.doer.Do(req.WithContext(ctx))
	if err != nil {
		return nil, 0, app.TransientError(fmt.Sprintf("doing http request: %v", err))
	}
	// Always drain body before close to allow connection reuse.
	// See: http://tleyden.github.io/blog/2016/11/21/tuning-the-go-http-client-library-for-load-testing/
	defer func() {
		_, _ = io.CopyN(io.Discard, resp.Body, 1024)
		resp.Body.Close()
	}()

	c.limits.update(resp.Header, time.Now())

	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		if wait, ok := retryAfter(resp.Header, time.Now()); ok {
			return nil, resp.StatusCode, app.RateLimitedError{RetryAfter: wait}
		}
		return nil, resp.StatusCode, app.ClientError{Status: resp.StatusCode}
	case resp.StatusCode == http.StatusNotFound:
		return nil, resp.StatusCode, app.NotFoundError("resource not found: " + u)
	case resp.StatusCode >= 500:
		return nil, resp.StatusCode, app.TransientError(fmt.Sprintf("got http status code: %d", resp.StatusCode))
	case resp.StatusCode >= 400:
		return nil, resp.StatusCode, app.ClientError{Status: resp.StatusCode}
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, int64(maxBytes)))
	if err != nil {
		return nil, resp.StatusCode, app.TransientError(fmt.Sprintf("reading http response body: %v", err))
	}

	return b, resp.StatusCode, nil
}

func (c *Client) searchURL(language string, page int) (string, error) {
	u, err := url.Parse(c.address + "/search/repositories")
	if err != nil {
		return "", errors.Wrap(err, "invalid url")
	}

	v := make(url.Values)
	v.Set("q", "language:"+language)
	v.Set("sort", "stars")
	v.Set("order", "desc")
	v.Set("per_page", strconv.Itoa(c.pageSize))
	v.Set("page", strconv.Itoa(page))
	u.RawQuery = v.Encode()

	return u.String(), nil
}

func (c *Client) contributorsURL(owner string, name string, page int) (string, error) {
	u, err := url.Parse(c.address + fmt.Sprintf("/repos/%s/%s/contributors", owner, name))
	if err != nil {
		return "", errors.Wrap(err, "invalid url")
	}

	v := make(url.Values)
	v.Set("per_page", strconv.Itoa(c.pageSize))
	v.Set("page", strconv.Itoa(page))
	u.RawQuery = v.Encode()

	return u.String(), nil
}
