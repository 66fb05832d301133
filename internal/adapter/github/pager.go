package github

import (
	"context"
	"fmt"
	"time"

	"github.com/m-zajac/busfactor/internal/app"
)

// pager drives a paged endpoint until exhaustion.
//
// Transient failures are retried per page with exponential backoff. A rate
// limited response suspends the walk for the reported duration without
// consuming the retry budget. Every walk is bounded by maxPages, so a
// misbehaving endpoint cannot keep it looping forever.
type pager struct {
	pageSize int
	// want stops the walk once that many items were fetched. 0 means walk
	// until the first short page.
	want     int
	maxPages int

	maxRetries  int
	backoffBase time.Duration
	backoffCap  time.Duration
}

func newPager(pageSize int, want int, maxPages int) pager {
	return pager{
		pageSize: pageSize,
		want:     want,
		maxPages: maxPages,

		maxRetries:  3,
		backoffBase: 200 * time.Millisecond,
		backoffCap:  5 * time.Second,
	}
}

// walk calls fetch with increasing page numbers starting from 1.
// fetch returns the number of items the page contained; the first page
// shorter than pageSize ends the walk. A page failing past its retry budget
// aborts the whole walk: partial sequences are never returned.
func (p pager) walk(ctx context.Context, fetch func(page int) (int, error)) error {
	var total int
	for page := 1; page <= p.maxPages; page++ {
		n, err := p.fetchPage(ctx, page, fetch)
		if err != nil {
			return err
		}

		total += n
		if n < p.pageSize {
			return nil
		}
		if p.want > 0 && total >= p.want {
			return nil
		}
	}

	return app.MalformedError(fmt.Sprintf("page walk did not finish within %d pages", p.maxPages))
}

func (p pager) fetchPage(ctx context.Context, page int, fetch func(page int) (int, error)) (int, error) {
	backoff := p.backoffBase
	var retries int
	for {
		n, err := fetch(page)
		switch {
		case err == nil:
			return n, nil

		case app.IsRateLimitedError(err):
			// Mandatory wait, doesn't count against the retry budget.
			wait, _ := app.RetryAfter(err)
			if err := sleepCtx(ctx, wait); err != nil {
				return 0, err
			}

		case app.IsTransientError(err):
			retries++
			if retries > p.maxRetries {
				return 0, err
			}
			if err := sleepCtx(ctx, backoff); err != nil {
				return 0, err
			}
			backoff *= 2
			if backoff > p.backoffCap {
				backoff = p.backoffCap
			}

		default:
			return 0, err
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
