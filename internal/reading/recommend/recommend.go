// Package recommend biases the related-content query by the reader's recent
// view history.
package recommend

import (
	"context"

	"github.com/vietddude/readflow/internal/core/domain"
	"github.com/vietddude/readflow/internal/fetch"
	"github.com/vietddude/readflow/internal/reading/history"
)

// DefaultBasedOnLimit bounds how many recent views parameterize the query.
const DefaultBasedOnLimit = 10

// RecommendationFetcher is the external recommendations endpoint.
type RecommendationFetcher interface {
	Recommendations(ctx context.Context, basedOn []string, limit int) ([]domain.Post, error)
}

// Recommender combines the history store with the recommendations endpoint.
type Recommender struct {
	fetcher      RecommendationFetcher
	store        *history.Store
	retry        fetch.Config
	basedOnLimit int
}

func New(fetcher RecommendationFetcher, store *history.Store, retry fetch.Config) *Recommender {
	return &Recommender{
		fetcher:      fetcher,
		store:        store,
		retry:        retry,
		basedOnLimit: DefaultBasedOnLimit,
	}
}

// Related fetches up to limit posts related to the most recently viewed
// content. With an empty history the endpoint falls back to generic
// recommendations server-side.
func (r *Recommender) Related(ctx context.Context, limit int) ([]domain.Post, error) {
	basedOn := r.store.ViewedIDs(r.basedOnLimit)
	return fetch.Do(ctx, r.retry, "recommend.related",
		func(ctx context.Context) ([]domain.Post, error) {
			return r.fetcher.Recommendations(ctx, basedOn, limit)
		})
}
