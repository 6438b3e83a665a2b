// Package listing loads the remote price board and maps it onto products.
package listing

import (
	"context"

	"krisik-bazar/internal/model"
	"krisik-bazar/internal/notify"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// PriceSource returns raw price records.
type PriceSource interface {
	FetchPrices(ctx context.Context) ([]model.PriceRecord, error)
}

// Fetcher turns price records into products, substituting the built-in list
// when the source fails.
type Fetcher struct {
	source   PriceSource
	notifier notify.Notifier
	group    singleflight.Group
	logger   zerolog.Logger
}

// NewFetcher creates a fetcher. Failures are reported through notifier.
func NewFetcher(source PriceSource, notifier notify.Notifier, logger zerolog.Logger) *Fetcher {
	return &Fetcher{
		source:   source,
		notifier: notifier,
		logger:   logger.With().Str("component", "listing-fetcher").Logger(),
	}
}

// FetchListings returns the remote products, or the fallback list if the
// fetch fails. There is no retry. Concurrent callers share one request and one
// failure notification.
func (f *Fetcher) FetchListings(ctx context.Context) []model.Product {
	v, _, _ := f.group.Do("listings", func() (any, error) {
		return f.fetch(ctx), nil
	})
	products := v.([]model.Product)
	return append([]model.Product(nil), products...)
}

func (f *Fetcher) fetch(ctx context.Context) []model.Product {
	records, err := f.source.FetchPrices(ctx)
	if err != nil {
		f.logger.Error().Err(err).Msg("failed to load products, using fallback listing")
		fetchTotal.WithLabelValues("fallback").Inc()
		f.notifier.Notify(model.ErrListingUnavailable.Message, notify.Error)
		return Fallback()
	}

	products := make([]model.Product, 0, len(records))
	for _, r := range records {
		products = append(products, r.Product())
	}

	fetchTotal.WithLabelValues("ok").Inc()
	f.logger.Debug().Int("count", len(products)).Msg("loaded remote products")

	return products
}
