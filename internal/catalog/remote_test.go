package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhitrip/trip-catalog/internal/catalog"
	"github.com/abhitrip/trip-catalog/internal/domain"
)

type tripListerFunc func(ctx context.Context) ([]domain.Trip, error)

func (f tripListerFunc) List(ctx context.Context) ([]domain.Trip, error) { return f(ctx) }

type testimonialListerFunc func(ctx context.Context) ([]domain.Testimonial, error)

func (f testimonialListerFunc) List(ctx context.Context) ([]domain.Testimonial, error) {
	return f(ctx)
}

func TestRemoteGateway_NoStore(t *testing.T) {
	g := catalog.NewRemoteGateway(nil, nil, discardLogger())

	_, err := g.FetchAll(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnavailable)

	_, err = g.FetchTestimonials(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestRemoteGateway_StoreError_BecomesUnavailable(t *testing.T) {
	g := catalog.NewRemoteGateway(tripListerFunc(func(context.Context) ([]domain.Trip, error) {
		return nil, errors.New("connection refused")
	}), nil, discardLogger())

	_, err := g.FetchAll(context.Background())

	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.ErrorContains(t, err, "connection refused")
}

func TestRemoteGateway_Panic_BecomesUnavailable(t *testing.T) {
	g := catalog.NewRemoteGateway(tripListerFunc(func(context.Context) ([]domain.Trip, error) {
		panic("driver bug")
	}), nil, discardLogger())

	var err error
	require.NotPanics(t, func() { _, err = g.FetchAll(context.Background()) })
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestRemoteGateway_ExpiredContext_BecomesUnavailable(t *testing.T) {
	g := catalog.NewRemoteGateway(tripListerFunc(func(context.Context) ([]domain.Trip, error) {
		return []domain.Trip{{ID: "1", Slug: "late"}}, nil
	}), nil, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.FetchAll(ctx)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestRemoteGateway_Success(t *testing.T) {
	want := []domain.Trip{{ID: "1", Slug: "hampi"}}
	g := catalog.NewRemoteGateway(tripListerFunc(func(context.Context) ([]domain.Trip, error) {
		return want, nil
	}), testimonialListerFunc(func(context.Context) ([]domain.Testimonial, error) {
		return []domain.Testimonial{{ID: "t1"}}, nil
	}), discardLogger())

	got, err := g.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	list, err := g.FetchTestimonials(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
