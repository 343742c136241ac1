package cache_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/abhitrip/trip-catalog/internal/domain"
)

type gatewayFunc func(ctx context.Context) ([]domain.Trip, error)

func (f gatewayFunc) FetchAll(ctx context.Context) ([]domain.Trip, error) { return f(ctx) }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
