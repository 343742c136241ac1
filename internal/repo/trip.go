// Package repo contains all database access logic for the trip catalog.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/abhitrip/trip-catalog/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// TripRepo defines the persistence operations for trips.
// The catalog gateway and the admin service depend on this interface, not the
// concrete Postgres implementation.
type TripRepo interface {
	// List returns all trips ordered by created_at ascending, so newly added
	// trips appear after the established ones.
	List(ctx context.Context) ([]domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists or the ID is
	// not a UUID.
	GetByID(ctx context.Context, id string) (domain.Trip, error)

	// GetBySlug retrieves a single trip by slug.
	// Returns domain.ErrNotFound if no trip has that slug.
	GetBySlug(ctx context.Context, slug string) (domain.Trip, error)

	// Create inserts a new trip and returns the persisted record (with DB-generated
	// id, created_at, and updated_at populated).
	// Returns domain.ErrDuplicateSlug if the slug is taken.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Update overwrites the mutable fields of an existing trip, refreshes
	// updated_at and returns the updated record.
	// Returns domain.ErrNotFound or domain.ErrDuplicateSlug.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `
	id, slug, title, description, detailed_description, category, difficulty,
	price_minor, currency, original_price_minor, location, duration, group_size,
	pickup_points, rating, reviews, highlights, included, excluded, things_to_carry,
	faqs, itinerary, cancellation_policy, is_featured, image, gallery,
	created_at, updated_at`

// List returns every trip, oldest first.
func (r *pgTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips ORDER BY created_at, slug`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: rows: %w", err)
	}
	return trips, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", domain.ErrNotFound)
	}

	q := `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`
	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": uid}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// GetBySlug retrieves a trip by its unique slug.
func (r *pgTripRepo) GetBySlug(ctx context.Context, slug string) (domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips WHERE slug = @slug`
	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"slug": slug}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetBySlug: %w", err)
	}
	return result, nil
}

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	q := `
		INSERT INTO trips (
			slug, title, description, detailed_description, category, difficulty,
			price_minor, currency, original_price_minor, location, duration, group_size,
			pickup_points, rating, reviews, highlights, included, excluded, things_to_carry,
			faqs, itinerary, cancellation_policy, is_featured, image, gallery)
		VALUES (
			@slug, @title, @description, @detailed_description, @category, @difficulty,
			@price_minor, @currency, @original_price_minor, @location, @duration, @group_size,
			@pickup_points, @rating, @reviews, @highlights, @included, @excluded, @things_to_carry,
			@faqs, @itinerary, @cancellation_policy, @is_featured, @image, @gallery)
		RETURNING ` + tripColumns

	args, err := tripArgs(trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", mapWriteError(err))
	}
	return result, nil
}

// Update overwrites the mutable fields of a trip and returns the updated record.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	uid, err := uuid.Parse(trip.ID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", domain.ErrNotFound)
	}

	q := `
		UPDATE trips
		SET slug                 = @slug,
		    title                = @title,
		    description          = @description,
		    detailed_description = @detailed_description,
		    category             = @category,
		    difficulty           = @difficulty,
		    price_minor          = @price_minor,
		    currency             = @currency,
		    original_price_minor = @original_price_minor,
		    location             = @location,
		    duration             = @duration,
		    group_size           = @group_size,
		    pickup_points        = @pickup_points,
		    rating               = @rating,
		    reviews              = @reviews,
		    highlights           = @highlights,
		    included             = @included,
		    excluded             = @excluded,
		    things_to_carry      = @things_to_carry,
		    faqs                 = @faqs,
		    itinerary            = @itinerary,
		    cancellation_policy  = @cancellation_policy,
		    is_featured          = @is_featured,
		    image                = @image,
		    gallery              = @gallery,
		    updated_at           = now()
		WHERE id = @id
		RETURNING ` + tripColumns

	args, err := tripArgs(trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	args["id"] = uid

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", mapWriteError(err))
	}
	return result, nil
}

// Delete removes a trip by primary key. There is no soft delete.
func (r *pgTripRepo) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM trips WHERE id = @id`, pgx.NamedArgs{"id": uid})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// tripArgs maps a domain.Trip onto the named query parameters shared by
// Create and Update. Structured lists are encoded as JSONB; string lists are
// never NULL.
func tripArgs(t domain.Trip) (pgx.NamedArgs, error) {
	pickups, err := json.Marshal(nonNil(t.PickupPoints))
	if err != nil {
		return nil, fmt.Errorf("encode pickup_points: %w", err)
	}
	faqs, err := json.Marshal(nonNil(t.FAQs))
	if err != nil {
		return nil, fmt.Errorf("encode faqs: %w", err)
	}
	itinerary, err := json.Marshal(nonNil(t.Itinerary))
	if err != nil {
		return nil, fmt.Errorf("encode itinerary: %w", err)
	}

	currency := t.Price.Currency
	if currency == "" {
		currency = domain.CurrencyINR
	}
	var originalMinor *int64
	if t.OriginalPrice != nil {
		v := t.OriginalPrice.AmountMinor
		originalMinor = &v // nil becomes NULL
	}

	return pgx.NamedArgs{
		"slug":                 t.Slug,
		"title":                t.Title,
		"description":          t.Description,
		"detailed_description": t.DetailedDescription,
		"category":             string(t.Category),
		"difficulty":           string(t.Difficulty),
		"price_minor":          t.Price.AmountMinor,
		"currency":             string(currency),
		"original_price_minor": originalMinor,
		"location":             t.Location,
		"duration":             t.Duration,
		"group_size":           t.GroupSize,
		"pickup_points":        string(pickups),
		"rating":               t.Rating,
		"reviews":              t.Reviews,
		"highlights":           nonNil(t.Highlights),
		"included":             nonNil(t.Included),
		"excluded":             nonNil(t.Excluded),
		"things_to_carry":      nonNil(t.ThingsToCarry),
		"faqs":                 string(faqs),
		"itinerary":            string(itinerary),
		"cancellation_policy":  t.CancellationPolicy,
		"is_featured":          t.IsFeatured,
		"image":                t.Image,
		"gallery":              nonNil(t.Gallery),
	}, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scan helpers to
// be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
// JSONB columns are decoded through the domain types, so pickup points stored
// in either legacy shape come out normalised.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t             domain.Trip
		id            pgtype.UUID
		category      string
		difficulty    string
		currency      string
		originalMinor *int64
		pickups       []byte
		faqs          []byte
		itinerary     []byte
	)

	err := s.Scan(
		&id, &t.Slug, &t.Title, &t.Description, &t.DetailedDescription, &category, &difficulty,
		&t.Price.AmountMinor, &currency, &originalMinor, &t.Location, &t.Duration, &t.GroupSize,
		&pickups, &t.Rating, &t.Reviews, &t.Highlights, &t.Included, &t.Excluded, &t.ThingsToCarry,
		&faqs, &itinerary, &t.CancellationPolicy, &t.IsFeatured, &t.Image, &t.Gallery,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes).String()
	t.Category = domain.Category(category)
	t.Difficulty = domain.Difficulty(difficulty)
	t.Price.Currency = domain.Currency(currency)
	if originalMinor != nil {
		t.OriginalPrice = &domain.Price{AmountMinor: *originalMinor, Currency: t.Price.Currency}
	}

	if err := json.Unmarshal(pickups, &t.PickupPoints); err != nil {
		return domain.Trip{}, fmt.Errorf("decode pickup_points: %w", err)
	}
	if err := json.Unmarshal(faqs, &t.FAQs); err != nil {
		return domain.Trip{}, fmt.Errorf("decode faqs: %w", err)
	}
	if err := json.Unmarshal(itinerary, &t.Itinerary); err != nil {
		return domain.Trip{}, fmt.Errorf("decode itinerary: %w", err)
	}
	return t, nil
}

// mapWriteError translates constraint violations into domain errors.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateSlug, pgErr.ConstraintName)
	}
	return err
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
