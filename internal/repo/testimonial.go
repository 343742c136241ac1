package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/abhitrip/trip-catalog/internal/domain"
)

// TestimonialRepo defines the persistence operations for testimonials.
type TestimonialRepo interface {
	// List returns all testimonials, newest first.
	List(ctx context.Context) ([]domain.Testimonial, error)
	GetByID(ctx context.Context, id string) (domain.Testimonial, error)
	Create(ctx context.Context, t domain.Testimonial) (domain.Testimonial, error)
	Update(ctx context.Context, t domain.Testimonial) (domain.Testimonial, error)
	Delete(ctx context.Context, id string) error
}

type pgTestimonialRepo struct {
	db db
}

// NewTestimonialRepo constructs a TestimonialRepo backed by the provided db connection.
func NewTestimonialRepo(db db) TestimonialRepo {
	return &pgTestimonialRepo{db: db}
}

const testimonialColumns = `id, name, trip_title, rating, comment, image, created_at, updated_at`

func (r *pgTestimonialRepo) List(ctx context.Context) ([]domain.Testimonial, error) {
	q := `SELECT ` + testimonialColumns + ` FROM testimonials ORDER BY created_at DESC, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TestimonialRepo.List: %w", err)
	}
	defer rows.Close()

	out := []domain.Testimonial{}
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TestimonialRepo.List: scan: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TestimonialRepo.List: rows: %w", err)
	}
	return out, nil
}

func (r *pgTestimonialRepo) GetByID(ctx context.Context, id string) (domain.Testimonial, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return domain.Testimonial{}, fmt.Errorf("repo.TestimonialRepo.GetByID: %w", domain.ErrNotFound)
	}

	q := `SELECT ` + testimonialColumns + ` FROM testimonials WHERE id = @id`
	result, err := scanTestimonial(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": uid}))
	if err != nil {
		return domain.Testimonial{}, fmt.Errorf("repo.TestimonialRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTestimonialRepo) Create(ctx context.Context, t domain.Testimonial) (domain.Testimonial, error) {
	q := `
		INSERT INTO testimonials (name, trip_title, rating, comment, image)
		VALUES (@name, @trip_title, @rating, @comment, @image)
		RETURNING ` + testimonialColumns

	result, err := scanTestimonial(r.db.QueryRow(ctx, q, testimonialArgs(t)))
	if err != nil {
		return domain.Testimonial{}, fmt.Errorf("repo.TestimonialRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTestimonialRepo) Update(ctx context.Context, t domain.Testimonial) (domain.Testimonial, error) {
	uid, err := uuid.Parse(t.ID)
	if err != nil {
		return domain.Testimonial{}, fmt.Errorf("repo.TestimonialRepo.Update: %w", domain.ErrNotFound)
	}

	q := `
		UPDATE testimonials
		SET name       = @name,
		    trip_title = @trip_title,
		    rating     = @rating,
		    comment    = @comment,
		    image      = @image,
		    updated_at = now()
		WHERE id = @id
		RETURNING ` + testimonialColumns

	args := testimonialArgs(t)
	args["id"] = uid

	result, err := scanTestimonial(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Testimonial{}, fmt.Errorf("repo.TestimonialRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgTestimonialRepo) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("repo.TestimonialRepo.Delete: %w", domain.ErrNotFound)
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM testimonials WHERE id = @id`, pgx.NamedArgs{"id": uid})
	if err != nil {
		return fmt.Errorf("repo.TestimonialRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TestimonialRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func testimonialArgs(t domain.Testimonial) pgx.NamedArgs {
	return pgx.NamedArgs{
		"name":       t.Name,
		"trip_title": t.TripTitle,
		"rating":     t.Rating,
		"comment":    t.Comment,
		"image":      t.Image,
	}
}

func scanTestimonial(s scanner) (domain.Testimonial, error) {
	var (
		t      domain.Testimonial
		id     pgtype.UUID
		rating int16
	)

	err := s.Scan(&id, &t.Name, &t.TripTitle, &rating, &t.Comment, &t.Image, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Testimonial{}, domain.ErrNotFound
		}
		return domain.Testimonial{}, err
	}

	t.ID = uuid.UUID(id.Bytes).String()
	t.Rating = int(rating)
	return t, nil
}
