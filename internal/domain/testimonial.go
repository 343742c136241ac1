package domain

import "time"

// Testimonial is a customer review shown on the home page.
// TripTitle is free text; it is not a foreign key to any trip.
type Testimonial struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required,max=120"`
	TripTitle string    `json:"trip_title" validate:"required"`
	Rating    int       `json:"rating" validate:"min=1,max=5"`
	Comment   string    `json:"comment" validate:"required"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TestimonialPatch carries a partial testimonial update; nil fields are left
// unchanged.
type TestimonialPatch struct {
	Name      *string `json:"name"`
	TripTitle *string `json:"trip_title"`
	Rating    *int    `json:"rating"`
	Comment   *string `json:"comment"`
	Image     *string `json:"image"`
}

// Apply returns a copy of t with every non-nil patch field written over it.
func (p TestimonialPatch) Apply(t Testimonial) Testimonial {
	setString(&t.Name, p.Name)
	setString(&t.TripTitle, p.TripTitle)
	setString(&t.Comment, p.Comment)
	setString(&t.Image, p.Image)
	if p.Rating != nil {
		t.Rating = *p.Rating
	}
	return t
}
