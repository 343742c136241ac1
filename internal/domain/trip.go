// Package domain contains the core data types for the trip catalog.
// This package has no dependencies outside the standard library and is
// imported by every other internal package (catalog, repo, service, handler).
package domain

import (
	"math"
	"time"
)

// Category classifies a trip by length.
type Category string

const (
	CategoryOneDay Category = "one-day"
	CategoryTwoDay Category = "two-day"
)

// Categories lists every valid category in display order.
var Categories = []Category{CategoryOneDay, CategoryTwoDay}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return c == CategoryOneDay || c == CategoryTwoDay
}

// MaxItineraryDay is the highest itinerary day number allowed for c.
// Day 0 is always allowed (pre-departure items such as pickup).
func (c Category) MaxItineraryDay() int {
	if c == CategoryTwoDay {
		return 2
	}
	return 1
}

// Difficulty is the physical effort rating of a trip.
type Difficulty string

const (
	DifficultyEasy     Difficulty = "Easy"
	DifficultyModerate Difficulty = "Moderate"
	DifficultyHard     Difficulty = "Hard"
)

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyModerate, DifficultyHard:
		return true
	}
	return false
}

// FAQ is one question/answer pair shown on the trip detail page.
type FAQ struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

// ItineraryItem is one scheduled activity. Day is a grouping key only:
// it may be 0 and is not guaranteed to be contiguous.
type ItineraryItem struct {
	Day      int    `json:"day" validate:"min=0"`
	Time     string `json:"time"`
	Title    string `json:"title"`
	Activity string `json:"activity"`
}

// Trip is one sellable itinerary.
// ID is the key used by admin mutations; Slug is the key used by every
// public read path. A persisted trip always has both.
type Trip struct {
	ID                  string          `json:"id"`
	Slug                string          `json:"slug" validate:"required,max=120"`
	Title               string          `json:"title" validate:"required,max=200"`
	Description         string          `json:"description" validate:"required"`
	DetailedDescription string          `json:"detailed_description"`
	Category            Category        `json:"category" validate:"required,oneof=one-day two-day"`
	Difficulty          Difficulty      `json:"difficulty" validate:"required,oneof=Easy Moderate Hard"`
	Price               Price           `json:"price"`
	OriginalPrice       *Price          `json:"original_price,omitempty"`
	Location            string          `json:"location" validate:"required"`
	Duration            string          `json:"duration" validate:"required"`
	GroupSize           string          `json:"group_size"`
	PickupPoints        []PickupPoint   `json:"pickup_points" validate:"dive"`
	Rating              float64         `json:"rating" validate:"min=0,max=5"`
	Reviews             int             `json:"reviews" validate:"min=0"`
	Highlights          []string        `json:"highlights"`
	Included            []string        `json:"included"`
	Excluded            []string        `json:"excluded"`
	ThingsToCarry       []string        `json:"things_to_carry"`
	FAQs                []FAQ           `json:"faqs" validate:"dive"`
	Itinerary           []ItineraryItem `json:"itinerary" validate:"dive"`
	CancellationPolicy  string          `json:"cancellation_policy,omitempty"`
	IsFeatured          bool            `json:"is_featured"`
	Image               string          `json:"image"`
	Gallery             []string        `json:"gallery,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// DiscountPercent returns the whole-number discount of Price against
// OriginalPrice, or 0 when there is no valid higher original price in the
// same currency.
func (t Trip) DiscountPercent() int {
	if t.OriginalPrice == nil || t.OriginalPrice.AmountMinor <= 0 {
		return 0
	}
	if t.OriginalPrice.Currency != t.Price.Currency {
		return 0
	}
	if t.OriginalPrice.AmountMinor <= t.Price.AmountMinor {
		return 0
	}
	saved := float64(t.OriginalPrice.AmountMinor - t.Price.AmountMinor)
	return int(math.Round(saved / float64(t.OriginalPrice.AmountMinor) * 100))
}

// TripPatch carries a partial update. A nil field leaves the stored value
// unchanged; a non-nil slice (even empty) replaces the stored list.
type TripPatch struct {
	Slug                *string         `json:"slug"`
	Title               *string         `json:"title"`
	Description         *string         `json:"description"`
	DetailedDescription *string         `json:"detailed_description"`
	Category            *Category       `json:"category"`
	Difficulty          *Difficulty     `json:"difficulty"`
	Price               *Price          `json:"price"`
	OriginalPrice       *Price          `json:"original_price"`
	Location            *string         `json:"location"`
	Duration            *string         `json:"duration"`
	GroupSize           *string         `json:"group_size"`
	PickupPoints        []PickupPoint   `json:"pickup_points"`
	Rating              *float64        `json:"rating"`
	Reviews             *int            `json:"reviews"`
	Highlights          []string        `json:"highlights"`
	Included            []string        `json:"included"`
	Excluded            []string        `json:"excluded"`
	ThingsToCarry       []string        `json:"things_to_carry"`
	FAQs                []FAQ           `json:"faqs"`
	Itinerary           []ItineraryItem `json:"itinerary"`
	CancellationPolicy  *string         `json:"cancellation_policy"`
	IsFeatured          *bool           `json:"is_featured"`
	Image               *string         `json:"image"`
	Gallery             []string        `json:"gallery"`
}

// Apply returns a copy of t with every non-nil patch field written over it.
func (p TripPatch) Apply(t Trip) Trip {
	setString(&t.Slug, p.Slug)
	setString(&t.Title, p.Title)
	setString(&t.Description, p.Description)
	setString(&t.DetailedDescription, p.DetailedDescription)
	setString(&t.Location, p.Location)
	setString(&t.Duration, p.Duration)
	setString(&t.GroupSize, p.GroupSize)
	setString(&t.CancellationPolicy, p.CancellationPolicy)
	setString(&t.Image, p.Image)
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Difficulty != nil {
		t.Difficulty = *p.Difficulty
	}
	if p.Price != nil {
		t.Price = *p.Price
	}
	if p.OriginalPrice != nil {
		op := *p.OriginalPrice
		if op.IsZero() {
			t.OriginalPrice = nil
		} else {
			t.OriginalPrice = &op
		}
	}
	if p.Rating != nil {
		t.Rating = *p.Rating
	}
	if p.Reviews != nil {
		t.Reviews = *p.Reviews
	}
	if p.IsFeatured != nil {
		t.IsFeatured = *p.IsFeatured
	}
	if p.PickupPoints != nil {
		t.PickupPoints = p.PickupPoints
	}
	if p.Highlights != nil {
		t.Highlights = p.Highlights
	}
	if p.Included != nil {
		t.Included = p.Included
	}
	if p.Excluded != nil {
		t.Excluded = p.Excluded
	}
	if p.ThingsToCarry != nil {
		t.ThingsToCarry = p.ThingsToCarry
	}
	if p.FAQs != nil {
		t.FAQs = p.FAQs
	}
	if p.Itinerary != nil {
		t.Itinerary = p.Itinerary
	}
	if p.Gallery != nil {
		t.Gallery = p.Gallery
	}
	return t
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
