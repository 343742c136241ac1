package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"

	"github.com/abhitrip/trip-catalog/internal/domain"
)

// validate is shared by every service; validator.Validate caches struct
// metadata and is safe for concurrent use. Field names in messages use the
// json tag so they match the request body.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

const maxSlugLen = 120

var (
	reSlug     = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
)

// validateStruct runs the struct tags on v and folds any failure into a
// single domain.ErrValidation naming the offending fields.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		msgs = append(msgs, fieldMessage(field, fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(msgs, "; "))
}

func fieldMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return field + " must be one of: " + fe.Param()
	case "min", "max", "gte", "lte":
		return fmt.Sprintf("%s must be %s %s", field, fe.Tag(), fe.Param())
	case "email":
		return field + " must be a valid email address"
	}
	return field + " is invalid (" + fe.Tag() + ")"
}

// Slugify turns free text into a lowercase, hyphen-separated slug.
// Diacritics are stripped ("Chikmagalur Café" → "chikmagalur-cafe").
func Slugify(s string) string {
	var b strings.Builder
	for _, r := range norm.NFD.String(strings.ToLower(strings.TrimSpace(s))) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	slug := strings.Trim(reNonAlnum.ReplaceAllString(b.String(), "-"), "-")
	if len(slug) > maxSlugLen {
		slug = strings.TrimRight(slug[:maxSlugLen], "-")
	}
	return slug
}

// validateTrip enforces the rules shared by create and update.
//   - struct tags (required fields, enums, ranges)
//   - slug format
//   - a non-zero price in a supported currency
//   - itinerary days fit the category (one-day ≤ 1, two-day ≤ 2)
func validateTrip(t domain.Trip) error {
	if err := validateStruct(t); err != nil {
		return err
	}
	if !reSlug.MatchString(t.Slug) {
		return fmt.Errorf("%w: slug must be lowercase letters, digits and single hyphens", domain.ErrValidation)
	}
	if t.Price.AmountMinor <= 0 {
		return fmt.Errorf("%w: price is required", domain.ErrValidation)
	}
	if !t.Price.Currency.Valid() {
		return fmt.Errorf("%w: unsupported currency %q", domain.ErrValidation, t.Price.Currency)
	}
	if t.OriginalPrice != nil && t.OriginalPrice.Currency != t.Price.Currency {
		return fmt.Errorf("%w: original_price currency must match price", domain.ErrValidation)
	}
	maxDay := t.Category.MaxItineraryDay()
	for _, item := range t.Itinerary {
		if item.Day > maxDay {
			return fmt.Errorf("%w: itinerary day %d exceeds %s trip length", domain.ErrValidation, item.Day, t.Category)
		}
	}
	return nil
}

// normalizeTrip trims free-text fields and fills derivable values before
// validation. It never fails.
func normalizeTrip(t domain.Trip) domain.Trip {
	t.Title = strings.TrimSpace(t.Title)
	t.Slug = strings.TrimSpace(t.Slug)
	t.Location = strings.TrimSpace(t.Location)
	t.Description = strings.TrimSpace(t.Description)
	if t.Slug == "" {
		t.Slug = Slugify(t.Title)
	}
	if t.Price.Currency == "" {
		t.Price.Currency = domain.CurrencyINR
	}
	if t.OriginalPrice != nil {
		if t.OriginalPrice.IsZero() {
			t.OriginalPrice = nil
		} else if t.OriginalPrice.Currency == "" {
			op := *t.OriginalPrice
			op.Currency = t.Price.Currency
			t.OriginalPrice = &op
		}
	}
	return t
}

// patchCheck validates the fields a partial update sets, one at a time,
// against the same rules the full record is held to.
type patchCheck struct {
	msgs []string
}

// field runs tag against v and records a message under name on failure.
func (c *patchCheck) field(name string, v any, tag string) {
	err := validate.Var(v, tag)
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.msgs = append(c.msgs, name+" is invalid")
		return
	}
	for _, fe := range verrs {
		c.msgs = append(c.msgs, fieldMessage(name, fe))
	}
}

// each runs validateStruct on every element and records failures under name.
func (c *patchCheck) each(name string, n int, elem func(i int) any) {
	for i := 0; i < n; i++ {
		if err := validateStruct(elem(i)); err != nil {
			c.msgs = append(c.msgs, fmt.Sprintf("%s[%d]: %s", name, i, unwrapValidation(err)))
		}
	}
}

func (c *patchCheck) fail(format string, args ...any) {
	c.msgs = append(c.msgs, fmt.Sprintf(format, args...))
}

func (c *patchCheck) err() error {
	if len(c.msgs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(c.msgs, "; "))
}

// unwrapValidation strips the domain.ErrValidation prefix validateStruct adds.
func unwrapValidation(err error) string {
	return strings.TrimPrefix(err.Error(), domain.ErrValidation.Error()+": ")
}

// validateTripPatch checks every field patch sets without a stored record to
// apply it to. Itinerary days are checked against the patched category, or
// against the longest category when the patch leaves it unset.
func validateTripPatch(p domain.TripPatch) error {
	var c patchCheck
	if p.Slug != nil {
		if slug := strings.TrimSpace(*p.Slug); slug != "" && !reSlug.MatchString(slug) {
			c.fail("slug must be lowercase letters, digits and single hyphens")
		}
		c.field("slug", *p.Slug, "max=120")
	}
	required := []struct {
		name string
		v    *string
		tag  string
	}{
		{"title", p.Title, "required,max=200"},
		{"description", p.Description, "required"},
		{"location", p.Location, "required"},
		{"duration", p.Duration, "required"},
	}
	for _, r := range required {
		if r.v != nil {
			c.field(r.name, strings.TrimSpace(*r.v), r.tag)
		}
	}
	if p.Category != nil {
		c.field("category", string(*p.Category), "required,oneof=one-day two-day")
	}
	if p.Difficulty != nil {
		c.field("difficulty", string(*p.Difficulty), "required,oneof=Easy Moderate Hard")
	}
	if p.Rating != nil {
		c.field("rating", *p.Rating, "min=0,max=5")
	}
	if p.Reviews != nil {
		c.field("reviews", *p.Reviews, "min=0")
	}
	if p.Price != nil {
		if p.Price.AmountMinor <= 0 {
			c.fail("price is required")
		}
		if p.Price.Currency != "" && !p.Price.Currency.Valid() {
			c.fail("unsupported currency %q", p.Price.Currency)
		}
	}
	if p.Price != nil && p.OriginalPrice != nil && !p.OriginalPrice.IsZero() &&
		p.OriginalPrice.Currency != "" && p.OriginalPrice.Currency != p.Price.Currency {
		c.fail("original_price currency must match price")
	}
	c.each("pickup_points", len(p.PickupPoints), func(i int) any { return p.PickupPoints[i] })
	c.each("faqs", len(p.FAQs), func(i int) any { return p.FAQs[i] })

	maxDay := domain.CategoryTwoDay.MaxItineraryDay()
	if p.Category != nil && p.Category.Valid() {
		maxDay = p.Category.MaxItineraryDay()
	}
	for _, item := range p.Itinerary {
		switch {
		case item.Day < 0:
			c.fail("itinerary day %d must not be negative", item.Day)
		case item.Day > maxDay:
			c.fail("itinerary day %d exceeds %d-day trip length", item.Day, maxDay)
		}
	}
	return c.err()
}

// validateTestimonialPatch is the testimonial counterpart of validateTripPatch.
func validateTestimonialPatch(p domain.TestimonialPatch) error {
	var c patchCheck
	if p.Name != nil {
		c.field("name", strings.TrimSpace(*p.Name), "required,max=120")
	}
	if p.TripTitle != nil {
		c.field("trip_title", strings.TrimSpace(*p.TripTitle), "required")
	}
	if p.Comment != nil {
		c.field("comment", strings.TrimSpace(*p.Comment), "required")
	}
	if p.Rating != nil {
		c.field("rating", *p.Rating, "min=1,max=5")
	}
	return c.err()
}
