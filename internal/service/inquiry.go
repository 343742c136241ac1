package service

import (
	"context"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/abhitrip/trip-catalog/internal/domain"
	"github.com/abhitrip/trip-catalog/internal/whatsapp"
)

// TripFinder looks a trip up by slug in the current snapshot.
// *catalog.Resolver satisfies it.
type TripFinder interface {
	FindBySlug(ctx context.Context, slug string) (domain.Trip, error)
}

// BookingRequest is the booking form submitted from a trip detail page.
type BookingRequest struct {
	Name            string `json:"name" validate:"required,max=120"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,min=7,max=20"`
	Participants    int    `json:"participants" validate:"min=1,max=100"`
	PreferredDate   string `json:"preferred_date" validate:"omitempty,datetime=2006-01-02"`
	PickupPoint     string `json:"pickup_point"`
	SpecialRequests string `json:"special_requests" validate:"max=2000"`
}

// ContactRequest is the general enquiry form on the contact page.
type ContactRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Phone       string `json:"phone" validate:"required,min=7,max=20"`
	Email       string `json:"email" validate:"omitempty,email"`
	GroupSize   string `json:"group_size"`
	Destination string `json:"destination"`
	Dates       string `json:"dates"`
	Message     string `json:"message" validate:"max=2000"`
}

// Inquiry is the hand-off to the agency: links the visitor's browser opens,
// plus the prefilled message they carry.
type Inquiry struct {
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsapp_url"`
	TelURL      string `json:"tel_url"`
}

var bookingTmpl = template.Must(template.New("booking").Parse(
	`Hi! I'd like to book the {{.Trip.Title}} trip.

Details:
- Name: {{.Req.Name}}
- Email: {{.Req.Email}}
- Phone: {{.Req.Phone}}
- Number of participants: {{.Req.Participants}}
- Preferred date: {{or .Date "Not specified"}}
- Pickup point: {{or .Req.PickupPoint "Not specified"}}
- Special requests: {{or .Req.SpecialRequests "None"}}
- Price: {{.Trip.Price.Display}} per person

Please confirm availability and provide further details.`))

var contactTmpl = template.Must(template.New("contact").Parse(
	`Hello! I would like to get more information about your travel packages.

*My Details:*
- Name: {{.Name}}
- Phone: {{.Phone}}
- Email: {{or .Email "Not specified"}}
- Group Size: {{or .GroupSize "Not specified"}}

*Travel Preferences:*
- Preferred Destination: {{or .Destination "Open to suggestions"}}
- Preferred Dates: {{or .Dates "Flexible"}}

*Message:*
{{or .Message "Please provide more information about your packages and availability."}}

Looking forward to hearing from you!`))

// InquiryService turns booking and contact forms into WhatsApp deep links
// for the agency's number. It persists nothing.
type InquiryService struct {
	trips TripFinder
	phone string
}

// NewInquiryService constructs an InquiryService that addresses every link
// to phone.
func NewInquiryService(trips TripFinder, phone string) *InquiryService {
	return &InquiryService{trips: trips, phone: phone}
}

// Book builds the booking message for the trip with the given slug.
// Returns domain.ErrNotFound for an unknown slug and domain.ErrValidation for
// an invalid form, including a pickup point the trip does not offer.
func (s *InquiryService) Book(ctx context.Context, slug string, req BookingRequest) (Inquiry, error) {
	trip, err := s.trips.FindBySlug(ctx, slug)
	if err != nil {
		return Inquiry{}, fmt.Errorf("service.InquiryService.Book: %w", err)
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.PickupPoint = strings.TrimSpace(req.PickupPoint)
	req.SpecialRequests = strings.TrimSpace(req.SpecialRequests)
	if err := validateStruct(req); err != nil {
		return Inquiry{}, fmt.Errorf("service.InquiryService.Book: %w", err)
	}
	if req.PickupPoint != "" && len(trip.PickupPoints) > 0 && !offersPickup(trip, req.PickupPoint) {
		return Inquiry{}, fmt.Errorf("service.InquiryService.Book: %w: %s has no pickup at %q",
			domain.ErrValidation, trip.Title, req.PickupPoint)
	}

	var date string
	if req.PreferredDate != "" {
		d, _ := time.Parse(time.DateOnly, req.PreferredDate) // format checked by validator
		date = d.Format("January 2, 2006")
	}

	var b strings.Builder
	err = bookingTmpl.Execute(&b, struct {
		Trip domain.Trip
		Req  BookingRequest
		Date string
	}{trip, req, date})
	if err != nil {
		return Inquiry{}, fmt.Errorf("service.InquiryService.Book: render: %w", err)
	}
	return s.inquiry(b.String()), nil
}

// Contact builds the general enquiry message.
func (s *InquiryService) Contact(_ context.Context, req ContactRequest) (Inquiry, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if err := validateStruct(req); err != nil {
		return Inquiry{}, fmt.Errorf("service.InquiryService.Contact: %w", err)
	}

	var b strings.Builder
	if err := contactTmpl.Execute(&b, req); err != nil {
		return Inquiry{}, fmt.Errorf("service.InquiryService.Contact: render: %w", err)
	}
	return s.inquiry(b.String()), nil
}

// QuickLink is the short "tell me more" message used by trip cards.
func (s *InquiryService) QuickLink(trip domain.Trip) Inquiry {
	return s.inquiry(fmt.Sprintf(
		"Hi! I'm interested in booking the %s trip. Can you provide more details about availability and pricing?",
		trip.Title))
}

func (s *InquiryService) inquiry(msg string) Inquiry {
	return Inquiry{
		Message:     msg,
		WhatsAppURL: whatsapp.Link(s.phone, msg),
		TelURL:      whatsapp.TelLink(s.phone),
	}
}

// offersPickup matches either the bare location or the "location - time"
// rendering, case-insensitively.
func offersPickup(t domain.Trip, choice string) bool {
	for _, p := range t.PickupPoints {
		if strings.EqualFold(p.Location, choice) || strings.EqualFold(p.String(), choice) {
			return true
		}
	}
	return false
}
