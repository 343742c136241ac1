package service_test

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhitrip/trip-catalog/internal/domain"
	"github.com/abhitrip/trip-catalog/internal/service"
)

type finderFunc func(ctx context.Context, slug string) (domain.Trip, error)

func (f finderFunc) FindBySlug(ctx context.Context, slug string) (domain.Trip, error) {
	return f(ctx, slug)
}

func newInquiryService() *service.InquiryService {
	trip := validTrip()
	return service.NewInquiryService(finderFunc(func(_ context.Context, slug string) (domain.Trip, error) {
		if slug == trip.Slug {
			return trip, nil
		}
		return domain.Trip{}, domain.ErrNotFound
	}), "+91 97401 74089")
}

func validBooking() service.BookingRequest {
	return service.BookingRequest{
		Name:          "Asha",
		Email:         "asha@example.com",
		Phone:         "9876543210",
		Participants:  3,
		PreferredDate: "2025-12-20",
		PickupPoint:   "hebbal flyover",
	}
}

func TestInquiryService_Book(t *testing.T) {
	svc := newInquiryService()

	inq, err := svc.Book(context.Background(), "skandagiri-night-trek", validBooking())

	require.NoError(t, err)
	assert.Contains(t, inq.Message, "book the Skandagiri Night Trek trip")
	assert.Contains(t, inq.Message, "Number of participants: 3")
	assert.Contains(t, inq.Message, "Preferred date: December 20, 2025")
	assert.Contains(t, inq.Message, "Special requests: None")
	assert.Contains(t, inq.Message, "Price: ₹1,499 per person")
	assert.Equal(t, "tel:+919740174089", inq.TelURL)

	u, err := url.Parse(inq.WhatsAppURL)
	require.NoError(t, err)
	assert.Equal(t, inq.Message, u.Query().Get("text"))
	assert.True(t, strings.HasPrefix(inq.WhatsAppURL, "https://wa.me/919740174089?text="))
}

func TestInquiryService_Book_UnknownTrip(t *testing.T) {
	_, err := newInquiryService().Book(context.Background(), "nowhere", validBooking())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInquiryService_Book_Validation(t *testing.T) {
	tests := map[string]func(*service.BookingRequest){
		"missing name":    func(r *service.BookingRequest) { r.Name = " " },
		"bad email":       func(r *service.BookingRequest) { r.Email = "asha" },
		"no participants": func(r *service.BookingRequest) { r.Participants = 0 },
		"bad date":        func(r *service.BookingRequest) { r.PreferredDate = "20/12/2025" },
		"unknown pickup":  func(r *service.BookingRequest) { r.PickupPoint = "Mysore" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			req := validBooking()
			mutate(&req)

			_, err := newInquiryService().Book(context.Background(), "skandagiri-night-trek", req)

			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestInquiryService_Contact_Defaults(t *testing.T) {
	inq, err := newInquiryService().Contact(context.Background(), service.ContactRequest{
		Name:  "Vikram",
		Phone: "9876543210",
	})

	require.NoError(t, err)
	assert.Contains(t, inq.Message, "Name: Vikram")
	assert.Contains(t, inq.Message, "Preferred Destination: Open to suggestions")
	assert.Contains(t, inq.Message, "Preferred Dates: Flexible")
	assert.NotEmpty(t, inq.WhatsAppURL)
}

func TestInquiryService_Contact_Validation(t *testing.T) {
	_, err := newInquiryService().Contact(context.Background(), service.ContactRequest{Name: "Vikram"})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestInquiryService_QuickLink(t *testing.T) {
	inq := newInquiryService().QuickLink(validTrip())

	assert.Contains(t, inq.Message, "interested in booking the Skandagiri Night Trek trip")
}
