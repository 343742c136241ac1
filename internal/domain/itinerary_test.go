package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhitrip/trip-catalog/internal/domain"
)

func TestGroupItinerary(t *testing.T) {
	items := []domain.ItineraryItem{
		{Day: 1, Time: "06:00", Title: "Trek starts"},
		{Day: 0, Time: "22:00", Title: "Pickup"},
		{Day: 1, Time: "09:00", Title: "Breakfast"},
		{Day: 3, Time: "10:00", Title: "Return"},
	}

	got := domain.GroupItinerary(items)

	require.Len(t, got, 3)
	assert.Equal(t, 0, got[0].Day)
	assert.Equal(t, 1, got[1].Day)
	assert.Equal(t, 3, got[2].Day, "gaps are not filled")

	// Relative order within a day is preserved.
	require.Len(t, got[1].Items, 2)
	assert.Equal(t, "Trek starts", got[1].Items[0].Title)
	assert.Equal(t, "Breakfast", got[1].Items[1].Title)
}

func TestGroupItinerary_Empty(t *testing.T) {
	got := domain.GroupItinerary(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
