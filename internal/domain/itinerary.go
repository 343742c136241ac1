package domain

import "sort"

// ItineraryDay is one group of the itinerary view.
type ItineraryDay struct {
	Day   int             `json:"day"`
	Items []ItineraryItem `json:"items"`
}

// GroupItinerary groups items by Day, ordered by ascending day number.
// Items keep their original relative order inside each group. Gaps in the
// day sequence are not filled in.
func GroupItinerary(items []ItineraryItem) []ItineraryDay {
	byDay := make(map[int][]ItineraryItem)
	var days []int
	for _, it := range items {
		if _, seen := byDay[it.Day]; !seen {
			days = append(days, it.Day)
		}
		byDay[it.Day] = append(byDay[it.Day], it)
	}
	sort.Ints(days)

	out := make([]ItineraryDay, 0, len(days))
	for _, d := range days {
		out = append(out, ItineraryDay{Day: d, Items: byDay[d]})
	}
	return out
}
