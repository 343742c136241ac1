package domain

// ExportRow is a single row in the catalog export: one row per trip, with
// list fields joined so each trip stays on one line.
// Prices are rendered with Display and also given in minor units so a
// spreadsheet can sum them.
type ExportRow struct {
	ID            string
	Slug          string
	Title         string
	Category      Category
	Difficulty    Difficulty
	Location      string
	Duration      string
	PriceMinor    int64
	Currency      Currency
	PriceDisplay  string
	OriginalPrice string // empty when there is no original price
	Discount      int
	Rating        float64
	Reviews       int
	IsFeatured    bool

	PickupPoints []string // rendered with PickupPoint.String
	Highlights   []string
	UpdatedAt    string // RFC 3339, empty for static records
}
