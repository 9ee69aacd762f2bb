package domain

import "github.com/shopspring/decimal"

// MinCarYear is the oldest model year the fleet accepts.
const MinCarYear = 1900

type Car struct {
	ID         int64           `json:"id"`
	BrandID    int64           `json:"brand_id"`
	Brand      string          `json:"brand,omitempty"` // brand name, read only
	Model      string          `json:"model"`
	Year       int             `json:"year"`
	DailyPrice decimal.Decimal `json:"daily_price"`
	Available  bool            `json:"available"`
}
