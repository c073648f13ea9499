package models

import "time"

// ProfitSnapshot stores the last computed profit distribution for a month.
// Saving it is best-effort; the calculation response never depends on it.
type ProfitSnapshot struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Month       string    `gorm:"unique;not null" json:"month"`
	Rate        float64   `json:"rate"`
	TotalBase   float64   `json:"totalBase"`
	TotalProfit float64   `json:"totalProfit"`
	ResultsJSON string    `gorm:"type:text" json:"-"`
}
