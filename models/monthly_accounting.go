package models

import "time"

// MonthlyAccounting is the per-month configuration row consumed by the
// profit calculator: the GBP/USD conversion rate and, when recorded, the
// month's total expenses for the clawback rule.
type MonthlyAccounting struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Month         string    `gorm:"unique;not null" json:"month"`
	GbpUsdRate    float64   `gorm:"default:1.27" json:"gbpUsdRate"`
	TotalExpenses *float64  `json:"totalExpenses,omitempty"`
}
