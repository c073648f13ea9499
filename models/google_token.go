package models

import "time"

// GoogleToken holds the single persisted OAuth token for the Drive/Sheets
// connection. One row; refreshed tokens overwrite it.
type GoogleToken struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	AccessToken  string    `gorm:"type:text" json:"-"`
	RefreshToken string    `gorm:"type:text" json:"-"`
	TokenType    string    `json:"tokenType"`
	Expiry       time.Time `json:"expiry"`
}
