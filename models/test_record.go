package models

import "time"

// TestRecord mirrors WorkRecord for the tester dataset. Kept separate
// because test rows feed a different bonus path in the profit calculation.
type TestRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	EmployeeID uint      `gorm:"index;not null" json:"employeeId"`
	Month      string    `gorm:"index;not null" json:"month"`
	Casino     string    `gorm:"not null" json:"casino"`
	Deposit    float64   `json:"deposit"`
	Withdrawal float64   `json:"withdrawal"`
	Card       string    `gorm:"default:N/A" json:"card"`

	Employee Employee `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
}
