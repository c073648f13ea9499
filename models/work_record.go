package models

import "time"

// WorkRecord is one row of casino activity for one employee in one month.
// Rows are replaced wholesale per month on import, never mutated.
type WorkRecord struct {
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
