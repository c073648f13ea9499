package models

import "time"

// Employee is one member of the work roster, keyed by a "@name" handle.
// Employees are created on first encounter during import and never
// hard-deleted once they have records; they are deactivated instead.
type Employee struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Handle    string    `gorm:"unique;not null" json:"handle"`
	Role      string    `gorm:"default:JUNIOR" json:"role"`
	IsActive  bool      `gorm:"default:true" json:"isActive"`

	WorkRecords []WorkRecord `json:"workRecords,omitempty" gorm:"foreignKey:EmployeeID"`
	TestRecords []TestRecord `json:"testRecords,omitempty" gorm:"foreignKey:EmployeeID"`
}
