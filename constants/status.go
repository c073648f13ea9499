package constants

// Employee roles as stored on models.Employee.
const (
	RoleJunior = "JUNIOR"
	RoleTester = "TESTER"
)

// Admin account roles carried in JWT claims.
const (
	AdminRoleOwner   = 1
	AdminRoleManager = 2
)

// User status
const (
	UserStatusActive   = 1
	UserStatusInactive = 0
)

// DefaultCard is the sentinel card label for imported rows without one.
const DefaultCard = "N/A"

// DefaultGbpUsdRate is used when a month has no accounting row yet.
const DefaultGbpUsdRate = 1.27

// MonthLayout is the display form of a month key, e.g. "August 2025".
const MonthLayout = "January 2006"
