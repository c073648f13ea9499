package dto

// MonthRequest triggers an import or calculation for one month.
type MonthRequest struct {
	Month string `json:"month" binding:"required"`
}

// EmployeeImport is the per-employee outcome of an import run.
type EmployeeImport struct {
	Handle string `json:"handle"`
	Rows   int    `json:"rows"`
}

// ImportSummary is the result of one import run.
type ImportSummary struct {
	Month     string           `json:"month"`
	Imported  int              `json:"imported"`
	TestRows  int              `json:"testRows"`
	Processed []EmployeeImport `json:"processed"`
	Errors    []string         `json:"errors"`
	Partial   bool             `json:"partial"`
	Message   string           `json:"message"`
}

// HandleProfit is one handle's final profit figure.
type HandleProfit struct {
	Handle string  `json:"handle"`
	Profit float64 `json:"profit"`
}

// CalculationSummary carries the operator-facing counts.
type CalculationSummary struct {
	WorkRecords    int `json:"workRecords"`
	TestRecords    int `json:"testRecords"`
	TotalEmployees int `json:"totalEmployees"`
	TeamMembers    int `json:"teamMembers"`
}

// CalculationResult is the combined profit distribution for a month.
// Results is unique by handle: management shares for handles that already
// earned as employees are merged in, not duplicated.
type CalculationResult struct {
	Month       string             `json:"month"`
	Rate        float64            `json:"rate"`
	TotalBase   float64            `json:"totalBase"`
	TotalProfit float64            `json:"totalProfit"`
	Results     []HandleProfit     `json:"results"`
	Team        []HandleProfit     `json:"team"`
	Summary     CalculationSummary `json:"summary"`
	Message     string             `json:"message"`
}

// EmployeeInput creates or updates a roster member.
type EmployeeInput struct {
	Handle string `json:"handle"`
	Role   string `json:"role"`
}

type EmployeeUpdateInput struct {
	ID       uint    `json:"id" binding:"required"`
	Handle   *string `json:"handle"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
}

// TestRecordInput is a manually entered tester row.
type TestRecordInput struct {
	EmployeeHandle string  `json:"employeeHandle" binding:"required"`
	Month          string  `json:"month" binding:"required"`
	Casino         string  `json:"casino" binding:"required"`
	Deposit        float64 `json:"deposit"`
	Withdrawal     float64 `json:"withdrawal"`
	Card           string  `json:"card"`
}

// MonthlyRow is one row of the monthly read view with its per-row share.
type MonthlyRow struct {
	Handle      string  `json:"handle"`
	Casino      string  `json:"casino"`
	Card        string  `json:"card"`
	Deposit     float64 `json:"deposit"`
	Withdrawal  float64 `json:"withdrawal"`
	Calculation float64 `json:"calculation"`
}

// SiteProfit is the per-casino profit aggregate of the monthly view.
type SiteProfit struct {
	Site   string  `json:"site"`
	Profit float64 `json:"profit"`
}

// MonthlyDataStats summarizes the monthly view.
type MonthlyDataStats struct {
	TotalRecords   int `json:"totalRecords"`
	TotalEmployees int `json:"totalEmployees"`
	TotalSites     int `json:"totalSites"`
}

// MonthlyData is the derived admin read view for one month.
type MonthlyData struct {
	Month           string           `json:"month"`
	Rate            float64          `json:"rate"`
	WorkData        []MonthlyRow     `json:"workData"`
	TestData        []MonthlyRow     `json:"testData"`
	SiteProfits     []SiteProfit     `json:"siteProfits"`
	EmployeeProfits []HandleProfit   `json:"employeeProfits"`
	TotalProfit     float64          `json:"totalProfit"`
	Stats           MonthlyDataStats `json:"stats"`
}
