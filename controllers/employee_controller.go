package controllers

import (
	"errors"
	"strconv"
	"strings"

	"cazinoureview/constants"
	"cazinoureview/dto"
	"cazinoureview/models"
	"cazinoureview/response"
	"cazinoureview/services/hr"
	"cazinoureview/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// EmployeeController serves roster CRUD and manual test-record entry.
type EmployeeController struct {
	db *gorm.DB
}

func NewEmployeeController(db *gorm.DB) *EmployeeController {
	return &EmployeeController{db: db}
}

func (ctl *EmployeeController) GetEmployees(c *gin.Context) {
	var employees []models.Employee
	err := ctl.db.
		Preload("WorkRecords", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at desc")
		}).
		Preload("TestRecords", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at desc")
		}).
		Order("created_at desc").
		Find(&employees).Error
	if err != nil {
		response.ServerError(c)
		return
	}

	response.SuccessWithTotal(c, employees, len(employees))
}

func (ctl *EmployeeController) CreateEmployee(c *gin.Context) {
	var input dto.EmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input.Handle = strings.TrimSpace(input.Handle)
	if err := validator.ValidateHandle(input.Handle); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	role := strings.TrimSpace(input.Role)
	if role == "" {
		role = constants.RoleJunior
	}
	if err := validator.ValidateRole(role); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	var existing models.Employee
	if err := ctl.db.Where("handle = ?", input.Handle).First(&existing).Error; err == nil {
		response.BadRequest(c, "Employee with this handle already exists")
		return
	}

	employee := models.Employee{
		Handle:   input.Handle,
		Role:     role,
		IsActive: true,
	}
	if err := ctl.db.Create(&employee).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, employee)
}

func (ctl *EmployeeController) UpdateEmployee(c *gin.Context) {
	var input dto.EmployeeUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var employee models.Employee
	if err := ctl.db.First(&employee, input.ID).Error; err != nil {
		response.NotFound(c)
		return
	}

	if input.Handle != nil {
		handle := strings.TrimSpace(*input.Handle)
		if err := validator.ValidateHandle(handle); err != nil {
			response.ValidationError(c, err.Error())
			return
		}
		employee.Handle = handle
	}
	if input.Role != nil {
		role := strings.TrimSpace(*input.Role)
		if err := validator.ValidateRole(role); err != nil {
			response.ValidationError(c, err.Error())
			return
		}
		employee.Role = role
	}
	if input.IsActive != nil {
		employee.IsActive = *input.IsActive
	}

	if err := ctl.db.Save(&employee).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, employee)
}

// DeleteEmployee deactivates an employee with records and deletes one
// without any.
func (ctl *EmployeeController) DeleteEmployee(c *gin.Context) {
	idParam := c.Query("id")
	id, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil {
		response.BadRequest(c, "Employee ID is required")
		return
	}

	var employee models.Employee
	if err := ctl.db.First(&employee, id).Error; err != nil {
		response.NotFound(c)
		return
	}

	var workCount, testCount int64
	ctl.db.Model(&models.WorkRecord{}).Where("employee_id = ?", id).Count(&workCount)
	ctl.db.Model(&models.TestRecord{}).Where("employee_id = ?", id).Count(&testCount)

	if workCount > 0 || testCount > 0 {
		employee.IsActive = false
		if err := ctl.db.Save(&employee).Error; err != nil {
			response.ServerError(c)
			return
		}
		response.SuccessWithMessage(c, "Employee deactivated (has records)", employee)
		return
	}

	if err := ctl.db.Delete(&employee).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.SuccessWithMessage(c, "Employee deleted", nil)
}

// CreateTestRecord adds one manually entered tester row.
func (ctl *EmployeeController) CreateTestRecord(c *gin.Context) {
	var input dto.TestRecordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := validator.ValidateTestRecord(&input); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	month, err := hr.ParseMonth(input.Month)
	if err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	handle := strings.TrimSpace(input.EmployeeHandle)
	var employee models.Employee
	err = ctl.db.Where("handle = ?", handle).First(&employee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		employee = models.Employee{
			Handle:   handle,
			Role:     constants.RoleTester,
			IsActive: true,
		}
		if err := ctl.db.Create(&employee).Error; err != nil {
			response.ServerError(c)
			return
		}
	} else if err != nil {
		response.ServerError(c)
		return
	}

	card := strings.TrimSpace(input.Card)
	if card == "" {
		card = constants.DefaultCard
	}

	record := models.TestRecord{
		EmployeeID: employee.ID,
		Month:      month.Key(),
		Casino:     strings.TrimSpace(input.Casino),
		Deposit:    input.Deposit,
		Withdrawal: input.Withdrawal,
		Card:       card,
	}
	if err := ctl.db.Create(&record).Error; err != nil {
		response.ServerError(c)
		return
	}
	record.Employee = employee

	response.SuccessWithMessage(c, "Test data added for "+employee.Handle, record)
}

func (ctl *EmployeeController) GetTestRecords(c *gin.Context) {
	query := ctl.db.Preload("Employee").Order("created_at desc")

	if monthParam := c.Query("month"); monthParam != "" {
		month, err := hr.ParseMonth(monthParam)
		if err != nil {
			response.ValidationError(c, err.Error())
			return
		}
		query = query.Where("month = ?", month.Key())
	}
	if employeeID := c.Query("employeeId"); employeeID != "" {
		id, err := strconv.ParseUint(employeeID, 10, 64)
		if err != nil {
			response.BadRequest(c, "Invalid employee ID")
			return
		}
		query = query.Where("employee_id = ?", id)
	}

	var records []models.TestRecord
	if err := query.Find(&records).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.SuccessWithTotal(c, records, len(records))
}
