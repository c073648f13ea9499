package validator

import (
	"regexp"
	"strings"

	"cazinoureview/constants"
	"cazinoureview/dto"
	"cazinoureview/errors"
)

var handlePattern = regexp.MustCompile(`^@[A-Za-z0-9_]{2,32}$`)

// ValidateHandle checks an employee handle ("@name" style).
func ValidateHandle(handle string) error {
	if strings.TrimSpace(handle) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "handle is required", nil)
	}
	if !handlePattern.MatchString(handle) {
		return errors.NewAppError(errors.ErrCodeInvalidHandle, "handle must look like @name", nil)
	}
	return nil
}

// ValidateRole checks an employee role against the closed set.
func ValidateRole(role string) error {
	if role != constants.RoleJunior && role != constants.RoleTester {
		return errors.NewAppError(errors.ErrCodeInvalidRole, "role must be JUNIOR or TESTER", nil)
	}
	return nil
}

// ValidateTestRecord checks a manually entered test row.
func ValidateTestRecord(input *dto.TestRecordInput) error {
	if err := ValidateHandle(input.EmployeeHandle); err != nil {
		return err
	}
	if strings.TrimSpace(input.Month) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "month is required", nil)
	}
	if strings.TrimSpace(input.Casino) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "casino is required", nil)
	}
	if input.Deposit < 0 || input.Withdrawal < 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "amounts must be non-negative", nil)
	}
	return nil
}
