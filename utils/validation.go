package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/brandworks/crm-api/models"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding tags on gin's validator.
// Safe to call more than once.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin validator engine is not go-playground/validator")
			return
		}

		// Report json field names instead of Go field names
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			if name == "-" {
				return ""
			}
			return name
		})

		validations := map[string]validator.Func{
			"row_remark":         validateRowRemark,
			"design_status":      validateDesignStatus,
			"client_status":      validateClientStatus,
			"employee_role":      validateEmployeeRole,
			"interaction_type":   validateInteractionType,
			"appointment_status": validateAppointmentStatus,
			"year_month":         validateYearMonth,
		}
		for tag, fn := range validations {
			if regErr := v.RegisterValidation(tag, fn); regErr != nil {
				err = fmt.Errorf("failed to register %s: %w", tag, regErr)
				return
			}
		}
	})
	return err
}

func validateRowRemark(fl validator.FieldLevel) bool {
	_, ok := models.ParseRowRemark(fl.Field().String())
	return ok
}

func validateDesignStatus(fl validator.FieldLevel) bool {
	_, ok := models.ParseDesignStatus(fl.Field().String())
	return ok
}

func validateClientStatus(fl validator.FieldLevel) bool {
	_, ok := models.ParseClientStatus(fl.Field().String())
	return ok
}

func validateEmployeeRole(fl validator.FieldLevel) bool {
	_, ok := models.ParseRole(fl.Field().String())
	return ok
}

func validateInteractionType(fl validator.FieldLevel) bool {
	switch models.InteractionType(strings.ToLower(fl.Field().String())) {
	case models.InteractionCall, models.InteractionWhatsApp:
		return true
	}
	return false
}

func validateAppointmentStatus(fl validator.FieldLevel) bool {
	switch models.AppointmentStatus(strings.ToLower(fl.Field().String())) {
	case models.AppointmentScheduled, models.AppointmentCompleted, models.AppointmentCancelled:
		return true
	}
	return false
}

func validateYearMonth(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01", fl.Field().String())
	return err == nil
}

// FieldError is one failed rule of a request body
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationDetails turns a binding error into a list of field errors.
// Errors that are not rule violations (malformed JSON, wrong types) become a
// single entry without a field.
func ValidationDetails(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Rule: "format", Message: err.Error()}}
	}

	details := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: fieldMessage(fe),
		})
	}
	return details
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "datetime":
		return fmt.Sprintf("%s must use the format %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must have at least %s items or characters", fe.Field(), fe.Param())
	case "row_remark", "design_status", "client_status", "employee_role",
		"interaction_type", "appointment_status":
		return fmt.Sprintf("%s has an unknown value %q", fe.Field(), fe.Value())
	case "year_month":
		return fmt.Sprintf("%s must use the format YYYY-MM", fe.Field())
	}
	return fmt.Sprintf("%s failed the %s rule", fe.Field(), fe.Tag())
}
