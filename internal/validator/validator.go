// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"presupuesto/internal/cufe"
	"presupuesto/internal/period"
)

var (
	hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	isoDateRegex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// Validation errors report the json field name the client sent,
		// not the Go struct field name.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation("hex_color", validateHexColor)
		_ = v.RegisterValidation("iso_date", validateISODate)
		_ = v.RegisterValidation("month_period", validateMonthPeriod)
		_ = v.RegisterValidation("classification", validateClassification)
		_ = v.RegisterValidation("control_type", validateControlType)
		_ = v.RegisterValidation("cufe", validateCUFE)
	}
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validateISODate(fl validator.FieldLevel) bool {
	return isoDateRegex.MatchString(fl.Field().String())
}

func validateMonthPeriod(fl validator.FieldLevel) bool {
	return period.IsValid(fl.Field().String())
}

func validateClassification(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Fijo", "Variable", "Discrecional":
		return true
	}
	return false
}

func validateControlType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Necesario", "Discrecional":
		return true
	}
	return false
}

func validateCUFE(fl validator.FieldLevel) bool {
	return cufe.IsValidFormat(fl.Field().String())
}
