package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var phoneRegexp = regexp.MustCompile(`^\+?[0-9][0-9 -]{6,18}[0-9]$`)

// RegisterCustom installs the payroll-specific validators on Gin's binding
// validator. Call once at startup.
func RegisterCustom() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine")
	}

	if err := v.RegisterValidation("btc_address", validateBTCAddress); err != nil {
		return err
	}
	if err := v.RegisterValidation("eth_address", validateETHAddress); err != nil {
		return err
	}
	return v.RegisterValidation("phone", validatePhone)
}

// ValidBTCAddress checks a Bitcoin address by its prefix family:
// legacy "1..." addresses must be 26-35 characters, "3..." script addresses
// the same, bech32 "bc1..." addresses 14-74 characters.
func ValidBTCAddress(addr string) bool {
	switch {
	case strings.HasPrefix(addr, "1"), strings.HasPrefix(addr, "3"):
		return len(addr) >= 26 && len(addr) <= 35
	case strings.HasPrefix(addr, "bc1"):
		return len(addr) >= 14 && len(addr) <= 74
	default:
		return false
	}
}

// ValidETHAddress checks an Ethereum address: exactly 42 characters with a
// 0x prefix.
func ValidETHAddress(addr string) bool {
	return len(addr) == 42 && strings.HasPrefix(addr, "0x")
}

func validateBTCAddress(fl validator.FieldLevel) bool {
	return ValidBTCAddress(fl.Field().String())
}

func validateETHAddress(fl validator.FieldLevel) bool {
	return ValidETHAddress(fl.Field().String())
}

func validatePhone(fl validator.FieldLevel) bool {
	return phoneRegexp.MatchString(fl.Field().String())
}

// FormatValidationError flattens validator errors into one readable message.
func FormatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, fieldError := range validationErrors {
			messages = append(messages, getFieldErrorMessage(fieldError))
		}
		return strings.Join(messages, "; ")
	}
	return err.Error()
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "btc_address":
		return fmt.Sprintf("%s is not a valid BTC address", field)
	case "eth_address":
		return fmt.Sprintf("%s is not a valid ETH address", field)
	case "phone":
		return fmt.Sprintf("%s is not a valid phone number", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
