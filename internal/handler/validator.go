package handler

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/stardust-engine/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	_ = v.RegisterValidation("address", validateAddress)
	_ = v.RegisterValidation("asset_type", validateEnum(func(s string) error {
		_, err := domain.ParseAssetType(s)
		return err
	}))
	_ = v.RegisterValidation("rarity", validateEnum(func(s string) error {
		_, err := domain.ParseRarity(s)
		return err
	}))
	_ = v.RegisterValidation("battle_kind", validateEnum(func(s string) error {
		_, err := domain.ParseBattleKind(s)
		return err
	}))
	_ = v.RegisterValidation("move_kind", validateEnum(func(s string) error {
		_, err := domain.ParseMoveKind(s)
		return err
	}))

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// This prevents leaking internal struct names and provides cleaner error messages
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "address":
			errs[field] = "Invalid player address"
		case "asset_type":
			errs[field] = "Invalid asset type"
		case "rarity":
			errs[field] = "Invalid rarity"
		case "battle_kind":
			errs[field] = "Invalid battle type"
		case "move_kind":
			errs[field] = "Invalid move type"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "gt":
			errs[field] = fmt.Sprintf("Must be greater than %s", e.Param())
		case "excludesall":
			errs[field] = "Contains invalid characters"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// MaxAddressLength bounds player addresses accepted over HTTP
const MaxAddressLength = 128

// validAddress accepts non-empty printable addresses without whitespace
func validAddress(s string) bool {
	if s == "" || len(s) > MaxAddressLength {
		return false
	}
	for _, r := range s {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

func validateAddress(fl validator.FieldLevel) bool {
	return validAddress(fl.Field().String())
}

// validateEnum adapts a domain parser to a validation func. Empty values pass;
// use 'required' to demand a value.
func validateEnum(parse func(string) error) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		return parse(s) == nil
	}
}
