package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// MaxAnchorIDLength bounds cloud anchor ids
	MaxAnchorIDLength = 128

	anchorIDPattern = regexp.MustCompile(`^[A-Za-z0-9_.:\-]+$`)
)

func init() {
	validate = validator.New()
}

// AnchorEntryRequest is a hosted anchor about to enter the history
type AnchorEntryRequest struct {
	ID   string `json:"id" validate:"required,max=128"`
	Name string `json:"name" validate:"max=64"`
	Type string `json:"type" validate:"required,max=32"`
}

// PairEntryRequest is a walkable connection about to enter the history
type PairEntryRequest struct {
	ID1 string `json:"id1" validate:"required,max=128"`
	ID2 string `json:"id2" validate:"required,max=128,nefield=ID1"`
}

// ValidateAnchorEntry validates an anchor history entry
func ValidateAnchorEntry(req *AnchorEntryRequest) error {
	if req == nil {
		return errors.New("anchor entry cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	return ValidateAnchorID(req.ID)
}

// ValidatePairEntry validates a pair history entry
func ValidatePairEntry(req *PairEntryRequest) error {
	if req == nil {
		return errors.New("pair entry cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	if err := ValidateAnchorID(req.ID1); err != nil {
		return fmt.Errorf("ID1: %w", err)
	}
	if err := ValidateAnchorID(req.ID2); err != nil {
		return fmt.Errorf("ID2: %w", err)
	}
	return nil
}

// ValidateAnchorID validates the characters of a cloud anchor id
func ValidateAnchorID(id string) error {
	if id == "" {
		return errors.New("anchor id cannot be empty")
	}
	if len(id) > MaxAnchorIDLength {
		return fmt.Errorf("anchor id exceeds maximum length of %d characters", MaxAnchorIDLength)
	}
	if !anchorIDPattern.MatchString(id) {
		return fmt.Errorf("anchor id '%s' contains invalid characters", id)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Field()
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "max":
			return fmt.Errorf("%s: must not exceed %s characters", field, param)
		case "nefield":
			return fmt.Errorf("%s: must differ from %s", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}
