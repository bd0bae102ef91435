// Package validate provides configuration validation utilities for cmdq components.
//
// This file implements the common validation patterns shared by the queue,
// dispatcher, API and daemon configs. All functions delegate to the
// go-playground/validator library for consistent behavior and messages.
//
// VALIDATION UTILITIES:
//   - Port validation: Standard port range checking (1-65535)
//   - String validation: Required field and non-empty string checking
//   - Range validation: Inclusive integer and duration bounds
//   - Enum validation: Membership in a fixed set of values
package validate

import (
	"fmt"
	"strings"
	"time"
)

// ValidatePortRange validates that a port number is within the valid range (1-65535).
func ValidatePortRange(port int) error {
	return ValidateField(port, "required,min=1,max=65535")
}

// ValidateRequiredString validates that a string field is not empty.
func ValidateRequiredString(value, fieldName string) error {
	if err := ValidateField(value, "required"); err != nil {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	return nil
}

// ValidateIntRange validates that value lies within [minVal, maxVal].
//
// Used for buffer capacities, journal sizes and request counts where the
// bounds are derived at runtime and cannot live in a struct tag.
func ValidateIntRange(value, minVal, maxVal int, name string) error {
	tag := fmt.Sprintf("min=%d,max=%d", minVal, maxVal)
	if err := ValidateField(value, tag); err != nil {
		return fmt.Errorf("%s must be between %d and %d, got %d", name, minVal, maxVal, value)
	}
	return nil
}

// ValidateDurationRange validates that d lies within [minVal, maxVal].
func ValidateDurationRange(d, minVal, maxVal time.Duration, name string) error {
	if d < minVal || d > maxVal {
		return fmt.Errorf("%s must be between %v and %v, got %v", name, minVal, maxVal, d)
	}
	return nil
}

// ValidateOneOf validates that value is one of the allowed options.
func ValidateOneOf(value, name string, allowed ...string) error {
	tag := "oneof=" + strings.Join(allowed, " ")
	if err := ValidateField(value, tag); err != nil {
		return fmt.Errorf("invalid %s '%s' - valid: %s", name, value, strings.Join(allowed, ", "))
	}
	return nil
}
