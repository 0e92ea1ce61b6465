// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
	"math"

	"github.com/iwvelando/canfin/pkg/constants"
)

// ValidatePercentage checks that a policy percentage lies in (0, 100].
func ValidatePercentage(name string, value float64) error {
	if math.IsNaN(value) || value <= 0 || value > constants.PercentageMultiplier {
		return fmt.Errorf("%s must be greater than 0 and at most %.0f, got %v",
			name, constants.PercentageMultiplier, value)
	}
	return nil
}

// ValidatePrincipalReduction checks the principal reduction mode.
func ValidatePrincipalReduction(mode string) error {
	if mode != constants.PrincipalReductionClamped && mode != constants.PrincipalReductionLegacy {
		return fmt.Errorf("expected principal reduction of %s or %s, got %q",
			constants.PrincipalReductionClamped, constants.PrincipalReductionLegacy, mode)
	}
	return nil
}

// ValidateTerm checks that a loan term in years is usable.
func ValidateTerm(termYears int) error {
	if termYears <= 0 {
		return fmt.Errorf("loan term must be at least one year, got %d", termYears)
	}
	return nil
}

// ValidateInterestRate checks that an annual interest rate is not negative.
func ValidateInterestRate(rate float64) error {
	if math.IsNaN(rate) || rate < 0 {
		return fmt.Errorf("interest rate must not be negative, got %v", rate)
	}
	return nil
}

// RecordWarnings returns warnings for a labelled amount that is negative or
// lacks a label. kind names the record type in the message.
func RecordWarnings(kind string, index int, label string, amount float64) []string {
	var warnings []string
	if label == "" {
		warnings = append(warnings, fmt.Sprintf("%s #%d has no label", kind, index+1))
	}
	if amount < 0 {
		warnings = append(warnings, fmt.Sprintf("%s '%s' has a negative amount (%.2f)", kind, label, amount))
	}
	return warnings
}
