package validation

import (
	"math"
	"testing"
)

func TestValidatePercentage(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		expectErr bool
	}{
		{"Typical TDSR ceiling", 40, false},
		{"Upper bound", 100, false},
		{"Small minimum down payment", 0.5, false},
		{"Zero", 0, true},
		{"Negative", -5, true},
		{"Above one hundred", 100.01, true},
		{"NaN", math.NaN(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePercentage("tdsrCeiling", tt.value)
			if (err != nil) != tt.expectErr {
				t.Errorf("ValidatePercentage(%v) error = %v, expectErr %v", tt.value, err, tt.expectErr)
			}
		})
	}
}

func TestValidatePrincipalReduction(t *testing.T) {
	for _, mode := range []string{"clamped", "legacy"} {
		if err := ValidatePrincipalReduction(mode); err != nil {
			t.Errorf("ValidatePrincipalReduction(%q) unexpected error = %v", mode, err)
		}
	}
	for _, mode := range []string{"", "Clamped", "none"} {
		if err := ValidatePrincipalReduction(mode); err == nil {
			t.Errorf("ValidatePrincipalReduction(%q) expected error but got none", mode)
		}
	}
}

func TestValidateTermAndRate(t *testing.T) {
	if err := ValidateTerm(5); err != nil {
		t.Errorf("ValidateTerm(5) unexpected error = %v", err)
	}
	if err := ValidateTerm(0); err == nil {
		t.Error("ValidateTerm(0) expected error but got none")
	}
	if err := ValidateInterestRate(0); err != nil {
		t.Errorf("ValidateInterestRate(0) unexpected error = %v", err)
	}
	if err := ValidateInterestRate(-0.5); err == nil {
		t.Error("ValidateInterestRate(-0.5) expected error but got none")
	}
}

func TestRecordWarnings(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		amount   float64
		expected int
	}{
		{"Clean record", "Salary", 5000, 0},
		{"Missing label", "", 10, 1},
		{"Negative amount", "Refund", -20, 1},
		{"Missing label and negative amount", "", -20, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := RecordWarnings("Income", 0, tt.label, tt.amount)
			if len(warnings) != tt.expected {
				t.Errorf("RecordWarnings() = %v, expected %d warnings", warnings, tt.expected)
			}
		})
	}
}
