package frequency

import (
	"errors"
	"testing"

	"github.com/iwvelando/canfin/pkg/mathutil"
	"github.com/shopspring/decimal"
)

func TestToMonthly(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		frequency Frequency
		expected  string
	}{
		{"Weekly paycheque", "1200", Weekly, "5200"},
		{"Biweekly paycheque", "1200", Biweekly, "2600"},
		{"Monthly rent", "1850.50", Monthly, "1850.50"},
		{"Annual bonus", "6000", Annually, "500"},
		{"Zero amount", "0", Weekly, "0"},
		{"Negative adjustment", "-120", Annually, "-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ToMonthly(decimal.RequireFromString(tt.amount), tt.frequency)
			if err != nil {
				t.Fatalf("ToMonthly() error = %v", err)
			}
			if !result.Equal(decimal.RequireFromString(tt.expected)) {
				t.Errorf("ToMonthly(%s, %s) = %s, expected %s", tt.amount, tt.frequency, result, tt.expected)
			}
		})
	}
}

func TestToMonthlyRepeatingFraction(t *testing.T) {
	result, err := ToMonthly(decimal.NewFromInt(200), Weekly)
	if err != nil {
		t.Fatalf("ToMonthly() error = %v", err)
	}
	if got := mathutil.Round(result); !got.Equal(decimal.RequireFromString("866.67")) {
		t.Errorf("ToMonthly(200, weekly) = %s, expected 866.67", got)
	}
}

func TestToMonthlyIsLinear(t *testing.T) {
	amounts := []string{"0.01", "17.35", "1000", "98765.43"}
	for _, f := range All() {
		for _, raw := range amounts {
			a := decimal.RequireFromString(raw)
			single, err := ToMonthly(a, f)
			if err != nil {
				t.Fatalf("ToMonthly() error = %v", err)
			}
			double, err := ToMonthly(a.Mul(decimal.NewFromInt(2)), f)
			if err != nil {
				t.Fatalf("ToMonthly() error = %v", err)
			}
			if !mathutil.WithinTolerance(double, single.Mul(decimal.NewFromInt(2)), 0.000000001) {
				t.Errorf("ToMonthly(2*%s, %s) = %s, expected %s", raw, f, double, single.Mul(decimal.NewFromInt(2)))
			}
		}
	}
}

func TestToMonthlyMonthlyIsIdentity(t *testing.T) {
	for _, raw := range []string{"0", "1", "-42.17", "123456789.99"} {
		a := decimal.RequireFromString(raw)
		result, err := ToMonthly(a, Monthly)
		if err != nil {
			t.Fatalf("ToMonthly() error = %v", err)
		}
		if !result.Equal(a) {
			t.Errorf("ToMonthly(%s, monthly) = %s", raw, result)
		}
	}
}

// The calculator this replaces passed unknown frequencies through unchanged.
// Here they are rejected instead.
func TestToMonthlyRejectsUnknownFrequency(t *testing.T) {
	for _, f := range []Frequency{"", "daily", "quarterly", "Monthly"} {
		result, err := ToMonthly(decimal.NewFromInt(500), f)
		if !errors.Is(err, ErrInvalidFrequency) {
			t.Errorf("ToMonthly(500, %q) error = %v, expected ErrInvalidFrequency", f, err)
		}
		if !result.IsZero() {
			t.Errorf("ToMonthly(500, %q) = %s, expected no pass-through", f, result)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected Frequency
		wantErr  bool
	}{
		{"weekly", Weekly, false},
		{" BiWeekly ", Biweekly, false},
		{"MONTHLY", Monthly, false},
		{"annually", Annually, false},
		{"yearly", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFrequency) {
					t.Fatalf("Parse(%q) error = %v, expected ErrInvalidFrequency", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("Parse(%q) = %s, expected %s", tt.input, got, tt.expected)
			}
		})
	}
}
