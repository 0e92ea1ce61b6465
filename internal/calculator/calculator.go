package calculator

import (
	"fmt"

	"github.com/iwvelando/canfin/pkg/aggregate"
	"github.com/iwvelando/canfin/pkg/constants"
	"github.com/iwvelando/canfin/pkg/mathutil"
	"github.com/iwvelando/canfin/pkg/validation"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Policy holds the lending policy values that vary by jurisdiction.
type Policy struct {
	// TDSRCeiling is the maximum total debt service ratio, in percent.
	TDSRCeiling decimal.Decimal
	// MinimumDownPayment is the minimum mortgage down payment, in percent.
	MinimumDownPayment decimal.Decimal
	// PrincipalReduction selects how a down payment reduces the loan.
	PrincipalReduction string
}

// DefaultPolicy returns the built-in lending policy.
func DefaultPolicy() Policy {
	return Policy{
		TDSRCeiling:        decimal.NewFromFloat(constants.DefaultTDSRCeiling),
		MinimumDownPayment: decimal.NewFromFloat(constants.DefaultMinimumDownPayment),
		PrincipalReduction: constants.PrincipalReductionClamped,
	}
}

// Validate checks that the policy values are usable.
func (p Policy) Validate() error {
	if err := validation.ValidatePercentage("tdsrCeiling", p.TDSRCeiling.InexactFloat64()); err != nil {
		return err
	}
	if err := validation.ValidatePercentage("minimumDownPayment", p.MinimumDownPayment.InexactFloat64()); err != nil {
		return err
	}
	return validation.ValidatePrincipalReduction(p.PrincipalReduction)
}

// Calculator runs the calculations under a fixed policy.
type Calculator struct {
	logger *zap.Logger
	policy Policy
}

// New creates a Calculator. A nil logger is replaced with a no-op logger.
func New(logger *zap.Logger, policy Policy) (*Calculator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid policy: %w", err)
	}
	return &Calculator{logger: logger, policy: policy}, nil
}

// Policy returns the policy the calculator was built with.
func (c *Calculator) Policy() Policy {
	return c.policy
}

func roundGroups(groups []aggregate.Group) []aggregate.Group {
	for i := range groups {
		groups[i].Amount = mathutil.Round(groups[i].Amount)
		if groups[i].Percentage != nil {
			pct := mathutil.Round(*groups[i].Percentage)
			groups[i].Percentage = &pct
		}
	}
	return groups
}
