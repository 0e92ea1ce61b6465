// Package config defines the data structures related to configuration and
// includes functions for loading and validating the input snapshot.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/canfin/pkg/constants"
	"github.com/iwvelando/canfin/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for canfin: ambient settings, the
// lending policy and the records to calculate over.
type Configuration struct {
	Logging     LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`
	Output      OutputConfig  `json:"output,omitempty" yaml:"output,omitempty"`
	Policy      PolicyConfig  `json:"policy,omitempty" yaml:"policy,omitempty"`
	Assets      []Asset       `json:"assets,omitempty" yaml:"assets,omitempty"`
	Liabilities []Liability   `json:"liabilities,omitempty" yaml:"liabilities,omitempty"`
	Incomes     []Income      `json:"incomes,omitempty" yaml:"incomes,omitempty"`
	Expenses    []Expense     `json:"expenses,omitempty" yaml:"expenses,omitempty"`
	Debts       []Debt        `json:"debts,omitempty" yaml:"debts,omitempty"`
	Loan        LoanInput     `json:"loan,omitempty" yaml:"loan,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `json:"level,omitempty" yaml:"level,omitempty"`           // debug, info, warn, error
	Format     string `json:"format,omitempty" yaml:"format,omitempty"`         // json, console
	OutputFile string `json:"outputFile,omitempty" yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `json:"format,omitempty" yaml:"format,omitempty"` // pretty, csv
}

// PolicyConfig holds the lending policy values.
type PolicyConfig struct {
	TDSRCeiling        float64 `json:"tdsrCeiling,omitempty" yaml:"tdsrCeiling,omitempty"`
	MinimumDownPayment float64 `json:"minimumDownPayment,omitempty" yaml:"minimumDownPayment,omitempty"`
	PrincipalReduction string  `json:"principalReduction,omitempty" yaml:"principalReduction,omitempty"` // clamped, legacy
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %w", err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("policy.tdsrCeiling", constants.DefaultTDSRCeiling)
	v.SetDefault("policy.minimumDownPayment", constants.DefaultMinimumDownPayment)
	v.SetDefault("policy.principalReduction", constants.PrincipalReductionClamped)
	v.SetDefault("loan.type", "personal")
	v.SetDefault("loan.termYears", constants.DefaultLoanTermYears)
	v.SetDefault("loan.interestRate", constants.DefaultLoanInterestRate)
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &configuration, nil
}

// Validate returns an error for settings that make the configuration
// unusable.
func (c *Configuration) Validate() error {
	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		return err
	}
	if err := validation.ValidateLogLevel(c.Logging.Level); err != nil {
		return err
	}
	if err := validation.ValidatePercentage("policy.tdsrCeiling", c.Policy.TDSRCeiling); err != nil {
		return err
	}
	if err := validation.ValidatePercentage("policy.minimumDownPayment", c.Policy.MinimumDownPayment); err != nil {
		return err
	}
	if err := validation.ValidatePrincipalReduction(c.Policy.PrincipalReduction); err != nil {
		return err
	}
	return c.ValidateLoan()
}

// ValidateLoan checks the loan term and interest rate.
func (c *Configuration) ValidateLoan() error {
	if err := validation.ValidateTerm(c.Loan.TermYears); err != nil {
		return err
	}
	return validation.ValidateInterestRate(c.Loan.InterestRate)
}

// ValidateConfiguration performs general validation of the records and
// returns warnings. Warnings never stop a calculation.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string
	for i, a := range c.Assets {
		warnings = append(warnings, validation.RecordWarnings("asset", i, a.Type, a.Value)...)
	}
	for i, l := range c.Liabilities {
		warnings = append(warnings, validation.RecordWarnings("liability", i, l.Type, l.Value)...)
	}
	for i, inc := range c.Incomes {
		warnings = append(warnings, validation.RecordWarnings("income", i, inc.Source, inc.Amount)...)
	}
	for i, e := range c.Expenses {
		warnings = append(warnings, validation.RecordWarnings("expense", i, e.Category, e.Amount)...)
	}
	for i, d := range c.Debts {
		warnings = append(warnings, validation.RecordWarnings("debt", i, d.Description, d.PaymentAmount+d.MinPayment)...)
	}
	if c.Loan.DownPayment != 0 && !strings.EqualFold(strings.TrimSpace(c.Loan.Type), "mortgage") {
		warnings = append(warnings, fmt.Sprintf("down payment of %.2f is ignored for a %s loan", c.Loan.DownPayment, c.Loan.Type))
	}
	if len(c.Incomes) == 0 {
		warnings = append(warnings, "no incomes configured; TDSR will be undefined")
	}
	return warnings
}
