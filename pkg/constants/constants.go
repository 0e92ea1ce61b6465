// Package constants provides shared constants for the canfin calculators.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// WeeksPerYear is the number of weekly periods in a year
	WeeksPerYear = 52

	// BiweeklyPeriodsPerYear is the number of biweekly periods in a year
	BiweeklyPeriodsPerYear = 26

	// DecimalPlaces is the number of decimal places used for currency rounding
	DecimalPlaces = 2

	// RatePrecision is the number of decimal places kept for intermediate
	// interest amounts during amortization.
	RatePrecision = 10

	// PowPrecision is the number of decimal places kept for compound growth
	// factors such as (1 + r)^n.
	PowPrecision = 24

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Lending policy defaults. These vary by jurisdiction and can be overridden in
// the policy section of the configuration.
const (
	// DefaultTDSRCeiling is the maximum total debt service ratio, in percent
	DefaultTDSRCeiling = 40.0

	// DefaultMinimumDownPayment is the minimum mortgage down payment, in
	// percent of the loan amount
	DefaultMinimumDownPayment = 5.0

	// DefaultLoanTermYears is the loan term used when none is configured
	DefaultLoanTermYears = 5

	// DefaultLoanInterestRate is the annual rate, in percent, used when none
	// is configured
	DefaultLoanInterestRate = 5.0
)

// Principal reduction modes applied to the down payment when building an
// amortization schedule.
const (
	// PrincipalReductionClamped uses max(0, maxLoan - downPayment)
	PrincipalReductionClamped = "clamped"

	// PrincipalReductionLegacy uses min(maxLoan, maxLoan - downPayment)
	PrincipalReductionLegacy = "legacy"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "canfin.yaml"

	// DefaultEnvFile is the optional dotenv file read before configuration
	DefaultEnvFile = ".env"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment overrides of configuration keys
	EnvPrefix = "CANFIN"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = "127.0.0.1:8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML snapshots (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)

// Validation constants
const (
	// ToleranceForComparison is the tolerance for financial comparisons
	ToleranceForComparison = 1.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)
