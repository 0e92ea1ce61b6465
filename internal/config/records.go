package config

// Asset is a point-in-time asset value.
type Asset struct {
	Type        string  `json:"type" yaml:"type"`
	Value       float64 `json:"value" yaml:"value"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// Liability is a point-in-time liability value.
type Liability struct {
	Type        string  `json:"type" yaml:"type"`
	Value       float64 `json:"value" yaml:"value"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// Income is a recurring income. An empty frequency means monthly.
type Income struct {
	Source    string  `json:"source" yaml:"source"`
	Amount    float64 `json:"amount" yaml:"amount"`
	Frequency string  `json:"frequency,omitempty" yaml:"frequency,omitempty"`
}

// Expense is a recurring expense. An empty classification means fixed and an
// empty frequency means monthly.
type Expense struct {
	Category       string  `json:"category" yaml:"category"`
	Amount         float64 `json:"amount" yaml:"amount"`
	Classification string  `json:"classification,omitempty" yaml:"classification,omitempty"`
	Frequency      string  `json:"frequency,omitempty" yaml:"frequency,omitempty"`
}

// Debt is an existing debt. Type selects the variant and decides which of the
// remaining fields are read.
type Debt struct {
	Type                        string  `json:"type" yaml:"type"`
	Description                 string  `json:"description,omitempty" yaml:"description,omitempty"`
	Balance                     float64 `json:"balance,omitempty" yaml:"balance,omitempty"`
	CreditLimit                 float64 `json:"creditLimit,omitempty" yaml:"creditLimit,omitempty"`
	InterestRate                float64 `json:"interestRate,omitempty" yaml:"interestRate,omitempty"`
	PaymentAmount               float64 `json:"paymentAmount,omitempty" yaml:"paymentAmount,omitempty"`
	MinPayment                  float64 `json:"minPayment,omitempty" yaml:"minPayment,omitempty"`
	RemainingTermMonths         int     `json:"remainingTermMonths,omitempty" yaml:"remainingTermMonths,omitempty"`
	RemainingAmortizationMonths int     `json:"remainingAmortizationMonths,omitempty" yaml:"remainingAmortizationMonths,omitempty"`
	PaymentPolicy               string  `json:"paymentPolicy,omitempty" yaml:"paymentPolicy,omitempty"`       // interest-only, interest-and-principal
	PaymentFrequency            string  `json:"paymentFrequency,omitempty" yaml:"paymentFrequency,omitempty"` // weekly, biweekly, monthly, accelerated-biweekly
}

// LoanInput describes the loan being applied for. Incomes and debts come from
// the top-level lists.
type LoanInput struct {
	Type         string  `json:"type" yaml:"type"` // personal, mortgage, heloc
	DownPayment  float64 `json:"downPayment,omitempty" yaml:"downPayment,omitempty"`
	TermYears    int     `json:"termYears" yaml:"termYears"`
	InterestRate float64 `json:"interestRate" yaml:"interestRate"`
}
