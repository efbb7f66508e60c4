package limit

import "github.com/shopspring/decimal"

// SpendingLimit holds per-period ceilings. Zero means no limit is set.
type SpendingLimit struct {
	Weekly  decimal.Decimal `json:"weekly"`
	Monthly decimal.Decimal `json:"monthly"`
	Yearly  decimal.Decimal `json:"yearly"`
}

// Draft is user input; blank fields clear the corresponding limit.
type Draft struct {
	Weekly  string
	Monthly string
	Yearly  string
}
