package account

import "github.com/shopspring/decimal"

// Balance is a read-only snapshot of a company's holdings. The trading portal
// consumes it as-is; settlement never happens here.
type Balance struct {
	CompanyName   string          `json:"companyName" db:"company_name"`
	CarbonBalance int             `json:"carbonBalance" db:"carbon_balance"`
	CashBalance   decimal.Decimal `json:"cashBalance" db:"cash_balance"`
}
