package analytics

import "github.com/shopspring/decimal"

// DashboardSummary is the pre-shaped aggregate record produced by the external
// Analytics service. The portal consumes it as-is and computes nothing here.
type DashboardSummary struct {
	RequestTimeSeries []RequestVolumePoint `json:"requestTimeSeries"`
	PriceTimeSeries   []PricePoint         `json:"priceTimeSeries"`
	ApprovalRates     []ApprovalSlice      `json:"approvalRates"`
	TopPartners       []PartnerActivity    `json:"topPartners"`
	VolumeByType      []TypeVolume         `json:"volumeByType"`
	ActivityByDay     []DayActivity        `json:"activityByDay"`
	TotalVolume       int                  `json:"totalVolume"`
	AvgResponseTime   float64              `json:"avgResponseTime"`
	SuccessRate       float64              `json:"successRate"`
	AvgPrice          decimal.Decimal      `json:"avgPrice"`
}

// RequestVolumePoint is one day of buy/sell request counts
type RequestVolumePoint struct {
	Date         string `json:"date"`
	BuyRequests  int    `json:"buyRequests"`
	SellRequests int    `json:"sellRequests"`
}

// PricePoint is one day of price statistics, SGD per tonne
type PricePoint struct {
	Date     string          `json:"date"`
	AvgPrice decimal.Decimal `json:"avgPrice"`
	MinPrice decimal.Decimal `json:"minPrice"`
	MaxPrice decimal.Decimal `json:"maxPrice"`
}

// ApprovalSlice is one slice of the approval-rate breakdown
type ApprovalSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// PartnerActivity is a counterparty ranked by transaction count
type PartnerActivity struct {
	Company      string `json:"company"`
	Transactions int    `json:"transactions"`
}

// TypeVolume is total traded volume for one request direction
type TypeVolume struct {
	Type   string `json:"type"`
	Volume int    `json:"volume"`
}

// DayActivity is request count for one day of the week
type DayActivity struct {
	Day      string `json:"day"`
	Requests int    `json:"requests"`
}
