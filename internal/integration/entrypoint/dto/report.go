package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartbiz/backend/internal/domain/entity"
	"github.com/smartbiz/backend/internal/domain/valueobject"
)

// FormattedTotals holds the totals rendered in the display currency.
type FormattedTotals struct {
	Currency     string `json:"currency"`
	TotalIncome  string `json:"totalIncome"`
	TotalExpense string `json:"totalExpense"`
	TotalProfit  string `json:"totalProfit"`
}

// TotalsResponse is the payload of GET /total_profit/:userId.
type TotalsResponse struct {
	UserID       string          `json:"userId"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	TotalProfit  decimal.Decimal `json:"totalProfit"`
	Formatted    FormattedTotals `json:"formatted"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// HistoryResponse is the payload of the income and expense history endpoints.
type HistoryResponse struct {
	Records []RecordResponse `json:"records"`
	Total   decimal.Decimal  `json:"total"`
}

// ToTotalsResponse converts an aggregate, formatting amounts in currencyCode.
func ToTotalsResponse(agg *entity.ProfitAggregate, currencyCode string) TotalsResponse {
	return TotalsResponse{
		UserID:       agg.OwnerID.String(),
		TotalIncome:  agg.TotalIncome,
		TotalExpense: agg.TotalExpense,
		TotalProfit:  agg.TotalProfit,
		Formatted: FormattedTotals{
			Currency:     currencyCode,
			TotalIncome:  valueobject.FormatAmount(agg.TotalIncome, currencyCode),
			TotalExpense: valueobject.FormatAmount(agg.TotalExpense, currencyCode),
			TotalProfit:  valueobject.FormatAmount(agg.TotalProfit, currencyCode),
		},
		UpdatedAt: agg.UpdatedAt,
	}
}

// ToHistoryResponse converts a list of records and their sum.
func ToHistoryResponse(records []*entity.TransactionRecord, total decimal.Decimal) HistoryResponse {
	out := make([]RecordResponse, len(records))
	for i, r := range records {
		out[i] = ToRecordResponse(r)
	}
	return HistoryResponse{Records: out, Total: total}
}
