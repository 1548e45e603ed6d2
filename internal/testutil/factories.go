package testutil

import (
	"time"

	"github.com/AHMerrill/Basic-Dividend-Discount/internal/yahoo"
)

// SummaryBuilder provides a fluent interface for creating quoteSummary test responses.
//
// Example usage:
//
//	// Dividend payer with defaults
//	summary := testutil.NewSummary().Build()
//
//	// Customized equity
//	summary := testutil.NewSummary().
//	    WithPrice(55).
//	    WithoutBeta().
//	    Build()
type SummaryBuilder struct {
	Name             string
	Price            *float64
	TrailingDividend *float64
	ForwardDividend  *float64
	PayoutRatio      *float64
	ROE              *float64
	Beta             *float64
	DividendDate     *time.Time
}

// NewSummary creates a SummaryBuilder for a dividend payer with a $2.00
// trailing dividend, 20% ROE, 50% payout, beta 0.8 and a $40 price. The next
// dividend falls 30 days from now.
func NewSummary() *SummaryBuilder {
	next := time.Now().UTC().AddDate(0, 0, 30)
	return &SummaryBuilder{
		Name:             "Test Dividend Co.",
		Price:            ptr(40.00),
		TrailingDividend: ptr(2.00),
		ForwardDividend:  ptr(2.10),
		PayoutRatio:      ptr(0.5),
		ROE:              ptr(0.20),
		Beta:             ptr(0.8),
		DividendDate:     &next,
	}
}

func (b *SummaryBuilder) WithName(name string) *SummaryBuilder {
	b.Name = name
	return b
}

func (b *SummaryBuilder) WithPrice(price float64) *SummaryBuilder {
	b.Price = ptr(price)
	return b
}

func (b *SummaryBuilder) WithTrailingDividend(dividend float64) *SummaryBuilder {
	b.TrailingDividend = ptr(dividend)
	return b
}

func (b *SummaryBuilder) WithROE(roe float64) *SummaryBuilder {
	b.ROE = ptr(roe)
	return b
}

func (b *SummaryBuilder) WithPayoutRatio(payout float64) *SummaryBuilder {
	b.PayoutRatio = ptr(payout)
	return b
}

func (b *SummaryBuilder) WithBeta(beta float64) *SummaryBuilder {
	b.Beta = ptr(beta)
	return b
}

// WithoutBeta drops beta from both modules that can carry it.
func (b *SummaryBuilder) WithoutBeta() *SummaryBuilder {
	b.Beta = nil
	return b
}

// NonPayer removes every dividend figure and the dividend date.
func (b *SummaryBuilder) NonPayer() *SummaryBuilder {
	b.TrailingDividend = nil
	b.ForwardDividend = nil
	b.PayoutRatio = nil
	b.DividendDate = nil
	return b
}

// Build assembles the raw quoteSummary response.
func (b *SummaryBuilder) Build() yahoo.SummaryResponse {
	var dividendDate yahoo.Value
	if b.DividendDate != nil {
		dividendDate = yahoo.Value{Raw: ptr(float64(b.DividendDate.Unix()))}
	}

	var resp yahoo.SummaryResponse
	resp.QuoteSummary.Result = []yahoo.SummaryResult{{
		Price: &yahoo.PriceModule{
			LongName:           b.Name,
			Currency:           "USD",
			RegularMarketPrice: yahoo.Value{Raw: b.Price},
		},
		SummaryDetail: &yahoo.SummaryDetailModule{
			DividendRate:               yahoo.Value{Raw: b.ForwardDividend},
			TrailingAnnualDividendRate: yahoo.Value{Raw: b.TrailingDividend},
			PayoutRatio:                yahoo.Value{Raw: b.PayoutRatio},
			Beta:                       yahoo.Value{Raw: b.Beta},
		},
		FinancialData: &yahoo.FinancialDataModule{
			CurrentPrice:   yahoo.Value{Raw: b.Price},
			ReturnOnEquity: yahoo.Value{Raw: b.ROE},
		},
		DefaultKeyStatistics: &yahoo.KeyStatisticsModule{},
		CalendarEvents: &yahoo.CalendarEventsModule{
			DividendDate: dividendDate,
		},
	}}
	return resp
}

// CreateMockQuoteSummary creates the default dividend-payer quoteSummary response.
func CreateMockQuoteSummary() yahoo.SummaryResponse {
	return NewSummary().Build()
}

// CreateMockNonPayerSummary creates a quoteSummary response with no dividend.
func CreateMockNonPayerSummary() yahoo.SummaryResponse {
	return NewSummary().NonPayer().Build()
}

func ptr(v float64) *float64 {
	return &v
}
