package yahoo

import "time"

// Response represents the raw JSON response structure from the Yahoo Finance chart API.
//
// The structure includes:
//   - Chart.Result: Array of result objects (typically contains one element)
//   - Chart.Result[].Meta: Symbol metadata (name, currency, exchange)
//   - Chart.Result[].Timestamp: Unix timestamps for each data point
//   - Chart.Result[].Indicators: Price data arrays; Yahoo emits null for missing bars
//   - Chart.Error: Optional error object from Yahoo API
type Response struct {
	Chart Chart `json:"chart"`
}

// Chart is the top-level chart envelope.
type Chart struct {
	Result []Result  `json:"result"`
	Error  *APIError `json:"error"`
}

// Result holds one symbol's chart data.
type Result struct {
	Meta       Meta                `json:"meta"`
	Timestamp  []int64             `json:"timestamp"`
	Indicators IndicatorsContainer `json:"indicators"`
}

// Meta is the symbol metadata attached to a chart result.
type Meta struct {
	Currency           string  `json:"currency"`
	Symbol             string  `json:"symbol"`
	ExchangeName       string  `json:"exchangeName"`
	FullExchangeName   string  `json:"fullExchangeName"`
	LongName           string  `json:"longName"`
	Shortname          string  `json:"shortName"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
}

// IndicatorsContainer wraps the OHLCV arrays.
type IndicatorsContainer struct {
	Quote []Quote `json:"quote"`
}

// Quote holds parallel OHLCV arrays, index-aligned with Result.Timestamp.
type Quote struct {
	Open   []*float64 `json:"open"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
}

// APIError is the error object Yahoo embeds in chart and quoteSummary responses.
type APIError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *APIError) Error() string {
	return e.Code + ": " + e.Description
}

// PriceChart represents a parsed and structured price chart from Yahoo Finance.
// Bars without a close price are dropped during parsing, so Indicators is
// ordered by date and every entry has a usable close.
type PriceChart struct {
	Currency         string       `json:"currency"`
	Symbol           string       `json:"symbol"`
	ExchangeName     string       `json:"exchangeName"`
	FullExchangeName string       `json:"fullExchangeName"`
	LongName         string       `json:"longName"`
	Shortname        string       `json:"shortName"`
	Indicators       []Indicators `json:"indicators"`
}

// Indicators represents a single day's price data for a financial instrument.
type Indicators struct {
	Date       time.Time
	PriceOpen  float64
	PriceClose float64
	Volume     int64
	PriceHigh  float64
	PriceLow   float64
}

// SummaryResponse is the raw quoteSummary payload.
type SummaryResponse struct {
	QuoteSummary struct {
		Result []SummaryResult `json:"result"`
		Error  *APIError       `json:"error"`
	} `json:"quoteSummary"`
}

// SummaryResult carries the quoteSummary modules requested by QuoteSummary.
// A module Yahoo does not return for a symbol is left nil.
type SummaryResult struct {
	Price                *PriceModule          `json:"price"`
	SummaryDetail        *SummaryDetailModule  `json:"summaryDetail"`
	FinancialData        *FinancialDataModule  `json:"financialData"`
	DefaultKeyStatistics *KeyStatisticsModule  `json:"defaultKeyStatistics"`
	CalendarEvents       *CalendarEventsModule `json:"calendarEvents"`
}

// Value is Yahoo's {raw, fmt} number wrapper. Yahoo sends an empty object
// when a figure is unavailable, which leaves Raw nil.
type Value struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

type PriceModule struct {
	LongName           string `json:"longName"`
	ShortName          string `json:"shortName"`
	Currency           string `json:"currency"`
	RegularMarketPrice Value  `json:"regularMarketPrice"`
}

type SummaryDetailModule struct {
	DividendRate               Value `json:"dividendRate"`
	TrailingAnnualDividendRate Value `json:"trailingAnnualDividendRate"`
	PayoutRatio                Value `json:"payoutRatio"`
	Beta                       Value `json:"beta"`
}

type FinancialDataModule struct {
	CurrentPrice   Value `json:"currentPrice"`
	ReturnOnEquity Value `json:"returnOnEquity"`
}

type KeyStatisticsModule struct {
	Beta Value `json:"beta"`
}

type CalendarEventsModule struct {
	// DividendDate is a Unix timestamp in seconds.
	DividendDate Value `json:"dividendDate"`
}
