package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/AHMerrill/Basic-Dividend-Discount/internal/yahoo"
)

// MockYahooClient is a mock implementation of yahoo.Client for testing.
// It returns predefined test data instead of making actual API calls.
// Chart responses are keyed by symbol; symbols without an entry get
// MockResponse.
type MockYahooClient struct {
	// MockResponse is the default response to return from chart queries
	MockResponse yahoo.Response
	// ChartResponses overrides MockResponse per symbol
	ChartResponses map[string]yahoo.Response
	// ChartErrors makes chart queries for a symbol fail
	ChartErrors map[string]error
	// MockSummary is the response to return from QuoteSummary
	MockSummary yahoo.SummaryResponse
	// MockError is the error to return from every query method
	MockError error

	mu         sync.Mutex
	queryCount int
}

// NewMockYahooClient creates a new mock Yahoo client with default test data:
// a ^TNX yield of 4.25%, a ^SP500TR history doubling over ten years and a
// dividend-paying equity.
func NewMockYahooClient() *MockYahooClient {
	return &MockYahooClient{
		MockResponse: CreateMockYahooResponse(5),
		ChartResponses: map[string]yahoo.Response{
			"^TNX":     CreateMockYahooResponseForDate(time.Now().UTC().AddDate(0, 0, -1), 4.25),
			"^SP500TR": CreateMockYahooHistory(100, 200, 10),
		},
		ChartErrors: map[string]error{},
		MockSummary: CreateMockQuoteSummary(),
	}
}

// QueryCount reports how many query calls the mock has served.
func (m *MockYahooClient) QueryCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queryCount
}

// QueryYahooFiveDaySymbol mocks the 5-day symbol query with predefined test data.
func (m *MockYahooClient) QueryYahooFiveDaySymbol(ctx context.Context, symbol string) (yahoo.Response, error) {
	return m.chart(ctx, symbol)
}

// QueryYahooMaxHistory mocks the full-history query with predefined test data.
func (m *MockYahooClient) QueryYahooMaxHistory(ctx context.Context, symbol string) (yahoo.Response, error) {
	return m.chart(ctx, symbol)
}

// QuoteSummary returns the configured MockSummary and MockError.
func (m *MockYahooClient) QuoteSummary(ctx context.Context, _ string) (yahoo.SummaryResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryCount++
	if err := ctx.Err(); err != nil {
		return yahoo.SummaryResponse{}, err
	}
	if m.MockError != nil {
		return yahoo.SummaryResponse{}, m.MockError
	}
	return m.MockSummary, nil
}

// ParseChart delegates to the real ParseChart method since it's pure logic with no side effects.
func (m *MockYahooClient) ParseChart(yahooResult yahoo.Response) (yahoo.PriceChart, error) {
	client := yahoo.NewFinanceClient(yahoo.Options{})
	return client.ParseChart(yahooResult)
}

func (m *MockYahooClient) chart(ctx context.Context, symbol string) (yahoo.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryCount++
	if err := ctx.Err(); err != nil {
		return yahoo.Response{}, err
	}
	if m.MockError != nil {
		return yahoo.Response{}, m.MockError
	}
	if err, ok := m.ChartErrors[symbol]; ok {
		return yahoo.Response{}, err
	}
	if resp, ok := m.ChartResponses[symbol]; ok {
		return resp, nil
	}
	return m.MockResponse, nil
}

// WithError configures the mock to return the specified error.
func (m *MockYahooClient) WithError(err error) *MockYahooClient {
	m.MockError = err
	return m
}

// WithChartError makes chart queries for one symbol fail.
func (m *MockYahooClient) WithChartError(symbol string, err error) *MockYahooClient {
	m.ChartErrors[symbol] = err
	return m
}

// WithResponse configures the mock to return the specified chart response for every symbol.
func (m *MockYahooClient) WithResponse(resp yahoo.Response) *MockYahooClient {
	m.MockResponse = resp
	m.ChartResponses = map[string]yahoo.Response{}
	return m
}

// WithSummary configures the quoteSummary response.
func (m *MockYahooClient) WithSummary(summary yahoo.SummaryResponse) *MockYahooClient {
	m.MockSummary = summary
	return m
}

// WithEmptyResponse configures the mock to return an empty response (no data).
func (m *MockYahooClient) WithEmptyResponse() *MockYahooClient {
	return m.WithResponse(yahoo.Response{
		Chart: yahoo.Chart{
			Result: []yahoo.Result{},
		},
	})
}

// CreateMockYahooResponse creates a mock Yahoo Finance API response with test data.
// The response includes `days` number of days of price data, ending yesterday.
func CreateMockYahooResponse(days int) yahoo.Response {
	now := time.Now().UTC()
	yesterday := time.Date(now.Year(), now.Month(), now.Day()-1, 0, 0, 0, 0, time.UTC)

	timestamps := make([]int64, days)
	opens := make([]*float64, days)
	highs := make([]*float64, days)
	lows := make([]*float64, days)
	closes := make([]*float64, days)
	volumes := make([]*int64, days)

	basePrice := 100.0
	for i := 0; i < days; i++ {
		date := yesterday.AddDate(0, 0, -days+i+1)
		timestamps[i] = date.Unix()

		dayPrice := basePrice + float64(i)*0.5
		open := dayPrice
		high := dayPrice + 1.0
		low := dayPrice - 0.5
		closePrice := dayPrice + 0.25
		volume := int64(1000000 + i*10000)

		opens[i] = &open
		highs[i] = &high
		lows[i] = &low
		closes[i] = &closePrice
		volumes[i] = &volume
	}

	return chartResponse("TEST", timestamps, yahoo.Quote{
		Open:   opens,
		High:   highs,
		Low:    lows,
		Close:  closes,
		Volume: volumes,
	})
}

// CreateMockYahooResponseForDate creates a mock Yahoo response with a single day's data.
func CreateMockYahooResponseForDate(date time.Time, price float64) yahoo.Response {
	volume := int64(1000000)
	return chartResponse("TEST", []int64{date.Unix()}, yahoo.Quote{
		Open:   []*float64{&price},
		High:   []*float64{&price},
		Low:    []*float64{&price},
		Close:  []*float64{&price},
		Volume: []*int64{&volume},
	})
}

// CreateMockYahooHistory creates a two-point history from start to end
// closes spanning the given number of years, ending yesterday.
func CreateMockYahooHistory(start, end float64, years int) yahoo.Response {
	now := time.Now().UTC()
	last := time.Date(now.Year(), now.Month(), now.Day()-1, 0, 0, 0, 0, time.UTC)
	first := last.AddDate(-years, 0, 0)
	return chartResponse("INDEX", []int64{first.Unix(), last.Unix()}, yahoo.Quote{
		Close: []*float64{&start, &end},
	})
}

// CreateMockYahooErrorResponse creates a mock Yahoo response with an error.
func CreateMockYahooErrorResponse(code, description string) yahoo.Response {
	return yahoo.Response{
		Chart: yahoo.Chart{
			Result: []yahoo.Result{},
			Error:  &yahoo.APIError{Code: code, Description: description},
		},
	}
}

func chartResponse(symbol string, timestamps []int64, quote yahoo.Quote) yahoo.Response {
	return yahoo.Response{
		Chart: yahoo.Chart{
			Result: []yahoo.Result{
				{
					Meta: yahoo.Meta{
						Symbol:           symbol,
						Currency:         "USD",
						ExchangeName:     "NMS",
						FullExchangeName: "NASDAQ",
						LongName:         "Test Inc.",
						Shortname:        symbol,
					},
					Timestamp:  timestamps,
					Indicators: yahoo.IndicatorsContainer{Quote: []yahoo.Quote{quote}},
				},
			},
		},
	}
}
