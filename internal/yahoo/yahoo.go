package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/time/rate"

	"github.com/AHMerrill/Basic-Dividend-Discount/internal/apperrors"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/ddm"
)

// DefaultBaseURL is the Yahoo Finance API host.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// summaryModules are the quoteSummary modules the valuation needs.
var summaryModules = []string{"price", "summaryDetail", "financialData", "defaultKeyStatistics", "calendarEvents"}

// Client is the market data surface the services depend on.
// FinanceClient implements it; tests substitute testutil.MockYahooClient.
type Client interface {
	QueryYahooFiveDaySymbol(ctx context.Context, symbol string) (Response, error)
	QueryYahooMaxHistory(ctx context.Context, symbol string) (Response, error)
	QuoteSummary(ctx context.Context, symbol string) (SummaryResponse, error)
	ParseChart(yahooResult Response) (PriceChart, error)
}

// Options configures a FinanceClient. Zero values select the defaults.
type Options struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64

	// MaxRetries is how often a 429, a 5xx or a transport error is retried,
	// with exponential backoff starting at RetryBase. Zero makes one attempt.
	MaxRetries uint64
	RetryBase  time.Duration
}

// FinanceClient provides methods for fetching financial data from Yahoo Finance API.
// All outbound requests share one token-bucket limiter.
type FinanceClient struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	maxRetries uint64
	retryBase  time.Duration
}

// NewFinanceClient creates a new Yahoo Finance client.
func NewFinanceClient(opts Options) *FinanceClient {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RetryBase <= 0 {
		opts.RetryBase = 250 * time.Millisecond
	}
	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	return &FinanceClient{
		httpClient: &http.Client{Timeout: opts.Timeout},
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		limiter:    rate.NewLimiter(limit, 1),
		maxRetries: opts.MaxRetries,
		retryBase:  opts.RetryBase,
	}
}

// ParseChart converts a raw Yahoo Finance API response into a structured price chart.
//
// The method performs validation to ensure:
//   - A result is present
//   - Timestamp data is present
//   - Close price data is present and aligned with the timestamps
//
// Bars with a null close are skipped; null open/high/low/volume read as zero.
func (c *FinanceClient) ParseChart(yahooResult Response) (PriceChart, error) {
	if len(yahooResult.Chart.Result) == 0 {
		return PriceChart{}, fmt.Errorf("no chart result returned")
	}
	result := yahooResult.Chart.Result[0]

	if len(result.Timestamp) == 0 {
		return PriceChart{}, fmt.Errorf("no price data returned")
	}
	if len(result.Indicators.Quote) == 0 || len(result.Indicators.Quote[0].Close) == 0 {
		return PriceChart{}, fmt.Errorf("no close prices returned")
	}

	quote := result.Indicators.Quote[0]
	if len(quote.Close) != len(result.Timestamp) {
		return PriceChart{}, fmt.Errorf("mismatched data lengths")
	}

	indicators := make([]Indicators, 0, len(result.Timestamp))
	for i, v := range result.Timestamp {
		if quote.Close[i] == nil {
			continue
		}
		indicators = append(indicators, Indicators{
			Date:       time.Unix(v, 0).UTC(),
			PriceOpen:  floatAt(quote.Open, i),
			PriceClose: *quote.Close[i],
			Volume:     intAt(quote.Volume, i),
			PriceHigh:  floatAt(quote.High, i),
			PriceLow:   floatAt(quote.Low, i),
		})
	}
	if len(indicators) == 0 {
		return PriceChart{}, fmt.Errorf("no close prices returned")
	}

	return PriceChart{
		Symbol:           result.Meta.Symbol,
		Currency:         result.Meta.Currency,
		ExchangeName:     result.Meta.ExchangeName,
		FullExchangeName: result.Meta.FullExchangeName,
		LongName:         result.Meta.LongName,
		Shortname:        result.Meta.Shortname,
		Indicators:       indicators,
	}, nil
}

// Last returns the most recent bar.
func (c PriceChart) Last() Indicators {
	return c.Indicators[len(c.Indicators)-1]
}

// First returns the oldest bar.
func (c PriceChart) First() Indicators {
	return c.Indicators[0]
}

// QueryYahooFiveDaySymbol fetches the last 5 days of daily price data for a symbol.
// Used for the latest risk-free yield.
func (c *FinanceClient) QueryYahooFiveDaySymbol(ctx context.Context, symbol string) (Response, error) {
	return c.queryChart(ctx, symbol, url.Values{"interval": {"1d"}, "range": {"5d"}})
}

// QueryYahooMaxHistory fetches the full available history for a symbol at a
// monthly interval. Used for the long-horizon equity return.
func (c *FinanceClient) QueryYahooMaxHistory(ctx context.Context, symbol string) (Response, error) {
	return c.queryChart(ctx, symbol, url.Values{"interval": {"1mo"}, "range": {"max"}})
}

// QuoteSummary fetches the price, dividend, profitability, beta and calendar
// modules for a ticker.
func (c *FinanceClient) QuoteSummary(ctx context.Context, symbol string) (SummaryResponse, error) {
	endpoint := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		c.baseURL, url.PathEscape(symbol), strings.Join(summaryModules, ","))

	var response SummaryResponse
	if err := c.get(ctx, endpoint, &response); err != nil {
		return SummaryResponse{}, fmt.Errorf("%s: %w", symbol, err)
	}
	if e := response.QuoteSummary.Error; e != nil {
		if e.Code == "Not Found" {
			return SummaryResponse{}, fmt.Errorf("%w: %s", apperrors.ErrSymbolNotFound, symbol)
		}
		return SummaryResponse{}, fmt.Errorf("yahoo error: %w", e)
	}
	if len(response.QuoteSummary.Result) == 0 {
		return SummaryResponse{}, fmt.Errorf("%w: %s", apperrors.ErrSymbolNotFound, symbol)
	}
	return response, nil
}

func (c *FinanceClient) queryChart(ctx context.Context, symbol string, params url.Values) (Response, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(symbol), params.Encode())

	var response Response
	if err := c.get(ctx, endpoint, &response); err != nil {
		return Response{}, fmt.Errorf("%s: %w", symbol, err)
	}
	if e := response.Chart.Error; e != nil {
		if e.Code == "Not Found" {
			return Response{}, fmt.Errorf("%w: %s", apperrors.ErrSymbolNotFound, symbol)
		}
		return Response{}, fmt.Errorf("yahoo error: %w", e)
	}
	if len(response.Chart.Result) == 0 {
		return Response{}, fmt.Errorf("%w: no results returned for symbol %s", apperrors.ErrSymbolNotFound, symbol)
	}
	return response, nil
}

// get fetches endpoint into out, retrying throttled and failed attempts.
func (c *FinanceClient) get(ctx context.Context, endpoint string, out any) error {
	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.retryBase))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		return c.getOnce(ctx, endpoint, out)
	})
}

// getOnce waits for the limiter, executes the request and decodes the JSON body.
// Yahoo answers unknown symbols with 404 and an error envelope, so a 404 body
// is still decoded for the caller to inspect.
func (c *FinanceClient) getOnce(ctx context.Context, endpoint string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return retry.RetryableError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests, resp.StatusCode >= http.StatusInternalServerError:
		return retry.RetryableError(fmt.Errorf("unexpected status %d from yahoo", resp.StatusCode))
	case resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound:
		return fmt.Errorf("unexpected status %d from yahoo", resp.StatusCode)
	}
	if err := json.Unmarshal(data, out); err != nil {
		if resp.StatusCode == http.StatusNotFound {
			return apperrors.ErrSymbolNotFound
		}
		return fmt.Errorf("decoding yahoo response: %w", err)
	}
	return nil
}

// ParseFundamentals maps a quoteSummary response onto the engine's
// Fundamentals. Figures Yahoo omits stay nil; a missing trailing dividend
// reads as zero.
func ParseFundamentals(summary SummaryResponse) (ddm.Fundamentals, error) {
	if len(summary.QuoteSummary.Result) == 0 {
		return ddm.Fundamentals{}, errors.New("no quote summary result")
	}
	r := summary.QuoteSummary.Result[0]

	var f ddm.Fundamentals
	if p := r.Price; p != nil {
		f.CompanyName = p.LongName
		if f.CompanyName == "" {
			f.CompanyName = p.ShortName
		}
		if p.RegularMarketPrice.Raw != nil {
			f.LastPrice = *p.RegularMarketPrice.Raw
		}
	}
	if d := r.SummaryDetail; d != nil {
		if d.TrailingAnnualDividendRate.Raw != nil {
			f.TrailingDividend = *d.TrailingAnnualDividendRate.Raw
		}
		f.ForwardDividend = d.DividendRate.Raw
		f.PayoutRatio = d.PayoutRatio.Raw
		f.Beta = d.Beta.Raw
	}
	if fd := r.FinancialData; fd != nil {
		f.ROE = fd.ReturnOnEquity.Raw
		if fd.CurrentPrice.Raw != nil {
			f.LastPrice = *fd.CurrentPrice.Raw
		}
	}
	if f.Beta == nil && r.DefaultKeyStatistics != nil {
		f.Beta = r.DefaultKeyStatistics.Beta.Raw
	}
	if ce := r.CalendarEvents; ce != nil && ce.DividendDate.Raw != nil && *ce.DividendDate.Raw > 0 {
		t := time.Unix(int64(*ce.DividendDate.Raw), 0).UTC()
		f.NextDividendDate = &t
	}
	return f, nil
}

func floatAt(values []*float64, i int) float64 {
	if i < len(values) && values[i] != nil {
		return *values[i]
	}
	return 0
}

func intAt(values []*int64, i int) int64 {
	if i < len(values) && values[i] != nil {
		return *values[i]
	}
	return 0
}
