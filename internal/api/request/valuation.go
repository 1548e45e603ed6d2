package request

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrMalformedQuery is returned when a query parameter cannot be parsed.
var ErrMalformedQuery = errors.New("malformed query parameter")

// ValuationRequest represents the request for one valuation run. The same
// fields arrive as a JSON body on POST and as query parameters on GET.
type ValuationRequest struct {
	Ticker                 string    `json:"ticker"`
	Policy                 string    `json:"policy"`
	CashFlows              []float64 `json:"cashFlows,omitempty"`
	ShortTermGrowth        *float64  `json:"shortTermGrowth,omitempty"`
	LongTermGrowth         *float64  `json:"longTermGrowth,omitempty"`
	CostOfEquity           *float64  `json:"costOfEquity,omitempty"`
	ValuationDate          string    `json:"valuationDate,omitempty"` // YYYY-MM-DD
	ProceedWithoutDividend bool      `json:"proceedWithoutDividend"`
}

// ValuationRequestFromQuery builds a ValuationRequest for ticker from query
// parameters. cashFlows is a comma-separated list.
//
// Example:
//
//	/api/valuation/WMT?policy=customCashFlows&cashFlows=2.1,2.2,2.3,2.4,2.5
func ValuationRequestFromQuery(ticker string, q url.Values) (ValuationRequest, error) {
	req := ValuationRequest{
		Ticker:        ticker,
		Policy:        q.Get("policy"),
		ValuationDate: q.Get("valuationDate"),
	}

	if raw := q.Get("cashFlows"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return ValuationRequest{}, fmt.Errorf("%w: cashFlows: %q is not a number", ErrMalformedQuery, part)
			}
			req.CashFlows = append(req.CashFlows, v)
		}
	}

	var err error
	if req.ShortTermGrowth, err = optionalFloat(q, "shortTermGrowth"); err != nil {
		return ValuationRequest{}, err
	}
	if req.LongTermGrowth, err = optionalFloat(q, "longTermGrowth"); err != nil {
		return ValuationRequest{}, err
	}
	if req.CostOfEquity, err = optionalFloat(q, "costOfEquity"); err != nil {
		return ValuationRequest{}, err
	}

	if raw := q.Get("proceedWithoutDividend"); raw != "" {
		req.ProceedWithoutDividend, err = strconv.ParseBool(raw)
		if err != nil {
			return ValuationRequest{}, fmt.Errorf("%w: proceedWithoutDividend: %q is not a boolean", ErrMalformedQuery, raw)
		}
	}

	return req, nil
}

func optionalFloat(q url.Values, key string) (*float64, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %q is not a number", ErrMalformedQuery, key, raw)
	}
	return &v, nil
}
