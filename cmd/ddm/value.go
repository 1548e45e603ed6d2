package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/AHMerrill/Basic-Dividend-Discount/internal/api/request"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/ddm"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/model"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/service"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/validation"
)

// --- Value Command ---

func (c *cli) valueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "value [ticker]",
		Short: "Value one equity",
		Example: `  ddm value WMT
  ddm value KO --policy customShortTermGrowth --short-term-growth 0.05
  ddm value PG --policy customCashFlows --cash-flows 3.9,4.1,4.3,4.5,4.7 --cost-of-equity 0.08`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := c.valuationRequest(args[0])
			if err != nil {
				return err
			}
			opts, err := validation.ValidateValuation(req)
			if err != nil {
				return err
			}

			report, err := c.newApp(c.cfg).ValuationService.Value(cmd.Context(), opts)
			if err != nil {
				return err
			}

			if c.viper.GetBool("json") {
				return writeJSON(cmd.OutOrStdout(), struct {
					model.ValuationReport
					Summary model.Summary `json:"summary"`
				}{report, service.Summarize(report.Result)})
			}
			return printReport(cmd.OutOrStdout(), report)
		},
	}

	f := cmd.Flags()
	f.String("policy", string(ddm.KindDefaultGrowth), "projection policy: default, customCashFlows or customShortTermGrowth")
	f.StringSlice("cash-flows", nil, "five dividend amounts for the customCashFlows policy")
	f.Float64("short-term-growth", 0, "annual dividend growth for the customShortTermGrowth policy")
	f.Float64("long-term-growth", 0, "terminal growth rate (default from DEFAULT_LONG_TERM_GROWTH)")
	f.Float64("cost-of-equity", 0, "cost of equity override (default derived by CAPM)")
	f.String("date", "", "valuation date, YYYY-MM-DD (default today)")
	f.Bool("proceed-without-dividend", false, "value an equity with no announced dividend")
	return cmd
}

// valuationRequest assembles the request from flags and DDM_* variables.
// Unset rate flags stay nil so the service defaults apply.
func (c *cli) valuationRequest(ticker string) (request.ValuationRequest, error) {
	v := c.viper
	req := request.ValuationRequest{
		Ticker:                 ticker,
		Policy:                 v.GetString("policy"),
		ValuationDate:          v.GetString("date"),
		ProceedWithoutDividend: v.GetBool("proceed-without-dividend"),
		ShortTermGrowth:        c.optionalFloat("short-term-growth"),
		LongTermGrowth:         c.optionalFloat("long-term-growth"),
		CostOfEquity:           c.optionalFloat("cost-of-equity"),
	}

	// Flags arrive comma-separated, environment values space-separated.
	raw := strings.Join(v.GetStringSlice("cash-flows"), ",")
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || unicode.IsSpace(r) }) {
		cf, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return request.ValuationRequest{}, fmt.Errorf("invalid cash flow %q: %w", part, err)
		}
		req.CashFlows = append(req.CashFlows, cf)
	}
	return req, nil
}

func (c *cli) optionalFloat(key string) *float64 {
	if !c.viper.IsSet(key) {
		return nil
	}
	v := c.viper.GetFloat64(key)
	return &v
}
