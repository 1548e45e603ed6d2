package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/AHMerrill/Basic-Dividend-Discount/internal/model"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/service"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func money(v float64) string { return humanize.FormatFloat("#,###.##", v) }
func pct(v float64) string   { return fmt.Sprintf("%.2f%%", v*100) }

func optionalPct(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return pct(*v)
}

// printReport writes the metrics panel, the schedule and the summary as
// aligned tables.
func printReport(w io.Writer, report model.ValuationReport) error {
	f, res := report.Fundamentals, report.Result
	summary := service.Summarize(res)

	fmt.Fprintf(w, "%s (%s)\n", f.CompanyName, report.Ticker)
	fmt.Fprintf(w, "run %s, policy %s\n\n", report.ID, res.Policy)
	if res.NonDividendPayer {
		fmt.Fprintf(w, "WARNING: %s has no announced upcoming dividend; figures produced on request.\n\n", report.Ticker)
	}
	if report.Rates.UsedFallback() {
		fmt.Fprintln(w, "WARNING: a market rate proxy was unavailable; a fallback constant was used.")
		fmt.Fprintln(w)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	beta := "n/a"
	if f.Beta != nil {
		beta = fmt.Sprintf("%.2f", *f.Beta)
	}
	fmt.Fprintf(tw, "Last price\t%s\tRisk-free rate\t%s (%s)\n", money(f.LastPrice), pct(res.RiskFreeRate), report.Rates.RiskFreeSource)
	fmt.Fprintf(tw, "Trailing dividend\t%s\tMarket risk premium\t%s (%s)\n", money(f.TrailingDividend), pct(res.MarketRiskPremium), report.Rates.EquityReturnSource)
	fmt.Fprintf(tw, "Beta\t%s\tCost of equity\t%s (%s)\n", beta, pct(res.CostOfEquity), res.CostOfEquitySource)
	fmt.Fprintf(tw, "Return on equity\t%s\tLong-term growth\t%s\n", optionalPct(f.ROE), pct(res.LongTermGrowth))
	fmt.Fprintf(tw, "Payout ratio\t%s\tCalculated growth\t%s\n", optionalPct(f.PayoutRatio), optionalPct(res.NearTermGrowth))
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Period\tDate\tExponent\tDividend\tGrowth\tPartial yr\tAdj. dividend\tTerminal value\tSum\tPresent value\t")
	for _, p := range res.Schedule {
		fmt.Fprintf(tw, "%d\t%s\t%.4f\t%s\t%s\t%.4f\t%s\t%s\t%s\t%s\t\n",
			p.Index, p.DividendDate.Format("2006-01-02"), p.PeriodsToDiscount,
			money(p.Dividend), pct(p.GrowthFromPrevious), p.PartialYearFactor,
			money(p.AdjustedDividend), money(p.TerminalValue), money(p.PeriodSum), money(p.PresentValue))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Total present value\t%s\n", money(summary.TotalPresentValue))
	fmt.Fprintf(tw, "Market price\t%s\n", money(summary.MarketPrice))
	fmt.Fprintf(tw, "Valuation difference\t%s\n", money(summary.ValuationDifference))
	fmt.Fprintf(tw, "Valuation ratio\t%.4f\n", summary.ValuationRatio)
	fmt.Fprintf(tw, "Implied return\t%s\n", optionalPct(summary.ImpliedReturn))
	fmt.Fprintf(tw, "Recommendation\t%s\n", summary.Recommendation)
	return tw.Flush()
}

func printRates(w io.Writer, rates model.MarketSnapshot) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Risk-free rate\t%s\t%s (%s)\n", pct(rates.RiskFreeRate), rates.RiskFreeSymbol, rates.RiskFreeSource)
	fmt.Fprintf(tw, "Equity return\t%s\t%s (%s)\n", pct(rates.EquityReturn), rates.EquityIndexSymbol, rates.EquityReturnSource)
	fmt.Fprintf(tw, "Risk premium\t%s\t\n", pct(rates.RiskPremium))
	fmt.Fprintf(tw, "Fetched\t%s\t%s\n", humanize.RelTime(rates.FetchedAt, time.Now(), "ago", "from now"), rates.FetchedAt.Format(time.RFC3339))
	return tw.Flush()
}
