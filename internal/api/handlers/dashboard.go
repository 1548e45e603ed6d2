package handlers

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/AHMerrill/Basic-Dividend-Discount/internal/api/request"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/ddm"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/model"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/service"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/validation"
)

//go:embed templates/*.html
var templateFS embed.FS

var dashboardTemplates = template.Must(template.New("").Funcs(template.FuncMap{
	"money": func(v float64) string { return humanize.FormatFloat("#,###.##", v) },
	"pct":   func(v float64) string { return fmt.Sprintf("%.2f%%", v*100) },
	"num":   func(v float64) string { return fmt.Sprintf("%.4f", v) },
	"date":  func(v time.Time) string { return v.Format("2006-01-02") },
	"optpct": func(v *float64) string {
		if v == nil {
			return "n/a"
		}
		return fmt.Sprintf("%.2f%%", *v*100)
	},
}).ParseFS(templateFS, "templates/*.html"))

// DashboardHandler serves the HTML dashboard: an input form and the rendered
// valuation (metrics panel, schedule table, cash-flow chart, summary).
type DashboardHandler struct {
	valuationService *service.ValuationService
	defaultTicker    string
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(valuationService *service.ValuationService, defaultTicker string) *DashboardHandler {
	return &DashboardHandler{
		valuationService: valuationService,
		defaultTicker:    defaultTicker,
	}
}

type dashboardForm struct {
	Ticker          string
	Policy          string
	CashFlows       string
	ShortTermGrowth string
	LongTermGrowth  string
	CostOfEquity    string
	ValuationDate   string
	Proceed         bool
}

type policyOption struct {
	Value, Label string
}

var policyOptions = []policyOption{
	{string(ddm.KindDefaultGrowth), "Default growth (ROE × plowback)"},
	{string(ddm.KindCustomCashFlows), "Custom cash flows"},
	{string(ddm.KindCustomShortTermGrowth), "Custom short-term growth"},
}

type metric struct {
	Label, Value string
}

type dashboardPage struct {
	Form     dashboardForm
	Policies []policyOption
	Errors   map[string]string
	Error    string

	Report  *model.ValuationReport
	Summary model.Summary
	Metrics []metric
	Chart   chartView
}

// Index renders the empty input form.
//
// Endpoint: GET /
func (h *DashboardHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, dashboardPage{
		Form: dashboardForm{Ticker: h.defaultTicker, Policy: string(ddm.KindDefaultGrowth)},
	})
}

// Dashboard runs the valuation described by the form and renders the result.
// Input problems re-render the form with the messages.
//
// Endpoint: GET /dashboard?ticker=WMT&policy=default&...
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := dashboardPage{Form: dashboardForm{
		Ticker:          q.Get("ticker"),
		Policy:          q.Get("policy"),
		CashFlows:       q.Get("cashFlows"),
		ShortTermGrowth: q.Get("shortTermGrowth"),
		LongTermGrowth:  q.Get("longTermGrowth"),
		CostOfEquity:    q.Get("costOfEquity"),
		ValuationDate:   q.Get("valuationDate"),
		Proceed:         q.Get("proceedWithoutDividend") == "true",
	}}
	if strings.TrimSpace(page.Form.Ticker) == "" {
		page.Form.Ticker = h.defaultTicker
	}

	req, err := request.ValuationRequestFromQuery(page.Form.Ticker, q)
	if err != nil {
		page.Error = err.Error()
		h.render(w, http.StatusBadRequest, page)
		return
	}

	opts, err := validation.ValidateValuation(req)
	if err != nil {
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			page.Errors = vErr.Fields
		}
		page.Error = "Please correct the highlighted fields."
		h.render(w, http.StatusBadRequest, page)
		return
	}

	report, err := h.valuationService.Value(r.Context(), opts)
	if err != nil {
		page.Error = err.Error()
		h.render(w, statusFor(err), page)
		return
	}

	page.Report = &report
	page.Summary = service.Summarize(report.Result)
	page.Metrics = metricsFor(report)
	page.Chart = newChartView(report.Result.Schedule)
	h.render(w, http.StatusOK, page)
}

func (h *DashboardHandler) render(w http.ResponseWriter, status int, page dashboardPage) {
	page.Policies = policyOptions
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := dashboardTemplates.ExecuteTemplate(w, "dashboard.html", page); err != nil {
		log.Printf("Failed to render dashboard: %v", err)
	}
}

// metricsFor builds the key-figures panel shown above the schedule.
func metricsFor(report model.ValuationReport) []metric {
	f, res := report.Fundamentals, report.Result
	optional := func(v *float64, format func(float64) string) string {
		if v == nil {
			return "n/a"
		}
		return format(*v)
	}
	pct := func(v float64) string { return fmt.Sprintf("%.2f%%", v*100) }
	plain := func(v float64) string { return fmt.Sprintf("%.2f", v) }

	rfLabel := fmt.Sprintf("%s (%s)", pct(res.RiskFreeRate), report.Rates.RiskFreeSource)
	premiumLabel := fmt.Sprintf("%s (%s)", pct(res.MarketRiskPremium), report.Rates.EquityReturnSource)

	return []metric{
		{"Last price", plain(f.LastPrice)},
		{"Trailing dividend", plain(f.TrailingDividend)},
		{"Beta", optional(f.Beta, plain)},
		{"Return on equity", optional(f.ROE, pct)},
		{"Payout ratio", optional(f.PayoutRatio, pct)},
		{"Calculated growth", optional(res.NearTermGrowth, pct)},
		{"Risk-free rate", rfLabel},
		{"Market risk premium", premiumLabel},
		{"Cost of equity", fmt.Sprintf("%s (%s)", pct(res.CostOfEquity), res.CostOfEquitySource)},
		{"Long-term growth", pct(res.LongTermGrowth)},
		{"Year fraction", fmt.Sprintf("%.4f", res.YearFraction)},
	}
}
