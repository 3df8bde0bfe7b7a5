// Package output renders engine results for humans and machines. It produces
// output only; no engine logic lives here.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"chaincost/core/compare"
	"chaincost/core/evaluate"
	"chaincost/core/load"
	"chaincost/core/optimize"
	"chaincost/core/sensitivity"
	"chaincost/core/simulate"
	"chaincost/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Report carries whichever sections a command produced. Formatters render
// only the sections that are present.
type Report struct {
	// Seed identifies the network the report was computed against
	Seed int64 `json:"seed"`

	Evaluation   *evaluate.Result    `json:"evaluation,omitempty"`
	Loads        []load.SiteLoad     `json:"loads,omitempty"`
	Optimization *optimize.Result    `json:"optimization,omitempty"`
	Simulation   *simulate.Summary   `json:"simulation,omitempty"`
	Sensitivity  []sensitivity.Entry `json:"sensitivity,omitempty"`
	Comparison   *compare.Result     `json:"comparison,omitempty"`
}

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes the report
	Render(w io.Writer, report *Report) error
}

// New returns the formatter for a format name
func New(format Format) (Formatter, error) {
	switch format {
	case FormatCLI, "":
		return &cliFormatter{}, nil
	case FormatJSON:
		return &jsonFormatter{}, nil
	}
	return nil, errors.Input("unknown output format: " + string(format))
}

type jsonFormatter struct{}

func (f *jsonFormatter) Format() Format { return FormatJSON }

func (f *jsonFormatter) Render(w io.Writer, report *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

type cliFormatter struct{}

func (f *cliFormatter) Format() Format { return FormatCLI }

func (f *cliFormatter) Render(w io.Writer, report *Report) error {
	if report.Evaluation != nil {
		f.renderEvaluation(w, report.Evaluation)
	}
	if report.Loads != nil {
		f.renderLoads(w, report.Loads)
	}
	if report.Optimization != nil {
		f.renderOptimization(w, report.Optimization)
	}
	if report.Simulation != nil {
		f.renderSimulation(w, report.Simulation)
	}
	if report.Sensitivity != nil {
		f.renderSensitivity(w, report.Sensitivity)
	}
	if report.Comparison != nil {
		f.renderComparison(w, report.Comparison)
	}
	return nil
}

func (f *cliFormatter) renderEvaluation(w io.Writer, res *evaluate.Result) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Units\t%d\n", res.Totals.Units)
	fmt.Fprintf(tw, "Material\t%s\n", money(res.Totals.Material))
	fmt.Fprintf(tw, "Tariffs\t%s\n", money(res.Totals.Tariffs))
	fmt.Fprintf(tw, "Transport\t%s\n", money(res.Totals.Transport))
	fmt.Fprintf(tw, "Assembly\t%s\n", money(res.Totals.Assembly))
	fmt.Fprintf(tw, "Overhead\t%s\n", money(res.Totals.Overhead))
	fmt.Fprintf(tw, "Inventory\t%s\n", money(res.Totals.Inventory))
	fmt.Fprintf(tw, "Carbon (kg)\t%.0f\n", res.Totals.CarbonKg)
	if res.OverflowPenalty > 0 {
		fmt.Fprintf(tw, "Overflow penalty\t%s\n", money(res.OverflowPenalty))
	}
	fmt.Fprintf(tw, "Total cost\t%s\n", money(res.Cost))
	fmt.Fprintf(tw, "Service level\t%.4f\n", res.Totals.ServiceLevel)
	fmt.Fprintf(tw, "Risk index\t%.4f\n", res.Totals.RiskIndex)
	fmt.Fprintf(tw, "Objective\t%s\n", money(res.Objective))
	fmt.Fprintf(tw, "Feasible\t%t\n", res.Feasible)
	tw.Flush()

	if len(res.Sites) > 0 {
		fmt.Fprintln(w)
		tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "SITE\tKIND\tLOAD\tCAPACITY\tUTIL\tCOST AT RISK")
		for _, s := range res.Sites {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%.0f\t%.2f\t%s\n",
				s.ID, s.Kind, s.Load, s.Capacity, s.Utilization, money(s.CostAtRisk))
		}
		tw.Flush()
	}
}

func (f *cliFormatter) renderLoads(w io.Writer, loads []load.SiteLoad) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SITE\tKIND\tLOAD\tCAPACITY\tUTIL\tBOTTLENECK")
	for _, l := range loads {
		flag := ""
		if l.Bottleneck {
			flag = "!"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.0f\t%.2f\t%s\n",
			l.ID, l.Kind, l.Load, l.Capacity, l.Utilization, flag)
	}
	tw.Flush()
}

func (f *cliFormatter) renderOptimization(w io.Writer, res *optimize.Result) {
	if !res.Found {
		fmt.Fprintf(w, "No feasible configuration (explored %d)\n", res.Explored)
		return
	}
	fmt.Fprintf(w, "Best configuration (explored %d):\n", res.Explored)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCT\tSUPPLIER\tASSEMBLY\tDC\tLEG MODES")
	products := make([]string, 0, len(res.Configuration))
	for product := range res.Configuration {
		products = append(products, product)
	}
	sort.Strings(products)
	for _, product := range products {
		a := res.Configuration[product]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s/%s\n",
			product, a.Supplier, a.Assembly, a.DistributionCenter, a.SupplierLegMode, a.DCLegMode)
	}
	tw.Flush()
	fmt.Fprintln(w)
	f.renderEvaluation(w, res.Evaluation)
}

func (f *cliFormatter) renderSimulation(w io.Writer, s *simulate.Summary) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Samples\t%d\n", s.Samples)
	fmt.Fprintf(tw, "P(meets target)\t%.3f\n", s.ProbabilityMeetsTarget)
	fmt.Fprintf(tw, "Mean cost\t%s\n", money(s.MeanCost))
	fmt.Fprintf(tw, "P10 cost\t%s\n", money(s.P10Cost))
	fmt.Fprintf(tw, "P90 cost\t%s\n", money(s.P90Cost))
	tw.Flush()
}

func (f *cliFormatter) renderSensitivity(w io.Writer, entries []sensitivity.Entry) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PARAMETER\tLOW\tHIGH\tDELTA")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			e.Parameter, money(e.Low), money(e.High), money(e.Delta))
	}
	tw.Flush()
}

func (f *cliFormatter) renderComparison(w io.Writer, c *compare.Result) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Cost before\t%s\n", money(c.CostBefore))
	fmt.Fprintf(tw, "Cost after\t%s\n", money(c.CostAfter))
	fmt.Fprintf(tw, "Delta\t%s (%.2f%%)\n", money(c.CostDelta), c.DeltaPercent)
	fmt.Fprintf(tw, "Objective delta\t%s\n", money(c.ObjectiveDelta))
	fmt.Fprintf(tw, "Service delta\t%+.4f\n", c.ServiceDelta)
	fmt.Fprintf(tw, "Risk delta\t%+.4f\n", c.RiskDelta)
	tw.Flush()

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BUCKET\tBEFORE\tAFTER\tDELTA")
	for _, l := range c.Lines {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.Bucket, money(l.Before), money(l.After), money(l.Delta))
	}
	tw.Flush()

	if len(c.Routing) > 0 {
		fmt.Fprintln(w)
		tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "PRODUCT\tBEFORE\tAFTER")
		for _, rc := range c.Routing {
			fmt.Fprintf(tw, "%s\t%s/%s/%s\t%s/%s/%s\n",
				rc.Product,
				rc.Before.Supplier, rc.Before.Assembly, rc.Before.DistributionCenter,
				rc.After.Supplier, rc.After.Assembly, rc.After.DistributionCenter)
		}
		tw.Flush()
	}
}

// money renders a float cost through decimal so displayed amounts round in
// base 10 rather than through float formatting
func money(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	if math.IsNaN(v) {
		return "nan"
	}
	return "$" + decimal.NewFromFloat(v).StringFixed(2)
}
