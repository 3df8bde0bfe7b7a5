package output

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"chaincost/core/compare"
	"chaincost/core/evaluate"
)

func sampleResult() *evaluate.Result {
	return &evaluate.Result{
		Totals: evaluate.Totals{
			Units:        1000,
			Material:     100000,
			Tariffs:      5000,
			Transport:    14000,
			Assembly:     150000,
			Overhead:     100000,
			Inventory:    36900,
			CarbonKg:     24000,
			RiskIndex:    0.519,
			ServiceLevel: 0.95,
		},
		Cost:      406380,
		Objective: 613980,
		Feasible:  true,
	}
}

func TestNewFormatSelection(t *testing.T) {
	f, err := New(FormatCLI)
	if err != nil || f.Format() != FormatCLI {
		t.Fatalf("cli formatter: %v", err)
	}
	f, err = New("")
	if err != nil || f.Format() != FormatCLI {
		t.Fatal("empty format must default to cli")
	}
	f, err = New(FormatJSON)
	if err != nil || f.Format() != FormatJSON {
		t.Fatalf("json formatter: %v", err)
	}
	if _, err := New(Format("yaml")); err == nil {
		t.Fatal("unknown format must be rejected")
	}
}

func TestCLIRenderEvaluation(t *testing.T) {
	var buf bytes.Buffer
	f, _ := New(FormatCLI)
	if err := f.Render(&buf, &Report{Seed: 42, Evaluation: sampleResult()}); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"$406380.00", "$613980.00", "0.9500", "0.5190", "true"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestJSONRenderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	f, _ := New(FormatJSON)
	if err := f.Render(&buf, &Report{Seed: 42, Evaluation: sampleResult()}); err != nil {
		t.Fatal(err)
	}

	var back Report
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatal(err)
	}
	if back.Seed != 42 || back.Evaluation == nil || back.Evaluation.Cost != 406380 {
		t.Fatalf("round trip lost fields: %+v", back)
	}
}

// Infeasible reports carry infinite cost; both renderers must survive it
func TestRenderInfiniteCost(t *testing.T) {
	res := sampleResult()
	res.Cost = math.Inf(1)
	res.Objective = math.Inf(1)
	res.Feasible = false

	var cli bytes.Buffer
	f, _ := New(FormatCLI)
	if err := f.Render(&cli, &Report{Evaluation: res}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(cli.String(), "inf") {
		t.Fatalf("cli output hides the infinite cost:\n%s", cli.String())
	}

	var js bytes.Buffer
	jf, _ := New(FormatJSON)
	if err := jf.Render(&js, &Report{Evaluation: res}); err != nil {
		t.Fatalf("json render of infinite cost: %v", err)
	}
	if !strings.Contains(js.String(), `"inf"`) {
		t.Fatal("json output must encode infinity as the string \"inf\"")
	}
}

func TestCLIRenderComparison(t *testing.T) {
	var buf bytes.Buffer
	f, _ := New(FormatCLI)
	err := f.Render(&buf, &Report{Comparison: &compare.Result{
		CostBefore:   406380,
		CostAfter:    400000,
		CostDelta:    -6380,
		DeltaPercent: -1.57,
		Lines: []compare.Line{
			{Bucket: "material", Before: 100000, After: 90000, Delta: -10000},
		},
	}})
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "material") || !strings.Contains(out, "$-10000.00") {
		t.Fatalf("comparison output incomplete:\n%s", out)
	}
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{406380, "$406380.00"},
		{0.005, "$0.01"},
		{-12.5, "$-12.50"},
		{math.Inf(1), "inf"},
		{math.NaN(), "nan"},
	}
	for _, tt := range tests {
		if got := money(tt.in); got != tt.want {
			t.Fatalf("money(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
