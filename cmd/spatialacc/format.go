// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/spatialacc/accessibility"
	"github.com/katalvlaran/spatialacc/decay"
	"github.com/katalvlaran/spatialacc/od"
	"github.com/katalvlaran/spatialacc/stats"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func writeResult(w io.Writer, format string, res *accessibility.Result) error {
	switch format {
	case formatTable:
		return printResult(w, res)
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (table|json|yaml)", format)
	}
}

func printInputs(w io.Writer, s *od.Summary) {
	fmt.Fprintf(w, "%d demand locations with total population of %s\n", s.OriginCount(), num(s.TotalDemand))
	fmt.Fprintf(w, "%d facilities with total capacity of %s\n", s.DestinationCount(), num(stats.Round(s.TotalSupply, stats.ReportPlaces)))
	fmt.Fprintf(w, "Average Accessibility Score is %s\n", num(s.AverageAccessibility))
}

func printResult(w io.Writer, res *accessibility.Result) error {
	printInputs(w, res.Inputs)
	fmt.Fprintf(w, "Model: %s (%s)\n", res.Model, modelParam(res))
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ORIGIN\tACCESSIBILITY")
	for _, s := range res.Scores {
		fmt.Fprintf(tw, "%s\t%s\n", s.Origin, num(s.Value))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	sm := res.Summary
	fmt.Fprintln(tw, "\tcount\tmean\tstd\tmin\t25%\t50%\t75%\tmax")
	fmt.Fprintf(tw, "Current_Acc\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n", sm.Count,
		num(sm.Mean), num(sm.Std), num(sm.Min), num(sm.P25), num(sm.P50), num(sm.P75), num(sm.Max))
	if err := tw.Flush(); err != nil {
		return err
	}
	if n := len(res.Undefined); n > 0 {
		fmt.Fprintf(w, "\n%d undefined balancing factors (%d of %d origins undefined)\n",
			n, len(res.Scores)-res.DefinedCount(), len(res.Scores))
	}

	return nil
}

func modelParam(res *accessibility.Result) string {
	switch res.Model {
	case decay.Threshold:
		return "threshold=" + num(res.Params.Threshold)
	case decay.Gravity:
		return "beta=" + num(res.Params.Beta)
	default:
		return "expon=" + num(res.Params.Expon)
	}
}

// num formats v compactly; NaN prints as "NaN".
func num(v float64) string { return strconv.FormatFloat(v, 'g', 10, 64) }
