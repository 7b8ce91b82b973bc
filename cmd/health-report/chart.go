// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/health-report/internal/chart"
)

var chartCmd = &cobra.Command{
	Use:   "chart <score-file>",
	Short: "Render aggregated scores into a chart configuration",
	Long: `Chart reads a YAML or JSON score file holding a chart kind, display options,
and a list of {label, score, benchmark} records, and writes the chart
configuration as JSON. The same score file always produces the same output.`,
	Args: cobra.ExactArgs(1),
	RunE: runChart,
}

func runChart(cmd *cobra.Command, args []string) error {
	kind, _ := cmd.Flags().GetString("kind")
	outPath, _ := cmd.Flags().GetString("out")

	req, err := chart.LoadRequest(args[0])
	if err != nil {
		return err
	}
	if kind != "" {
		req.Kind = chart.Kind(kind)
	}

	out, err := req.Render()
	if err != nil {
		return fmt.Errorf("%w (kinds: %s)", err, kindList())
	}
	return writeOutput(outPath, func(w io.Writer) error {
		return chart.Write(w, out)
	})
}

func kindList() string {
	kinds := chart.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

func init() {
	chartCmd.Flags().String("kind", "", "override the chart kind named in the score file")
	chartCmd.Flags().String("out", "", "output file (default: stdout)")

	rootCmd.AddCommand(chartCmd)
}
