package cmd

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/poslens/poslens-cli/internal/dataset"
	"github.com/poslens/poslens-cli/internal/mapping"
	"github.com/poslens/poslens-cli/internal/metrics"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show columns, inferred mapping, and data quality without running the full analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		if strings.EqualFold(filepath.Ext(path), ".xlsx") {
			names, err := dataset.SheetNames(path)
			if err != nil {
				return err
			}
			fmt.Printf("Sheets: %s\n", strings.Join(names, ", "))
		}

		ds, m, err := loadAndMap(cmd, path)
		if err != nil {
			return err
		}

		fmt.Printf("File: %s\n", filepath.Base(path))
		fmt.Printf("Rows: %d  Columns: %d\n", ds.NumRows(), ds.NumColumns())
		fmt.Printf("Data type: %s\n\n", mapping.DetectDataType(ds.Columns))

		fmt.Println("Columns:")
		for _, c := range ds.Columns {
			fmt.Printf("  %s\n", c)
		}

		fmt.Println("\nInferred mapping:")
		valid := m.Validate(ds.Columns)
		mapped := 0
		for _, f := range mapping.Fields() {
			col, ok := m.Column(f)
			if !ok {
				continue
			}
			mapped++
			mark := "✓"
			if !valid[f] {
				mark = "✗"
			}
			fmt.Printf("  %s %-15s -> %s\n", mark, f, col)
		}
		if mapped == 0 {
			fmt.Println("  (no columns recognized)")
		}

		q := metrics.DataQuality(ds)
		fmt.Printf("\nQuality score: %.1f/100\n", q.QualityScore)
		for _, issue := range q.Issues {
			fmt.Printf("  ⚠ %s\n", issue)
		}
		if len(q.MissingData) > 0 {
			var worst []string
			for col, n := range q.MissingData {
				if n > 0 {
					worst = append(worst, fmt.Sprintf("%s (%d)", col, n))
				}
			}
			if len(worst) > 0 {
				sort.Strings(worst)
				fmt.Printf("  Missing values: %s\n", strings.Join(worst, ", "))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVar(&anaDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	inspectCmd.Flags().IntVar(&anaMaxRows, "max-rows", 100000, "maximum rows to process (0 = unlimited)")
	inspectCmd.Flags().StringVar(&anaSheetName, "sheet-name", "", "XLSX: sheet name to inspect")
	inspectCmd.Flags().IntVar(&anaSheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	inspectCmd.Flags().StringToStringVar(&anaMap, "map", nil, "manual column mapping, e.g. --map price=Amount (skips inference)")
}
