package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/poslens/poslens-cli/internal/dataset"
	"github.com/poslens/poslens-cli/internal/mapping"
	"github.com/poslens/poslens-cli/internal/report"
	"github.com/poslens/poslens-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	anaOutputPath string
	anaDelimiter  string
	anaMaxRows    int
	anaSheetName  string
	anaSheetIndex int
	anaMap        map[string]string
	anaLabel      string
	anaShowText   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a POS export and produce a full metrics report",
	Long: `Analyze loads a CSV, TSV, or XLSX export, infers which columns carry
dates, items, prices and the rest, runs every applicable metric section, and
prints a terminal summary. Use --output to write the full JSON report.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		ds, m, err := loadAndMap(cmd, path)
		if err != nil {
			return err
		}

		label := mapping.DetectDataType(ds.Columns)
		if anaLabel != "" {
			switch mapping.DataType(anaLabel) {
			case mapping.Transaction, mapping.Summary, mapping.Mixed:
				label = mapping.DataType(anaLabel)
			default:
				return fmt.Errorf("unsupported --data-type: %s (use transaction|summary|mixed)", anaLabel)
			}
		}

		rep := report.Build(ds, m, label, time.Now().UTC())
		rep.Source = filepath.Base(path)

		if anaOutputPath != "" {
			out := anaOutputPath
			if cfg != nil && cfg.OutputDir != "" && filepath.Dir(out) == "." {
				if err := utils.EnsureDir(cfg.OutputDir); err != nil {
					return err
				}
				out = filepath.Join(cfg.OutputDir, out)
			}
			if err := rep.Save(out); err != nil {
				return err
			}
			fmt.Printf("✓ Wrote report to %s\n", out)
			if !anaShowText {
				return nil
			}
		}
		fmt.Println(rep.Text())
		return nil
	},
}

// loadAndMap loads the dataset honoring the shared flags and resolves the
// column mapping (manual assignments win over inference). Shared between
// analyze and inspect.
func loadAndMap(cmd *cobra.Command, path string) (*dataset.Dataset, mapping.Mapping, error) {
	opt := dataset.LoadOptions{
		SheetName:  anaSheetName,
		SheetIndex: anaSheetIndex,
		MaxRows:    anaMaxRows,
	}
	if cfg != nil {
		if !cmd.Flags().Changed("max-rows") {
			opt.MaxRows = cfg.MaxRows
		}
		if !cmd.Flags().Changed("sheet-index") && cfg.SheetIndex > 0 {
			opt.SheetIndex = cfg.SheetIndex
		}
		if anaDelimiter == "" {
			anaDelimiter = cfg.Delimiter
		}
	}
	if anaDelimiter != "" {
		switch anaDelimiter {
		case ",":
			opt.Delimiter = ','
		case ";":
			opt.Delimiter = ';'
		case "\t", "tab":
			opt.Delimiter = '\t'
		default:
			return nil, nil, fmt.Errorf("unsupported --delimiter: %s", anaDelimiter)
		}
	}

	ds, err := dataset.Load(path, opt)
	if err != nil {
		return nil, nil, err
	}
	if len(ds.Rows) == 0 {
		return nil, nil, fmt.Errorf("%s: no data rows", path)
	}

	var m mapping.Mapping
	if len(anaMap) > 0 {
		assign := make(map[mapping.Field]string, len(anaMap))
		for name, col := range anaMap {
			f, err := mapping.ParseField(name)
			if err != nil {
				return nil, nil, err
			}
			assign[f] = col
		}
		m = mapping.Manual(assign)
	} else {
		m = mapping.Infer(ds.Columns)
	}
	for field, ok := range m.Validate(ds.Columns) {
		if !ok {
			fmt.Fprintf(os.Stderr, "⚠ Warning: mapped column for %s not found in file\n", field)
		}
	}
	return ds, m, nil
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "path to write the JSON report")
	analyzeCmd.Flags().StringVar(&anaDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	analyzeCmd.Flags().IntVar(&anaMaxRows, "max-rows", 100000, "maximum rows to process (0 = unlimited)")
	analyzeCmd.Flags().StringVar(&anaSheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	analyzeCmd.Flags().IntVar(&anaSheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	analyzeCmd.Flags().StringToStringVar(&anaMap, "map", nil, "manual column mapping, e.g. --map price=Amount,item_name=Product (skips inference)")
	analyzeCmd.Flags().StringVar(&anaLabel, "data-type", "", "override detected data type: transaction | summary | mixed")
	analyzeCmd.Flags().BoolVar(&anaShowText, "print", false, "print the terminal summary even when --output is set")
}
