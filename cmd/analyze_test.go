package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/poslens/poslens-cli/internal/report"
)

func writeSampleCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.csv")
	data := "Order Date,Item Name,Price,Order ID\n" +
		"2024-01-01 10:00:00,pizza,$10.00,A\n" +
		"2024-01-01 12:00:00,pizza,$14.00,A\n" +
		"2024-01-02 12:00:00,burger,$30.00,B\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAnalyzeWritesReport(t *testing.T) {
	csvPath := writeSampleCSV(t)
	outPath := filepath.Join(t.TempDir(), "report.json")

	rootCmd.SetArgs([]string{"analyze", csvPath, "--output", outPath})
	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}

	r, err := report.Load(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if r.Source != "export.csv" {
		t.Errorf("Source = %q", r.Source)
	}
	if r.BasicMetrics.TotalRevenue != 54 {
		t.Errorf("TotalRevenue = %v, want 54", r.BasicMetrics.TotalRevenue)
	}
	if len(r.ColumnMapping) == 0 {
		t.Error("expected an inferred column mapping")
	}

	// the report must also round-trip as plain JSON
	raw, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"column_mapping", "data_quality", "strategic_recommendations"} {
		if _, ok := generic[key]; !ok {
			t.Errorf("report JSON missing %q", key)
		}
	}
}

func TestAnalyzeManualMapping(t *testing.T) {
	csvPath := writeSampleCSV(t)
	outPath := filepath.Join(t.TempDir(), "report.json")

	rootCmd.SetArgs([]string{"analyze", csvPath,
		"--output", outPath,
		"--map", "price=Price,order_id=Order ID",
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}
	r, err := report.Load(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if r.ColumnMapping["order_id"] != "Order ID" {
		t.Errorf("ColumnMapping = %v", r.ColumnMapping)
	}
	if r.OrderComposition.TotalOrders != 2 {
		t.Errorf("TotalOrders = %d, want 2", r.OrderComposition.TotalOrders)
	}
}

func TestAnalyzeRejectsUnknownField(t *testing.T) {
	csvPath := writeSampleCSV(t)
	rootCmd.SetArgs([]string{"analyze", csvPath, "--map", "bogus=Price"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error for unknown mapping field")
	}
}

func TestAnalyzeMissingFile(t *testing.T) {
	rootCmd.SetArgs([]string{"analyze", filepath.Join(t.TempDir(), "nope.csv")})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error for missing input file")
	}
}
