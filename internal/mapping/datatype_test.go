package mapping

import "testing"

func TestDetectDataType(t *testing.T) {
	tests := []struct {
		name string
		cols []string
		want DataType
	}{
		{"summary export", []string{"Date", "Daily Total", "Weekly Average"}, Summary},
		{"transaction export", []string{"Order_ID", "Timestamp", "Item", "Price"}, Transaction},
		{"no signal", []string{"Item", "Price"}, Mixed},
		{"tied signals", []string{"Daily Total", "Order_ID"}, Mixed},
		{"empty", nil, Mixed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectDataType(tt.cols); got != tt.want {
				t.Errorf("DetectDataType(%v) = %s, want %s", tt.cols, got, tt.want)
			}
		})
	}
}

func TestDetectDataTypeDeterministic(t *testing.T) {
	cols := []string{"Daily Total", "Order_ID", "Timestamp", "Sum"}
	first := DetectDataType(cols)
	for i := 0; i < 10; i++ {
		if got := DetectDataType(cols); got != first {
			t.Fatalf("run %d: got %s, first run gave %s", i, got, first)
		}
	}
}
