package harvest

import (
	"fmt"
	"testing"
)

func TestPartition(t *testing.T) {
	symbols := []string{"AAPL", "MSFT", "NVDA", "AMZN", "GOOG"}

	for size := 1; size <= len(symbols)+1; size++ {
		t.Run(fmt.Sprintf("size_%d", size), func(t *testing.T) {
			batches := partition(symbols, size)

			var flat []string
			for _, b := range batches {
				if len(b) == 0 {
					t.Error("empty batch")
				}
				if len(b) > size {
					t.Errorf("batch of %d exceeds size %d", len(b), size)
				}
				flat = append(flat, b...)
			}

			if len(flat) != len(symbols) {
				t.Fatalf("partition covers %d symbols, want %d", len(flat), len(symbols))
			}
			for i, sym := range flat {
				if sym != symbols[i] {
					t.Errorf("symbol %d = %q, want %q (order must be preserved)", i, sym, symbols[i])
				}
			}
		})
	}
}

func TestPartitionEmpty(t *testing.T) {
	if got := partition(nil, 10); got != nil {
		t.Errorf("partition(nil) = %v, want nil", got)
	}
}

func TestPartitionZeroSize(t *testing.T) {
	batches := partition([]string{"A", "B"}, 0)
	if len(batches) != 1 || len(batches[0]) != 2 {
		t.Errorf("partition with size 0 = %v, want single batch", batches)
	}
}
