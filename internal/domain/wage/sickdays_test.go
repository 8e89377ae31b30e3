package wage

import (
	"testing"
	"time"
)

func TestIdentifySickSequencesSplitsOnGap(t *testing.T) {
	dates := []time.Time{
		date(2025, time.March, 10),
		date(2025, time.March, 11),
		date(2025, time.March, 14), // gap of 2 days: new sequence
	}
	sequences := IdentifySickSequences(dates)
	if len(sequences) != 2 {
		t.Fatalf("expected 2 sequences, got %d", len(sequences))
	}
	if len(sequences[0]) != 2 {
		t.Fatalf("expected first sequence to hold 2 consecutive days, got %d", len(sequences[0]))
	}
	if len(sequences[1]) != 1 {
		t.Fatalf("expected second sequence to hold 1 day, got %d", len(sequences[1]))
	}
}

func TestIdentifySickSequencesEmpty(t *testing.T) {
	if got := IdentifySickSequences(nil); got != nil {
		t.Fatalf("expected nil for no sick dates, got %+v", got)
	}
}

func TestSickPaymentRateBuckets(t *testing.T) {
	cases := []struct {
		position int
		want     float64
	}{
		{1, 0.0},
		{2, 0.5},
		{3, 0.5},
		{4, 1.0},
		{10, 1.0},
	}
	for _, c := range cases {
		if got := SickPaymentRate(c.position); got != c.want {
			t.Fatalf("SickPaymentRate(%d) = %v, want %v", c.position, got, c.want)
		}
	}
}
