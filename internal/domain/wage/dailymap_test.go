package wage

import (
	"testing"

	"github.com/shopspring/decimal"
)

func flatRate(amount float64) StandbyRateLookup {
	return func(segmentID string, apartmentType ApartmentType, isMarried bool) decimal.Decimal {
		return decimal.NewFromFloat(amount)
	}
}

// TestEvaluateStandbyCancellationScenarioS5 reproduces spec scenario S5:
// a 60-minute standby fully overlapped by work is cancelled; with a
// table rate of 80, the deduction is capped at 70 and the residual is 10.
func TestEvaluateStandbyCancellationScenarioS5(t *testing.T) {
	segments := []Segment{
		{Type: SegmentStandby, SegmentID: "sb1", StartMinute: 540, EndMinute: 600, OrderIndex: 0},
		{Type: SegmentWork, SegmentID: "w1", StartMinute: 540, EndMinute: 600, OrderIndex: 1},
	}
	kept, cancelled, _ := evaluateStandbyCancellation(segments, flatRate(80), ApartmentTypeRegular, false)
	if len(kept) != 0 {
		t.Fatalf("expected no kept standby, got %d", len(kept))
	}
	if len(cancelled) != 1 {
		t.Fatalf("expected 1 cancelled standby, got %d", len(cancelled))
	}
	if !cancelled[0].Residual.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected residual 10, got %s", cancelled[0].Residual)
	}
}

func TestEvaluateStandbyCancellationKeepsLowOverlap(t *testing.T) {
	segments := []Segment{
		{Type: SegmentStandby, SegmentID: "sb1", StartMinute: 0, EndMinute: 390, OrderIndex: 0},
		{Type: SegmentWork, SegmentID: "w1", StartMinute: 1320, EndMinute: 1440, OrderIndex: 1},
	}
	kept, cancelled, work := evaluateStandbyCancellation(segments, flatRate(70), ApartmentTypeRegular, false)
	if len(kept) != 1 || len(cancelled) != 0 {
		t.Fatalf("expected standby to be kept (zero overlap), got kept=%d cancelled=%d", len(kept), len(cancelled))
	}
	if len(work) != 1 {
		t.Fatalf("expected the unrelated work segment to remain untouched")
	}
}

func TestFormChainsJoinsGapUnderThreshold(t *testing.T) {
	work := []Segment{
		{StartMinute: 0, EndMinute: 510},
		{StartMinute: 540, EndMinute: 600}, // 30-minute gap, under threshold: same chain
	}
	chains := formChains(work, nil)
	if len(chains) != 1 {
		t.Fatalf("expected a single chain for a sub-threshold gap, got %d", len(chains))
	}
	total := 0
	for _, s := range chains[0].Segments {
		total += s.EndMinute - s.StartMinute
	}
	if total != 570 {
		t.Fatalf("expected chain span 570 minutes (scenario S2), got %d", total)
	}
}

func TestFormChainsSplitsOnLargeGap(t *testing.T) {
	work := []Segment{
		{StartMinute: 0, EndMinute: 100},
		{StartMinute: 300, EndMinute: 400}, // 200-minute gap: new chain
	}
	chains := formChains(work, nil)
	if len(chains) != 2 {
		t.Fatalf("expected 2 chains, got %d", len(chains))
	}
}

func TestApplyCarryoverRequiresExactBoundary(t *testing.T) {
	prev := []Chain{{Segments: []Segment{{StartMinute: 1200, EndMinute: 1440}}}}
	next := []Chain{{Segments: []Segment{{StartMinute: 0, EndMinute: 90}}}}
	if got := applyCarryover(prev, next); got != 240 {
		t.Fatalf("expected carryover of 240 minutes, got %d", got)
	}

	prevOff := []Chain{{Segments: []Segment{{StartMinute: 1200, EndMinute: 1439}}}}
	if got := applyCarryover(prevOff, next); got != 0 {
		t.Fatalf("expected no carryover when the chain does not end exactly at the boundary, got %d", got)
	}
}
