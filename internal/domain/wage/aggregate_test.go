package wage

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestAggregateMonthlyTotalsSumsTierMinutes(t *testing.T) {
	wd := date(2025, time.March, 10)
	days := []DailyResult{
		{
			WorkDay: wd,
			Chains: []Chain{{Contributions: []ChainContribution{
				{Tier: Tier100, Minutes: 480},
			}}},
		},
	}
	totals, warnings := AggregateMonthlyTotals("p1", 2025, 3, days, nil, decimal.NewFromInt(30), ExtrasConfig{}, nil)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %+v", warnings)
	}
	if totals.Calc100 != 480 {
		t.Fatalf("expected calc100=480 (scenario S1), got %d", totals.Calc100)
	}
	if totals.Calc125 != 0 || totals.Calc150Overtime != 0 || totals.StandbyPayment.Sign() != 0 {
		t.Fatalf("expected every other bucket to be zero, got %+v", totals)
	}
}

func TestAggregateMonthlyTotalsSickPayByRate(t *testing.T) {
	wd := date(2025, time.March, 10)
	days := []DailyResult{{WorkDay: wd, SickMinutes: 60}}
	rates := map[time.Time]float64{wd: 0.5}
	totals, _ := AggregateMonthlyTotals("p1", 2025, 3, days, rates, decimal.NewFromInt(30), ExtrasConfig{}, nil)
	if !totals.SickPayment.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("expected sick pay 15 (60 min at half of 30/hr), got %s", totals.SickPayment)
	}
}

func TestAggregateMonthlyTotalsAppliesExtras(t *testing.T) {
	days := []DailyResult{{WorkDay: date(2025, time.March, 10)}}
	extras := ExtrasConfig{
		PerShiftKind: map[int]decimal.Decimal{ShiftFriday: decimal.NewFromInt(25)},
		PerPerson:    map[PersonID]decimal.Decimal{"p1": decimal.NewFromInt(5)},
	}
	totals, _ := AggregateMonthlyTotals("p1", 2025, 3, days, nil, decimal.NewFromInt(30), extras, []int{ShiftFriday})
	if !totals.Extras.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("expected extras 25+5=30, got %s", totals.Extras)
	}
}

func TestResolveStandbyRateFallsBackToDefaultWithWarning(t *testing.T) {
	rate, warn := ResolveStandbyRate(nil, "sb1", ApartmentTypeRegular, false, "r1")
	if warn == nil || warn.Code != WarnRateUnavailable {
		t.Fatalf("expected a rate-unavailable warning, got %+v", warn)
	}
	if !rate.Equal(decimal.NewFromFloat(DefaultStandbyRate)) {
		t.Fatalf("expected the default rate, got %s", rate)
	}
}

func TestResolveStandbyRatePrefersHighestPriorityMatch(t *testing.T) {
	rates := []StandbyRate{
		{SegmentID: "sb1", ApartmentType: ApartmentTypeRegular, IsMarried: false, Amount: decimal.NewFromInt(70), Priority: 0},
		{SegmentID: "sb1", ApartmentType: ApartmentTypeRegular, IsMarried: false, Amount: decimal.NewFromInt(90), Priority: 10},
	}
	rate, warn := ResolveStandbyRate(rates, "sb1", ApartmentTypeRegular, false, "r1")
	if warn != nil {
		t.Fatalf("unexpected warning: %+v", warn)
	}
	if !rate.Equal(decimal.NewFromInt(90)) {
		t.Fatalf("expected the higher-priority rate 90, got %s", rate)
	}
}
