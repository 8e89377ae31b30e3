package wage

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// TestBuildSegmentsNightShiftScenarioS3 reproduces spec scenario S3: kind
// 107, Sun 22:00 -> Mon 08:00, decomposing into work 22:00-00:00 (120
// min), standby 00:00-06:30 (390 min), work 06:30-08:00 (90 min).
func TestBuildSegmentsNightShiftScenarioS3(t *testing.T) {
	report := Report{
		ID:          "r1",
		Date:        date(2025, time.March, 9), // a Sunday
		StartMinute: 1320,                       // 22:00
		EndMinute:   480,                         // 08:00 next day, pre-normalization
		ShiftKindID: ShiftNight,
	}
	segments, warn := BuildSegments(report, ShiftKind{ID: ShiftNight}, VariantNightDynamic, nil)
	if warn != nil {
		t.Fatalf("unexpected warning: %+v", warn)
	}
	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segments))
	}
	if segments[0].Type != SegmentWork || segments[0].StartMinute != 1320 || segments[0].EndMinute != 1440 {
		t.Fatalf("unexpected first work segment: %+v", segments[0])
	}
	if segments[1].Type != SegmentStandby || segments[1].StartMinute != 1440 || segments[1].EndMinute != 1830 {
		t.Fatalf("unexpected standby segment: %+v", segments[1])
	}
	if segments[2].Type != SegmentWork || segments[2].StartMinute != 1830 || segments[2].EndMinute != 1920 {
		t.Fatalf("unexpected second work segment: %+v", segments[2])
	}

	total := 0
	for _, s := range segments {
		total += s.EndMinute - s.StartMinute
	}
	if total != 600 {
		t.Fatalf("expected total span 600 minutes (22:00->08:00), got %d", total)
	}
}

func TestBuildSegmentsNightShiftShorterThanFirstBlock(t *testing.T) {
	report := Report{
		ID:          "r2",
		Date:        date(2025, time.March, 9),
		StartMinute: 1320,
		EndMinute:   1380, // 60 minutes, shorter than the 120-minute first block
		ShiftKindID: ShiftNight,
	}
	segments, warn := BuildSegments(report, ShiftKind{ID: ShiftNight}, VariantNightDynamic, nil)
	if warn != nil {
		t.Fatalf("unexpected warning: %+v", warn)
	}
	if len(segments) != 1 || segments[0].Type != SegmentWork {
		t.Fatalf("expected a single work segment, got %+v", segments)
	}
}

func TestBuildSegmentsFixedTemplateClipsToReportSpan(t *testing.T) {
	report := Report{
		ID:          "r3",
		Date:        date(2025, time.March, 10),
		StartMinute: 480,
		EndMinute:   960,
		ShiftKindID: ShiftFriday,
	}
	kind := ShiftKind{
		ID: ShiftFriday,
		Template: []SegmentTemplateEntry{
			{SegmentID: "w1", SegmentType: SegmentWork, StartMinute: 0, EndMinute: 720, OrderIndex: 0},
			{SegmentID: "s1", SegmentType: SegmentStandby, StartMinute: 720, EndMinute: 1440, OrderIndex: 1},
		},
	}
	segments, warn := BuildSegments(report, kind, VariantFixedTemplate, nil)
	if warn != nil {
		t.Fatalf("unexpected warning: %+v", warn)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 clipped segments, got %d", len(segments))
	}
	if segments[0].StartMinute != 480 || segments[0].EndMinute != 720 {
		t.Fatalf("unexpected clipped work segment: %+v", segments[0])
	}
	if segments[1].StartMinute != 720 || segments[1].EndMinute != 960 {
		t.Fatalf("unexpected clipped standby segment: %+v", segments[1])
	}
}

func TestBuildSegmentsMalformedReportWarns(t *testing.T) {
	report := Report{ID: "bad", Date: date(2025, time.March, 10), StartMinute: 500, EndMinute: 3000} // ends past 2*MinutesPerDay
	_, warn := BuildSegments(report, ShiftKind{}, VariantFixedTemplate, nil)
	if warn == nil || warn.Code != WarnMalformedReport {
		t.Fatalf("expected malformed report warning, got %+v", warn)
	}
}

func TestClassifyShiftImplicitTagbur(t *testing.T) {
	id, variant, implicit := ClassifyShift(ShiftFriday, ApartmentTypeTherapeutic, true)
	if id != ShiftTagburFriday || variant != VariantFixedTemplate || !implicit {
		t.Fatalf("expected implicit tagbur reclassification to 108, got id=%d implicit=%v", id, implicit)
	}
	id, _, implicit = ClassifyShift(ShiftFriday, ApartmentTypeRegular, true)
	if id != ShiftFriday || implicit {
		t.Fatalf("expected no reclassification for a regular apartment, got id=%d", id)
	}
}

func TestBuildSegmentsEscortSplitsAtSabbath(t *testing.T) {
	friday := date(2025, time.March, 7)
	weeks := []SabbathWeek{{EntryDate: friday, EntryMinute: 1100, ExitDate: friday.AddDate(0, 0, 1), ExitMinute: ShabbatExitDefault}}
	report := Report{ID: "esc1", Date: friday, StartMinute: 960, EndMinute: 1200, ShiftKindID: ShiftHospitalEscort}
	kind := ShiftKind{ID: ShiftHospitalEscort, FlatRate: decimal.NewFromInt(40), HasFlatRate: true}
	segments, warn := BuildSegments(report, kind, VariantHospitalEscort, weeks)
	if warn != nil {
		t.Fatalf("unexpected warning: %+v", warn)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments split at Sabbath entry, got %d", len(segments))
	}
	if segments[0].IsMinimumWage {
		t.Fatalf("expected pre-entry segment to use the flat rate, not minimum wage")
	}
	if !segments[1].IsMinimumWage {
		t.Fatalf("expected post-entry segment to use minimum wage")
	}
}
