package wage

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Engine is the pure, read-only computation described by §5: a single
// invocation over one ReferenceSnapshot, no I/O, no shared mutable state.
type Engine struct {
	Logger *slog.Logger
}

// NewEngine constructs an Engine. A nil logger falls back to slog's
// default handler, matching the teacher's leave/notifications packages.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{Logger: logger}
}

// ComputeMonthlyTotals implements §6's `compute_monthly_totals` contract.
// Each invocation is tagged with a run id for log correlation, mirroring
// the teacher's CreateJobRun/UpdateJobRun pattern (store_iface.go).
func (e *Engine) ComputeMonthlyTotals(person PersonID, snap ReferenceSnapshot) (MonthlyTotals, []Warning, error) {
	runID := uuid.New().String()
	e.Logger.Info("computing monthly totals", "run_id", runID, "person_id", person, "year", snap.Year, "month", snap.Month)

	minWage, _ := snap.EffectiveMinimumWage(time.Date(snap.Year, time.Month(snap.Month), 1, 0, 0, 0, 0, time.UTC))

	days, warnings, err := e.buildDailyResults(person, snap, minWage.HourlyRate)
	if err != nil {
		e.Logger.Error("computing monthly totals failed", "run_id", runID, "error", err)
		return MonthlyTotals{}, warnings, err
	}

	sickRates := sickRatesByWorkDay(days)

	var extraKinds []int
	for _, r := range snap.Reports {
		if r.PersonID == person {
			extraKinds = append(extraKinds, r.ShiftKindID)
		}
	}

	totals, aggWarnings := AggregateMonthlyTotals(person, snap.Year, snap.Month, days, sickRates, minWage.HourlyRate, snap.Extras, extraKinds)
	warnings = append(warnings, aggWarnings...)
	e.Logger.Info("computed monthly totals", "run_id", runID, "warning_count", len(warnings))
	return totals, warnings, nil
}

// GetDailySegments implements §6's `get_daily_segments` contract: the
// per-day segment decomposition for UI rendering and statutory export
// (the exporters themselves are out of scope; this returns the data they
// would consume).
func (e *Engine) GetDailySegments(person PersonID, snap ReferenceSnapshot) ([]DayView, []Warning, error) {
	minWage, _ := snap.EffectiveMinimumWage(time.Date(snap.Year, time.Month(snap.Month), 1, 0, 0, 0, 0, time.UTC))
	days, warnings, err := e.buildDailyResults(person, snap, minWage.HourlyRate)
	if err != nil {
		return nil, warnings, err
	}
	views := make([]DayView, 0, len(days))
	for _, d := range days {
		var segments []Segment
		for _, c := range d.Chains {
			segments = append(segments, c.Segments...)
		}
		for _, ks := range d.KeptStandbys {
			segments = append(segments, ks.Segment)
		}
		for _, cs := range d.CancelledStandbys {
			segments = append(segments, cs.Segment)
		}
		segments = append(segments, d.EscortSegments...)
		views = append(views, DayView{WorkDay: d.WorkDay, Segments: segments, Chains: d.Chains})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].WorkDay.Before(views[j].WorkDay) })
	return views, warnings, nil
}

// buildDailyResults runs C2-C5 of the pipeline: history resolution,
// segment decomposition, work-day grouping with standby cancellation and
// chain formation, and tier assignment with carryover.
func (e *Engine) buildDailyResults(person PersonID, snap ReferenceSnapshot, minimumWageHourly decimal.Decimal) ([]DailyResult, []Warning, error) {
	var allSegments []Segment
	var warnings []Warning
	travelByWorkDay := map[time.Time]decimal.Decimal{}

	for _, report := range snap.Reports {
		if report.PersonID != person {
			continue
		}

		apartmentType, ok := snap.EffectiveApartmentType(report.ApartmentID)
		if !ok {
			return nil, warnings, fmt.Errorf("%w: apartment %s", ErrReferenceDataMissing, report.ApartmentID)
		}
		if _, ok := snap.EffectivePersonStatus(report.PersonID); !ok {
			return nil, warnings, fmt.Errorf("%w: person %s", ErrReferenceDataMissing, report.PersonID)
		}

		resolvesToRegular := snap.EffectiveResolvesToRegular(report.ShiftKindID, report.ApartmentID)
		effectiveID, variant, _ := ClassifyShift(report.ShiftKindID, apartmentType, resolvesToRegular)

		kind, ok := snap.EffectiveShiftKind(effectiveID)
		if !ok {
			return nil, warnings, fmt.Errorf("%w: shift kind %d", ErrReferenceDataMissing, effectiveID)
		}

		segments, warn := BuildSegments(report, kind, variant, snap.SabbathWeeks)
		if warn != nil {
			e.Logger.Warn("skipping malformed report", "report_id", warn.ReportID, "code", warn.Code)
			warnings = append(warnings, *warn)
			continue
		}
		allSegments = append(allSegments, segments...)

		wd := WorkDayFor(report.Date, report.StartMinute)
		travelByWorkDay[wd] = travelByWorkDay[wd].Add(report.Travel)
	}

	grouped := GroupByWorkDay(allSegments)
	workDays := make([]time.Time, 0, len(grouped))
	for wd := range grouped {
		workDays = append(workDays, wd)
	}
	sort.Slice(workDays, func(i, j int) bool { return workDays[i].Before(workDays[j]) })

	status, _ := snap.EffectivePersonStatus(person)

	var results []DailyResult
	var prevChains []Chain
	for _, wd := range workDays {
		segs := grouped[wd]

		var vacationMinutes, sickMinutes int
		var workAndStandby, escortSegs []Segment
		for _, seg := range segs {
			switch seg.Type {
			case SegmentVacation:
				vacationMinutes += seg.EndMinute - seg.StartMinute
			case SegmentSick:
				sickMinutes += seg.EndMinute - seg.StartMinute
			case SegmentEscort:
				escortSegs = append(escortSegs, seg)
			default:
				workAndStandby = append(workAndStandby, seg)
			}
		}

		apartmentType := ApartmentType(0)
		if len(workAndStandby) > 0 {
			if at, ok := snap.EffectiveApartmentType(workAndStandby[0].ApartmentID); ok {
				apartmentType = at
			}
		}

		rateOf := func(segmentID string, apartmentType ApartmentType, isMarried bool) decimal.Decimal {
			rate, warn := ResolveStandbyRate(snap.EffectiveStandbyRates(segmentID), segmentID, apartmentType, isMarried, "")
			if warn != nil {
				warnings = append(warnings, *warn)
			}
			return rate
		}

		kept, cancelled, work := evaluateStandbyCancellation(workAndStandby, rateOf, apartmentType, status.IsMarried)
		chains := formChains(work, kept)

		if len(results) > 0 && !results[len(results)-1].WorkDay.AddDate(0, 0, 1).Equal(wd) {
			prevChains = nil
		}
		carry := applyCarryover(prevChains, chains)
		for i := range chains {
			m0 := 0
			if i == 0 {
				m0 = carry
			}
			chains[i].Contributions = AssignTiers(chains[i], wd, m0, snap.SabbathWeeks)
		}
		prevChains = chains

		results = append(results, DailyResult{
			WorkDay:           wd,
			Chains:            chains,
			KeptStandbys:      kept,
			CancelledStandbys: cancelled,
			EscortSegments:    escortSegs,
			VacationMinutes:   vacationMinutes,
			SickMinutes:       sickMinutes,
			Travel:            travelByWorkDay[wd],
			Extras:            escortPay(escortSegs, minimumWageHourly),
		})
	}

	return results, warnings, nil
}

// escortPay prices escort segments into Extras (§4.3, §4.6): each minute
// is paid the segment's configured flat rate, except inside Sabbath
// slices (or when no flat rate is configured) where minimum wage applies
// instead, matching app_utils.py's get_effective_hourly_rate.
func escortPay(segments []Segment, minimumWageHourly decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, seg := range segments {
		rate := minimumWageHourly
		if !seg.IsMinimumWage && seg.HasFlatRate {
			rate = seg.FlatRate
		}
		total = total.Add(minuteAmount(seg.EndMinute-seg.StartMinute, rate))
	}
	return total
}

// sickRatesByWorkDay implements the sequence grouping of §4.6 and
// core/sick_days.py: consecutive sick work-days form a sequence, and the
// payment percentage is keyed by each day's 1-based position in it.
func sickRatesByWorkDay(days []DailyResult) map[time.Time]float64 {
	var sickDates []time.Time
	for _, d := range days {
		if d.SickMinutes > 0 {
			sickDates = append(sickDates, d.WorkDay)
		}
	}
	rates := map[time.Time]float64{}
	for _, seq := range IdentifySickSequences(sickDates) {
		for i, d := range seq {
			rates[d] = SickPaymentRate(i + 1)
		}
	}
	return rates
}
