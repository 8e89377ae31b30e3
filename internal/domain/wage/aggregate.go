package wage

import (
	"time"

	"github.com/shopspring/decimal"
)

// AggregateMonthlyTotals implements §4.6: it sums minute buckets by tier
// across every work-day's chains, prices kept and cancelled standby,
// vacation and sick minutes, travel, and extras into the fixed-field
// MonthlyTotals record.
//
// sickRateByWorkDay supplies the per-sequence sick-pay percentage for
// each work-day that carries sick minutes (§4.6: day 1 of a sequence
// pays 0%, days 2-3 pay 50%, day 4+ pays 100%); it is computed by the
// caller from IdentifySickSequences + SickPaymentRate over the month's
// sick-marked dates, since the sequence spans day boundaries that a
// single DailyResult cannot see.
func AggregateMonthlyTotals(person PersonID, year, month int, days []DailyResult, sickRateByWorkDay map[time.Time]float64, minimumWageHourly decimal.Decimal, extras ExtrasConfig, extraShiftKinds []int) (MonthlyTotals, []Warning) {
	totals := MonthlyTotals{
		PersonID:       person,
		Year:           year,
		Month:          month,
		StandbyPayment: decimal.Zero,
		VacationPayment: decimal.Zero,
		SickPayment:    decimal.Zero,
		Travel:         decimal.Zero,
		Extras:         decimal.Zero,
	}
	var warnings []Warning

	for _, day := range days {
		for _, chain := range day.Chains {
			for _, c := range chain.Contributions {
				addTier(&totals, c.Tier, c.Minutes)
			}
		}

		for _, kept := range day.KeptStandbys {
			totals.StandbyMinutes += kept.Segment.EndMinute - kept.Segment.StartMinute
			totals.StandbyPayment = totals.StandbyPayment.Add(kept.Rate)
		}
		for _, cancelled := range day.CancelledStandbys {
			totals.StandbyPayment = totals.StandbyPayment.Add(cancelled.Residual)
		}

		totals.VacationMinutes += day.VacationMinutes
		totals.SickMinutes += day.SickMinutes

		rate := sickRateByWorkDay[day.WorkDay]
		if day.SickMinutes > 0 {
			pay := minuteAmount(day.SickMinutes, minimumWageHourly).Mul(decimal.NewFromFloat(rate))
			totals.SickPayment = totals.SickPayment.Add(pay)
		}

		totals.Travel = totals.Travel.Add(day.Travel)
		totals.Extras = totals.Extras.Add(day.Extras)
	}

	totals.VacationPayment = minuteAmount(totals.VacationMinutes, minimumWageHourly)

	base100, supplement50 := SplitShabbat150(totals.Calc150Shabbat)
	totals.Calc150Shabbat100 = base100
	totals.Calc150Shabbat50 = supplement50

	for _, kindID := range extraShiftKinds {
		if amt, ok := extras.PerShiftKind[kindID]; ok {
			totals.Extras = totals.Extras.Add(amt)
		}
	}
	if amt, ok := extras.PerPerson[person]; ok {
		totals.Extras = totals.Extras.Add(amt)
	}

	return totals, warnings
}

func addTier(totals *MonthlyTotals, tier Tier, minutes int) {
	switch tier {
	case Tier100:
		totals.Calc100 += minutes
	case Tier125:
		totals.Calc125 += minutes
	case Tier150Overtime:
		totals.Calc150Overtime += minutes
	case Tier150Shabbat:
		totals.Calc150Shabbat += minutes
	case Tier175:
		totals.Calc175 += minutes
	case Tier200:
		totals.Calc200 += minutes
	}
}

func minuteAmount(minutes int, hourlyRate decimal.Decimal) decimal.Decimal {
	return hourlyRate.Mul(decimal.NewFromInt(int64(minutes))).Div(decimal.NewFromInt(MinutesPerHour))
}

// ResolveStandbyRate implements §4.6's standby-rate lookup: match by
// (segment-id, resolved apartment-type, resolved marital-status), ties
// broken by highest priority, falling back to DEFAULT_STANDBY_RATE with a
// recorded warning when nothing matches (§7 RateUnavailable).
func ResolveStandbyRate(rates []StandbyRate, segmentID string, apartmentType ApartmentType, isMarried bool, reportID ReportID) (decimal.Decimal, *Warning) {
	var best *StandbyRate
	for i := range rates {
		r := &rates[i]
		if r.SegmentID != segmentID || r.ApartmentType != apartmentType || r.IsMarried != isMarried {
			continue
		}
		if best == nil || r.Priority > best.Priority {
			best = r
		}
	}
	if best != nil {
		return best.Amount, nil
	}
	return decimal.NewFromFloat(DefaultStandbyRate), &Warning{
		ReportID: string(reportID),
		Code:     WarnRateUnavailable,
		Message:  "no standby rate matched; used default rate",
	}
}
