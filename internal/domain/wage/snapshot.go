package wage

import "time"

// EffectiveApartmentType resolves the history-tracked apartment type for
// (apartmentID, year, month) per §4.2.
func (s ReferenceSnapshot) EffectiveApartmentType(apartmentID ApartmentID) (ApartmentType, bool) {
	apt, ok := s.Apartments[apartmentID]
	if !ok {
		return 0, false
	}
	rows := s.ApartmentTypeHistory[apartmentID]
	return ResolveHistory(rows, s.Year, s.Month, apt.Type), true
}

// EffectivePersonStatus resolves the history-tracked marital status,
// employer, and employee type for (personID, year, month) per §4.2.
func (s ReferenceSnapshot) EffectivePersonStatus(personID PersonID) (PersonStatus, bool) {
	live, ok := s.PersonStatuses[personID]
	if !ok {
		return PersonStatus{}, false
	}
	rows := s.PersonStatusHistory[personID]
	return ResolveHistory(rows, s.Year, s.Month, live), true
}

// EffectiveShiftKind resolves the shift template plus flat-rate / minimum-
// wage mechanism for (shiftKindID, year, month): whole ShiftKind values are
// history-tracked the same way as every other mutable attribute
// (core/history.py's `get_shift_rate_for_month`). pgstore fills each
// history row's template from the live shift_time_segments rows, so only
// the flat rate and minimum-wage flag differ between months.
func (s ReferenceSnapshot) EffectiveShiftKind(shiftKindID int) (ShiftKind, bool) {
	live, ok := s.ShiftKinds[shiftKindID]
	if !ok {
		return ShiftKind{}, false
	}
	rows := s.ShiftRateHistory[shiftKindID]
	return ResolveHistory(rows, s.Year, s.Month, live), true
}

// EffectiveResolvesToRegular resolves whether a shift's housing-rate
// override falls back to the regular-apartment cluster for a given
// apartment, the condition behind implicit tagbur (§4.3). The live value
// comes from LiveHousingRates; history rows replace the whole per-shift
// rate set, matching the "valid-until" convention used for every other
// attribute.
func (s ReferenceSnapshot) EffectiveResolvesToRegular(shiftKindID int, apartmentID ApartmentID) bool {
	rows := s.HousingRateHistory[shiftKindID]
	resolved := ResolveHistory(rows, s.Year, s.Month, s.LiveHousingRates[shiftKindID])
	row := findHousingRate(resolved, apartmentID)
	if row == nil {
		return false
	}
	return row.ResolvesToRegular
}

func findHousingRate(rates []HousingRate, apartmentID ApartmentID) *HousingRate {
	for i := range rates {
		if rates[i].ApartmentID == apartmentID {
			return &rates[i]
		}
	}
	return nil
}

// EffectiveStandbyRates resolves the set of standby rate rows effective
// for (segmentID, year, month), keyed by shift-segment id.
func (s ReferenceSnapshot) EffectiveStandbyRates(segmentID string) []StandbyRate {
	rows := s.StandbyRateHistory[segmentID]
	return ResolveHistory(rows, s.Year, s.Month, s.LiveStandbyRates[segmentID])
}

// EffectiveMinimumWage returns the minimum hourly rate effective on the
// first day of the snapshot's month, per core/history.py's
// `get_minimum_wage_for_month` (effective_from <= month_start, latest
// wins).
func (s ReferenceSnapshot) EffectiveMinimumWage(monthStart time.Time) (MinimumWage, bool) {
	var best MinimumWage
	found := false
	for _, mw := range s.MinimumWages {
		if mw.EffectiveFrom.After(monthStart) {
			continue
		}
		if !found || mw.EffectiveFrom.After(best.EffectiveFrom) {
			best = mw
			found = true
		}
	}
	return best, found
}
