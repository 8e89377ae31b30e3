package wage

import (
	"sort"
	"time"
)

// IdentifySickSequences groups sick-marked civil dates into consecutive
// runs; a gap of more than one day resets the sequence, grounded directly
// on core/sick_days.py's `_identify_sick_day_sequences`.
func IdentifySickSequences(dates []time.Time) [][]time.Time {
	if len(dates) == 0 {
		return nil
	}
	sorted := append([]time.Time(nil), dates...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	var sequences [][]time.Time
	current := []time.Time{sorted[0]}
	for _, d := range sorted[1:] {
		prev := current[len(current)-1]
		if sameCivilDate(d, prev) {
			continue
		}
		gapDays := int(d.Sub(prev).Hours() / 24)
		if gapDays > 1 {
			sequences = append(sequences, current)
			current = []time.Time{d}
			continue
		}
		current = append(current, d)
	}
	sequences = append(sequences, current)
	return sequences
}

// SickPaymentRate returns the per-sequence percentage for a sick day at
// the given 1-based position in its sequence (§4.6, core/sick_days.py
// `get_sick_payment_rate`): day 1 pays 0%, days 2-3 pay 50%, day 4+ pays
// 100%.
func SickPaymentRate(position int) float64 {
	switch {
	case position <= 1:
		return 0.0
	case position <= 3:
		return 0.5
	default:
		return 1.0
	}
}
