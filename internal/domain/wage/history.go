package wage

// HistoryRow is one row of a `_history` mirror table: the value that was
// superseded starting (Year, Month) — the "valid-until" convention (see
// GLOSSARY). Resolver direction is grounded on core/history.py's literal
// SQL (strict greater-than), not on spec.md's prose, which states the
// comparison as "≥" (see DESIGN.md, Open Question 2).
type HistoryRow[T any] struct {
	Year  int
	Month int
	Value T
}

func beforeYM(y1, m1, y2, m2 int) bool {
	if y1 != y2 {
		return y1 < y2
	}
	return m1 < m2
}

// ResolveHistory implements the generic (entity_id, attribute,
// target_year, target_month) -> T lookup of §4.2: the earliest history
// row whose (year, month) is strictly later than (targetYear, targetMonth)
// holds the value effective for the target month; if no such row exists,
// the live value applies.
func ResolveHistory[T any](rows []HistoryRow[T], targetYear, targetMonth int, live T) T {
	var (
		found    bool
		best     HistoryRow[T]
	)
	for _, row := range rows {
		if !beforeYM(targetYear, targetMonth, row.Year, row.Month) {
			continue // row is not strictly in the future of the target month
		}
		if !found || beforeYM(row.Year, row.Month, best.Year, best.Month) {
			found = true
			best = row
		}
	}
	if !found {
		return live
	}
	return best.Value
}
