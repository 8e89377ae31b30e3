package wage

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// SplitSegmentAtWorkDayBoundaries splits one segment at every civil-day
// and work-day cutoff it crosses, so each piece belongs unambiguously to
// one work-day. Segments of arbitrary span are supported, generalizing
// spec.md's single-cutoff rule (§4.1) per SPEC_FULL.md's REDESIGN note.
func SplitSegmentAtWorkDayBoundaries(seg Segment) []Segment {
	pieces := SplitAtDayBoundaries(seg.StartMinute, seg.EndMinute)
	if len(pieces) == 1 {
		return []Segment{seg}
	}
	out := make([]Segment, 0, len(pieces))
	for _, p := range pieces {
		piece := seg
		piece.StartMinute, piece.EndMinute = p[0], p[1]
		out = append(out, piece)
	}
	return out
}

// GroupByWorkDay splits every segment at work-day boundaries and buckets
// the resulting pieces by the civil date of the work-day they belong to.
// Each piece's minutes are re-anchored to minutes-since-08:00 of its
// work-day, so pieces originating from different report dates (e.g. an
// overnight report split across midnight) compare on one common axis.
func GroupByWorkDay(segments []Segment) map[time.Time][]Segment {
	grouped := map[time.Time][]Segment{}
	for _, seg := range segments {
		for _, piece := range SplitSegmentAtWorkDayBoundaries(seg) {
			wd := WorkDayFor(piece.ReportDate, piece.StartMinute)
			anchor := AbsoluteMinute(wd, WorkDayStartMin)
			piece.StartMinute = int(AbsoluteMinute(piece.ReportDate, piece.StartMinute) - anchor)
			piece.EndMinute = int(AbsoluteMinute(piece.ReportDate, piece.EndMinute) - anchor)
			piece.ReportDate = wd
			grouped[wd] = append(grouped[wd], piece)
		}
	}
	return grouped
}

// StandbyRateLookup resolves the table rate for a kept or cancelled
// standby segment, used by DailyMap when deciding how much of a
// cancelled standby's rate exceeds the deduction cap (§4.4) and later by
// MonthlyAggregator for kept standby pay (§4.6).
type StandbyRateLookup func(segmentID string, apartmentType ApartmentType, isMarried bool) decimal.Decimal

// overlapMinutes returns the overlap, in minutes, between two [start,end)
// ranges.
func overlapMinutes(aStart, aEnd, bStart, bEnd int) int {
	start := max(aStart, bStart)
	end := min(aEnd, bEnd)
	if end <= start {
		return 0
	}
	return end - start
}

// evaluateStandbyCancellation implements §4.4's cancellation rule: a
// standby S is cancelled when the union of its overlap with all work
// segments on the day reaches 70% of its own span; otherwise it is kept
// and its overlapping minutes are subtracted from the work segments so
// the minute is never paid twice.
//
// Segments are evaluated in order_index order, tie-broken by start
// minute, per §4.4.
func evaluateStandbyCancellation(segments []Segment, rateOf StandbyRateLookup, apartmentType ApartmentType, isMarried bool) (kept []KeptStandby, cancelled []CancelledStandby, work []Segment) {
	var standbys []Segment
	for _, seg := range segments {
		switch seg.Type {
		case SegmentStandby:
			standbys = append(standbys, seg)
		case SegmentWork:
			work = append(work, seg)
		}
	}
	sort.Slice(standbys, func(i, j int) bool {
		if standbys[i].OrderIndex != standbys[j].OrderIndex {
			return standbys[i].OrderIndex < standbys[j].OrderIndex
		}
		return standbys[i].StartMinute < standbys[j].StartMinute
	})

	for _, standby := range standbys {
		span := standby.EndMinute - standby.StartMinute
		if span <= 0 {
			continue
		}

		covered := coveredUnion(standby, work)
		overlapRatio := float64(covered) / float64(span)
		rate := rateOf(standby.SegmentID, apartmentType, isMarried)

		if overlapRatio >= StandbyCancelOverlapThreshold {
			deduction := decimal.NewFromFloat(MaxCancelledStandbyDeduction)
			residual := decimal.Zero
			if rate.GreaterThan(deduction) {
				residual = rate.Sub(deduction)
			}
			cancelled = append(cancelled, CancelledStandby{Segment: standby, Rate: rate, Residual: residual})
			continue
		}

		kept = append(kept, KeptStandby{Segment: standby, Rate: rate})
		work = subtractStandbyFromWork(work, standby)
	}

	return kept, cancelled, work
}

// coveredUnion returns how many minutes of standby are covered by the
// union of all work segments.
func coveredUnion(standby Segment, work []Segment) int {
	type interval struct{ start, end int }
	var intervals []interval
	for _, w := range work {
		o := overlapMinutes(standby.StartMinute, standby.EndMinute, w.StartMinute, w.EndMinute)
		if o <= 0 {
			continue
		}
		intervals = append(intervals, interval{max(standby.StartMinute, w.StartMinute), min(standby.EndMinute, w.EndMinute)})
	}
	if len(intervals) == 0 {
		return 0
	}
	sort.Slice(intervals, func(i, j int) bool { return intervals[i].start < intervals[j].start })

	covered := 0
	curStart, curEnd := intervals[0].start, intervals[0].end
	for _, iv := range intervals[1:] {
		if iv.start > curEnd {
			covered += curEnd - curStart
			curStart, curEnd = iv.start, iv.end
			continue
		}
		if iv.end > curEnd {
			curEnd = iv.end
		}
	}
	covered += curEnd - curStart
	return covered
}

// subtractStandbyFromWork removes the portion of each work segment that
// overlaps a kept standby, so the minute is paid once (§4.4).
func subtractStandbyFromWork(work []Segment, standby Segment) []Segment {
	var result []Segment
	for _, w := range work {
		if overlapMinutes(w.StartMinute, w.EndMinute, standby.StartMinute, standby.EndMinute) <= 0 {
			result = append(result, w)
			continue
		}
		if w.StartMinute < standby.StartMinute {
			left := w
			left.EndMinute = standby.StartMinute
			if left.EndMinute > left.StartMinute {
				result = append(result, left)
			}
		}
		if w.EndMinute > standby.EndMinute {
			right := w
			right.StartMinute = standby.EndMinute
			if right.EndMinute > right.StartMinute {
				result = append(result, right)
			}
		}
	}
	return result
}

// formChains groups work segments remaining after standby cancellation
// into chains (§4.4): a maximal run of segments sorted by start minute
// where each adjacent gap is under BREAK_THRESHOLD_MINUTES, and where a
// kept standby breaks the chain.
func formChains(work []Segment, keptStandbys []KeptStandby) []Chain {
	sort.Slice(work, func(i, j int) bool { return work[i].StartMinute < work[j].StartMinute })

	breaks := make([]int, 0, len(keptStandbys))
	for _, ks := range keptStandbys {
		breaks = append(breaks, ks.Segment.StartMinute, ks.Segment.EndMinute)
	}

	var chains []Chain
	var current []Segment
	for i, seg := range work {
		if i == 0 {
			current = []Segment{seg}
			continue
		}
		prev := current[len(current)-1]
		gap := seg.StartMinute - prev.EndMinute
		if gap < BreakThresholdMinutes && !standbyBreaksGap(prev.EndMinute, seg.StartMinute, breaks) {
			current = append(current, seg)
			continue
		}
		chains = append(chains, Chain{Segments: current})
		current = []Segment{seg}
	}
	if len(current) > 0 {
		chains = append(chains, Chain{Segments: current})
	}
	return chains
}

func standbyBreaksGap(gapStart, gapEnd int, standbyBreaks []int) bool {
	for i := 0; i+1 < len(standbyBreaks); i += 2 {
		if overlapMinutes(gapStart, gapEnd, standbyBreaks[i], standbyBreaks[i+1]) > 0 {
			return true
		}
	}
	return false
}

// applyCarryover implements §4.4's carryover rule: if a chain ends
// exactly at 08:00 of the next civil date and the next work-day's first
// chain starts exactly at 08:00, the running minute-count carries over
// (no jitter tolerance; see DESIGN.md Open Question 3). Segments here are
// already re-anchored by GroupByWorkDay to minutes-since-08:00 of their
// own work-day, so "ends exactly at 08:00 of the next day" is minute
// MINUTES_PER_DAY and "starts exactly at 08:00" is minute 0.
func applyCarryover(prevDayChains []Chain, nextDayChains []Chain) int {
	if len(prevDayChains) == 0 || len(nextDayChains) == 0 {
		return 0
	}
	last := prevDayChains[len(prevDayChains)-1]
	first := nextDayChains[0]
	if len(last.Segments) == 0 || len(first.Segments) == 0 {
		return 0
	}
	lastEnd := last.Segments[len(last.Segments)-1].EndMinute
	firstStart := first.Segments[0].StartMinute
	if lastEnd != MinutesPerDay || firstStart != 0 {
		return 0
	}
	total := 0
	for _, seg := range last.Segments {
		total += seg.EndMinute - seg.StartMinute
	}
	return total
}
