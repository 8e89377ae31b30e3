package wage

import (
	"math"
	"time"
)

var weekdayTierOrder = [3]Tier{Tier100, Tier125, Tier150Overtime}
var sabbathTierOrder = [3]Tier{Tier150Shabbat, Tier175, Tier200}

// AssignTiers implements §4.5: a running counter m over minutes-within-
// chain determines the tier, with segments first split at Sabbath
// entry/exit boundaries so every minute is classified unambiguously. m is
// chain-cumulative, so a single segment can straddle two tiers.
//
// workday is the civil date the chain's minutes are anchored to (the
// work-day's own date, post GroupByWorkDay re-anchoring); carryoverMinutes
// seeds m for a chain that continues a prior work-day's run (§4.4).
func AssignTiers(chain Chain, workday time.Time, carryoverMinutes int, weeks []SabbathWeek) []ChainContribution {
	m := carryoverMinutes
	var raw []ChainContribution

	for _, seg := range chain.Segments {
		segStart := WorkDayStartMin + seg.StartMinute
		segEnd := WorkDayStartMin + seg.EndMinute
		for _, piece := range SplitAtSabbathBoundaries(workday, segStart, segEnd, weeks) {
			length := piece.End - piece.Start
			if length <= 0 {
				continue
			}
			raw = append(raw, splitByTierBoundaries(m, length, piece.IsSabbath)...)
			m += length
		}
	}
	return mergeContributions(raw)
}

// splitByTierBoundaries splits a [mStart, mStart+length) run of
// chain-cumulative minutes at the 480/600 tier boundaries of §4.5's
// weekday or Sabbath-slice table.
func splitByTierBoundaries(mStart, length int, isSabbath bool) []ChainContribution {
	tiers := weekdayTierOrder
	if isSabbath {
		tiers = sabbathTierOrder
	}

	end := mStart + length
	bounds := [2]int{RegularHoursLimit, Overtime125Limit}
	var out []ChainContribution
	cursor := mStart
	for _, b := range bounds {
		if b <= cursor {
			continue
		}
		if b >= end {
			break
		}
		out = append(out, tierContribution(cursor, b, tiers))
		cursor = b
	}
	out = append(out, tierContribution(cursor, end, tiers))
	return out
}

func tierContribution(start, end int, tiers [3]Tier) ChainContribution {
	var tier Tier
	switch {
	case start < RegularHoursLimit:
		tier = tiers[0]
	case start < Overtime125Limit:
		tier = tiers[1]
	default:
		tier = tiers[2]
	}
	return ChainContribution{Tier: tier, Minutes: end - start}
}

func mergeContributions(raw []ChainContribution) []ChainContribution {
	byTier := map[Tier]int{}
	order := []Tier{}
	for _, c := range raw {
		if _, ok := byTier[c.Tier]; !ok {
			order = append(order, c.Tier)
		}
		byTier[c.Tier] += c.Minutes
	}
	out := make([]ChainContribution, 0, len(order))
	for _, t := range order {
		out = append(out, ChainContribution{Tier: t, Minutes: byTier[t]})
	}
	return out
}

// SplitShabbat150 implements §4.5's pension split of calc150_shabbat into
// a base-100 and a supplement-50 component, read as a ratio-of-1.5 split
// with half-to-even integer rounding (§9 Open Question 1, resolved in
// DESIGN.md).
func SplitShabbat150(totalMinutes int) (base100, supplement50 int) {
	base100 = int(math.RoundToEven(float64(totalMinutes) / 1.5))
	supplement50 = totalMinutes - base100
	return base100, supplement50
}
