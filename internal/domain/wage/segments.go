package wage

import (
	"fmt"
)

// ShiftVariant is the tagged variant SegmentBuilder dispatches on,
// replacing the original system's inheritance hierarchy among shift
// kinds (§9 redesign note).
type ShiftVariant int

const (
	VariantFixedTemplate ShiftVariant = iota
	VariantNightDynamic
	VariantHospitalEscort
	VariantMedicalEscort
)

// ClassifyShift resolves the effective shift id for a report, folding in
// implicit-tagbur reinterpretation (§4.3): a Friday/Shabbat shift at a
// therapeutic apartment whose housing-rate override resolves to the
// regular cluster is treated as the corresponding tagbur kind.
func ClassifyShift(shiftKindID int, apartmentType ApartmentType, resolvesToRegular bool) (effectiveID int, variant ShiftVariant, isImplicitTagbur bool) {
	effectiveID = shiftKindID
	if apartmentType == ApartmentTypeTherapeutic && resolvesToRegular {
		switch shiftKindID {
		case ShiftFriday:
			effectiveID = ShiftTagburFriday
			isImplicitTagbur = true
		case ShiftShabbat:
			effectiveID = ShiftTagburShabbat
			isImplicitTagbur = true
		}
	}

	switch effectiveID {
	case ShiftNight:
		return effectiveID, VariantNightDynamic, isImplicitTagbur
	case ShiftHospitalEscort:
		return effectiveID, VariantHospitalEscort, isImplicitTagbur
	case ShiftMedicalEscort:
		return effectiveID, VariantMedicalEscort, isImplicitTagbur
	default:
		return effectiveID, VariantFixedTemplate, isImplicitTagbur
	}
}

// BuildSegments turns one report into an ordered list of segments. kind
// must already be the template resolved for the report's effective shift
// id and month (§9: "pass a resolved ShiftKind view into SegmentBuilder
// rather than querying inside it"). Returns a non-nil warning instead of
// an error for malformed reports, per §7.
func BuildSegments(report Report, kind ShiftKind, variant ShiftVariant, weeks []SabbathWeek) ([]Segment, *Warning) {
	start := report.StartMinute
	end := NormalizeEnd(report.StartMinute, report.EndMinute)

	if end <= start || start < 0 || end > 2*MinutesPerDay {
		return nil, &Warning{
			ReportID: string(report.ID),
			Code:     WarnMalformedReport,
			Message:  fmt.Sprintf("report %s has non-positive or out-of-range duration (%d..%d)", report.ID, start, end),
		}
	}

	if report.IsVacation {
		return []Segment{newPlainSegment(report, SegmentVacation, "vacation", start, end, 0)}, nil
	}
	if report.IsSick {
		return []Segment{newPlainSegment(report, SegmentSick, "sick", start, end, 0)}, nil
	}

	switch variant {
	case VariantNightDynamic:
		return buildNightShiftSegments(report, start, end), nil
	case VariantHospitalEscort, VariantMedicalEscort:
		return buildEscortSegments(report, kind, start, end, weeks), nil
	default:
		return buildFixedTemplateSegments(report, kind, start, end), nil
	}
}

func newPlainSegment(report Report, typ SegmentType, segmentID string, start, end, orderIndex int) Segment {
	return Segment{
		ReportID:    report.ID,
		ReportDate:  report.Date,
		PersonID:    report.PersonID,
		ApartmentID: report.ApartmentID,
		Type:        typ,
		SegmentID:   segmentID,
		StartMinute: start,
		EndMinute:   end,
		OrderIndex:  orderIndex,
	}
}

// buildFixedTemplateSegments implements §4.3's fixed-template policy for
// kinds 105/106/108/109 (and any other plain template-backed kind):
// emit segments from the shift's template, clipped to the report span.
func buildFixedTemplateSegments(report Report, kind ShiftKind, start, end int) []Segment {
	var segments []Segment
	for _, entry := range kind.Template {
		overlapStart := max(entry.StartMinute, start)
		overlapEnd := min(entry.EndMinute, end)
		if overlapStart >= overlapEnd {
			continue
		}
		segments = append(segments, Segment{
			ReportID:    report.ID,
			ReportDate:  report.Date,
			PersonID:    report.PersonID,
			ApartmentID: report.ApartmentID,
			Type:        entry.SegmentType,
			SegmentID:   entry.SegmentID,
			StartMinute: overlapStart,
			EndMinute:   overlapEnd,
			OrderIndex:  entry.OrderIndex,
		})
	}
	return segments
}

// nextMinuteOfDayBoundary returns the smallest absolute minute >= minute
// whose minute-in-day equals targetMinuteInDay.
func nextMinuteOfDayBoundary(minute, targetMinuteInDay int) int {
	boundary := floorDiv(minute, MinutesPerDay)*MinutesPerDay + targetMinuteInDay
	if boundary < minute {
		boundary += MinutesPerDay
	}
	return boundary
}

// buildNightShiftSegments implements §4.3's dynamic decomposition for
// kind 107: first 120 minutes work, then standby until the next 06:30,
// then work until the report's end.
func buildNightShiftSegments(report Report, start, end int) []Segment {
	workFirstEnd := start + NightShiftWorkFirstMinutes
	if end <= workFirstEnd {
		return []Segment{newPlainSegment(report, SegmentWork, "night-work", start, end, 0)}
	}

	var segments []Segment
	segments = append(segments, newPlainSegment(report, SegmentWork, "night-work-1", start, workFirstEnd, 0))

	standbyBoundary := nextMinuteOfDayBoundary(workFirstEnd, NightShiftStandbyEnd)
	standbyEnd := min(end, standbyBoundary)
	if standbyEnd > workFirstEnd {
		segments = append(segments, newPlainSegment(report, SegmentStandby, "night-standby", workFirstEnd, standbyEnd, 1))
	}
	if end > standbyBoundary {
		segments = append(segments, newPlainSegment(report, SegmentWork, "night-work-2", standbyBoundary, end, 2))
	}
	return segments
}

// buildEscortSegments implements §4.3's hospital (120) and medical (148)
// escort policy: inside Sabbath slices the segment is paid minimum wage
// regardless of tier; outside Sabbath it is paid a shift-specific flat
// rate. Both escort kinds share this rule; only the label differs. Escort
// segments are tagged SegmentEscort so they are priced via Extras
// (app_utils.py's get_effective_hourly_rate) rather than entering the
// tiered work-chain path.
func buildEscortSegments(report Report, kind ShiftKind, start, end int, weeks []SabbathWeek) []Segment {
	pieces := SplitAtSabbathBoundaries(report.Date, start, end, weeks)
	segments := make([]Segment, 0, len(pieces))
	for i, piece := range pieces {
		if piece.End <= piece.Start {
			continue
		}
		seg := newPlainSegment(report, SegmentEscort, fmt.Sprintf("escort-%d", kind.ID), piece.Start, piece.End, i)
		if piece.IsSabbath {
			seg.IsMinimumWage = true
		} else {
			seg.HasFlatRate = kind.HasFlatRate
			seg.FlatRate = kind.FlatRate
		}
		if kind.ID == ShiftMedicalEscort && end-start < MinimumEscortMinutes && len(pieces) == 1 {
			// §4.3 supplement (app_utils.py): short medical-escort
			// reports are padded to a minimum duration, folded into
			// ordinary work rather than the flat-rate path.
			seg.Type = SegmentWork
			seg.EndMinute = seg.StartMinute + MinimumEscortMinutes
			seg.HasFlatRate = false
			seg.IsMinimumWage = false
		}
		segments = append(segments, seg)
	}
	return segments
}
