package wage

import (
	"time"

	"github.com/shopspring/decimal"
)

type PersonID string
type ApartmentID string
type ReportID string

// Report is one logged interval as read from time_reports.
type Report struct {
	ID          ReportID
	PersonID    PersonID
	ApartmentID ApartmentID
	Date        time.Time // civil date, truncated to midnight
	StartMinute int       // minutes from 00:00 of Date
	EndMinute   int        // minutes from 00:00 of Date; may be <= StartMinute before normalization
	ShiftKindID int
	IsVacation  bool
	IsSick      bool
	Travel      decimal.Decimal
}

// SegmentTemplateEntry is one row of a fixed shift template.
type SegmentTemplateEntry struct {
	SegmentID   string
	SegmentType SegmentType
	StartMinute int
	EndMinute   int
	OrderIndex  int
}

// ShiftKind is the resolved view of a shift_types row, passed into
// SegmentBuilder rather than looked up from within it (see DESIGN.md,
// "cyclic coupling" redesign note).
type ShiftKind struct {
	ID             int
	Template       []SegmentTemplateEntry
	FlatRate       decimal.Decimal
	IsMinimumWage  bool
	HasFlatRate    bool
}

type ApartmentType int

const (
	ApartmentTypeRegular     ApartmentType = ApartmentRegular
	ApartmentTypeTherapeutic ApartmentType = ApartmentTherapeutic
)

type Apartment struct {
	ID   ApartmentID
	Type ApartmentType
}

type PersonStatus struct {
	PersonID     PersonID
	IsMarried    bool
	EmployerID   string
	EmployeeType string
}

// StandbyRate is keyed by (segment-id, apartment-type, marital-status),
// with priority 10 = specific, 0 = generic.
type StandbyRate struct {
	SegmentID     string
	ApartmentType ApartmentType
	IsMarried     bool
	Amount        decimal.Decimal
	Priority      int
}

// HousingRate resolves a shift's per-housing-cluster override; when the
// override resolves to the regular cluster despite a therapeutic
// apartment, the shift is implicit tagbur (§4.3).
type HousingRate struct {
	ShiftKindID   int
	ApartmentID   ApartmentID
	ResolvesToRegular bool
}

// SabbathWeek gives the entry (Friday) / exit (Saturday) minute-of-day for
// one calendar week.
type SabbathWeek struct {
	EntryDate   time.Time
	EntryMinute int
	ExitDate    time.Time
	ExitMinute  int
}

type MinimumWage struct {
	EffectiveFrom time.Time
	HourlyRate    decimal.Decimal
}

type MonthLock struct {
	Year     int
	Month    int
	LockedAt *time.Time
}

type SegmentType int

const (
	SegmentWork SegmentType = iota
	SegmentStandby
	SegmentVacation
	SegmentSick
	SegmentEscort
)

// Segment is one ordered piece of a decomposed report.
type Segment struct {
	ReportID    ReportID
	ReportDate  time.Time // the report's civil date; StartMinute/EndMinute are anchored to its 00:00
	PersonID    PersonID
	ApartmentID ApartmentID
	Type        SegmentType
	SegmentID   string
	StartMinute int
	EndMinute   int
	OrderIndex  int
	IsMinimumWage bool
	FlatRate      decimal.Decimal
	HasFlatRate   bool
}

// Tier is a wage-percentage bucket.
type Tier int

const (
	Tier100 Tier = iota
	Tier125
	Tier150Overtime
	Tier150Shabbat
	Tier175
	Tier200
)

// ChainContribution is one (tier, minutes) pair emitted by ChainWageEngine.
type ChainContribution struct {
	Tier    Tier
	Minutes int
}

// Chain is a maximal run of consecutive work segments (§4.4).
type Chain struct {
	Segments      []Segment
	Contributions []ChainContribution
}

// KeptStandby is a standby segment that survived cancellation.
type KeptStandby struct {
	Segment Segment
	Rate    decimal.Decimal
}

// CancelledStandby is a standby segment removed by the 70% overlap rule.
type CancelledStandby struct {
	Segment  Segment
	Rate     decimal.Decimal
	Residual decimal.Decimal
}

// DailyResult is the per-work-day decomposition (§3 DailyResult derived).
type DailyResult struct {
	WorkDay           time.Time
	Chains            []Chain
	KeptStandbys      []KeptStandby
	CancelledStandbys []CancelledStandby
	EscortSegments    []Segment
	VacationMinutes   int
	SickMinutes       int
	Travel            decimal.Decimal
	Extras            decimal.Decimal
}

// DayView is the UI-facing per-day segment breakdown.
type DayView struct {
	WorkDay  time.Time
	Segments []Segment
	Chains   []Chain
}

// MonthlyTotals is the fixed-field derived record produced by
// MonthlyAggregator.
type MonthlyTotals struct {
	PersonID PersonID
	Year     int
	Month    int

	Calc100         int
	Calc125         int
	Calc150Overtime int
	Calc150Shabbat  int
	Calc150Shabbat100 int
	Calc150Shabbat50  int
	Calc175         int
	Calc200         int

	StandbyMinutes int
	StandbyPayment decimal.Decimal

	VacationMinutes int
	VacationPayment decimal.Decimal

	SickMinutes int
	SickPayment decimal.Decimal

	Travel decimal.Decimal
	Extras decimal.Decimal
}

// ExtrasConfig names the configured flat-payment components referenced by
// §4.6 ("Extras: sum of configured payment components (flat additions per
// report kind or person)"). Its shape is left unspecified by spec.md; this
// is the supplemented configuration surface (see SPEC_FULL.md §4, C6).
type ExtrasConfig struct {
	PerShiftKind map[int]decimal.Decimal
	PerPerson    map[PersonID]decimal.Decimal
}

// ReferenceSnapshot is the explicit, no-ambient-cache argument threaded
// through a single computation, replacing the original system's
// process-wide Sabbath/minimum-wage caches (§9 redesign note).
type ReferenceSnapshot struct {
	Year  int
	Month int

	ShiftKinds    map[int]ShiftKind
	Apartments    map[ApartmentID]Apartment
	PersonStatuses map[PersonID]PersonStatus

	ApartmentTypeHistory map[ApartmentID][]HistoryRow[ApartmentType]
	PersonStatusHistory  map[PersonID][]HistoryRow[PersonStatus]
	StandbyRateHistory   map[string][]HistoryRow[[]StandbyRate]
	HousingRateHistory   map[int][]HistoryRow[[]HousingRate]
	ShiftRateHistory     map[int][]HistoryRow[ShiftKind]

	LiveStandbyRates map[string][]StandbyRate
	LiveHousingRates map[int][]HousingRate

	SabbathWeeks []SabbathWeek
	MinimumWages []MinimumWage
	MonthLocks   map[[2]int]MonthLock

	Extras ExtrasConfig

	Reports []Report
}
