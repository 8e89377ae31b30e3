package pgstore

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"wageengine/internal/domain/wage"
)

// Store is the pgx-backed StoreAPI implementation, assembling one
// ReferenceSnapshot per (year, month) from §6's relational schema and its
// `_history` mirror tables.
type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) LoadSnapshot(ctx context.Context, year, month int) (wage.ReferenceSnapshot, error) {
	snap := wage.ReferenceSnapshot{
		Year:                 year,
		Month:                month,
		ShiftKinds:           map[int]wage.ShiftKind{},
		Apartments:           map[wage.ApartmentID]wage.Apartment{},
		PersonStatuses:       map[wage.PersonID]wage.PersonStatus{},
		ApartmentTypeHistory: map[wage.ApartmentID][]wage.HistoryRow[wage.ApartmentType]{},
		PersonStatusHistory:  map[wage.PersonID][]wage.HistoryRow[wage.PersonStatus]{},
		StandbyRateHistory:   map[string][]wage.HistoryRow[[]wage.StandbyRate]{},
		HousingRateHistory:   map[int][]wage.HistoryRow[[]wage.HousingRate]{},
		ShiftRateHistory:     map[int][]wage.HistoryRow[wage.ShiftKind]{},
		LiveStandbyRates:     map[string][]wage.StandbyRate{},
		LiveHousingRates:     map[int][]wage.HousingRate{},
		MonthLocks:           map[[2]int]wage.MonthLock{},
	}

	if err := s.loadApartments(ctx, &snap); err != nil {
		return snap, err
	}
	if err := s.loadPeople(ctx, &snap); err != nil {
		return snap, err
	}
	if err := s.loadShiftKinds(ctx, &snap); err != nil {
		return snap, err
	}
	if err := s.loadStandbyRates(ctx, &snap); err != nil {
		return snap, err
	}
	if err := s.loadHousingRates(ctx, &snap); err != nil {
		return snap, err
	}
	if err := s.loadSabbathWeeks(ctx, &snap); err != nil {
		return snap, err
	}
	if err := s.loadMinimumWages(ctx, &snap); err != nil {
		return snap, err
	}
	if err := s.loadMonthLocks(ctx, &snap); err != nil {
		return snap, err
	}
	if err := s.loadTimeReports(ctx, &snap, year, month); err != nil {
		return snap, err
	}
	return snap, nil
}

func (s *Store) loadApartments(ctx context.Context, snap *wage.ReferenceSnapshot) error {
	rows, err := s.DB.Query(ctx, `
    SELECT id, apartment_type_id
    FROM apartments
  `)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var apartmentType int
		if err := rows.Scan(&id, &apartmentType); err != nil {
			return err
		}
		snap.Apartments[wage.ApartmentID(id)] = wage.Apartment{ID: wage.ApartmentID(id), Type: wage.ApartmentType(apartmentType)}
	}

	histRows, err := s.DB.Query(ctx, `
    SELECT entity_id, year, month, apartment_type_id
    FROM apartments_history
    ORDER BY entity_id, year, month
  `)
	if err != nil {
		return err
	}
	defer histRows.Close()

	for histRows.Next() {
		var id string
		var year, month, apartmentType int
		if err := histRows.Scan(&id, &year, &month, &apartmentType); err != nil {
			return err
		}
		aid := wage.ApartmentID(id)
		snap.ApartmentTypeHistory[aid] = append(snap.ApartmentTypeHistory[aid], wage.HistoryRow[wage.ApartmentType]{
			Year: year, Month: month, Value: wage.ApartmentType(apartmentType),
		})
	}
	return nil
}

func (s *Store) loadPeople(ctx context.Context, snap *wage.ReferenceSnapshot) error {
	rows, err := s.DB.Query(ctx, `
    SELECT id, is_married, employer_id, type
    FROM people
  `)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id, employerID, employeeType string
		var isMarried bool
		if err := rows.Scan(&id, &isMarried, &employerID, &employeeType); err != nil {
			return err
		}
		snap.PersonStatuses[wage.PersonID(id)] = wage.PersonStatus{
			PersonID: wage.PersonID(id), IsMarried: isMarried, EmployerID: employerID, EmployeeType: employeeType,
		}
	}

	histRows, err := s.DB.Query(ctx, `
    SELECT entity_id, year, month, is_married, employer_id, type
    FROM people_history
    ORDER BY entity_id, year, month
  `)
	if err != nil {
		return err
	}
	defer histRows.Close()

	for histRows.Next() {
		var id, employerID, employeeType string
		var year, month int
		var isMarried bool
		if err := histRows.Scan(&id, &year, &month, &isMarried, &employerID, &employeeType); err != nil {
			return err
		}
		pid := wage.PersonID(id)
		snap.PersonStatusHistory[pid] = append(snap.PersonStatusHistory[pid], wage.HistoryRow[wage.PersonStatus]{
			Year: year, Month: month,
			Value: wage.PersonStatus{PersonID: pid, IsMarried: isMarried, EmployerID: employerID, EmployeeType: employeeType},
		})
	}
	return nil
}

// loadShiftKinds loads each shift type's segment template plus the
// flat-rate / minimum-wage mechanism that prices escort segments (§4.3,
// §4.6): core/history.py's get_shift_rate_for_month reads shift_types.rate
// and is_minimum_wage, and shift_types_history mirrors them the same way
// every other mutable attribute is history-tracked.
func (s *Store) loadShiftKinds(ctx context.Context, snap *wage.ReferenceSnapshot) error {
	rows, err := s.DB.Query(ctx, `
    SELECT id, rate, is_minimum_wage
    FROM shift_types
  `)
	if err != nil {
		return err
	}
	defer rows.Close()

	type liveKind struct {
		id            int
		rate          decimal.Decimal
		isMinimumWage bool
	}
	var live []liveKind
	for rows.Next() {
		var lk liveKind
		if err := rows.Scan(&lk.id, &lk.rate, &lk.isMinimumWage); err != nil {
			return err
		}
		live = append(live, lk)
	}

	segRows, err := s.DB.Query(ctx, `
    SELECT shift_type_id, id, segment_type, start_time, end_time, order_index
    FROM shift_time_segments
    ORDER BY shift_type_id, order_index
  `)
	if err != nil {
		return err
	}
	defer segRows.Close()

	templates := map[int][]wage.SegmentTemplateEntry{}
	for segRows.Next() {
		var shiftTypeID, segmentType, startMinute, endMinute, orderIndex int
		var segmentID string
		if err := segRows.Scan(&shiftTypeID, &segmentID, &segmentType, &startMinute, &endMinute, &orderIndex); err != nil {
			return err
		}
		templates[shiftTypeID] = append(templates[shiftTypeID], wage.SegmentTemplateEntry{
			SegmentID: segmentID, SegmentType: wage.SegmentType(segmentType),
			StartMinute: startMinute, EndMinute: endMinute, OrderIndex: orderIndex,
		})
	}

	for _, lk := range live {
		snap.ShiftKinds[lk.id] = wage.ShiftKind{
			ID:            lk.id,
			Template:      templates[lk.id],
			FlatRate:      lk.rate,
			HasFlatRate:   lk.rate.IsPositive(),
			IsMinimumWage: lk.isMinimumWage,
		}
	}

	histRows, err := s.DB.Query(ctx, `
    SELECT entity_id, year, month, rate, is_minimum_wage
    FROM shift_types_history
    ORDER BY entity_id, year, month
  `)
	if err != nil {
		return err
	}
	defer histRows.Close()

	for histRows.Next() {
		var shiftTypeID, year, month int
		var rate decimal.Decimal
		var isMinimumWage bool
		if err := histRows.Scan(&shiftTypeID, &year, &month, &rate, &isMinimumWage); err != nil {
			return err
		}
		snap.ShiftRateHistory[shiftTypeID] = append(snap.ShiftRateHistory[shiftTypeID], wage.HistoryRow[wage.ShiftKind]{
			Year:  year,
			Month: month,
			Value: wage.ShiftKind{
				ID:            shiftTypeID,
				Template:      templates[shiftTypeID],
				FlatRate:      rate,
				HasFlatRate:   rate.IsPositive(),
				IsMinimumWage: isMinimumWage,
			},
		})
	}
	return nil
}

func (s *Store) loadStandbyRates(ctx context.Context, snap *wage.ReferenceSnapshot) error {
	rows, err := s.DB.Query(ctx, `
    SELECT segment_id, apartment_type_id, marital_status, amount, priority
    FROM standby_rates
  `)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var segmentID string
		var apartmentType, priority int
		var isMarried bool
		var amount decimal.Decimal
		if err := rows.Scan(&segmentID, &apartmentType, &isMarried, &amount, &priority); err != nil {
			return err
		}
		snap.LiveStandbyRates[segmentID] = append(snap.LiveStandbyRates[segmentID], wage.StandbyRate{
			SegmentID: segmentID, ApartmentType: wage.ApartmentType(apartmentType), IsMarried: isMarried,
			Amount: amount, Priority: priority,
		})
	}
	return nil
}

// loadHousingRates loads the per-shift per-apartment housing-rate
// override table that drives implicit tagbur detection (§4.3): a Friday
// or Shabbat shift at a therapeutic apartment whose override row resolves
// to the regular cluster is reclassified at segment-build time.
func (s *Store) loadHousingRates(ctx context.Context, snap *wage.ReferenceSnapshot) error {
	rows, err := s.DB.Query(ctx, `
    SELECT shift_type_id, apartment_id, resolves_to_regular
    FROM housing_rate_overrides
  `)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var shiftTypeID int
		var apartmentID string
		var resolvesToRegular bool
		if err := rows.Scan(&shiftTypeID, &apartmentID, &resolvesToRegular); err != nil {
			return err
		}
		snap.LiveHousingRates[shiftTypeID] = append(snap.LiveHousingRates[shiftTypeID], wage.HousingRate{
			ShiftKindID: shiftTypeID, ApartmentID: wage.ApartmentID(apartmentID), ResolvesToRegular: resolvesToRegular,
		})
	}
	return nil
}

func (s *Store) loadSabbathWeeks(ctx context.Context, snap *wage.ReferenceSnapshot) error {
	rows, err := s.DB.Query(ctx, `
    SELECT entry_date, entry_minute, exit_date, exit_minute
    FROM shabbat_times
    ORDER BY entry_date
  `)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var week wage.SabbathWeek
		if err := rows.Scan(&week.EntryDate, &week.EntryMinute, &week.ExitDate, &week.ExitMinute); err != nil {
			return err
		}
		snap.SabbathWeeks = append(snap.SabbathWeeks, week)
	}
	return nil
}

func (s *Store) loadMinimumWages(ctx context.Context, snap *wage.ReferenceSnapshot) error {
	rows, err := s.DB.Query(ctx, `
    SELECT effective_date, hourly
    FROM minimum_wage_rates
    ORDER BY effective_date
  `)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var mw wage.MinimumWage
		if err := rows.Scan(&mw.EffectiveFrom, &mw.HourlyRate); err != nil {
			return err
		}
		snap.MinimumWages = append(snap.MinimumWages, mw)
	}
	return nil
}

func (s *Store) loadMonthLocks(ctx context.Context, snap *wage.ReferenceSnapshot) error {
	rows, err := s.DB.Query(ctx, `
    SELECT year, month, locked_at
    FROM month_locks
  `)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var year, month int
		var lockedAt *time.Time
		if err := rows.Scan(&year, &month, &lockedAt); err != nil {
			return err
		}
		snap.MonthLocks[[2]int{year, month}] = wage.MonthLock{Year: year, Month: month, LockedAt: lockedAt}
	}
	return nil
}

func (s *Store) loadTimeReports(ctx context.Context, snap *wage.ReferenceSnapshot, year, month int) error {
	rows, err := s.DB.Query(ctx, `
    SELECT id, person_id, apartment_id, date, start, "end", shift_type_id, is_vacation, is_sick, travel
    FROM time_reports
    WHERE EXTRACT(YEAR FROM date) = $1 AND EXTRACT(MONTH FROM date) = $2
    ORDER BY person_id, date, start
  `, year, month)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var r wage.Report
		var personID, apartmentID string
		if err := rows.Scan(&r.ID, &personID, &apartmentID, &r.Date, &r.StartMinute, &r.EndMinute, &r.ShiftKindID, &r.IsVacation, &r.IsSick, &r.Travel); err != nil {
			return err
		}
		r.PersonID = wage.PersonID(personID)
		r.ApartmentID = wage.ApartmentID(apartmentID)
		snap.Reports = append(snap.Reports, r)
	}
	return nil
}

func (s *Store) PersonIDsWithReports(ctx context.Context, snap wage.ReferenceSnapshot) []wage.PersonID {
	seen := map[wage.PersonID]bool{}
	var ids []wage.PersonID
	for _, r := range snap.Reports {
		if seen[r.PersonID] {
			continue
		}
		seen[r.PersonID] = true
		ids = append(ids, r.PersonID)
	}
	return ids
}

func (s *Store) IsMonthLocked(ctx context.Context, year, month int) (bool, error) {
	var lockedAt *time.Time
	err := s.DB.QueryRow(ctx, `
    SELECT locked_at FROM month_locks WHERE year = $1 AND month = $2
  `, year, month).Scan(&lockedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return lockedAt != nil, nil
}
