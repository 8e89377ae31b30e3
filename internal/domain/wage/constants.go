package wage

const (
	MinutesPerHour    = 60
	MinutesPerDay     = 1440
	WorkDayStartMin   = 480
	RegularHoursLimit = 480
	Overtime125Limit  = 600

	BreakThresholdMinutes = 60

	StandbyCancelOverlapThreshold = 0.70
	DefaultStandbyRate            = 70.0
	MaxCancelledStandbyDeduction  = 70.0

	ShabbatEnterDefault = 960
	ShabbatExitDefault  = 1320

	MinimumEscortMinutes = 60

	ApartmentRegular     = 1
	ApartmentTherapeutic = 2

	ShiftFriday         = 105
	ShiftShabbat        = 106
	ShiftNight          = 107
	ShiftTagburFriday   = 108
	ShiftTagburShabbat  = 109
	ShiftHospitalEscort = 120
	ShiftMedicalEscort  = 148

	NightShiftWorkFirstMinutes = 120
	NightShiftStandbyEnd       = 390
	NightShiftMorningEnd       = 480

	Friday   = 4
	Saturday = 5
)
