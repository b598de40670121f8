package domain

// Default schedule values
const (
	DefaultLookaheadDays = 14
	MaxLookaheadDays     = 90
	BusinessOpenHour     = 9  // first slot 09:00
	BusinessCloseHour    = 17 // last slot 17:00, inclusive
)

// Default business client multipliers. They are independent: the price surcharge and the
// duration inflation are not derived from one another.
const (
	DefaultBusinessPriceMultiplier    = "1.2"
	DefaultBusinessDurationMultiplier = 1.5
)

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxProofRefLength           = 255
	MaxPlaceholderRegionLength  = 1
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BookingStatuses all statuses, used for input validation
var BookingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
}
