package domain

import "github.com/avdmitr/BCA-BookingChecker/pkg/types"

// Conflict pair kinds. Partial overlaps and exact matches are kept in
// separate record types so one pair can never carry both tags.
const (
	OverlapTypePartial     = "partial"
	ConflictTypeExactMatch = "exact_match"
)

// BookingRef compact snapshot of a booking embedded in report records.
// The report is a detached artifact, so it carries values, not references.
type BookingRef struct {
	ID        int64            `json:"id"`
	User      string           `json:"user"`
	Date      string           `json:"date"` // YYYY-MM-DD
	StartTime types.TimeString `json:"start_time"`
	EndTime   types.TimeString `json:"end_time"`
}

// OverlapPair pair of bookings with a partial time overlap on the same date
type OverlapPair struct {
	Booking1    BookingRef `json:"booking_1"`
	Booking2    BookingRef `json:"booking_2"`
	OverlapType string     `json:"overlap_type"` // always OverlapTypePartial
}

// ConflictPair pair of bookings with identical date, start and end
type ConflictPair struct {
	Booking1     BookingRef `json:"booking_1"`
	Booking2     BookingRef `json:"booking_2"`
	ConflictType string     `json:"conflict_type"` // always ConflictTypeExactMatch
}

// GapBefore booking that ends before an idle interval
type GapBefore struct {
	ID      int64            `json:"id"`
	User    string           `json:"user"`
	EndTime types.TimeString `json:"end_time"`
}

// GapAfter booking that starts after an idle interval
type GapAfter struct {
	ID        int64            `json:"id"`
	User      string           `json:"user"`
	StartTime types.TimeString `json:"start_time"`
}

// Gap idle interval between two chronologically adjacent bookings on one date
type Gap struct {
	Date               string           `json:"date"`
	Before             GapBefore        `json:"booking_before"`
	After              GapAfter         `json:"booking_after"`
	GapDurationMinutes int              `json:"gap_duration_minutes"`
	GapStart           types.TimeString `json:"gap_start"`
	GapEnd             types.TimeString `json:"gap_end"`
}

// ConflictSummary counters of the conflict report
type ConflictSummary struct {
	TotalBookings    int `json:"total_bookings"`
	OverlappingCount int `json:"overlapping_count"`
	ConflictCount    int `json:"conflict_count"`
	GapCount         int `json:"gap_count"`
}

// ConflictReport result of a system-wide conflict analysis.
// Ephemeral: computed from a snapshot, never persisted.
type ConflictReport struct {
	Overlapping []OverlapPair   `json:"overlapping"`
	Conflicts   []ConflictPair  `json:"conflicts"`
	Gaps        []Gap           `json:"gaps"`
	Summary     ConflictSummary `json:"summary"`
}
