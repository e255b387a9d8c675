package progression

import (
	"time"

	"fanzone-service/internal/domain"
)

// CanAttempt reports whether a fan may take the daily quiz. Only the calendar
// date matters; both timestamps must come from the same authoritative clock so
// a client resetting its local clock cannot bypass the gate.
func CanAttempt(lastAttempt *time.Time, today time.Time) bool {
	if lastAttempt == nil {
		return true
	}
	return !sameDate(*lastAttempt, today)
}

// RecordAttempt marks today's quiz as taken. Call it only after scoring, inside
// the same logical transaction as the points update, so an abandoned quiz never
// burns the day and a failed write never locks the fan out.
func RecordAttempt(profile domain.FanProfile, today time.Time) domain.FanProfile {
	attempt := today
	profile.LastQuizAttempt = &attempt
	return profile
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
