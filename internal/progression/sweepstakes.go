package progression

import "fanzone-service/internal/domain"

// DefaultSweepstakesThreshold is the number of correct answers that enters a
// fan into the weekly sweepstakes.
const DefaultSweepstakesThreshold = 3

// MaybeEnroll flips the sweepstakes flag when the quiz result meets the
// threshold. The flip is one-way and idempotent: once entered, repeat calls are
// no-ops, and no quiz path ever clears the flag. Resetting for a new period is
// an explicit administrative operation at the service boundary.
func MaybeEnroll(profile domain.FanProfile, correctAnswers, threshold int) domain.FanProfile {
	if profile.InSweepstakes {
		return profile
	}
	if correctAnswers >= threshold {
		profile.InSweepstakes = true
	}
	return profile
}
