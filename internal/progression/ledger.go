package progression

import "fanzone-service/internal/domain"

// ApplyDelta awards points to the profile and re-derives the tier. Points and
// level always change together; there is no intermediate snapshot where they
// disagree. A negative delta is rejected before any mutation.
func ApplyDelta(profile domain.FanProfile, delta int) (domain.FanProfile, error) {
	if delta < 0 {
		return profile, domain.ErrNegativeDelta
	}
	profile.Points += delta
	profile.Level = LevelFromPoints(profile.Points)
	return profile, nil
}
