package engine

import "eyecandy/internal/access/models"

// MatchLocation returns the rule that governs the location, or nil when no
// rule matches. The most specific granularity with any match wins. Within
// that granularity an exclude rule beats allow rules, and among allows the
// first authored rule wins.
func MatchLocation(rules []models.LocationRule, loc *models.GeoLocation) *models.LocationRule {
	if len(rules) == 0 || loc.IsEmpty() {
		return nil
	}

	for _, granularity := range models.SpecificityOrder {
		var firstAllow *models.LocationRule
		for i := range rules {
			r := &rules[i]
			if r.Type != granularity || !r.Matches(loc) {
				continue
			}
			if !r.IsAllowed {
				return r
			}
			if firstAllow == nil {
				firstAllow = r
			}
		}
		if firstAllow != nil {
			return firstAllow
		}
	}
	return nil
}
