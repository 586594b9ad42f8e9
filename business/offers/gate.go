package offers

import "myLocalMarket/domain"

// IsUnlocked reports whether a point total reaches an offer threshold. The
// comparison is inclusive, unlike the tier bands.
func IsUnlocked(points, threshold int64) bool {
	return points >= threshold
}

// Gate applies IsUnlocked for authenticated viewers only.
func Gate(viewer domain.Viewer, points, threshold int64) bool {
	if !viewer.Authenticated {
		return false
	}
	return IsUnlocked(points, threshold)
}
