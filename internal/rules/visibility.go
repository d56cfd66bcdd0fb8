package rules

// PickVisibilityThreshold is the active player count at or below which other
// players' picks stay hidden until the round locks.
const PickVisibilityThreshold = 3

// IsPickVisible reports whether viewerID may see the pick owned by ownerID.
func IsPickVisible(locked bool, viewerID, ownerID string, activePlayerCount int) bool {
	if locked {
		return true
	}
	if activePlayerCount > PickVisibilityThreshold {
		return true
	}
	return viewerID != "" && viewerID == ownerID
}
