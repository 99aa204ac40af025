package picklecatch

// autopilotTarget picks the lowest object still above the catch line.
// Ties keep the first one found.
func autopilotTarget(objects []FallingObject, catchLineY float64) (float64, bool) {
	found := false
	var bestX, bestY float64
	for _, o := range objects {
		if o.Y >= catchLineY {
			continue
		}
		if !found || o.Y > bestY {
			bestX, bestY = o.X, o.Y
			found = true
		}
	}
	return bestX, found
}
