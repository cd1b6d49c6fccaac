package scoring

const (
	cdWinnerScore       = 90.0
	courseWinnerScore   = 70.0
	distanceWinnerScore = 65.0
	noWinScore          = 50.0
)

// scoreCDProfile scores the course/distance winner badges. The badges are
// tri-state: nil means unknown, which is not the same as a known non-win.
// Only a fully unknown profile yields no score.
func (e *Engine) scoreCDProfile(rc *raceContext, idx int) (*float64, string) {
	runner := rc.runners[idx]

	if runner.CourseWinner == nil && runner.DistanceWinner == nil && runner.CDWinner == nil {
		return nil, "No course/distance record available"
	}

	cd := isTrue(runner.CDWinner) || (isTrue(runner.CourseWinner) && isTrue(runner.DistanceWinner))
	switch {
	case cd:
		return scoreOf(cdWinnerScore), "Previous winner over this course and distance"
	case isTrue(runner.CourseWinner):
		return scoreOf(courseWinnerScore), "Previous winner at this course"
	case isTrue(runner.DistanceWinner):
		return scoreOf(distanceWinnerScore), "Previous winner over this distance"
	default:
		return scoreOf(noWinScore), "No course or distance win on record"
	}
}

func isTrue(b *bool) bool {
	return b != nil && *b
}
