package trail

// Pass threshold as an exact ratio: a quiz passes when
// score/total >= PassNumerator/PassDenominator.
const (
	PassNumerator   = 70
	PassDenominator = 100
)

// Passed reports whether score out of total meets the pass threshold.
// The comparison is done on integers so 7/10 passes and 69/100 fails with no
// floating point rounding. A quiz with no questions never passes.
func Passed(score, total int) bool {
	if total <= 0 {
		return false
	}
	return score*PassDenominator >= PassNumerator*total
}

// Percent returns score/total as a whole percentage, truncated. Display only.
func Percent(score, total int) int {
	if total <= 0 {
		return 0
	}
	return score * 100 / total
}
