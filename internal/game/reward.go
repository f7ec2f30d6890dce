package game

// Time bonus tiers awarded for a correct answer.
const (
	FastTimeBonus   = 10
	SteadyTimeBonus = 5
)

// TimeBonus returns the bonus tier for the fraction of the limit remaining:
// more than half earns FastTimeBonus, more than 30% earns SteadyTimeBonus.
func TimeBonus(limit, remaining int) int {
	if limit <= 0 || remaining <= 0 {
		return 0
	}
	switch {
	case 2*remaining > limit:
		return FastTimeBonus
	case 10*remaining > 3*limit:
		return SteadyTimeBonus
	default:
		return 0
	}
}

// Reward computes max(0, base + timeBonus - hintsSpent).
func Reward(base, timeBonus, hintsSpent int) int {
	r := base + timeBonus - hintsSpent
	if r < 0 {
		return 0
	}
	return r
}
