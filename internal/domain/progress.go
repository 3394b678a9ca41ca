package domain

// ProgressState is the experience, level and ticket counters derived from
// the ledger.
type ProgressState struct {
	Experience Points
	Level      int
	Tickets    int
}

// NewProgressState returns the state of an empty ledger.
func NewProgressState() ProgressState {
	return ProgressState{Level: 1}
}

// AddExperience adds p and levels up while experience reaches the current
// threshold. Each step consumes the threshold of the level being left and
// grants one ticket. It returns the number of levels gained.
func (s *ProgressState) AddExperience(p Points) int {
	if s.Level < 1 {
		s.Level = 1
	}
	s.Experience += p
	gained := 0
	for required := RequiredExperience(s.Level); s.Experience >= required; required = RequiredExperience(s.Level) {
		s.Experience -= required
		s.Level++
		s.Tickets++
		gained++
	}
	return gained
}

// ExperienceToNextLevel is the experience still missing for the next level.
func (s ProgressState) ExperienceToNextLevel() Points {
	return RequiredExperience(s.Level) - s.Experience
}

// LevelProgress is the completed fraction of the current level in [0, 1).
func (s ProgressState) LevelProgress() float64 {
	required := RequiredExperience(s.Level)
	if required <= 0 {
		return 0
	}
	return float64(s.Experience) / float64(required)
}
