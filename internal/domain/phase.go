package domain

// Phase represents the current phase of a game
type Phase string

const (
	PhaseSetup   Phase = "SETUP"   // Roster, categories and traitor count are editable
	PhasePeek    Phase = "PEEK"    // Players privately look at their card, one by one
	PhasePlaying Phase = "PLAYING" // Open discussion
	PhaseReveal  Phase = "REVEAL"  // Secret word and traitors are shown
)

// String returns the string representation of the phase
func (p Phase) String() string {
	return string(p)
}

// IsRoundActive reports whether roles and a secret word are assigned in this phase
func (p Phase) IsRoundActive() bool {
	return p == PhasePeek || p == PhasePlaying || p == PhaseReveal
}

// CanTransitionTo checks if a transition from current phase to target phase is valid
func (p Phase) CanTransitionTo(target Phase) bool {
	// Reset is allowed from everywhere
	if target == PhaseSetup {
		return p.valid()
	}

	validTransitions := map[Phase][]Phase{
		PhaseSetup:   {PhasePeek},
		PhasePeek:    {PhasePeek, PhasePlaying}, // Next peeker, or the last one is done
		PhasePlaying: {PhaseReveal},
	}

	allowed, ok := validTransitions[p]
	if !ok {
		return false
	}

	for _, phase := range allowed {
		if phase == target {
			return true
		}
	}
	return false
}

func (p Phase) valid() bool {
	switch p {
	case PhaseSetup, PhasePeek, PhasePlaying, PhaseReveal:
		return true
	}
	return false
}
