package threat

import "fmt"

// Base indexes the occupied base. Home is only ever a destination.
type Base int

const (
	First  Base = 1
	Second Base = 2
	Third  Base = 3
	Home   Base = 4
)

func (b Base) valid() bool { return b >= First && b <= Third }

// PitchOutcome tags how the last pitch resolved, for lead/jump evolution.
type PitchOutcome string

const (
	PitchBall           PitchOutcome = "ball"
	PitchCalledStrike   PitchOutcome = "called_strike"
	PitchSwingingStrike PitchOutcome = "swinging_strike"
	PitchFoul           PitchOutcome = "foul"
	PitchInPlay         PitchOutcome = "in_play"
	PitchOut            PitchOutcome = "pitch_out"
)

// RunnerThreatState is the per-(runner, base) pressure record. The store
// below is its only owner; resolvers receive it by pointer and must re-fetch
// on every call rather than hold a copy across pitches.
type RunnerThreatState struct {
	RunnerID        string
	Base            Base
	LeadOffDistance float64 // feet off the bag, never negative
	JumpQuality     float64 // 0..JumpMax
	Pressure        float64 // crowd/situation pressure working against the runner
	LastUpdatedTick int
}

func (s *RunnerThreatState) adjustLead(delta float64) {
	s.LeadOffDistance += delta
	if s.LeadOffDistance < 0 {
		s.LeadOffDistance = 0
	}
}

func (s *RunnerThreatState) adjustJump(delta, max float64) {
	s.JumpQuality += delta
	if s.JumpQuality < 0 {
		s.JumpQuality = 0
	}
	if s.JumpQuality > max {
		s.JumpQuality = max
	}
}

type threatKey struct {
	runner string
	base   Base
}

// Store holds threat state for one game instance. It is not safe for
// concurrent use; parallel simulations each own their own Store.
type Store struct {
	cfg     Tuning
	entries map[threatKey]*RunnerThreatState
}

func NewStore(cfg Tuning) *Store {
	return &Store{cfg: cfg, entries: make(map[threatKey]*RunnerThreatState)}
}

// GetOrCreate returns the live record for (runnerID, base), creating it at
// baseline (zero lead, default jump) when the runner just reached base.
func (st *Store) GetOrCreate(runnerID string, base Base) (*RunnerThreatState, error) {
	if !base.valid() {
		return nil, fmt.Errorf("get_or_create base=%d: %w", base, ErrInvalidBase)
	}
	key := threatKey{runner: runnerID, base: base}
	if s, ok := st.entries[key]; ok {
		return s, nil
	}
	s := &RunnerThreatState{
		RunnerID:    runnerID,
		Base:        base,
		JumpQuality: st.cfg.DefaultJump,
	}
	st.entries[key] = s
	return s, nil
}

// Advance applies the post-pitch lead/jump rules and stamps the tick.
// A ball lets the runner creep out and read the pitcher better; a called
// strike under pressure pulls the lead back in. No randomness here.
func (st *Store) Advance(runnerID string, base Base, outcome PitchOutcome, tick int) (*RunnerThreatState, error) {
	s, err := st.GetOrCreate(runnerID, base)
	if err != nil {
		return nil, err
	}
	switch outcome {
	case PitchBall, PitchOut:
		s.adjustJump(st.cfg.JumpGainBall, st.cfg.JumpMax)
		s.adjustLead(st.cfg.LeadCreepBall)
	case PitchCalledStrike:
		s.adjustLead(-st.cfg.LeadDecayStrike * (1 + s.Pressure))
	case PitchSwingingStrike, PitchFoul:
		s.adjustLead(-st.cfg.LeadDecayStrike / 2)
	case PitchInPlay:
		// occupancy is about to change; the caller clears movers explicitly
	}
	s.LastUpdatedTick = tick
	return s, nil
}

// SetPressure records situational pressure against the runner.
func (st *Store) SetPressure(runnerID string, base Base, pressure float64) error {
	s, err := st.GetOrCreate(runnerID, base)
	if err != nil {
		return err
	}
	if pressure < 0 {
		pressure = 0
	}
	s.Pressure = pressure
	return nil
}

// ApplyPickoff folds a pickoff outcome into the stored record: a pickout
// zeroes the lead, a miss trims it and teaches the runner the move.
func (st *Store) ApplyPickoff(runnerID string, base Base, out PickoffOutcome, tick int) error {
	s, err := st.GetOrCreate(runnerID, base)
	if err != nil {
		return err
	}
	if out.LeadReset {
		s.LeadOffDistance = 0
	} else {
		s.adjustLead(-st.cfg.HoldLeadTrim)
		s.adjustJump(st.cfg.MissJumpGain, st.cfg.JumpMax)
	}
	s.LastUpdatedTick = tick
	return nil
}

// Clear destroys the record for a runner who left the base by any means.
// Clearing an absent record is a no-op.
func (st *Store) Clear(runnerID string, base Base) error {
	if !base.valid() {
		return fmt.Errorf("clear base=%d: %w", base, ErrInvalidBase)
	}
	delete(st.entries, threatKey{runner: runnerID, base: base})
	return nil
}

// Len reports how many runners currently carry threat state.
func (st *Store) Len() int { return len(st.entries) }
