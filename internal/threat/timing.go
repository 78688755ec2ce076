package threat

import "fmt"

// RunnerProfile is the attribute snapshot for a baserunner. Attributes are
// 0-100 ratings owned by the roster system; this engine only reads them.
type RunnerProfile struct {
	Speed     float64
	Awareness float64
}

// CatcherProfile feeds the pop-time curve. PopTime, when positive, is a
// measured value that overrides the derived curve.
type CatcherProfile struct {
	ArmStrength float64
	Accuracy    float64
	PopTime     float64 // seconds; 0 = derive from ratings
	Fatigue     float64 // innings-caught fatigue units
}

// PitcherProfile feeds delivery, pickoff and stamina math. DeliveryTime,
// when positive, overrides the derived curve.
type PitcherProfile struct {
	DeliveryTime  float64 // seconds to the plate; 0 = derive from ratings
	Control       float64
	Velocity      float64
	Stamina       float64
	PickoffRating float64
}

// Model is the pure timing function set. It owns no state; it exists so the
// tuning knobs are threaded once instead of through every call site.
type Model struct {
	cfg Tuning
}

func NewModel(cfg Tuning) Model { return Model{cfg: cfg} }

// RunnerSpeedTime converts a speed rating into seconds over the given
// distance. Monotonically decreasing in speed, increasing in distance,
// always strictly positive.
func (m Model) RunnerSpeedTime(speed, distance float64) (float64, error) {
	if err := validateAttr("speed", speed); err != nil {
		return 0, err
	}
	if err := validateAttr("distance", distance); err != nil {
		return 0, err
	}
	if distance == 0 {
		return 0, fmt.Errorf("distance=0: %w", ErrInvalidAttr)
	}
	scale := distance / m.cfg.BaseDistance
	t := (m.cfg.RunnerTimeBase - (speed-50)*m.cfg.RunnerTimeSlope) * scale
	if floor := m.cfg.RunnerTimeFloor * scale; t < floor {
		t = floor
	}
	return t, nil
}

// PopTime is catch-to-tag time at the target base. Fatigue only ever adds.
func (m Model) PopTime(c CatcherProfile, fatigue float64) (float64, error) {
	for _, a := range []struct {
		name string
		v    float64
	}{{"arm_strength", c.ArmStrength}, {"accuracy", c.Accuracy}, {"pop_time", c.PopTime}} {
		if err := validateAttr(a.name, a.v); err != nil {
			return 0, err
		}
	}
	base := c.PopTime
	if base <= 0 {
		base = m.cfg.PopTimeBase - (c.ArmStrength-50)*m.cfg.PopArmSlope - (c.Accuracy-50)*m.cfg.PopAccuracySlope
		if base < m.cfg.PopTimeFloor {
			base = m.cfg.PopTimeFloor
		}
	}
	if fatigue > 0 {
		base += fatigue * m.cfg.PopFatigueRate
	}
	return base, nil
}

// DeliveryTime is first-move-to-plate time, shaved when the pitcher goes to
// the slide step. The pitch-quality cost of that shave is enforced by
// EvaluateSlideStep, not here.
func (m Model) DeliveryTime(p PitcherProfile, slideStep bool) (float64, error) {
	for _, a := range []struct {
		name string
		v    float64
	}{{"delivery_time", p.DeliveryTime}, {"control", p.Control}, {"velocity", p.Velocity}} {
		if err := validateAttr(a.name, a.v); err != nil {
			return 0, err
		}
	}
	base := p.DeliveryTime
	if base <= 0 {
		base = m.cfg.DeliveryBase - (p.Control-50)*m.cfg.DeliveryControlSlope
		if base < m.cfg.DeliveryFloor {
			base = m.cfg.DeliveryFloor
		}
	}
	if !slideStep {
		return base, nil
	}
	return m.shavedDelivery(base), nil
}

// shavedDelivery applies the slide-step shave with a hard floor, but always
// returns something strictly below the baseline so a slide step is never a
// no-op.
func (m Model) shavedDelivery(base float64) float64 {
	t := base - m.cfg.SlideStepShave
	if t < m.cfg.SlideStepFloor {
		t = m.cfg.SlideStepFloor
	}
	if t >= base {
		t = base * 0.9
	}
	return t
}

// LeadOffAdvantage converts stored threat state into seconds the runner
// effectively banks before the pitch.
func (m Model) LeadOffAdvantage(s *RunnerThreatState) float64 {
	if s == nil {
		return 0
	}
	return s.LeadOffDistance*m.cfg.K1 + s.JumpQuality*m.cfg.K2 - s.Pressure*m.cfg.K3
}
