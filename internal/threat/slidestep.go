package threat

// SlideStepResult is the delivery decision for one pitch. Consumed by the
// pitch-negotiation step immediately; never persisted.
type SlideStepResult struct {
	UsedSlideStep   bool
	DeliveryTime    float64 // seconds
	VelocityPenalty float64 // subtracted from nominal pitch velocity
	ControlPenalty  float64 // subtracted from nominal control score
}

// ease maps shave progress t in [0,1] onto the penalty curve.
func ease(t float64, e Easing) float64 {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	switch e {
	case EaseOutQuad:
		return 1 - (1-t)*(1-t)
	case EaseInOutCubic:
		if t < 0.5 {
			return 4 * t * t * t
		}
		u := -2*t + 2
		return 1 - u*u*u/2
	default:
		return t
	}
}

// EvaluateSlideStep prices the pitcher's delivery choice. Without the slide
// step it is the cheap pass-through: nominal delivery, zero penalties. With
// it, delivery drops and both penalties rise monotonically with the time
// actually shaved (shaped by the configured easing), plus a fatigue
// surcharge. The component is stateless: the caller accumulates fatigue on
// the pitcher and resets it at the configured boundary (Tuning.SlideStepReset).
func EvaluateSlideStep(cfg Tuning, p PitcherProfile, useSlideStep bool, fatigue float64) (SlideStepResult, error) {
	if err := validateAttr("fatigue", fatigue); err != nil {
		return SlideStepResult{}, err
	}
	m := NewModel(cfg)
	nominal, err := m.DeliveryTime(p, false)
	if err != nil {
		return SlideStepResult{}, err
	}
	if !useSlideStep {
		return SlideStepResult{DeliveryTime: nominal}, nil
	}

	shaved := m.shavedDelivery(nominal)
	t := 1.0
	if cfg.SlideStepShave > 0 {
		t = (nominal - shaved) / cfg.SlideStepShave
	}
	curve := ease(t, cfg.SlideStepEasing)
	return SlideStepResult{
		UsedSlideStep:   true,
		DeliveryTime:    shaved,
		VelocityPenalty: cfg.VelocityPenaltyMax*curve + fatigue*cfg.VelocityFatigueRate,
		ControlPenalty:  cfg.ControlPenaltyMax*curve + fatigue*cfg.ControlFatigueRate,
	}, nil
}
