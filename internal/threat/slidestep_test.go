package threat_test

import (
	"errors"
	"math"
	"testing"

	"github.com/sandlot-sim/baserun/internal/threat"
)

func TestSlideStepOffIsFree(t *testing.T) {
	cfg := threat.DefaultTuning()
	p := threat.PitcherProfile{Control: 60}
	nominal, err := threat.NewModel(cfg).DeliveryTime(p, false)
	if err != nil {
		t.Fatal(err)
	}
	out, err := threat.EvaluateSlideStep(cfg, p, false, 0)
	if err != nil {
		t.Fatal(err)
	}
	if out.UsedSlideStep {
		t.Fatal("slide step not requested")
	}
	if out.DeliveryTime != nominal {
		t.Fatalf("delivery=%v want nominal %v", out.DeliveryTime, nominal)
	}
	if out.VelocityPenalty != 0 || out.ControlPenalty != 0 {
		t.Fatalf("penalties must be zero: %+v", out)
	}
}

func TestSlideStepTradesTimeForQuality(t *testing.T) {
	cfg := threat.DefaultTuning()
	for _, easing := range []threat.Easing{threat.EaseLinear, threat.EaseOutQuad, threat.EaseInOutCubic} {
		cfg.SlideStepEasing = easing
		p := threat.PitcherProfile{Control: 50}
		nominal, _ := threat.NewModel(cfg).DeliveryTime(p, false)
		out, err := threat.EvaluateSlideStep(cfg, p, true, 0)
		if err != nil {
			t.Fatal(err)
		}
		if !out.UsedSlideStep {
			t.Fatal("expected slide step")
		}
		if out.DeliveryTime >= nominal {
			t.Fatalf("%s: slide step must be faster: %v >= %v", easing, out.DeliveryTime, nominal)
		}
		if out.VelocityPenalty < 0 || out.ControlPenalty < 0 {
			t.Fatalf("%s: penalties must be non-negative: %+v", easing, out)
		}
		if out.VelocityPenalty == 0 && out.ControlPenalty == 0 {
			t.Fatalf("%s: no free speedup allowed: %+v", easing, out)
		}
	}
}

func TestSlideStepNeverNoOpOnFastDelivery(t *testing.T) {
	cfg := threat.DefaultTuning()
	// explicit delivery already under the slide-step floor
	p := threat.PitcherProfile{DeliveryTime: 0.9}
	out, err := threat.EvaluateSlideStep(cfg, p, true, 0)
	if err != nil {
		t.Fatal(err)
	}
	if out.DeliveryTime >= 0.9 {
		t.Fatalf("slide step must still shave something: %v", out.DeliveryTime)
	}
}

func TestSlideStepFatigueSurcharge(t *testing.T) {
	cfg := threat.DefaultTuning()
	p := threat.PitcherProfile{Control: 50}
	rested, err := threat.EvaluateSlideStep(cfg, p, true, 0)
	if err != nil {
		t.Fatal(err)
	}
	tired, err := threat.EvaluateSlideStep(cfg, p, true, 3)
	if err != nil {
		t.Fatal(err)
	}
	if tired.VelocityPenalty <= rested.VelocityPenalty || tired.ControlPenalty <= rested.ControlPenalty {
		t.Fatalf("fatigue must raise penalties: rested=%+v tired=%+v", rested, tired)
	}
}

func TestSlideStepRejectsBadInput(t *testing.T) {
	cfg := threat.DefaultTuning()
	if _, err := threat.EvaluateSlideStep(cfg, threat.PitcherProfile{Control: 50}, true, -1); !errors.Is(err, threat.ErrInvalidAttr) {
		t.Fatalf("negative fatigue must be rejected, got %v", err)
	}
	if _, err := threat.EvaluateSlideStep(cfg, threat.PitcherProfile{Control: math.NaN()}, true, 0); !errors.Is(err, threat.ErrInvalidAttr) {
		t.Fatalf("NaN control must be rejected, got %v", err)
	}
}
