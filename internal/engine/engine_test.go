package engine_test

import (
	"io"
	"log"
	"testing"

	"github.com/sandlot-sim/baserun/internal/engine"
	"github.com/sandlot-sim/baserun/internal/event"
	"github.com/sandlot-sim/baserun/internal/threat"
)

func testBus() *event.Bus {
	return event.NewBus(log.New(io.Discard, "", 0))
}

func testMatchup() (threat.RunnerProfile, threat.PitcherProfile, threat.CatcherProfile) {
	return threat.RunnerProfile{Speed: 85},
		threat.PitcherProfile{DeliveryTime: 1.35, Control: 55, Stamina: 100, PickoffRating: 60},
		threat.CatcherProfile{ArmStrength: 60, Accuracy: 55}
}

func TestEngineReplaysUnderSeed(t *testing.T) {
	cfg := threat.DefaultTuning()
	runner, pitcher, catcher := testMatchup()

	play := func(e *engine.Engine) []threat.StealOutcome {
		var outs []threat.StealOutcome
		for i := 0; i < 30; i++ {
			if _, err := e.PrepareRunner("r1", threat.First); err != nil {
				t.Fatal(err)
			}
			if _, err := e.AdvancePitch("r1", threat.First, threat.PitchBall); err != nil {
				t.Fatal(err)
			}
			out, err := e.AttemptSteal("r1", threat.First, runner, pitcher, catcher, i%2 == 0)
			if err != nil {
				t.Fatal(err)
			}
			outs = append(outs, out)
		}
		return outs
	}

	a := play(engine.New(cfg, threat.NewSeededRNG(11), testBus()))
	b := play(engine.New(cfg, threat.NewSeededRNG(11), testBus()))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("play %d diverged: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestEnginePickoffAppliesStaminaOnce(t *testing.T) {
	e := engine.New(threat.DefaultTuning(), threat.NewSeededRNG(5), testBus())
	_, pitcher, _ := testMatchup()

	before := pitcher.Stamina
	out, err := e.AttemptPickoff("r1", threat.First, &pitcher)
	if err != nil {
		t.Fatal(err)
	}
	if pitcher.Stamina != before+out.StaminaDelta {
		t.Fatalf("stamina must move by exactly the reported delta: %v, want %v", pitcher.Stamina, before+out.StaminaDelta)
	}
	if pitcher.Stamina >= before {
		t.Fatalf("throwing over must cost stamina: %v >= %v", pitcher.Stamina, before)
	}

	prev := pitcher.Stamina
	for i := 0; i < 50; i++ {
		if _, err := e.AttemptPickoff("r1", threat.First, &pitcher); err != nil {
			t.Fatal(err)
		}
		if pitcher.Stamina > prev {
			t.Fatalf("stamina must never recover mid-sequence: %v > %v", pitcher.Stamina, prev)
		}
		if pitcher.Stamina < 0 {
			t.Fatalf("stamina floor is zero: %v", pitcher.Stamina)
		}
		prev = pitcher.Stamina
	}
}

func TestEnginePickoffUpdatesThreatState(t *testing.T) {
	cfg := threat.DefaultTuning()
	cfg.PickoffMinChance = 0
	cfg.PickoffMaxChance = 0 // forced miss
	e := engine.New(cfg, threat.NewSeededRNG(5), testBus())
	_, pitcher, _ := testMatchup()

	s, err := e.SeedThreat("r1", threat.First, 4, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	out, err := e.AttemptPickoff("r1", threat.First, &pitcher)
	if err != nil {
		t.Fatal(err)
	}
	if out.Picked {
		t.Fatalf("chance clamped to zero must miss: %+v", out)
	}
	if s.LeadOffDistance != 4-cfg.HoldLeadTrim {
		t.Fatalf("miss must trim the stored lead: %v", s.LeadOffDistance)
	}
	if s.JumpQuality <= 0.5 {
		t.Fatalf("miss must raise jump quality: %v", s.JumpQuality)
	}
}

func TestEngineStealClearsThreatEntry(t *testing.T) {
	e := engine.New(threat.DefaultTuning(), threat.NewSeededRNG(9), testBus())
	runner, pitcher, catcher := testMatchup()

	if _, err := e.SeedThreat("r1", threat.First, 3, 0.8); err != nil {
		t.Fatal(err)
	}
	if _, err := e.AttemptSteal("r1", threat.First, runner, pitcher, catcher, false); err != nil {
		t.Fatal(err)
	}

	fresh, err := e.PrepareRunner("r1", threat.First)
	if err != nil {
		t.Fatal(err)
	}
	if fresh.LeadOffDistance != 0 {
		t.Fatalf("runner back on first must start at baseline lead: %v", fresh.LeadOffDistance)
	}
}

func TestEngineSeedThreatClamps(t *testing.T) {
	cfg := threat.DefaultTuning()
	e := engine.New(cfg, threat.NewSeededRNG(1), testBus())

	s, err := e.SeedThreat("r1", threat.Second, 5, cfg.JumpMax+10)
	if err != nil {
		t.Fatal(err)
	}
	if s.JumpQuality != cfg.JumpMax {
		t.Fatalf("jump must clamp to max: %v", s.JumpQuality)
	}

	s, err = e.SeedThreat("r1", threat.Second, -1, -1)
	if err != nil {
		t.Fatal(err)
	}
	if s.LeadOffDistance != 5 || s.JumpQuality != cfg.JumpMax {
		t.Fatalf("negative seed values must keep current state: %+v", s)
	}
}

func TestEnginePublishesEvents(t *testing.T) {
	e := engine.New(threat.DefaultTuning(), threat.NewSeededRNG(3), testBus())
	runner, pitcher, catcher := testMatchup()

	var got []event.Event
	e.Bus().SubscribeAll(func(ev event.Event) { got = append(got, ev) })

	if _, err := e.PrepareRunner("r1", threat.First); err != nil {
		t.Fatal(err)
	}
	if _, err := e.AttemptPickoff("r1", threat.First, &pitcher); err != nil {
		t.Fatal(err)
	}
	if _, err := e.AttemptSteal("r1", threat.First, runner, pitcher, catcher, false); err != nil {
		t.Fatal(err)
	}

	want := []event.Kind{event.KindLeadUpdate, event.KindPickoff, event.KindSteal}
	if len(got) < len(want) {
		t.Fatalf("want at least %d events, got %d", len(want), len(got))
	}
	seen := map[event.Kind]bool{}
	for _, ev := range got {
		seen[ev.Kind] = true
		if ev.GameID != e.ID {
			t.Fatalf("event must carry the game id: %+v", ev)
		}
		if ev.ID == "" {
			t.Fatalf("event must carry an id: %+v", ev)
		}
	}
	for _, k := range want {
		if !seen[k] {
			t.Fatalf("missing %s in %+v", k, got)
		}
	}
}

func TestEngineAdvanceOnHitReseedsBases(t *testing.T) {
	e := engine.New(threat.DefaultTuning(), threat.NewSeededRNG(2), testBus())

	if _, err := e.SeedThreat("on1", threat.First, 3, 0.7); err != nil {
		t.Fatal(err)
	}
	bases := [3]*threat.BaseRunner{{ID: "on1", Speed: 70}, nil, nil}
	runs, moves, err := e.AdvanceOnHit(&bases, threat.HitTriple, threat.BaseRunner{ID: "bat", Speed: 60}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if runs != 1 {
		t.Fatalf("runner from first scores on a triple, got %d", runs)
	}
	if len(moves) != 2 {
		t.Fatalf("want 2 movements, got %+v", moves)
	}
	if bases[2] == nil || bases[2].ID != "bat" {
		t.Fatalf("batter must stand on third: %+v", bases)
	}

	// scorer's old entry is gone; batter's new base starts at baseline
	s, err := e.PrepareRunner("on1", threat.First)
	if err != nil {
		t.Fatal(err)
	}
	if s.LeadOffDistance != 0 {
		t.Fatalf("cleared runner must restart at baseline: %v", s.LeadOffDistance)
	}
	batter, err := e.PrepareRunner("bat", threat.Third)
	if err != nil {
		t.Fatal(err)
	}
	if batter.LeadOffDistance != 0 {
		t.Fatalf("batter on third starts at baseline: %+v", batter)
	}
}
