package threat_test

import (
	"testing"

	"github.com/sandlot-sim/baserun/internal/threat"
)

func loaded() [3]*threat.BaseRunner {
	return [3]*threat.BaseRunner{
		{ID: "on1", Speed: 50},
		{ID: "on2", Speed: 50},
		{ID: "on3", Speed: 50},
	}
}

func TestAdvanceHomerClearsTheBases(t *testing.T) {
	bases := loaded()
	runs, moves, err := threat.AdvanceOnHit(&bases, threat.HitHomer, threat.BaseRunner{ID: "bat"}, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if runs != 4 {
		t.Fatalf("grand slam scores 4, got %d", runs)
	}
	if bases[0] != nil || bases[1] != nil || bases[2] != nil {
		t.Fatalf("bases must be empty: %+v", bases)
	}
	for _, m := range moves {
		if m.To != threat.Home {
			t.Fatalf("every mover scores on a homer: %+v", m)
		}
	}
}

func TestAdvanceTripleScoresAllRunners(t *testing.T) {
	bases := loaded()
	runs, _, err := threat.AdvanceOnHit(&bases, threat.HitTriple, threat.BaseRunner{ID: "bat"}, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if runs != 3 {
		t.Fatalf("triple with bases loaded scores 3, got %d", runs)
	}
	if bases[2] == nil || bases[2].ID != "bat" {
		t.Fatalf("batter must stand on third: %+v", bases[2])
	}
	if bases[0] != nil || bases[1] != nil {
		t.Fatalf("first and second must be empty: %+v", bases)
	}
}

func TestAdvanceSingleConservative(t *testing.T) {
	// 0.99 never clears any decision threshold: station to station.
	bases := loaded()
	runs, _, err := threat.AdvanceOnHit(&bases, threat.HitSingle, threat.BaseRunner{ID: "bat"}, 0, fixedRNG{0.99})
	if err != nil {
		t.Fatal(err)
	}
	if runs != 1 {
		t.Fatalf("only the runner from third scores, got %d", runs)
	}
	if bases[2] == nil || bases[2].ID != "on2" {
		t.Fatalf("runner from second holds at third: %+v", bases[2])
	}
	if bases[1] == nil || bases[1].ID != "on1" {
		t.Fatalf("runner from first holds at second: %+v", bases[1])
	}
	if bases[0] == nil || bases[0].ID != "bat" {
		t.Fatalf("batter takes first: %+v", bases[0])
	}
}

func TestAdvanceSingleAggressive(t *testing.T) {
	// 0.0 clears every threshold: runner from second scores, first takes third.
	bases := [3]*threat.BaseRunner{
		{ID: "on1", Speed: 80},
		{ID: "on2", Speed: 80},
		nil,
	}
	runs, _, err := threat.AdvanceOnHit(&bases, threat.HitSingle, threat.BaseRunner{ID: "bat"}, 2, fixedRNG{0})
	if err != nil {
		t.Fatal(err)
	}
	if runs != 1 {
		t.Fatalf("runner from second scores, got %d", runs)
	}
	if bases[2] == nil || bases[2].ID != "on1" {
		t.Fatalf("runner from first takes third: %+v", bases[2])
	}
	if bases[0] == nil || bases[0].ID != "bat" {
		t.Fatalf("batter takes first: %+v", bases[0])
	}
}

func TestAdvanceDoubleFromFirst(t *testing.T) {
	held := [3]*threat.BaseRunner{{ID: "on1", Speed: 50}, nil, nil}
	runs, _, err := threat.AdvanceOnHit(&held, threat.HitDouble, threat.BaseRunner{ID: "bat"}, 0, fixedRNG{0.99})
	if err != nil {
		t.Fatal(err)
	}
	if runs != 0 {
		t.Fatalf("held runner does not score, got %d", runs)
	}
	if held[2] == nil || held[2].ID != "on1" {
		t.Fatalf("runner from first stops at third: %+v", held[2])
	}
	if held[1] == nil || held[1].ID != "bat" {
		t.Fatalf("batter takes second: %+v", held[1])
	}

	sent := [3]*threat.BaseRunner{{ID: "on1", Speed: 50}, nil, nil}
	runs, _, err = threat.AdvanceOnHit(&sent, threat.HitDouble, threat.BaseRunner{ID: "bat"}, 0, fixedRNG{0})
	if err != nil {
		t.Fatal(err)
	}
	if runs != 1 {
		t.Fatalf("sent runner scores from first, got %d", runs)
	}
	if sent[2] != nil {
		t.Fatalf("third must be empty: %+v", sent[2])
	}
}

func TestAdvanceRejectsBadInput(t *testing.T) {
	if _, _, err := threat.AdvanceOnHit(nil, threat.HitSingle, threat.BaseRunner{}, 0, nil); err == nil {
		t.Fatal("nil occupancy must be rejected")
	}
	bases := loaded()
	if _, _, err := threat.AdvanceOnHit(&bases, threat.HitType("5B"), threat.BaseRunner{}, 0, nil); err == nil {
		t.Fatal("unknown hit type must be rejected")
	}
}
