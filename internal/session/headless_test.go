package session

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestHeadless_Exec(t *testing.T) {
	m, saves := testManager(t)
	h := m.NewHeadless()
	ctx := context.Background()

	out, err := h.Exec(ctx, "look")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "start described twice", strings.Count(out, "A quiet clearing."), 2)

	out, err = h.Exec(ctx, "dance")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "unknown", out, "Unknown command: dance\n")

	out, err = h.Exec(ctx, "save")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "saved", out, "Game saved.\n")
	if saves.Get("adventurer") == nil {
		t.Errorf("expected save named after the player")
	}

	if _, err := h.Exec(ctx, "n"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err = h.Load("adventurer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "Start") {
		t.Errorf("load returned %q, expected the start room", out)
	}

	_, err = h.Load("missing")
	testutil.AssertErrorContains(t, err, `There is no save called "missing".`)
}

func TestHeadless_QuitStartsOver(t *testing.T) {
	m, _ := testManager(t)
	h := m.NewHeadless()
	ctx := context.Background()

	if _, err := h.Exec(ctx, "n"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := h.Exec(ctx, "quit"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := h.Exec(ctx, "look")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "Start") {
		t.Errorf("expected a fresh game, got %q", out)
	}
	testutil.AssertEqual(t, "over", h.Over(), false)
}

func TestHeadless_Reset(t *testing.T) {
	m, _ := testManager(t)
	h := m.NewHeadless()

	if _, err := h.Exec(context.Background(), "n"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := h.Reset()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "Start") {
		t.Errorf("expected the start room, got %q", out)
	}
}

func TestHeadless_Summary(t *testing.T) {
	m, _ := testManager(t)
	h := m.NewHeadless()

	testutil.AssertEqual(t, "before start", h.Summary().Room, "")

	for _, line := range []string{"take potion", "n"} {
		if _, err := h.Exec(context.Background(), line); err != nil {
			t.Fatalf("%s: %v", line, err)
		}
	}

	got := h.Summary()
	testutil.AssertEqual(t, "summary", fmt.Sprintf("%+v", got), fmt.Sprintf("%+v", Summary{
		Room:      "forest",
		Health:    100,
		MaxHealth: 100,
		Level:     1,
		Turn:      2,
		Phase:     "combat",
		Inventory: []string{"Potion"},
		Enemies:   []string{"Rat"},
	}))
}
