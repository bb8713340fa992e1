package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stagecraft/engine/internal/component"
	"github.com/stagecraft/engine/internal/core/event"
	"github.com/stagecraft/engine/internal/core/stage"
)

func newTestWorld(t *testing.T) (*stage.Scene, component.Types, *event.Bus) {
	t.Helper()
	reg := stage.NewTypeRegistry()
	ts := component.RegisterTypes(reg)
	bus := event.NewBus(zap.NewNop())
	return stage.NewScene(reg, bus, zap.NewNop()), ts, bus
}

func spawnMover(t *testing.T, s *stage.Scene, ts component.Types, name string, vx, vy float64) *component.Transform {
	t.Helper()
	a := stage.NewActor(s.Types(), name)
	transform := component.NewTransform(ts, 0, 0)
	require.NoError(t, a.AddComponent(transform))
	require.NoError(t, a.AddComponent(component.NewMotion(ts, vx, vy)))
	require.NoError(t, s.AddActor(a))
	return transform
}

func TestMovementStepsEveryMover(t *testing.T) {
	s, ts, _ := newTestWorld(t)
	first := spawnMover(t, s, ts, "first", 1, 0)
	second := spawnMover(t, s, ts, "second", 0, -2)

	// An actor with only a transform is not a mover.
	still := stage.NewActor(s.Types(), "still")
	require.NoError(t, still.AddComponent(component.NewTransform(ts, 7, 7)))
	require.NoError(t, s.AddActor(still))

	movement := NewMovement(s, ts)
	movement.Run(500 * time.Millisecond)
	movement.Run(500 * time.Millisecond)

	assert.InDelta(t, 1, first.X, 1e-9)
	assert.InDelta(t, -2, second.Y, 1e-9)
}

func TestMovementSkipsUnresolvedMotion(t *testing.T) {
	s, ts, _ := newTestWorld(t)

	// Motion without its transform sibling stays pending; the zero-type
	// query still returns the actor but the system must skip it.
	a := stage.NewActor(s.Types(), "ghost")
	require.NoError(t, a.AddComponent(component.NewMotion(ts, 5, 5)))
	require.NoError(t, s.AddActor(a))

	NewMovement(s, ts).Run(time.Second)
	state, _ := a.ComponentState(ts.Motion)
	assert.Equal(t, stage.StatePending, state)
}

func TestRegenHealsOncePerSecond(t *testing.T) {
	s, ts, bus := newTestWorld(t)

	a := stage.NewActor(s.Types(), "hero")
	h := component.NewHealth(ts, bus, 10)
	require.NoError(t, a.AddComponent(h))
	require.NoError(t, s.AddActor(a))
	h.Damage(5)
	require.Equal(t, 5, h.HP)

	regen := NewRegen(s, ts, 60)
	for i := 0; i < 59; i++ {
		regen.Run(0)
	}
	assert.Equal(t, 5, h.HP, "no heal before a full second of ticks")

	regen.Run(0)
	assert.Equal(t, 6, h.HP)

	for i := 0; i < 60; i++ {
		regen.Run(0)
	}
	assert.Equal(t, 7, h.HP)
}

func TestRegenLeavesDefeatedActors(t *testing.T) {
	s, ts, bus := newTestWorld(t)

	a := stage.NewActor(s.Types(), "obelisk")
	h := component.NewHealth(ts, bus, 10)
	require.NoError(t, a.AddComponent(h))
	require.NoError(t, s.AddActor(a))
	h.Damage(10)
	require.Equal(t, 0, h.HP)

	regen := NewRegen(s, ts, 1)
	regen.Run(0)
	assert.Equal(t, 0, h.HP, "defeated actors do not regenerate")
}

type fakeBehavior struct {
	stage.Base
	typ   stage.TypeID
	calls int
	total time.Duration
}

func (f *fakeBehavior) Type() stage.TypeID { return f.typ }
func (f *fakeBehavior) Update(dt time.Duration) {
	f.calls++
	f.total += dt
}

func TestBehaviorDrivesUpdaters(t *testing.T) {
	s, ts, _ := newTestWorld(t)

	a := stage.NewActor(s.Types(), "drone")
	fb := &fakeBehavior{typ: ts.Behavior}
	require.NoError(t, a.AddComponent(component.NewTransform(ts, 0, 0)))
	require.NoError(t, a.AddComponent(fb))
	require.NoError(t, s.AddActor(a))

	// A pending behavior on another actor is skipped.
	pending := stage.NewActor(s.Types(), "pending")
	require.NoError(t, pending.AddComponent(&fakeBehavior{typ: ts.Behavior}))
	require.NoError(t, s.AddActor(pending))

	behavior := NewBehavior(s, ts)
	behavior.Run(100 * time.Millisecond)
	behavior.Run(100 * time.Millisecond)

	assert.Equal(t, 2, fb.calls)
	assert.Equal(t, 200*time.Millisecond, fb.total)
}

func TestReportRuns(t *testing.T) {
	s, ts, _ := newTestWorld(t)
	spawnMover(t, s, ts, "hero", 1, 1)

	// Smoke: the report must tolerate any scene shape without panicking.
	report := NewReport(s, ts, zap.NewNop())
	report.Run(time.Second)
	s.Clear()
	report.Run(time.Second)
}
