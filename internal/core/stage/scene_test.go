package stage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stagecraft/engine/internal/core/event"
)

func newTestScene(t *testing.T) (*Scene, *TypeRegistry, TypeID, TypeID, TypeID) {
	t.Helper()
	reg := NewTypeRegistry()
	position := reg.Register("position")
	health := reg.Register("health")
	sprite := reg.Register("sprite")
	return NewScene(reg, nil, zap.NewNop()), reg, position, health, sprite
}

func actorNames(actors []*Actor) []string {
	names := make([]string, len(actors))
	for i, a := range actors {
		names[i] = a.Name()
	}
	return names
}

func TestQuerySingleType(t *testing.T) {
	s, reg, position, health, _ := newTestScene(t)

	hero := NewActor(reg, "hero")
	require.NoError(t, hero.AddComponent(&probe{typ: position}))
	require.NoError(t, hero.AddComponent(&probe{typ: health}))
	require.NoError(t, s.AddActor(hero))

	rock := NewActor(reg, "rock")
	require.NoError(t, rock.AddComponent(&probe{typ: position}))
	require.NoError(t, s.AddActor(rock))

	got := s.Query().WithComponent(health).Execute()
	assert.Equal(t, []string{"hero"}, actorNames(got))
}

func TestQueryChainOrderIrrelevant(t *testing.T) {
	s, reg, position, health, sprite := newTestScene(t)

	for _, name := range []string{"a", "b", "c"} {
		actor := NewActor(reg, name)
		require.NoError(t, actor.AddComponent(&probe{typ: position}))
		if name != "b" {
			require.NoError(t, actor.AddComponent(&probe{typ: health}))
		}
		if name != "c" {
			require.NoError(t, actor.AddComponent(&probe{typ: sprite}))
		}
		require.NoError(t, s.AddActor(actor))
	}

	xy := s.Query().WithComponent(position).WithComponent(health).Execute()
	yx := s.Query().WithComponent(health).WithComponent(position).Execute()
	assert.ElementsMatch(t, actorNames(xy), actorNames(yx))
	assert.Equal(t, []string{"a", "c"}, actorNames(xy))
}

func TestQueryZeroTypesReturnsAllResidents(t *testing.T) {
	s, reg, _, _, _ := newTestScene(t)
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, s.AddActor(NewActor(reg, name)))
	}
	got := s.Query().Execute()
	assert.Equal(t, []string{"a", "b", "c"}, actorNames(got))
}

func TestQueryStableForFixedSceneState(t *testing.T) {
	s, reg, position, _, _ := newTestScene(t)
	for _, name := range []string{"a", "b", "c", "d"} {
		actor := NewActor(reg, name)
		require.NoError(t, actor.AddComponent(&probe{typ: position}))
		require.NoError(t, s.AddActor(actor))
	}
	first := s.Query().WithComponent(position).Execute()
	second := s.Query().WithComponent(position).Execute()
	assert.Equal(t, actorNames(first), actorNames(second))
}

// bruteForce recomputes the index result from scratch; the incremental
// index must always agree with it.
func bruteForce(s *Scene, typ TypeID) []string {
	var names []string
	for _, a := range s.Actors() {
		if a.Has(typ) {
			names = append(names, a.Name())
		}
	}
	return names
}

func TestIndexConsistencyUnderMutation(t *testing.T) {
	s, reg, position, health, sprite := newTestScene(t)
	all := []TypeID{position, health, sprite}

	check := func() {
		t.Helper()
		for _, typ := range all {
			assert.ElementsMatch(t, bruteForce(s, typ), actorNames(s.Query().WithComponent(typ).Execute()))
		}
	}

	actors := make([]*Actor, 0, 6)
	for i, name := range []string{"a", "b", "c", "d", "e", "f"} {
		actor := NewActor(reg, name)
		require.NoError(t, actor.AddComponent(&probe{typ: all[i%3]}))
		if i%2 == 0 {
			require.NoError(t, actor.AddComponent(&probe{typ: all[(i+1)%3]}))
		}
		require.NoError(t, s.AddActor(actor))
		actors = append(actors, actor)
		check()
	}

	// Component churn on resident actors.
	require.NoError(t, actors[1].AddComponent(&probe{typ: sprite}))
	check()
	require.NoError(t, actors[0].RemoveComponent(position))
	check()

	// Actor churn.
	s.RemoveActor(actors[2])
	check()
	actors[4].Destroy()
	check()
}

func TestAddActorIndexesExistingComponents(t *testing.T) {
	s, reg, position, _, _ := newTestScene(t)

	a := NewActor(reg, "late")
	require.NoError(t, a.AddComponent(&probe{typ: position}))
	require.NoError(t, s.AddActor(a))

	assert.Equal(t, []string{"late"}, actorNames(s.Query().WithComponent(position).Execute()))
	assert.Same(t, s, a.Scene())
}

func TestAddActorRejectsForeignResidency(t *testing.T) {
	s1, reg, _, _, _ := newTestScene(t)
	s2 := NewScene(reg, nil, zap.NewNop())

	a := NewActor(reg, "hero")
	require.NoError(t, s1.AddActor(a))
	require.NoError(t, s1.AddActor(a), "re-adding to the same scene is a no-op")
	require.Error(t, s2.AddActor(a))
}

func TestRemoveActorDestroys(t *testing.T) {
	s, reg, position, _, _ := newTestScene(t)

	a := NewActor(reg, "hero")
	c := &probe{typ: position}
	require.NoError(t, a.AddComponent(c))
	require.NoError(t, s.AddActor(a))
	id := a.ID()

	s.RemoveActor(a)
	assert.Equal(t, 1, c.disposes)
	assert.Nil(t, a.Scene())
	_, ok := s.Actor(id)
	assert.False(t, ok)
	assert.Empty(t, s.Query().WithComponent(position).Execute())
}

func TestDestroyDetachesFromScene(t *testing.T) {
	s, reg, position, _, _ := newTestScene(t)

	a := NewActor(reg, "hero")
	require.NoError(t, a.AddComponent(&probe{typ: position}))
	require.NoError(t, s.AddActor(a))

	a.Destroy()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Query().WithComponent(position).Execute())
}

func TestSceneLifecycleEvents(t *testing.T) {
	reg := NewTypeRegistry()
	position := reg.Register("position")
	bus := event.NewBus(zap.NewNop())
	s := NewScene(reg, bus, zap.NewNop())

	var kinds []string
	for _, kind := range []string{KindActorAdded, KindActorRemoved, KindComponentAttached, KindComponentDetached} {
		k := kind
		bus.On(k, t, func(event.Event) { kinds = append(kinds, k) })
	}

	a := NewActor(reg, "hero")
	require.NoError(t, s.AddActor(a))
	require.NoError(t, a.AddComponent(&probe{typ: position}))
	s.RemoveActor(a)

	assert.Equal(t, []string{
		KindActorAdded,
		KindComponentAttached,
		KindComponentDetached,
		KindActorRemoved,
	}, kinds)
}

func TestClear(t *testing.T) {
	s, reg, position, _, _ := newTestScene(t)
	for _, name := range []string{"a", "b"} {
		actor := NewActor(reg, name)
		require.NoError(t, actor.AddComponent(&probe{typ: position}))
		require.NoError(t, s.AddActor(actor))
	}
	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Query().Execute())
}
