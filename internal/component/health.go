package component

import (
	"github.com/stagecraft/engine/internal/core/event"
	"github.com/stagecraft/engine/internal/core/stage"
)

// Event kinds emitted and consumed by Health components.
const (
	KindDamaged  = "health.damaged"
	KindDefeated = "health.defeated"
	KindHealAll  = "health.heal_all"
)

// DamagedEvent reports hit points lost by an actor.
type DamagedEvent struct {
	Actor     string
	Amount    int
	Remaining int
}

func (DamagedEvent) Kind() string { return KindDamaged }

// DefeatedEvent reports an actor reaching zero hit points.
type DefeatedEvent struct {
	Actor string
}

func (DefeatedEvent) Kind() string { return KindDefeated }

// HealAllEvent restores every listening Health component to full.
type HealAllEvent struct{}

func (HealAllEvent) Kind() string { return KindHealAll }

// Health tracks hit points and mirrors changes onto the bus. It
// subscribes to heal-all broadcasts under itself as owner, and disposal
// drops every subscription in one bulk unsubscribe.
type Health struct {
	stage.Base
	typ   stage.TypeID
	HP    int
	MaxHP int
	bus   *event.Bus
}

func NewHealth(ts Types, bus *event.Bus, maxHP int) *Health {
	return &Health{typ: ts.Health, HP: maxHP, MaxHP: maxHP, bus: bus}
}

func (h *Health) Type() stage.TypeID { return h.typ }

// Init subscribes to heal-all broadcasts. Runs on attach, before any
// dependency check.
func (h *Health) Init() {
	h.bus.On(KindHealAll, h, func(event.Event) {
		h.HP = h.MaxHP
	})
}

// Dispose bulk-unsubscribes everything this component registered.
func (h *Health) Dispose() {
	h.bus.OffOwner(h)
}

// Damage subtracts hit points, clamping at zero, and emits the damaged
// and (on reaching zero) defeated events.
func (h *Health) Damage(amount int) {
	if amount <= 0 || h.HP <= 0 {
		return
	}
	h.HP -= amount
	if h.HP < 0 {
		h.HP = 0
	}
	name := ""
	if h.Owner() != nil {
		name = h.Owner().Name()
	}
	h.bus.Emit(DamagedEvent{Actor: name, Amount: amount, Remaining: h.HP})
	if h.HP == 0 {
		h.bus.Emit(DefeatedEvent{Actor: name})
	}
}

// Heal restores hit points, clamping at the maximum.
func (h *Health) Heal(amount int) {
	if amount <= 0 || h.HP >= h.MaxHP {
		return
	}
	h.HP += amount
	if h.HP > h.MaxHP {
		h.HP = h.MaxHP
	}
}
