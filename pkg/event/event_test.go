// pkg/event/event_test.go
package event

import "testing"

func TestBus_PublishSubscribe(t *testing.T) {
	bus := NewBus()

	received := 0
	bus.Subscribe(BodyDestroyed, func(e Event) {
		received++
		if e.GetType() != BodyDestroyed {
			t.Errorf("handler got type %q, want %q", e.GetType(), BodyDestroyed)
		}
	})

	bus.Publish(NewBodyEvent(BodyDestroyed, nil, 3, "Vela Prime"))
	bus.Publish(NewBodyEvent(BodyDestroyed, nil, 4, "Korris III"))

	if received != 2 {
		t.Errorf("handler invoked %d times, want 2", received)
	}
}

func TestBus_TypeIsolation(t *testing.T) {
	bus := NewBus()

	var warpCalls, bodyCalls int
	bus.Subscribe(WarpEngaged, func(e Event) { warpCalls++ })
	bus.Subscribe(BodyRespawned, func(e Event) { bodyCalls++ })

	bus.Publish(NewWarpEvent(WarpEngaged, nil, 1, 3))

	if warpCalls != 1 {
		t.Errorf("warp handler invoked %d times, want 1", warpCalls)
	}
	if bodyCalls != 0 {
		t.Errorf("body handler invoked %d times, want 0", bodyCalls)
	}
}

func TestBus_MultipleHandlers(t *testing.T) {
	bus := NewBus()

	var first, second bool
	bus.Subscribe(AlertChanged, func(e Event) { first = true })
	bus.Subscribe(AlertChanged, func(e Event) { second = true })

	bus.Publish(NewAlertEvent(nil, "green", "yellow"))

	if !first || !second {
		t.Errorf("handlers invoked = (%v, %v), want both", first, second)
	}
}

func TestEventPayloads(t *testing.T) {
	we := NewWarpEvent(WarpArrived, nil, 7, 5)
	if we.DestinationID != 7 || we.Level != 5 {
		t.Errorf("WarpEvent payload = %+v", we)
	}

	ce := NewCollisionEvent(nil, 2, 15)
	if ce.GetType() != HullCollision || ce.BodyID != 2 || ce.Damage != 15 {
		t.Errorf("CollisionEvent payload = %+v", ce)
	}

	ae := NewAlertEvent(nil, "yellow", "red")
	if ae.GetType() != AlertChanged || ae.Previous != "yellow" || ae.Current != "red" {
		t.Errorf("AlertEvent payload = %+v", ae)
	}
}
