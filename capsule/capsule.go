// Package capsule pairs an owned anchor with a value borrowed from it.
//
// A zero-copy view such as a zmap.Map points into the bytes of the buffer it
// was parsed from. A Capsule keeps that buffer (the anchor) and the view
// together so the pair can be stored and passed around as one owned value:
//
//	c, err := capsule.TryAttach[capsule.Anchor](anchor, func(b []byte) (zmap.Map[string, string], error) {
//	    return zmap.Parse(keys, values, b)
//	})
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	v, ok := c.Get().Get("key")
//
// The garbage collector keeps the anchor's memory alive while any view
// references it. What a capsule adds is ownership: it decides when a
// releasable anchor (a pooled or reference-counted buffer) is handed back,
// and it refuses any use once that has happened.
//
// # States
//
// A capsule is Attached when created. IntoAnchor detaches it and returns
// the anchor; Close releases it; Map and TryMap consume it in favour of a
// new capsule. Every operation other than State, IsOwned and Close panics on
// a capsule that is no longer Attached.
//
// Transitions are not safe for concurrent use on the same capsule. Get is
// safe for concurrent readers while the capsule stays Attached.
package capsule

import "fmt"

// State is the lifecycle state of a capsule.
type State uint8

const (
	// StateAttached means the capsule holds its anchor and value.
	StateAttached State = iota + 1
	// StateDetached means IntoAnchor handed the anchor back to the caller.
	StateDetached
	// StateReleased means Close released the anchor.
	StateReleased
	// StateMoved means Map or TryMap transferred the anchor to a new capsule.
	StateMoved
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateAttached:
		return "Attached"
	case StateDetached:
		return "Detached"
	case StateReleased:
		return "Released"
	case StateMoved:
		return "Moved"
	default:
		return "Unknown"
	}
}

// Capsule owns an anchor of type A together with a value of type Y derived
// from the anchor's bytes.
type Capsule[Y any, A Anchor] struct {
	anchor    A
	hasAnchor bool
	value     Y
	state     State
}

// Attach runs project once over anchor's bytes and captures the result.
func Attach[A Anchor, Y any](anchor A, project func([]byte) Y) *Capsule[Y, A] {
	return &Capsule[Y, A]{
		anchor:    anchor,
		hasAnchor: true,
		value:     project(anchor.Bytes()),
		state:     StateAttached,
	}
}

// TryAttach is Attach for a fallible projection. On error no capsule is
// returned and anchor is released if it implements Releaser.
func TryAttach[A Anchor, Y any](anchor A, project func([]byte) (Y, error)) (*Capsule[Y, A], error) {
	value, err := project(anchor.Bytes())
	if err != nil {
		release(anchor)
		return nil, err
	}

	return &Capsule[Y, A]{
		anchor:    anchor,
		hasAnchor: true,
		value:     value,
		state:     StateAttached,
	}, nil
}

// Owned wraps a value that borrows nothing. The capsule has no anchor.
func Owned[A Anchor, Y any](value Y) *Capsule[Y, A] {
	return &Capsule[Y, A]{value: value, state: StateAttached}
}

// Get returns the captured value.
func (c *Capsule[Y, A]) Get() Y {
	c.mustBeAttached("Get")
	return c.value
}

// IsOwned reports whether the capsule was created by Owned and has no anchor.
func (c *Capsule[Y, A]) IsOwned() bool {
	return !c.hasAnchor
}

// State returns the lifecycle state.
func (c *Capsule[Y, A]) State() State {
	return c.state
}

// IntoAnchor drops the captured value and returns the anchor without
// releasing it. The second result is false for a capsule created by Owned.
func (c *Capsule[Y, A]) IntoAnchor() (A, bool) {
	c.mustBeAttached("IntoAnchor")

	anchor, ok := c.anchor, c.hasAnchor
	c.clear(StateDetached)

	return anchor, ok
}

// Close drops the captured value and releases the anchor. Closing a capsule
// that is no longer Attached does nothing.
func (c *Capsule[Y, A]) Close() {
	if c.state != StateAttached {
		return
	}

	anchor, ok := c.anchor, c.hasAnchor
	c.clear(StateReleased)

	if ok {
		release(anchor)
	}
}

func (c *Capsule[Y, A]) clear(next State) {
	var (
		zeroA A
		zeroY Y
	)

	c.anchor = zeroA
	c.value = zeroY
	c.state = next
}

func (c *Capsule[Y, A]) mustBeAttached(op string) {
	if c.state != StateAttached {
		panic(fmt.Sprintf("capsule: %s on %s capsule", op, c.state))
	}
}

// Map consumes c and returns a capsule holding f applied to its value. The
// anchor moves to the new capsule unchanged.
func Map[Y, Z any, A Anchor](c *Capsule[Y, A], f func(Y) Z) *Capsule[Z, A] {
	c.mustBeAttached("Map")

	out := &Capsule[Z, A]{
		anchor:    c.anchor,
		hasAnchor: c.hasAnchor,
		value:     f(c.value),
		state:     StateAttached,
	}
	c.clear(StateMoved)

	return out
}

// TryMap is Map for a fallible function. c is consumed either way; on error
// its anchor is released.
func TryMap[Y, Z any, A Anchor](c *Capsule[Y, A], f func(Y) (Z, error)) (*Capsule[Z, A], error) {
	c.mustBeAttached("TryMap")

	anchor, hasAnchor := c.anchor, c.hasAnchor
	value, err := f(c.value)
	c.clear(StateMoved)

	if err != nil {
		if hasAnchor {
			release(anchor)
		}

		return nil, err
	}

	return &Capsule[Z, A]{anchor: anchor, hasAnchor: hasAnchor, value: value, state: StateAttached}, nil
}

// Project derives a new capsule that shares c's anchor. c stays usable.
// A Retainer anchor is retained once for the new capsule, so each capsule
// must be closed independently.
func Project[Y, Z any, A Anchor](c *Capsule[Y, A], f func(Y) Z) *Capsule[Z, A] {
	c.mustBeAttached("Project")

	value := f(c.value)
	if c.hasAnchor {
		retain(c.anchor)
	}

	return &Capsule[Z, A]{anchor: c.anchor, hasAnchor: c.hasAnchor, value: value, state: StateAttached}
}

// TryProject is Project for a fallible function. On error the anchor is not
// retained and c is unaffected.
func TryProject[Y, Z any, A Anchor](c *Capsule[Y, A], f func(Y) (Z, error)) (*Capsule[Z, A], error) {
	c.mustBeAttached("TryProject")

	value, err := f(c.value)
	if err != nil {
		return nil, err
	}

	if c.hasAnchor {
		retain(c.anchor)
	}

	return &Capsule[Z, A]{anchor: c.anchor, hasAnchor: c.hasAnchor, value: value, state: StateAttached}, nil
}

func retain(anchor Anchor) {
	if r, ok := anchor.(Retainer); ok {
		r.Retain()
	}
}

func release(anchor Anchor) {
	if r, ok := anchor.(Releaser); ok {
		r.Release()
	}
}
