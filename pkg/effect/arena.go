package effect

import (
	"sort"

	"github.com/opd-ai/go-gunship/pkg/physics"
)

// Handle identifies a live effect inside an Arena
type Handle uint64

// Live is a spawned effect being tracked until its lifetime runs out
type Live struct {
	Handle   Handle
	Request  SpawnRequest
	Position physics.Vector2D
	Velocity physics.Vector2D
	Lifetime *Lifetime
	Alpha    float64 // 0..1 multiplier on Request.Color.A
}

// Arena owns every live effect of a renderer. Effects drift in a straight
// line at their spawn velocity and are dropped when their lifetime expires.
type Arena struct {
	live   map[Handle]*Live
	nextID Handle
}

// NewArena creates an empty arena
func NewArena() *Arena {
	return &Arena{live: make(map[Handle]*Live)}
}

// Spawn starts tracking a new effect and returns its handle
func (a *Arena) Spawn(req SpawnRequest) Handle {
	a.nextID++
	h := a.nextID
	a.live[h] = &Live{
		Handle:   h,
		Request:  req,
		Position: req.Position,
		Velocity: req.Velocity(),
		Lifetime: NewLifetime(req.Lifetime),
		Alpha:    1,
	}
	return h
}

// Tick advances every effect by dt and removes the expired ones.
// The expired handles are returned in ascending order. Negative dt is
// treated as zero.
func (a *Arena) Tick(dt float64) []Handle {
	if dt < 0 {
		dt = 0
	}
	var expired []Handle
	for h, l := range a.live {
		l.Position = l.Position.Add(l.Velocity.Scale(dt))
		if l.Lifetime.Tick(dt) {
			expired = append(expired, h)
			continue
		}
		if l.Request.Fade {
			l.Alpha = l.Lifetime.Alpha(1)
		}
	}

	sort.Slice(expired, func(i, j int) bool { return expired[i] < expired[j] })
	for _, h := range expired {
		delete(a.live, h)
	}
	return expired
}

// Get returns the live effect for h
func (a *Arena) Get(h Handle) (*Live, bool) {
	l, ok := a.live[h]
	return l, ok
}

// Remove drops an effect before it expires
func (a *Arena) Remove(h Handle) bool {
	if _, ok := a.live[h]; !ok {
		return false
	}
	delete(a.live, h)
	return true
}

// Len returns the number of live effects
func (a *Arena) Len() int {
	return len(a.live)
}

// Each calls fn for every live effect in handle order
func (a *Arena) Each(fn func(*Live)) {
	handles := make([]Handle, 0, len(a.live))
	for h := range a.live {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })
	for _, h := range handles {
		fn(a.live[h])
	}
}

// Clear drops every live effect
func (a *Arena) Clear() {
	clear(a.live)
}
