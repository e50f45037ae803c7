package systems

import (
	"cmp"
	"math"
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/mochi/components"
)

// contactSlop keeps resting bodies registered as touching between steps.
const contactSlop = 0.5

// Pair is two bodies that started touching. A has the lower entity ID.
type Pair struct {
	A, B ecs.Entity
}

func makePair(a, b ecs.Entity) Pair {
	if b.ID() < a.ID() {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// collider is a per-step view of one body.
type collider struct {
	e    ecs.Entity
	pos  *components.Position
	vel  *components.Velocity
	body *components.Body
	pre  components.Velocity // velocity before position solving
}

// contact is a touching pair, or a body against a wall when b < 0.
type contact struct {
	a, b     int
	nx, ny   float64 // from a toward b
	targetVN float64 // normal separation speed after the bounce
	accN     float64 // accumulated normal impulse
	accT     float64 // accumulated tangent impulse
}

// CollisionSystem resolves circle contacts and wall contacts.
type CollisionSystem struct {
	filter       ecs.Filter3[components.Position, components.Velocity, components.Body]
	bounds       Bounds
	restingSpeed float64

	colliders []collider
	contacts  []contact
	index     map[[2]int]int

	touching map[Pair]bool
	previous map[Pair]bool
}

// NewCollisionSystem creates a new collision system.
func NewCollisionSystem(w *ecs.World, bounds Bounds, restingSpeed float64) *CollisionSystem {
	return &CollisionSystem{
		filter:       *ecs.NewFilter3[components.Position, components.Velocity, components.Body](w),
		bounds:       bounds,
		restingSpeed: restingSpeed,
		index:        make(map[[2]int]int),
		touching:     make(map[Pair]bool),
		previous:     make(map[Pair]bool),
	}
}

// Gather snapshots every body for this step. Pointers stay valid until the
// world changes structurally, which never happens inside a step.
func (s *CollisionSystem) Gather() {
	s.colliders = s.colliders[:0]
	s.contacts = s.contacts[:0]
	clear(s.index)
	s.previous, s.touching = s.touching, s.previous
	clear(s.touching)

	query := s.filter.Query()
	for query.Next() {
		pos, vel, body := query.Get()
		s.colliders = append(s.colliders, collider{
			e:    query.Entity(),
			pos:  pos,
			vel:  vel,
			body: body,
			pre:  *vel,
		})
	}
}

// canCollide applies the group filter.
func canCollide(a, b *components.Body) bool {
	return a.Group == 0 || a.Group != b.Group
}

// SolvePositions runs one projection pass over all overlaps.
func (s *CollisionSystem) SolvePositions() {
	n := len(s.colliders)
	for i := 0; i < n; i++ {
		ci := &s.colliders[i]
		for j := i + 1; j < n; j++ {
			cj := &s.colliders[j]
			if !canCollide(ci.body, cj.body) {
				continue
			}

			dx := cj.pos.X - ci.pos.X
			dy := cj.pos.Y - ci.pos.Y
			rsum := ci.body.Radius + cj.body.Radius
			distSq := dx*dx + dy*dy
			if distSq >= (rsum+contactSlop)*(rsum+contactSlop) {
				continue
			}

			dist := math.Sqrt(distSq)
			nx, ny := 0.0, -1.0
			if dist > 1e-9 {
				nx, ny = dx/dist, dy/dist
			}
			s.touching[makePair(ci.e, cj.e)] = true
			s.recordContact(i, j, nx, ny)

			depth := rsum - dist
			if depth <= 0 {
				continue
			}
			wsum := ci.body.InvMass + cj.body.InvMass
			if wsum == 0 {
				continue
			}
			ci.pos.X -= nx * depth * ci.body.InvMass / wsum
			ci.pos.Y -= ny * depth * ci.body.InvMass / wsum
			cj.pos.X += nx * depth * cj.body.InvMass / wsum
			cj.pos.Y += ny * depth * cj.body.InvMass / wsum
		}
		s.solveWalls(i)
	}
}

// solveWalls pushes a body back inside the canvas.
func (s *CollisionSystem) solveWalls(i int) {
	c := &s.colliders[i]
	r := c.body.Radius
	if c.pos.X-r < 0 {
		c.pos.X = r
		s.recordContact(i, -1, -1, 0)
	}
	if c.pos.X+r > s.bounds.Width {
		c.pos.X = s.bounds.Width - r
		s.recordContact(i, -1, 1, 0)
	}
	if c.pos.Y-r < 0 {
		c.pos.Y = r
		s.recordContact(i, -1, 0, -1)
	}
	if c.pos.Y+r > s.bounds.Height {
		c.pos.Y = s.bounds.Height - r
		s.recordContact(i, -1, 0, 1)
	}
}

// recordContact keeps one contact per pair, with the latest normal.
// Walls are keyed by their outward normal.
func (s *CollisionSystem) recordContact(a, b int, nx, ny float64) {
	key := [2]int{a, b}
	if b < 0 {
		key[1] = -1 - wallSide(nx, ny)
	}
	if k, ok := s.index[key]; ok {
		s.contacts[k].nx, s.contacts[k].ny = nx, ny
		return
	}

	ca := &s.colliders[a]
	var preB components.Velocity
	e := ca.body.Restitution
	if b >= 0 {
		cb := &s.colliders[b]
		preB = cb.pre
		e = math.Max(e, cb.body.Restitution)
	}
	// Relative normal speed, negative when approaching
	vn := (preB.X-ca.pre.X)*nx + (preB.Y-ca.pre.Y)*ny
	target := 0.0
	if vn < -s.restingSpeed {
		target = -e * vn
	}

	s.index[key] = len(s.contacts)
	s.contacts = append(s.contacts, contact{a: a, b: b, nx: nx, ny: ny, targetVN: target})
}

func wallSide(nx, ny float64) int {
	switch {
	case nx < 0:
		return 0
	case nx > 0:
		return 1
	case ny < 0:
		return 2
	default:
		return 3
	}
}

// SolveVelocities runs one impulse pass for bounce and friction.
func (s *CollisionSystem) SolveVelocities() {
	for k := range s.contacts {
		c := &s.contacts[k]
		ca := &s.colliders[c.a]

		var vb components.Velocity
		var wb float64
		friction := ca.body.Friction
		if c.b >= 0 {
			cb := &s.colliders[c.b]
			vb = *cb.vel
			wb = cb.body.InvMass
			friction = math.Min(friction, cb.body.Friction)
		}
		wa := ca.body.InvMass
		wsum := wa + wb
		if wsum == 0 {
			continue
		}

		rvx := vb.X - ca.vel.X
		rvy := vb.Y - ca.vel.Y
		vn := rvx*c.nx + rvy*c.ny

		// Normal impulse, accumulated and kept pushing apart
		jn := (c.targetVN - vn) / wsum
		newAcc := math.Max(c.accN+jn, 0)
		jn = newAcc - c.accN
		c.accN = newAcc

		// Tangent impulse bounded by the friction cone
		tx, ty := -c.ny, c.nx
		vt := rvx*tx + rvy*ty
		jt := -vt / wsum
		maxT := friction * c.accN
		newT := math.Max(-maxT, math.Min(maxT, c.accT+jt))
		jt = newT - c.accT
		c.accT = newT

		ix := c.nx*jn + tx*jt
		iy := c.ny*jn + ty*jt
		ca.vel.X -= ix * wa
		ca.vel.Y -= iy * wa
		if c.b >= 0 {
			cb := &s.colliders[c.b]
			cb.vel.X += ix * wb
			cb.vel.Y += iy * wb
		}
	}
}

// Begun returns the pairs that touch now but did not last step.
func (s *CollisionSystem) Begun() []Pair {
	var out []Pair
	for p := range s.touching {
		if !s.previous[p] {
			out = append(out, p)
		}
	}
	// Map order is random; keep dispatch deterministic
	slices.SortFunc(out, comparePairs)
	return out
}

// Forget drops an entity from contact history so a re-added body starts clean.
func (s *CollisionSystem) Forget(e ecs.Entity) {
	for p := range s.touching {
		if p.A == e || p.B == e {
			delete(s.touching, p)
		}
	}
}

func comparePairs(a, b Pair) int {
	if c := cmp.Compare(a.A.ID(), b.A.ID()); c != 0 {
		return c
	}
	return cmp.Compare(a.B.ID(), b.B.ID())
}
