package physics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/mochi/systems"
)

const stepDT = 1.0 / 60 / 50

func newTestSpace(gravity float64) *Space {
	return NewSpace(systems.Bounds{Width: 800, Height: 600}, Settings{
		Gravity:       gravity,
		Position:      20,
		Velocity:      20,
		Constraint:    8,
		RestingSpeed:  20,
		SpringDamping: 0.05,
	})
}

func ball(x, y float64, group int, label Label) BodyDef {
	return BodyDef{
		Position:    r2.Vec{X: x, Y: y},
		Radius:      20,
		Density:     0.001,
		Restitution: 0.5,
		Friction:    0.1,
		Group:       group,
		Label:       label,
	}
}

func TestSpace_AddRemove(t *testing.T) {
	s := newTestSpace(0)
	h := s.AddBody(ball(100, 100, 0, LabelFood))

	if !s.Exists(h) {
		t.Fatal("new body does not exist")
	}
	if got := s.Label(h); got != LabelFood {
		t.Errorf("Label = %v, want %v", got, LabelFood)
	}
	if got := s.Position(h); got != (r2.Vec{X: 100, Y: 100}) {
		t.Errorf("Position = %v, want (100, 100)", got)
	}
	if got := s.BodyCount(); got != 1 {
		t.Errorf("BodyCount = %d, want 1", got)
	}

	s.RemoveBody(h)
	if s.Exists(h) {
		t.Error("removed body still exists")
	}
	// Second removal must be safe
	s.RemoveBody(h)
	if got := s.Label(h); got != LabelNone {
		t.Errorf("Label of stale handle = %v, want None", got)
	}

	var zero Handle
	if s.Exists(zero) {
		t.Error("zero handle reported as existing")
	}
}

func TestSpace_ApplyImpulse(t *testing.T) {
	s := newTestSpace(0)
	h := s.AddBody(ball(400, 300, 0, LabelBall))
	mass := s.Mass(h)
	wantMass := 0.001 * math.Pi * 20 * 20
	if math.Abs(mass-wantMass) > 1e-9 {
		t.Fatalf("Mass = %v, want %v", mass, wantMass)
	}

	s.ApplyImpulse(h, r2.Vec{X: mass * 100, Y: 0})
	if got := s.Velocity(h); math.Abs(got.X-100) > 1e-9 || got.Y != 0 {
		t.Errorf("Velocity = %v, want (100, 0)", got)
	}
}

func TestSpace_GravityAndFloor(t *testing.T) {
	s := newTestSpace(1000)
	h := s.AddBody(ball(400, 100, 0, LabelFood))

	for i := 0; i < 50*300; i++ {
		s.Step(stepDT)
	}

	p := s.Position(h)
	if p.Y > 600-20+1e-6 {
		t.Errorf("body sank through floor: y = %v", p.Y)
	}
	if p.Y < 600-20-2 {
		t.Errorf("body not resting on floor: y = %v", p.Y)
	}
}

func TestSpace_SameGroupNeverCollides(t *testing.T) {
	s := newTestSpace(0)
	a := s.AddBody(ball(400, 300, 7, LabelPet))
	b := s.AddBody(ball(410, 300, 7, LabelPet))

	for i := 0; i < 10; i++ {
		if contacts := s.Step(stepDT); len(contacts) != 0 {
			t.Fatalf("step %d: got %d contacts between same-group bodies", i, len(contacts))
		}
	}
	if d := r2.Norm(r2.Sub(s.Position(a), s.Position(b))); math.Abs(d-10) > 1e-6 {
		t.Errorf("same-group bodies were separated: distance = %v, want 10", d)
	}
}

func TestSpace_ContactReportedOnce(t *testing.T) {
	s := newTestSpace(0)
	a := s.AddBody(ball(400, 300, 0, LabelPet))
	b := s.AddBody(ball(420, 300, 0, LabelFood))

	total := 0
	for i := 0; i < 30; i++ {
		for _, c := range s.Step(stepDT) {
			if !c.Involves(LabelPet, LabelFood) {
				t.Errorf("unexpected contact labels %v/%v", c.LabelA, c.LabelB)
			}
			total++
		}
		// Hold them together so the contact persists
		s.SetVelocity(a, r2.Vec{X: 50})
		s.SetVelocity(b, r2.Vec{X: -50})
	}
	if total != 1 {
		t.Errorf("contact reported %d times, want 1", total)
	}

	// Overlap was resolved
	if d := r2.Norm(r2.Sub(s.Position(a), s.Position(b))); d < 40-0.5 {
		t.Errorf("bodies still overlap: distance = %v", d)
	}
}

func TestSpace_SpringPullsToRestLength(t *testing.T) {
	s := newTestSpace(0)
	a := s.AddBody(ball(300, 300, 1, LabelPet))
	b := s.AddBody(ball(500, 300, 1, LabelPet))
	id := s.AddSpring(a, b, 100, 0.3)

	if got := s.SpringLength(id); got != 100 {
		t.Errorf("SpringLength = %v, want 100", got)
	}

	for i := 0; i < 200; i++ {
		s.Step(stepDT)
	}
	d := r2.Norm(r2.Sub(s.Position(a), s.Position(b)))
	if math.Abs(d-100) > 1 {
		t.Errorf("distance after settling = %v, want ~100", d)
	}

	s.SetSpringLength(id, 150)
	for i := 0; i < 200; i++ {
		s.Step(stepDT)
	}
	d = r2.Norm(r2.Sub(s.Position(a), s.Position(b)))
	if math.Abs(d-150) > 1 {
		t.Errorf("distance after lengthening = %v, want ~150", d)
	}
}

func TestSpace_SpawnInsideWalls(t *testing.T) {
	s := newTestSpace(0)
	h := s.AddBody(BodyDef{Position: r2.Vec{X: 10, Y: 5}, Radius: 50, Density: 0.0001, Label: LabelBall})
	if got := s.Position(h); got != (r2.Vec{X: 50, Y: 50}) {
		t.Errorf("Position = %v, want (50, 50)", got)
	}
}

func TestSpace_ForcesClear(t *testing.T) {
	s := newTestSpace(0)
	h := s.AddBody(ball(400, 300, 0, LabelPet))
	s.ApplyForce(h, r2.Vec{X: 10})
	s.ClearForces()
	s.Step(stepDT)
	if v := s.Velocity(h); v.X != 0 {
		t.Errorf("velocity after cleared force = %v, want 0", v.X)
	}
}

func TestContact_Oriented(t *testing.T) {
	c := Contact{LabelA: LabelPet, LabelB: LabelBall, PosA: r2.Vec{X: 1}, PosB: r2.Vec{X: 2}}

	o, ok := c.Oriented(LabelBall, LabelPet)
	if !ok {
		t.Fatal("Oriented(Ball, Pet) not ok")
	}
	if o.LabelA != LabelBall || o.PosA.X != 2 {
		t.Errorf("Oriented = %+v, want ball first", o)
	}
	if _, ok := c.Oriented(LabelFood, LabelPet); ok {
		t.Error("Oriented(Food, Pet) ok for a ball contact")
	}
}

func TestSpace_WallsAreNotBodies(t *testing.T) {
	s := newTestSpace(1000)
	h := s.AddBody(ball(400, 570, 0, LabelFood))

	for i := 0; i < 2000; i++ {
		if contacts := s.Step(stepDT); len(contacts) != 0 {
			t.Fatalf("step %d reported %d contacts for a lone body on the floor", i, len(contacts))
		}
	}
	if y := s.Position(h).Y; math.Abs(y-580) > 1 {
		t.Errorf("resting Y = %v, want ~580", y)
	}
}

func TestSpace_MasslessOverlap(t *testing.T) {
	s := newTestSpace(0)
	a := s.AddBody(BodyDef{Position: r2.Vec{X: 400, Y: 300}, Radius: 20, Label: LabelFood})
	b := s.AddBody(BodyDef{Position: r2.Vec{X: 410, Y: 300}, Radius: 20, Label: LabelBall})

	s.Step(stepDT)
	for _, h := range []Handle{a, b} {
		p := s.Position(h)
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			t.Errorf("position = %v after a massless overlap", p)
		}
		if s.Mass(h) != 0 {
			t.Errorf("Mass = %v, want 0", s.Mass(h))
		}
	}
}
