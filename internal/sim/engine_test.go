package sim_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravgrid/internal/body"
	"github.com/san-kum/gravgrid/internal/events"
	"github.com/san-kum/gravgrid/internal/level"
	"github.com/san-kum/gravgrid/internal/placement"
	"github.com/san-kum/gravgrid/internal/sim"
)

func at(x, y int) *body.Tile { return &body.Tile{X: x, Y: y} }

func tileOf(l *level.Level, i int) body.Tile {
	t, ok := l.Bodies[i].State.Tile()
	Expect(ok).To(BeTrue(), "body %d is pending", i)
	return t
}

func click(x, y int) placement.Input {
	return placement.Input{Click: true, Hover: body.Tile{X: x, Y: y}, InGrid: true}
}

var _ = Describe("Engine", func() {
	var engine *sim.Engine

	BeforeEach(func() {
		engine = sim.New()
	})

	Describe("Update", func() {
		It("does nothing when the computed step is current", func() {
			l := level.MustNew(level.Definition{
				Name: "idle",
				Grid: level.Size{W: 5, H: 1},
				Bodies: []level.BodyTemplate{
					{Gravity: body.GravityLeft, At: at(4, 0)},
					{At: at(0, 0)},
				},
			})

			_, ran := engine.Update(l, 0)
			Expect(ran).To(BeFalse())
			Expect(tileOf(l, 1)).To(Equal(body.Tile{X: 0, Y: 0}))

			_, ran = engine.Update(l, 1)
			Expect(ran).To(BeTrue())
			Expect(tileOf(l, 1)).To(Equal(body.Tile{X: 1, Y: 0}))

			before := append([]body.Body(nil), l.Bodies...)
			_, ran = engine.Update(l, 1)
			Expect(ran).To(BeFalse())
			Expect(l.Bodies).To(Equal(before))
			Expect(engine.Computed()).To(Equal(1))
		})

		It("runs a single pass however far behind it is", func() {
			l := level.MustNew(level.Definition{
				Name: "behind",
				Grid: level.Size{W: 6, H: 1},
				Bodies: []level.BodyTemplate{
					{Gravity: body.GravityLeft, At: at(5, 0)},
					{At: at(0, 0)},
				},
			})

			p, ran := engine.Update(l, 3)
			Expect(ran).To(BeTrue())
			Expect(p.Index).To(Equal(1))
			Expect(engine.Computed()).To(Equal(3))
			Expect(tileOf(l, 1)).To(Equal(body.Tile{X: 1, Y: 0}))
		})

		It("feeds metrics and observers", func() {
			l := level.MustNew(level.Definition{
				Name:   "observed",
				Grid:   level.Size{W: 3, H: 3},
				Bodies: []level.BodyTemplate{{At: at(1, 1)}},
			})
			var seen []sim.Pass
			engine.AddObserver(sim.ObserverFunc(func(_ *level.Level, p sim.Pass) {
				seen = append(seen, p)
			}))

			engine.Update(l, 1)
			engine.Update(l, 1)
			engine.Update(l, 2)
			Expect(seen).To(HaveLen(2))
			Expect(engine.Passes()).To(Equal(2))

			engine.Reset()
			Expect(engine.Computed()).To(BeZero())
			Expect(engine.Passes()).To(BeZero())
		})
	})

	Describe("displacement", func() {
		It("pulls along rows and columns toward the source", func() {
			l := level.MustNew(level.Definition{
				Name: "cross",
				Grid: level.Size{W: 5, H: 5},
				Bodies: []level.BodyTemplate{
					{Gravity: body.GravityAll, At: at(2, 2)},
					{At: at(0, 2)},
					{At: at(4, 2)},
					{At: at(2, 0)},
					{At: at(2, 4)},
				},
			})

			p := sim.Step(l)

			Expect(tileOf(l, 1)).To(Equal(body.Tile{X: 1, Y: 2}))
			Expect(tileOf(l, 2)).To(Equal(body.Tile{X: 3, Y: 2}))
			Expect(tileOf(l, 3)).To(Equal(body.Tile{X: 2, Y: 1}))
			Expect(tileOf(l, 4)).To(Equal(body.Tile{X: 2, Y: 3}))
			Expect(l.Bodies[0].Delta.IsZero()).To(BeTrue())
			Expect(p.Moved).To(Equal(4))
			Expect(p.Displacement).To(Equal(4))
		})

		It("ignores sources without the matching direction bit", func() {
			l := level.MustNew(level.Definition{
				Name: "wrong-way",
				Grid: level.Size{W: 5, H: 1},
				Bodies: []level.BodyTemplate{
					{Gravity: body.GravityRight, At: at(4, 0)},
					{At: at(0, 0)},
				},
			})

			sim.Step(l)
			Expect(l.Bodies[1].Delta).To(Equal(body.Delta{}))
		})

		It("clamps stacked pulls to one tile per axis", func() {
			l := level.MustNew(level.Definition{
				Name: "stacked",
				Grid: level.Size{W: 8, H: 1},
				Bodies: []level.BodyTemplate{
					{At: at(0, 0)},
					{Gravity: body.GravityLeft, At: at(3, 0)},
					{Gravity: body.GravityLeft, At: at(5, 0)},
					{Gravity: body.GravityLeft, At: at(7, 0)},
				},
			})

			sim.Step(l)
			Expect(l.Bodies[0].Delta).To(Equal(body.Delta{X: 1}))
		})

		It("cancels opposing pulls", func() {
			l := level.MustNew(level.Definition{
				Name: "tug",
				Grid: level.Size{W: 5, H: 1},
				Bodies: []level.BodyTemplate{
					{Gravity: body.GravityRight, At: at(0, 0)},
					{At: at(2, 0)},
					{Gravity: body.GravityLeft, At: at(4, 0)},
				},
			})

			sim.Step(l)
			Expect(l.Bodies[1].Delta.IsZero()).To(BeTrue())
		})

		It("moves every body from the same snapshot", func() {
			// updating in place would carry body 2 onto body 0; from one
			// snapshot body 1 catches body 2 instead
			l := level.MustNew(level.Definition{
				Name: "chain",
				Grid: level.Size{W: 4, H: 1},
				Bodies: []level.BodyTemplate{
					{Gravity: body.GravityLeft, At: at(3, 0)},
					{Gravity: body.GravityRight, At: at(0, 0)},
					{At: at(1, 0)},
				},
			})

			sim.Step(l)
			Expect(l.Bodies[0].State).To(Equal(body.PlacedAt(body.Tile{X: 2, Y: 0})))
			Expect(l.Bodies[1].State).To(Equal(body.CollidingAt(body.Tile{X: 1, Y: 0})))
			Expect(l.Bodies[2].State).To(Equal(body.CollidingAt(body.Tile{X: 1, Y: 0})))
			Expect(l.Bodies[2].Delta.IsZero()).To(BeTrue())
		})

		It("pulls an adjacent body onto its source", func() {
			l := level.MustNew(level.Definition{
				Name: "adjacent",
				Grid: level.Size{W: 1, H: 3},
				Bodies: []level.BodyTemplate{
					{Gravity: body.GravityDown, At: at(0, 0)},
					{At: at(0, 1)},
				},
			})

			p := sim.Step(l)
			Expect(l.Bodies[1].Delta).To(Equal(body.Delta{Y: -1}))
			Expect(l.Bodies[0].State).To(Equal(body.CollidingAt(body.Tile{X: 0, Y: 0})))
			Expect(l.Bodies[1].State).To(Equal(body.CollidingAt(body.Tile{X: 0, Y: 0})))
			Expect(p.Collisions).To(Equal(2))
			Expect(l.Failed).To(BeTrue())
			Expect(l.IsStable()).To(BeFalse())
		})

		It("leaves isolated bodies alone", func() {
			l := level.MustNew(level.Definition{
				Name: "isolated",
				Grid: level.Size{W: 4, H: 4},
				Bodies: []level.BodyTemplate{
					{Gravity: body.GravityAll, At: at(0, 0)},
					{Gravity: body.GravityAll, At: at(2, 3)},
					{Gravity: body.GravityAll, At: at(3, 1)},
				},
			})

			sim.Step(l)
			for i := range l.Bodies {
				Expect(l.Bodies[i].Delta.IsZero()).To(BeTrue())
			}
		})

		It("never moves more than one tile per axis", func() {
			rng := rand.New(rand.NewSource(7))
			for trial := 0; trial < 200; trial++ {
				grid := level.Size{W: 6, H: 6}
				used := map[body.Tile]bool{}
				var tpls []level.BodyTemplate
				for n := 2 + rng.Intn(8); len(tpls) < n; {
					t := body.Tile{X: rng.Intn(grid.W), Y: rng.Intn(grid.H)}
					if used[t] {
						continue
					}
					used[t] = true
					tt := t
					tpls = append(tpls, level.BodyTemplate{Gravity: body.GravityField(rng.Intn(16)), At: &tt})
				}
				l := level.MustNew(level.Definition{Name: "random", Grid: grid, Bodies: tpls})

				sim.Step(l)
				for i := range l.Bodies {
					d := l.Bodies[i].Delta
					Expect(d.X).To(BeNumerically(">=", -1))
					Expect(d.X).To(BeNumerically("<=", 1))
					Expect(d.Y).To(BeNumerically(">=", -1))
					Expect(d.Y).To(BeNumerically("<=", 1))
				}
			}
		})
	})

	Describe("collisions", func() {
		It("marks both bodies and fails the level for good", func() {
			l := level.MustNew(level.Definition{
				Name: "converge",
				Grid: level.Size{W: 3, H: 3},
				Bodies: []level.BodyTemplate{
					{Gravity: body.GravityRight, At: at(0, 1)},
					{Gravity: body.GravityLeft, At: at(2, 1)},
					{At: at(0, 0)},
				},
			})

			p := sim.Step(l)

			Expect(p.Collisions).To(Equal(2))
			Expect(l.Bodies[0].State).To(Equal(body.CollidingAt(body.Tile{X: 1, Y: 1})))
			Expect(l.Bodies[1].State).To(Equal(body.CollidingAt(body.Tile{X: 1, Y: 1})))
			Expect(l.Bodies[2].State.IsPlaced()).To(BeTrue())
			Expect(l.Failed).To(BeTrue())

			sim.Step(l)
			Expect(l.Failed).To(BeTrue())
			Expect(l.Bodies[0].State.IsColliding()).To(BeTrue())
		})

		It("catches a body moving onto an existing wreck", func() {
			l := level.MustNew(level.Definition{
				Name: "wreck",
				Grid: level.Size{W: 4, H: 1},
				Bodies: []level.BodyTemplate{
					{At: at(2, 0)},
					{At: at(0, 0)},
					{Gravity: body.GravityLeft, At: at(3, 0)},
				},
			})
			l.Bodies[0].State = body.CollidingAt(body.Tile{X: 2, Y: 0})

			sim.Step(l)
			Expect(l.Bodies[1].State).To(Equal(body.PlacedAt(body.Tile{X: 1, Y: 0})))
			Expect(l.Failed).To(BeFalse())

			p := sim.Step(l)
			Expect(p.Collisions).To(Equal(1))
			Expect(l.Bodies[1].State).To(Equal(body.CollidingAt(body.Tile{X: 2, Y: 0})))
			Expect(l.Failed).To(BeTrue())
		})
	})

	Describe("play", func() {
		It("a lone body with no field settles immediately", func() {
			l := level.MustNew(level.Definition{
				Name:   "A",
				Grid:   level.Size{W: 3, H: 3},
				Bodies: []level.BodyTemplate{{Removable: true}},
			})
			cur := &placement.Cursor{}

			Expect(placement.Apply(l, cur, click(1, 2), nil)).To(Equal(placement.Placed))
			engine.Update(l, cur.Requested)

			Expect(l.Bodies[0].Delta).To(Equal(body.Delta{}))
			Expect(l.IsStable()).To(BeTrue())
		})

		It("an anchor's row field leaves a body in its column alone", func() {
			l := level.MustNew(level.Definition{
				Name: "B1",
				Grid: level.Size{W: 3, H: 5},
				Bodies: []level.BodyTemplate{
					{Gravity: body.GravityRight, At: at(0, 0)},
					{Removable: true},
				},
			})
			cur := &placement.Cursor{Pending: 1}

			Expect(placement.Apply(l, cur, click(0, 2), nil)).To(Equal(placement.Placed))
			engine.Update(l, cur.Requested)

			Expect(l.Bodies[1].Delta).To(Equal(body.Delta{}))
			Expect(l.IsStable()).To(BeTrue())
		})

		It("a lower body pulling up draws the upper one down onto it", func() {
			l := level.MustNew(level.Definition{
				Name: "B2",
				Grid: level.Size{W: 3, H: 4},
				Bodies: []level.BodyTemplate{
					{Gravity: body.GravityUp, At: at(1, 3)},
					{Removable: true},
				},
			})
			cur := &placement.Cursor{Pending: 1}

			Expect(placement.Apply(l, cur, click(1, 0), nil)).To(Equal(placement.Placed))
			engine.Update(l, cur.Requested)
			Expect(tileOf(l, 1)).To(Equal(body.Tile{X: 1, Y: 1}))
			Expect(l.IsStable()).To(BeFalse())

			engine.Update(l, engine.Computed()+1)
			Expect(tileOf(l, 1)).To(Equal(body.Tile{X: 1, Y: 2}))
			Expect(l.Bodies[1].Delta).To(Equal(body.Delta{Y: 1}))
			Expect(l.IsStable()).To(BeFalse())
			Expect(l.Failed).To(BeFalse())

			engine.Update(l, engine.Computed()+1)
			Expect(l.Bodies[1].Delta).To(Equal(body.Delta{Y: 1}))
			Expect(l.Bodies[0].State).To(Equal(body.CollidingAt(body.Tile{X: 1, Y: 3})))
			Expect(l.Bodies[1].State).To(Equal(body.CollidingAt(body.Tile{X: 1, Y: 3})))
			Expect(l.Failed).To(BeTrue())
			Expect(l.IsStable()).To(BeFalse())
		})

		It("two bodies meeting on one tile fail the level", func() {
			l := level.MustNew(level.Definition{
				Name: "C",
				Grid: level.Size{W: 3, H: 3},
				Bodies: []level.BodyTemplate{
					{Gravity: body.GravityRight, Removable: true},
					{Gravity: body.GravityLeft, Removable: true},
					{Removable: true},
				},
			})
			cur := &placement.Cursor{}
			rec := &events.Recorder{}

			placement.Apply(l, cur, click(0, 1), rec)
			engine.Update(l, cur.Requested)
			placement.Apply(l, cur, click(2, 1), rec)
			engine.Update(l, cur.Requested)

			Expect(l.Bodies[0].State.IsColliding()).To(BeTrue())
			Expect(l.Bodies[1].State.IsColliding()).To(BeTrue())
			Expect(l.Failed).To(BeTrue())

			rec.Reset()
			Expect(placement.Apply(l, cur, click(0, 0), rec)).To(Equal(placement.Terminal))
			Expect(l.Bodies[2].State.IsPending()).To(BeTrue())
			Expect(rec.Signals).To(BeEmpty())
		})

		It("a fixed body cannot be removed", func() {
			l := level.MustNew(level.Definition{
				Name: "D",
				Grid: level.Size{W: 3, H: 3},
				Bodies: []level.BodyTemplate{
					{Removable: false},
				},
			})
			cur := &placement.Cursor{}
			placement.Apply(l, cur, click(1, 1), nil)
			index := cur.Pending

			Expect(placement.Apply(l, cur, click(1, 1), nil)).To(Equal(placement.RemoveDenied))
			Expect(l.Bodies[0].State).To(Equal(body.PlacedAt(body.Tile{X: 1, Y: 1})))
			Expect(cur.Pending).To(Equal(index))
		})

		It("placing the last body switches to removal mode and back", func() {
			l := level.MustNew(level.Definition{
				Name: "E",
				Grid: level.Size{W: 3, H: 3},
				Bodies: []level.BodyTemplate{
					{Removable: true},
					{Removable: true},
				},
			})
			cur := &placement.Cursor{}

			placement.Apply(l, cur, click(0, 0), nil)
			placement.Apply(l, cur, click(2, 2), nil)
			Expect(cur.Pending).To(BeNumerically(">=", len(l.Bodies)))

			Expect(placement.Apply(l, cur, click(0, 0), nil)).To(Equal(placement.Removed))
			Expect(l.Bodies[0].State.IsPending()).To(BeTrue())
			Expect(cur.Pending).To(Equal(0))
		})
	})
})
