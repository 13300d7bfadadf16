package clipscroll

import (
	"math"

	"github.com/gogpu/frame/geom"
)

const (
	springStiffness = 0.2
	springDamping   = 1.0
	springEpsilon   = 0.1
)

// spring is a damped spring pulling an overscrolled offset back towards
// its destination, integrated once per animation tick.
type spring struct {
	cur, prev, dest geom.Point
}

func springAt(p geom.Point) spring {
	return spring{cur: p, prev: p, dest: p}
}

// animate advances the spring by one tick and reports whether it has come
// to rest at its destination.
func (s *spring) animate() bool {
	if isResting(s.cur.X, s.prev.X, s.dest.X) && isResting(s.cur.Y, s.prev.Y, s.dest.Y) {
		s.cur = s.dest
		s.prev = s.dest
		return true
	}
	next := geom.Point{
		X: springStep(s.cur.X, s.prev.X, s.dest.X),
		Y: springStep(s.cur.Y, s.prev.Y, s.dest.Y),
	}
	s.prev = s.cur
	s.cur = next
	return false
}

func springStep(cur, prev, dest float64) float64 {
	vel := cur - prev
	acc := springStiffness*(dest-cur) - springDamping*vel
	return cur + vel + acc
}

func isResting(cur, prev, dest float64) bool {
	return math.Abs(cur-prev) < springEpsilon && math.Abs(cur-dest) < springEpsilon
}
