package crossing

import (
	"iter"
	"math"

	"github.com/vovakirdan/lanecross/internal/core"
)

// Lane is a generated row bound to its world-row index, plus the phase of
// its repeating obstacle pattern.
type Lane struct {
	spec       LaneSpec
	worldRow   int
	offsets    []float64
	loopLength float64
	phase      float64
}

// NewLane binds spec to worldRow and precomputes slot offsets.
func NewLane(spec LaneSpec, worldRow int) Lane {
	slots := make([]ObstacleSlot, len(spec.Slots))
	copy(slots, spec.Slots)
	spec.Slots = slots

	offsets := make([]float64, len(slots))
	acc := 0
	for i, slot := range slots {
		offsets[i] = float64(acc)
		acc += slot.Length + slot.Gap
	}

	return Lane{
		spec:       spec,
		worldRow:   worldRow,
		offsets:    offsets,
		loopLength: float64(max(acc, 1)),
	}
}

// Spec returns the lane's generated description.
func (l *Lane) Spec() LaneSpec { return l.spec }

// WorldRow returns the absolute row index of the lane.
func (l *Lane) WorldRow() int { return l.worldRow }

// Kind returns whether the lane is safe or traffic.
func (l *Lane) Kind() LaneKind { return l.spec.Kind }

// Direction returns the lane's travel direction.
func (l *Lane) Direction() Direction { return l.spec.Direction }

// Phase returns the distance travelled into the current loop, in tiles.
func (l *Lane) Phase() float64 { return l.phase }

// LoopLength returns the pattern length in tiles.
func (l *Lane) LoopLength() float64 { return l.loopLength }

// SlotOffset returns the distance from the loop start to slot i.
func (l *Lane) SlotOffset(i int) float64 { return l.offsets[i] }

// EffectiveSpeed returns the lane speed under a difficulty scale.
func (l *Lane) EffectiveSpeed(scale float64) float64 {
	return core.ClampF(l.spec.BaseSpeed*max(1, scale), l.spec.MinSpeed, l.spec.MaxSpeed)
}

// Advance moves the pattern forward by dt seconds. Safe lanes never move.
func (l *Lane) Advance(dt, scale float64) {
	if l.spec.IsSafe() {
		return
	}
	l.phase = math.Mod(l.phase+l.EffectiveSpeed(scale)*dt, l.loopLength)
	if l.phase < 0 {
		l.phase += l.loopLength
	}
	if l.phase >= l.loopLength {
		l.phase = 0
	}
}

// VisibleObstacles yields the obstacle boxes currently inside
// [0, gridWidth) for a lane drawn at grid row rowY, in slot order.
// Boxes are recomputed on every iteration.
func (l *Lane) VisibleObstacles(gridWidth, rowY int) iter.Seq[core.Box] {
	return func(yield func(core.Box) bool) {
		if l.spec.IsSafe() {
			return
		}
		w := float64(gridWidth)
		for i, slot := range l.spec.Slots {
			length := float64(slot.Length)
			var x float64
			if l.spec.Direction == DirRight {
				x = -length + (l.phase - l.offsets[i])
			} else {
				x = w + (l.offsets[i] - l.phase)
			}
			if x+length <= 0 || x >= w {
				continue
			}
			if !yield(core.Box{X: x, Y: float64(rowY), W: length, H: 1}) {
				return
			}
		}
	}
}

// CollidesAt reports whether any visible obstacle overlaps player.
func (l *Lane) CollidesAt(player core.Box, gridWidth, rowY int) bool {
	for box := range l.VisibleObstacles(gridWidth, rowY) {
		if box.Intersects(player) {
			return true
		}
	}
	return false
}
