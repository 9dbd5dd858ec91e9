package crossing

import "fmt"

// BlockSize is the number of world rows in a block: two safe rows
// followed by five traffic rows.
const BlockSize = 7

// SlotsPerLane is the number of obstacle slots in every lane pattern.
const SlotsPerLane = 5

// Speed envelope in tiles per second.
const (
	MinSpeedLow   = 1.5
	MinSpeedHigh  = 3.0
	SpreadLow     = 0.5
	SpreadHigh    = 2.0
	SpeedCeiling  = 4.5
	GapLow        = 2
	GapHigh       = 5
	rowMultiplier = 0xD6E8FEB86659FD93
)

// LaneKind classifies a world row.
type LaneKind int

const (
	LaneSafe LaneKind = iota
	LaneTraffic
)

func (k LaneKind) String() string {
	if k == LaneSafe {
		return "safe"
	}
	return "traffic"
}

// MarshalText encodes the kind as "safe" or "traffic".
func (k LaneKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes "safe" or "traffic".
func (k *LaneKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "safe":
		*k = LaneSafe
	case "traffic":
		*k = LaneTraffic
	default:
		return fmt.Errorf("crossing: unknown lane kind %q", b)
	}
	return nil
}

// Direction is the travel direction of a traffic lane.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
)

func (d Direction) String() string {
	if d == DirLeft {
		return "left"
	}
	return "right"
}

// MarshalText encodes the direction as "left" or "right".
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes "left" or "right".
func (d *Direction) UnmarshalText(b []byte) error {
	switch string(b) {
	case "left":
		*d = DirLeft
	case "right":
		*d = DirRight
	default:
		return fmt.Errorf("crossing: unknown direction %q", b)
	}
	return nil
}

// ObstacleSlot is one obstacle of a lane's repeating pattern followed by
// its trailing gap, both in tiles.
type ObstacleSlot struct {
	Length int `json:"length"`
	Gap    int `json:"gap"`
}

// LaneSpec fully describes one generated world row.
type LaneSpec struct {
	Kind      LaneKind       `json:"kind"`
	Direction Direction      `json:"direction"`
	MinSpeed  float64        `json:"min_speed"`
	MaxSpeed  float64        `json:"max_speed"`
	BaseSpeed float64        `json:"base_speed"`
	Slots     []ObstacleSlot `json:"slots"`
}

// IsSafe reports whether the row is a refuge.
func (s LaneSpec) IsSafe() bool {
	return s.Kind == LaneSafe
}

// LoopLength returns the total pattern length, never less than 1.
func (s LaneSpec) LoopLength() int {
	total := 0
	for _, slot := range s.Slots {
		total += slot.Length + slot.Gap
	}
	return max(total, 1)
}

// GenerateLane returns the lane for worldRow. It is a pure function of
// its arguments: the same pair always yields the same spec, and rows
// whose index modulo BlockSize is 0 or 1 are always safe.
func GenerateLane(matchSeed uint64, worldRow int) LaneSpec {
	inBlock := floorMod(worldRow, BlockSize)
	if inBlock == 0 || inBlock == 1 {
		return safeLane()
	}

	rng := splitMix64{state: matchSeed ^ (rowMultiplier * uint64(worldRow))}

	dir := DirRight
	if (floorDiv(worldRow, BlockSize)+inBlock)%2 == 0 {
		dir = DirLeft
	}

	minSpeed := rng.float(MinSpeedLow, MinSpeedHigh)
	maxSpeed := min(SpeedCeiling, minSpeed+rng.float(SpreadLow, SpreadHigh))
	baseSpeed := rng.float(minSpeed, maxSpeed)

	slots := make([]ObstacleSlot, SlotsPerLane)
	for i := range slots {
		slots[i] = ObstacleSlot{
			Length: obstacleLength(rng.intRange(0, 99)),
			Gap:    rng.intRange(GapLow, GapHigh),
		}
	}

	return LaneSpec{
		Kind:      LaneTraffic,
		Direction: dir,
		MinSpeed:  minSpeed,
		MaxSpeed:  maxSpeed,
		BaseSpeed: baseSpeed,
		Slots:     slots,
	}
}

// obstacleLength maps a percentile roll to 1 (20%), 2 (40%) or 3 tiles.
func obstacleLength(roll int) int {
	switch {
	case roll < 20:
		return 1
	case roll < 60:
		return 2
	default:
		return 3
	}
}

func safeLane() LaneSpec {
	slots := make([]ObstacleSlot, SlotsPerLane)
	for i := range slots {
		slots[i] = ObstacleSlot{Length: 1, Gap: 2}
	}
	return LaneSpec{Kind: LaneSafe, Direction: DirLeft, Slots: slots}
}

// splitMix64 is the per-row pseudorandom stream.
type splitMix64 struct {
	state uint64
}

func (s *splitMix64) next() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// float returns a uniform value in [lo, hi) from the top 53 bits of a draw.
func (s *splitMix64) float(lo, hi float64) float64 {
	frac := float64(s.next()>>11) / (1 << 53)
	return lo + (hi-lo)*frac
}

// intRange returns a value in [lo, hi].
func (s *splitMix64) intRange(lo, hi int) int {
	return lo + int(s.next()%uint64(hi-lo+1))
}

func floorMod(a, n int) int {
	return ((a % n) + n) % n
}

func floorDiv(a, n int) int {
	q := a / n
	if a%n != 0 && (a < 0) != (n < 0) {
		q--
	}
	return q
}
