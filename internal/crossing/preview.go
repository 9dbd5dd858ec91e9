package crossing

// MaxPreviewRows bounds a single lane preview.
const MaxPreviewRows = 512

// LanePreview is the generated content of one world row.
type LanePreview struct {
	Row int `json:"row"`
	LaneSpec
	LoopLength int `json:"loop_length"`
}

// Preview describes a range of rows generated from one seed.
type Preview struct {
	Seed      string        `json:"seed"`
	MatchSeed uint64        `json:"match_seed,string"`
	Lanes     []LanePreview `json:"lanes"`
}

// PreviewLanes generates rows [from, from+count) for a seed without running
// a World. The seed is normalized the same way Reset normalizes it; count is
// clamped to [0, MaxPreviewRows].
func PreviewLanes(seed string, from, count int, src EntropySource) Preview {
	normalized := NormalizeSeed(seed, src)
	matchSeed := SeedToU64(normalized)
	count = max(0, min(count, MaxPreviewRows))

	p := Preview{
		Seed:      normalized,
		MatchSeed: matchSeed,
		Lanes:     make([]LanePreview, 0, count),
	}
	for row := from; row < from+count; row++ {
		spec := GenerateLane(matchSeed, row)
		p.Lanes = append(p.Lanes, LanePreview{Row: row, LaneSpec: spec, LoopLength: spec.LoopLength()})
	}
	return p
}
