package config

// DifficultyManager turns the scroll distance into a lane speed scale.
// It satisfies the crossing package's DifficultyCurve.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg}
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Alpha > 0
}

// Alpha returns the per-row growth.
func (d *DifficultyManager) Alpha() float64 {
	return d.cfg.Alpha
}

// Scale returns max(1, 1 + alpha*scrollCount), capped at MaxScale when set.
// A disabled manager always returns 1.
func (d *DifficultyManager) Scale(scrollCount int) float64 {
	if !d.IsEnabled() {
		return 1
	}
	s := max(1, 1+d.cfg.Alpha*float64(scrollCount))
	if d.cfg.MaxScale > 0 {
		s = min(s, max(1, d.cfg.MaxScale))
	}
	return s
}
