package report

// Thresholds are the tunable limits behind filters, insights, and alerts.
// Zero-valued fields are replaced by the defaults, so a partial config
// override keeps the remaining limits intact.
type Thresholds struct {
	// HighWastePercent flags an ingredient wasting more than this share of
	// its received quantity.
	HighWastePercent float64 `yaml:"high_waste_percent"`
	// HighShrinkageCost flags an ingredient whose unaccounted inventory
	// exceeds this dollar value.
	HighShrinkageCost float64 `yaml:"high_shrinkage_cost"`
	// CriticalShrinkageCost escalates a shrinkage alert to critical.
	CriticalShrinkageCost float64 `yaml:"critical_shrinkage_cost"`
	// WellManagedWastePercent is the waste ceiling for the well_managed filter.
	WellManagedWastePercent float64 `yaml:"well_managed_waste_percent"`
	// AggregateSharePercent triggers an aggregate insight when waste or
	// shrinkage cost exceeds this share of total cost.
	AggregateSharePercent float64 `yaml:"aggregate_share_percent"`
}

// DefaultThresholds returns the canonical limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HighWastePercent:        15,
		HighShrinkageCost:       10,
		CriticalShrinkageCost:   50,
		WellManagedWastePercent: 5,
		AggregateSharePercent:   5,
	}
}

// Normalize fills zero fields with defaults.
func (t Thresholds) Normalize() Thresholds {
	d := DefaultThresholds()
	if t.HighWastePercent == 0 {
		t.HighWastePercent = d.HighWastePercent
	}
	if t.HighShrinkageCost == 0 {
		t.HighShrinkageCost = d.HighShrinkageCost
	}
	if t.CriticalShrinkageCost == 0 {
		t.CriticalShrinkageCost = d.CriticalShrinkageCost
	}
	if t.WellManagedWastePercent == 0 {
		t.WellManagedWastePercent = d.WellManagedWastePercent
	}
	if t.AggregateSharePercent == 0 {
		t.AggregateSharePercent = d.AggregateSharePercent
	}
	return t
}
