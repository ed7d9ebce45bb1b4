package model

// SearchConfig is the complete, validated parameter set for one search run.
// It is constructed once by Build and never mutated afterwards, so it can be
// shared read-only across any number of worker goroutines.
type SearchConfig struct {
	tolerances     map[ToleranceKind]Tolerance
	toleranceOrder []ToleranceKind
	crosslinkers   []CrossLinker
	crosslinkerIdx map[string]int
	modifications  []Modification
	digestion      DigestionRule
	hasDigestion   bool
	fragments      []FragmentType
	fragmentSet    map[FragmentType]bool
	losses         []LossRule
	scoring        ScoringParameters
	runtime        RuntimeParameters
}

func newSearchConfig() *SearchConfig {
	return &SearchConfig{
		tolerances:     map[ToleranceKind]Tolerance{},
		crosslinkerIdx: map[string]int{},
		fragmentSet:    map[FragmentType]bool{},
	}
}

// Tolerance returns the tolerance for the given kind, if configured.
func (sc *SearchConfig) Tolerance(kind ToleranceKind) (Tolerance, bool) {
	t, ok := sc.tolerances[kind]
	return t, ok
}

// Tolerances returns all configured tolerances in file order.
func (sc *SearchConfig) Tolerances() []Tolerance {
	out := make([]Tolerance, 0, len(sc.toleranceOrder))
	for _, k := range sc.toleranceOrder {
		out = append(out, sc.tolerances[k])
	}
	return out
}

// Crosslinkers returns the crosslinker table in file order.
func (sc *SearchConfig) Crosslinkers() []CrossLinker {
	out := make([]CrossLinker, len(sc.crosslinkers))
	copy(out, sc.crosslinkers)
	return out
}

// CrosslinkerByName looks up a crosslinker by its case-sensitive name.
func (sc *SearchConfig) CrosslinkerByName(name string) (CrossLinker, bool) {
	i, ok := sc.crosslinkerIdx[name]
	if !ok {
		return CrossLinker{}, false
	}
	return sc.crosslinkers[i], true
}

// Modifications returns every modification rule in file order.
func (sc *SearchConfig) Modifications() []Modification {
	out := make([]Modification, len(sc.modifications))
	copy(out, sc.modifications)
	return out
}

// ModificationsByMode returns the modification rules of one mode partition.
func (sc *SearchConfig) ModificationsByMode(mode ModificationMode) []Modification {
	var out []Modification
	for _, m := range sc.modifications {
		if m.Mode == mode {
			out = append(out, m)
		}
	}
	return out
}

// Digestion returns the digestion rule and whether a digestion directive was
// present. MissedCleavages is populated from the missedcleavages scalar even
// when no digestion directive exists.
func (sc *SearchConfig) Digestion() (DigestionRule, bool) {
	return sc.digestion, sc.hasDigestion
}

// MissedCleavages returns the allowed number of missed cleavage sites.
func (sc *SearchConfig) MissedCleavages() int { return sc.digestion.MissedCleavages }

// FragmentTypes returns the enabled fragment ion series in file order.
func (sc *SearchConfig) FragmentTypes() []FragmentType {
	out := make([]FragmentType, len(sc.fragments))
	copy(out, sc.fragments)
	return out
}

// HasFragment reports whether the given ion series is enabled.
func (sc *SearchConfig) HasFragment(ft FragmentType) bool { return sc.fragmentSet[ft] }

// Losses returns the neutral-loss rules in file order.
func (sc *SearchConfig) Losses() []LossRule {
	out := make([]LossRule, len(sc.losses))
	copy(out, sc.losses)
	return out
}

// Scoring returns the scoring and candidate-selection parameters.
func (sc *SearchConfig) Scoring() ScoringParameters { return sc.scoring }

// Runtime returns the advisory runtime parameters.
func (sc *SearchConfig) Runtime() RuntimeParameters { return sc.runtime }
