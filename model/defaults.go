package model

import (
	"math"

	"github.com/xi-proteomics/xiconf/directive"
)

// Documented defaults, applied only when the directive is entirely absent
// from the input. A directive present with a zero value keeps that value.
const (
	DefaultMinimumPeptideLength          = 2
	DefaultMaxModificationsPerPeptide    = 3
	DefaultMaxModifiedPeptidesPerPeptide = 20
	DefaultCPUCount                      = -1
	DefaultConservativeLossThreshold     = 3
)

func (b *builder) applyDefaults() {
	seen := func(key string) bool { _, ok := b.seenScalar[key]; return ok }

	if !seen(directive.KeyMinimumPeptideLength) {
		b.sc.scoring.MinimumPeptideLength = DefaultMinimumPeptideLength
	}
	if !seen(directive.KeyMaxPeptideMass) {
		b.sc.scoring.MaxPeptideMass = math.Inf(1)
	}
	if !seen(directive.KeyMaxModificationPerPeptide) {
		b.sc.scoring.MaxModificationsPerPeptide = DefaultMaxModificationsPerPeptide
	}
	if !seen(directive.KeyMaxModifiedPeptides) {
		b.sc.scoring.MaxModifiedPeptidesPerPeptide = DefaultMaxModifiedPeptidesPerPeptide
	}
	if !seen(directive.KeyUseCPUs) {
		b.sc.runtime.CPUCount = DefaultCPUCount
	}
	if !seen(directive.KeyConservativeLosses) {
		b.sc.scoring.ConservativeLossThreshold = DefaultConservativeLossThreshold
	}
}
