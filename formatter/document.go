package formatter

import (
	"math"

	"github.com/xi-proteomics/xiconf/model"
)

// ToleranceDoc is one tolerance window.
type ToleranceDoc struct {
	Kind  string  `json:"kind" yaml:"kind" toml:"kind"`
	Value float64 `json:"value" yaml:"value" toml:"value"`
	Unit  string  `json:"unit" yaml:"unit" toml:"unit"`
}

// ResidueWeightDoc pairs a residue with its linkage penalty.
type ResidueWeightDoc struct {
	Residue string  `json:"residue" yaml:"residue" toml:"residue"`
	Penalty float64 `json:"penalty" yaml:"penalty" toml:"penalty"`
}

// AssociatedModificationDoc is a crosslinker stub modification.
type AssociatedModificationDoc struct {
	Name string  `json:"name" yaml:"name" toml:"name"`
	Mass float64 `json:"mass" yaml:"mass" toml:"mass"`
}

// CrosslinkerDoc is one crosslinking reagent.
type CrosslinkerDoc struct {
	Type                 string                      `json:"type" yaml:"type" toml:"type"`
	Name                 string                      `json:"name" yaml:"name" toml:"name"`
	Mass                 float64                     `json:"mass" yaml:"mass" toml:"mass"`
	LinkedResidues       []ResidueWeightDoc          `json:"linkedResidues,omitempty" yaml:"linkedResidues,omitempty" toml:"linkedResidues,omitempty"`
	SecondLinkedResidues []ResidueWeightDoc          `json:"secondLinkedResidues,omitempty" yaml:"secondLinkedResidues,omitempty" toml:"secondLinkedResidues,omitempty"`
	Modifications        []AssociatedModificationDoc `json:"modifications,omitempty" yaml:"modifications,omitempty" toml:"modifications,omitempty"`
	Decoy                bool                        `json:"decoy,omitempty" yaml:"decoy,omitempty" toml:"decoy,omitempty"`
}

// ModificationDoc is one modification rule.
type ModificationDoc struct {
	Mode            string   `json:"mode" yaml:"mode" toml:"mode"`
	Symbol          string   `json:"symbol" yaml:"symbol" toml:"symbol"`
	SymbolExtension bool     `json:"symbolExtension,omitempty" yaml:"symbolExtension,omitempty" toml:"symbolExtension,omitempty"`
	Residues        []string `json:"residues" yaml:"residues" toml:"residues"`
	Mass            *float64 `json:"mass,omitempty" yaml:"mass,omitempty" toml:"mass,omitempty"`
	DeltaMass       *float64 `json:"deltaMass,omitempty" yaml:"deltaMass,omitempty" toml:"deltaMass,omitempty"`
	ProteinPosition string   `json:"proteinPosition,omitempty" yaml:"proteinPosition,omitempty" toml:"proteinPosition,omitempty"`
}

// DigestionDoc is the digestion rule.
type DigestionDoc struct {
	Algorithm            string   `json:"algorithm" yaml:"algorithm" toml:"algorithm"`
	CleaveAfter          []string `json:"cleaveAfter" yaml:"cleaveAfter" toml:"cleaveAfter"`
	ConstrainingResidues []string `json:"constrainingResidues,omitempty" yaml:"constrainingResidues,omitempty" toml:"constrainingResidues,omitempty"`
	Name                 string   `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
}

// LossDoc is one neutral-loss rule.
type LossDoc struct {
	Type     string   `json:"type" yaml:"type" toml:"type"`
	Name     string   `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Mass     float64  `json:"mass,omitempty" yaml:"mass,omitempty" toml:"mass,omitempty"`
	Residues []string `json:"residues,omitempty" yaml:"residues,omitempty" toml:"residues,omitempty"`
	Terminus string   `json:"terminus,omitempty" yaml:"terminus,omitempty" toml:"terminus,omitempty"`
}

// ScoringDoc mirrors model.ScoringParameters. MaxPeptideMass is omitted when
// unbounded because JSON cannot carry +Inf.
type ScoringDoc struct {
	ConservativeLossThreshold     int      `json:"conservativeLossThreshold" yaml:"conservativeLossThreshold" toml:"conservativeLossThreshold"`
	IsotopePattern                string   `json:"isotopePattern,omitempty" yaml:"isotopePattern,omitempty" toml:"isotopePattern,omitempty"`
	MatchMissingMonoisotopic      bool     `json:"matchMissingMonoisotopic" yaml:"matchMissingMonoisotopic" toml:"matchMissingMonoisotopic"`
	MissingIsotopePeaks           int      `json:"missingIsotopePeaks" yaml:"missingIsotopePeaks" toml:"missingIsotopePeaks"`
	MGCPeaks                      int      `json:"mgcPeaks" yaml:"mgcPeaks" toml:"mgcPeaks"`
	TopMGCHits                    int      `json:"topMgcHits" yaml:"topMgcHits" toml:"topMgcHits"`
	TopMGXHits                    int      `json:"topMgxHits" yaml:"topMgxHits" toml:"topMgxHits"`
	MaxModificationsPerPeptide    int      `json:"maxModificationsPerPeptide" yaml:"maxModificationsPerPeptide" toml:"maxModificationsPerPeptide"`
	MaxModifiedPeptidesPerPeptide int      `json:"maxModifiedPeptidesPerPeptide" yaml:"maxModifiedPeptidesPerPeptide" toml:"maxModifiedPeptidesPerPeptide"`
	TopMatchesOnly                bool     `json:"topMatchesOnly" yaml:"topMatchesOnly" toml:"topMatchesOnly"`
	MinimumTopScore               *float64 `json:"minimumTopScore,omitempty" yaml:"minimumTopScore,omitempty" toml:"minimumTopScore,omitempty"`
	MaxPeptideMass                *float64 `json:"maxPeptideMass,omitempty" yaml:"maxPeptideMass,omitempty" toml:"maxPeptideMass,omitempty"`
	MinimumPeptideLength          int      `json:"minimumPeptideLength" yaml:"minimumPeptideLength" toml:"minimumPeptideLength"`
	EvaluateLinears               bool     `json:"evaluateLinears" yaml:"evaluateLinears" toml:"evaluateLinears"`
}

// RuntimeDoc mirrors model.RuntimeParameters.
type RuntimeDoc struct {
	CPUCount         int    `json:"cpuCount" yaml:"cpuCount" toml:"cpuCount"`
	BufferInputSize  int    `json:"bufferInputSize" yaml:"bufferInputSize" toml:"bufferInputSize"`
	BufferOutputSize int    `json:"bufferOutputSize" yaml:"bufferOutputSize" toml:"bufferOutputSize"`
	ProcessingClass  string `json:"processingClass,omitempty" yaml:"processingClass,omitempty" toml:"processingClass,omitempty"`
	FragmentTree     string `json:"fragmentTree,omitempty" yaml:"fragmentTree,omitempty" toml:"fragmentTree,omitempty"`
}

// Document is the exported view of a SearchConfig used by every structured
// export format.
type Document struct {
	Tolerances      []ToleranceDoc    `json:"tolerances" yaml:"tolerances" toml:"tolerances"`
	Crosslinkers    []CrosslinkerDoc  `json:"crosslinkers" yaml:"crosslinkers" toml:"crosslinkers"`
	Modifications   []ModificationDoc `json:"modifications" yaml:"modifications" toml:"modifications"`
	Digestion       *DigestionDoc     `json:"digestion,omitempty" yaml:"digestion,omitempty" toml:"digestion,omitempty"`
	MissedCleavages int               `json:"missedCleavages" yaml:"missedCleavages" toml:"missedCleavages"`
	Fragments       []string          `json:"fragments" yaml:"fragments" toml:"fragments"`
	Losses          []LossDoc         `json:"losses" yaml:"losses" toml:"losses"`
	Scoring         ScoringDoc        `json:"scoring" yaml:"scoring" toml:"scoring"`
	Runtime         RuntimeDoc        `json:"runtime" yaml:"runtime" toml:"runtime"`
}

// NewDocument builds the export view of a validated SearchConfig.
func NewDocument(sc *model.SearchConfig) *Document {
	doc := &Document{MissedCleavages: sc.MissedCleavages()}

	for _, t := range sc.Tolerances() {
		doc.Tolerances = append(doc.Tolerances, ToleranceDoc{
			Kind: string(t.Kind), Value: t.Value, Unit: string(t.Unit),
		})
	}
	for _, xl := range sc.Crosslinkers() {
		doc.Crosslinkers = append(doc.Crosslinkers, CrosslinkerDoc{
			Type:                 string(xl.Type),
			Name:                 xl.Name,
			Mass:                 xl.Mass,
			LinkedResidues:       residueWeights(xl.LinkedResidues),
			SecondLinkedResidues: residueWeights(xl.SecondLinkedResidues),
			Modifications:        associatedMods(xl.AssociatedModifications),
			Decoy:                xl.Decoy,
		})
	}
	for _, m := range sc.Modifications() {
		md := ModificationDoc{
			Mode:            string(m.Mode),
			Symbol:          m.Symbol,
			SymbolExtension: m.SymbolExtension,
			Residues:        copyStrings(m.Residues),
			ProteinPosition: string(m.ProteinPosition),
		}
		if m.HasMass {
			md.Mass = ptr(m.Mass)
		}
		if m.HasDeltaMass {
			md.DeltaMass = ptr(m.DeltaMass)
		}
		doc.Modifications = append(doc.Modifications, md)
	}
	if rule, ok := sc.Digestion(); ok {
		doc.Digestion = &DigestionDoc{
			Algorithm:            string(rule.Algorithm),
			CleaveAfter:          copyStrings(rule.CleaveAfter),
			ConstrainingResidues: copyStrings(rule.ConstrainingResidues),
			Name:                 rule.Name,
		}
	}
	for _, ft := range sc.FragmentTypes() {
		doc.Fragments = append(doc.Fragments, string(ft))
	}
	for _, l := range sc.Losses() {
		doc.Losses = append(doc.Losses, LossDoc{
			Type:     string(l.Type),
			Name:     l.Name,
			Mass:     l.Mass,
			Residues: copyStrings(l.Residues),
			Terminus: string(l.Terminus),
		})
	}

	s := sc.Scoring()
	doc.Scoring = ScoringDoc{
		ConservativeLossThreshold:     s.ConservativeLossThreshold,
		IsotopePattern:                string(s.IsotopePattern),
		MatchMissingMonoisotopic:      s.MatchMissingMonoisotopic,
		MissingIsotopePeaks:           s.MissingIsotopePeaks,
		MGCPeaks:                      s.MGCPeaks,
		TopMGCHits:                    s.TopMGCHits,
		TopMGXHits:                    s.TopMGXHits,
		MaxModificationsPerPeptide:    s.MaxModificationsPerPeptide,
		MaxModifiedPeptidesPerPeptide: s.MaxModifiedPeptidesPerPeptide,
		TopMatchesOnly:                s.TopMatchesOnly,
		MinimumPeptideLength:          s.MinimumPeptideLength,
		EvaluateLinears:               s.EvaluateLinears,
	}
	if s.HasMinimumTopScore {
		doc.Scoring.MinimumTopScore = ptr(s.MinimumTopScore)
	}
	if !math.IsInf(s.MaxPeptideMass, 1) {
		doc.Scoring.MaxPeptideMass = ptr(s.MaxPeptideMass)
	}

	r := sc.Runtime()
	doc.Runtime = RuntimeDoc{
		CPUCount:         r.CPUCount,
		BufferInputSize:  r.BufferInputSize,
		BufferOutputSize: r.BufferOutputSize,
		ProcessingClass:  string(r.ProcessingClass),
		FragmentTree:     string(r.FragmentTree),
	}
	return doc
}

func residueWeights(in []model.ResiduePenalty) []ResidueWeightDoc {
	out := make([]ResidueWeightDoc, 0, len(in))
	for _, rp := range in {
		out = append(out, ResidueWeightDoc{Residue: rp.Residue, Penalty: rp.Penalty})
	}
	return out
}

func associatedMods(in []model.AssociatedModification) []AssociatedModificationDoc {
	out := make([]AssociatedModificationDoc, 0, len(in))
	for _, am := range in {
		out = append(out, AssociatedModificationDoc{Name: am.Name, Mass: am.MassDelta})
	}
	return out
}

func copyStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func ptr(v float64) *float64 { return &v }
