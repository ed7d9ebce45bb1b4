package model

// ToleranceKind identifies which mass comparison a tolerance applies to.
type ToleranceKind string

const (
	TolerancePrecursor     ToleranceKind = "precursor"
	ToleranceFragment      ToleranceKind = "fragment"
	TolerancePeptideMasses ToleranceKind = "peptidemasses"
)

// ToleranceUnit is the unit of a mass tolerance.
type ToleranceUnit string

const (
	UnitPPM    ToleranceUnit = "ppm"
	UnitDalton ToleranceUnit = "da"
)

// Tolerance is a single mass tolerance window.
type Tolerance struct {
	Kind  ToleranceKind
	Value float64
	Unit  ToleranceUnit
}

// ResiduePenalty pairs a residue symbol with the linkage penalty in [0,1].
// A zero penalty means the residue is a preferred link site.
type ResiduePenalty struct {
	Residue string
	Penalty float64
}

// CrossLinkerType tags the crosslinker variant.
type CrossLinkerType string

const (
	CrossLinkerSymmetric   CrossLinkerType = "SymmetricSingleAminoAcidRestricted"
	CrossLinkerAsymmetric  CrossLinkerType = "AsymmetricSingleAminoAcidRestricted"
	CrossLinkerNonCovalent CrossLinkerType = "NonCovalentBound"
)

// AssociatedModification is a crosslinker stub modification left on a
// peptide when an MS-cleavable reagent fragments.
type AssociatedModification struct {
	Name      string
	MassDelta float64
}

// CrossLinker describes one crosslinking reagent.
type CrossLinker struct {
	Type                    CrossLinkerType
	Name                    string
	Mass                    float64
	LinkedResidues          []ResiduePenalty
	SecondLinkedResidues    []ResiduePenalty // asymmetric reagents only
	AssociatedModifications []AssociatedModification
	Decoy                   bool
}

// ModificationMode partitions modifications by how the search applies them.
type ModificationMode string

const (
	ModificationFixed    ModificationMode = "fixed"
	ModificationVariable ModificationMode = "variable"
	ModificationKnown    ModificationMode = "known"
)

// TerminusConstraint restricts a rule to one protein terminus. Empty means
// unrestricted.
type TerminusConstraint string

const (
	TerminusNone TerminusConstraint = ""
	TerminusN    TerminusConstraint = "nterm"
	TerminusC    TerminusConstraint = "cterm"
)

// Modification is one post-translational modification rule. Exactly one of
// HasMass/HasDeltaMass is set after validation: SYMBOL entries carry the
// absolute residue mass, SYMBOLEXT entries carry a mass delta.
type Modification struct {
	Mode            ModificationMode
	Symbol          string
	SymbolExtension bool // Symbol is an extension appended to the residue letter
	Residues        []string
	Mass            float64
	HasMass         bool
	DeltaMass       float64
	HasDeltaMass    bool
	ProteinPosition TerminusConstraint
}

// DigestionAlgorithm tags the digestion variant.
type DigestionAlgorithm string

const (
	DigestionPostAAConstrained DigestionAlgorithm = "PostAAConstrainedDigestion"
	DigestionNone              DigestionAlgorithm = "NoDigestion"
)

// DigestionRule describes the protease behaviour: cleave after CleaveAfter
// residues unless the next residue is in ConstrainingResidues.
type DigestionRule struct {
	Algorithm            DigestionAlgorithm
	CleaveAfter          []string
	ConstrainingResidues []string
	Name                 string
	MissedCleavages      int
}

// FragmentType is one enabled fragment ion series.
type FragmentType string

const (
	FragmentBIon        FragmentType = "BIon"
	FragmentYIon        FragmentType = "YIon"
	FragmentCIon        FragmentType = "CIon"
	FragmentZIon        FragmentType = "ZIon"
	FragmentAIon        FragmentType = "AIon"
	FragmentXIon        FragmentType = "XIon"
	FragmentPeptideIon  FragmentType = "PeptideIon"
	FragmentBLikeDouble FragmentType = "BLikeDoubleFragmentation"
)

// LossType tags the neutral-loss variant.
type LossType string

const (
	LossAminoAcidRestricted         LossType = "AminoAcidRestrictedLoss"
	LossAIon                        LossType = "AIonLoss"
	LossCrosslinkerModified         LossType = "CrosslinkerModified"
	LossAminoAcidRestrictedImmonium LossType = "AminoAcidRestrictedImmonium"
	LossCleavableCrossLinkerPeptide LossType = "CleavableCrossLinkerPeptide"
)

// LossRule describes one neutral loss applied during fragment matching.
// HasMass distinguishes an explicit zero mass from an absent MASS field.
type LossRule struct {
	Type     LossType
	Name     string
	Mass     float64
	HasMass  bool
	Residues []string
	Terminus TerminusConstraint
}

// IsotopePattern selects the isotope envelope model used for peak matching.
type IsotopePattern string

// Averagin is the averagine-based envelope approximation.
const IsotopePatternAveragin IsotopePattern = "Averagin"

// ScoringParameters are the candidate-selection and scoring thresholds.
type ScoringParameters struct {
	ConservativeLossThreshold     int
	IsotopePattern                IsotopePattern
	MatchMissingMonoisotopic      bool
	MissingIsotopePeaks           int
	MGCPeaks                      int
	TopMGCHits                    int
	TopMGXHits                    int
	MaxModificationsPerPeptide    int
	MaxModifiedPeptidesPerPeptide int
	TopMatchesOnly                bool
	MinimumTopScore               float64
	HasMinimumTopScore            bool
	MaxPeptideMass                float64 // +Inf when unbounded
	MinimumPeptideLength          int
	EvaluateLinears               bool
}

// ProcessingClass selects the engine's search pipeline.
type ProcessingClass string

const (
	ProcessMultipleCandidates ProcessingClass = "MultipleCandidates"
	ProcessOpenModification   ProcessingClass = "OpenModification"
	ProcessTargetModification ProcessingClass = "TargetModification"
)

// FragmentTreeKind selects the fragment lookup tree implementation.
type FragmentTreeKind string

const (
	FragmentTreeDefault FragmentTreeKind = "default"
	FragmentTreeFU      FragmentTreeKind = "FU"
)

// RuntimeParameters are advisory knobs the engine's scheduler consumes. A
// negative CPUCount means "all available cores minus |n|".
type RuntimeParameters struct {
	CPUCount         int
	BufferInputSize  int
	BufferOutputSize int
	ProcessingClass  ProcessingClass
	FragmentTree     FragmentTreeKind
}
