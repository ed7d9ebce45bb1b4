package directive

// Directive keys for compound directives.
const (
	KeyTolerance    = "tolerance"
	KeyCrosslinker  = "crosslinker"
	KeyModification = "modification"
	KeyDigestion    = "digestion"
	KeyFragment     = "fragment"
	KeyLoss         = "loss"
)

// Scalar directive keys (canonical lowercase spelling).
const (
	KeyMissedCleavages           = "missedcleavages"
	KeyMGCPeaks                  = "mgcpeaks"
	KeyTopMGCHits                = "topmgchits"
	KeyTopMGXHits                = "topmgxhits"
	KeyConservativeLosses        = "conservativelosses"
	KeyIsotopePattern            = "isotoppattern"
	KeyMatchMissingMonoisotopic  = "match_missing_monoisotopic"
	KeyMissingIsotopePeaks       = "missing_isotope_peaks"
	KeyMaxModificationPerPeptide = "max_modification_per_peptide"
	KeyMaxModifiedPeptides       = "max_modified_peptides_per_peptide"
	KeyTopMatchesOnly            = "topmatchesonly"
	KeyMinimumTopScore           = "minimum_top_score"
	KeyMaxPeptideMass            = "maxpeptidemass"
	KeyMinimumPeptideLength      = "minimum_peptide_length"
	KeyEvaluateLinears           = "evaluatelinears"
	KeyUseCPUs                   = "usecpus"
	KeyBufferInput               = "bufferinput"
	KeyBufferOutput              = "bufferoutput"
	KeySearchClass               = "searchclass"
	KeyFragmentTree              = "fragmenttree"
)

// Field is a single NAME:value (or NAME=value) entry inside a compound
// directive. Name is canonicalized to lowercase; Value is preserved as
// written.
type Field struct {
	Name  string
	Value string
}

// Record is one parsed directive line.
//
// The shape depends on the directive key:
//   - scalar keys and fragment: Value holds the right-hand side
//   - tolerance: Subtype is the tolerance kind, Value the "<number><unit>" token
//   - crosslinker/modification/digestion/loss: Subtype is the variant tag
//     (crosslinker type, modification mode, digestion algorithm, loss type)
//     and Fields/Flags hold the ';'-separated payload
type Record struct {
	Line    int
	Key     string
	Subtype string
	Value   string
	Fields  []Field
	Flags   []string
}

// Field returns the value of the named compound field and whether it was
// present. Lookup is case-insensitive via the canonical lowercase name.
func (r *Record) Field(name string) (string, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// HasFlag reports whether a bare token such as "decoy" or "nterm" appeared
// in the compound payload.
func (r *Record) HasFlag(name string) bool {
	for _, f := range r.Flags {
		if f == name {
			return true
		}
	}
	return false
}
