package model

import (
	"math"
	"strconv"
	"strings"

	"github.com/xi-proteomics/xiconf/directive"
)

// builder accumulates directives, duplicate bookkeeping and diagnostics
// while a file is interpreted.
type builder struct {
	sc       *SearchConfig
	warnings *Warnings
	errs     LoadErrors

	seenScalar   map[string]int // canonical key -> first line
	seenMod      map[string]int // mode+"/"+symbol -> first line
	seenLoss     map[string]int // type+"/"+name -> first line
	seenFragment map[FragmentType]int
	seenTol      map[ToleranceKind]int
	digestionAt  int
}

// Build interprets parsed directive records into a SearchConfig. All
// semantic errors are aggregated; the config is only usable when the
// returned LoadErrors is empty.
func Build(records []directive.Record) (*SearchConfig, *Warnings, LoadErrors) {
	b := &builder{
		sc:           newSearchConfig(),
		warnings:     NewWarnings(),
		seenScalar:   map[string]int{},
		seenMod:      map[string]int{},
		seenLoss:     map[string]int{},
		seenFragment: map[FragmentType]int{},
		seenTol:      map[ToleranceKind]int{},
	}
	for i := range records {
		b.add(&records[i])
	}
	b.finish()
	if len(b.errs) > 0 {
		return nil, b.warnings, b.errs
	}
	return b.sc, b.warnings, nil
}

func (b *builder) add(rec *directive.Record) {
	switch rec.Key {
	case directive.KeyTolerance:
		b.addTolerance(rec)
	case directive.KeyCrosslinker:
		b.addCrosslinker(rec)
	case directive.KeyModification:
		b.addModification(rec)
	case directive.KeyDigestion:
		b.addDigestion(rec)
	case directive.KeyFragment:
		b.addFragment(rec)
	case directive.KeyLoss:
		b.addLoss(rec)
	default:
		b.addScalar(rec)
	}
}

func (b *builder) errorf(err error) { b.errs = append(b.errs, err) }

func (b *builder) malformed(line int, detail string) {
	b.errorf(&directive.MalformedDirectiveError{Line: line, Detail: detail})
}

// ---- tolerances ----

func (b *builder) addTolerance(rec *directive.Record) {
	kind := ToleranceKind(rec.Subtype)
	switch kind {
	case TolerancePrecursor, ToleranceFragment, TolerancePeptideMasses:
	default:
		b.malformed(rec.Line, "unknown tolerance kind "+strconv.Quote(rec.Subtype))
		return
	}
	if _, dup := b.seenTol[kind]; dup {
		b.errorf(&DuplicateDefinitionError{Line: rec.Line, Entity: "tolerance", Key: string(kind)})
		return
	}

	raw := strings.ToLower(rec.Value)
	var unit ToleranceUnit
	var num string
	switch {
	case strings.HasSuffix(raw, "ppm"):
		unit, num = UnitPPM, strings.TrimSpace(raw[:len(raw)-3])
	case strings.HasSuffix(raw, "da"):
		unit, num = UnitDalton, strings.TrimSpace(raw[:len(raw)-2])
	default:
		b.malformed(rec.Line, "tolerance value must end in ppm or da: "+strconv.Quote(rec.Value))
		return
	}
	v, ok := b.finiteFloat(num, rec.Line, "tolerance:"+string(kind))
	if !ok {
		return
	}
	b.seenTol[kind] = rec.Line
	b.sc.tolerances[kind] = Tolerance{Kind: kind, Value: v, Unit: unit}
	b.sc.toleranceOrder = append(b.sc.toleranceOrder, kind)
}

// ---- crosslinkers ----

// historical spellings from engine sample configs map onto the canonical tags
var crosslinkerTypes = map[string]CrossLinkerType{
	"symmetricsingleaminoacidrestricted":            CrossLinkerSymmetric,
	"symetricsingleaminoacidrestrictedcrosslinker":  CrossLinkerSymmetric,
	"asymmetricsingleaminoacidrestricted":           CrossLinkerAsymmetric,
	"asymetricsingleaminoacidrestrictedcrosslinker": CrossLinkerAsymmetric,
	"noncovalentbound":                              CrossLinkerNonCovalent,
}

func (b *builder) addCrosslinker(rec *directive.Record) {
	typ, ok := crosslinkerTypes[strings.ToLower(rec.Subtype)]
	if !ok {
		b.malformed(rec.Line, "unknown crosslinker type "+strconv.Quote(rec.Subtype))
		return
	}
	name, ok := rec.Field("name")
	if !ok || name == "" {
		b.malformed(rec.Line, "crosslinker requires a Name field")
		return
	}
	if _, dup := b.sc.crosslinkerIdx[name]; dup {
		b.errorf(&DuplicateDefinitionError{Line: rec.Line, Entity: "crosslinker", Key: name})
		return
	}

	xl := CrossLinker{Type: typ, Name: name, Decoy: rec.HasFlag("decoy")}
	valid := true

	if raw, has := rec.Field("mass"); has {
		if v, ok := b.finiteFloat(raw, rec.Line, "MASS"); ok {
			xl.Mass = v
		} else {
			valid = false
		}
	} else if typ != CrossLinkerNonCovalent {
		b.malformed(rec.Line, "crosslinker requires a MASS field")
		valid = false
	}

	if raw, has := rec.Field("linkedaminoacids"); has {
		if lst, ok := b.residuePenalties(raw, rec.Line); ok {
			xl.LinkedResidues = lst
		} else {
			valid = false
		}
	} else if typ != CrossLinkerNonCovalent {
		b.malformed(rec.Line, "crosslinker requires LINKEDAMINOACIDS")
		valid = false
	}
	if typ == CrossLinkerAsymmetric {
		raw, has := rec.Field("secondlinkedaminoacids")
		if !has {
			b.malformed(rec.Line, "asymmetric crosslinker requires SECONDLINKEDAMINOACIDS")
			valid = false
		} else if lst, ok := b.residuePenalties(raw, rec.Line); ok {
			xl.SecondLinkedResidues = lst
		} else {
			valid = false
		}
	}
	if raw, has := rec.Field("modifications"); has {
		mods, ok := b.associatedMods(raw, rec.Line)
		if ok {
			xl.AssociatedModifications = mods
		} else {
			valid = false
		}
	}

	if !valid {
		return
	}
	b.sc.crosslinkerIdx[name] = len(b.sc.crosslinkers)
	b.sc.crosslinkers = append(b.sc.crosslinkers, xl)
}

// associatedMods parses the MODIFICATIONS field: a flat comma list of
// alternating name,massDelta pairs.
func (b *builder) associatedMods(raw string, line int) ([]AssociatedModification, bool) {
	toks := splitList(raw)
	if len(toks)%2 != 0 {
		b.malformed(line, "MODIFICATIONS requires name,mass pairs")
		return nil, false
	}
	out := make([]AssociatedModification, 0, len(toks)/2)
	for i := 0; i < len(toks); i += 2 {
		mass, ok := b.finiteFloat(toks[i+1], line, "MODIFICATIONS")
		if !ok {
			return nil, false
		}
		out = append(out, AssociatedModification{Name: toks[i], MassDelta: mass})
	}
	return out, true
}

// ---- modifications ----

func (b *builder) addModification(rec *directive.Record) {
	mode := ModificationMode(rec.Subtype)
	switch mode {
	case ModificationFixed, ModificationVariable, ModificationKnown:
	default:
		b.malformed(rec.Line, "unknown modification mode "+strconv.Quote(rec.Subtype))
		return
	}

	sym, hasSym := rec.Field("symbol")
	ext, hasExt := rec.Field("symbolext")
	if hasSym == hasExt {
		b.malformed(rec.Line, "modification requires exactly one of SYMBOL or SYMBOLEXT")
		return
	}
	m := Modification{Mode: mode, Symbol: sym, SymbolExtension: hasExt}
	if hasExt {
		m.Symbol = ext
	}

	modKey := string(mode) + "/" + m.Symbol
	if _, dup := b.seenMod[modKey]; dup {
		b.errorf(&DuplicateDefinitionError{Line: rec.Line, Entity: "modification", Key: m.Symbol})
		return
	}

	raw, has := rec.Field("modified")
	if !has {
		b.malformed(rec.Line, "modification requires a MODIFIED residue list")
		return
	}
	residues, ok := b.residues(raw, rec.Line)
	if !ok {
		return
	}
	m.Residues = residues

	massRaw, hasMass := rec.Field("mass")
	deltaRaw, hasDelta := rec.Field("deltamass")
	switch {
	case hasMass && hasDelta:
		b.errorf(&ConflictingMassSpecificationError{Line: rec.Line, Symbol: m.Symbol,
			Detail: "both MASS and DELTAMASS supplied"})
		return
	case hasMass:
		v, ok := b.finiteFloat(massRaw, rec.Line, "MASS")
		if !ok {
			return
		}
		m.Mass, m.HasMass = v, true
	case hasDelta:
		v, ok := b.finiteFloat(deltaRaw, rec.Line, "DELTAMASS")
		if !ok {
			return
		}
		m.DeltaMass, m.HasDeltaMass = v, true
	default:
		b.errorf(&ConflictingMassSpecificationError{Line: rec.Line, Symbol: m.Symbol,
			Detail: "one of MASS or DELTAMASS is required"})
		return
	}

	if pos, has := rec.Field("proteinposition"); has {
		switch strings.ToLower(pos) {
		case "nterm":
			m.ProteinPosition = TerminusN
		case "cterm":
			m.ProteinPosition = TerminusC
		default:
			b.malformed(rec.Line, "PROTEINPOSITION must be nterm or cterm")
			return
		}
	}

	b.seenMod[modKey] = rec.Line
	b.sc.modifications = append(b.sc.modifications, m)
}

// ---- digestion ----

var digestionAlgorithms = map[string]DigestionAlgorithm{
	"postaaconstraineddigestion": DigestionPostAAConstrained,
	"nodigestion":                DigestionNone,
}

func (b *builder) addDigestion(rec *directive.Record) {
	if b.digestionAt != 0 {
		b.errorf(&DuplicateDefinitionError{Line: rec.Line, Entity: "digestion", Key: rec.Subtype})
		return
	}
	alg, ok := digestionAlgorithms[strings.ToLower(rec.Subtype)]
	if !ok {
		b.malformed(rec.Line, "unknown digestion algorithm "+strconv.Quote(rec.Subtype))
		return
	}
	raw, has := rec.Field("digested")
	if !has && alg != DigestionNone {
		b.malformed(rec.Line, "digestion requires a DIGESTED residue list")
		return
	}
	var cleave []string
	if has {
		cleave, ok = b.residues(raw, rec.Line)
		if !ok {
			return
		}
	}
	var constraining []string
	if raw, has := rec.Field("constrainingaminoacids"); has && raw != "" {
		constraining, ok = b.residues(raw, rec.Line)
		if !ok {
			return
		}
	}

	b.digestionAt = rec.Line
	// MissedCleavages comes from its own scalar directive and may already be
	// set; leave it untouched.
	b.sc.digestion.Algorithm = alg
	b.sc.digestion.CleaveAfter = cleave
	b.sc.digestion.ConstrainingResidues = constraining
	if name, has := rec.Field("name"); has {
		b.sc.digestion.Name = name
	}
	b.sc.hasDigestion = true
}

// ---- fragments ----

var fragmentNames = map[string]FragmentType{
	"bion":                     FragmentBIon,
	"yion":                     FragmentYIon,
	"cion":                     FragmentCIon,
	"zion":                     FragmentZIon,
	"aion":                     FragmentAIon,
	"xion":                     FragmentXIon,
	"peptideion":               FragmentPeptideIon,
	"blikedoublefragmentation": FragmentBLikeDouble,
}

func (b *builder) addFragment(rec *directive.Record) {
	ft, ok := fragmentNames[strings.ToLower(rec.Value)]
	if !ok {
		b.malformed(rec.Line, "unknown fragment type "+strconv.Quote(rec.Value))
		return
	}
	if _, dup := b.seenFragment[ft]; dup {
		b.errorf(&DuplicateDefinitionError{Line: rec.Line, Entity: "fragment", Key: string(ft)})
		return
	}
	b.seenFragment[ft] = rec.Line
	b.sc.fragments = append(b.sc.fragments, ft)
	b.sc.fragmentSet[ft] = true
}

// ---- losses ----

var lossTypes = map[string]LossType{
	"aminoacidrestrictedloss":     LossAminoAcidRestricted,
	"aionloss":                    LossAIon,
	"crosslinkermodified":         LossCrosslinkerModified,
	"aminoacidrestrictedimmonium": LossAminoAcidRestrictedImmonium,
	"cleavablecrosslinkerpeptide": LossCleavableCrossLinkerPeptide,
}

func (b *builder) addLoss(rec *directive.Record) {
	typ, ok := lossTypes[strings.ToLower(rec.Subtype)]
	if !ok {
		b.malformed(rec.Line, "unknown loss type "+strconv.Quote(rec.Subtype))
		return
	}
	l := LossRule{Type: typ}
	l.Name, _ = rec.Field("name")

	lossKey := string(typ) + "/" + l.Name
	if _, dup := b.seenLoss[lossKey]; dup {
		b.errorf(&DuplicateDefinitionError{Line: rec.Line, Entity: "loss", Key: rec.Subtype + ":" + l.Name})
		return
	}

	needsResidues := typ == LossAminoAcidRestricted || typ == LossAminoAcidRestrictedImmonium
	needsMass := needsResidues || typ == LossCleavableCrossLinkerPeptide

	if raw, has := rec.Field("aminoacids"); has {
		residues, ok := b.residues(raw, rec.Line)
		if !ok {
			return
		}
		l.Residues = residues
	} else if needsResidues {
		b.malformed(rec.Line, rec.Subtype+" loss requires an aminoacids list")
		return
	}
	if raw, has := rec.Field("mass"); has {
		v, ok := b.finiteFloat(raw, rec.Line, "MASS")
		if !ok {
			return
		}
		l.Mass, l.HasMass = v, true
	} else if needsMass {
		b.malformed(rec.Line, rec.Subtype+" loss requires a MASS field")
		return
	}
	if needsMass && l.Name == "" {
		b.malformed(rec.Line, rec.Subtype+" loss requires a NAME field")
		return
	}

	nterm, cterm := rec.HasFlag("nterm"), rec.HasFlag("cterm")
	switch {
	case nterm && cterm:
		b.malformed(rec.Line, "loss cannot be restricted to both termini")
		return
	case nterm:
		l.Terminus = TerminusN
	case cterm:
		l.Terminus = TerminusC
	}

	b.seenLoss[lossKey] = rec.Line
	b.sc.losses = append(b.sc.losses, l)
}

// ---- scalar directives ----

func (b *builder) addScalar(rec *directive.Record) {
	if _, dup := b.seenScalar[rec.Key]; dup {
		b.errorf(&DuplicateDefinitionError{Line: rec.Line, Entity: "directive", Key: rec.Key})
		return
	}

	sc := b.sc
	ok := true
	switch rec.Key {
	case directive.KeyMissedCleavages:
		sc.digestion.MissedCleavages, ok = b.nonNegativeInt(rec)
	case directive.KeyMGCPeaks:
		sc.scoring.MGCPeaks, ok = b.nonNegativeInt(rec)
	case directive.KeyTopMGCHits:
		sc.scoring.TopMGCHits, ok = b.nonNegativeInt(rec)
	case directive.KeyTopMGXHits:
		sc.scoring.TopMGXHits, ok = b.nonNegativeInt(rec)
	case directive.KeyConservativeLosses:
		sc.scoring.ConservativeLossThreshold, ok = b.nonNegativeInt(rec)
	case directive.KeyIsotopePattern:
		if strings.EqualFold(rec.Value, string(IsotopePatternAveragin)) {
			sc.scoring.IsotopePattern = IsotopePatternAveragin
		} else {
			b.malformed(rec.Line, "unknown isotope pattern "+strconv.Quote(rec.Value))
			ok = false
		}
	case directive.KeyMatchMissingMonoisotopic:
		sc.scoring.MatchMissingMonoisotopic, ok = b.boolean(rec)
	case directive.KeyMissingIsotopePeaks:
		sc.scoring.MissingIsotopePeaks, ok = b.nonNegativeInt(rec)
	case directive.KeyMaxModificationPerPeptide:
		sc.scoring.MaxModificationsPerPeptide, ok = b.nonNegativeInt(rec)
	case directive.KeyMaxModifiedPeptides:
		sc.scoring.MaxModifiedPeptidesPerPeptide, ok = b.nonNegativeInt(rec)
	case directive.KeyTopMatchesOnly:
		sc.scoring.TopMatchesOnly, ok = b.boolean(rec)
	case directive.KeyMinimumTopScore:
		var v float64
		if v, ok = b.finiteFloat(rec.Value, rec.Line, rec.Key); ok {
			sc.scoring.MinimumTopScore, sc.scoring.HasMinimumTopScore = v, true
		}
	case directive.KeyMaxPeptideMass:
		sc.scoring.MaxPeptideMass, ok = b.finiteFloat(rec.Value, rec.Line, rec.Key)
	case directive.KeyMinimumPeptideLength:
		sc.scoring.MinimumPeptideLength, ok = b.nonNegativeInt(rec)
	case directive.KeyEvaluateLinears:
		sc.scoring.EvaluateLinears, ok = b.boolean(rec)
	case directive.KeyUseCPUs:
		sc.runtime.CPUCount, ok = b.anyInt(rec)
	case directive.KeyBufferInput:
		sc.runtime.BufferInputSize, ok = b.nonNegativeInt(rec)
	case directive.KeyBufferOutput:
		sc.runtime.BufferOutputSize, ok = b.nonNegativeInt(rec)
	case directive.KeySearchClass:
		sc.runtime.ProcessingClass, ok = b.processingClass(rec)
	case directive.KeyFragmentTree:
		sc.runtime.FragmentTree, ok = b.fragmentTree(rec)
	default:
		// parser guarantees the key set; anything else is a programming error
		b.errorf(&directive.UnknownDirectiveError{Line: rec.Line, Key: rec.Key})
		ok = false
	}
	if ok {
		b.seenScalar[rec.Key] = rec.Line
	}
}

func (b *builder) processingClass(rec *directive.Record) (ProcessingClass, bool) {
	for _, pc := range []ProcessingClass{ProcessMultipleCandidates, ProcessOpenModification, ProcessTargetModification} {
		if strings.EqualFold(rec.Value, string(pc)) {
			return pc, true
		}
	}
	b.malformed(rec.Line, "unknown search class "+strconv.Quote(rec.Value))
	return "", false
}

func (b *builder) fragmentTree(rec *directive.Record) (FragmentTreeKind, bool) {
	for _, k := range []FragmentTreeKind{FragmentTreeDefault, FragmentTreeFU} {
		if strings.EqualFold(rec.Value, string(k)) {
			return k, true
		}
	}
	b.malformed(rec.Line, "unknown fragment tree kind "+strconv.Quote(rec.Value))
	return "", false
}

// ---- shared value parsing ----

func (b *builder) finiteFloat(raw string, line int, field string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		b.errorf(&InvalidNumericValueError{Line: line, Field: field, Value: raw})
		return 0, false
	}
	return v, true
}

func (b *builder) anyInt(rec *directive.Record) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(rec.Value))
	if err != nil {
		b.errorf(&InvalidNumericValueError{Line: rec.Line, Field: rec.Key, Value: rec.Value})
		return 0, false
	}
	return v, true
}

func (b *builder) nonNegativeInt(rec *directive.Record) (int, bool) {
	v, ok := b.anyInt(rec)
	if !ok {
		return 0, false
	}
	if v < 0 {
		b.errorf(&InvalidNumericValueError{Line: rec.Line, Field: rec.Key, Value: rec.Value})
		return 0, false
	}
	return v, true
}

func (b *builder) boolean(rec *directive.Record) (bool, bool) {
	v, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(rec.Value)))
	if err != nil {
		b.malformed(rec.Line, rec.Key+" expects true or false, got "+strconv.Quote(rec.Value))
		return false, false
	}
	return v, true
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// canonResidue validates a residue token: a single uppercase letter (the X
// wildcard included) or the literals nterm/cterm.
func canonResidue(tok string) (string, bool) {
	if len(tok) == 1 && tok[0] >= 'A' && tok[0] <= 'Z' {
		return tok, true
	}
	switch strings.ToLower(tok) {
	case "nterm":
		return "nterm", true
	case "cterm":
		return "cterm", true
	}
	return "", false
}

func (b *builder) residues(raw string, line int) ([]string, bool) {
	toks := splitList(raw)
	out := make([]string, 0, len(toks))
	ok := true
	for _, tok := range toks {
		r, valid := canonResidue(tok)
		if !valid {
			b.errorf(&InvalidResidueSymbolError{Line: line, Token: tok})
			ok = false
			continue
		}
		out = append(out, r)
	}
	if len(out) == 0 && ok {
		b.malformed(line, "empty residue list")
		return nil, false
	}
	return out, ok
}

// residuePenalties parses tokens of the form SYMBOL or SYMBOL(weight).
func (b *builder) residuePenalties(raw string, line int) ([]ResiduePenalty, bool) {
	toks := splitList(raw)
	out := make([]ResiduePenalty, 0, len(toks))
	ok := true
	for _, tok := range toks {
		sym := tok
		penalty := 0.0
		if i := strings.IndexByte(tok, '('); i >= 0 {
			if !strings.HasSuffix(tok, ")") {
				b.malformed(line, "unterminated penalty in "+strconv.Quote(tok))
				ok = false
				continue
			}
			sym = tok[:i]
			v, err := strconv.ParseFloat(tok[i+1:len(tok)-1], 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				b.errorf(&InvalidNumericValueError{Line: line, Field: "penalty", Value: tok})
				ok = false
				continue
			}
			penalty = v
		}
		r, valid := canonResidue(sym)
		if !valid {
			b.errorf(&InvalidResidueSymbolError{Line: line, Token: sym})
			ok = false
			continue
		}
		if penalty < 0 || penalty > 1 {
			b.errorf(&InvalidPenaltyError{Line: line, Residue: r, Penalty: penalty})
			ok = false
			continue
		}
		out = append(out, ResiduePenalty{Residue: r, Penalty: penalty})
	}
	if len(out) == 0 && ok {
		b.malformed(line, "empty residue list")
		return nil, false
	}
	return out, ok
}

// ---- final cross-checks and defaults ----

func (b *builder) finish() {
	b.applyDefaults()

	if len(b.sc.fragments) == 0 {
		b.errorf(&ValidationError{Message: "at least one fragment ion series must be enabled"})
	} else if !b.sc.fragmentSet[FragmentPeptideIon] {
		b.warnings.Add(WarningNoPeptideIon, "")
	}
	if _, ok := b.sc.tolerances[TolerancePrecursor]; !ok {
		b.warnings.Add(WarningNoPrecursorTolerance, "")
	}
	if len(b.sc.crosslinkers) == 0 {
		b.warnings.Add(WarningNoCrosslinker, "")
	}
}
