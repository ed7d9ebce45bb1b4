package formatter

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xi-proteomics/xiconf/model"
)

// Directives renders the canonical directive-text form of a SearchConfig.
// The output parses back into an identical model, so serialized configs can
// be handed to the engine or stored as regression fixtures.
func Directives(sc *model.SearchConfig) []byte {
	var buf bytes.Buffer

	for _, t := range sc.Tolerances() {
		fmt.Fprintf(&buf, "tolerance:%s:%s%s\n", t.Kind, num(t.Value), t.Unit)
	}

	for _, xl := range sc.Crosslinkers() {
		fmt.Fprintf(&buf, "crosslinker:%s:Name:%s", xl.Type, xl.Name)
		if xl.Type != model.CrossLinkerNonCovalent || xl.Mass != 0 {
			fmt.Fprintf(&buf, ";MASS:%s", num(xl.Mass))
		}
		if len(xl.LinkedResidues) > 0 {
			fmt.Fprintf(&buf, ";LINKEDAMINOACIDS:%s", weightedList(xl.LinkedResidues))
		}
		if len(xl.SecondLinkedResidues) > 0 {
			fmt.Fprintf(&buf, ";SECONDLINKEDAMINOACIDS:%s", weightedList(xl.SecondLinkedResidues))
		}
		if len(xl.AssociatedModifications) > 0 {
			pairs := make([]string, 0, len(xl.AssociatedModifications)*2)
			for _, am := range xl.AssociatedModifications {
				pairs = append(pairs, am.Name, num(am.MassDelta))
			}
			fmt.Fprintf(&buf, ";MODIFICATIONS:%s", strings.Join(pairs, ","))
		}
		if xl.Decoy {
			buf.WriteString(";decoy")
		}
		buf.WriteByte('\n')
	}

	for _, m := range sc.Modifications() {
		sym := "SYMBOL"
		if m.SymbolExtension {
			sym = "SYMBOLEXT"
		}
		fmt.Fprintf(&buf, "modification:%s::%s:%s;MODIFIED:%s", m.Mode, sym, m.Symbol, strings.Join(m.Residues, ","))
		if m.ProteinPosition != model.TerminusNone {
			fmt.Fprintf(&buf, ";PROTEINPOSITION:%s", m.ProteinPosition)
		}
		if m.HasMass {
			fmt.Fprintf(&buf, ";MASS:%s", num(m.Mass))
		} else {
			fmt.Fprintf(&buf, ";DELTAMASS:%s", num(m.DeltaMass))
		}
		buf.WriteByte('\n')
	}

	if rule, ok := sc.Digestion(); ok {
		fmt.Fprintf(&buf, "digestion:%s", rule.Algorithm)
		sep := ":"
		if len(rule.CleaveAfter) > 0 {
			fmt.Fprintf(&buf, ":DIGESTED:%s", strings.Join(rule.CleaveAfter, ","))
			sep = ";"
		}
		if len(rule.ConstrainingResidues) > 0 {
			fmt.Fprintf(&buf, "%sConstrainingAminoAcids:%s", sep, strings.Join(rule.ConstrainingResidues, ","))
			sep = ";"
		}
		if rule.Name != "" {
			fmt.Fprintf(&buf, "%sNAME=%s", sep, rule.Name)
		}
		buf.WriteByte('\n')
	}
	fmt.Fprintf(&buf, "missedcleavages:%d\n", sc.MissedCleavages())

	for _, ft := range sc.FragmentTypes() {
		fmt.Fprintf(&buf, "fragment:%s\n", ft)
	}

	for _, l := range sc.Losses() {
		fmt.Fprintf(&buf, "loss:%s", l.Type)
		if l.Name != "" {
			fmt.Fprintf(&buf, ":NAME:%s", l.Name)
		}
		if len(l.Residues) > 0 {
			fmt.Fprintf(&buf, ";aminoacids:%s", strings.Join(l.Residues, ","))
		}
		if l.HasMass {
			fmt.Fprintf(&buf, ";MASS:%s", num(l.Mass))
		}
		if l.Terminus != model.TerminusNone {
			fmt.Fprintf(&buf, ";%s", l.Terminus)
		}
		buf.WriteByte('\n')
	}

	s := sc.Scoring()
	fmt.Fprintf(&buf, "mgcpeaks:%d\n", s.MGCPeaks)
	fmt.Fprintf(&buf, "topmgchits:%d\n", s.TopMGCHits)
	fmt.Fprintf(&buf, "topmgxhits:%d\n", s.TopMGXHits)
	fmt.Fprintf(&buf, "conservativelosses:%d\n", s.ConservativeLossThreshold)
	if s.IsotopePattern != "" {
		fmt.Fprintf(&buf, "isotoppattern:%s\n", s.IsotopePattern)
	}
	fmt.Fprintf(&buf, "match_missing_monoisotopic:%t\n", s.MatchMissingMonoisotopic)
	fmt.Fprintf(&buf, "missing_isotope_peaks:%d\n", s.MissingIsotopePeaks)
	fmt.Fprintf(&buf, "max_modification_per_peptide:%d\n", s.MaxModificationsPerPeptide)
	fmt.Fprintf(&buf, "max_modified_peptides_per_peptide:%d\n", s.MaxModifiedPeptidesPerPeptide)
	fmt.Fprintf(&buf, "topmatchesonly:%t\n", s.TopMatchesOnly)
	if s.HasMinimumTopScore {
		fmt.Fprintf(&buf, "minimum_top_score:%s\n", num(s.MinimumTopScore))
	}
	if !math.IsInf(s.MaxPeptideMass, 1) {
		fmt.Fprintf(&buf, "maxpeptidemass:%s\n", num(s.MaxPeptideMass))
	}
	fmt.Fprintf(&buf, "minimum_peptide_length:%d\n", s.MinimumPeptideLength)
	fmt.Fprintf(&buf, "evaluatelinears:%t\n", s.EvaluateLinears)

	r := sc.Runtime()
	fmt.Fprintf(&buf, "usecpus:%d\n", r.CPUCount)
	fmt.Fprintf(&buf, "bufferinput:%d\n", r.BufferInputSize)
	fmt.Fprintf(&buf, "bufferoutput:%d\n", r.BufferOutputSize)
	if r.ProcessingClass != "" {
		fmt.Fprintf(&buf, "searchclass:%s\n", r.ProcessingClass)
	}
	if r.FragmentTree != "" {
		fmt.Fprintf(&buf, "fragmenttree:%s\n", r.FragmentTree)
	}

	return buf.Bytes()
}

func weightedList(in []model.ResiduePenalty) string {
	toks := make([]string, 0, len(in))
	for _, rp := range in {
		if rp.Penalty != 0 {
			toks = append(toks, fmt.Sprintf("%s(%s)", rp.Residue, num(rp.Penalty)))
		} else {
			toks = append(toks, rp.Residue)
		}
	}
	return strings.Join(toks, ",")
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
