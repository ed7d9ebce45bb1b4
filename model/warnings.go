package model

import (
	"fmt"
	"log"
	"strings"
)

// Warning type constants
const (
	WarningNoPeptideIon         = "no_peptide_ion"
	WarningNoPrecursorTolerance = "no_precursor_tolerance"
	WarningNoCrosslinker        = "no_crosslinker"
)

// warningInfo holds aggregated information about a specific warning type
type warningInfo struct {
	count    int
	examples []string
}

// Warnings collects non-fatal findings during model construction. They do
// not block the load; callers decide whether to surface them.
type Warnings struct {
	order    []string
	warnings map[string]*warningInfo
}

// NewWarnings creates an empty warning aggregator.
func NewWarnings() *Warnings {
	return &Warnings{warnings: make(map[string]*warningInfo)}
}

// Add records a warning occurrence with an example identifier.
func (w *Warnings) Add(warningType, exampleID string) {
	if w.warnings[warningType] == nil {
		w.warnings[warningType] = &warningInfo{examples: make([]string, 0, 3)}
		w.order = append(w.order, warningType)
	}
	info := w.warnings[warningType]
	info.count++
	if len(info.examples) < 3 && exampleID != "" {
		info.examples = append(info.examples, exampleID)
	}
}

// Has reports whether a warning of the given type was recorded.
func (w *Warnings) Has(warningType string) bool {
	return w.warnings[warningType] != nil
}

// Len returns the number of distinct warning types recorded.
func (w *Warnings) Len() int { return len(w.order) }

// Messages returns one human-readable line per warning type, in the order
// the warnings were first recorded.
func (w *Warnings) Messages() []string {
	msgs := make([]string, 0, len(w.order))
	for _, t := range w.order {
		msgs = append(msgs, w.formatWarningMessage(t, w.warnings[t]))
	}
	return msgs
}

// LogAll outputs all collected warnings in consolidated format.
func (w *Warnings) LogAll(source string) {
	for _, t := range w.order {
		log.Printf("config %s: %s", source, w.formatWarningMessage(t, w.warnings[t]))
	}
}

func (w *Warnings) formatWarningMessage(warningType string, info *warningInfo) string {
	var description, action string

	switch warningType {
	case WarningNoPeptideIon:
		description = "PeptideIon fragment type is not enabled"
		action = "Cross-linked fragment matching will miss intact peptide masses"
	case WarningNoPrecursorTolerance:
		description = "no precursor tolerance configured"
		action = "The engine will fall back to its built-in window"
	case WarningNoCrosslinker:
		description = "no crosslinker configured"
		action = "Only linear peptides can be matched"
	default:
		description = "unknown issue"
		action = "Continuing with engine defaults"
	}

	msg := fmt.Sprintf("%s (%d occurrences). %s", description, info.count, action)
	if len(info.examples) > 0 {
		msg += ". Examples: " + strings.Join(info.examples, ", ")
	}
	return msg
}
