// Package directive parses the line-oriented search parameter format used by
// the Xi cross-linked peptide search engine into typed directive records.
//
// The format is UTF-8 text, one directive per line:
//
//	tolerance:precursor:3ppm
//	crosslinker:SymmetricSingleAminoAcidRestricted:Name:DSSO;MASS:158.0037648;LINKEDAMINOACIDS:K(0),S(0.2)
//	modification:variable::SYMBOLEXT:ox;MODIFIED:M;DELTAMASS:15.99491463
//	fragment:PeptideIon
//	missedcleavages:2
//
// Full-line comments start with '#'. Blank lines are skipped. Compound
// directives (tolerance, crosslinker, modification, digestion, loss) treat
// the whole line as data; trailing '#' comments are only stripped from
// scalar and fragment directives.
//
// This package is purely syntactic: it recognizes directive keys, splits
// compound fields and reports per-line errors. Semantic interpretation
// (numeric conversion, residue checks, cross-directive consistency) happens
// in the model package.
package directive
