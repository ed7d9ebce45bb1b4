package directive

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

var compoundKeys = map[string]bool{
	KeyTolerance:    true,
	KeyCrosslinker:  true,
	KeyModification: true,
	KeyDigestion:    true,
	KeyLoss:         true,
}

var scalarKeys = map[string]bool{
	KeyMissedCleavages:           true,
	KeyMGCPeaks:                  true,
	KeyTopMGCHits:                true,
	KeyTopMGXHits:                true,
	KeyConservativeLosses:        true,
	KeyIsotopePattern:            true,
	KeyMatchMissingMonoisotopic:  true,
	KeyMissingIsotopePeaks:       true,
	KeyMaxModificationPerPeptide: true,
	KeyMaxModifiedPeptides:       true,
	KeyTopMatchesOnly:            true,
	KeyMinimumTopScore:           true,
	KeyMaxPeptideMass:            true,
	KeyMinimumPeptideLength:      true,
	KeyEvaluateLinears:           true,
	KeyUseCPUs:                   true,
	KeyBufferInput:               true,
	KeyBufferOutput:              true,
	KeySearchClass:               true,
	KeyFragmentTree:              true,
}

// IsScalarKey reports whether key (canonical lowercase) is a recognized
// scalar directive.
func IsScalarKey(key string) bool { return scalarKeys[key] }

// ParseBytes parses a whole directive file held in memory.
func ParseBytes(b []byte) ([]Record, []error) {
	return Parse(bytes.NewReader(b))
}

// Parse reads directive lines from r and returns the typed records together
// with all syntax errors encountered. Records are returned even when errors
// are present so callers can aggregate further diagnostics; a non-empty
// error slice means the file must be rejected.
func Parse(r io.Reader) ([]Record, []error) {
	var records []Record
	var errs []error

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		rec, err := parseLine(text, line)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		records = append(records, *rec)
	}
	if err := scanner.Err(); err != nil {
		errs = append(errs, err)
	}
	return records, errs
}

func parseLine(text string, line int) (*Record, error) {
	sep := strings.IndexByte(text, ':')
	if sep < 0 {
		key := strings.ToLower(text)
		if scalarKeys[key] || compoundKeys[key] || key == KeyFragment {
			return nil, &MalformedDirectiveError{Line: line, Detail: "missing ':' after directive key"}
		}
		return nil, &UnknownDirectiveError{Line: line, Key: text}
	}
	key := strings.ToLower(strings.TrimSpace(text[:sep]))
	rest := text[sep+1:]

	switch {
	case scalarKeys[key]:
		return &Record{Line: line, Key: key, Value: stripTrailingComment(rest)}, nil
	case key == KeyFragment:
		v := stripTrailingComment(rest)
		if v == "" {
			return nil, &MalformedDirectiveError{Line: line, Detail: "fragment directive has no ion series name"}
		}
		return &Record{Line: line, Key: key, Value: v}, nil
	case key == KeyTolerance:
		return parseTolerance(rest, line)
	case key == KeyModification:
		return parseModification(rest, line)
	case compoundKeys[key]:
		return parseVariant(key, rest, line)
	default:
		return nil, &UnknownDirectiveError{Line: line, Key: strings.TrimSpace(text[:sep])}
	}
}

// tolerance:<kind>:<value><unit>
func parseTolerance(rest string, line int) (*Record, error) {
	sep := strings.IndexByte(rest, ':')
	if sep < 0 {
		return nil, &MalformedDirectiveError{Line: line, Detail: "tolerance requires <kind>:<value><unit>"}
	}
	kind := strings.ToLower(strings.TrimSpace(rest[:sep]))
	value := strings.TrimSpace(rest[sep+1:])
	if kind == "" || value == "" {
		return nil, &MalformedDirectiveError{Line: line, Detail: "tolerance requires <kind>:<value><unit>"}
	}
	return &Record{Line: line, Key: KeyTolerance, Subtype: kind, Value: value}, nil
}

// modification:<mode>::FIELD:val;FIELD:val;...
// The empty slot between mode and the field list is part of the format.
func parseModification(rest string, line int) (*Record, error) {
	sep := strings.IndexByte(rest, ':')
	if sep < 0 {
		return nil, &MalformedDirectiveError{Line: line, Detail: "modification requires <mode>::<fields>"}
	}
	mode := strings.ToLower(strings.TrimSpace(rest[:sep]))
	remainder := rest[sep+1:]
	if !strings.HasPrefix(remainder, ":") {
		return nil, &MalformedDirectiveError{Line: line, Detail: "modification requires an empty slot after the mode (\"::\")"}
	}
	fields, flags, err := parseFields(remainder[1:], line)
	if err != nil {
		return nil, err
	}
	return &Record{Line: line, Key: KeyModification, Subtype: mode, Fields: fields, Flags: flags}, nil
}

// crosslinker/digestion/loss: <Type>[:FIELD:val;...]
func parseVariant(key, rest string, line int) (*Record, error) {
	subtype := rest
	payload := ""
	// the type tag ends at the first ':' or ';', whichever comes first; a
	// ';' means the directive has flags or fields but no leading field
	if sep := strings.IndexAny(rest, ":;"); sep >= 0 {
		subtype = rest[:sep]
		payload = rest[sep+1:]
	}
	subtype = strings.TrimSpace(subtype)
	if subtype == "" {
		return nil, &MalformedDirectiveError{Line: line, Detail: key + " directive has no type tag"}
	}
	fields, flags, err := parseFields(payload, line)
	if err != nil {
		return nil, err
	}
	return &Record{Line: line, Key: key, Subtype: subtype, Fields: fields, Flags: flags}, nil
}

// parseFields splits a compound payload on ';'. Segments with ':' (or '='
// as used by digestion NAME=...) become named fields, bare segments become
// flags such as "decoy", "nterm" and "cterm".
func parseFields(payload string, line int) ([]Field, []string, error) {
	var fields []Field
	var flags []string
	for _, seg := range strings.Split(payload, ";") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		sep := strings.IndexByte(seg, ':')
		if sep < 0 {
			sep = strings.IndexByte(seg, '=')
		}
		if sep < 0 {
			flags = append(flags, strings.ToLower(seg))
			continue
		}
		name := strings.ToLower(strings.TrimSpace(seg[:sep]))
		if name == "" {
			return nil, nil, &MalformedDirectiveError{Line: line, Detail: "empty field name in " + seg}
		}
		fields = append(fields, Field{Name: name, Value: strings.TrimSpace(seg[sep+1:])})
	}
	return fields, flags, nil
}

// stripTrailingComment removes a trailing '#' comment. Only scalar and
// fragment directives use this; compound directives keep the full line.
func stripTrailingComment(s string) string {
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
