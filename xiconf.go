// Package xiconf loads Xi search parameter files into a validated,
// immutable configuration model.
//
// The single load entry point parses the line-oriented directive format,
// cross-checks the result and applies documented defaults:
//
//	sc, warnings, err := xiconf.Load("dsso.config")
//	if err != nil {
//	    // err aggregates every parse and validation failure with line numbers
//	}
//	warnings.LogAll("dsso.config")
//	tol, _ := sc.Tolerance(model.TolerancePrecursor)
//
// The returned SearchConfig never mutates, so a search engine can share it
// across worker goroutines without locking. Reconfiguration means loading a
// new model from a new source.
package xiconf

import (
	"bytes"
	"io"
	"os"

	"github.com/xi-proteomics/xiconf/directive"
	"github.com/xi-proteomics/xiconf/model"
)

// Load reads and validates the search parameter file at path.
func Load(path string) (*model.SearchConfig, *model.Warnings, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = f.Close() }()
	return LoadReader(f)
}

// LoadBytes validates a search parameter file held in memory.
func LoadBytes(b []byte) (*model.SearchConfig, *model.Warnings, error) {
	return LoadReader(bytes.NewReader(b))
}

// LoadReader parses directive lines from r and builds the model. On failure
// the returned error is a model.LoadErrors aggregating every parse and
// validation problem; the model is never partially exposed.
func LoadReader(r io.Reader) (*model.SearchConfig, *model.Warnings, error) {
	records, parseErrs := directive.Parse(r)
	sc, warnings, buildErrs := model.Build(records)

	if len(parseErrs) > 0 || len(buildErrs) > 0 {
		errs := make(model.LoadErrors, 0, len(parseErrs)+len(buildErrs))
		errs = append(errs, parseErrs...)
		errs = append(errs, buildErrs...)
		return nil, warnings, errs
	}
	return sc, warnings, nil
}
