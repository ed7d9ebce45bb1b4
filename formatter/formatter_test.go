package formatter

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/xi-proteomics/xiconf/directive"
	"github.com/xi-proteomics/xiconf/model"
)

const sampleConfig = `
tolerance:precursor:3ppm
tolerance:fragment:5ppm
crosslinker:SymmetricSingleAminoAcidRestricted:Name:DSSO;MASS:158.0037648;LINKEDAMINOACIDS:K,S(0.2),nterm;MODIFICATIONS:NH2,17.026549105
modification:fixed::SYMBOL:Ccm;MODIFIED:C;MASS:160.03064868
modification:variable::SYMBOLEXT:ox;MODIFIED:M;DELTAMASS:15.99491463
digestion:PostAAConstrainedDigestion:DIGESTED:K,R;ConstrainingAminoAcids:P;NAME=Trypsin
missedcleavages:2
fragment:BIon
fragment:YIon
fragment:PeptideIon
loss:AminoAcidRestrictedLoss:NAME:H2O;aminoacids:S,T,D,E;MASS:18.01056027
mgcpeaks:10
topmgchits:10
topmgxhits:10
UseCPUs:-1
`

func buildSample(t *testing.T, text string) *model.SearchConfig {
	t.Helper()
	records, parseErrs := directive.ParseBytes([]byte(text))
	if len(parseErrs) != 0 {
		t.Fatalf("parse errors: %v", parseErrs)
	}
	sc, _, errs := model.Build(records)
	if len(errs) != 0 {
		t.Fatalf("build errors: %v", errs)
	}
	return sc
}

// TestDirectives_RoundTrip tests load -> serialize -> load model equality
func TestDirectives_RoundTrip(t *testing.T) {
	sc := buildSample(t, sampleConfig)
	text := Directives(sc)
	sc2 := buildSample(t, string(text))

	if !reflect.DeepEqual(NewDocument(sc), NewDocument(sc2)) {
		t.Errorf("round-trip changed the model:\nfirst pass:\n%s\nsecond pass:\n%s", text, Directives(sc2))
	}

	// serialization must be idempotent, not merely equivalent
	if got := string(Directives(sc2)); got != string(text) {
		t.Errorf("second serialization differs:\n%s\nvs\n%s", text, got)
	}
}

// TestDirectives_PenaltyEmission tests bare emission of zero penalties
func TestDirectives_PenaltyEmission(t *testing.T) {
	sc := buildSample(t, sampleConfig)
	text := string(Directives(sc))
	if !strings.Contains(text, "LINKEDAMINOACIDS:K,S(0.2),nterm") {
		t.Errorf("unexpected residue list emission:\n%s", text)
	}
}

// TestDirectives_UnboundedMassSkipped tests that +Inf maxpeptidemass is not emitted
func TestDirectives_UnboundedMassSkipped(t *testing.T) {
	sc := buildSample(t, sampleConfig)
	text := string(Directives(sc))
	if strings.Contains(text, "maxpeptidemass") {
		t.Errorf("default unbounded mass must be skipped:\n%s", text)
	}

	sc = buildSample(t, sampleConfig+"maxpeptidemass:5000\n")
	text = string(Directives(sc))
	if !strings.Contains(text, "maxpeptidemass:5000\n") {
		t.Errorf("explicit mass bound missing:\n%s", text)
	}
}

// TestDirectives_ZeroMassLoss tests that an explicit zero MASS survives
// serialization for loss types that require the field
func TestDirectives_ZeroMassLoss(t *testing.T) {
	sc := buildSample(t, sampleConfig+"loss:AminoAcidRestrictedLoss:NAME:Z;aminoacids:S;MASS:0\n")
	text := string(Directives(sc))
	if !strings.Contains(text, "loss:AminoAcidRestrictedLoss:NAME:Z;aminoacids:S;MASS:0\n") {
		t.Fatalf("zero MASS dropped from serialization:\n%s", text)
	}

	sc2 := buildSample(t, text)
	losses := sc2.Losses()
	last := losses[len(losses)-1]
	if last.Name != "Z" || !last.HasMass || last.Mass != 0 {
		t.Errorf("zero-mass loss not round-tripped: %+v", last)
	}
}

// TestNewDocument_InfinityAsNil tests the JSON-safe view of +Inf
func TestNewDocument_InfinityAsNil(t *testing.T) {
	sc := buildSample(t, sampleConfig)
	doc := NewDocument(sc)
	if doc.Scoring.MaxPeptideMass != nil {
		t.Errorf("unbounded mass must map to nil, got %v", *doc.Scoring.MaxPeptideMass)
	}
	if doc.Scoring.MinimumTopScore != nil {
		t.Errorf("unset minimum top score must map to nil, got %v", *doc.Scoring.MinimumTopScore)
	}
}

// TestNewDocument_DetachedFromModel tests that mutating the export view
// never writes through to the SearchConfig
func TestNewDocument_DetachedFromModel(t *testing.T) {
	sc := buildSample(t, sampleConfig)
	doc := NewDocument(sc)

	doc.Modifications[0].Residues[0] = "Z"
	doc.Digestion.CleaveAfter[0] = "Z"
	doc.Losses[0].Residues[0] = "Z"

	if got := sc.Modifications()[0].Residues[0]; got != "C" {
		t.Errorf("modification residues shared with document: %q", got)
	}
	rule, _ := sc.Digestion()
	if rule.CleaveAfter[0] != "K" {
		t.Errorf("digestion residues shared with document: %q", rule.CleaveAfter[0])
	}
	if got := sc.Losses()[0].Residues[0]; got != "S" {
		t.Errorf("loss residues shared with document: %q", got)
	}
}

// TestJSON_Valid tests that the JSON export parses and carries the model
func TestJSON_Valid(t *testing.T) {
	sc := buildSample(t, sampleConfig)
	data, err := JSON(sc)
	if err != nil {
		t.Fatalf("JSON export failed: %v", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("JSON export is not valid JSON: %v", err)
	}
	if len(doc.Tolerances) != 2 || doc.Tolerances[0].Kind != "precursor" || doc.Tolerances[0].Value != 3 {
		t.Errorf("tolerances not exported: %+v", doc.Tolerances)
	}
	if doc.MissedCleavages != 2 {
		t.Errorf("missed cleavages not exported: %d", doc.MissedCleavages)
	}
}

// TestYAML_Valid tests the YAML export
func TestYAML_Valid(t *testing.T) {
	sc := buildSample(t, sampleConfig)
	data, err := YAML(sc)
	if err != nil {
		t.Fatalf("YAML export failed: %v", err)
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("YAML export is not valid YAML: %v", err)
	}
	if len(doc.Crosslinkers) != 1 || doc.Crosslinkers[0].Name != "DSSO" {
		t.Errorf("crosslinkers not exported: %+v", doc.Crosslinkers)
	}
}

// TestTOML_Valid tests the TOML export
func TestTOML_Valid(t *testing.T) {
	sc := buildSample(t, sampleConfig)
	data, err := TOML(sc)
	if err != nil {
		t.Fatalf("TOML export failed: %v", err)
	}
	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("TOML export is not valid TOML: %v", err)
	}
	if len(doc.Fragments) != 3 || doc.Fragments[2] != "PeptideIon" {
		t.Errorf("fragments not exported: %+v", doc.Fragments)
	}
}
