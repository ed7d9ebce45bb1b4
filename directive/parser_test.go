package directive

import (
	"errors"
	"strings"
	"testing"
)

// TestParse_ScalarsAndComments tests comment stripping and line accounting
func TestParse_ScalarsAndComments(t *testing.T) {
	input := strings.Join([]string{
		"# full line comment",
		"",
		"missedcleavages:2",
		"   ",
		"UseCPUs:-1   # all available cores",
		"topmgchits:10",
	}, "\n")

	records, errs := Parse(strings.NewReader(input))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].Key != KeyMissedCleavages || records[0].Value != "2" || records[0].Line != 3 {
		t.Errorf("unexpected first record: %+v", records[0])
	}
	if records[1].Key != KeyUseCPUs || records[1].Value != "-1" {
		t.Errorf("trailing comment not stripped from scalar: %+v", records[1])
	}
	if records[2].Line != 6 {
		t.Errorf("expected line 6, got %d", records[2].Line)
	}
}

// TestParse_UnknownDirective tests rejection of unrecognized keys
func TestParse_UnknownDirective(t *testing.T) {
	_, errs := Parse(strings.NewReader("missedcleavages:2\nnosuchkey:17\n"))
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	var unknown *UnknownDirectiveError
	if !errors.As(errs[0], &unknown) {
		t.Fatalf("expected UnknownDirectiveError, got %T", errs[0])
	}
	if unknown.Line != 2 || unknown.Key != "nosuchkey" {
		t.Errorf("unexpected error details: %+v", unknown)
	}
}

// TestParse_CrosslinkerFields tests compound field and flag splitting
func TestParse_CrosslinkerFields(t *testing.T) {
	input := "crosslinker:SymmetricSingleAminoAcidRestricted:Name:BS3;MASS:138.06807961;LINKEDAMINOACIDS:K,S,T,Y,nterm;decoy"
	records, errs := Parse(strings.NewReader(input))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	rec := records[0]
	if rec.Key != KeyCrosslinker || rec.Subtype != "SymmetricSingleAminoAcidRestricted" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if name, _ := rec.Field("name"); name != "BS3" {
		t.Errorf("expected Name BS3, got %q", name)
	}
	if mass, _ := rec.Field("mass"); mass != "138.06807961" {
		t.Errorf("expected mass field, got %q", mass)
	}
	if !rec.HasFlag("decoy") {
		t.Error("decoy flag not recognized")
	}
}

// TestParse_ModificationEmptySlot tests the mode/"::" grammar
func TestParse_ModificationEmptySlot(t *testing.T) {
	records, errs := Parse(strings.NewReader("modification:variable::SYMBOLEXT:ox;MODIFIED:M;DELTAMASS:15.99491463"))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	rec := records[0]
	if rec.Subtype != "variable" {
		t.Errorf("expected mode variable, got %q", rec.Subtype)
	}
	if ext, ok := rec.Field("symbolext"); !ok || ext != "ox" {
		t.Errorf("SYMBOLEXT not parsed: %+v", rec.Fields)
	}

	_, errs = Parse(strings.NewReader("modification:variable:SYMBOLEXT:ox;MODIFIED:M;DELTAMASS:1"))
	var malformed *MalformedDirectiveError
	if len(errs) != 1 || !errors.As(errs[0], &malformed) {
		t.Fatalf("expected MalformedDirectiveError for missing empty slot, got %v", errs)
	}
}

// TestParse_DigestionEqualsField tests the NAME=... field spelling
func TestParse_DigestionEqualsField(t *testing.T) {
	records, errs := Parse(strings.NewReader("digestion:PostAAConstrainedDigestion:DIGESTED:K,R;ConstrainingAminoAcids:P;NAME=Trypsin"))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	rec := records[0]
	if name, _ := rec.Field("name"); name != "Trypsin" {
		t.Errorf("NAME= field not parsed, got %q", name)
	}
	if c, _ := rec.Field("constrainingaminoacids"); c != "P" {
		t.Errorf("ConstrainingAminoAcids not parsed, got %q", c)
	}
}

// TestParse_CompoundKeepsHash tests that compound directives are not
// comment-stripped
func TestParse_CompoundKeepsHash(t *testing.T) {
	records, errs := Parse(strings.NewReader("digestion:PostAAConstrainedDigestion:DIGESTED:K;NAME=Trypsin # note"))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if name, _ := records[0].Field("name"); !strings.Contains(name, "#") {
		t.Errorf("compound directive was comment-stripped: %q", name)
	}
}

// TestParse_Tolerance tests the three-part tolerance grammar
func TestParse_Tolerance(t *testing.T) {
	records, errs := Parse(strings.NewReader("tolerance:precursor:3ppm"))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	rec := records[0]
	if rec.Subtype != "precursor" || rec.Value != "3ppm" {
		t.Errorf("unexpected tolerance record: %+v", rec)
	}

	_, errs = Parse(strings.NewReader("tolerance:precursor"))
	if len(errs) != 1 {
		t.Fatalf("expected error for missing value, got %v", errs)
	}
}

// TestParse_VariantFlagWithoutFields tests a type tag followed directly by
// a bare flag
func TestParse_VariantFlagWithoutFields(t *testing.T) {
	records, errs := Parse(strings.NewReader("loss:AIonLoss;nterm"))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	rec := records[0]
	if rec.Subtype != "AIonLoss" {
		t.Errorf("expected subtype AIonLoss, got %q", rec.Subtype)
	}
	if !rec.HasFlag("nterm") {
		t.Errorf("nterm flag not recognized: %+v", rec)
	}
}

// TestParse_MissingColon tests lines without any separator
func TestParse_MissingColon(t *testing.T) {
	_, errs := Parse(strings.NewReader("missedcleavages"))
	var malformed *MalformedDirectiveError
	if len(errs) != 1 || !errors.As(errs[0], &malformed) {
		t.Fatalf("expected MalformedDirectiveError, got %v", errs)
	}

	_, errs = Parse(strings.NewReader("garbage line"))
	var unknown *UnknownDirectiveError
	if len(errs) != 1 || !errors.As(errs[0], &unknown) {
		t.Fatalf("expected UnknownDirectiveError, got %v", errs)
	}
}
