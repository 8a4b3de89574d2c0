package processor

import (
	"strings"
	"testing"

	"github.com/ZaguanLabs/sitrans"
)

func TestRepairDoctype_KnownArtifact(t *testing.T) {
	markup := "<!डॉक्टाइप html>\n<html><body><p>नमस्ते</p></body></html>"

	repaired := RepairDoctype(markup)
	if !strings.Contains(repaired, Doctype) {
		t.Errorf("Expected canonical doctype, got:\n%s", repaired)
	}
	if strings.Contains(repaired, "डॉक्टाइप") {
		t.Error("Expected artifact to be removed")
	}
}

func TestRepairDoctype_NoOpWhenAbsent(t *testing.T) {
	markup := "<!DOCTYPE html>\n<html><body><p>fine as is</p></body></html>"

	repaired := RepairDoctype(markup)
	if repaired != markup {
		t.Error("Expected byte-identical no-op when no artifact present")
	}
}

func TestRepairDoctype_Idempotent(t *testing.T) {
	markup := "<!डॉक्टाइप html><html></html>"

	once := RepairDoctype(markup)
	twice := RepairDoctype(once)
	if once != twice {
		t.Error("Expected repair to be idempotent")
	}
}

func TestRepairDoctype_CustomArtifacts(t *testing.T) {
	markup := "<!DOKTYP html><html></html>"

	repaired := RepairDoctype(markup, "<!DOKTYP html>")
	if !strings.HasPrefix(repaired, Doctype) {
		t.Errorf("Expected custom artifact repaired, got:\n%s", repaired)
	}
}

func TestStampLanguage(t *testing.T) {
	out, err := StampLanguage("<html><body><p>नमस्ते</p></body></html>", sitrans.LanguagePair{Source: "en", Target: "hi"})
	if err != nil {
		t.Fatalf("StampLanguage failed: %v", err)
	}
	if !strings.Contains(out, `lang="hi"`) {
		t.Errorf("Expected lang attribute:\n%s", out)
	}
	if !strings.Contains(out, `dir="ltr"`) {
		t.Errorf("Expected dir attribute:\n%s", out)
	}
}

func TestStampLanguage_RTL(t *testing.T) {
	out, err := StampLanguage("<html><body></body></html>", sitrans.LanguagePair{Source: "en", Target: "ar"})
	if err != nil {
		t.Fatalf("StampLanguage failed: %v", err)
	}
	if !strings.Contains(out, `dir="rtl"`) {
		t.Errorf("Expected rtl direction for Arabic:\n%s", out)
	}
}

func TestFormat_Indents(t *testing.T) {
	out, err := Format("<html><head><title>T</title></head><body><div><p>Hello</p></div></body></html>")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	for _, want := range []string{
		"<html>\n",
		"  <head>\n",
		"    <title>T</title>\n",
		"    <div>\n",
		"      <p>Hello</p>\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected formatted output to contain %q:\n%s", want, out)
		}
	}
}

func TestFormat_Idempotent(t *testing.T) {
	input := `<!DOCTYPE html><html><head><title>Catalog</title></head><body>
	<div class="wrap"><h1>Welcome</h1><p>Free   courses</p>
	<img src="x.png" alt="logo"><pre>  keep
  this  </pre></div></body></html>`

	once, err := Format(input)
	if err != nil {
		t.Fatalf("First format failed: %v", err)
	}
	twice, err := Format(once)
	if err != nil {
		t.Fatalf("Second format failed: %v", err)
	}
	if once != twice {
		t.Errorf("Expected formatting to be idempotent.\nFirst:\n%s\nSecond:\n%s", once, twice)
	}
}

func TestFormat_PreservesVerbatimContent(t *testing.T) {
	out, err := Format("<html><body><div><pre>line one\n  line two</pre><p>x</p></div></body></html>")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(out, "line one\n  line two") {
		t.Errorf("Expected pre content untouched:\n%s", out)
	}
}

func TestFinalize(t *testing.T) {
	markup := "<!डॉक्टाइप html><html><body><div><p>नमस्ते</p></div></body></html>"

	out, err := Finalize(markup, sitrans.LanguagePair{Source: "en", Target: "hi"})
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	if !strings.HasPrefix(out, Doctype+"\n") {
		t.Errorf("Expected output to start with the canonical doctype:\n%s", out)
	}
	if !strings.Contains(out, `lang="hi"`) {
		t.Errorf("Expected lang stamp:\n%s", out)
	}
	if !strings.Contains(out, "नमस्ते") {
		t.Errorf("Expected content preserved:\n%s", out)
	}
}

func TestFinalize_Idempotent(t *testing.T) {
	markup := "<!DOCTYPE html><html><body><div><p>Hello</p></div></body></html>"
	pair := sitrans.LanguagePair{Source: "en", Target: "hi"}

	once, err := Finalize(markup, pair)
	if err != nil {
		t.Fatalf("First finalize failed: %v", err)
	}
	twice, err := Finalize(once, pair)
	if err != nil {
		t.Fatalf("Second finalize failed: %v", err)
	}
	if once != twice {
		t.Errorf("Expected finalize to be idempotent.\nFirst:\n%s\nSecond:\n%s", once, twice)
	}
}
