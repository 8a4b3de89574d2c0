package sitrans

import "testing"

func TestGetLanguageName(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"hi_IN", "Hindi (India)"},
		{"hi", "Hindi (India)"},
		{"es_ES", "Spanish (Spain)"},
		{"xx_XX", "xx_XX"}, // Unknown falls back to the code
	}

	for _, tt := range tests {
		if got := GetLanguageName(tt.code); got != tt.want {
			t.Errorf("GetLanguageName(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestGetDirection(t *testing.T) {
	if got := GetDirection("ar_SA"); got != "rtl" {
		t.Errorf("Expected rtl for Arabic, got %q", got)
	}
	if got := GetDirection("hi"); got != "ltr" {
		t.Errorf("Expected ltr for Hindi, got %q", got)
	}
	if !IsRTL("he") {
		t.Error("Expected Hebrew to be RTL")
	}
}

func TestBaseLang(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"en_US", "en"},
		{"en-GB", "en"},
		{"HI", "hi"},
		{"hi", "hi"},
	}

	for _, tt := range tests {
		if got := BaseLang(tt.code); got != tt.want {
			t.Errorf("BaseLang(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestNormalizePair(t *testing.T) {
	pair, err := NormalizePair(LanguagePair{Source: "en_US", Target: "hi"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if pair.Source != "en" {
		t.Errorf("Expected source 'en', got %q", pair.Source)
	}
	if pair.Target != "hi" {
		t.Errorf("Expected target 'hi', got %q", pair.Target)
	}
}

func TestNormalizePair_KeepsTargetLocale(t *testing.T) {
	pair, err := NormalizePair(LanguagePair{Source: "en", Target: "es_MX"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if pair.Target != "es_MX" {
		t.Errorf("Expected target locale preserved, got %q", pair.Target)
	}
}

func TestNormalizePair_Invalid(t *testing.T) {
	if _, err := NormalizePair(LanguagePair{Source: "!!", Target: "hi"}); err == nil {
		t.Error("Expected error for invalid source code")
	}
	if _, err := NormalizePair(LanguagePair{Source: "en", Target: "!!"}); err == nil {
		t.Error("Expected error for invalid target code")
	}
}

func TestContainsScript(t *testing.T) {
	hindi := ScriptRanges("hi")
	if hindi == nil {
		t.Fatal("Expected script ranges for Hindi")
	}

	if ContainsScript("Hello World", hindi) {
		t.Error("Latin text should not contain Devanagari")
	}
	if !ContainsScript("नमस्ते", hindi) {
		t.Error("Expected Devanagari text to match")
	}
	if !ContainsScript("Mixed नमस्ते text", hindi) {
		t.Error("Expected mixed text to match")
	}

	if ScriptRanges("es") != nil {
		t.Error("Expected no script ranges for a Latin-script language")
	}
	if ContainsScript("anything", nil) {
		t.Error("Nil ranges never match")
	}
}
