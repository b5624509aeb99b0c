package currency

import (
	"strings"
	"testing"
)

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		locale string
	}{
		{"unknown currency", "XYZW", "pt-BR"},
		{"empty currency", "", "pt-BR"},
		{"malformed locale", "BRL", "not a locale!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.code, tt.locale); err == nil {
				t.Errorf("New(%q, %q) should fail", tt.code, tt.locale)
			}
		})
	}
}

func TestFormatter_BrazilianReal(t *testing.T) {
	f := Default()

	if f.Code() != "BRL" {
		t.Errorf("Code() = %q, want BRL", f.Code())
	}
	if f.Locale() != "pt-BR" {
		t.Errorf("Locale() = %q, want pt-BR", f.Locale())
	}

	got := f.Format(1234.5)
	if !strings.HasPrefix(got, "R$") {
		t.Errorf("Format(1234.5) = %q, want R$ prefix", got)
	}
	if !strings.Contains(got, "1.234,50") {
		t.Errorf("Format(1234.5) = %q, want pt-BR grouping and decimals", got)
	}
}

func TestFormatter_Zero(t *testing.T) {
	got := Default().Format(0)
	if !strings.Contains(got, "0,00") {
		t.Errorf("Format(0) = %q, want a zero amount", got)
	}
}

func TestFormatter_OtherLocale(t *testing.T) {
	f, err := New("USD", "en-US")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got := f.Format(1234.5)
	if !strings.Contains(got, "1,234.50") {
		t.Errorf("Format(1234.5) = %q, want en-US separators", got)
	}
}
