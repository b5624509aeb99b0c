// Package currency formats monetary totals for display in a fixed locale.
package currency

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	DefaultCode   = "BRL"
	DefaultLocale = "pt-BR"
)

type Formatter struct {
	unit    currency.Unit
	tag     language.Tag
	printer *message.Printer
}

// New builds a Formatter for an ISO 4217 code and a BCP 47 locale.
func New(code, locale string) (*Formatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("parse currency %q: %w", code, err)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	return &Formatter{
		unit:    unit,
		tag:     tag,
		printer: message.NewPrinter(tag),
	}, nil
}

// Default returns the BRL / pt-BR formatter.
func Default() *Formatter {
	f, err := New(DefaultCode, DefaultLocale)
	if err != nil {
		panic(err)
	}
	return f
}

// Format renders amount with the locale's currency symbol, grouping and
// decimal separators, e.g. "R$ 1.234,50".
func (f *Formatter) Format(amount float64) string {
	return f.printer.Sprint(currency.Symbol(f.unit.Amount(amount)))
}

func (f *Formatter) Code() string {
	return f.unit.String()
}

func (f *Formatter) Locale() string {
	return f.tag.String()
}
