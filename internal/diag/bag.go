package diag

import (
	"rplc/internal/source"
)

type Bag struct {
	items []Diagnostic
}

func NewBag() *Bag {
	return &Bag{items: make([]Diagnostic, 0, 8)}
}

// Add добавляет диагностику в конец. Порядок вставки сохраняется:
// он и есть порядок применения правил, и он детерминирован.
func (b *Bag) Add(d Diagnostic) {
	b.items = append(b.items, d)
}

// Report is shorthand for Add(New(detail, primary)).
func (b *Bag) Report(detail Detail, primary source.Span) {
	b.Add(New(detail, primary))
}

// HasErrors возвращает true, если есть хотя бы одна ошибка.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity == SevError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether the bag holds at least one warning.
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity == SevWarning {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of error-severity diagnostics.
func (b *Bag) ErrorCount() int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity == SevError {
			n++
		}
	}
	return n
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items возвращает read-only slice диагностик.
// ВАЖНО: не модифицируйте возвращаемый срез!
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge appends all diagnostics from another bag, preserving order.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
}
