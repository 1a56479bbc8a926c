package domain

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// TechPack is the structured manufacturing document being edited.
// It holds one value per recognised section; a section's value always
// matches its declared shape.
type TechPack struct {
	// ProductID is the unique identifier of the product.
	ProductID string

	// Sections maps section identifiers to their current values.
	Sections map[string]Value

	// CreatedAt is when the tech pack was first created.
	CreatedAt time.Time

	// UpdatedAt is when the tech pack was last modified.
	UpdatedAt time.Time
}

// NewDefaultTechPack creates a tech pack with every section seeded from
// its registry default. The product name section is set to name.
func NewDefaultTechPack(productID, name string) *TechPack {
	now := time.Now().UTC()
	tp := &TechPack{
		ProductID: productID,
		Sections:  make(map[string]Value, len(sectionOrder)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, s := range sectionOrder {
		tp.Sections[s] = DefaultValueOf(s)
	}
	if name != "" {
		tp.Sections[SectionProductName] = Scalar(name)
	}
	return tp
}

// Section returns the current value of a section, falling back to the
// registry default when the section has never been set.
func (t *TechPack) Section(section string) Value {
	if v, ok := t.Sections[section]; ok && v != nil {
		return v
	}
	return DefaultValueOf(section)
}

// SetSection replaces or nests a section value. The value must already be
// shape-valid; callers route candidates through Coerce first. When field
// is non-empty only that nested key of an object-shaped section changes.
func (t *TechPack) SetSection(section, field string, value Value) error {
	if !KnownSection(section) {
		return ErrUnknownSection
	}
	if field != "" {
		obj, ok := t.Section(section).(Object)
		if !ok {
			obj = DefaultValueOf(section).(Object)
		} else {
			obj = obj.Clone().(Object)
		}
		obj[field] = value
		t.Sections[section] = obj
	} else {
		t.Sections[section] = value
	}
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// Summary renders a bounded plain-text description of the tech pack for
// use as grounding context in completion prompts. Long scalar sections
// are truncated; list sections render at most maxListEntries entries.
func (t *TechPack) Summary() string {
	const (
		maxScalarLen    = 400
		maxListEntries  = 12
		maxObjectFields = 12
	)

	var b strings.Builder
	for _, section := range sectionOrder {
		v := t.Section(section)
		b.WriteString(section)
		b.WriteString(": ")
		switch val := v.(type) {
		case Scalar:
			b.WriteString(truncate(string(val), maxScalarLen))
		case List:
			if len(val) == 0 {
				b.WriteString("(empty)")
				break
			}
			n := len(val)
			if n > maxListEntries {
				n = maxListEntries
			}
			entries := make([]string, 0, n)
			for _, el := range val[:n] {
				entries = append(entries, renderListEntry(el))
			}
			b.WriteString(strings.Join(entries, "; "))
		case Object:
			keys := make([]string, 0, len(val))
			for k := range val {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			if len(keys) > maxObjectFields {
				keys = keys[:maxObjectFields]
			}
			parts := make([]string, 0, len(keys))
			for _, k := range keys {
				parts = append(parts, k+"="+renderListEntry(val[k]))
			}
			b.WriteString(strings.Join(parts, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderListEntry renders one value compactly for summaries.
func renderListEntry(v Value) string {
	switch val := v.(type) {
	case Scalar:
		return string(val)
	case Record:
		keys := make([]string, 0, len(val))
		for k := range val {
			if val[k] != "" {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+"="+val[k])
		}
		return strings.Join(parts, " ")
	case List:
		parts := make([]string, 0, len(val))
		for _, el := range val {
			parts = append(parts, renderListEntry(el))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case Object:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+"="+renderListEntry(val[k]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return ""
}

// truncate shortens s to max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "…"
}
