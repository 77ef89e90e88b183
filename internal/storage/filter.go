package storage

// FilterKind discriminates the filter expression variants.
type FilterKind int

const (
	// KindNone matches every record in the collection.
	KindNone FilterKind = iota
	// KindEquals matches records whose field equals the value exactly.
	KindEquals
	// KindContains matches records whose list-valued field contains the value.
	KindContains
	// KindAnd matches records satisfying every part.
	KindAnd
)

// Filter is a small tagged predicate over documents. It replaces the ad hoc
// "field to value-or-set" maps the storage drivers speak natively, so the
// store contract stays precise across implementations.
type Filter struct {
	Kind  FilterKind
	Field string
	Value any
	Parts []Filter
}

// None matches all records.
func None() Filter {
	return Filter{Kind: KindNone}
}

// Equals matches records where field holds exactly value. Comparison is
// case-sensitive for strings.
func Equals(field string, value any) Filter {
	return Filter{Kind: KindEquals, Field: field, Value: value}
}

// Contains matches records where the list-valued field has value as a member.
func Contains(field string, value any) Filter {
	return Filter{Kind: KindContains, Field: field, Value: value}
}

// And combines filters conjunctively. Parts with KindNone are dropped; an
// empty conjunction matches everything.
func And(parts ...Filter) Filter {
	kept := make([]Filter, 0, len(parts))
	for _, p := range parts {
		if p.Kind == KindNone {
			continue
		}
		kept = append(kept, p)
	}
	switch len(kept) {
	case 0:
		return None()
	case 1:
		return kept[0]
	default:
		return Filter{Kind: KindAnd, Parts: kept}
	}
}

// Matches reports whether doc satisfies the filter. It is the reference
// semantics shared by in-memory stores; driver-backed stores translate the
// filter to their native query form instead.
func (f Filter) Matches(doc Document) bool {
	switch f.Kind {
	case KindNone:
		return true
	case KindEquals:
		return doc[f.Field] == f.Value
	case KindContains:
		return listContains(doc[f.Field], f.Value)
	case KindAnd:
		for _, p := range f.Parts {
			if !p.Matches(doc) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func listContains(field, value any) bool {
	switch list := field.(type) {
	case []string:
		for _, v := range list {
			if v == value {
				return true
			}
		}
	case []any:
		for _, v := range list {
			if v == value {
				return true
			}
		}
	}
	return false
}
