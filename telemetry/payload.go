package telemetry

import "sort"

// Payload is a decoded status or environmental snapshot keyed by the vendor's short field code. Values are scalars
// or a [previous, current] pair, of which only the current element is considered.
type Payload map[string]any

// Current resolves the value of a field, unwrapping [previous, current] pairs. A pair of any other length is
// malformed and resolves as missing.
func (p Payload) Current(field string) (any, bool) {
	v, found := p[field]
	if !found || v == nil {
		return nil, false
	}

	switch pair := v.(type) {
	case []any:
		if len(pair) != 2 || pair[1] == nil {
			return nil, false
		}
		return pair[1], true
	case []string:
		if len(pair) != 2 {
			return nil, false
		}
		return pair[1], true
	}

	return v, true
}

// Present returns true if the field exists and resolves to a non nil value.
func (p Payload) Present(field string) bool {
	_, ok := p.Current(field)
	return ok
}

// PresentAll returns true only if every field is present, an empty list is trivially present.
func (p Payload) PresentAll(fields ...string) bool {
	for _, f := range fields {
		if !p.Present(f) {
			return false
		}
	}

	return true
}

func (p Payload) PresentAny(fields ...string) bool {
	for _, f := range fields {
		if p.Present(f) {
			return true
		}
	}

	return false
}

// CountPresent returns how many of the fields are present.
func (p Payload) CountPresent(fields ...string) int {
	n := 0

	for _, f := range fields {
		if p.Present(f) {
			n++
		}
	}

	return n
}

// Fields returns every key in the payload, including those with nil values, sorted.
func (p Payload) Fields() []string {
	fields := make([]string, 0, len(p))

	for k := range p {
		fields = append(fields, k)
	}

	sort.Strings(fields)

	return fields
}

// Empty is true for both a nil and a zero length payload.
func (p Payload) Empty() bool {
	return len(p) == 0
}
