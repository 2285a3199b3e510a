package capability

import (
	"sort"
	"strings"
)

// Set is an immutable collection of tags, the zero value is an empty set.
type Set struct {
	m map[Tag]struct{}
}

func NewSet(tags ...Tag) Set {
	s := Set{m: make(map[Tag]struct{}, len(tags))}

	for _, t := range tags {
		s.m[t] = struct{}{}
	}

	return s
}

func (s Set) Has(t Tag) bool {
	_, found := s.m[t]
	return found
}

func (s Set) HasAny(tags ...Tag) bool {
	for _, t := range tags {
		if s.Has(t) {
			return true
		}
	}

	return false
}

func (s Set) HasAll(tags ...Tag) bool {
	for _, t := range tags {
		if !s.Has(t) {
			return false
		}
	}

	return true
}

// Count returns how many of tags are members of the set.
func (s Set) Count(tags ...Tag) int {
	n := 0

	for _, t := range tags {
		if s.Has(t) {
			n++
		}
	}

	return n
}

func (s Set) Len() int {
	return len(s.m)
}

// Union returns a new set, neither receiver nor argument is modified.
func (s Set) Union(o Set) Set {
	u := Set{m: make(map[Tag]struct{}, len(s.m)+len(o.m))}

	for t := range s.m {
		u.m[t] = struct{}{}
	}

	for t := range o.m {
		u.m[t] = struct{}{}
	}

	return u
}

// Tags returns the members in declaration order.
func (s Set) Tags() []Tag {
	tags := make([]Tag, 0, len(s.m))

	for t := range s.m {
		tags = append(tags, t)
	}

	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })

	return tags
}

// Names returns the standard names of the members in declaration order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s.m))

	for _, t := range s.Tags() {
		names = append(names, t.String())
	}

	return names
}

func (s Set) String() string {
	return "{" + strings.Join(s.Names(), ", ") + "}"
}
