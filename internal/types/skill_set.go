// Package types provides type definitions for structured data used throughout the job matcher.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"sort"
)

// SkillSet is a set of normalized skill tokens. Order is irrelevant.
type SkillSet map[string]struct{}

// NewSkillSet builds a set from the given skills, dropping empty entries
func NewSkillSet(skills ...string) SkillSet {
	s := make(SkillSet, len(skills))
	for _, skill := range skills {
		s.Add(skill)
	}
	return s
}

// Add inserts a skill. Empty strings are ignored.
func (s SkillSet) Add(skill string) {
	if skill == "" {
		return
	}
	s[skill] = struct{}{}
}

// Has reports whether the skill is present
func (s SkillSet) Has(skill string) bool {
	_, ok := s[skill]
	return ok
}

// Len returns the number of skills
func (s SkillSet) Len() int {
	return len(s)
}

// Union adds every skill from other
func (s SkillSet) Union(other SkillSet) {
	for skill := range other {
		s[skill] = struct{}{}
	}
}

// Intersect returns the skills present in both sets
func (s SkillSet) Intersect(other SkillSet) SkillSet {
	out := make(SkillSet)
	for skill := range s {
		if other.Has(skill) {
			out[skill] = struct{}{}
		}
	}
	return out
}

// Difference returns the skills in s that are missing from other
func (s SkillSet) Difference(other SkillSet) SkillSet {
	out := make(SkillSet)
	for skill := range s {
		if !other.Has(skill) {
			out[skill] = struct{}{}
		}
	}
	return out
}

// Sorted returns the skills in lexical order
func (s SkillSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for skill := range s {
		out = append(out, skill)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON encodes the set as a sorted array
func (s SkillSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes an array of skills
func (s *SkillSet) UnmarshalJSON(data []byte) error {
	var skills []string
	if err := json.Unmarshal(data, &skills); err != nil {
		return err
	}
	*s = NewSkillSet(skills...)
	return nil
}
