package validation

import (
	"fmt"
	"strings"
)

// SkillList is an ordered multi-value input. It refuses blank entries, exact duplicates
// (case-sensitive) and anything beyond its capacity. Refusals are silent: a full list is
// a capacity limit, not a validation failure.
type SkillList struct {
	skills []string
	max    int
}

// NewSkillList copies skills into a list. maxSkills <= 0 means unlimited.
func NewSkillList(skills []string, maxSkills int) *SkillList {
	return &SkillList{
		skills: append([]string(nil), skills...),
		max:    max(maxSkills, 0),
	}
}

// Add appends the trimmed skill and reports whether the list changed.
func (l *SkillList) Add(skill string) bool {
	skill = strings.TrimSpace(skill)
	if skill == "" || l.Contains(skill) || l.Full() {
		return false
	}
	l.skills = append(l.skills, skill)
	return true
}

// Remove deletes the skill at index i.
func (l *SkillList) Remove(i int) bool {
	if i < 0 || i >= len(l.skills) {
		return false
	}
	l.skills = append(l.skills[:i], l.skills[i+1:]...)
	return true
}

// RemoveLast deletes the final skill (backspace on an empty input).
func (l *SkillList) RemoveLast() bool {
	return l.Remove(len(l.skills) - 1)
}

// Contains reports whether skill is already present (exact match).
func (l *SkillList) Contains(skill string) bool {
	for _, s := range l.skills {
		if s == skill {
			return true
		}
	}
	return false
}

// Len returns the number of skills.
func (l *SkillList) Len() int {
	return len(l.skills)
}

// Full reports whether the list is at capacity.
func (l *SkillList) Full() bool {
	return l.max > 0 && len(l.skills) >= l.max
}

// Remaining returns the free capacity, or -1 when unlimited.
func (l *SkillList) Remaining() int {
	if l.max == 0 {
		return -1
	}
	return max(l.max-len(l.skills), 0)
}

// Items returns a copy of the skills in order.
func (l *SkillList) Items() []string {
	return append([]string(nil), l.skills...)
}

// Suggestions filters candidates by case-insensitive substring match on input,
// excluding skills already in the list.
func (l *SkillList) Suggestions(input string, candidates []string) []string {
	needle := strings.ToLower(strings.TrimSpace(input))
	if needle == "" {
		return nil
	}
	var out []string
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c), needle) && !l.Contains(c) {
			out = append(out, c)
		}
	}
	return out
}

// Validate checks the list as a unit. Lists built through Add always pass the
// duplicate and capacity checks; lists seeded from stored data may not.
func (l *SkillList) Validate(label string, required bool) Result {
	if required && len(l.skills) == 0 {
		return invalid(label + " is required")
	}
	seen := make(map[string]bool, len(l.skills))
	for _, s := range l.skills {
		if seen[s] {
			return invalid(label + " contains duplicate entries")
		}
		seen[s] = true
	}
	if l.max > 0 && len(l.skills) > l.max {
		return invalid(fmt.Sprintf("%s must have at most %d entries", label, l.max))
	}
	return valid
}
