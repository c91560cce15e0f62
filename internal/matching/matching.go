// Package matching computes shared courses, availability overlaps and ranked
// study-partner suggestions. All functions are pure over user snapshots.
package matching

import (
	"sort"
	"strings"

	"github.com/spec-kit/study-match/internal/domain"
)

// Match pairs a candidate with the mutual courses and overlapping
// availability that qualify them.
type Match struct {
	User                    domain.User
	SharedCourses           []string
	OverlappingAvailability []string
	Score                   int
}

// SearchFilter narrows classmate search results. Zero-value fields skip
// their stage.
type SearchFilter struct {
	Course       string
	Major        string
	Availability []string
}

// SharedCourses returns the courses both users take, without duplicates,
// enumerated in a's insertion order.
func SharedCourses(a, b domain.User) []string {
	return intersect(a.Courses, b.Courses)
}

// OverlappingAvailability returns the time slots both users marked
// available. Slots are opaque tokens compared by exact equality.
func OverlappingAvailability(a, b domain.User) []string {
	return intersect(a.Availability, b.Availability)
}

// SuggestedMatches ranks every candidate sharing at least one course and one
// time slot with self, descending by score. Equal scores keep candidate
// enumeration order.
func SuggestedMatches(self domain.User, candidates []domain.User) []Match {
	matches := []Match{}
	for _, candidate := range candidates {
		if candidate.ID == self.ID {
			continue
		}
		mutual := SharedCourses(self, candidate)
		overlap := OverlappingAvailability(self, candidate)
		if len(mutual) == 0 || len(overlap) == 0 {
			continue
		}
		matches = append(matches, Match{
			User:                    candidate,
			SharedCourses:           mutual,
			OverlappingAvailability: overlap,
			Score:                   len(mutual) + len(overlap),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// SearchClassmates filters candidates against self. Results keep input
// enumeration order and carry the shared courses and overlap with self.
func SearchClassmates(self domain.User, candidates []domain.User, filter SearchFilter) []Match {
	major := strings.TrimSpace(filter.Major)

	results := []Match{}
	for _, candidate := range candidates {
		if candidate.ID == self.ID {
			continue
		}
		if filter.Course != "" && !contains(candidate.Courses, filter.Course) {
			continue
		}
		mutual := SharedCourses(self, candidate)
		overlap := OverlappingAvailability(self, candidate)
		if major != "" && !strings.EqualFold(strings.TrimSpace(candidate.Major), major) {
			continue
		}
		if len(filter.Availability) > 0 && len(intersect(overlap, filter.Availability)) == 0 {
			continue
		}
		results = append(results, Match{
			User:                    candidate,
			SharedCourses:           mutual,
			OverlappingAvailability: overlap,
			Score:                   len(mutual) + len(overlap),
		})
	}
	return results
}

func intersect(left, right []string) []string {
	members := make(map[string]struct{}, len(right))
	for _, value := range right {
		members[value] = struct{}{}
	}

	out := []string{}
	emitted := make(map[string]struct{})
	for _, value := range left {
		if _, ok := members[value]; !ok {
			continue
		}
		if _, dup := emitted[value]; dup {
			continue
		}
		emitted[value] = struct{}{}
		out = append(out, value)
	}
	return out
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
