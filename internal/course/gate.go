// Package course holds the client-side completion rules for enrolled
// courses.
package course

import (
	"strings"

	"github.com/careerhub/frontdesk/types"
)

// CanComplete reports whether every curriculum lesson title appears,
// case-insensitively, in the enrollment's completed lessons. A course with
// no lessons cannot be completed.
func CanComplete(c types.Course, e types.Enrollment) bool {
	lessons := c.Lessons()
	if len(lessons) == 0 {
		return false
	}
	done := make(map[string]struct{}, len(e.CompletedLessons))
	for _, title := range e.CompletedLessons {
		done[normalize(title)] = struct{}{}
	}
	for _, lesson := range lessons {
		if _, ok := done[normalize(lesson.Title)]; !ok {
			return false
		}
	}
	return true
}

// Remaining lists curriculum lessons not yet completed, in order.
func Remaining(c types.Course, e types.Enrollment) []types.Lesson {
	done := make(map[string]struct{}, len(e.CompletedLessons))
	for _, title := range e.CompletedLessons {
		done[normalize(title)] = struct{}{}
	}
	var remaining []types.Lesson
	for _, lesson := range c.Lessons() {
		if _, ok := done[normalize(lesson.Title)]; !ok {
			remaining = append(remaining, lesson)
		}
	}
	return remaining
}

// IsLessonCompleted reports whether title is among the completed lessons.
func IsLessonCompleted(e types.Enrollment, title string) bool {
	want := normalize(title)
	for _, done := range e.CompletedLessons {
		if normalize(done) == want {
			return true
		}
	}
	return false
}

func normalize(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
