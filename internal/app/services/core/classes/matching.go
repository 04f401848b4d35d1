package classes

import (
	"class-registration-service/internal/app/contracts"
	"class-registration-service/internal/app/models"
	"class-registration-service/internal/pkg/constvars"
	"sort"
	"strings"
)

// Predicate decides whether a class can be offered.
type Predicate func(class *models.Class) bool

// All is true when every predicate is.
func All(predicates ...Predicate) Predicate {
	return func(class *models.Class) bool {
		for _, predicate := range predicates {
			if !predicate(class) {
				return false
			}
		}
		return true
	}
}

func attributeEquals(want string, get func(*models.Class) string) Predicate {
	want = strings.TrimSpace(want)
	return func(class *models.Class) bool {
		if want == "" {
			return true
		}
		return strings.EqualFold(strings.TrimSpace(get(class)), want)
	}
}

func MatchProduct(product string) Predicate {
	return attributeEquals(product, func(c *models.Class) string { return c.Product })
}

func MatchLevel(level string) Predicate {
	return attributeEquals(level, func(c *models.Class) string { return c.Level })
}

func MatchTeacherType(teacherType string) Predicate {
	return attributeEquals(teacherType, func(c *models.Class) string { return c.TeacherType })
}

func IsOpen(class *models.Class) bool {
	return class.Status == constvars.ClassStatusOpen
}

func HasSeats(class *models.Class) bool {
	return class.SeatsLeft() > 0
}

// CriteriaFor lifts the matching attributes off a student.
func CriteriaFor(student *models.Student) contracts.ClassCriteria {
	return contracts.ClassCriteria{
		Product:     strings.TrimSpace(student.Product),
		Level:       strings.TrimSpace(student.Level),
		TeacherType: strings.TrimSpace(student.TeacherType),
	}
}

// MatchStudent is product AND level AND teacher type, open, with a free seat.
func MatchStudent(student *models.Student) Predicate {
	criteria := CriteriaFor(student)
	return All(
		MatchProduct(criteria.Product),
		MatchLevel(criteria.Level),
		MatchTeacherType(criteria.TeacherType),
		IsOpen,
		HasSeats,
	)
}

// AvailableFor keeps the classes student may pick, earliest start first.
func AvailableFor(student *models.Student, classes []models.Class) []models.Class {
	match := MatchStudent(student)
	available := make([]models.Class, 0, len(classes))
	for i := range classes {
		if match(&classes[i]) {
			available = append(available, classes[i])
		}
	}
	sort.SliceStable(available, func(i, j int) bool {
		if !available[i].StartDate.Equal(available[j].StartDate) {
			return available[i].StartDate.Before(available[j].StartDate)
		}
		return available[i].Code < available[j].Code
	})
	return available
}
