package model

import (
	"time"
)

// ConceptMastery tracks how well a student has practiced one curriculum
// concept within a course. One row per (student, course, concept).
// MasteryLevel stays in [0,100]; QuestionsAsked never decreases.
type ConceptMastery struct {
	BaseModel
	StudentID      uint      `gorm:"index:idx_student_course_concept,unique;type:bigint unsigned" json:"studentId"`
	CourseID       uint      `gorm:"index:idx_student_course_concept,unique;type:bigint unsigned" json:"courseId"`
	Concept        string    `gorm:"size:50;index:idx_student_course_concept,unique" json:"concept"`
	MasteryLevel   int       `gorm:"default:0" json:"masteryLevel"`
	QuestionsAsked int       `gorm:"default:0" json:"questionsAsked"`
	LastPracticed  time.Time `json:"lastPracticed"`
}

func (ConceptMastery) TableName() string {
	return "concept_masteries"
}
