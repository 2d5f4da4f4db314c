package model

// Course groups uploaded materials and tutoring sessions.
// swagger:model Course
type Course struct {
	BaseModel
	Title       string `gorm:"size:255;not null" json:"title"`
	Code        string `gorm:"size:50;index" json:"code"`
	Description string `gorm:"type:text" json:"description"`
	OwnerID     uint   `gorm:"index;type:bigint unsigned" json:"ownerId"`
	Archived    bool   `gorm:"default:false" json:"archived"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseEnrollment links a student to a course.
type CourseEnrollment struct {
	BaseModel
	CourseID  uint `gorm:"index:idx_course_student,unique;type:bigint unsigned" json:"courseId"`
	StudentID uint `gorm:"index:idx_course_student,unique;type:bigint unsigned" json:"studentId"`
}

func (CourseEnrollment) TableName() string {
	return "course_enrollments"
}
