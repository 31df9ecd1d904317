package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Session is one lesson plan generation session. The generation stages
// fill the result columns progressively; ConfigStep is the cursor for
// the furthest committed stage.
type Session struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId      uuid.UUID `gorm:"type:uuid;index"`
	Title       string
	ConfigStep  int    // -1 = nothing committed yet
	Mode        string // "combined", "legacy", "parallel"
	Subject     string
	LessonTopic string
	Level       string
	NumStudents int
	StudyPeriod int
	StudentType datatypes.JSON

	// Curriculum stage results
	LearningArea      string
	Standard          string
	InterimIndicators string
	FinalIndicators   string
	Content           datatypes.JSON
	KeyContent        string

	// Objectives stage results
	Objectives      datatypes.JSON
	KeyCompetencies datatypes.JSON

	// Plan and evaluation stage results
	LessonPlan        datatypes.JSON
	TeachingMaterials datatypes.JSON
	EnhancedData      datatypes.JSON
	SearchMetadata    datatypes.JSON
	Evaluation        datatypes.JSON

	CreatedAt time.Time
	UpdatedAt *time.Time
}

func (Session) TableName() string {
	return "lesson_sessions"
}
