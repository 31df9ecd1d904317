package dto

import "time"

type UpdateSessionRequest struct {
	Title string `json:"title" validate:"required,max=200"`
}

type SessionSummaryResponse struct {
	Id          string    `json:"id"`
	Title       string    `json:"title"`
	Subject     string    `json:"subject"`
	LessonTopic string    `json:"lesson_topic"`
	Level       string    `json:"level"`
	ConfigStep  int       `json:"config_step"`
	Mode        string    `json:"mode"`
	CreatedAt   time.Time `json:"created_at"`
}

type SessionDetailResponse struct {
	SessionSummaryResponse
	NumStudents       int         `json:"num_students"`
	StudyPeriod       int         `json:"study_period"`
	StudentType       interface{} `json:"student_type"`
	LearningArea      string      `json:"learning_area"`
	Standard          string      `json:"standard"`
	InterimIndicators string      `json:"interim_indicators"`
	FinalIndicators   string      `json:"final_indicators"`
	Content           interface{} `json:"content"`
	KeyContent        string      `json:"key_content"`
	Objectives        interface{} `json:"objectives"`
	KeyCompetencies   interface{} `json:"key_competencies"`
	LessonPlan        interface{} `json:"lesson_plan"`
	TeachingMaterials interface{} `json:"teaching_materials"`
	Evaluation        interface{} `json:"evaluation"`
}
