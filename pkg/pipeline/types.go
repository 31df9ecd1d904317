package pipeline

import "ai-lessonplan-be/pkg/agent"

// StudentType describes one learner group in an inclusive classroom
// and its share of the class.
type StudentType struct {
	Type       string  `json:"type"`
	Percentage float64 `json:"percentage"`
}

// CurriculumResult is the outcome of the curriculum stage: the selected
// standard, its indicators and the summarized learning content.
type CurriculumResult struct {
	LearningArea      string            `json:"learning_area"`
	Standard          string            `json:"standard"`
	InterimIndicators string            `json:"interim_indicators"`
	FinalIndicators   string            `json:"final_indicators"`
	SelectionReason   string            `json:"selection_reason"`
	Content           map[string]string `json:"content"`
	KeyContent        string            `json:"key_content"`
}

// ObjectivesResult carries the behavioral objectives plus the fixed
// national key competencies.
type ObjectivesResult struct {
	Objectives      []string          `json:"objectives"`
	KeyCompetencies map[string]string `json:"key_competencies"`
}

// LessonPlanResult is the outcome of the activity-design stage.
type LessonPlanResult struct {
	Activities        map[string]interface{} `json:"activities"`
	TeachingMaterials map[string]string      `json:"teaching_materials"`
	EnhancedData      *agent.Bundle          `json:"enhanced_data,omitempty"`
	SearchMetadata    agent.Metadata         `json:"search_metadata"`
	TotalMinutes      int                    `json:"total_minutes"`
}

// EvaluationResult is the outcome of the evaluation-design stage.
type EvaluationResult struct {
	Evaluation map[string]string `json:"evaluation"`
}

type CurriculumInput struct {
	Subject string
	Topic   string
	Level   string
}

type ObjectivesInput struct {
	Subject      string
	Topic        string
	Level        string
	Content      string
	NumStudents  int
	StudyPeriod  int
	StudentTypes string
}

type LessonPlanInput struct {
	Subject      string
	Topic        string
	Level        string
	Objectives   []string
	Content      string
	NumStudents  int
	StudyPeriod  int
	StudentTypes string
}

type EvaluationInput struct {
	Objectives   []string
	Activities   string
	StudentTypes string
}
