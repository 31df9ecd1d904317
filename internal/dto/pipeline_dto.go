package dto

import (
	"encoding/json"
	"fmt"

	"ai-lessonplan-be/internal/constant"
	"ai-lessonplan-be/pkg/pipeline"
)

// StageRequest is the sealed set of request shapes the generation
// endpoint accepts, one per stage key.
type StageRequest interface {
	StageKey() string
}

// Stage0Request starts (or restarts) a session and runs the combined
// curriculum + objectives stage.
type Stage0Request struct {
	SessionId   string                 `json:"session_id"`
	Title       string                 `json:"title"`
	Subject     string                 `json:"subject" validate:"required"`
	LessonTopic string                 `json:"lesson_topic" validate:"required"`
	Level       string                 `json:"level" validate:"required"`
	NumStudents int                    `json:"num_students" validate:"required,gt=0"`
	StudyPeriod int                    `json:"study_period" validate:"required,gt=0"`
	StudentType []pipeline.StudentType `json:"student_type" validate:"required,min=1"`
}

func (Stage0Request) StageKey() string { return constant.StageCombinedCurriculum }

// Stage1Request runs the combined plan + evaluation stage on an
// existing session.
type Stage1Request struct {
	SessionId string `json:"session_id" validate:"required,uuid"`
}

func (Stage1Request) StageKey() string { return constant.StageCombinedPlan }

// Parallel12Request runs the objectives and activity-design stages
// concurrently on a session whose curriculum stage committed.
type Parallel12Request struct {
	SessionId string `json:"session_id" validate:"required,uuid"`
}

func (Parallel12Request) StageKey() string { return constant.StageParallel12 }

// BatchRequest generates several complete lesson plans in one call,
// without touching any session.
type BatchRequest struct {
	Items []pipeline.BatchItem `json:"items" validate:"required,min=1,max=10"`
}

func (BatchRequest) StageKey() string { return constant.StageBatch }

// LegacyStageRequest serves the original four-step flow. Stage
// "legacy-0" additionally accepts the session setup fields.
type LegacyStageRequest struct {
	Stage       string                 `json:"-"`
	SessionId   string                 `json:"session_id"`
	Title       string                 `json:"title"`
	Subject     string                 `json:"subject"`
	LessonTopic string                 `json:"lesson_topic"`
	Level       string                 `json:"level"`
	NumStudents int                    `json:"num_students"`
	StudyPeriod int                    `json:"study_period"`
	StudentType []pipeline.StudentType `json:"student_type"`
}

func (r LegacyStageRequest) StageKey() string { return r.Stage }

// ParseStageRequest decodes the request body into the shape matching
// the stage key.
func ParseStageRequest(stage string, body []byte) (StageRequest, error) {
	switch stage {
	case constant.StageCombinedCurriculum:
		var req Stage0Request
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, err
		}
		return req, nil
	case constant.StageCombinedPlan:
		var req Stage1Request
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, err
		}
		return req, nil
	case constant.StageParallel12:
		var req Parallel12Request
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, err
		}
		return req, nil
	case constant.StageBatch:
		var req BatchRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, err
		}
		return req, nil
	case constant.StageLegacyCurriculum, constant.StageLegacyObjectives,
		constant.StageLegacyPlan, constant.StageLegacyEvaluation:
		var req LegacyStageRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, err
		}
		req.Stage = stage
		return req, nil
	default:
		return nil, fmt.Errorf("unknown stage key %q", stage)
	}
}

type Stage0Response struct {
	SessionId  string                     `json:"session_id"`
	ConfigStep int                        `json:"config_step"`
	Curriculum *pipeline.CurriculumResult `json:"curriculum"`
	Objectives *pipeline.ObjectivesResult `json:"objectives"`
}

type Stage1Response struct {
	SessionId  string                     `json:"session_id"`
	ConfigStep int                        `json:"config_step"`
	LessonPlan *pipeline.LessonPlanResult `json:"lesson_plan"`
	Evaluation *pipeline.EvaluationResult `json:"evaluation"`
}

type Parallel12Response struct {
	SessionId  string                     `json:"session_id"`
	ConfigStep int                        `json:"config_step"`
	Objectives *pipeline.ObjectivesResult `json:"objectives"`
	LessonPlan *pipeline.LessonPlanResult `json:"lesson_plan"`
}

type BatchResponse struct {
	Results []pipeline.BatchResult `json:"results"`
}

type LegacyStageResponse struct {
	SessionId  string      `json:"session_id"`
	Stage      string      `json:"stage"`
	ConfigStep int         `json:"config_step"`
	Result     interface{} `json:"result"`
}

type FollowUpRequest struct {
	SessionId string `json:"session_id" validate:"required,uuid"`
	Question  string `json:"question" validate:"required"`
}

type FollowUpResponse struct {
	SessionId string `json:"session_id"`
	Answer    string `json:"answer"`
}

type HealthResponse struct {
	Status       string          `json:"status"`
	CorpusChunks int             `json:"corpus_chunks"`
	Features     map[string]bool `json:"features"`
}
