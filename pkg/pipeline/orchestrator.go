// Package pipeline implements the staged lesson plan generation flow:
// curriculum retrieval and selection, behavioral objectives, activity
// design with enrichment, and evaluation design.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ai-lessonplan-be/internal/constant"
	"ai-lessonplan-be/internal/pkg/apperrors"
	"ai-lessonplan-be/internal/pkg/logger"
	"ai-lessonplan-be/pkg/agent"
	"ai-lessonplan-be/pkg/extract"
	"ai-lessonplan-be/pkg/llm"
	"ai-lessonplan-be/pkg/prompt"
	"ai-lessonplan-be/pkg/retrieval"
)

type LessonPipeline struct {
	gateway   *llm.Gateway
	retriever *retrieval.Retriever
	registry  *prompt.Registry
	agent     *agent.SearchAgent
	log       logger.ILogger
	topK      int
}

func NewLessonPipeline(gateway *llm.Gateway, retriever *retrieval.Retriever, registry *prompt.Registry, searchAgent *agent.SearchAgent, log logger.ILogger, topK int) *LessonPipeline {
	return &LessonPipeline{
		gateway:   gateway,
		retriever: retriever,
		registry:  registry,
		agent:     searchAgent,
		log:       log,
		topK:      topK,
	}
}

// Retriever exposes the underlying retriever for health probing.
func (p *LessonPipeline) Retriever() *retrieval.Retriever {
	return p.retriever
}

type curriculumSelection struct {
	LearningArea      string `json:"learning_area"`
	Standard          string `json:"standard"`
	InterimIndicators string `json:"interim_indicators"`
	FinalIndicators   string `json:"final_indicators"`
	SelectionReason   string `json:"selection_reason"`
}

type contentSummary struct {
	Content    map[string]string `json:"content"`
	KeyContent string            `json:"key_content"`
}

// StepCurriculum retrieves curriculum passages for the topic, asks the
// model to select the matching standard and indicators, then summarizes
// the learning content. A corpus with no matching standard yields
// ErrCurriculumNotFound.
func (p *LessonPipeline) StepCurriculum(ctx context.Context, in CurriculumInput) (*CurriculumResult, error) {
	idx, err := p.retriever.Index(ctx, in.Subject)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("กลุ่มสาระ: %s เรื่อง: %s ระดับชั้น: %s", in.Subject, in.Topic, in.Level)
	passages, err := p.retriever.Query(ctx, idx, query, p.topK)
	if err != nil {
		return nil, err
	}

	var passageText strings.Builder
	for i, ps := range passages {
		fmt.Fprintf(&passageText, "[%d] %s\n", i+1, ps.Content)
	}

	system, user, err := p.registry.Render(constant.PromptCurriculumSelect, map[string]string{
		"passages": passageText.String(),
		"subject":  in.Subject,
		"topic":    in.Topic,
		"level":    in.Level,
	})
	if err != nil {
		return nil, err
	}

	raw, err := p.gateway.Complete(ctx, system, user, llm.WithTemperature(constant.TemperatureCurriculum))
	if err != nil {
		return nil, err
	}

	var selection curriculumSelection
	if err := extract.Into(raw, &selection); err != nil {
		return nil, err
	}

	if selection.Standard == "" || strings.Contains(selection.Standard, constant.CurriculumNotFoundMarker) {
		p.log.Warn("pipeline", "no curriculum standard matched topic", map[string]interface{}{
			"subject": in.Subject,
			"topic":   in.Topic,
		})
		return nil, fmt.Errorf("topic %q in %q: %w", in.Topic, in.Subject, apperrors.ErrCurriculumNotFound)
	}

	summary, err := p.summarizeContent(ctx, in, &selection)
	if err != nil {
		return nil, err
	}

	return &CurriculumResult{
		LearningArea:      selection.LearningArea,
		Standard:          selection.Standard,
		InterimIndicators: selection.InterimIndicators,
		FinalIndicators:   selection.FinalIndicators,
		SelectionReason:   selection.SelectionReason,
		Content:           summary.Content,
		KeyContent:        summary.KeyContent,
	}, nil
}

func (p *LessonPipeline) summarizeContent(ctx context.Context, in CurriculumInput, selection *curriculumSelection) (*contentSummary, error) {
	indicators := strings.TrimSpace(selection.InterimIndicators + " " + selection.FinalIndicators)

	system, user, err := p.registry.Render(constant.PromptContentSummary, map[string]string{
		"subject":    in.Subject,
		"topic":      in.Topic,
		"level":      in.Level,
		"standard":   selection.Standard,
		"indicators": indicators,
	})
	if err != nil {
		return nil, err
	}

	raw, err := p.gateway.Complete(ctx, system, user, llm.WithTemperature(constant.TemperatureCurriculum))
	if err != nil {
		return nil, err
	}

	var summary contentSummary
	if err := extract.Into(raw, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// StepObjectives writes behavioral objectives for the summarized
// content and attaches the fixed key competencies.
func (p *LessonPipeline) StepObjectives(ctx context.Context, in ObjectivesInput) (*ObjectivesResult, error) {
	system, user, err := p.registry.Render(constant.PromptObjectives, map[string]string{
		"subject":       in.Subject,
		"topic":         in.Topic,
		"level":         in.Level,
		"content":       in.Content,
		"num_students":  fmt.Sprintf("%d", in.NumStudents),
		"study_period":  fmt.Sprintf("%d", in.StudyPeriod),
		"student_types": in.StudentTypes,
	})
	if err != nil {
		return nil, err
	}

	raw, err := p.gateway.Complete(ctx, system, user, llm.WithTemperature(constant.TemperatureDistill))
	if err != nil {
		return nil, err
	}

	var result ObjectivesResult
	if err := extract.Into(raw, &result); err != nil {
		return nil, err
	}
	if len(result.Objectives) == 0 {
		return nil, &apperrors.MalformedOutputError{Raw: raw}
	}

	result.KeyCompetencies = constant.KeyCompetencies
	return &result, nil
}

// StepLessonPlan runs the enrichment agent and designs the learning
// activities. Total minutes derive from the study period count.
func (p *LessonPipeline) StepLessonPlan(ctx context.Context, in LessonPlanInput) (*LessonPlanResult, error) {
	totalMinutes := in.StudyPeriod * constant.MinutesPerPeriod

	bundle := p.agent.PerformEnhancedSearch(ctx, in.Subject, in.Topic, in.Level, in.StudentTypes)

	system, user, err := p.registry.Render(constant.PromptActivityDesign, map[string]string{
		"subject":                   in.Subject,
		"topic":                     in.Topic,
		"level":                     in.Level,
		"objectives":                strings.Join(in.Objectives, "\n"),
		"content":                   in.Content,
		"num_students":              fmt.Sprintf("%d", in.NumStudents),
		"study_period":              fmt.Sprintf("%d", in.StudyPeriod),
		"total_minutes":             fmt.Sprintf("%d", totalMinutes),
		"student_types":             in.StudentTypes,
		"teaching_process_examples": strings.Join(bundle.TeachingProcessExamples, "\n"),
		"lesson_details":            bundle.LessonDetails,
		"udl_strategies":            strings.Join(bundle.UDLStrategies, "\n"),
		"inclusive_strategies":      strings.Join(bundle.InclusiveStrategies, "\n"),
	})
	if err != nil {
		return nil, err
	}

	raw, err := p.gateway.Complete(ctx, system, user, llm.WithTemperature(constant.TemperatureCreative))
	if err != nil {
		return nil, err
	}

	var result LessonPlanResult
	if err := extract.Into(raw, &result); err != nil {
		return nil, err
	}
	if len(result.Activities) == 0 {
		return nil, &apperrors.MalformedOutputError{Raw: raw}
	}

	result.EnhancedData = bundle
	result.SearchMetadata = bundle.Metadata
	result.TotalMinutes = totalMinutes
	return &result, nil
}

// StepEvaluation designs measurement and evaluation aligned with the
// objectives and activities.
func (p *LessonPipeline) StepEvaluation(ctx context.Context, in EvaluationInput) (*EvaluationResult, error) {
	system, user, err := p.registry.Render(constant.PromptEvaluationDesign, map[string]string{
		"objectives":    strings.Join(in.Objectives, "\n"),
		"activities":    in.Activities,
		"student_types": in.StudentTypes,
	})
	if err != nil {
		return nil, err
	}

	raw, err := p.gateway.Complete(ctx, system, user, llm.WithTemperature(constant.TemperatureDistill))
	if err != nil {
		return nil, err
	}

	var result EvaluationResult
	if err := extract.Into(raw, &result); err != nil {
		return nil, err
	}
	if len(result.Evaluation) == 0 {
		return nil, &apperrors.MalformedOutputError{Raw: raw}
	}
	return &result, nil
}

// FollowUp answers a teacher's reflection question against a finished
// lesson plan. The reply is free text, not JSON.
func (p *LessonPipeline) FollowUp(ctx context.Context, lessonPlan interface{}, question string) (string, error) {
	planJson, err := json.Marshal(lessonPlan)
	if err != nil {
		return "", err
	}

	system, user, err := p.registry.Render(constant.PromptReflectionFollowUp, map[string]string{
		"lesson_plan": string(planJson),
		"question":    question,
	})
	if err != nil {
		return "", err
	}

	return p.gateway.Complete(ctx, system, user, llm.WithTemperature(constant.TemperatureCreative))
}
