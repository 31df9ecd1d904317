package pipeline

import (
	"context"
	"sync"
)

// BatchItem is one lesson plan request inside a batch run.
type BatchItem struct {
	RequestId    string        `json:"request_id"`
	Subject      string        `json:"subject"`
	LessonTopic  string        `json:"lesson_topic"`
	Level        string        `json:"level"`
	NumStudents  int           `json:"num_students"`
	StudyPeriod  int           `json:"study_period"`
	StudentTypes []StudentType `json:"student_type"`
}

// BatchResult carries the full generation chain for one item. A failed
// item records its error and never disturbs the others.
type BatchResult struct {
	RequestId  string            `json:"request_id"`
	Curriculum *CurriculumResult `json:"curriculum,omitempty"`
	Objectives *ObjectivesResult `json:"objectives,omitempty"`
	LessonPlan *LessonPlanResult `json:"lesson_plan,omitempty"`
	Evaluation *EvaluationResult `json:"evaluation,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// RunBatch generates a complete lesson plan for every item
// concurrently. Results are positionally aligned with the input.
func (p *LessonPipeline) RunBatch(ctx context.Context, items []BatchItem, studentTypesOf func([]StudentType) string) []BatchResult {
	results := make([]BatchResult, len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = p.runBatchItem(ctx, item, studentTypesOf(item.StudentTypes))
		}()
	}
	wg.Wait()

	return results
}

func (p *LessonPipeline) runBatchItem(ctx context.Context, item BatchItem, studentTypes string) BatchResult {
	result := BatchResult{RequestId: item.RequestId}

	curriculum, err := p.StepCurriculum(ctx, CurriculumInput{
		Subject: item.Subject,
		Topic:   item.LessonTopic,
		Level:   item.Level,
	})
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Curriculum = curriculum

	content := flattenContent(curriculum)

	objectives, err := p.StepObjectives(ctx, ObjectivesInput{
		Subject:      item.Subject,
		Topic:        item.LessonTopic,
		Level:        item.Level,
		Content:      content,
		NumStudents:  item.NumStudents,
		StudyPeriod:  item.StudyPeriod,
		StudentTypes: studentTypes,
	})
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Objectives = objectives

	plan, err := p.StepLessonPlan(ctx, LessonPlanInput{
		Subject:      item.Subject,
		Topic:        item.LessonTopic,
		Level:        item.Level,
		Objectives:   objectives.Objectives,
		Content:      content,
		NumStudents:  item.NumStudents,
		StudyPeriod:  item.StudyPeriod,
		StudentTypes: studentTypes,
	})
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.LessonPlan = plan

	evaluation, err := p.StepEvaluation(ctx, EvaluationInput{
		Objectives:   objectives.Objectives,
		Activities:   flattenActivities(plan),
		StudentTypes: studentTypes,
	})
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Evaluation = evaluation

	return result
}
