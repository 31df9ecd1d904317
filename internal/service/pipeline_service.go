package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"ai-lessonplan-be/internal/constant"
	"ai-lessonplan-be/internal/dto"
	"ai-lessonplan-be/internal/entity"
	"ai-lessonplan-be/internal/pkg/apperrors"
	"ai-lessonplan-be/internal/pkg/logger"
	"ai-lessonplan-be/internal/repository/contract"
	"ai-lessonplan-be/pkg/pipeline"
)

type IPipelineService interface {
	RunStage(ctx context.Context, userId uuid.UUID, req dto.StageRequest) (interface{}, error)
	FollowUp(ctx context.Context, userId uuid.UUID, req dto.FollowUpRequest) (*dto.FollowUpResponse, error)
	Health(ctx context.Context) *dto.HealthResponse
}

type pipelineService struct {
	pipe            *pipeline.LessonPipeline
	sessions        contract.ISessionRepository
	publisher       IPublisherService
	log             logger.ILogger
	retryPolicy     pipeline.RetryPolicy
	searchAvailable bool
}

func NewPipelineService(
	pipe *pipeline.LessonPipeline,
	sessions contract.ISessionRepository,
	publisher IPublisherService,
	log logger.ILogger,
	maxAttempts int,
	baseDelay time.Duration,
	searchAvailable bool,
) IPipelineService {
	return &pipelineService{
		pipe:      pipe,
		sessions:  sessions,
		publisher: publisher,
		log:       log,
		retryPolicy: pipeline.RetryPolicy{
			MaxAttempts: uint(maxAttempts),
			BaseDelay:   baseDelay,
			Retryable:   apperrors.IsRetryable,
		},
		searchAvailable: searchAvailable,
	}
}

func (s *pipelineService) RunStage(ctx context.Context, userId uuid.UUID, req dto.StageRequest) (interface{}, error) {
	switch r := req.(type) {
	case dto.Stage0Request:
		return s.runCombinedCurriculum(ctx, userId, r)
	case dto.Stage1Request:
		return s.runCombinedPlan(ctx, userId, r)
	case dto.Parallel12Request:
		return s.runParallel12(ctx, userId, r)
	case dto.BatchRequest:
		return s.runBatch(ctx, r)
	case dto.LegacyStageRequest:
		return s.runLegacyStage(ctx, userId, r)
	default:
		return nil, fmt.Errorf("unsupported stage request %T", req)
	}
}

// runCombinedCurriculum serves stage "0": curriculum selection and
// objectives in one call. Each sub-result commits independently; the
// stage cursor only advances after both.
func (s *pipelineService) runCombinedCurriculum(ctx context.Context, userId uuid.UUID, req dto.Stage0Request) (*dto.Stage0Response, error) {
	sess, err := s.prepareSession(ctx, userId, req, "combined")
	if err != nil {
		return nil, err
	}

	curriculum, err := s.generateCurriculum(ctx, sess)
	if err != nil {
		return nil, err
	}

	objectives, err := s.generateObjectives(ctx, sess, curriculum)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.UpdateFields(ctx, sess.Id, map[string]interface{}{
		"config_step": 1,
	}); err != nil {
		return nil, err
	}

	s.publishStage(ctx, sess, constant.StageCombinedCurriculum, map[string]interface{}{
		"curriculum": curriculum,
		"objectives": objectives,
	})

	return &dto.Stage0Response{
		SessionId:  sess.Id.String(),
		ConfigStep: 1,
		Curriculum: curriculum,
		Objectives: objectives,
	}, nil
}

// runCombinedPlan serves stage "1": activity design and evaluation on
// a session whose curriculum and objectives stages committed.
func (s *pipelineService) runCombinedPlan(ctx context.Context, userId uuid.UUID, req dto.Stage1Request) (*dto.Stage1Response, error) {
	sess, err := s.loadOwnedSession(ctx, userId, req.SessionId)
	if err != nil {
		return nil, err
	}
	if sess.ConfigStep < 1 || len(sess.Objectives) == 0 || len(sess.Content) == 0 {
		return nil, fmt.Errorf("session %s plan stage: %w", req.SessionId, apperrors.ErrStageNotReady)
	}

	planIn, err := s.planInput(sess)
	if err != nil {
		return nil, err
	}

	plan, err := pipeline.Retry(ctx, s.retryPolicy, func() (*pipeline.LessonPlanResult, error) {
		return s.pipe.StepLessonPlan(ctx, *planIn)
	})
	if err != nil {
		return nil, err
	}
	if err := s.persistPlan(ctx, sess, plan, 2); err != nil {
		return nil, err
	}

	activities, err := json.Marshal(plan.Activities)
	if err != nil {
		return nil, err
	}
	evaluation, err := pipeline.Retry(ctx, s.retryPolicy, func() (*pipeline.EvaluationResult, error) {
		return s.pipe.StepEvaluation(ctx, pipeline.EvaluationInput{
			Objectives:   planIn.Objectives,
			Activities:   string(activities),
			StudentTypes: planIn.StudentTypes,
		})
	})
	if err != nil {
		return nil, err
	}
	if err := s.persistEvaluation(ctx, sess, evaluation, 3); err != nil {
		return nil, err
	}

	s.publishStage(ctx, sess, constant.StageCombinedPlan, map[string]interface{}{
		"lesson_plan": plan,
		"evaluation":  evaluation,
	})

	return &dto.Stage1Response{
		SessionId:  sess.Id.String(),
		ConfigStep: 3,
		LessonPlan: plan,
		Evaluation: evaluation,
	}, nil
}

// runParallel12 serves "parallel-1-2": objectives and activity design
// computed concurrently once the curriculum stage committed. Activities
// are designed from the curriculum content alone, so neither waits on
// the other; both results persist in a fixed order after the join.
func (s *pipelineService) runParallel12(ctx context.Context, userId uuid.UUID, req dto.Parallel12Request) (*dto.Parallel12Response, error) {
	sess, err := s.loadOwnedSession(ctx, userId, req.SessionId)
	if err != nil {
		return nil, err
	}
	if sess.ConfigStep < 0 || len(sess.Content) == 0 {
		return nil, fmt.Errorf("session %s parallel stage: %w", req.SessionId, apperrors.ErrStageNotReady)
	}

	curriculum, err := s.curriculumFromSession(sess)
	if err != nil {
		return nil, err
	}
	content := contentText(curriculum)
	studentTypes := studentTypesFromSession(sess)

	objIn := pipeline.ObjectivesInput{
		Subject:      sess.Subject,
		Topic:        sess.LessonTopic,
		Level:        sess.Level,
		Content:      content,
		NumStudents:  sess.NumStudents,
		StudyPeriod:  sess.StudyPeriod,
		StudentTypes: studentTypes,
	}
	planIn := pipeline.LessonPlanInput{
		Subject:      sess.Subject,
		Topic:        sess.LessonTopic,
		Level:        sess.Level,
		Content:      content,
		NumStudents:  sess.NumStudents,
		StudyPeriod:  sess.StudyPeriod,
		StudentTypes: studentTypes,
	}

	op, err := pipeline.Retry(ctx, s.retryPolicy, func() (objectivesAndPlan, error) {
		o, p, err := s.pipe.RunParallelObjectivesAndPlan(ctx, objIn, planIn)
		return objectivesAndPlan{o, p}, err
	})
	if err != nil {
		return nil, err
	}

	if err := s.persistObjectives(ctx, sess, op.objectives); err != nil {
		return nil, err
	}
	if err := s.persistPlan(ctx, sess, op.plan, 2); err != nil {
		return nil, err
	}

	s.publishStage(ctx, sess, constant.StageParallel12, map[string]interface{}{
		"objectives":  op.objectives,
		"lesson_plan": op.plan,
	})

	return &dto.Parallel12Response{
		SessionId:  sess.Id.String(),
		ConfigStep: 2,
		Objectives: op.objectives,
		LessonPlan: op.plan,
	}, nil
}

func (s *pipelineService) runBatch(ctx context.Context, req dto.BatchRequest) (*dto.BatchResponse, error) {
	results := s.pipe.RunBatch(ctx, req.Items, studentTypesText)
	return &dto.BatchResponse{Results: results}, nil
}

// runLegacyStage serves the original four-step flow, one sub-step per
// call.
func (s *pipelineService) runLegacyStage(ctx context.Context, userId uuid.UUID, req dto.LegacyStageRequest) (*dto.LegacyStageResponse, error) {
	if req.Stage == constant.StageLegacyCurriculum {
		sess, err := s.prepareSession(ctx, userId, dto.Stage0Request{
			SessionId:   req.SessionId,
			Title:       req.Title,
			Subject:     req.Subject,
			LessonTopic: req.LessonTopic,
			Level:       req.Level,
			NumStudents: req.NumStudents,
			StudyPeriod: req.StudyPeriod,
			StudentType: req.StudentType,
		}, "legacy")
		if err != nil {
			return nil, err
		}

		curriculum, err := s.generateCurriculum(ctx, sess)
		if err != nil {
			return nil, err
		}
		s.publishStage(ctx, sess, req.Stage, map[string]interface{}{"curriculum": curriculum})

		return &dto.LegacyStageResponse{
			SessionId:  sess.Id.String(),
			Stage:      req.Stage,
			ConfigStep: 0,
			Result:     curriculum,
		}, nil
	}

	sess, err := s.loadOwnedSession(ctx, userId, req.SessionId)
	if err != nil {
		return nil, err
	}

	switch req.Stage {
	case constant.StageLegacyObjectives:
		if sess.ConfigStep < 0 || sess.Standard == "" {
			return nil, fmt.Errorf("legacy objectives stage: %w", apperrors.ErrStageNotReady)
		}
		curriculum, err := s.curriculumFromSession(sess)
		if err != nil {
			return nil, err
		}
		objectives, err := s.generateObjectives(ctx, sess, curriculum)
		if err != nil {
			return nil, err
		}
		if err := s.sessions.UpdateFields(ctx, sess.Id, map[string]interface{}{"config_step": 1}); err != nil {
			return nil, err
		}
		s.publishStage(ctx, sess, req.Stage, map[string]interface{}{"objectives": objectives})
		return &dto.LegacyStageResponse{SessionId: sess.Id.String(), Stage: req.Stage, ConfigStep: 1, Result: objectives}, nil

	case constant.StageLegacyPlan:
		if sess.ConfigStep < 1 || len(sess.Objectives) == 0 {
			return nil, fmt.Errorf("legacy plan stage: %w", apperrors.ErrStageNotReady)
		}
		planIn, err := s.planInput(sess)
		if err != nil {
			return nil, err
		}
		plan, err := pipeline.Retry(ctx, s.retryPolicy, func() (*pipeline.LessonPlanResult, error) {
			return s.pipe.StepLessonPlan(ctx, *planIn)
		})
		if err != nil {
			return nil, err
		}
		if err := s.persistPlan(ctx, sess, plan, 2); err != nil {
			return nil, err
		}
		s.publishStage(ctx, sess, req.Stage, map[string]interface{}{"lesson_plan": plan})
		return &dto.LegacyStageResponse{SessionId: sess.Id.String(), Stage: req.Stage, ConfigStep: 2, Result: plan}, nil

	case constant.StageLegacyEvaluation:
		if sess.ConfigStep < 2 || len(sess.LessonPlan) == 0 {
			return nil, fmt.Errorf("legacy evaluation stage: %w", apperrors.ErrStageNotReady)
		}
		var objectives []string
		if err := json.Unmarshal(sess.Objectives, &objectives); err != nil {
			return nil, err
		}
		evaluation, err := pipeline.Retry(ctx, s.retryPolicy, func() (*pipeline.EvaluationResult, error) {
			return s.pipe.StepEvaluation(ctx, pipeline.EvaluationInput{
				Objectives:   objectives,
				Activities:   string(sess.LessonPlan),
				StudentTypes: studentTypesFromSession(sess),
			})
		})
		if err != nil {
			return nil, err
		}
		if err := s.persistEvaluation(ctx, sess, evaluation, 3); err != nil {
			return nil, err
		}
		s.publishStage(ctx, sess, req.Stage, map[string]interface{}{"evaluation": evaluation})
		return &dto.LegacyStageResponse{SessionId: sess.Id.String(), Stage: req.Stage, ConfigStep: 3, Result: evaluation}, nil

	default:
		return nil, fmt.Errorf("unknown legacy stage %q", req.Stage)
	}
}

func (s *pipelineService) FollowUp(ctx context.Context, userId uuid.UUID, req dto.FollowUpRequest) (*dto.FollowUpResponse, error) {
	sess, err := s.loadOwnedSession(ctx, userId, req.SessionId)
	if err != nil {
		return nil, err
	}
	if sess.ConfigStep < 2 || len(sess.LessonPlan) == 0 {
		return nil, fmt.Errorf("follow-up needs a finished plan: %w", apperrors.ErrStageNotReady)
	}

	planView := map[string]interface{}{
		"subject":      sess.Subject,
		"lesson_topic": sess.LessonTopic,
		"level":        sess.Level,
		"objectives":   json.RawMessage(sess.Objectives),
		"lesson_plan":  json.RawMessage(sess.LessonPlan),
		"evaluation":   json.RawMessage(sess.Evaluation),
	}

	answer, err := s.pipe.FollowUp(ctx, planView, req.Question)
	if err != nil {
		return nil, err
	}

	return &dto.FollowUpResponse{
		SessionId: sess.Id.String(),
		Answer:    answer,
	}, nil
}

func (s *pipelineService) Health(ctx context.Context) *dto.HealthResponse {
	chunks := 0
	retrievalOk := false
	if idx, err := s.pipe.Retriever().Index(ctx, "วิทยาศาสตร์"); err == nil {
		retrievalOk = true
		chunks = idx.Size()
	}

	status := "healthy"
	if !retrievalOk {
		status = "unhealthy"
	}

	return &dto.HealthResponse{
		Status:       status,
		CorpusChunks: chunks,
		Features: map[string]bool{
			"retrieval":  retrievalOk,
			"web_search": s.searchAvailable,
			"batch":      true,
			"parallel":   true,
		},
	}
}

// --- stage helpers ---

// prepareSession loads the owned session or creates a fresh one when
// no id was supplied.
func (s *pipelineService) prepareSession(ctx context.Context, userId uuid.UUID, req dto.Stage0Request, mode string) (*entity.Session, error) {
	if req.SessionId != "" {
		sess, err := s.loadOwnedSession(ctx, userId, req.SessionId)
		if err != nil {
			return nil, err
		}
		return sess, nil
	}

	studentTypes, err := json.Marshal(req.StudentType)
	if err != nil {
		return nil, err
	}

	title := req.Title
	if title == "" {
		title = fmt.Sprintf("%s: %s", req.Subject, req.LessonTopic)
	}

	sess := &entity.Session{
		Id:          uuid.New(),
		UserId:      userId,
		Title:       title,
		ConfigStep:  -1,
		Mode:        mode,
		Subject:     req.Subject,
		LessonTopic: req.LessonTopic,
		Level:       req.Level,
		NumStudents: req.NumStudents,
		StudyPeriod: req.StudyPeriod,
		StudentType: datatypes.JSON(studentTypes),
		CreatedAt:   time.Now(),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}

	s.log.Info("pipeline-service", "session created", map[string]interface{}{
		"session_id": sess.Id.String(),
		"subject":    sess.Subject,
		"topic":      sess.LessonTopic,
	})
	return sess, nil
}

// loadOwnedSession resolves the session and enforces ownership. A
// session owned by someone else is reported exactly like a missing one.
func (s *pipelineService) loadOwnedSession(ctx context.Context, userId uuid.UUID, sessionId string) (*entity.Session, error) {
	id, err := uuid.Parse(sessionId)
	if err != nil {
		return nil, apperrors.ErrSessionNotFound
	}

	sess, err := s.sessions.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.UserId != userId {
		return nil, apperrors.ErrSessionNotFound
	}
	return sess, nil
}

func (s *pipelineService) generateCurriculum(ctx context.Context, sess *entity.Session) (*pipeline.CurriculumResult, error) {
	curriculum, err := pipeline.Retry(ctx, s.retryPolicy, func() (*pipeline.CurriculumResult, error) {
		return s.pipe.StepCurriculum(ctx, pipeline.CurriculumInput{
			Subject: sess.Subject,
			Topic:   sess.LessonTopic,
			Level:   sess.Level,
		})
	})
	if err != nil {
		return nil, err
	}

	content, err := json.Marshal(curriculum.Content)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.UpdateFields(ctx, sess.Id, map[string]interface{}{
		"learning_area":      curriculum.LearningArea,
		"standard":           curriculum.Standard,
		"interim_indicators": curriculum.InterimIndicators,
		"final_indicators":   curriculum.FinalIndicators,
		"content":            datatypes.JSON(content),
		"key_content":        curriculum.KeyContent,
		"config_step":        0,
	}); err != nil {
		return nil, err
	}

	sess.LearningArea = curriculum.LearningArea
	sess.Standard = curriculum.Standard
	sess.InterimIndicators = curriculum.InterimIndicators
	sess.FinalIndicators = curriculum.FinalIndicators
	sess.Content = datatypes.JSON(content)
	sess.KeyContent = curriculum.KeyContent
	sess.ConfigStep = 0
	return curriculum, nil
}

func (s *pipelineService) generateObjectives(ctx context.Context, sess *entity.Session, curriculum *pipeline.CurriculumResult) (*pipeline.ObjectivesResult, error) {
	objectives, err := pipeline.Retry(ctx, s.retryPolicy, func() (*pipeline.ObjectivesResult, error) {
		return s.pipe.StepObjectives(ctx, pipeline.ObjectivesInput{
			Subject:      sess.Subject,
			Topic:        sess.LessonTopic,
			Level:        sess.Level,
			Content:      contentText(curriculum),
			NumStudents:  sess.NumStudents,
			StudyPeriod:  sess.StudyPeriod,
			StudentTypes: studentTypesFromSession(sess),
		})
	})
	if err != nil {
		return nil, err
	}

	if err := s.persistObjectives(ctx, sess, objectives); err != nil {
		return nil, err
	}
	return objectives, nil
}

func (s *pipelineService) persistObjectives(ctx context.Context, sess *entity.Session, objectives *pipeline.ObjectivesResult) error {
	objectivesJson, err := json.Marshal(objectives.Objectives)
	if err != nil {
		return err
	}
	competenciesJson, err := json.Marshal(objectives.KeyCompetencies)
	if err != nil {
		return err
	}

	if err := s.sessions.UpdateFields(ctx, sess.Id, map[string]interface{}{
		"objectives":       datatypes.JSON(objectivesJson),
		"key_competencies": datatypes.JSON(competenciesJson),
	}); err != nil {
		return err
	}

	sess.Objectives = datatypes.JSON(objectivesJson)
	sess.KeyCompetencies = datatypes.JSON(competenciesJson)
	return nil
}

func (s *pipelineService) persistPlan(ctx context.Context, sess *entity.Session, plan *pipeline.LessonPlanResult, configStep int) error {
	planJson, err := json.Marshal(plan.Activities)
	if err != nil {
		return err
	}
	materialsJson, err := json.Marshal(plan.TeachingMaterials)
	if err != nil {
		return err
	}
	enhancedJson, err := json.Marshal(plan.EnhancedData)
	if err != nil {
		return err
	}
	metadataJson, err := json.Marshal(plan.SearchMetadata)
	if err != nil {
		return err
	}

	if err := s.sessions.UpdateFields(ctx, sess.Id, map[string]interface{}{
		"lesson_plan":        datatypes.JSON(planJson),
		"teaching_materials": datatypes.JSON(materialsJson),
		"enhanced_data":      datatypes.JSON(enhancedJson),
		"search_metadata":    datatypes.JSON(metadataJson),
		"config_step":        configStep,
	}); err != nil {
		return err
	}

	sess.LessonPlan = datatypes.JSON(planJson)
	sess.ConfigStep = configStep
	return nil
}

func (s *pipelineService) persistEvaluation(ctx context.Context, sess *entity.Session, evaluation *pipeline.EvaluationResult, configStep int) error {
	evalJson, err := json.Marshal(evaluation.Evaluation)
	if err != nil {
		return err
	}

	if err := s.sessions.UpdateFields(ctx, sess.Id, map[string]interface{}{
		"evaluation":  datatypes.JSON(evalJson),
		"config_step": configStep,
	}); err != nil {
		return err
	}

	sess.Evaluation = datatypes.JSON(evalJson)
	sess.ConfigStep = configStep
	return nil
}

func (s *pipelineService) planInput(sess *entity.Session) (*pipeline.LessonPlanInput, error) {
	var objectives []string
	if err := json.Unmarshal(sess.Objectives, &objectives); err != nil {
		return nil, err
	}

	var content map[string]string
	if err := json.Unmarshal(sess.Content, &content); err != nil {
		return nil, err
	}

	return &pipeline.LessonPlanInput{
		Subject:    sess.Subject,
		Topic:      sess.LessonTopic,
		Level:      sess.Level,
		Objectives: objectives,
		Content: contentText(&pipeline.CurriculumResult{
			Content:    content,
			KeyContent: sess.KeyContent,
		}),
		NumStudents:  sess.NumStudents,
		StudyPeriod:  sess.StudyPeriod,
		StudentTypes: studentTypesFromSession(sess),
	}, nil
}

func (s *pipelineService) curriculumFromSession(sess *entity.Session) (*pipeline.CurriculumResult, error) {
	var content map[string]string
	if len(sess.Content) > 0 {
		if err := json.Unmarshal(sess.Content, &content); err != nil {
			return nil, err
		}
	}
	return &pipeline.CurriculumResult{
		LearningArea:      sess.LearningArea,
		Standard:          sess.Standard,
		InterimIndicators: sess.InterimIndicators,
		FinalIndicators:   sess.FinalIndicators,
		Content:           content,
		KeyContent:        sess.KeyContent,
	}, nil
}

func (s *pipelineService) publishStage(ctx context.Context, sess *entity.Session, stage string, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishStageCompleted(ctx, sess.Id.String(), sess.UserId.String(), stage, payload); err != nil {
		s.log.Warn("pipeline-service", "stage event publish failed", map[string]interface{}{
			"session_id": sess.Id.String(),
			"stage":      stage,
			"error":      err.Error(),
		})
	}
}

// --- free helpers ---

type objectivesAndPlan struct {
	objectives *pipeline.ObjectivesResult
	plan       *pipeline.LessonPlanResult
}

func contentText(c *pipeline.CurriculumResult) string {
	parts := make(map[string]string, len(c.Content))
	for k, v := range c.Content {
		parts[k] = v
	}
	text := ""
	for _, key := range []string{"knowledge", "process", "attitude"} {
		if v, ok := parts[key]; ok && v != "" {
			text += v + "\n"
			delete(parts, key)
		}
	}
	for _, v := range parts {
		text += v + "\n"
	}
	if c.KeyContent != "" {
		text += c.KeyContent
	}
	return text
}

// studentTypesText renders the learner mix as prompt text.
func studentTypesText(types []pipeline.StudentType) string {
	if len(types) == 0 {
		return "นักเรียนทั่วไปทั้งหมด"
	}
	text := ""
	for i, t := range types {
		if i > 0 {
			text += ", "
		}
		text += fmt.Sprintf("%s ร้อยละ %.0f", t.Type, t.Percentage)
	}
	return text
}

func studentTypesFromSession(sess *entity.Session) string {
	var types []pipeline.StudentType
	if len(sess.StudentType) > 0 {
		if err := json.Unmarshal(sess.StudentType, &types); err != nil {
			return "นักเรียนทั่วไปทั้งหมด"
		}
	}
	return studentTypesText(types)
}
