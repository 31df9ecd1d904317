package pipeline

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// RunParallelObjectivesAndPlan runs the objectives and activity-design
// stages concurrently once the curriculum stage has committed. The
// activities are designed from the curriculum content alone, so neither
// stage waits on the other; the first error cancels both.
func (p *LessonPipeline) RunParallelObjectivesAndPlan(ctx context.Context, objIn ObjectivesInput, planIn LessonPlanInput) (*ObjectivesResult, *LessonPlanResult, error) {
	var objectives *ObjectivesResult
	var plan *LessonPlanResult

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		objectives, err = p.StepObjectives(gctx, objIn)
		return err
	})

	g.Go(func() error {
		var err error
		plan, err = p.StepLessonPlan(gctx, planIn)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return objectives, plan, nil
}

// flattenContent renders the curriculum content sections as prompt
// text, sections in stable order.
func flattenContent(c *CurriculumResult) string {
	keys := make([]string, 0, len(c.Content))
	for k := range c.Content {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(c.Content[k])
		b.WriteString("\n")
	}
	if c.KeyContent != "" {
		b.WriteString(c.KeyContent)
	}
	return strings.TrimSpace(b.String())
}

// flattenActivities renders the designed activities as prompt text.
func flattenActivities(plan *LessonPlanResult) string {
	raw, err := json.Marshal(plan.Activities)
	if err != nil {
		return ""
	}
	return string(raw)
}
