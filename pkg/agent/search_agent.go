// Package agent implements the enrichment agent that gathers
// teaching-process examples, lesson details, UDL strategies and
// inclusive-classroom strategies before lesson plan generation. The
// agent degrades through
// web search, model reasoning and static knowledge, and never fails:
// plan generation must proceed with whatever enrichment is available.
package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"ai-lessonplan-be/internal/constant"
	"ai-lessonplan-be/internal/pkg/logger"
	"ai-lessonplan-be/pkg/extract"
	"ai-lessonplan-be/pkg/llm"
	"ai-lessonplan-be/pkg/prompt"
	"ai-lessonplan-be/pkg/search"
)

// Bundle is the enrichment handed to the activity-design stage. All
// fields are always populated, via fallback content if necessary.
type Bundle struct {
	TeachingProcessExamples []string `json:"teaching_process_examples"`
	LessonDetails           string   `json:"lesson_details"`
	UDLStrategies           []string `json:"udl_strategies"`
	InclusiveStrategies     []string `json:"inclusive_strategies"`
	Metadata                Metadata `json:"metadata"`
}

// Metadata records how the bundle was produced.
type Metadata struct {
	SearchPerformed bool      `json:"search_performed"`
	QueriesRun      int       `json:"queries_run"`
	FallbackUsed    bool      `json:"fallback_used"`
	CompletedAt     time.Time `json:"completed_at"`
}

type SearchAgent struct {
	gateway  *llm.Gateway
	search   search.Client
	registry *prompt.Registry
	log      logger.ILogger
}

func NewSearchAgent(gateway *llm.Gateway, client search.Client, registry *prompt.Registry, log logger.ILogger) *SearchAgent {
	return &SearchAgent{
		gateway:  gateway,
		search:   client,
		registry: registry,
		log:      log,
	}
}

type category struct {
	focus   string
	queries []string
	stagger time.Duration
}

func (a *SearchAgent) categories(subject, topic, level string) []category {
	return []category{
		{
			focus: "กระบวนการจัดการเรียนรู้",
			queries: []string{
				fmt.Sprintf("กระบวนการจัดการเรียนรู้ เรื่อง %s วิชา %s %s", topic, subject, level),
				fmt.Sprintf("ตัวอย่างแผนการสอน %s %s", topic, level),
				fmt.Sprintf("teaching process lesson plan %s", topic),
			},
			stagger: 1000 * time.Millisecond,
		},
		{
			focus: "UDL การออกแบบการเรียนรู้ที่เป็นสากล",
			queries: []string{
				fmt.Sprintf("UDL Universal Design for Learning %s %s", topic, subject),
				fmt.Sprintf("การออกแบบการเรียนรู้ที่เป็นสากล %s", subject),
			},
			stagger: 800 * time.Millisecond,
		},
		{
			focus: "การจัดการเรียนรู้ในห้องเรียนรวม",
			queries: []string{
				fmt.Sprintf("ห้องเรียนรวม การสอนเด็กพิเศษ %s %s", topic, level),
				fmt.Sprintf("inclusive classroom strategies %s", topic),
			},
			stagger: 600 * time.Millisecond,
		},
	}
}

// PerformEnhancedSearch gathers the three strategy categories and the
// lesson-detail synthesis concurrently. It never returns an error:
// every failure path degrades to model reasoning and finally to static
// knowledge.
func (a *SearchAgent) PerformEnhancedSearch(ctx context.Context, subject, topic, level, studentTypes string) *Bundle {
	cats := a.categories(subject, topic, level)

	bundle := &Bundle{
		Metadata: Metadata{SearchPerformed: a.search.Available()},
	}

	results := make([][]string, len(cats))
	queriesRun := make([]int, len(cats))
	fallbacks := make([]bool, len(cats))

	var (
		details          string
		detailQueriesRun int
		detailFellBack   bool
	)

	g, gctx := errgroup.WithContext(ctx)
	for i, cat := range cats {
		g.Go(func() error {
			insights, ran, fellBack := a.runCategory(gctx, cat, subject, topic, level, studentTypes)
			results[i] = insights
			queriesRun[i] = ran
			fallbacks[i] = fellBack
			return nil
		})
	}
	g.Go(func() error {
		details, detailQueriesRun, detailFellBack = a.lessonDetails(gctx, subject, topic, level)
		return nil
	})
	// Goroutines never return errors, Wait only synchronizes.
	_ = g.Wait()

	bundle.TeachingProcessExamples = results[0]
	bundle.LessonDetails = details
	bundle.UDLStrategies = results[1]
	bundle.InclusiveStrategies = results[2]

	for i := range cats {
		bundle.Metadata.QueriesRun += queriesRun[i]
		bundle.Metadata.FallbackUsed = bundle.Metadata.FallbackUsed || fallbacks[i]
	}
	bundle.Metadata.QueriesRun += detailQueriesRun
	bundle.Metadata.FallbackUsed = bundle.Metadata.FallbackUsed || detailFellBack
	bundle.Metadata.CompletedAt = time.Now()

	a.log.Info("search-agent", "enrichment bundle ready", map[string]interface{}{
		"topic":         topic,
		"queries_run":   bundle.Metadata.QueriesRun,
		"fallback_used": bundle.Metadata.FallbackUsed,
	})

	return bundle
}

// runCategory executes one category's degrade chain:
// web search + distill, then model reasoning, then static knowledge.
func (a *SearchAgent) runCategory(ctx context.Context, cat category, subject, topic, level, studentTypes string) (insights []string, queriesRun int, fellBack bool) {
	hits, queriesRun := a.collectHits(ctx, cat.queries, cat.stagger)

	if len(hits) > 0 {
		if distilled, err := a.distill(ctx, cat.focus, subject, topic, level, formatHits(hits)); err == nil && len(distilled) > 0 {
			return distilled, queriesRun, false
		}
		a.log.Warn("search-agent", "distill failed, falling back to reasoning", map[string]interface{}{
			"focus": cat.focus,
		})
	}

	if reasoned, err := a.reason(ctx, cat.focus, subject, topic, level, studentTypes); err == nil && len(reasoned) > 0 {
		return reasoned, queriesRun, true
	}

	return search.FallbackResults(cat.focus), queriesRun, true
}

const detailFocus = "รายละเอียดบทเรียนและเนื้อหาสำคัญ"

// lessonDetails synthesizes a topic-content overview from its own
// diversified searches. This runs apart from the strategy categories:
// the queries target lesson content, not pedagogy.
func (a *SearchAgent) lessonDetails(ctx context.Context, subject, topic, level string) (detail string, queriesRun int, fellBack bool) {
	queries := []string{
		fmt.Sprintf("%s %s ระดับ%s รายละเอียดบทเรียน", subject, topic, level),
		fmt.Sprintf("%s %s เนื้อหาสำคัญ มัธยมศึกษา", subject, topic),
		fmt.Sprintf("%s concepts %s grade %s", topic, subject, level),
		fmt.Sprintf("%s learning objectives %s", topic, subject),
		fmt.Sprintf("หลักสูตร %s %s สาระสำคัญ", subject, topic),
	}
	hits, queriesRun := a.collectHits(ctx, queries, 600*time.Millisecond)

	if len(hits) > 0 {
		if distilled, err := a.distill(ctx, detailFocus, subject, topic, level, formatHits(hits)); err == nil && len(distilled) > 0 {
			return strings.Join(distilled, " "), queriesRun, false
		}
		a.log.Warn("search-agent", "distill failed, falling back to reasoning", map[string]interface{}{
			"focus": detailFocus,
		})
	}

	if reasoned, err := a.reason(ctx, detailFocus, subject, topic, level, ""); err == nil && len(reasoned) > 0 {
		return strings.Join(reasoned, " "), queriesRun, true
	}

	static := fmt.Sprintf("รายละเอียดบทเรียน %s เรื่อง %s ระดับ%s ควรเน้นการเรียนรู้ที่เชื่อมโยงกับประสบการณ์จริงของผู้เรียน และการประยุกต์ใช้ในชีวิตประจำวัน", subject, topic, level)
	return static, queriesRun, true
}

// collectHits runs the queries in order with a stagger between calls
// so the search provider is not burst-hit. Failed queries are logged
// and skipped.
func (a *SearchAgent) collectHits(ctx context.Context, queries []string, stagger time.Duration) ([]search.Result, int) {
	if !a.search.Available() {
		return nil, 0
	}

	var hits []search.Result
	queriesRun := 0
	for _, query := range queries {
		if queriesRun > 0 {
			if !sleepCtx(ctx, stagger) {
				break
			}
		}
		found, err := a.search.Search(ctx, query)
		queriesRun++
		if err != nil {
			a.log.Warn("search-agent", "search query failed", map[string]interface{}{
				"query": query,
				"error": err.Error(),
			})
			continue
		}
		hits = append(hits, found...)
	}
	return hits, queriesRun
}

type insightsResult struct {
	Insights []string `json:"insights"`
}

func (a *SearchAgent) distill(ctx context.Context, focus, subject, topic, level, searchResults string) ([]string, error) {
	system, user, err := a.registry.Render(constant.PromptEnrichmentDistill, map[string]string{
		"category_focus": focus,
		"subject":        subject,
		"topic":          topic,
		"level":          level,
		"search_results": searchResults,
	})
	if err != nil {
		return nil, err
	}

	raw, err := a.gateway.Complete(ctx, system, user, llm.WithTemperature(constant.TemperatureDistill))
	if err != nil {
		return nil, err
	}

	var parsed insightsResult
	if err := extract.Into(raw, &parsed); err != nil {
		return nil, err
	}
	return parsed.Insights, nil
}

func (a *SearchAgent) reason(ctx context.Context, focus, subject, topic, level, studentTypes string) ([]string, error) {
	system, user, err := a.registry.Render(constant.PromptEnrichmentReasoning, map[string]string{
		"category_focus": focus,
		"subject":        subject,
		"topic":          topic,
		"level":          level,
		"student_types":  studentTypes,
	})
	if err != nil {
		return nil, err
	}

	raw, err := a.gateway.Complete(ctx, system, user, llm.WithTemperature(constant.TemperatureDistill))
	if err != nil {
		return nil, err
	}

	var parsed insightsResult
	if err := extract.Into(raw, &parsed); err != nil {
		return nil, err
	}
	return parsed.Insights, nil
}

func formatHits(hits []search.Result) string {
	var b strings.Builder
	for i, h := range hits {
		fmt.Fprintf(&b, "%d. %s\n%s\n", i+1, h.Title, h.Snippet)
	}
	return strings.TrimSpace(b.String())
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
