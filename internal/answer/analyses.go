package answer

import (
	"context"
	"sort"
	"strings"

	"trackpulse/internal/logging"
	"trackpulse/internal/retrieval"
	"trackpulse/internal/types"
)

// Analysis prompts synthesized for the completion service. The grounding
// context precedes them in the submitted user text.
const (
	delayPrompt = `Analyze the delayed projects above. Provide:
1. A summary of the identified delays
2. The main reasons behind them
3. Specific recommendations per project
4. Priority corrective actions

Keep the analysis detailed and actionable.`

	pendingPrompt = `Analyze the pending tasks above. Provide:
1. A summary of pending tasks per project
2. Prioritization of critical tasks
3. Resource allocation recommendations
4. An action plan to complete the work

Keep the recommendations specific and actionable.`

	summaryPrompt = `Provide an executive analysis of the project above. Include:
1. Overall project health
2. Risk analysis
3. Recommendations to improve performance
4. A suggested action plan
5. Workload assessment

Focus on actionable insights for decision making.`
)

// DelayAnalysis reports the delayed activities found and the generated
// analysis text.
type DelayAnalysis struct {
	Query    string
	Delayed  []types.SearchHit
	Analysis string
}

// AnalyzeDelays retrieves activities matching the delay intent, keeps
// only those marked delayed, and asks the completion service for an
// analysis of the delays.
func (o *Orchestrator) AnalyzeDelays(ctx context.Context, projectName, assignee string) (*DelayAnalysis, error) {
	timer := logging.StartTimer(logging.CategoryAnswer, "AnalyzeDelays")
	defer timer.Stop()

	phrase := retrieval.Query{
		Intent:      retrieval.DelayIntent,
		ProjectName: projectName,
		Assignee:    assignee,
	}.Phrase()

	hits, err := o.search(ctx, phrase, delayTopK)
	if err != nil {
		return nil, err
	}

	var delayed []types.SearchHit
	for _, hit := range hits {
		if metaBool(hit.Metadata, "is_delayed") || metaString(hit.Metadata, "status") == string(types.StatusDelayed) {
			delayed = append(delayed, hit)
		}
	}

	analysis, err := o.complete(ctx, renderDelayContext(delayed), delayPrompt)
	if err != nil {
		return nil, err
	}

	logging.Answer("delay analysis: %d of %d hits delayed", len(delayed), len(hits))
	return &DelayAnalysis{Query: phrase, Delayed: delayed, Analysis: analysis}, nil
}

// TaskAnalysis reports the activities with open tasks and the generated
// recommendations.
type TaskAnalysis struct {
	Query    string
	Projects []types.SearchHit
	Analysis string
}

// AnalyzePendingTasks retrieves activities matching the pending-task
// intent, keeps those that carry open tasks, and asks the completion
// service for a work plan.
func (o *Orchestrator) AnalyzePendingTasks(ctx context.Context, projectName, assignee string) (*TaskAnalysis, error) {
	timer := logging.StartTimer(logging.CategoryAnswer, "AnalyzePendingTasks")
	defer timer.Stop()

	phrase := retrieval.Query{
		Intent:      retrieval.PendingIntent,
		ProjectName: projectName,
		Assignee:    assignee,
	}.Phrase()

	hits, err := o.search(ctx, phrase, pendingTopK)
	if err != nil {
		return nil, err
	}

	var withTasks []types.SearchHit
	for _, hit := range hits {
		if len(metaStrings(hit.Metadata, "pending_tasks")) > 0 {
			withTasks = append(withTasks, hit)
		}
	}

	analysis, err := o.complete(ctx, renderPendingContext(withTasks), pendingPrompt)
	if err != nil {
		return nil, err
	}

	logging.Answer("pending-task analysis: %d of %d hits carry tasks", len(withTasks), len(hits))
	return &TaskAnalysis{Query: phrase, Projects: withTasks, Analysis: analysis}, nil
}

// Metrics is the pure aggregation over one project's activities. List
// fields are complete; rendering into the grounding context truncates
// them, the caller gets everything.
type Metrics struct {
	TotalActivities int
	OnTrack         int
	Delayed         int
	AtRisk          int
	AverageProgress float64
	CompletionRate  float64
	Assignees       []string
	PendingTasks    []string
	DelayReasons    []string
}

// ProjectSummary is the aggregated view of one project plus the
// generated executive analysis.
type ProjectSummary struct {
	ProjectName string
	Metrics     Metrics
	Activities  []types.SearchHit
	Analysis    string
}

// SummarizeProject retrieves the project's activities, aggregates status
// counts and progress, and asks the completion service for an executive
// summary. A name matching zero passages is a NotFoundError.
func (o *Orchestrator) SummarizeProject(ctx context.Context, projectName string) (*ProjectSummary, error) {
	timer := logging.StartTimer(logging.CategoryAnswer, "SummarizeProject")
	defer timer.Stop()

	projectName = strings.TrimSpace(projectName)
	if projectName == "" {
		return nil, types.ErrEmptyQuery
	}

	hits, err := o.search(ctx, "project "+projectName, summaryTopK)
	if err != nil {
		return nil, err
	}

	var activities []types.SearchHit
	needle := strings.ToLower(projectName)
	for _, hit := range hits {
		if strings.Contains(strings.ToLower(metaString(hit.Metadata, "project_name")), needle) {
			activities = append(activities, hit)
		}
	}
	if len(activities) == 0 {
		return nil, &types.NotFoundError{Subject: projectName}
	}

	metrics := aggregate(activities)

	analysis, err := o.complete(ctx, renderSummaryContext(projectName, metrics), summaryPrompt)
	if err != nil {
		return nil, err
	}

	logging.Answer("summary for %q: %d activities, avg progress %.1f",
		projectName, metrics.TotalActivities, metrics.AverageProgress)
	return &ProjectSummary{
		ProjectName: projectName,
		Metrics:     metrics,
		Activities:  activities,
		Analysis:    analysis,
	}, nil
}

// aggregate computes the summary metrics over a filtered result set.
func aggregate(activities []types.SearchHit) Metrics {
	m := Metrics{TotalActivities: len(activities)}

	assignees := make(map[string]struct{})
	var totalProgress float64

	for _, activity := range activities {
		md := activity.Metadata

		switch metaString(md, "status") {
		case string(types.StatusOnTrack):
			m.OnTrack++
		case string(types.StatusDelayed):
			m.Delayed++
		case string(types.StatusAtRisk):
			m.AtRisk++
		}

		totalProgress += metaFloat(md, "progress_percentage")

		if a := metaString(md, "assignee"); a != "" {
			assignees[a] = struct{}{}
		}
		m.PendingTasks = append(m.PendingTasks, metaStrings(md, "pending_tasks")...)
		m.DelayReasons = append(m.DelayReasons, metaStrings(md, "delay_reasons")...)
	}

	if m.TotalActivities > 0 {
		m.AverageProgress = totalProgress / float64(m.TotalActivities)
		m.CompletionRate = float64(m.OnTrack) / float64(m.TotalActivities) * 100
	}

	for a := range assignees {
		m.Assignees = append(m.Assignees, a)
	}
	sort.Strings(m.Assignees)

	return m
}
