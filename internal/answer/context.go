package answer

import (
	"fmt"
	"strings"

	"trackpulse/internal/describe"
	"trackpulse/internal/types"
)

// renderLimit caps how many entries of an aggregated list are written
// into the grounding context. Full counts still reach the caller.
const renderLimit = 10

// renderHits renders raw search hits into a structured context block for
// open questions: one section per passage with its key fields.
func renderHits(hits []types.SearchHit) string {
	if len(hits) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Indexed project tracking records:\n\n")
	for _, hit := range hits {
		writeHitBlock(&b, hit)
	}
	return b.String()
}

// renderDelayContext renders delayed activities for the delay analysis.
func renderDelayContext(hits []types.SearchHit) string {
	var b strings.Builder
	b.WriteString("Delay analysis for tracked projects:\n\n")
	for _, hit := range hits {
		md := hit.Metadata
		fmt.Fprintf(&b, "Project: %s\n", orNA(metaString(md, "project_name")))
		fmt.Fprintf(&b, "Assigned: %s\n", orNA(metaString(md, "assignee")))
		fmt.Fprintf(&b, "Progress: %s%%\n", describe.FormatPercent(metaFloat(md, "progress_percentage")))
		fmt.Fprintf(&b, "Notes: %s\n", orNA(metaString(md, "notes")))
		if reasons := metaStrings(md, "delay_reasons"); len(reasons) > 0 {
			fmt.Fprintf(&b, "Delay reasons: %s\n", strings.Join(reasons, ", "))
		}
		b.WriteString("\n---\n\n")
	}
	return b.String()
}

// renderPendingContext renders activities with open tasks for the
// pending-task analysis.
func renderPendingContext(hits []types.SearchHit) string {
	var b strings.Builder
	b.WriteString("Pending tasks identified across projects:\n\n")
	for _, hit := range hits {
		md := hit.Metadata
		fmt.Fprintf(&b, "Project: %s\n", orNA(metaString(md, "project_name")))
		fmt.Fprintf(&b, "Assigned: %s\n", orNA(metaString(md, "assignee")))
		fmt.Fprintf(&b, "Progress: %s%%\n", describe.FormatPercent(metaFloat(md, "progress_percentage")))
		b.WriteString("Pending tasks:\n")
		for _, task := range metaStrings(md, "pending_tasks") {
			fmt.Fprintf(&b, "  - %s\n", task)
		}
		b.WriteString("\n---\n\n")
	}
	return b.String()
}

// renderSummaryContext renders the aggregated metrics of one project.
func renderSummaryContext(name string, m Metrics) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Project summary: %s\n\n", name)
	b.WriteString("Metrics:\n")
	fmt.Fprintf(&b, "- Total activities: %d\n", m.TotalActivities)
	fmt.Fprintf(&b, "- On track: %d\n", m.OnTrack)
	fmt.Fprintf(&b, "- Delayed: %d\n", m.Delayed)
	fmt.Fprintf(&b, "- At risk: %d\n", m.AtRisk)
	fmt.Fprintf(&b, "- Average progress: %.2f%%\n", m.AverageProgress)
	fmt.Fprintf(&b, "- Team: %s\n", strings.Join(m.Assignees, ", "))

	fmt.Fprintf(&b, "\nPending tasks (%d):\n", len(m.PendingTasks))
	for _, task := range truncate(m.PendingTasks, renderLimit) {
		fmt.Fprintf(&b, "- %s\n", task)
	}
	fmt.Fprintf(&b, "\nDelay reasons (%d):\n", len(m.DelayReasons))
	for _, reason := range truncate(m.DelayReasons, renderLimit) {
		fmt.Fprintf(&b, "- %s\n", reason)
	}
	return b.String()
}

func writeHitBlock(b *strings.Builder, hit types.SearchHit) {
	md := hit.Metadata
	fmt.Fprintf(b, "Project: %s\n", orNA(metaString(md, "project_name")))
	fmt.Fprintf(b, "Activity: %s\n", orNA(metaString(md, "activity_name")))
	fmt.Fprintf(b, "Assigned: %s\n", orNA(metaString(md, "assignee")))
	fmt.Fprintf(b, "Status: %s\n", orNA(metaString(md, "status")))
	fmt.Fprintf(b, "Progress: %s%%\n", describe.FormatPercent(metaFloat(md, "progress_percentage")))
	if notes := metaString(md, "notes"); notes != "" {
		fmt.Fprintf(b, "Notes: %s\n", notes)
	}
	b.WriteString("\n---\n\n")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func truncate(items []string, limit int) []string {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
