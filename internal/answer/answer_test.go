package answer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trackpulse/internal/types"
)

// fakeIndex records search calls and serves canned hits.
type fakeIndex struct {
	hits      []types.SearchHit
	lastQuery string
	lastTopK  int
	fail      error
	cleared   bool
}

func (f *fakeIndex) Upsert(context.Context, []types.Passage) (int, error) { return 0, nil }

func (f *fakeIndex) SimilaritySearch(_ context.Context, query string, topK int) ([]types.SearchHit, error) {
	f.lastQuery = query
	f.lastTopK = topK
	if f.fail != nil {
		return nil, f.fail
	}
	if len(f.hits) > topK {
		return f.hits[:topK], nil
	}
	return f.hits, nil
}

func (f *fakeIndex) DeleteAll(context.Context) error {
	f.cleared = true
	return f.fail
}

// fakeCompleter records the last completion call.
type fakeCompleter struct {
	lastSystem  string
	lastContext string
	lastUser    string
	reply       string
	fail        error
}

func (f *fakeCompleter) Complete(_ context.Context, system, groundingContext, user string) (string, error) {
	f.lastSystem = system
	f.lastContext = groundingContext
	f.lastUser = user
	if f.fail != nil {
		return "", f.fail
	}
	return f.reply, nil
}

func delayedHit(project, assignee string, progress float64) types.SearchHit {
	return types.SearchHit{
		ID:    "hit_" + project,
		Score: 0.9,
		Metadata: types.Metadata{
			"project_name":        project,
			"assignee":            assignee,
			"status":              "delayed",
			"is_delayed":          true,
			"progress_percentage": progress,
			"delay_reasons":       []string{"esperando aprobación del cliente"},
			"pending_tasks":       []string{"completar informe"},
		},
	}
}

func onTrackHit(project, assignee string, progress float64) types.SearchHit {
	return types.SearchHit{
		ID:    "hit_" + project,
		Score: 0.8,
		Metadata: types.Metadata{
			"project_name":        project,
			"assignee":            assignee,
			"status":              "on_track",
			"is_delayed":          false,
			"progress_percentage": progress,
		},
	}
}

func TestAsk_GroundsAndCompletes(t *testing.T) {
	idx := &fakeIndex{hits: []types.SearchHit{onTrackHit("Alpha", "Ana", 90)}}
	comp := &fakeCompleter{reply: "Alpha is on track."}
	o := New(idx, comp, "You are a senior project manager.")

	ans, err := o.Ask(context.Background(), "How is Alpha doing?")
	require.NoError(t, err)

	assert.Equal(t, "How is Alpha doing?", idx.lastQuery)
	assert.Equal(t, 10, idx.lastTopK)
	assert.Equal(t, "You are a senior project manager.", comp.lastSystem)
	assert.Contains(t, comp.lastContext, "Project: Alpha")
	assert.Equal(t, "Alpha is on track.", ans.Text)
	assert.Equal(t, 1, ans.Matches)
}

func TestAsk_EmptyQuestionRejectedBeforeAnyCall(t *testing.T) {
	idx := &fakeIndex{}
	o := New(idx, &fakeCompleter{}, "")

	_, err := o.Ask(context.Background(), "   ")
	require.ErrorIs(t, err, types.ErrEmptyQuery)
	assert.Empty(t, idx.lastQuery, "no external call expected")
}

func TestAsk_IndexFailureIsUpstreamError(t *testing.T) {
	idx := &fakeIndex{fail: errors.New("connection refused")}
	o := New(idx, &fakeCompleter{}, "")

	_, err := o.Ask(context.Background(), "anything")
	var ue *types.UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "vector index", ue.Service)
}

func TestAsk_CompletionFailureIsUpstreamError(t *testing.T) {
	idx := &fakeIndex{hits: []types.SearchHit{onTrackHit("Alpha", "Ana", 90)}}
	comp := &fakeCompleter{fail: errors.New("rate limited")}
	o := New(idx, comp, "")

	_, err := o.Ask(context.Background(), "anything")
	var ue *types.UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "completion", ue.Service)
}

func TestAnalyzeDelays_FiltersToDelayedOnly(t *testing.T) {
	idx := &fakeIndex{hits: []types.SearchHit{
		delayedHit("Alpha", "Ana", 30),
		onTrackHit("Beta", "Luis", 90),
		delayedHit("Gamma", "Eva", 45),
		onTrackHit("Delta", "Raúl", 85),
		delayedHit("Omega", "Mar", 10),
	}}
	comp := &fakeCompleter{reply: "Delays analyzed."}
	o := New(idx, comp, "")

	res, err := o.AnalyzeDelays(context.Background(), "", "")
	require.NoError(t, err)

	assert.Equal(t, 20, idx.lastTopK)
	require.Len(t, res.Delayed, 3)
	for _, hit := range res.Delayed {
		assert.True(t, metaBool(hit.Metadata, "is_delayed"))
	}
	assert.Contains(t, comp.lastContext, "esperando aprobación del cliente")
	assert.Equal(t, "Delays analyzed.", res.Analysis)
}

func TestAnalyzeDelays_QueryCarriesFilters(t *testing.T) {
	idx := &fakeIndex{}
	o := New(idx, &fakeCompleter{reply: "ok"}, "")

	res, err := o.AnalyzeDelays(context.Background(), "Alpha", "Ana")
	require.NoError(t, err)

	assert.Contains(t, res.Query, "project Alpha")
	assert.Contains(t, res.Query, "assigned to Ana")
	assert.Equal(t, res.Query, idx.lastQuery)
}

func TestAnalyzePendingTasks_FiltersToNonEmptyTasks(t *testing.T) {
	idx := &fakeIndex{hits: []types.SearchHit{
		delayedHit("Alpha", "Ana", 30), // carries pending tasks
		onTrackHit("Beta", "Luis", 90), // no pending tasks
	}}
	comp := &fakeCompleter{reply: "Plan ready."}
	o := New(idx, comp, "")

	res, err := o.AnalyzePendingTasks(context.Background(), "", "")
	require.NoError(t, err)

	assert.Equal(t, 15, idx.lastTopK)
	require.Len(t, res.Projects, 1)
	assert.Equal(t, "Alpha", metaString(res.Projects[0].Metadata, "project_name"))
	assert.Contains(t, comp.lastContext, "completar informe")
}

func TestSummarizeProject_Aggregates(t *testing.T) {
	idx := &fakeIndex{hits: []types.SearchHit{
		delayedHit("Alpha", "Ana", 30),
		onTrackHit("Alpha", "Luis", 90),
		onTrackHit("Alpha Phase 2", "Ana", 80),
		onTrackHit("Beta", "Eva", 70), // filtered out by name
	}}
	comp := &fakeCompleter{reply: "Executive summary."}
	o := New(idx, comp, "")

	res, err := o.SummarizeProject(context.Background(), "alpha")
	require.NoError(t, err)

	assert.Equal(t, 50, idx.lastTopK)

	want := Metrics{
		TotalActivities: 3,
		OnTrack:         2,
		Delayed:         1,
		AverageProgress: (30.0 + 90.0 + 80.0) / 3.0,
		CompletionRate:  2.0 / 3.0 * 100,
		Assignees:       []string{"Ana", "Luis"},
		PendingTasks:    []string{"completar informe"},
		DelayReasons:    []string{"esperando aprobación del cliente"},
	}
	if diff := cmp.Diff(want, res.Metrics); diff != "" {
		t.Fatalf("metrics mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Executive summary.", res.Analysis)
}

func TestSummarizeProject_NotFound(t *testing.T) {
	idx := &fakeIndex{hits: []types.SearchHit{onTrackHit("Beta", "Eva", 70)}}
	o := New(idx, &fakeCompleter{}, "")

	_, err := o.SummarizeProject(context.Background(), "Zeta")
	var nf *types.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Zeta", nf.Subject)
}

func TestSummarizeProject_EmptyNameRejected(t *testing.T) {
	o := New(&fakeIndex{}, &fakeCompleter{}, "")
	_, err := o.SummarizeProject(context.Background(), "  ")
	require.ErrorIs(t, err, types.ErrEmptyQuery)
}

func TestSummarizeProject_ContextTruncatesLongLists(t *testing.T) {
	hit := delayedHit("Alpha", "Ana", 30)
	var tasks []string
	for i := 0; i < 15; i++ {
		tasks = append(tasks, "tarea pendiente número grande")
	}
	hit.Metadata["pending_tasks"] = tasks

	idx := &fakeIndex{hits: []types.SearchHit{hit}}
	comp := &fakeCompleter{reply: "ok"}
	o := New(idx, comp, "")

	res, err := o.SummarizeProject(context.Background(), "Alpha")
	require.NoError(t, err)

	// Full aggregate returned to the caller, only 10 rendered.
	assert.Len(t, res.Metrics.PendingTasks, 15)
	assert.Contains(t, comp.lastContext, "Pending tasks (15):")
	rendered := strings.Count(comp.lastContext, "tarea pendiente número grande")
	assert.Equal(t, 10, rendered)
}

func TestSearch_EmptyQueryRejected(t *testing.T) {
	o := New(&fakeIndex{}, &fakeCompleter{}, "")
	_, err := o.Search(context.Background(), "", 5)
	require.ErrorIs(t, err, types.ErrEmptyQuery)
}

func TestSearch_DefaultsTopK(t *testing.T) {
	idx := &fakeIndex{}
	o := New(idx, &fakeCompleter{}, "")

	_, err := o.Search(context.Background(), "delays", 0)
	require.NoError(t, err)
	assert.Equal(t, 10, idx.lastTopK)
}

func TestClearIndex(t *testing.T) {
	idx := &fakeIndex{}
	o := New(idx, &fakeCompleter{}, "")

	require.NoError(t, o.ClearIndex(context.Background()))
	assert.True(t, idx.cleared)
}

func TestMetadataHelpers_JSONRoundTripShapes(t *testing.T) {
	md := types.Metadata{
		"progress_percentage": float64(45),
		"row_index":           7, // int form
		"pending_tasks":       []any{"uno", "dos"},
		"is_delayed":          true,
	}

	assert.Equal(t, 45.0, metaFloat(md, "progress_percentage"))
	assert.Equal(t, 7.0, metaFloat(md, "row_index"))
	assert.Equal(t, []string{"uno", "dos"}, metaStrings(md, "pending_tasks"))
	assert.True(t, metaBool(md, "is_delayed"))
	assert.Empty(t, metaString(md, "missing"))
}
