package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattbarlow-sg/bpmn2dcr/internal/bpmn"
	"github.com/mattbarlow-sg/bpmn2dcr/internal/dcr"
)

func mustValidate(t *testing.T, b *bpmn.ProcessBuilder) *bpmn.Process {
	t.Helper()
	p, err := bpmn.Validate(b.Build())
	require.NoError(t, err)
	return p
}

func relationsOf(g *dcr.Graph, kind dcr.RelationKind) []*dcr.Relation {
	var out []*dcr.Relation
	for _, r := range g.Relations {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

func hasRelation(g *dcr.Graph, kind dcr.RelationKind, source, target string) bool {
	for _, r := range g.Relations {
		if r.Kind == kind && r.Source == source && r.Target == target {
			return true
		}
	}
	return false
}

func TestTranslate_StraightLineBasicRelations(t *testing.T) {
	p := mustValidate(t, bpmn.NewProcessBuilder("p1").
		StartEvent("start").
		Task("t1", "Do Work").
		EndEvent("end").
		Flow("start", "t1").
		Flow("t1", "end"))

	g := Translate(p)

	assert.True(t, hasRelation(g, dcr.Response, "start", "t1"))
	assert.True(t, hasRelation(g, dcr.Include, "start", "t1"))
	assert.True(t, hasRelation(g, dcr.Response, "t1", "end"))
	assert.True(t, hasRelation(g, dcr.Include, "t1", "end"))

	for _, id := range []string{"start", "t1", "end"} {
		assert.True(t, hasRelation(g, dcr.Exclude, id, id), "missing self-exclude for %s", id)
	}

	startMarking := g.Events["start"].Marking
	assert.True(t, startMarking.Included)
	assert.True(t, startMarking.Pending)
	assert.False(t, startMarking.Executed)

	taskMarking := g.Events["t1"].Marking
	assert.False(t, taskMarking.Included)
	assert.False(t, taskMarking.Pending)
}

func TestTranslate_ExclusiveSplitExcludesSiblings(t *testing.T) {
	p := mustValidate(t, bpmn.NewProcessBuilder("p1").
		StartEvent("start").
		Gateway("split", bpmn.Exclusive).
		Gateway("join", bpmn.Exclusive).
		Task("ta", "Path A").
		Task("tb", "Path B").
		EndEvent("end").
		Flow("start", "split").
		Flow("split", "ta").
		Flow("split", "tb").
		Flow("ta", "join").
		Flow("tb", "join").
		Flow("join", "end"))

	g := Translate(p)

	assert.True(t, hasRelation(g, dcr.Exclude, "ta", "tb"))
	assert.True(t, hasRelation(g, dcr.Exclude, "tb", "ta"))
	assert.True(t, hasRelation(g, dcr.Response, "split", "ta"))
	assert.True(t, hasRelation(g, dcr.Response, "split", "tb"))
	// flows into the join are basic relations, not exclude pairs
	assert.True(t, hasRelation(g, dcr.Response, "ta", "join"))
	assert.True(t, hasRelation(g, dcr.Response, "tb", "join"))
}

func TestTranslate_ParallelJoinUsesAuxiliaryEvent(t *testing.T) {
	p := mustValidate(t, bpmn.NewProcessBuilder("p1").
		StartEvent("start").
		Gateway("split", bpmn.Parallel).
		Gateway("join", bpmn.Parallel).
		Task("ta", "Branch A").
		Task("tb", "Branch B").
		EndEvent("end").
		Flow("start", "split").
		Flow("split", "ta").
		Flow("split", "tb").
		Flow("ta", "join").
		Flow("tb", "join").
		Flow("join", "end"))

	g := Translate(p)

	// one AND-State auxiliary event per branch into the join
	var andStates int
	for _, id := range g.EventOrder {
		if id == "ta" || id == "tb" || id == "start" || id == "split" || id == "join" || id == "end" {
			continue
		}
		andStates++
	}
	assert.Equal(t, 2, andStates)

	assert.True(t, hasRelation(g, dcr.Response, "split", "join"))
	conditions := relationsOf(g, dcr.Condition)
	assert.Len(t, conditions, 2)
}

func TestTranslate_InclusiveJoinUsesOrState(t *testing.T) {
	// Branches are two tasks long so trace start != trace end, which
	// keeps the synthetic-trigger preprocessing (covered separately
	// below) out of the picture here.
	p := mustValidate(t, bpmn.NewProcessBuilder("p1").
		StartEvent("start").
		Gateway("split", bpmn.Inclusive).
		Gateway("join", bpmn.Inclusive).
		Task("ta1", "Branch A Step 1").
		Task("ta2", "Branch A Step 2").
		Task("tb1", "Branch B Step 1").
		Task("tb2", "Branch B Step 2").
		EndEvent("end").
		Flow("start", "split").
		Flow("split", "ta1").
		Flow("ta1", "ta2").
		Flow("split", "tb1").
		Flow("tb1", "tb2").
		Flow("ta2", "join").
		Flow("tb2", "join").
		Flow("join", "end"))

	g := Translate(p)

	assert.True(t, hasRelation(g, dcr.Exclude, "join", "ta1"))
	assert.True(t, hasRelation(g, dcr.Exclude, "join", "tb1"))
	conditions := relationsOf(g, dcr.Condition)
	assert.Len(t, conditions, 2)
}

func TestTranslate_SingleTaskInclusiveBranchGetsTrigger(t *testing.T) {
	// A branch that is just one task (its own trace start and end)
	// gets a synthetic trigger task spliced in ahead of it, so the
	// OR-join machinery always has a distinct branch-start event to
	// key its auxiliary event off of.
	p := mustValidate(t, bpmn.NewProcessBuilder("p1").
		StartEvent("start").
		Gateway("split", bpmn.Inclusive).
		Gateway("join", bpmn.Inclusive).
		Task("ta", "Branch A").
		Task("tb", "Branch B").
		EndEvent("end").
		Flow("start", "split").
		Flow("split", "ta").
		Flow("split", "tb").
		Flow("ta", "join").
		Flow("tb", "join").
		Flow("join", "end"))

	g := Translate(p)

	var triggerCount int
	for _, id := range g.EventOrder {
		if len(id) >= 2 && id[:2] == "or" {
			triggerCount++
		}
	}
	assert.Equal(t, 2, triggerCount, "expected one synthetic or_*_trigger_* task per single-task branch")
}
