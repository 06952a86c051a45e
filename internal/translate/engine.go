// Package translate implements the Translation Engine: it turns a
// validated bpmn.Process into a dcr.Graph, following the same four
// passes as the reference engine — preprocessing, object mapping,
// auxiliary-event preparation, and relation mapping.
package translate

import (
	"fmt"

	"github.com/mattbarlow-sg/bpmn2dcr/internal/bpmn"
	"github.com/mattbarlow-sg/bpmn2dcr/internal/dcr"
)

type orJoinEntry struct {
	auxEventID    string
	traceStartID  string
}

type engine struct {
	process       *bpmn.Process
	graph         *dcr.Graph
	auxCounters   map[string]int
	orJoinFlowMap map[string]orJoinEntry
}

// Translate runs the full BPMN-to-DCR translation over a validated
// process and returns the resulting graph. p must already have passed
// bpmn.Validate: translation assumes every gateway is paired and every
// inclusive pair has its trace table populated.
func Translate(p *bpmn.Process) *dcr.Graph {
	e := &engine{
		process:       p,
		graph:         dcr.NewGraph(p.ID),
		auxCounters:   map[string]int{"AND": 0, "OR": 0},
		orJoinFlowMap: make(map[string]orJoinEntry),
	}
	e.preprocess()
	e.mapObjects()
	e.prepareMappings()
	e.mapRelations()
	return e.graph
}

// preprocess inserts a synthetic trigger task ahead of any inclusive
// branch that is a single task acting as both its own start and end:
// the OR-join relation mapping needs every branch to have a distinct
// start-of-branch event to key its OR-State auxiliary event off of.
func (e *engine) preprocess() {
	triggerCounter := 1
	for _, pairID := range e.process.PairOrder {
		pair := e.process.Pairs[pairID]
		if pair.Kind != bpmn.Inclusive {
			continue
		}
		for i := range pair.InclusiveTraces {
			trace := &pair.InclusiveTraces[i]
			startObj := e.process.Objects[trace.StartObjectID]
			if startObj == nil || trace.StartObjectID != trace.EndObjectID || startObj.Kind != bpmn.KindTask {
				continue
			}
			taskObj := startObj

			triggerID := fmt.Sprintf("or_%d_trigger_%d", pair.PairID, triggerCounter)
			triggerName := fmt.Sprintf("OR %d Trigger %d", pair.PairID, triggerCounter)
			triggerCounter++
			triggerObj := &bpmn.Object{ID: triggerID, Kind: bpmn.KindTask, DisplayName: triggerName, CanonicalName: triggerName}
			e.process.AddObject(triggerObj)

			flowToTaskID := findFlow(e.process, pair.SplitID, taskObj.ID)
			if flowToTaskID != "" {
				e.process.Flows[flowToTaskID].Target = triggerID
				triggerObj.Incoming = append(triggerObj.Incoming, flowToTaskID)
			}

			newFlowID := fmt.Sprintf("flow_%s_%s", triggerID, taskObj.ID)
			e.process.AddFlow(&bpmn.Flow{ID: newFlowID, Source: triggerID, Target: taskObj.ID})
			removeString(&taskObj.Incoming, flowToTaskID)

			trace.StartObjectID = triggerID
		}
	}
}

func findFlow(p *bpmn.Process, source, target string) string {
	obj := p.Objects[source]
	if obj == nil {
		return ""
	}
	for _, fid := range obj.Outgoing {
		if f := p.Flows[fid]; f != nil && f.Target == target {
			return fid
		}
	}
	return ""
}

func removeString(s *[]string, val string) {
	out := (*s)[:0]
	for _, v := range *s {
		if v != val {
			out = append(out, v)
		}
	}
	*s = out
}

// mapObjects turns every BPMN object (including any trigger tasks
// inserted by preprocess) into a DCR event with its initial marking.
// A start event begins pending and included so it is eligible to fire
// immediately; every other event starts excluded and not pending.
// Every event also gets a self-exclude relation, enforcing the
// single-execution semantics of a DCR event.
func (e *engine) mapObjects() {
	for _, id := range e.process.ObjectOrder {
		obj := e.process.Objects[id]
		label := obj.Label()

		marking := dcr.Marking{Executed: false, Included: false, Pending: false}
		if obj.Kind == bpmn.KindEvent && obj.EventKind == bpmn.StartEvent {
			marking = dcr.Marking{Executed: false, Included: true, Pending: true}
		}

		e.graph.AddEvent(&dcr.Event{ID: id, Label: label, Marking: marking})
		e.graph.AddRelation(&dcr.Relation{Kind: dcr.Exclude, Source: id, Target: id})
	}
}

// prepareMappings creates one OR-State auxiliary event per inclusive
// trace and records, per flow-into-join, which auxiliary event and
// which branch-start object that flow's synchronization depends on.
func (e *engine) prepareMappings() {
	for _, pairID := range e.process.PairOrder {
		pair := e.process.Pairs[pairID]
		if pair.Kind != bpmn.Inclusive {
			continue
		}
		for _, trace := range pair.InclusiveTraces {
			flowIntoJoinID := findFlow(e.process, trace.EndObjectID, pair.JoinID)
			if flowIntoJoinID == "" {
				continue
			}
			auxID := e.createAuxiliaryEvent("OR", fmt.Sprintf("%d", trace.TraceID))
			e.orJoinFlowMap[flowIntoJoinID] = orJoinEntry{auxEventID: auxID, traceStartID: trace.StartObjectID}
		}
	}
}

// createAuxiliaryEvent creates a new AND-State or OR-State event (with
// its self-exclude relation) and returns its id. Every call bumps the
// per-kind counter, which is part of the id, so each call yields a
// distinct event even for a repeated uniqueRef. AND-State events start
// included, so the join's condition on them blocks it until the branch
// excludes them; OR-State events start fully excluded, only included
// once their branch actually starts.
func (e *engine) createAuxiliaryEvent(kind, uniqueRef string) string {
	e.auxCounters[kind]++
	counter := e.auxCounters[kind]
	eventID := fmt.Sprintf("s_%d_%s_%s", counter, kind, uniqueRef)
	label := fmt.Sprintf("%s State %d", kind, counter)

	if _, exists := e.graph.Events[eventID]; exists {
		return eventID
	}

	marking := dcr.Marking{Executed: false, Included: false, Pending: false}
	if kind == "AND" {
		marking = dcr.Marking{Executed: false, Included: true, Pending: false}
	}
	e.graph.AddEvent(&dcr.Event{ID: eventID, Label: label, Marking: marking})
	e.graph.AddRelation(&dcr.Relation{Kind: dcr.Exclude, Source: eventID, Target: eventID})
	return eventID
}

// mapRelations walks every sequence flow and dispatches it to the
// relation-mapping pass matching the gateway kind it touches, or to
// the plain two-relation mapping if it touches no gateway at all.
func (e *engine) mapRelations() {
	splitIDs := make(map[string]bool)
	joinIDs := make(map[string]bool)
	for _, pairID := range e.process.PairOrder {
		pair := e.process.Pairs[pairID]
		splitIDs[pair.SplitID] = true
		joinIDs[pair.JoinID] = true
	}

	for _, flowID := range e.process.FlowOrder {
		flow := e.process.Flows[flowID]
		sourceObj := e.process.Objects[flow.Source]
		if sourceObj == nil {
			continue
		}

		isGatewayRelation := splitIDs[flow.Source] || joinIDs[flow.Target]
		if !isGatewayRelation {
			e.mapBasicRelation(flow.Source, flow.Target)
			continue
		}

		gatewayObj := sourceObj
		if !splitIDs[flow.Source] {
			gatewayObj = e.process.Objects[flow.Target]
		}

		switch gatewayObj.GatewayKind {
		case bpmn.Exclusive:
			e.mapExclusiveRelation(flow.Source, flow.Target)
		case bpmn.Parallel:
			e.mapParallelRelation(flow.Source, flow.Target)
		case bpmn.Inclusive:
			e.mapInclusiveRelation(flow.Source, flow.Target, flowID)
		}
	}
}

// mapBasicRelation is the default translation of a sequence flow:
// executing the source makes the target pending and included.
func (e *engine) mapBasicRelation(source, target string) {
	e.graph.AddRelation(&dcr.Relation{Kind: dcr.Response, Source: source, Target: target})
	e.graph.AddRelation(&dcr.Relation{Kind: dcr.Include, Source: source, Target: target})
}

// mapExclusiveRelation handles flows touching an exclusive gateway.
// Flows into an XOR-join are plain relations. Flows out of an
// XOR-split get the basic relation plus a mutual exclude between the
// chosen branch and every sibling branch, so taking one branch rules
// out all the others.
func (e *engine) mapExclusiveRelation(source, target string) {
	sourceObj := e.process.Objects[source]
	if sourceObj.GatewayRole != bpmn.Split {
		e.mapBasicRelation(source, target)
		return
	}

	e.mapBasicRelation(source, target)
	for _, fid := range sourceObj.Outgoing {
		sibling := e.process.Flows[fid].Target
		if sibling == target {
			continue
		}
		e.graph.AddRelation(&dcr.Relation{Kind: dcr.Exclude, Source: target, Target: sibling})
		e.graph.AddRelation(&dcr.Relation{Kind: dcr.Exclude, Source: sibling, Target: target})
	}
}

// mapParallelRelation handles flows touching a parallel gateway. A
// split branch gets the basic relation plus a response from the split
// straight to its join, so the join is already pending once the split
// fires. A flow into the join is modeled through an AND-State
// auxiliary event: finishing the branch excludes its auxiliary event,
// and the join has a condition on that same event, so the join can
// only fire once every branch's auxiliary event has been excluded.
func (e *engine) mapParallelRelation(source, target string) {
	sourceObj := e.process.Objects[source]
	if sourceObj.GatewayRole == bpmn.Split {
		e.mapBasicRelation(source, target)
		pair := e.pairBySplit(source)
		e.graph.AddRelation(&dcr.Relation{Kind: dcr.Response, Source: source, Target: pair.JoinID})
		return
	}

	auxID := e.createAuxiliaryEvent("AND", source)
	e.graph.AddRelation(&dcr.Relation{Kind: dcr.Exclude, Source: source, Target: auxID})
	e.graph.AddRelation(&dcr.Relation{Kind: dcr.Condition, Source: auxID, Target: target})
	e.graph.AddRelation(&dcr.Relation{Kind: dcr.Include, Source: source, Target: target})
}

// mapInclusiveRelation handles flows touching an inclusive gateway. A
// split branch gets the basic relation, a response to its join, and an
// exclude from the join back to the branch start, so once the join has
// fired any branch not yet taken can no longer start. A flow into the
// join uses the OR-State auxiliary event recorded by prepareMappings:
// starting the branch includes its OR-State, finishing the branch
// excludes it, and the join has a condition on it, so the join only
// fires once every branch that actually started has also finished.
func (e *engine) mapInclusiveRelation(source, target, flowID string) {
	sourceObj := e.process.Objects[source]
	if sourceObj.GatewayRole == bpmn.Split {
		pair := e.pairBySplit(source)
		e.mapBasicRelation(source, target)
		e.graph.AddRelation(&dcr.Relation{Kind: dcr.Response, Source: source, Target: pair.JoinID})
		e.graph.AddRelation(&dcr.Relation{Kind: dcr.Exclude, Source: pair.JoinID, Target: target})
		return
	}

	entry, ok := e.orJoinFlowMap[flowID]
	if !ok {
		return
	}
	e.graph.AddRelation(&dcr.Relation{Kind: dcr.Exclude, Source: source, Target: entry.auxEventID})
	e.graph.AddRelation(&dcr.Relation{Kind: dcr.Condition, Source: entry.auxEventID, Target: target})
	e.graph.AddRelation(&dcr.Relation{Kind: dcr.Include, Source: source, Target: target})
	e.graph.AddRelation(&dcr.Relation{Kind: dcr.Include, Source: entry.traceStartID, Target: entry.auxEventID})
}

func (e *engine) pairBySplit(splitID string) *bpmn.GatewayPair {
	for _, pairID := range e.process.PairOrder {
		pair := e.process.Pairs[pairID]
		if pair.SplitID == splitID {
			return pair
		}
	}
	return nil
}
