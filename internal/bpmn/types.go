// Package bpmn holds the in-memory BPMN ingest model: the objects and
// sequence flows produced from a parsed XML tree, the Normalizer &
// Namer, and the Gateway Pairing & Validator that turns a raw graph
// into a validated Process ready for translation.
package bpmn

import "fmt"

// ElementKind is the structural category of a BpmnObject.
type ElementKind string

const (
	KindTask    ElementKind = "Task"
	KindEvent   ElementKind = "Event"
	KindGateway ElementKind = "Gateway"
)

// EventKind distinguishes the two event shapes this compiler accepts.
type EventKind string

const (
	StartEvent EventKind = "StartEvent"
	EndEvent   EventKind = "EndEvent"
)

// GatewayKind is the synchronization semantics of a gateway.
type GatewayKind string

const (
	Exclusive GatewayKind = "Exclusive"
	Parallel  GatewayKind = "Parallel"
	Inclusive GatewayKind = "Inclusive"
)

// GatewayRole is the structural shape of a gateway: fan-out or fan-in.
type GatewayRole string

const (
	Split GatewayRole = "Split"
	Join  GatewayRole = "Join"
)

// Object is a BPMN task, event, or gateway together with its
// sequence-flow connectivity. Incoming/Outgoing hold flow ids in the
// order they were encountered during ingest, which is what makes
// adjacency traversal deterministic downstream.
type Object struct {
	ID            string
	Kind          ElementKind
	DisplayName   string
	CanonicalName string
	EventKind     EventKind
	GatewayKind   GatewayKind
	GatewayRole   GatewayRole
	Incoming      []string
	Outgoing      []string
}

// Label returns the name translation should emit for this object: the
// canonical name assigned by the Normalizer/Pairing pass if one was
// assigned, else the author-supplied display name, else the id.
func (o *Object) Label() string {
	if o.CanonicalName != "" {
		return o.CanonicalName
	}
	if o.DisplayName != "" {
		return o.DisplayName
	}
	return o.ID
}

// Flow is a single directed sequence flow, source -> target.
type Flow struct {
	ID     string
	Source string
	Target string
}

// InclusiveTrace is one observed (branch-start, branch-end) pair for
// an inclusive gateway pair, numbered consecutively within the pair.
type InclusiveTrace struct {
	TraceID       int
	StartObjectID string
	EndObjectID   string
}

// GatewayPair couples a split gateway with its matched join.
type GatewayPair struct {
	PairID          int
	Kind            GatewayKind
	SplitID         string
	JoinID          string
	IsLoop          bool
	InclusiveTraces []InclusiveTrace
}

// Process is the validated (or in-progress) BPMN control-flow graph.
// Objects/Flows/Pairs are keyed by id for O(1) lookup; the *Order
// slices record insertion order so that every traversal in this
// package is deterministic, never dependent on Go's randomized map
// iteration.
type Process struct {
	ID          string
	Objects     map[string]*Object
	ObjectOrder []string
	Flows       map[string]*Flow
	FlowOrder   []string
	Pairs       map[int]*GatewayPair
	PairOrder   []int
}

// NewProcess creates an empty process with the given process id.
func NewProcess(id string) *Process {
	return &Process{
		ID:      id,
		Objects: make(map[string]*Object),
		Flows:   make(map[string]*Flow),
		Pairs:   make(map[int]*GatewayPair),
	}
}

// AddObject registers an object, preserving insertion order. Adding an
// object with an id already present overwrites it in place without
// disturbing its position in ObjectOrder.
func (p *Process) AddObject(o *Object) {
	if _, exists := p.Objects[o.ID]; !exists {
		p.ObjectOrder = append(p.ObjectOrder, o.ID)
	}
	p.Objects[o.ID] = o
}

// AddFlow registers a sequence flow and wires it into both endpoints'
// Incoming/Outgoing lists.
func (p *Process) AddFlow(f *Flow) {
	if _, exists := p.Flows[f.ID]; !exists {
		p.FlowOrder = append(p.FlowOrder, f.ID)
	}
	p.Flows[f.ID] = f
	if src := p.Objects[f.Source]; src != nil {
		src.Outgoing = append(src.Outgoing, f.ID)
	}
	if tgt := p.Objects[f.Target]; tgt != nil {
		tgt.Incoming = append(tgt.Incoming, f.ID)
	}
}

// AddPair registers a gateway pair, preserving insertion order.
func (p *Process) AddPair(pair *GatewayPair) {
	if _, exists := p.Pairs[pair.PairID]; !exists {
		p.PairOrder = append(p.PairOrder, pair.PairID)
	}
	p.Pairs[pair.PairID] = pair
}

// Successors returns the target ids reachable by one outgoing flow
// from id, in flow-encounter order.
func (p *Process) Successors(id string) []string {
	obj := p.Objects[id]
	if obj == nil {
		return nil
	}
	out := make([]string, 0, len(obj.Outgoing))
	for _, fid := range obj.Outgoing {
		if f := p.Flows[fid]; f != nil {
			out = append(out, f.Target)
		}
	}
	return out
}

// Predecessors returns the source ids of one incoming flow into id, in
// flow-encounter order.
func (p *Process) Predecessors(id string) []string {
	obj := p.Objects[id]
	if obj == nil {
		return nil
	}
	out := make([]string, 0, len(obj.Incoming))
	for _, fid := range obj.Incoming {
		if f := p.Flows[fid]; f != nil {
			out = append(out, f.Source)
		}
	}
	return out
}

// FlowBetween returns the id of the (first, in encounter order) flow
// from source directly to target, or "" if none exists.
func (p *Process) FlowBetween(source, target string) string {
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

// StartEventID returns the id of the unique start event, or "" if
// there is none (or the ingest model is not yet well-formed).
func (p *Process) StartEventID() string {
	for _, id := range p.ObjectOrder {
		if o := p.Objects[id]; o.Kind == KindEvent && o.EventKind == StartEvent {
			return id
		}
	}
	return ""
}

// EndEventIDs returns every end event id, in ingest order.
func (p *Process) EndEventIDs() []string {
	var ids []string
	for _, id := range p.ObjectOrder {
		if o := p.Objects[id]; o.Kind == KindEvent && o.EventKind == EndEvent {
			ids = append(ids, id)
		}
	}
	return ids
}

// FlowView is a (source label, target label) pair, used by
// RelationCentricView for debugging a process before/instead of a
// full translation.
type FlowView struct {
	SourceLabel string
	TargetLabel string
}

// RelationCentricView renders every sequence flow as a pair of
// human-readable labels, in flow-encounter order. Supplements
// spec.md with a debug affordance carried over from the original
// Python reference's get_relation_centric_representation.
func (p *Process) RelationCentricView() []FlowView {
	views := make([]FlowView, 0, len(p.FlowOrder))
	for _, fid := range p.FlowOrder {
		f := p.Flows[fid]
		views = append(views, FlowView{
			SourceLabel: p.labelOrID(f.Source),
			TargetLabel: p.labelOrID(f.Target),
		})
	}
	return views
}

func (p *Process) labelOrID(id string) string {
	if o := p.Objects[id]; o != nil {
		return o.Label()
	}
	return id
}

// String renders an object for diagnostic messages.
func (o *Object) String() string {
	name := o.DisplayName
	if name == "" {
		name = o.ID
	}
	return fmt.Sprintf("%s (%s)", name, o.ID)
}
