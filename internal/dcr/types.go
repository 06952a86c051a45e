// Package dcr holds the Dynamic Condition Response graph model that
// the translation engine produces and the emitter serializes: events,
// their markings, and the four relation kinds between them.
package dcr

// RelationKind is one of the four DCR relation types this compiler
// emits.
type RelationKind string

const (
	Condition RelationKind = "condition"
	Response  RelationKind = "response"
	Include   RelationKind = "include"
	Exclude   RelationKind = "exclude"
)

// Marking is a DCR event's execution state: whether it has executed,
// whether it is currently included in the graph, and whether it is
// pending a response.
type Marking struct {
	Executed bool
	Included bool
	Pending  bool
}

// Event is a DCR event: the translation of one BPMN object (a task,
// an event, or a synthetic auxiliary event such as an AND-State or
// OR-State gateway marker).
type Event struct {
	ID      string
	Label   string
	Marking Marking
}

// Relation is a directed DCR relation between two events. Relations
// get no id of their own here: the reference serializer numbers them
// sequentially at emit time, over the final deduplicated list, so the
// emitter owns that counter instead.
type Relation struct {
	Kind   RelationKind
	Source string
	Target string
}

// Graph is the full compiled DCR graph: events and relations in
// deterministic insertion order, keyed by id for O(1) lookup.
type Graph struct {
	ID           string
	Events       map[string]*Event
	EventOrder   []string
	Relations    []*Relation
	relationSeen map[string]bool
}

// NewGraph creates an empty DCR graph with the given id.
func NewGraph(id string) *Graph {
	return &Graph{
		ID:           id,
		Events:       make(map[string]*Event),
		relationSeen: make(map[string]bool),
	}
}

// AddEvent registers an event, preserving insertion order. Adding an
// id already present overwrites the event's fields in place without
// disturbing its position in EventOrder.
func (g *Graph) AddEvent(e *Event) {
	if _, exists := g.Events[e.ID]; !exists {
		g.EventOrder = append(g.EventOrder, e.ID)
	}
	g.Events[e.ID] = e
}

// AddRelation appends a relation. Duplicate (kind, source, target)
// triples are silently skipped: the translation engine's relation
// mapping passes can rediscover the same relation from more than one
// BPMN construct (for example two inclusive branches rejoining through
// the same OR-join), and the DCR graph has no use for a repeated edge.
func (g *Graph) AddRelation(r *Relation) bool {
	key := string(r.Kind) + "|" + r.Source + "|" + r.Target
	if g.relationSeen[key] {
		return false
	}
	g.relationSeen[key] = true
	g.Relations = append(g.Relations, r)
	return true
}
