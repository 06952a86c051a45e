package bpmn

import "fmt"

// ProcessBuilder is a fluent fixture builder for constructing a Process
// directly in Go, without going through the XML ingest path. It exists
// for tests: the tests in this package and the unit tests of
// internal/translate build their scenario graphs through it rather than
// hand-writing BPMN XML (the translate integration tests do use XML).
type ProcessBuilder struct {
	process *Process
	flowSeq int
}

// NewProcessBuilder starts a builder for a process with the given id.
func NewProcessBuilder(id string) *ProcessBuilder {
	return &ProcessBuilder{process: NewProcess(id)}
}

// StartEvent adds a start event node.
func (b *ProcessBuilder) StartEvent(id string) *ProcessBuilder {
	b.process.AddObject(&Object{ID: id, Kind: KindEvent, EventKind: StartEvent, DisplayName: id})
	return b
}

// EndEvent adds an end event node.
func (b *ProcessBuilder) EndEvent(id string) *ProcessBuilder {
	b.process.AddObject(&Object{ID: id, Kind: KindEvent, EventKind: EndEvent, DisplayName: id})
	return b
}

// Task adds a task node with the given display name.
func (b *ProcessBuilder) Task(id, name string) *ProcessBuilder {
	b.process.AddObject(&Object{ID: id, Kind: KindTask, DisplayName: name})
	return b
}

// Gateway adds a gateway node of the given kind. Its Split/Join role is
// derived later, during PairGateways, from the flows wired to it.
func (b *ProcessBuilder) Gateway(id string, kind GatewayKind) *ProcessBuilder {
	b.process.AddObject(&Object{ID: id, Kind: KindGateway, GatewayKind: kind, DisplayName: id})
	return b
}

// Flow wires a sequence flow from -> to, auto-numbering its id.
func (b *ProcessBuilder) Flow(from, to string) *ProcessBuilder {
	b.flowSeq++
	b.process.AddFlow(&Flow{ID: fmt.Sprintf("flow_%d", b.flowSeq), Source: from, Target: to})
	return b
}

// Build returns the assembled, not-yet-validated process.
func (b *ProcessBuilder) Build() *Process {
	return b.process
}
