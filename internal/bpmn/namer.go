package bpmn

import "fmt"

// AssignEventNames is the Normalizer & Namer: it gives the unique
// start event the canonical name "Start Event" and numbers end events
// "End Event 1", "End Event 2", ... in ingest order. Gateway naming is
// owned by the pairing pass (PairGateways), since it depends on pair
// discovery.
//
// AssignEventNames does not itself enforce "exactly one start event" —
// that is rule R1, checked later by checkStartEnd. If ingest produced
// zero or more than one start-kind event, every one of them is named
// "Start Event" here; the duplicate/missing-start violation surfaces
// as an R1 error downstream instead of being silently resolved here.
func AssignEventNames(p *Process) {
	for _, id := range p.ObjectOrder {
		o := p.Objects[id]
		if o.Kind == KindEvent && o.EventKind == StartEvent {
			o.CanonicalName = "Start Event"
		}
	}

	n := 1
	for _, id := range p.ObjectOrder {
		o := p.Objects[id]
		if o.Kind == KindEvent && o.EventKind == EndEvent {
			o.CanonicalName = fmt.Sprintf("End Event %d", n)
			n++
		}
	}
}
