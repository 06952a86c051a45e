package bpmn

import "fmt"

// checkStartEnd enforces R1: exactly one start event, at least one end
// event.
func checkStartEnd(p *Process) []error {
	var starts, ends int
	for _, id := range p.ObjectOrder {
		o := p.Objects[id]
		if o.Kind != KindEvent {
			continue
		}
		switch o.EventKind {
		case StartEvent:
			starts++
		case EndEvent:
			ends++
		}
	}

	var errs []error
	if starts != 1 {
		errs = append(errs, &RuleError{Rule: "R1", Message: fmt.Sprintf("process must have exactly one start event, found %d", starts)})
	}
	if ends < 1 {
		errs = append(errs, &RuleError{Rule: "R1", Message: "process must have at least one end event, found 0"})
	}
	return errs
}

// checkTaskConnectivity enforces R2: every task has exactly one
// incoming and one outgoing sequence flow.
func checkTaskConnectivity(p *Process) []error {
	var errs []error
	for _, id := range p.ObjectOrder {
		o := p.Objects[id]
		if o.Kind != KindTask {
			continue
		}
		if len(o.Incoming) != 1 {
			errs = append(errs, &RuleError{Rule: "R2", Message: fmt.Sprintf("task %s must have exactly one incoming flow, found %d", o, len(o.Incoming))})
		}
		if len(o.Outgoing) != 1 {
			errs = append(errs, &RuleError{Rule: "R2", Message: fmt.Sprintf("task %s must have exactly one outgoing flow, found %d", o, len(o.Outgoing))})
		}
	}
	return errs
}

// checkGatewayShape enforces R3: every gateway is structurally a
// split (1 in, >1 out) or a join (>1 in, 1 out). Anything else is
// malformed and is reported here regardless of whether pairing later
// also flags it unpaired under R4.
func checkGatewayShape(p *Process) []error {
	var errs []error
	for _, id := range p.ObjectOrder {
		o := p.Objects[id]
		if o.Kind != KindGateway {
			continue
		}
		in, out := len(o.Incoming), len(o.Outgoing)
		isSplit := in == 1 && out > 1
		isJoin := in > 1 && out == 1
		if !isSplit && !isJoin {
			errs = append(errs, &RuleError{Rule: "R3", Message: fmt.Sprintf(
				"gateway %s has %d incoming and %d outgoing flows, fits neither Split (1 in, >1 out) nor Join (>1 in, 1 out)",
				o, in, out)})
		}
	}
	return errs
}
