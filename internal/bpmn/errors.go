package bpmn

import "fmt"

// RuleError is a single structural-validation violation, tagged with
// the spec rule it breaks (R1-R4) so CLI/HTTP callers can report it
// verbatim.
type RuleError struct {
	Rule    string
	Message string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("Validation Failed [%s]: %s", e.Rule, e.Message)
}
