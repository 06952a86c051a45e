package bpmn

import "github.com/hashicorp/go-multierror"

// Validate runs the full Normalizer/Namer + Gateway Pairing + structural
// rule suite over p and returns the validated process. On any rule
// violation it returns a nil process and a *multierror.Error collecting
// every R1-R4 violation found — validation never stops at the first
// failure, since a caller reporting structural errors wants the whole
// picture in one pass.
func Validate(p *Process) (*Process, error) {
	AssignEventNames(p)

	// Pairing runs before the R1-R3 shape checks because its naming and
	// loop/trace analysis only make sense once the graph has been
	// walked; R4 (unpaired gateways) is a direct product of that walk.
	pairingErrs := PairGateways(p)

	var all []error
	all = append(all, checkStartEnd(p)...)
	all = append(all, checkTaskConnectivity(p)...)
	all = append(all, checkGatewayShape(p)...)
	all = append(all, pairingErrs...)

	if len(all) == 0 {
		return p, nil
	}

	var merr *multierror.Error
	for _, e := range all {
		merr = multierror.Append(merr, e)
	}
	return nil, merr
}
