package webconnectivityqa

import (
	"errors"

	"github.com/ooni/wcanalysis/internal/webconnectivity"
)

// Checker checks whether test keys are valid beyond the expected fields.
type Checker interface {
	Check(tk *webconnectivity.TestKeys) error
}

var (
	// ErrCheckerControlFailureNotUnknown indicates that a control
	// failure did not lead to an unknown verdict.
	ErrCheckerControlFailureNotUnknown = errors.New("control failure with known verdict")

	// ErrCheckerAccessibleNotBlockingFalse indicates that accessible
	// is true but blocking is not false, or the other way around.
	ErrCheckerAccessibleNotBlockingFalse = errors.New("accessible true but blocking not false")

	// ErrCheckerProportionWithFailure indicates a nonzero body proportion
	// along with a failure.
	ErrCheckerProportionWithFailure = errors.New("nonzero body_proportion with failure")

	// ErrCheckerInvalidBlocking indicates a blocking value we never produce.
	ErrCheckerInvalidBlocking = errors.New("invalid blocking value")
)

// InvariantsChecker checks the invariants every verdict must satisfy.
type InvariantsChecker struct{}

var _ Checker = &InvariantsChecker{}

// Check implements Checker.
func (*InvariantsChecker) Check(tk *webconnectivity.TestKeys) error {
	if tk.ControlFailure != nil && (tk.Blocking != nil || tk.Accessible != nil) {
		return ErrCheckerControlFailureNotUnknown
	}
	accessible := tk.Accessible != nil && *tk.Accessible
	if accessible != (tk.Blocking == false) {
		return ErrCheckerAccessibleNotBlockingFalse
	}
	if (tk.ControlFailure != nil || tk.HTTPExperimentFailure != nil) && tk.BodyProportion != 0 {
		return ErrCheckerProportionWithFailure
	}
	switch tk.Blocking {
	case nil, false, webconnectivity.BlockingDNS, webconnectivity.BlockingTCPIP,
		webconnectivity.BlockingHTTPFailure, webconnectivity.BlockingHTTPDiff:
		return nil
	default:
		return ErrCheckerInvalidBlocking
	}
}

// ErrCheckerControlUnreachableNotSet indicates that the status does not
// flag the control as unreachable.
var ErrCheckerControlUnreachableNotSet = errors.New("control unreachable status flag not set")

// ControlFailureChecker checks that a measurement with a control failure
// reports exactly the control unreachable status.
type ControlFailureChecker struct{}

var _ Checker = &ControlFailureChecker{}

// Check implements Checker.
func (*ControlFailureChecker) Check(tk *webconnectivity.TestKeys) error {
	if tk.Status != webconnectivity.StatusAnomalyControlUnreachable {
		return ErrCheckerControlUnreachableNotSet
	}
	if tk.Accessible != nil || tk.Blocking != nil {
		return ErrCheckerControlFailureNotUnknown
	}
	return nil
}
