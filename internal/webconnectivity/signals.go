package webconnectivity

import (
	"errors"
	"fmt"
	"math"

	"github.com/ooni/wcanalysis/internal/optional"
)

// DNSConsistency is the result of comparing the probe and control DNS.
type DNSConsistency string

const (
	// DNSConsistent means the probe DNS agrees with the control.
	DNSConsistent = DNSConsistency("consistent")

	// DNSInconsistent means the probe DNS disagrees with the control.
	DNSInconsistent = DNSConsistency("inconsistent")
)

// DNSAnalysisResult contains the results of analysing comparing
// the measurement and the control DNS results.
type DNSAnalysisResult struct {
	DNSConsistency optional.Value[DNSConsistency] `json:"dns_consistency"`
}

// Signals contains the observations the classifier reduces to a verdict.
type Signals struct {
	DNSExperimentFailure *string `json:"dns_experiment_failure"`
	DNSAnalysisResult
	ControlFailure        *string `json:"control_failure"`
	HTTPExperimentFailure *string `json:"http_experiment_failure"`
	HTTPAnalysisResult

	// ControlHTTPFailure is the failure the control saw when fetching
	// the website, e.g., because its certificate is invalid.
	ControlHTTPFailure *string `json:"-"`

	// HTTPFailedOperation is the operation that caused HTTPExperimentFailure.
	HTTPFailedOperation string `json:"-"`

	// TCPConnectAttempts is the number of probe TCP connects.
	TCPConnectAttempts int64 `json:"-"`

	// TCPConnectSuccesses is the number of successful probe TCP connects.
	TCPConnectSuccesses int64 `json:"-"`

	// Secure indicates the final probe request used https.
	Secure bool `json:"-"`

	// NoRequests indicates the observations contain no HTTP request
	// even though the probe should have fetched the input URL.
	NoRequests bool `json:"-"`
}

// ErrContractViolation indicates that [Signals] contains a combination of
// fields the analyzers never produce.
var ErrContractViolation = errors.New("webconnectivity: contract violation")

func contractViolation(format string, v ...any) error {
	return fmt.Errorf("%w: %s", ErrContractViolation, fmt.Sprintf(format, v...))
}

// hasContentComparison returns whether any content comparison field is set.
func (s *Signals) hasContentComparison() bool {
	return s.BodyLengthMatch != nil || s.BodyProportion != 0 || s.StatusCodeMatch != nil ||
		s.HeadersMatch != nil || s.TitleMatch != nil
}

// Validate returns an error wrapping [ErrContractViolation] if the
// signals are not internally consistent.
func (s *Signals) Validate() error {
	if s.DNSConsistency.IsSome() {
		switch v := s.DNSConsistency.Unwrap(); v {
		case DNSConsistent, DNSInconsistent:
		default:
			return contractViolation("unknown dns_consistency %q", v)
		}
	}
	if math.IsNaN(s.BodyProportion) || s.BodyProportion < 0 || s.BodyProportion > 1 {
		return contractViolation("body_proportion %f outside of [0, 1]", s.BodyProportion)
	}
	if s.ControlFailure != nil && (s.DNSConsistency.IsSome() || s.hasContentComparison()) {
		return contractViolation("control_failure set along with comparison results")
	}
	if s.HTTPExperimentFailure != nil && s.hasContentComparison() {
		return contractViolation("http_experiment_failure set along with content comparison")
	}
	if s.NoRequests && (s.HTTPExperimentFailure != nil || s.hasContentComparison()) {
		return contractViolation("HTTP results without any HTTP request")
	}
	if s.TCPConnectAttempts < 0 || s.TCPConnectSuccesses < 0 {
		return contractViolation("negative TCP connect counters")
	}
	if s.TCPConnectSuccesses > s.TCPConnectAttempts {
		return contractViolation("more TCP connect successes than attempts")
	}
	return nil
}

// dnsInconsistent returns whether DNS is known to be inconsistent. We
// treat a missing dns_consistency as not inconsistent.
func (s *Signals) dnsInconsistent() bool {
	return s.DNSConsistency.UnwrapOr("") == DNSInconsistent
}

// dnsConsistent returns whether DNS is known to be consistent.
func (s *Signals) dnsConsistent() bool {
	return s.DNSConsistency.UnwrapOr("") == DNSConsistent
}

// tcpTotalFailure returns whether every probe TCP connect failed.
func (s *Signals) tcpTotalFailure() bool {
	return s.TCPConnectAttempts > 0 && s.TCPConnectSuccesses == 0
}

// contentMismatch returns whether any content comparison failed.
func (s *Signals) contentMismatch(threshold float64) bool {
	for _, match := range []*bool{s.StatusCodeMatch, s.HeadersMatch, s.TitleMatch, s.BodyLengthMatch} {
		if match != nil && !*match {
			return true
		}
	}
	// a zero proportion without a body length match means we did not compare
	compared := s.BodyLengthMatch != nil || s.BodyProportion > 0
	return compared && s.BodyProportion < threshold
}
