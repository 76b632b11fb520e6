package webconnectivity

import (
	"github.com/ooni/wcanalysis/internal/config"
	"github.com/ooni/wcanalysis/internal/errorsx"
	"github.com/ooni/wcanalysis/internal/model"
	"github.com/ooni/wcanalysis/internal/runtimex"
	"github.com/ooni/wcanalysis/internal/webconnectivity/internal"
)

// The following set of status flags identifies in a more nuanced way the
// reason why we say something is blocked, accessible, etc. The flags are
// OR-ed together and stored into the x_status test key.
const (
	StatusSuccessSecure             = 1 << iota // success when using HTTPS
	StatusSuccessCleartext                      // success when using HTTP
	StatusSuccessNXDOMAIN                       // probe and control agree on NXDOMAIN
	StatusAnomalyControlUnreachable             // cannot access the control
	StatusAnomalyControlFailure                 // control failed for HTTP
	StatusAnomalyDNS                            // probe seems blocked by the DNS
	StatusAnomalyHTTPDiff                       // probe and control HTTP differ
	StatusAnomalyConnect                        // we saw an error when connecting
	StatusAnomalyReadWrite                      // we saw an error when reading/writing
	StatusAnomalyUnknown                        // we don't know when the error happened
	StatusAnomalyTLSHandshake                   // we think error was during TLS handshake
	StatusExperimentDNS                         // we noticed something in the DNS experiment
	StatusExperimentConnect                     // ... in the connect experiment
	StatusExperimentHTTP                        // ... in the HTTP experiment
	StatusBugNoRequests                         // the probe recorded no HTTP request
)

// The values that BlockingReason may take.
const (
	BlockingDNS         = "dns"
	BlockingTCPIP       = "tcp_ip"
	BlockingHTTPFailure = "http-failure"
	BlockingHTTPDiff    = "http-diff"
)

// Summary contains the Web Connectivity summary.
type Summary struct {
	// Accessible is nil when the measurement failed, true if we do
	// not think there was blocking, false in case of blocking.
	Accessible *bool `json:"accessible"`

	// BlockingReason indicates the cause of blocking when the Accessible
	// variable is false. BlockingReason is meaningless otherwise.
	//
	// This is an intermediate variable used to compute Blocking, which
	// is what OONI data consumers expect to see.
	BlockingReason *string `json:"-"`

	// Blocking implements the blocking variable as expected by OONI
	// data consumers. See DetermineBlocking's docs.
	Blocking any `json:"blocking"`

	// Status contains zero or more status flags.
	Status int64 `json:"x_status"`
}

// Log logs the summary using the given logger.
func (s Summary) Log(logger model.Logger) {
	logger.Infof("Blocking: %+v", internal.StringPointerToString(s.BlockingReason))
	logger.Infof("Accessible: %+v", internal.BoolPointerToString(s.Accessible))
}

// DetermineBlocking returns the value of Summary.Blocking according to
// the expectations of OONI data consumers (nettests/ts-017).
//
// Measurement Kit sets blocking to false when accessible is true. Data
// consumers take null to mean the measurement failed, false to mean no
// blocking, and a string to mean the reason for blocking.
func DetermineBlocking(s Summary) any {
	if s.Accessible != nil && *s.Accessible {
		return false
	}
	if s.BlockingReason == nil {
		return nil
	}
	return *s.BlockingReason
}

// Classify reduces the signals to a [Summary] using the given classifier
// settings. A nil cfg means the default settings.
//
// Classify panics with an error wrapping [ErrContractViolation] if the
// signals are not valid. Use [ClassifySafely] when the signals come
// from an untrusted source.
func Classify(s *Signals, cfg *config.Classifier) Summary {
	runtimex.PanicIfNil(s, "webconnectivity: nil signals")
	runtimex.PanicOnError(s.Validate(), "webconnectivity: cannot classify")
	out := classify(s, diffThreshold(cfg))
	out.Blocking = DetermineBlocking(out)
	return out
}

// ClassifySafely is like [Classify] but returns an error rather than
// panicking when the signals are not valid.
func ClassifySafely(s *Signals, cfg *config.Classifier) (out Summary, err error) {
	err = runtimex.Catch(func() {
		out = Classify(s, cfg)
	})
	return
}

func diffThreshold(cfg *config.Classifier) float64 {
	if cfg == nil || cfg.DiffThreshold <= 0 {
		return config.Default().Classifier.DiffThreshold
	}
	return cfg.DiffThreshold
}

func classify(s *Signals, threshold float64) (out Summary) {
	var (
		accessible   = true
		inaccessible = false
		dns          = BlockingDNS
		httpDiff     = BlockingHTTPDiff
		httpFailure  = BlockingHTTPFailure
		tcpIP        = BlockingTCPIP
	)

	// Without the control we cannot say anything.
	if s.ControlFailure != nil {
		out.Status |= StatusAnomalyControlUnreachable
		return
	}

	// A lying resolver explains any failure or difference that follows.
	if s.dnsInconsistent() && (s.DNSExperimentFailure != nil || s.HTTPExperimentFailure != nil ||
		s.tcpTotalFailure() || s.contentMismatch(threshold)) {
		out.BlockingReason = &dns
		out.Accessible = &inaccessible
		out.Status |= StatusAnomalyDNS
		switch {
		case s.DNSExperimentFailure != nil:
			out.Status |= StatusExperimentDNS
		case s.tcpTotalFailure():
			out.Status |= StatusAnomalyConnect | StatusExperimentConnect
		case s.HTTPExperimentFailure != nil:
			out.Status |= StatusExperimentHTTP | failureStatus(*s.HTTPExperimentFailure)
		default:
			out.Status |= StatusAnomalyHTTPDiff
		}
		return
	}

	// We never managed to connect to the addresses the DNS gave us.
	if !s.dnsInconsistent() && (s.tcpTotalFailure() || (s.HTTPExperimentFailure != nil &&
		errorsx.IsTCPIPFailure(*s.HTTPExperimentFailure, s.HTTPFailedOperation) &&
		s.TCPConnectSuccesses == 0)) {
		out.BlockingReason = &tcpIP
		out.Accessible = &inaccessible
		out.Status |= StatusAnomalyConnect | StatusExperimentConnect
		return
	}

	// The HTTP fetch usually fails in the same lookup when the probe
	// resolver fails, so a DNS failure there adds no information.
	if s.DNSExperimentFailure != nil && s.dnsConsistent() && (s.HTTPExperimentFailure == nil ||
		errorsx.Kind(*s.HTTPExperimentFailure) == errorsx.KindDNS) {
		// The website does not exist anymore.
		if *s.DNSExperimentFailure == errorsx.FailureDNSNXDOMAINError {
			out.Accessible = &accessible
			out.Status |= StatusSuccessNXDOMAIN | StatusExperimentDNS
			return
		}
		out.Status |= StatusExperimentDNS | StatusAnomalyUnknown
		return
	}

	// The website is broken also for the control (e.g., bad certificate).
	if s.ControlHTTPFailure != nil {
		out.Status |= StatusAnomalyControlFailure
		return
	}

	// Nothing to examine: the collector did not fetch the URL.
	if s.NoRequests {
		out.Status |= StatusBugNoRequests
		return
	}

	if s.HTTPExperimentFailure != nil {
		failure := *s.HTTPExperimentFailure
		out.Accessible = &inaccessible
		out.Status |= StatusExperimentHTTP | failureStatus(failure)
		out.BlockingReason = &httpFailure
		if errorsx.Kind(failure) == errorsx.KindDNS {
			// resolving a domain later in the redirect chain failed
			out.BlockingReason = &dns
		}
		return
	}

	// A successful fetch over HTTPS means we talked with the real server.
	if s.Secure {
		out.Accessible = &accessible
		out.Status |= StatusSuccessSecure
		return
	}

	if s.contentMismatch(threshold) {
		out.BlockingReason = &httpDiff
		out.Accessible = &inaccessible
		out.Status |= StatusAnomalyHTTPDiff
		return
	}

	out.Accessible = &accessible
	out.Status |= StatusSuccessCleartext
	return
}

// failureStatus maps a failure string to the status flag describing
// the layer where the failure occurred.
func failureStatus(failure string) int64 {
	switch errorsx.Kind(failure) {
	case errorsx.KindConnectRefused:
		return StatusAnomalyConnect
	case errorsx.KindConnectReset, errorsx.KindEOF:
		return StatusAnomalyReadWrite
	case errorsx.KindTLS:
		return StatusAnomalyTLSHandshake
	case errorsx.KindDNS:
		return StatusAnomalyDNS
	default:
		return StatusAnomalyUnknown
	}
}
