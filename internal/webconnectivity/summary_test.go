package webconnectivity_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ooni/wcanalysis/internal/config"
	"github.com/ooni/wcanalysis/internal/errorsx"
	"github.com/ooni/wcanalysis/internal/optional"
	"github.com/ooni/wcanalysis/internal/webconnectivity"
)

func TestClassify(t *testing.T) {
	var (
		genericFailure         = "unknown_failure: antani"
		certificateVerify      = "certificate verify failed: self signed certificate"
		dns                    = webconnectivity.BlockingDNS
		falseValue             = false
		httpDiff               = webconnectivity.BlockingHTTPDiff
		httpFailure            = webconnectivity.BlockingHTTPFailure
		probeConnectionRefused = errorsx.FailureConnectionRefused
		probeConnectionReset   = errorsx.FailureConnectionReset
		probeEOFError          = errorsx.FailureEOFError
		probeNXDOMAIN          = errorsx.FailureDNSNXDOMAINError
		probeLookupError       = errorsx.FailureDNSLookupError
		probeTimeout           = errorsx.FailureGenericTimeoutError
		probeSSLInvalidHost    = errorsx.FailureSSLInvalidHostname
		tcpIP                  = webconnectivity.BlockingTCPIP
		trueValue              = true
		consistent             = webconnectivity.DNSAnalysisResult{
			DNSConsistency: optional.Some(webconnectivity.DNSConsistent),
		}
		inconsistent = webconnectivity.DNSAnalysisResult{
			DNSConsistency: optional.Some(webconnectivity.DNSInconsistent),
		}
		perfectMatch = webconnectivity.HTTPAnalysisResult{
			BodyLengthMatch: &trueValue,
			BodyProportion:  1,
			StatusCodeMatch: &trueValue,
			HeadersMatch:    &trueValue,
			TitleMatch:      &trueValue,
		}
		blockpage = webconnectivity.HTTPAnalysisResult{
			BodyLengthMatch: &falseValue,
			BodyProportion:  0.12,
			StatusCodeMatch: &falseValue,
			HeadersMatch:    &falseValue,
			TitleMatch:      &falseValue,
		}
	)
	tests := []struct {
		name    string
		signals *webconnectivity.Signals
		wantOut webconnectivity.Summary
	}{{
		name: "with failure in contacting the control",
		signals: &webconnectivity.Signals{
			ControlFailure: &probeConnectionReset,
		},
		wantOut: webconnectivity.Summary{
			Blocking: nil,
			Status:   webconnectivity.StatusAnomalyControlUnreachable,
		},
	}, {
		name: "with failure in contacting the control for an HTTPS website",
		signals: &webconnectivity.Signals{
			ControlFailure: &genericFailure,
			Secure:         true,
		},
		wantOut: webconnectivity.Summary{
			Blocking: nil,
			Status:   webconnectivity.StatusAnomalyControlUnreachable,
		},
	}, {
		name: "with consistent DNS and matching content",
		signals: &webconnectivity.Signals{
			DNSAnalysisResult:  consistent,
			HTTPAnalysisResult: perfectMatch,
		},
		wantOut: webconnectivity.Summary{
			Accessible: &trueValue,
			Blocking:   false,
			Status:     webconnectivity.StatusSuccessCleartext,
		},
	}, {
		name: "with missing DNS consistency and matching content",
		signals: &webconnectivity.Signals{
			HTTPAnalysisResult: perfectMatch,
		},
		wantOut: webconnectivity.Summary{
			Accessible: &trueValue,
			Blocking:   false,
			Status:     webconnectivity.StatusSuccessCleartext,
		},
	}, {
		name: "with consistent DNS and a timeout",
		signals: &webconnectivity.Signals{
			DNSAnalysisResult:     consistent,
			HTTPExperimentFailure: &probeTimeout,
		},
		wantOut: webconnectivity.Summary{
			Accessible:     &falseValue,
			BlockingReason: &tcpIP,
			Blocking:       tcpIP,
			Status:         webconnectivity.StatusAnomalyConnect | webconnectivity.StatusExperimentConnect,
		},
	}, {
		name: "with inconsistent DNS and connection refused",
		signals: &webconnectivity.Signals{
			DNSAnalysisResult:     inconsistent,
			HTTPExperimentFailure: &probeConnectionRefused,
			HTTPFailedOperation:   errorsx.ConnectOperation,
		},
		wantOut: webconnectivity.Summary{
			Accessible:     &falseValue,
			BlockingReason: &dns,
			Blocking:       dns,
			Status: webconnectivity.StatusAnomalyDNS | webconnectivity.StatusExperimentHTTP |
				webconnectivity.StatusAnomalyConnect,
		},
	}, {
		name: "with consistent DNS and a blockpage",
		signals: &webconnectivity.Signals{
			DNSAnalysisResult:  consistent,
			HTTPAnalysisResult: blockpage,
		},
		wantOut: webconnectivity.Summary{
			Accessible:     &falseValue,
			BlockingReason: &httpDiff,
			Blocking:       httpDiff,
			Status:         webconnectivity.StatusAnomalyHTTPDiff,
		},
	}, {
		name: "with non-existing website",
		signals: &webconnectivity.Signals{
			DNSExperimentFailure: &probeNXDOMAIN,
			DNSAnalysisResult:    consistent,
		},
		wantOut: webconnectivity.Summary{
			Accessible: &trueValue,
			Blocking:   false,
			Status:     webconnectivity.StatusSuccessNXDOMAIN | webconnectivity.StatusExperimentDNS,
		},
	}, {
		name: "with a website that does not resolve anywhere",
		signals: &webconnectivity.Signals{
			DNSExperimentFailure: &probeLookupError,
			DNSAnalysisResult:    consistent,
		},
		wantOut: webconnectivity.Summary{
			Blocking: nil,
			Status:   webconnectivity.StatusExperimentDNS | webconnectivity.StatusAnomalyUnknown,
		},
	}, {
		name: "with non-existing website and the HTTP request failing to resolve",
		signals: &webconnectivity.Signals{
			DNSExperimentFailure:  &probeNXDOMAIN,
			DNSAnalysisResult:     consistent,
			HTTPExperimentFailure: &probeNXDOMAIN,
		},
		wantOut: webconnectivity.Summary{
			Accessible: &trueValue,
			Blocking:   false,
			Status:     webconnectivity.StatusSuccessNXDOMAIN | webconnectivity.StatusExperimentDNS,
		},
	}, {
		name: "with a website that does not resolve anywhere and the HTTP request failing to resolve",
		signals: &webconnectivity.Signals{
			DNSExperimentFailure:  &probeLookupError,
			DNSAnalysisResult:     consistent,
			HTTPExperimentFailure: &probeLookupError,
		},
		wantOut: webconnectivity.Summary{
			Blocking: nil,
			Status:   webconnectivity.StatusExperimentDNS | webconnectivity.StatusAnomalyUnknown,
		},
	}, {
		name: "with consistent DNS and a short body without a body length match",
		signals: &webconnectivity.Signals{
			DNSAnalysisResult: consistent,
			HTTPAnalysisResult: webconnectivity.HTTPAnalysisResult{
				BodyProportion:  0.5,
				StatusCodeMatch: &trueValue,
				HeadersMatch:    &trueValue,
				TitleMatch:      &trueValue,
			},
		},
		wantOut: webconnectivity.Summary{
			Accessible:     &falseValue,
			BlockingReason: &httpDiff,
			Blocking:       httpDiff,
			Status:         webconnectivity.StatusAnomalyHTTPDiff,
		},
	}, {
		name: "with consistent DNS and no HTTP requests",
		signals: &webconnectivity.Signals{
			DNSAnalysisResult:   consistent,
			NoRequests:          true,
			TCPConnectAttempts:  1,
			TCPConnectSuccesses: 1,
		},
		wantOut: webconnectivity.Summary{
			Blocking: nil,
			Status:   webconnectivity.StatusBugNoRequests,
		},
	}, {
		name: "with NXDOMAIN and inconsistent DNS",
		signals: &webconnectivity.Signals{
			DNSExperimentFailure:  &probeNXDOMAIN,
			DNSAnalysisResult:     inconsistent,
			HTTPExperimentFailure: &probeNXDOMAIN,
		},
		wantOut: webconnectivity.Summary{
			Accessible:     &falseValue,
			BlockingReason: &dns,
			Blocking:       dns,
			Status:         webconnectivity.StatusAnomalyDNS | webconnectivity.StatusExperimentDNS,
		},
	}, {
		name: "with a blockpage and inconsistent DNS",
		signals: &webconnectivity.Signals{
			DNSAnalysisResult:  inconsistent,
			HTTPAnalysisResult: blockpage,
		},
		wantOut: webconnectivity.Summary{
			Accessible:     &falseValue,
			BlockingReason: &dns,
			Blocking:       dns,
			Status:         webconnectivity.StatusAnomalyDNS | webconnectivity.StatusAnomalyHTTPDiff,
		},
	}, {
		name: "with inconsistent DNS and matching content",
		signals: &webconnectivity.Signals{
			DNSAnalysisResult:  inconsistent,
			HTTPAnalysisResult: perfectMatch,
		},
		wantOut: webconnectivity.Summary{
			Accessible: &trueValue,
			Blocking:   false,
			Status:     webconnectivity.StatusSuccessCleartext,
		},
	}, {
		name: "with inconsistent DNS and no successful connect",
		signals: &webconnectivity.Signals{
			DNSAnalysisResult:     inconsistent,
			HTTPExperimentFailure: &probeTimeout,
			TCPConnectAttempts:    2,
		},
		wantOut: webconnectivity.Summary{
			Accessible:     &falseValue,
			BlockingReason: &dns,
			Blocking:       dns,
			Status: webconnectivity.StatusAnomalyDNS | webconnectivity.StatusAnomalyConnect |
				webconnectivity.StatusExperimentConnect,
		},
	}, {
		name: "with consistent DNS and no successful connect",
		signals: &webconnectivity.Signals{
			DNSAnalysisResult:     consistent,
			HTTPExperimentFailure: &probeConnectionRefused,
			HTTPFailedOperation:   errorsx.ConnectOperation,
			TCPConnectAttempts:    2,
		},
		wantOut: webconnectivity.Summary{
			Accessible:     &falseValue,
			BlockingReason: &tcpIP,
			Blocking:       tcpIP,
			Status:         webconnectivity.StatusAnomalyConnect | webconnectivity.StatusExperimentConnect,
		},
	}, {
		name: "with connection refused later in the redirect chain",
		signals: &webconnectivity.Signals{
			DNSAnalysisResult:     consistent,
			HTTPExperimentFailure: &probeConnectionRefused,
			HTTPFailedOperation:   errorsx.ConnectOperation,
			TCPConnectAttempts:    2,
			TCPConnectSuccesses:   1,
		},
		wantOut: webconnectivity.Summary{
			Accessible:     &falseValue,
			BlockingReason: &httpFailure,
			Blocking:       httpFailure,
			Status:         webconnectivity.StatusExperimentHTTP | webconnectivity.StatusAnomalyConnect,
		},
	}, {
		name: "with connection reset during the TLS handshake",
		signals: &webconnectivity.Signals{
			DNSAnalysisResult:     consistent,
			HTTPExperimentFailure: &probeConnectionReset,
			HTTPFailedOperation:   errorsx.TLSHandshakeOperation,
			TCPConnectAttempts:    1,
			TCPConnectSuccesses:   1,
		},
		wantOut: webconnectivity.Summary{
			Accessible:     &falseValue,
			BlockingReason: &httpFailure,
			Blocking:       httpFailure,
			Status:         webconnectivity.StatusExperimentHTTP | webconnectivity.StatusAnomalyReadWrite,
		},
	}, {
		name: "with EOF error",
		signals: &webconnectivity.Signals{
			DNSAnalysisResult:     consistent,
			HTTPExperimentFailure: &probeEOFError,
			HTTPFailedOperation:   errorsx.ReadOperation,
			TCPConnectAttempts:    1,
			TCPConnectSuccesses:   1,
		},
		wantOut: webconnectivity.Summary{
			Accessible:     &falseValue,
			BlockingReason: &httpFailure,
			Blocking:       httpFailure,
			Status:         webconnectivity.StatusExperimentHTTP | webconnectivity.StatusAnomalyReadWrite,
		},
	}, {
		name: "with timeout during the TLS handshake",
		signals: &webconnectivity.Signals{
			DNSAnalysisResult:     consistent,
			HTTPExperimentFailure: &probeTimeout,
			HTTPFailedOperation:   errorsx.TLSHandshakeOperation,
			TCPConnectAttempts:    1,
			TCPConnectSuccesses:   1,
		},
		wantOut: webconnectivity.Summary{
			Accessible:     &falseValue,
			BlockingReason: &httpFailure,
			Blocking:       httpFailure,
			Status:         webconnectivity.StatusExperimentHTTP | webconnectivity.StatusAnomalyUnknown,
		},
	}, {
		name: "with invalid TLS hostname",
		signals: &webconnectivity.Signals{
			DNSAnalysisResult:     consistent,
			HTTPExperimentFailure: &probeSSLInvalidHost,
			HTTPFailedOperation:   errorsx.TLSHandshakeOperation,
			TCPConnectAttempts:    1,
			TCPConnectSuccesses:   1,
		},
		wantOut: webconnectivity.Summary{
			Accessible:     &falseValue,
			BlockingReason: &httpFailure,
			Blocking:       httpFailure,
			Status:         webconnectivity.StatusExperimentHTTP | webconnectivity.StatusAnomalyTLSHandshake,
		},
	}, {
		name: "with an unrecognized failure string",
		signals: &webconnectivity.Signals{
			DNSAnalysisResult:     consistent,
			HTTPExperimentFailure: &certificateVerify,
		},
		wantOut: webconnectivity.Summary{
			Accessible:     &falseValue,
			BlockingReason: &httpFailure,
			Blocking:       httpFailure,
			Status:         webconnectivity.StatusExperimentHTTP | webconnectivity.StatusAnomalyUnknown,
		},
	}, {
		name: "with NXDOMAIN later in the redirect chain",
		signals: &webconnectivity.Signals{
			DNSAnalysisResult:     consistent,
			HTTPExperimentFailure: &probeNXDOMAIN,
			HTTPFailedOperation:   errorsx.ResolveOperation,
			TCPConnectAttempts:    1,
			TCPConnectSuccesses:   1,
		},
		wantOut: webconnectivity.Summary{
			Accessible:     &falseValue,
			BlockingReason: &dns,
			Blocking:       dns,
			Status:         webconnectivity.StatusExperimentHTTP | webconnectivity.StatusAnomalyDNS,
		},
	}, {
		name: "with the control failing to fetch the website",
		signals: &webconnectivity.Signals{
			DNSAnalysisResult:     consistent,
			ControlHTTPFailure:    &probeSSLInvalidHost,
			HTTPExperimentFailure: &probeSSLInvalidHost,
			HTTPFailedOperation:   errorsx.TLSHandshakeOperation,
			TCPConnectAttempts:    1,
			TCPConnectSuccesses:   1,
		},
		wantOut: webconnectivity.Summary{
			Blocking: nil,
			Status:   webconnectivity.StatusAnomalyControlFailure,
		},
	}, {
		name: "with a successful HTTPS request",
		signals: &webconnectivity.Signals{
			DNSAnalysisResult:   consistent,
			TCPConnectAttempts:  1,
			TCPConnectSuccesses: 1,
			Secure:              true,
		},
		wantOut: webconnectivity.Summary{
			Accessible: &trueValue,
			Blocking:   false,
			Status:     webconnectivity.StatusSuccessSecure,
		},
	}, {
		name: "with a successful HTTPS request and different content",
		signals: &webconnectivity.Signals{
			DNSAnalysisResult:  consistent,
			HTTPAnalysisResult: blockpage,
			Secure:             true,
		},
		wantOut: webconnectivity.Summary{
			Accessible: &trueValue,
			Blocking:   false,
			Status:     webconnectivity.StatusSuccessSecure,
		},
	}, {
		name: "with matching booleans but a slightly different body",
		signals: &webconnectivity.Signals{
			DNSAnalysisResult: consistent,
			HTTPAnalysisResult: webconnectivity.HTTPAnalysisResult{
				BodyLengthMatch: &trueValue,
				BodyProportion:  0.97,
				StatusCodeMatch: &trueValue,
				HeadersMatch:    &trueValue,
				TitleMatch:      &trueValue,
			},
		},
		wantOut: webconnectivity.Summary{
			Accessible:     &falseValue,
			BlockingReason: &httpDiff,
			Blocking:       httpDiff,
			Status:         webconnectivity.StatusAnomalyHTTPDiff,
		},
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotOut := webconnectivity.Classify(tt.signals, nil)
			if diff := cmp.Diff(tt.wantOut, gotOut); diff != "" {
				t.Fatal(diff)
			}
			if diff := cmp.Diff(gotOut, webconnectivity.Classify(tt.signals, nil)); diff != "" {
				t.Fatal("classification is not idempotent", diff)
			}
			accessible := gotOut.Accessible != nil && *gotOut.Accessible
			if accessible != (gotOut.Blocking == false) {
				t.Fatal("accessible must be true iff blocking is false")
			}
			if tt.signals.ControlFailure != nil && (gotOut.Blocking != nil || gotOut.Accessible != nil) {
				t.Fatal("a control failure must produce an unknown verdict")
			}
		})
	}
}

func TestClassifyDiffThreshold(t *testing.T) {
	trueValue := true
	signals := &webconnectivity.Signals{
		DNSAnalysisResult: webconnectivity.DNSAnalysisResult{
			DNSConsistency: optional.Some(webconnectivity.DNSConsistent),
		},
		HTTPAnalysisResult: webconnectivity.HTTPAnalysisResult{
			BodyLengthMatch: &trueValue,
			BodyProportion:  0.97,
			StatusCodeMatch: &trueValue,
			HeadersMatch:    &trueValue,
			TitleMatch:      &trueValue,
		},
	}

	t.Run("with a threshold below the proportion", func(t *testing.T) {
		cfg := &config.Classifier{DiffThreshold: 0.9}
		summary := webconnectivity.Classify(signals, cfg)
		if summary.Blocking != false || summary.Status != webconnectivity.StatusSuccessCleartext {
			t.Fatalf("unexpected summary: %+v", summary)
		}
	})

	t.Run("with a zero threshold meaning the default", func(t *testing.T) {
		cfg := &config.Classifier{}
		summary := webconnectivity.Classify(signals, cfg)
		if summary.Blocking != webconnectivity.BlockingHTTPDiff {
			t.Fatalf("unexpected summary: %+v", summary)
		}
	})
}

func TestClassifyContractViolation(t *testing.T) {
	var (
		failure   = errorsx.FailureConnectionReset
		trueValue = true
	)
	tests := []struct {
		name    string
		signals *webconnectivity.Signals
	}{{
		name: "control failure with DNS consistency",
		signals: &webconnectivity.Signals{
			ControlFailure: &failure,
			DNSAnalysisResult: webconnectivity.DNSAnalysisResult{
				DNSConsistency: optional.Some(webconnectivity.DNSConsistent),
			},
		},
	}, {
		name: "control failure with title match",
		signals: &webconnectivity.Signals{
			ControlFailure: &failure,
			HTTPAnalysisResult: webconnectivity.HTTPAnalysisResult{
				TitleMatch: &trueValue,
			},
		},
	}, {
		name: "HTTP failure with body proportion",
		signals: &webconnectivity.Signals{
			HTTPExperimentFailure: &failure,
			HTTPAnalysisResult: webconnectivity.HTTPAnalysisResult{
				BodyProportion: 0.5,
			},
		},
	}, {
		name: "body proportion out of range",
		signals: &webconnectivity.Signals{
			HTTPAnalysisResult: webconnectivity.HTTPAnalysisResult{
				BodyProportion: 1.5,
			},
		},
	}, {
		name: "unknown DNS consistency",
		signals: &webconnectivity.Signals{
			DNSAnalysisResult: webconnectivity.DNSAnalysisResult{
				DNSConsistency: optional.Some(webconnectivity.DNSConsistency("antani")),
			},
		},
	}, {
		name: "no requests with an HTTP failure",
		signals: &webconnectivity.Signals{
			HTTPExperimentFailure: &failure,
			NoRequests:            true,
		},
	}, {
		name: "more connect successes than attempts",
		signals: &webconnectivity.Signals{
			TCPConnectAttempts:  1,
			TCPConnectSuccesses: 2,
		},
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.signals.Validate(); !errors.Is(err, webconnectivity.ErrContractViolation) {
				t.Fatal("unexpected error", err)
			}

			t.Run("Classify panics", func(t *testing.T) {
				defer func() {
					r := recover()
					err, ok := r.(error)
					if !ok || !errors.Is(err, webconnectivity.ErrContractViolation) {
						t.Fatal("unexpected panic value", r)
					}
				}()
				webconnectivity.Classify(tt.signals, nil)
			})

			t.Run("ClassifySafely returns an error", func(t *testing.T) {
				summary, err := webconnectivity.ClassifySafely(tt.signals, nil)
				if !errors.Is(err, webconnectivity.ErrContractViolation) {
					t.Fatal("unexpected error", err)
				}
				if diff := cmp.Diff(webconnectivity.Summary{}, summary); diff != "" {
					t.Fatal(diff)
				}
			})
		})
	}
}

func TestDetermineBlocking(t *testing.T) {
	var (
		trueValue  = true
		falseValue = false
		reason     = webconnectivity.BlockingDNS
	)
	if webconnectivity.DetermineBlocking(webconnectivity.Summary{Accessible: &trueValue}) != false {
		t.Fatal("expected false when accessible")
	}
	if webconnectivity.DetermineBlocking(webconnectivity.Summary{}) != nil {
		t.Fatal("expected nil when we don't know")
	}
	got := webconnectivity.DetermineBlocking(webconnectivity.Summary{
		Accessible:     &falseValue,
		BlockingReason: &reason,
	})
	if got != reason {
		t.Fatal("expected the blocking reason", got)
	}
}
