package webconnectivityqa

import (
	"encoding/json"

	"github.com/ooni/wcanalysis/internal/runtimex"
	"github.com/ooni/wcanalysis/internal/webconnectivity"
)

// TestKeys is the reduced test keys format we compare. We use `any`
// for the fields that could be null such that the zero value of a
// field means we expect null.
type TestKeys struct {
	DNSExperimentFailure  any     `json:"dns_experiment_failure"`
	DNSConsistency        any     `json:"dns_consistency"`
	ControlFailure        any     `json:"control_failure"`
	HTTPExperimentFailure any     `json:"http_experiment_failure"`
	BodyLengthMatch       any     `json:"body_length_match"`
	BodyProportion        float64 `json:"body_proportion"`
	StatusCodeMatch       any     `json:"status_code_match"`
	HeadersMatch          any     `json:"headers_match"`
	TitleMatch            any     `json:"title_match"`
	XStatus               int64   `json:"x_status"`
	Accessible            any     `json:"accessible"`
	Blocking              any     `json:"blocking"`
}

// newTestKeys reduces the test keys to the common format by
// serializing and parsing them again.
func newTestKeys(tk *webconnectivity.TestKeys) *TestKeys {
	data := runtimex.Try1(json.Marshal(tk))
	var out TestKeys
	runtimex.Try0(json.Unmarshal(data, &out))
	return &out
}
