package webconnectivity

import (
	"reflect"
	"strings"

	"github.com/ooni/wcanalysis/internal/config"
	"github.com/ooni/wcanalysis/internal/measurexlite"
	"github.com/ooni/wcanalysis/internal/model"
	"github.com/ooni/wcanalysis/internal/webconnectivity/internal"
)

// HTTPAnalysisResult contains the results of the analysis performed on the
// client. We obtain it by comparing the measurement and the control.
type HTTPAnalysisResult struct {
	BodyLengthMatch *bool   `json:"body_length_match"`
	BodyProportion  float64 `json:"body_proportion"`
	StatusCodeMatch *bool   `json:"status_code_match"`
	HeadersMatch    *bool   `json:"headers_match"`
	TitleMatch      *bool   `json:"title_match"`
}

// Log logs the results of the analysis
func (har HTTPAnalysisResult) Log(logger model.Logger) {
	logger.Infof("BodyLengthMatch: %+v", internal.BoolPointerToString(har.BodyLengthMatch))
	logger.Infof("BodyProportion: %+v", har.BodyProportion)
	logger.Infof("StatusCodeMatch: %+v", internal.BoolPointerToString(har.StatusCodeMatch))
	logger.Infof("HeadersMatch: %+v", internal.BoolPointerToString(har.HeadersMatch))
	logger.Infof("TitleMatch: %+v", internal.BoolPointerToString(har.TitleMatch))
}

// AnalyzeHTTP compares the final probe response with the control. A nil
// response means we have no probe body and all the results are empty.
// A nil cfg means the default settings.
func AnalyzeHTTP(
	resp *model.ArchivalHTTPResponse, ctrl *model.THHTTPRequestResult, cfg *config.Classifier) (out HTTPAnalysisResult) {
	if resp == nil || ctrl == nil {
		return
	}
	if cfg == nil {
		cfg = &config.Default().Classifier
	}
	out.BodyLengthMatch, out.BodyProportion = HTTPBodyLengthChecks(resp, ctrl, cfg.BodyProportionFactor)
	out.StatusCodeMatch = HTTPStatusCodeMatch(resp, ctrl)
	out.HeadersMatch = HTTPHeadersMatch(resp, ctrl, cfg.CommonHeadersSet())
	out.TitleMatch = HTTPTitleMatch(resp, ctrl, cfg.TitleMinWordLength)
	return
}

// HTTPBodyLengthChecks returns whether the measured body is reasonably
// long as much as the control body as well as the proportion between
// the two bodies. This check may return nil, 0 when such a comparison
// would actually not be applicable.
func HTTPBodyLengthChecks(
	resp *model.ArchivalHTTPResponse, ctrl *model.THHTTPRequestResult, factor float64) (match *bool, proportion float64) {
	control := ctrl.BodyLength
	if control < 0 {
		return
	}
	if resp.BodyIsTruncated {
		return
	}
	measurement := int64(resp.Body.Len())
	switch {
	case measurement == control:
		proportion = 1
	case measurement > control:
		proportion = float64(control) / float64(measurement)
	default:
		proportion = float64(measurement) / float64(control)
	}
	v := proportion > factor
	match = &v
	return
}

// HTTPStatusCodeMatch returns whether the status code of the measurement
// matches the status code of the control, or nil if such comparison
// is actually not applicable.
func HTTPStatusCodeMatch(resp *model.ArchivalHTTPResponse, ctrl *model.THHTTPRequestResult) (out *bool) {
	control := ctrl.StatusCode
	measurement := resp.Code
	if control <= 0 || measurement <= 0 {
		return // no real status code
	}
	value := control == measurement
	if value {
		out = &value
		return
	}
	// A failing control tells us nothing about the probe response. This
	// also avoids a false positive when both statuses are 500.
	if control/100 == 5 {
		return
	}
	out = &value
	return
}

// HTTPHeadersMatch returns whether uncommon headers match between control and
// measurement, or nil if check is not applicable.
func HTTPHeadersMatch(
	resp *model.ArchivalHTTPResponse, ctrl *model.THHTTPRequestResult, commonHeaders map[string]bool) *bool {
	measurement := resp.HeaderKeys()
	if len(measurement) <= 0 || len(ctrl.Headers) <= 0 {
		return nil
	}
	const (
		inMeasurement = 1 << 0
		inControl     = 1 << 1
		inBoth        = inMeasurement | inControl
	)
	matching := make(map[string]int)
	ours := make(map[string]bool)
	for _, key := range measurement {
		key = strings.ToLower(key)
		if !commonHeaders[key] {
			matching[key] |= inMeasurement
			ours[key] = true
		}
	}
	theirs := make(map[string]bool)
	for key := range ctrl.Headers {
		key = strings.ToLower(key)
		if !commonHeaders[key] {
			matching[key] |= inControl
			theirs[key] = true
		}
	}
	// if they are equal we're done
	if good := reflect.DeepEqual(ours, theirs); good {
		return &good
	}
	var intersection int
	for _, value := range matching {
		if (value & inBoth) == inBoth {
			intersection++
		}
	}
	good := intersection > 0
	return &good
}

// HTTPTitleMatch returns whether the measurement and the control titles
// reasonably match, or nil if not applicable. We ignore the word order
// and the words shorter than minWordLength.
func HTTPTitleMatch(
	resp *model.ArchivalHTTPResponse, ctrl *model.THHTTPRequestResult, minWordLength int) (out *bool) {
	if ctrl.Title == "" || resp.BodyIsTruncated || resp.Body.Len() <= 0 {
		return
	}
	measurement := measurexlite.WebTitleWords(measurexlite.WebGetTitle(resp.Body.String()), minWordLength)
	good := true
	for word := range measurexlite.WebTitleWords(ctrl.Title, minWordLength) {
		if !measurement[word] {
			good = false
			break
		}
	}
	return &good
}
