package webconnectivity

import (
	"errors"

	"github.com/ooni/wcanalysis/internal/errorsx"
	"github.com/ooni/wcanalysis/internal/model"
)

// ErrNoControlResponse indicates that fetching the control returned
// neither a response nor an error.
var ErrNoControlResponse = errors.New("control returned no response")

// ControlResult is the result of [ReconcileControl].
type ControlResult struct {
	// Response is the usable control response or nil.
	Response *model.THResponse

	// ControlFailure is the failure reaching the control.
	ControlFailure *string

	// ControlHTTPFailure is the failure the control saw
	// when fetching the website.
	ControlHTTPFailure *string
}

// Usable returns whether we can compare against the control.
func (cr *ControlResult) Usable() bool {
	return cr.ControlFailure == nil && cr.Response != nil
}

// ReconcileControl decides whether the control response is usable
// given the error we got when fetching it.
func ReconcileControl(logger model.Logger, resp *model.THResponse, err error) (out ControlResult) {
	logger = model.ValidLoggerOrDefault(logger)
	if err == nil && resp == nil {
		err = ErrNoControlResponse
	}
	if err != nil {
		failure := errorsx.ClassifyGenericError(err)
		logger.Warnf("control: %s", failure)
		out.ControlFailure = &failure
		return
	}
	out.Response = resp
	if resp.HTTPRequest.Failure != nil {
		logger.Infof("control: HTTP failure %s", *resp.HTTPRequest.Failure)
		out.ControlHTTPFailure = resp.HTTPRequest.Failure
	}
	return
}
