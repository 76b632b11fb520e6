package wcanalysisd

//
// HTTP handler
//

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/ooni/wcanalysis/internal/config"
	"github.com/ooni/wcanalysis/internal/geoipx"
	"github.com/ooni/wcanalysis/internal/iox"
	"github.com/ooni/wcanalysis/internal/model"
	"github.com/ooni/wcanalysis/internal/runtimex"
	"github.com/ooni/wcanalysis/internal/scrubber"
	"github.com/ooni/wcanalysis/internal/version"
	"github.com/ooni/wcanalysis/internal/webconnectivity"
)

// Request is the body of a classification request. Exactly one
// of the two fields must be set.
type Request struct {
	// Observations contains raw observations to analyze and classify.
	Observations *webconnectivity.Observations `json:"observations,omitempty"`

	// TestKeys contains signals to classify.
	TestKeys *webconnectivity.TestKeys `json:"test_keys,omitempty"`
}

// ErrInvalidRequest indicates that the request contains both or
// neither of observations and test keys.
var ErrInvalidRequest = errors.New("wcanalysisd: need either observations or test_keys")

// Handler is an [http.Handler] classifying Web Connectivity
// observations or signals. The response body contains the test keys.
type Handler struct {
	// BaseLogger is the MANDATORY logger to use.
	BaseLogger model.Logger

	// Classifier is the OPTIONAL classifier configuration.
	Classifier *config.Classifier

	// Indexer is the MANDATORY atomic integer used to assign an index to requests.
	Indexer *atomic.Int64

	// Lookup is the OPTIONAL ASN lookupper (default: [geoipx.LookupASN]).
	Lookup geoipx.ASNLookupper

	// MaxAcceptableBody is the MANDATORY maximum acceptable request body.
	MaxAcceptableBody int64

	// Timeout is the MANDATORY timeout for handling a request.
	Timeout time.Duration
}

var _ http.Handler = &Handler{}

// NewHandler constructs a [Handler] using the given config.
func NewHandler(cfg *config.Config) *Handler {
	return &Handler{
		BaseLogger:        log.Log,
		Classifier:        &cfg.Classifier,
		Indexer:           &atomic.Int64{},
		Lookup:            nil,
		MaxAcceptableBody: cfg.Service.MaxBodySize,
		Timeout:           time.Duration(cfg.Service.TimeoutSeconds) * time.Second,
	}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	// track the number of in-flight requests
	metricRequestsInflight.Inc()
	defer metricRequestsInflight.Dec()

	// assign an ID to the request unless the client did that already
	requestID := req.Header.Get("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set("X-Request-ID", requestID)
	w.Header().Add("Server", fmt.Sprintf("wcanalysisd/%s", version.Version))

	index := h.Indexer.Add(1)
	logger := &scrubber.Logger{
		Logger: h.BaseLogger,
		Prefix: fmt.Sprintf("request #%d: ", index),
	}
	logger.Debugf("id=%s method=%s", requestID, req.Method)

	// we only handle the POST method
	if req.Method != "POST" {
		metricRequestsCount.WithLabelValues("400", "bad_request_method").Inc()
		w.WriteHeader(400)
		return
	}

	ctx, cancel := context.WithTimeout(req.Context(), h.Timeout)
	defer cancel()

	// read and parse request body
	reader := io.LimitReader(req.Body, h.MaxAcceptableBody+1)
	data, err := iox.ReadAllContext(ctx, reader)
	if err != nil {
		metricRequestsCount.WithLabelValues("400", "cannot_read_request_body").Inc()
		w.WriteHeader(400)
		return
	}
	if int64(len(data)) > h.MaxAcceptableBody {
		metricRequestsCount.WithLabelValues("413", "request_body_too_large").Inc()
		w.WriteHeader(413)
		return
	}
	var creq Request
	if err := json.Unmarshal(data, &creq); err != nil {
		metricRequestsCount.WithLabelValues("400", "cannot_unmarshal_request_body").Inc()
		w.WriteHeader(400)
		return
	}

	// classify the given input
	started := time.Now()
	tk, err := h.classify(logger, &creq)
	metricClassifyDurationSeconds.Observe(time.Since(started).Seconds())
	if err != nil {
		logger.Warn(err.Error())
		metricRequestsCount.WithLabelValues("400", "classify_failed").Inc()
		w.WriteHeader(400)
		return
	}

	// Note: we assume that json.Marshal cannot fail because it's a
	// clearly-serializable data structure.
	metricRequestsCount.WithLabelValues("200", "ok").Inc()
	metricVerdictsCount.WithLabelValues(fmt.Sprintf("%v", tk.Blocking)).Inc()
	data, err = json.Marshal(tk)
	runtimex.PanicOnError(err, "json.Marshal failed")
	w.Header().Add("Content-Type", "application/json")
	w.Write(data)
}

func (h *Handler) classify(logger model.Logger, creq *Request) (*webconnectivity.TestKeys, error) {
	switch {
	case creq.Observations != nil && creq.TestKeys == nil:
		return webconnectivity.Measure(logger, creq.Observations, h.Classifier, h.Lookup)
	case creq.TestKeys != nil && creq.Observations == nil:
		tk := creq.TestKeys
		if err := webconnectivity.ClassifyTestKeysSafely(tk, h.Classifier); err != nil {
			return nil, err
		}
		return tk, nil
	default:
		return nil, ErrInvalidRequest
	}
}
