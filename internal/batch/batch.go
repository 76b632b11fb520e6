// Package batch classifies JSONL files containing one record per line.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	"github.com/ooni/wcanalysis/internal/config"
	"github.com/ooni/wcanalysis/internal/errorsx"
	"github.com/ooni/wcanalysis/internal/geoipx"
	"github.com/ooni/wcanalysis/internal/iox"
	"github.com/ooni/wcanalysis/internal/model"
	"github.com/ooni/wcanalysis/internal/runtimex"
	"github.com/ooni/wcanalysis/internal/webconnectivity"
)

// Func produces the test keys from a single JSONL line.
type Func func(line []byte) (*webconnectivity.TestKeys, error)

// ClassifySignals returns a [Func] parsing each line as test keys
// and classifying the signals they contain.
func ClassifySignals(cfg *config.Classifier) Func {
	return func(line []byte) (*webconnectivity.TestKeys, error) {
		var tk webconnectivity.TestKeys
		if err := json.Unmarshal(line, &tk); err != nil {
			return nil, err
		}
		if err := webconnectivity.ClassifyTestKeysSafely(&tk, cfg); err != nil {
			return nil, err
		}
		return &tk, nil
	}
}

// MeasureObservations returns a [Func] parsing each line as
// [webconnectivity.Observations] and calling [webconnectivity.Measure].
func MeasureObservations(logger model.Logger, cfg *config.Classifier, lookup geoipx.ASNLookupper) Func {
	return func(line []byte) (*webconnectivity.TestKeys, error) {
		var obs webconnectivity.Observations
		if err := json.Unmarshal(line, &obs); err != nil {
			return nil, err
		}
		return webconnectivity.Measure(logger, &obs, cfg, lookup)
	}
}

// Record is a line of the output JSONL.
type Record struct {
	// Line is the input line number.
	Line int `json:"line"`

	// Failure is the reason why we could not produce TestKeys.
	Failure *string `json:"failure"`

	// TestKeys contains the test keys on success.
	TestKeys *webconnectivity.TestKeys `json:"test_keys,omitempty"`
}

// Progress is the progress bar. We call Add(1) for each line.
type Progress interface {
	Add(num int) error
}

// Runner classifies the lines of a JSONL stream.
type Runner struct {
	// Func is the MANDATORY function processing each line.
	Func Func

	// Logger is the OPTIONAL logger.
	Logger model.Logger

	// Progress is the OPTIONAL progress bar.
	Progress Progress
}

// Run reads r, processes each nonblank line, and writes a [Record] for
// each line to w. A line we cannot process is not fatal. The returned
// error is about reading r or writing w.
func (rr *Runner) Run(ctx context.Context, r io.Reader, w io.Writer) (*Report, error) {
	runtimex.PanicIfNil(rr.Func, "passed nil Func")
	logger := model.ValidLoggerOrDefault(rr.Logger)
	report := NewReport()
	err := iox.ForEachLine(ctx, r, func(lineno int, line []byte) error {
		record := &Record{Line: lineno}
		tk, err := rr.Func(line)
		if err != nil {
			failure := errorsx.ClassifyGenericError(err)
			logger.Warnf("batch: line %d: %s", lineno, failure)
			record.Failure = &failure
		}
		record.TestKeys = tk
		report.add(record)
		if rr.Progress != nil {
			_ = rr.Progress.Add(1)
		}
		data := runtimex.Try1(json.Marshal(record))
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	})
	return report, err
}

// Report summarizes a batch run.
type Report struct {
	// RunID is the unique ID of this run.
	RunID string

	// Total is the number of records.
	Total int

	// Failed is the number of records without test keys.
	Failed int

	// Blocking counts the records by blocking value. The keys are "false",
	// "null" or the blocking reason.
	Blocking map[string]int

	// Status counts how many records have each status bit set.
	Status map[int64]int

	// proportions contains the body_proportion of the records
	// where we compared the bodies.
	proportions stats.Float64Data
}

// NewReport creates a new empty [Report].
func NewReport() *Report {
	return &Report{
		RunID:    uuid.NewString(),
		Blocking: make(map[string]int),
		Status:   make(map[int64]int),
	}
}

func (r *Report) add(record *Record) {
	r.Total++
	if record.TestKeys == nil {
		r.Failed++
		return
	}
	tk := record.TestKeys
	r.Blocking[blockingKey(tk.Blocking)]++
	for bit := int64(1); bit <= webconnectivity.StatusBugNoRequests; bit <<= 1 {
		if tk.Status&bit != 0 {
			r.Status[bit]++
		}
	}
	if tk.BodyLengthMatch != nil {
		r.proportions = append(r.proportions, tk.BodyProportion)
	}
}

func blockingKey(blocking any) string {
	switch v := blocking.(type) {
	case nil:
		return "null"
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// BlockingKeys returns the keys of Blocking in sorted order.
func (r *Report) BlockingKeys() (out []string) {
	for key := range r.Blocking {
		out = append(out, key)
	}
	sort.Strings(out)
	return
}

// BodyProportionStats contains statistics about body_proportion.
type BodyProportionStats struct {
	Count  int
	Mean   float64
	Median float64
	P10    float64
}

// BodyProportionStats computes statistics over the body_proportion of
// the records where we compared bodies. It returns stats.EmptyInputErr
// when there are no such records.
func (r *Report) BodyProportionStats() (*BodyProportionStats, error) {
	mean, err := stats.Mean(r.proportions)
	if err != nil {
		return nil, err
	}
	median := runtimex.Try1(stats.Median(r.proportions))
	p10, err := stats.Percentile(r.proportions, 10)
	if err != nil {
		// with fewer than ten samples the 10th percentile is out of bounds
		p10 = runtimex.Try1(stats.Min(r.proportions))
	}
	out := &BodyProportionStats{
		Count:  len(r.proportions),
		Mean:   mean,
		Median: median,
		P10:    p10,
	}
	return out, nil
}

// Log writes the report using the given logger.
func (r *Report) Log(logger model.Logger) {
	logger.Infof("batch %s: %d records, %d failed", r.RunID, r.Total, r.Failed)
	for _, key := range r.BlockingKeys() {
		logger.Infof("blocking %s: %d", key, r.Blocking[key])
	}
	if bps, err := r.BodyProportionStats(); err == nil {
		logger.Infof("body_proportion over %d records: mean=%.3f median=%.3f p10=%.3f",
			bps.Count, bps.Mean, bps.Median, bps.P10)
	}
}
