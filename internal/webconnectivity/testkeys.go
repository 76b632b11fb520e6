package webconnectivity

import (
	"github.com/ooni/wcanalysis/internal/config"
	"github.com/ooni/wcanalysis/internal/model"
)

// TestKeys contains the Web Connectivity test keys: the signals
// plus the verdict computed from them.
type TestKeys struct {
	Signals
	Summary
}

// ClassifyTestKeys classifies the signals inside tk and overwrites
// any verdict already stored inside tk. See [Classify] for the
// meaning of cfg and for the failure semantics.
func ClassifyTestKeys(tk *TestKeys, cfg *config.Classifier) {
	tk.Summary = Classify(&tk.Signals, cfg)
}

// ClassifyTestKeysSafely is like [ClassifyTestKeys] but returns an error
// rather than panicking. On error, tk is not modified.
func ClassifyTestKeysSafely(tk *TestKeys, cfg *config.Classifier) error {
	summary, err := ClassifySafely(&tk.Signals, cfg)
	if err != nil {
		return err
	}
	tk.Summary = summary
	return nil
}

// Log logs the signals and the verdict.
func (tk *TestKeys) Log(logger model.Logger) {
	tk.DNSAnalysisResult.Log(logger)
	tk.HTTPAnalysisResult.Log(logger)
	tk.Summary.Log(logger)
}
