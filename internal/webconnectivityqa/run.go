package webconnectivityqa

import (
	"fmt"

	"github.com/ooni/wcanalysis/internal/config"
	"github.com/ooni/wcanalysis/internal/geoipx"
	"github.com/ooni/wcanalysis/internal/model"
	"github.com/ooni/wcanalysis/internal/webconnectivity"
)

// RunTestCase runs a [TestCase] using the given classifier settings and
// ASN lookupper. A nil cfg means the defaults and a nil lookup means
// [geoipx.LookupASN]. The returned error is a [*MismatchError] when the
// test keys differ from the expected ones.
func RunTestCase(logger model.Logger, tc *TestCase, cfg *config.Classifier, lookup geoipx.ASNLookupper) error {
	tk, err := measure(logger, tc, cfg, lookup)

	// handle the case of unexpected result
	switch {
	case err != nil && !tc.ExpectErr:
		return fmt.Errorf("expected to see no error but got %s", err.Error())
	case err == nil && tc.ExpectErr:
		return fmt.Errorf("expected to see an error but got <nil>")
	case err != nil:
		return nil
	}

	// compare the expected test keys to the ones we've got
	if err := compareTestKeys(tc.ExpectTestKeys, newTestKeys(tk)); err != nil {
		return err
	}

	// run the additional checkers
	checkers := append([]Checker{&InvariantsChecker{}}, tc.Checkers...)
	for _, checker := range checkers {
		if err := checker.Check(tk); err != nil {
			return err
		}
	}
	return nil
}

func measure(
	logger model.Logger, tc *TestCase, cfg *config.Classifier, lookup geoipx.ASNLookupper) (*webconnectivity.TestKeys, error) {
	if tc.Observations != nil {
		return webconnectivity.Measure(logger, tc.Observations, cfg, lookup)
	}
	tk := &webconnectivity.TestKeys{}
	if tc.Signals != nil {
		tk.Signals = *tc.Signals
	}
	if err := webconnectivity.ClassifyTestKeysSafely(tk, cfg); err != nil {
		return nil, err
	}
	return tk, nil
}
