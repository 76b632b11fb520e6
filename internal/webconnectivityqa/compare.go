package webconnectivityqa

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/ooni/wcanalysis/internal/runtimex"
)

// MismatchError indicates that the test keys differ from the expected ones.
type MismatchError struct {
	// Field is the JSON name of the first field that differs.
	Field string

	// Expected is the expected value of Field.
	Expected any

	// Actual is the value of Field we got.
	Actual any

	// Diff is the unified diff between the expected and actual test keys.
	Diff string
}

// Error implements error.
func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Field, formatValue(e.Expected), formatValue(e.Actual))
}

func formatValue(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(data)
}

// compareTestKeys returns a [*MismatchError] if expected and got differ.
func compareTestKeys(expected, got *TestKeys) error {
	expectedMap, gotMap := testKeysToMap(expected), testKeysToMap(got)
	var keys []string
	for key := range expectedMap {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if reflect.DeepEqual(expectedMap[key], gotMap[key]) {
			continue
		}
		return &MismatchError{
			Field:    key,
			Expected: expectedMap[key],
			Actual:   gotMap[key],
			Diff:     testKeysDiff(expected, got),
		}
	}
	return nil
}

func testKeysToMap(tk *TestKeys) (out map[string]any) {
	data := runtimex.Try1(json.Marshal(tk))
	runtimex.Try0(json.Unmarshal(data, &out))
	return
}

func testKeysDiff(expected, got *TestKeys) string {
	expectedData := runtimex.Try1(json.MarshalIndent(expected, "", "  "))
	gotData := runtimex.Try1(json.MarshalIndent(got, "", "  "))
	expectedString, gotString := string(expectedData)+"\n", string(gotData)+"\n"
	const expectedFile, gotFile = "expected", "actual"
	edits := myers.ComputeEdits(span.URIFromPath(expectedFile), expectedString, gotString)
	return fmt.Sprint(gotextdiff.ToUnified(expectedFile, gotFile, expectedString, edits))
}
