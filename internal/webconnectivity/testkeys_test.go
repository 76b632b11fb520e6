package webconnectivity_test

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ooni/wcanalysis/internal/testingx"
	"github.com/ooni/wcanalysis/internal/webconnectivity"
)

func TestTestKeysJSON(t *testing.T) {
	const input = `{
		"dns_experiment_failure": null,
		"dns_consistency": "consistent",
		"control_failure": null,
		"http_experiment_failure": null,
		"body_length_match": false,
		"body_proportion": 0.5,
		"status_code_match": false,
		"headers_match": false,
		"title_match": false,
		"blocking": false,
		"accessible": true,
		"x_status": 2
	}`
	var tk webconnectivity.TestKeys
	if err := json.Unmarshal([]byte(input), &tk); err != nil {
		t.Fatal(err)
	}

	t.Run("we overwrite the existing verdict", func(t *testing.T) {
		webconnectivity.ClassifyTestKeys(&tk, nil)
		if tk.Blocking != webconnectivity.BlockingHTTPDiff {
			t.Fatal("unexpected blocking", tk.Blocking)
		}
		if tk.Accessible == nil || *tk.Accessible {
			t.Fatal("unexpected accessible")
		}
		if tk.Status != webconnectivity.StatusAnomalyHTTPDiff {
			t.Fatal("unexpected status", tk.Status)
		}
	})

	t.Run("we serialize exactly the test keys", func(t *testing.T) {
		data, err := json.Marshal(tk)
		if err != nil {
			t.Fatal(err)
		}
		var keys map[string]any
		if err := json.Unmarshal(data, &keys); err != nil {
			t.Fatal(err)
		}
		var got []string
		for key := range keys {
			got = append(got, key)
		}
		sort.Strings(got)
		expect := []string{
			"accessible",
			"blocking",
			"body_length_match",
			"body_proportion",
			"control_failure",
			"dns_consistency",
			"dns_experiment_failure",
			"headers_match",
			"http_experiment_failure",
			"status_code_match",
			"title_match",
			"x_status",
		}
		if diff := cmp.Diff(expect, got); diff != "" {
			t.Fatal(diff)
		}
		if keys["blocking"] != "http-diff" {
			t.Fatal("unexpected serialized blocking", keys["blocking"])
		}
	})
}

func TestTestKeysNullConsistency(t *testing.T) {
	const input = `{"dns_consistency": null, "control_failure": "connection_reset", "blocking": "dns"}`
	var tk webconnectivity.TestKeys
	if err := json.Unmarshal([]byte(input), &tk); err != nil {
		t.Fatal(err)
	}
	if err := webconnectivity.ClassifyTestKeysSafely(&tk, nil); err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(tk)
	if err != nil {
		t.Fatal(err)
	}
	var keys map[string]any
	if err := json.Unmarshal(data, &keys); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"blocking", "accessible", "dns_consistency", "title_match"} {
		if keys[key] != nil {
			t.Fatal("expected null for", key)
		}
	}
}

func TestTestKeysLog(t *testing.T) {
	tk := &webconnectivity.TestKeys{}
	webconnectivity.ClassifyTestKeys(tk, nil)
	logger := &testingx.SavingLogger{}
	tk.Log(logger)
	lines := logger.InfoLines()
	if diff := cmp.Diff("Blocking: nil", lines[len(lines)-2]); diff != "" {
		t.Fatal(diff)
	}
	if diff := cmp.Diff("Accessible: true", lines[len(lines)-1]); diff != "" {
		t.Fatal(diff)
	}
}
