package app_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ooni/wcanalysis/internal/cli/app"
	_ "github.com/ooni/wcanalysis/internal/cli/classify"
	"github.com/ooni/wcanalysis/internal/cli/qa"
	_ "github.com/ooni/wcanalysis/internal/cli/serve"
	_ "github.com/ooni/wcanalysis/internal/cli/version"
)

func TestVersion(t *testing.T) {
	if err := app.RunWithArgs([]string{"version"}); err != nil {
		t.Fatal(err)
	}
}

func TestQA(t *testing.T) {
	t.Run("with all the test cases", func(t *testing.T) {
		if err := app.RunWithArgs([]string{"qa"}); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("with a selector", func(t *testing.T) {
		if err := app.RunWithArgs([]string{"qa", "--run", "^success", "--list"}); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("with an invalid selector", func(t *testing.T) {
		err := app.RunWithArgs([]string{"qa", "--run", "("})
		if err == nil || !strings.HasPrefix(err.Error(), "compiling -run regexp") {
			t.Fatal("unexpected error", err)
		}
	})

	t.Run("with a config that breaks the test cases", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "config.hujson")
		config := []byte(`{
			"v": 1,
			// every body comparison is now a match
			"classifier": {"body_proportion_factor": 0.1},
		}`)
		if err := os.WriteFile(configFile, config, 0600); err != nil {
			t.Fatal(err)
		}
		err := app.RunWithArgs([]string{"--config", configFile, "qa", "--run", "httpDiffWithConsistentDNS"})
		if err != qa.ErrFailed {
			t.Fatal("unexpected error", err)
		}
	})

	t.Run("with a nonexistent config", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "nonexistent.hujson")
		err := app.RunWithArgs([]string{"--config", configFile, "qa"})
		if err == nil || !strings.HasPrefix(err.Error(), "reading config") {
			t.Fatal("unexpected error", err)
		}
	})
}

func TestClassify(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.jsonl")
	output := filepath.Join(dir, "output.jsonl")
	data := []byte(`{"dns_consistency":"inconsistent","http_experiment_failure":"connection_refused"}
{"control_failure":"connection_reset"}
`)
	if err := os.WriteFile(input, data, 0600); err != nil {
		t.Fatal(err)
	}
	err := app.RunWithArgs([]string{"classify", "--no-progress", "-i", input, "-o", output})
	if err != nil {
		t.Fatal(err)
	}
	result, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(result)), "\n")
	if len(lines) != 2 {
		t.Fatal("unexpected number of lines", len(lines))
	}
	var record struct {
		Line     int
		TestKeys struct {
			Blocking any   `json:"blocking"`
			Status   int64 `json:"x_status"`
		} `json:"test_keys"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatal(err)
	}
	if record.Line != 1 || record.TestKeys.Blocking != "dns" || record.TestKeys.Status != 8352 {
		t.Fatal("unexpected record", record)
	}
}

func TestClassifyWithMissingInput(t *testing.T) {
	dir := t.TempDir()
	err := app.RunWithArgs([]string{
		"classify", "--no-progress",
		"-i", filepath.Join(dir, "nonexistent.jsonl"),
		"-o", filepath.Join(dir, "output.jsonl"),
	})
	if err == nil || !strings.HasPrefix(err.Error(), "classifying") {
		t.Fatal("unexpected error", err)
	}
}

func TestAnalyze(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.jsonl")
	output := filepath.Join(dir, "output.jsonl")
	data := []byte(`{"input":"http://www.example.com/","control_failure":"connection_reset"}` + "\n")
	if err := os.WriteFile(input, data, 0600); err != nil {
		t.Fatal(err)
	}
	err := app.RunWithArgs([]string{"analyze", "--no-progress", "-i", input, "-o", output})
	if err != nil {
		t.Fatal(err)
	}
	result, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(result), `"x_status":8`) {
		t.Fatal("unexpected output", string(result))
	}
}
