package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	if c.Classifier.DiffThreshold != 1.0 {
		t.Fatal("unexpected DiffThreshold", c.Classifier.DiffThreshold)
	}
	if c.Classifier.BodyProportionFactor != 0.7 {
		t.Fatal("unexpected BodyProportionFactor", c.Classifier.BodyProportionFactor)
	}
	if diff := cmp.Diff(DefaultCommonHeaders, c.Classifier.CommonHeaders); diff != "" {
		t.Fatal(diff)
	}
	if !c.Classifier.CommonHeadersSet()["cf-ray"] {
		t.Fatal("expected cf-ray to be a common header")
	}
}

func TestParseConfig(t *testing.T) {
	type testcase struct {
		name      string
		input     string
		expectErr string
		check     func(t *testing.T, c *Config)
	}

	cases := []testcase{{
		name: "with comments and partial settings",
		input: `{
			"v": 1,
			// be more lenient with dynamic pages
			"classifier": {"diff_threshold": 0.9, "common_headers": ["Date"],},
		}`,
		check: func(t *testing.T, c *Config) {
			if c.Classifier.DiffThreshold != 0.9 {
				t.Fatal("unexpected DiffThreshold")
			}
			if c.Classifier.BodyProportionFactor != 0.7 {
				t.Fatal("unexpected BodyProportionFactor")
			}
			if diff := cmp.Diff(map[string]bool{"date": true}, c.Classifier.CommonHeadersSet()); diff != "" {
				t.Fatal(diff)
			}
			if c.Service.Listen != "127.0.0.1:8080" {
				t.Fatal("unexpected Listen")
			}
		},
	}, {
		name:      "with wrong version",
		input:     `{"v": 2}`,
		expectErr: "validating: wrong version: expected=1 got=2",
	}, {
		name:      "with out of range threshold",
		input:     `{"v": 1, "classifier": {"diff_threshold": 1.5}}`,
		expectErr: "validating: classifier.diff_threshold must be within [0, 1]",
	}, {
		name:      "with invalid hujson",
		input:     `{"v": `,
		expectErr: "parsing hujson",
	}}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := ParseConfig([]byte(tc.input))
			switch {
			case tc.expectErr != "" && err == nil:
				t.Fatal("expected an error")
			case tc.expectErr != "" && !strings.HasPrefix(err.Error(), tc.expectErr):
				t.Fatal("unexpected error", err)
			case tc.expectErr == "" && err != nil:
				t.Fatal(err)
			case tc.check != nil:
				tc.check(t, c)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Run("with existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "wcanalysis.hujson")
		if err := os.WriteFile(path, []byte(`{"v": 1}`), 0600); err != nil {
			t.Fatal(err)
		}
		c, err := LoadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if c.Version != Version {
			t.Fatal("unexpected version")
		}
	})

	t.Run("with nonexistent file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nonexistent"))
		if err == nil || !strings.HasPrefix(err.Error(), "reading config") {
			t.Fatal("unexpected error", err)
		}
	})
}
