// Package config contains the classifier and service configuration.
//
// The configuration is a HuJSON document (JSON with comments and trailing
// commas) such as the following:
//
//	{
//		"v": 1,
//		"classifier": {
//			"diff_threshold": 1.0,
//			"body_proportion_factor": 0.7,
//		},
//		"service": {
//			"listen": "127.0.0.1:8080",
//		},
//	}
//
// Missing settings take their default value.
package config

import (
	"strings"

	"github.com/ooni/wcanalysis/internal/hujsonx"
	"github.com/pkg/errors"
	"github.com/rogpeppe/go-internal/lockedfile"
)

// Version is the current version of the configuration file.
const Version = 1

// DefaultCommonHeaders is the default set of headers we ignore when
// comparing the headers of the probe and of the control, because
// most websites and proxies return them.
var DefaultCommonHeaders = []string{
	"date",
	"content-type",
	"server",
	"cache-control",
	"vary",
	"set-cookie",
	"location",
	"expires",
	"x-powered-by",
	"content-encoding",
	"last-modified",
	"accept-ranges",
	"pragma",
	"x-frame-options",
	"etag",
	"x-content-type-options",
	"age",
	"via",
	"p3p",
	"x-xss-protection",
	"content-language",
	"cf-ray",
	"strict-transport-security",
	"link",
	"x-varnish",
}

// Classifier contains the classifier settings.
type Classifier struct {
	// DiffThreshold is the body_proportion below which we
	// consider the bodies different.
	DiffThreshold float64 `json:"diff_threshold"`

	// BodyProportionFactor is the body_proportion above which
	// body_length_match is true.
	BodyProportionFactor float64 `json:"body_proportion_factor"`

	// CommonHeaders is the header allowlist ignored by headers_match.
	CommonHeaders []string `json:"common_headers"`

	// TitleMinWordLength is the minimum length of the title
	// words compared by title_match.
	TitleMinWordLength int `json:"title_min_word_length"`
}

// Service contains the classification service settings.
type Service struct {
	// Listen is the endpoint where to listen.
	Listen string `json:"listen"`

	// MaxBodySize is the maximum request body size.
	MaxBodySize int64 `json:"max_body_size"`

	// TimeoutSeconds is the per-request timeout.
	TimeoutSeconds int64 `json:"timeout_seconds"`
}

// Config is the root of the configuration.
type Config struct {
	Version    int        `json:"v"`
	Classifier Classifier `json:"classifier"`
	Service    Service    `json:"service"`
}

// Default returns the default configuration.
func Default() *Config {
	c := &Config{Version: Version}
	c.fillDefaults()
	return c
}

func (c *Config) fillDefaults() {
	if c.Classifier.DiffThreshold == 0 {
		c.Classifier.DiffThreshold = 1.0
	}
	if c.Classifier.BodyProportionFactor == 0 {
		c.Classifier.BodyProportionFactor = 0.7
	}
	if len(c.Classifier.CommonHeaders) <= 0 {
		c.Classifier.CommonHeaders = append([]string{}, DefaultCommonHeaders...)
	}
	if c.Classifier.TitleMinWordLength == 0 {
		c.Classifier.TitleMinWordLength = 5
	}
	if c.Service.Listen == "" {
		c.Service.Listen = "127.0.0.1:8080"
	}
	if c.Service.MaxBodySize == 0 {
		c.Service.MaxBodySize = 1 << 22
	}
	if c.Service.TimeoutSeconds == 0 {
		c.Service.TimeoutSeconds = 10
	}
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	if c.Version != Version {
		return errors.Errorf("wrong version: expected=%d got=%d", Version, c.Version)
	}
	if c.Classifier.DiffThreshold < 0 || c.Classifier.DiffThreshold > 1 {
		return errors.New("classifier.diff_threshold must be within [0, 1]")
	}
	if c.Classifier.BodyProportionFactor < 0 || c.Classifier.BodyProportionFactor > 1 {
		return errors.New("classifier.body_proportion_factor must be within [0, 1]")
	}
	if c.Classifier.TitleMinWordLength < 0 {
		return errors.New("classifier.title_min_word_length must be positive")
	}
	if c.Service.MaxBodySize < 0 || c.Service.TimeoutSeconds < 0 {
		return errors.New("service limits must be positive")
	}
	return nil
}

// CommonHeadersSet returns the lowercase common headers as a set.
func (c *Classifier) CommonHeadersSet() map[string]bool {
	out := make(map[string]bool)
	for _, header := range c.CommonHeaders {
		out[strings.ToLower(header)] = true
	}
	return out
}

// ParseConfig returns the config from HuJSON bytes.
func ParseConfig(data []byte) (*Config, error) {
	var c Config
	if err := hujsonx.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(err, "parsing hujson")
	}
	c.fillDefaults()
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating")
	}
	return &c, nil
}

// LoadFile reads the config from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := lockedfile.Read(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	return ParseConfig(data)
}
