// Package qa contains the qa command.
package qa

import (
	"fmt"
	"os"
	"regexp"

	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
	"github.com/ooni/wcanalysis/internal/cli/root"
	"github.com/ooni/wcanalysis/internal/geoipx"
	"github.com/ooni/wcanalysis/internal/must"
	"github.com/ooni/wcanalysis/internal/webconnectivityqa"
	"github.com/pkg/errors"
)

// ErrFailed indicates that some test cases failed.
var ErrFailed = errors.New("qa: some test cases failed")

func init() {
	cmd := root.Command("qa", "Run the classifier QA test cases.")
	runFlag := cmd.Flag("run", "Regexp selecting which test cases to run").Default("").String()
	listFlag := cmd.Flag("list", "List the selected test cases").Default("false").Bool()
	geoipFlag := cmd.Flag("use-geoip", "Map addresses to ASNs using the geoip database").Default("false").Bool()
	dumpFlag := cmd.Flag("dump", "Print the expected test keys as JSON").Default("false").Bool()

	cmd.Action(func(_ *kingpin.ParseContext) error {
		cfg, err := root.Init()
		if err != nil {
			return err
		}
		selector, err := regexp.Compile(*runFlag)
		if err != nil {
			return errors.Wrap(err, "compiling -run regexp")
		}
		lookup := webconnectivityqa.ScenarioASNs()
		if *geoipFlag {
			lookup = geoipx.LookupASN
		}

		log.WithFields(log.Fields{"type": "section_title", "title": "QA"}).Info("")
		var passed, failed int
		for _, tc := range webconnectivityqa.AllTestCases() {
			if !selector.MatchString(tc.Name) {
				continue
			}
			if *listFlag {
				fmt.Printf("%s\n", tc.Name)
				continue
			}
			if *dumpFlag && tc.ExpectTestKeys != nil {
				must.Fprintf(os.Stdout, "%s: %s\n", tc.Name, must.MarshalAndIndentJSON(tc.ExpectTestKeys, "", "  "))
			}
			err := webconnectivityqa.RunTestCase(root.Logger(), tc, &cfg.Classifier, lookup)
			if err != nil {
				failed++
				log.WithError(err).Warnf("%s: FAIL", tc.Name)
				var mismatch *webconnectivityqa.MismatchError
				if errors.As(err, &mismatch) {
					must.Fprintf(os.Stderr, "%s\n", mismatch.Diff)
				}
				continue
			}
			passed++
			log.Infof("%s: PASS", tc.Name)
		}
		if *listFlag {
			return nil
		}

		log.WithFields(log.Fields{
			"type":   "table",
			"passed": passed,
			"failed": failed,
		}).Info("")
		if failed > 0 {
			return ErrFailed
		}
		return nil
	})
}
