// Package classify contains the classify and analyze commands.
package classify

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
	"github.com/ooni/wcanalysis/internal/batch"
	"github.com/ooni/wcanalysis/internal/cli/root"
	"github.com/ooni/wcanalysis/internal/must"
	"github.com/ooni/wcanalysis/internal/runtimex"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
)

type batchFlags struct {
	input      *string
	output     *string
	noProgress *bool
}

func newBatchFlags(cmd *kingpin.CmdClause) *batchFlags {
	return &batchFlags{
		input:      cmd.Flag("input", "Input JSONL file or - for stdin").Short('i').Default(must.Stdio).String(),
		output:     cmd.Flag("output", "Output JSONL file or - for stdout").Short('o').Default(must.Stdio).String(),
		noProgress: cmd.Flag("no-progress", "Do not show the progress bar").Default("false").Bool(),
	}
}

func init() {
	cmd := root.Command("classify", "Classify JSONL test keys containing the measurement signals.")
	flags := newBatchFlags(cmd)
	cmd.Action(func(_ *kingpin.ParseContext) error {
		cfg, err := root.Init()
		if err != nil {
			return err
		}
		return runBatch(batch.ClassifySignals(&cfg.Classifier), flags)
	})
}

func init() {
	cmd := root.Command("analyze", "Analyze and classify JSONL observations.")
	flags := newBatchFlags(cmd)
	cmd.Action(func(_ *kingpin.ParseContext) error {
		cfg, err := root.Init()
		if err != nil {
			return err
		}
		return runBatch(batch.MeasureObservations(root.Logger(), &cfg.Classifier, nil), flags)
	})
}

func newProgressBar() *progressbar.ProgressBar {
	return progressbar.NewOptions64(
		-1,
		progressbar.OptionSetDescription("classifying"),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetWriter(os.Stderr),
	)
}

func runBatch(fn batch.Func, flags *batchFlags) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var report *batch.Report
	err := runtimex.Catch(func() {
		r := must.OpenInput(*flags.input)
		defer must.Close(r)
		w := must.CreateOutput(*flags.output)
		defer must.Close(w)
		runner := &batch.Runner{
			Func:   fn,
			Logger: root.Logger(),
		}
		if !*flags.noProgress {
			bar := newProgressBar()
			defer bar.Finish()
			runner.Progress = bar
		}
		var err error
		report, err = runner.Run(ctx, r, w)
		runtimex.PanicOnError(err, "runner.Run failed")
	})
	if err != nil {
		return errors.Wrap(err, "classifying")
	}
	logReport(report)
	return nil
}

func logReport(report *batch.Report) {
	log.WithFields(log.Fields{
		"type":  "section_title",
		"title": "Results",
	}).Info("")
	fields := log.Fields{
		"type":    "table",
		"run_id":  report.RunID,
		"records": report.Total,
		"failed":  report.Failed,
	}
	for _, key := range report.BlockingKeys() {
		fields["blocking_"+key] = report.Blocking[key]
	}
	if bps, err := report.BodyProportionStats(); err == nil {
		fields["body_proportion_mean"] = fmt.Sprintf("%.3f", bps.Mean)
		fields["body_proportion_median"] = fmt.Sprintf("%.3f", bps.Median)
		fields["body_proportion_p10"] = fmt.Sprintf("%.3f", bps.P10)
	}
	log.WithFields(fields).Info("")
}
