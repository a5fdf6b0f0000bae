package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/meenmo/capfloor/cmd/capfloor/internal/pricing"
)

const stdinName = "-"

type valueOptions struct {
	inputs []string
	leg    bool
}

// valuation is the outcome for one input file.
type valuation struct {
	output pricing.Output
	leg    []byte
	failed bool
}

func newValueCmd(log *zerolog.Logger) *cobra.Command {
	opts := &valueOptions{}

	cmd := &cobra.Command{
		Use:   "value",
		Short: "Value cap/floor trades from YAML or JSON files",
		Long: `Reads one trade per input file, values it and writes one JSON object per
input to stdout. Without -i the trade is read from stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValue(cmd, *log, opts)
		},
	}
	cmd.Flags().StringArrayVarP(&opts.inputs, "input", "i", nil, "trade file path (repeatable, - for stdin)")
	cmd.Flags().BoolVar(&opts.leg, "leg", false, "print the caplet table instead of JSON; failures go to the log")
	return cmd
}

func runValue(cmd *cobra.Command, log zerolog.Logger, opts *valueOptions) error {
	inputs := opts.inputs
	if len(inputs) == 0 {
		inputs = []string{stdinName}
	}

	results := make([]valuation, len(inputs))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, src := range inputs {
		data, err := readInput(cmd.InOrStdin(), src)
		if err != nil {
			results[i] = failure(src, fmt.Errorf("failed to read input: %w", err))
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = valueOne(log, src, data, opts.leg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, r := range results {
		if r.failed {
			failed++
			log.Error().Str("source", r.output.Source).Str("error", r.output.Error).Msg("valuation failed")
		}
		if opts.leg {
			// Leg tables are plain text; failures only reach the log.
			if _, err := out.Write(r.leg); err != nil {
				return err
			}
			continue
		}
		b, err := json.Marshal(r.output)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, string(b)); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d valuation(s) failed", failed, len(results))
	}
	return nil
}

func valueOne(log zerolog.Logger, src string, data []byte, leg bool) valuation {
	in, err := pricing.Parse(data)
	if err != nil {
		return failure(src, err)
	}
	job, err := pricing.Build(in)
	if err != nil {
		return failure(src, err)
	}
	output, err := job.Run()
	if err != nil {
		return failure(src, err)
	}
	output.Source = src
	log.Info().Str("source", src).Float64("pv", output.PV).Int("periods", output.Periods).Msg("valued")

	v := valuation{output: output}
	if leg {
		var buf bytes.Buffer
		fmt.Fprintf(&buf, "# %s\n", src)
		if err := job.Trade.PrintLeg(&buf); err != nil {
			return failure(src, err)
		}
		fmt.Fprintf(&buf, "PV: %.2f\n\n", output.PV)
		v.leg = buf.Bytes()
	}
	return v
}

func failure(src string, err error) valuation {
	return valuation{
		output: pricing.Output{Source: src, Error: err.Error()},
		failed: true,
	}
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == stdinName {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
