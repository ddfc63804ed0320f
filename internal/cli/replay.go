package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/phanxgames/gesture"
	"github.com/phanxgames/gesture/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// replayRecord is one output line. Script is only set when several scripts
// are replayed in one run.
type replayRecord struct {
	Script string `json:"script,omitempty"`
	gesture.Event
}

// loadedScript is a parsed script and the name it was read from.
type loadedScript struct {
	name   string
	runner *gesture.ScriptRunner
}

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <script.json>...",
		Short: "Replay gesture scripts and print recognized gestures as JSON lines",
		Long: `Replay feeds JSON gesture scripts through the recognizer on a simulated
clock, one tick per frame, and writes every recognized gesture to stdout as
one JSON object per line. Use "-" to read a script from stdin.

Several scripts replay concurrently, each on its own recognizer. Their output
is written in argument order and every line carries a "script" field.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scripts := make([]loadedScript, 0, len(args))
			for _, path := range args {
				data, err := readScript(cmd.InOrStdin(), path)
				if err != nil {
					return err
				}
				runner, err := gesture.LoadScript(data)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				scripts = append(scripts, loadedScript{name: path, runner: runner})
			}

			cfg := configFrom(cmd.Context())
			logger := loggerFrom(cmd.Context()).With(zap.String("run_id", uuid.NewString()))
			return replayAll(cmd.Context(), cfg, logger, scripts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().Int64("tick", 0, "simulated milliseconds per frame")
	cmd.Flags().Int64("settle", 0, "milliseconds to keep ticking after the script ends")
	cmd.Flags().String("recognizer", "", "recognizer identifier")
	cmd.Flags().Bool("realtime", false, "pace ticks on the wall clock")
	cmd.Flags().Int("jobs", 0, "maximum number of scripts replayed at once")
	return cmd
}

func readScript(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read script from stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return data, nil
}

// replayAll runs every script on its own Manager. A single script streams
// straight to out; several are buffered and flushed in order once all of
// them finished.
func replayAll(ctx context.Context, cfg *config.Config, logger *zap.Logger, scripts []loadedScript, out io.Writer) error {
	if len(scripts) == 1 {
		return runReplay(ctx, cfg, logger, "", scripts[0].runner, out)
	}

	bufs := make([]bytes.Buffer, len(scripts))
	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Replay.Concurrency)
	for i, s := range scripts {
		i, s := i, s
		g.Go(func() error {
			l := logger.With(zap.String("script", s.name))
			if err := runReplay(groupCtx, cfg, l, s.name, s.runner, &bufs[i]); err != nil {
				return fmt.Errorf("%s: %w", s.name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for i := range bufs {
		if _, err := bufs[i].WriteTo(out); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}

// runReplay ticks a Manager until the script is done, then for the settle
// period. Gestures are encoded as they are dispatched.
func runReplay(ctx context.Context, cfg *config.Config, logger *zap.Logger, name string, runner *gesture.ScriptRunner, out io.Writer) error {
	m := gesture.NewManager(
		gesture.WithConfig(cfg.Recognizer),
		gesture.WithViewport(cfg.Viewport.Width, cfg.Viewport.Height),
		gesture.WithMaxContacts(cfg.Replay.MaxContacts),
		gesture.WithLogger(logger),
	)
	if err := m.SetRecognizer(cfg.Replay.RecognizerID); err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	var encErr error
	count := 0
	m.OnGesture(func(e gesture.Event) {
		count++
		if encErr == nil {
			encErr = enc.Encode(replayRecord{Script: name, Event: e})
		}
	})
	m.SetScriptRunner(runner)

	var limiter *rate.Limiter
	if cfg.Replay.Realtime {
		limiter = rate.NewLimiter(rate.Every(time.Duration(cfg.Replay.TickMS)*time.Millisecond), 1)
	}

	var now int64
	ticks := 0
	tick := func() error {
		if ticks >= cfg.Replay.MaxTicks {
			return fmt.Errorf("replay exceeded %d ticks", cfg.Replay.MaxTicks)
		}
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		m.Update(now)
		now += cfg.Replay.TickMS
		ticks++
		return encErr
	}

	for !runner.Done() {
		if err := tick(); err != nil {
			return err
		}
	}
	for end := now + cfg.Replay.SettleMS; now <= end; {
		if err := tick(); err != nil {
			return err
		}
	}

	logger.Info("replay finished",
		zap.Int("ticks", ticks),
		zap.Int64("elapsed_ms", now),
		zap.Int("gestures", count))
	return nil
}
