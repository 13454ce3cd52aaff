package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/neurlang/gomfcc/audio"
	"github.com/neurlang/gomfcc/internal/config"
	"github.com/neurlang/gomfcc/mfcc"
	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "tomfcc <audio_file>",
		Short:        "Convert an audio file to mel-frequency cepstral coefficients",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runExtract,
	}

	defaults := mfcc.NewMFCC()
	f := cmd.Flags()
	f.String("config", "", "YAML configuration file")
	f.String("log-level", string(config.LogInfo), "log level: debug, info, warn, error")
	f.String("dump-mono", "", "also write the decoded mono signal to this WAV file")
	f.Float64("cutoff-low", defaults.CutoffLow, "lowest frequency covered by the filter bank in Hz")
	f.Float64("cutoff-high", defaults.CutoffHigh, "highest frequency covered by the filter bank in Hz")
	f.Int("filters", defaults.FilterCount, "number of mel filters, and of values per frame")
	f.Int("oversampling", defaults.OversamplingFactor, "frame length divided by frame stride")
	f.Int("resolution-ms", defaults.ResolutionDuration, "target bin duration in milliseconds")
	f.Int("bin-min", defaults.BinMinimumSize, "smallest bin size in samples")
	f.Bool("log-mel", defaults.LogMelOnly, "print log mel energies instead of cepstra")
	f.Bool("power", defaults.Power, "use the power spectrum instead of the magnitude spectrum")
	f.Bool("ortho", defaults.Orthonormal, "use an orthonormal cosine transform")
	f.Int("workers", defaults.Workers, "frames computed concurrently")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	m := mfcc.NewMFCC()
	level := config.LogInfo

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg.Apply(m)
		if cfg.LogLevel != "" {
			level = cfg.LogLevel
		}
	}
	if err := applyFlags(cmd, m, &level); err != nil {
		return err
	}

	logger := setupLogger(cmd.ErrOrStderr(), level)
	m.Logger = logger

	buf, err := audio.Load(args[0])
	if err != nil {
		logger.Error("failed to load audio", slog.String("file", args[0]), slog.String("error", err.Error()))
		return err
	}
	logger.Info("audio loaded",
		slog.String("file", args[0]),
		slog.Int("sample_rate", buf.SampleRate),
		slog.Int("channels", buf.Channels),
		slog.Int("samples", len(buf.Samples)),
		slog.Float64("seconds", buf.Duration()))

	if dump, _ := cmd.Flags().GetString("dump-mono"); dump != "" {
		if err := dumpMono(dump, buf); err != nil {
			logger.Error("failed to write mono signal", slog.String("file", dump), slog.String("error", err.Error()))
			return err
		}
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	frames := 0
	err = m.Run(cmd.Context(), buf.Samples, buf.SampleRate, func(_ int, vec []float64) error {
		frames++
		return printVector(out, vec)
	})
	if flushErr := out.Flush(); err == nil {
		err = flushErr
	}
	if err != nil {
		logger.Error("extraction failed", slog.Int("frames", frames), slog.String("error", err.Error()))
		return err
	}

	logger.Info("extraction done", slog.Int("frames", frames))
	return nil
}

// applyFlags copies the flags set on the command line onto m and level.
func applyFlags(cmd *cobra.Command, m *mfcc.MFCC, level *config.LogLevel) error {
	f := cmd.Flags()

	if f.Changed("log-level") {
		s, _ := f.GetString("log-level")
		if !config.LogLevel(s).IsValid() {
			return fmt.Errorf("--log-level %q is invalid; valid values: debug, info, warn, error", s)
		}
		*level = config.LogLevel(s)
	}
	if f.Changed("cutoff-low") {
		m.CutoffLow, _ = f.GetFloat64("cutoff-low")
	}
	if f.Changed("cutoff-high") {
		m.CutoffHigh, _ = f.GetFloat64("cutoff-high")
	}
	if f.Changed("filters") {
		m.FilterCount, _ = f.GetInt("filters")
	}
	if f.Changed("oversampling") {
		m.OversamplingFactor, _ = f.GetInt("oversampling")
	}
	if f.Changed("resolution-ms") {
		m.ResolutionDuration, _ = f.GetInt("resolution-ms")
	}
	if f.Changed("bin-min") {
		m.BinMinimumSize, _ = f.GetInt("bin-min")
	}
	if f.Changed("log-mel") {
		m.LogMelOnly, _ = f.GetBool("log-mel")
	}
	if f.Changed("power") {
		m.Power, _ = f.GetBool("power")
	}
	if f.Changed("ortho") {
		m.Orthonormal, _ = f.GetBool("ortho")
	}
	if f.Changed("workers") {
		m.Workers, _ = f.GetInt("workers")
	}
	return nil
}

func setupLogger(w io.Writer, level config.LogLevel) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level.Level()}))
}

func dumpMono(path string, buf *audio.Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := audio.EncodeWav(f, buf); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// printVector writes vec as one line of space separated values.
func printVector(w *bufio.Writer, vec []float64) error {
	var num []byte
	for i, v := range vec {
		if i > 0 {
			w.WriteByte(' ')
		}
		num = strconv.AppendFloat(num[:0], v, 'g', -1, 64)
		w.Write(num)
	}
	return w.WriteByte('\n')
}
