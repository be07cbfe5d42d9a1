package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/mgpai22/lyrico/internal/config"
	"github.com/mgpai22/lyrico/internal/format"
	"github.com/mgpai22/lyrico/internal/host"
	"github.com/mgpai22/lyrico/internal/logging"
	"github.com/mgpai22/lyrico/internal/pipeline"
	"github.com/mgpai22/lyrico/internal/store"
	"github.com/spf13/cobra"
)

// errReported marks failures the pipeline already showed to the user.
var errReported = errors.New("already reported")

type reportedError struct{ err error }

func (e *reportedError) Error() string        { return e.err.Error() }
func (e *reportedError) Unwrap() error        { return e.err }
func (e *reportedError) Is(target error) bool { return target == errReported }

// app holds what every command shares once the persistent flags are parsed.
type app struct {
	verbose  bool
	envFile  string
	storeArg string
	redisURL string
	redisKey string

	cfg      config.Config
	logger   *logging.Logger
	registry *format.Registry
	backend  store.Backend
}

func NewRootCmd() *cobra.Command {
	a := &app{registry: format.Default()}

	rootCmd := &cobra.Command{
		Use:   "lyrico",
		Short: "Convert time-synced lyrics between formats",
		Long: `Lyrico imports and exports time-synchronized lyrics.

It reads and writes LRC, ESLyRiC, QRC, YRC, Lyricify Syllable, Lyricify
Quick Export, Lyricify Lines, TTML, SRT and WebVTT, exports ASS karaoke
subtitles and imports plain text. The current document lives in a store
(memory by default, or Redis to keep it between runs).`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose output")
	flags.StringP("output", "o", "", "Output file path (- for stdout)")
	flags.StringVar(&a.envFile, "env-file", "", "Load configuration from this .env file")
	flags.StringVar(&a.storeArg, "store", "", "Document store: memory or redis (or set LYRICO_STORE)")
	flags.StringVar(&a.redisURL, "redis-url", "", "Redis URL for the redis store (or set LYRICO_REDIS_URL)")
	flags.StringVar(&a.redisKey, "redis-key", "", "Key prefix for the redis store (or set LYRICO_REDIS_KEY)")
	flags.Bool("overwrite", false, "Replace existing output files without asking")

	rootCmd.AddCommand(
		newFormatsCmd(a),
		newConvertCmd(a),
		newImportCmd(a),
		newExportCmd(a),
		newTranslateCmd(a),
		newLicenseCmd(),
	)
	return rootCmd
}

func Execute(ctx context.Context) error {
	rootCmd := NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

func (a *app) setup(cmd *cobra.Command) error {
	a.logger = logging.NewLogger(a.verbose)

	if a.envFile != "" {
		cfg, err := config.LoadFile(a.envFile)
		if err != nil {
			return err
		}
		a.cfg = cfg
	} else {
		a.cfg = config.Load()
	}

	if a.storeArg != "" {
		a.cfg.Store = a.storeArg
	}
	if a.redisURL != "" {
		a.cfg.RedisURL = a.redisURL
	}
	if a.redisKey != "" {
		a.cfg.RedisKey = a.redisKey
	}
	if cmd.Flags().Changed("overwrite") {
		a.cfg.Overwrite, _ = cmd.Flags().GetBool("overwrite")
	}

	if err := a.cfg.Validate(); err != nil {
		return err
	}

	a.logger.Debugw("Loaded configuration",
		"store", a.cfg.Store,
		"redis_key", a.cfg.RedisKey,
		"overwrite", a.cfg.Overwrite,
	)
	return nil
}

// openStore connects the configured document store on first use.
func (a *app) openStore(ctx context.Context) (store.Backend, error) {
	if a.backend != nil {
		return a.backend, nil
	}
	backend, err := store.Open(ctx, store.Kind(a.cfg.Store), a.cfg.RedisURL, a.cfg.RedisKey)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", a.cfg.Store, err)
	}
	if a.cfg.SaveName != "" {
		if err := backend.SetSaveName(ctx, a.cfg.SaveName); err != nil {
			backend.Close()
			return nil, err
		}
	}
	a.backend = backend
	return backend, nil
}

// useStore replaces the configured store, e.g. with a scratch memory store
// for one-shot conversions.
func (a *app) useStore(backend store.Backend) {
	if a.backend != nil {
		a.backend.Close()
	}
	a.backend = backend
}

func (a *app) close() error {
	if a.backend == nil {
		return nil
	}
	err := a.backend.Close()
	a.backend = nil
	return err
}

// newPipeline wires the pipeline to a terminal host.
func (a *app) newPipeline(cmd *cobra.Command, backend pipeline.Store) *pipeline.Pipeline {
	p := pipeline.New(backend, a.logger.Named("pipeline"))
	p.Registry = a.registry
	p.Notifier = &host.ConsoleNotifier{
		Out:    cmd.ErrOrStderr(),
		Err:    cmd.ErrOrStderr(),
		Logger: a.logger,
	}
	p.Clipboard = host.NewSystemClipboard()
	return p
}

// fileWriter picks the export destination from --output: "-" prints, a path
// is written as given, and no path saves the suggested name into dir.
func (a *app) fileWriter(cmd *cobra.Command, dir string) (pipeline.FileWriter, *host.DiskWriter) {
	output, _ := cmd.Flags().GetString("output")
	if output == "-" {
		return &host.StdoutWriter{Out: cmd.OutOrStdout()}, nil
	}
	w := &host.DiskWriter{
		Dir:       dir,
		Path:      output,
		Overwrite: a.cfg.Overwrite,
		Confirm:   host.ConfirmPrompt(cmd.InOrStdin(), cmd.ErrOrStderr()),
	}
	return w, w
}

// finishOp maps a pipeline result to the command result. Cancels were
// already shown as information and are not failures.
func finishOp(err error) error {
	if err == nil || pipeline.IsCancelled(err) {
		return nil
	}
	return &reportedError{err: err}
}
