package veil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
	xxhash "github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/veilhq/veil/internal/config"
	"github.com/veilhq/veil/internal/engine"
	"github.com/veilhq/veil/internal/format"
)

var (
	flagOutput      string
	flagPlaceholder string
	flagFormat      string
	flagBackup      bool
	flagDryRun      bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scrub <file|glob>...",
		Short: "Redact sensitive values in config files",
		Long: "Scrub loads each YAML or JSON file, replaces values under sensitive-looking\n" +
			"keys (password, api_key, secret, token, access_key, credentials) with a\n" +
			"placeholder, and writes the result back. Without --output each file is\n" +
			"rewritten in place. Each file is processed independently; a failure in one\n" +
			"does not stop the rest.",
		Args: cobra.MinimumNArgs(1),
		RunE: runScrub,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output path (single input only; default: rewrite input in place)")
	cmd.Flags().StringVarP(&flagPlaceholder, "placeholder", "p", "", "replacement for redacted values (default \"<REDACTED>\")")
	cmd.Flags().StringVar(&flagFormat, "format", "", "force output format: yaml|json (default: by output extension)")
	cmd.Flags().BoolVar(&flagBackup, "backup", false, "keep a .bak copy when rewriting in place")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "report what would change without writing")
}

type scrubOptions struct {
	placeholder string
	forceFormat string
	backup      bool
	dryRun      bool
}

func runScrub(_ *cobra.Command, args []string) error {
	// Config precedence: CLI > local > global.
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if wd, err := os.Getwd(); err == nil {
		if c, err := config.LoadLocal(wd); err == nil {
			lcfg = c
		}
	}
	if pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor) && !flagNoColor {
		flagNoColor = true
		logger = newLogger()
	}
	if pickBool(flagDebug, lcfg.Debug, gcfg.Debug) && !flagDebug {
		logger = logger.Level(zerolog.DebugLevel)
	}

	opts := scrubOptions{
		placeholder: pickString(flagPlaceholder, lcfg.Placeholder, gcfg.Placeholder),
		forceFormat: strings.ToLower(pickString(flagFormat, lcfg.Format, gcfg.Format)),
		backup:      pickBool(flagBackup, lcfg.Backup, gcfg.Backup),
		dryRun:      flagDryRun,
	}
	switch opts.forceFormat {
	case "", "yaml", "yml", "json":
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", opts.forceFormat)
	}

	inputs, err := expandArgs(args)
	if err != nil {
		return err
	}
	if flagOutput != "" && len(inputs) != 1 {
		return fmt.Errorf("--output needs exactly one input file, got %d", len(inputs))
	}

	failed := 0
	for _, in := range inputs {
		out := flagOutput
		if out == "" {
			out = in
		}
		if err := scrubFile(in, out, opts); err != nil {
			logger.Error().Str("file", in).Err(err).Msg("scrub failed")
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(inputs))
	}
	return nil
}

// scrubFile runs the load, redact, write pipeline for one file. Each call
// owns its document tree exclusively; nothing is shared between files
// except the read-only rule set.
func scrubFile(in, out string, opts scrubOptions) error {
	raw, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("read %s: %w", in, err)
	}
	doc, err := format.Parse(raw)
	if err != nil {
		return err
	}

	res := engine.Redact(doc, engine.Config{Placeholder: opts.placeholder})

	f, known := outputFormat(out, opts.forceFormat)
	if !known {
		logger.Warn().Str("file", out).Msg("unrecognized extension, writing YAML")
	}
	b, err := format.Render(res.Document, f)
	if err != nil {
		return err
	}

	if opts.dryRun {
		logger.Info().Str("file", in).Int("redacted", res.Redacted).Msg("dry run, nothing written")
		return nil
	}
	if out == in {
		// Re-running over an already-scrubbed file should leave it alone.
		if xxhash.Sum64(b) == xxhash.Sum64(raw) {
			logger.Debug().Str("file", in).Msg("already clean, skipping write")
			return nil
		}
		if opts.backup {
			if err := os.WriteFile(in+".bak", raw, 0o644); err != nil {
				return fmt.Errorf("write backup: %w", err)
			}
		}
	}
	if err := os.WriteFile(out, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	logger.Info().Str("file", out).Int("redacted", res.Redacted).Str("format", f.String()).Msg("scrubbed")
	return nil
}

// outputFormat resolves the serialization for out, honoring an explicit
// --format override before extension dispatch.
func outputFormat(out, force string) (format.Format, bool) {
	switch force {
	case "yaml", "yml":
		return format.YAML, true
	case "json":
		return format.JSON, true
	}
	return format.Detect(out)
}

// expandArgs resolves glob arguments against the filesystem. Plain paths
// pass through untouched so a missing file still surfaces as a read error
// rather than silently matching nothing.
func expandArgs(args []string) ([]string, error) {
	var out []string
	for _, a := range args {
		if !strings.ContainsAny(a, "*?[{") {
			out = append(out, a)
			continue
		}
		matches, err := doublestar.FilepathGlob(a)
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %w", a, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("glob %q matched no files", a)
		}
		out = append(out, matches...)
	}
	for i := range out {
		out[i] = filepath.Clean(out[i])
	}
	return out, nil
}
