// Command mdedit is a terminal Markdown editor with live syntax decorations.
//
// Usage:
//
//	mdedit [flags] [file]          edit file (or an unsaved buffer)
//	mdedit regions [flags] <glob>  print decorations of matching files as JSON
//	mdedit config init [path]      write the default configuration
//
// Keys: ctrl+s saves, ctrl+c or esc quits.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/mdedit"
	mdchroma "github.com/fwojciec/mdedit/chroma"
	"github.com/fwojciec/mdedit/config"
	mddiff "github.com/fwojciec/mdedit/diffmatchpatch"
	mdgoldmark "github.com/fwojciec/mdedit/goldmark"
	"github.com/fwojciec/mdedit/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "mdedit: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Query the terminal background before any program owns the input, so
	// the response does not land in the editor.
	_ = lipgloss.HasDarkBackground()

	// Handle OS signals for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return newRootCmd(viper.New()).ExecuteContext(ctx)
}

// options holds the flags shared by all commands.
type options struct {
	configPath string
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "mdedit [file]",
		Short:         "Edit Markdown with live syntax decorations",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, opts.configPath)
			if err != nil {
				return err
			}
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return runEdit(cmd.Context(), cfg, path)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"config file (default: ~/.config/mdedit/config.yaml)")
	cmd.PersistentFlags().String("policy", "", "highlight policy: default, external")
	cmd.Flags().Bool("debug", false, "write a debug log")
	cmd.Flags().Int("max-length", 0, "maximum document length in characters (0: unlimited)")
	cmd.Flags().String("placeholder", "", "text shown while the document is empty")
	cmd.Flags().Bool("read-only", false, "open the document without editing")
	cmd.Flags().Bool("watch", true, "reload the file when it changes on disk")
	cmd.PersistentFlags().Bool("only-autolink", false, "decorate bare URLs instead of link syntax")

	_ = v.BindPFlag("highlight.policy", cmd.PersistentFlags().Lookup("policy"))
	_ = v.BindPFlag("editor.only_autolink", cmd.PersistentFlags().Lookup("only-autolink"))
	_ = v.BindPFlag("log.debug", cmd.Flags().Lookup("debug"))
	_ = v.BindPFlag("editor.max_length", cmd.Flags().Lookup("max-length"))
	_ = v.BindPFlag("editor.placeholder", cmd.Flags().Lookup("placeholder"))
	_ = v.BindPFlag("watch.enabled", cmd.Flags().Lookup("watch"))
	cmd.PreRun = func(cmd *cobra.Command, _ []string) {
		// --read-only negates editor.editable.
		if ro, _ := cmd.Flags().GetBool("read-only"); ro {
			v.Set("editor.editable", false)
		}
	}

	cmd.AddCommand(newRegionsCmd(v, opts), newConfigCmd())
	return cmd
}

// loadConfig reads the explicit config file, or the user config when it
// exists.
func loadConfig(v *viper.Viper, path string) (config.Config, error) {
	if path == "" {
		if _, err := os.Stat(config.DefaultPath()); err == nil {
			path = config.DefaultPath()
		}
	}
	return config.Load(v, path)
}

// openLogger opens the debug log, or discards everything when debugging is
// off.
func openLogger(cfg config.Config) (*log.Logger, func() error, error) {
	if !cfg.Log.Debug {
		return log.New(io.Discard, log.LevelError), func() error { return nil }, nil
	}
	return log.Open(cfg.Log.Path, log.ParseLevel(cfg.Log.Level))
}

// newParser builds the Markdown parser, with fenced code highlighting when
// enabled.
func newParser(cfg config.Config, logger *log.Logger) mdedit.Parser {
	opts := []mdgoldmark.Option{mdgoldmark.WithLogger(logger.With(log.CatParse))}
	if cfg.Highlight.CodeLanguages {
		tok := mdchroma.NewTokenizer(cfg.Highlight.CacheExpiration, mdchroma.DefaultCleanupInterval, logger.With(log.CatCache))
		opts = append(opts, mdgoldmark.WithTokenizer(tok))
	}
	return mdgoldmark.NewParser(opts...)
}

func newDiffer(cfg config.Config, logger *log.Logger) mdedit.Differ {
	return mddiff.NewDiffer(cfg.Highlight.DiffTimeout, logger.With(log.CatEngine))
}
