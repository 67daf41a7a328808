package main

import (
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/mdedit"
	"github.com/fwojciec/mdedit/config"
	mdjson "github.com/fwojciec/mdedit/json"
	"github.com/fwojciec/mdedit/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRegionsCmd(v *viper.Viper, opts *options) *cobra.Command {
	var dir, out string
	cmd := &cobra.Command{
		Use:   "regions <glob>",
		Short: "Print the decorations of matching Markdown files as JSON",
		Long: `Regions parses every file under --dir matching the glob (e.g. "**/*.md")
and prints its regions and highlight spans. With --out each result is saved
to <out>/<file>.json instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, opts.configPath)
			if err != nil {
				return err
			}
			logger, closeLog, err := openLogger(cfg)
			if err != nil {
				return err
			}
			defer closeLog()

			files, err := match(dir, args[0])
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no files match %q in %s", args[0], dir)
			}

			d := newDecorator(cfg, logger)
			for _, rel := range files {
				dec, err := d.decorate(filepath.Join(dir, rel), rel)
				if err != nil {
					return err
				}
				if out != "" {
					if err := mdjson.Save(filepath.Join(out, rel+".json"), dec); err != nil {
						return fmt.Errorf("save %s: %w", rel, err)
					}
					continue
				}
				data, err := mdjson.MarshalDecorations(dec)
				if err != nil {
					return fmt.Errorf("marshal %s: %w", rel, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "base directory to search from")
	cmd.Flags().StringVarP(&out, "out", "o", "", "directory for JSON files (default: stdout)")
	return cmd
}

// match returns the files under dir matching pattern, relative to dir and
// sorted.
func match(dir, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern: %s", pattern)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("access %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	var matches []string
	err = doublestar.GlobWalk(os.DirFS(dir), pattern, func(path string, d iofs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		matches = append(matches, filepath.FromSlash(path))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("match %s: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// decorator computes decorations the way an editor with the same
// configuration would.
type decorator struct {
	parser      mdedit.Parser
	builder     *mdedit.Builder
	highlighter *mdedit.Highlighter
}

func newDecorator(cfg config.Config, logger *log.Logger) *decorator {
	classifier := mdedit.NewClassifier(mdedit.ClassifierOptions{
		Policy:       mdedit.ParsePolicy(cfg.Highlight.Policy),
		OnlyAutolink: cfg.Editor.OnlyAutolink,
	})
	return &decorator{
		parser:      newParser(cfg, logger),
		builder:     mdedit.NewBuilder(mdedit.DefaultPasses(cfg.Editor.OnlyAutolink), logger.With(log.CatEngine)),
		highlighter: mdedit.NewHighlighter(classifier),
	}
}

func (d *decorator) decorate(path, name string) (mdedit.Decorations, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return mdedit.Decorations{}, fmt.Errorf("read %s: %w", path, err)
	}
	return mdedit.Decorate(d.parser, d.builder, d.highlighter, name, string(data))
}
