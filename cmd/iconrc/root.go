// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/iconrc/cmd/iconrc/commands"
	"github.com/walteh/iconrc/cmd/iconrc/opts"
	"github.com/walteh/iconrc/cmd/iconrc/prompt"
	"github.com/walteh/iconrc/pkg/catalog"
	"github.com/walteh/iconrc/pkg/config"
	"github.com/walteh/iconrc/pkg/log"
	"github.com/walteh/iconrc/pkg/source"
	"gitlab.com/tozd/go/errors"

	// registered source kinds
	_ "github.com/walteh/iconrc/pkg/source/github"
	_ "github.com/walteh/iconrc/pkg/source/local"
)

// rootFlags holds the persistent flags
type rootFlags struct {
	configFile string
	debug      bool
	dir        string
	archive    string
	remote     bool
	userAgent  string
}

// newRootCmd creates the root command with every subcommand attached
func newRootCmd(out io.Writer, prompter prompt.Prompter) *cobra.Command {
	flags := &rootFlags{}
	o := &opts.RootOpts{Out: out, Prompter: prompter}

	rootCmd := &cobra.Command{
		Use:   "iconrc",
		Short: "List, preview and download SVG icons",
		Long: `iconrc lists, searches, previews and downloads SVG icons from a local
directory, a .tar.gz archive or a GitHub repository (lucide-icons/lucide by default).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), flags.debug)
			cmd.SetContext(ctx)
			return flags.newRootOpts(ctx, cmd, o)
		},
	}
	rootCmd.SetOut(out)

	// Add shared flags
	addRootFlags(rootCmd, flags)

	// Add commands
	rootCmd.AddCommand(
		commands.NewListCmd(o),
		commands.NewDownloadCmd(o),
		commands.NewDownloadAllCmd(o),
		commands.NewPreviewCmd(o),
		commands.NewSearchCmd(o),
		commands.NewSelectCmd(o),
		newVersionCmd(out),
	)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", ".iconrc.yaml", "config file path")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&flags.dir, "dir", "", "read icons from this directory")
	cmd.PersistentFlags().StringVar(&flags.archive, "archive", "", "read icons from this .tar.gz archive")
	cmd.PersistentFlags().BoolVar(&flags.remote, "remote", false, "read icons from the GitHub repository")
	cmd.PersistentFlags().StringVar(&flags.userAgent, "user-agent", "", "User-Agent header for remote requests")
}

// newRootOpts loads the configuration and builds the catalog every command works on
func (f *rootFlags) newRootOpts(ctx context.Context, cmd *cobra.Command, o *opts.RootOpts) error {
	var cfg *config.Config
	var err error
	if cmd.Flags().Changed("config") {
		cfg, err = config.Load(ctx, f.configFile)
	} else {
		cfg, err = config.LoadOptional(ctx, f.configFile)
	}
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	if err := f.apply(cfg); err != nil {
		return err
	}

	src, err := source.New(ctx, cfg.Source)
	if err != nil {
		return errors.Errorf("creating source: %w", err)
	}

	level := zerolog.ErrorLevel
	if f.debug {
		level = zerolog.DebugLevel
	}

	o.Config = cfg
	o.Catalog = catalog.New(src, cfg.Ignore...)
	o.Logger = log.New(o.Out, level)

	zerolog.Ctx(ctx).Debug().Str("file", cfg.Location()).Str("config", cfg.String()).Msg("ready")

	return nil
}

// apply overlays the source flags on cfg
func (f *rootFlags) apply(cfg *config.Config) error {
	set := 0
	for _, on := range []bool{f.dir != "", f.archive != "", f.remote} {
		if on {
			set++
		}
	}
	if set > 1 {
		return errors.New("--dir, --archive and --remote are mutually exclusive")
	}

	switch {
	case f.dir != "":
		cfg.Source.Kind = config.KindDirectory
		cfg.Source.Path = f.dir
	case f.archive != "":
		cfg.Source.Kind = config.KindArchive
		cfg.Source.Path = f.archive
	case f.remote:
		cfg.Source.Kind = config.KindGithub
		cfg.Source.Path = ""
	}
	if f.userAgent != "" {
		cfg.Source.UserAgent = f.userAgent
	}

	if err := cfg.Validate(); err != nil {
		return errors.Errorf("validating flags: %w", err)
	}
	return nil
}

// setupLogging configures zerolog based on flags
func setupLogging(ctx context.Context, debug bool) context.Context {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	return logger.WithContext(ctx)
}
