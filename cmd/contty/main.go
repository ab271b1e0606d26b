package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	cli "github.com/urfave/cli/v3"

	"github.com/jorge-barreto/contty/internal/caddyfile"
	"github.com/jorge-barreto/contty/internal/config"
	"github.com/jorge-barreto/contty/internal/docs"
	"github.com/jorge-barreto/contty/internal/logging"
	"github.com/jorge-barreto/contty/internal/provision"
	"github.com/jorge-barreto/contty/internal/scaffold"
	"github.com/jorge-barreto/contty/internal/ux"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdout).Run(ctx, os.Args); err != nil {
		ux.Error(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries state shared by every subcommand.
type app struct {
	out    io.Writer
	logger *slog.Logger
}

func newApp(out io.Writer) *cli.Command {
	a := &app{out: out, logger: logging.Discard()}
	return &cli.Command{
		Name:        "contty",
		Usage:       "Keep generated reverse-proxy blocks in a hand-edited Caddyfile",
		Description: "Run 'contty docs' for documentation on markers, config, and sync.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to the site list",
				Value:   scaffold.FileName,
				Sources: cli.EnvVars("CONTTY_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "caddyfile",
				Usage:   "Path to the Caddyfile (overrides the config file)",
				Sources: cli.EnvVars("CADDYFILE_LOCATION"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level: debug, info, warn, error",
				Value:   "warn",
				Sources: cli.EnvVars("CONTTY_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "Log format: text, json",
				Value:   "text",
				Sources: cli.EnvVars("CONTTY_LOG_FORMAT"),
			},
		},
		Before: a.before,
		Commands: []*cli.Command{
			a.initCmd(),
			a.syncCmd(),
			a.addCmd(),
			a.removeCmd(),
			a.listCmd(),
			a.checkCmd(),
			a.docsCmd(),
		},
	}
}

func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	logger, err := logging.New(os.Stderr, cmd.String("log-level"), cmd.String("log-format"))
	if err != nil {
		return ctx, err
	}
	a.logger = logger
	return ctx, nil
}

func (a *app) initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write an example contty.yaml in the current directory",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			return scaffold.Init(a.out, dir)
		},
	}
}

func (a *app) syncCmd() *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Rewrite the automatic blocks to match the config file",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "dry-run", Usage: "Print the resulting Caddyfile without writing it"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			path := caddyfilePath(cmd, cfg)

			res, err := provision.Sync(ctx, path, cfg.Blocks(), a.options(cmd))
			if err != nil {
				return err
			}
			return a.report(cmd, path, res)
		},
	}
}

func (a *app) addCmd() *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Add or replace the automatic block for one hostname",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "hostname", Usage: "Public hostname", Required: true},
			&cli.StringFlag{Name: "service", Usage: "Backend service name", Required: true},
			&cli.StringFlag{Name: "port", Usage: "Backend port", Required: true},
			&cli.StringFlag{Name: "email", Usage: "Contact address for certificates (defaults to the config file's email)"},
			&cli.BoolFlag{Name: "dry-run", Usage: "Print the resulting Caddyfile without writing it"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := optionalConfig(cmd.String("config"))
			if err != nil {
				return err
			}
			site := config.Site{
				Hostname: cmd.String("hostname"),
				Service:  cmd.String("service"),
				Port:     cmd.String("port"),
				Email:    cmd.String("email"),
			}
			if site.Email == "" {
				site.Email = cfg.Email
			}
			if err := config.ValidateSite(site); err != nil {
				return fmt.Errorf("site %q: %w", site.Hostname, err)
			}
			if cfg.SiteIndex(site.Hostname) >= 0 {
				a.logger.Warn("site.listed_in_config", "hostname", site.Hostname,
					"hint", "the next sync will overwrite this block with the config file's values")
			}

			path := caddyfilePath(cmd, cfg)
			res, err := provision.Upsert(ctx, path, site.Block(), a.options(cmd))
			if err != nil {
				return err
			}
			return a.report(cmd, path, res)
		},
	}
}

func (a *app) removeCmd() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Usage:     "Remove the automatic block for a hostname",
		ArgsUsage: "<hostname>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "dry-run", Usage: "Print the resulting Caddyfile without writing it"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			hostname := cmd.Args().First()
			if hostname == "" {
				return fmt.Errorf("hostname argument is required")
			}
			cfg, err := optionalConfig(cmd.String("config"))
			if err != nil {
				return err
			}
			path := caddyfilePath(cmd, cfg)
			res, err := provision.Remove(ctx, path, hostname, a.options(cmd))
			if err != nil {
				return err
			}
			return a.report(cmd, path, res)
		},
	}
}

func (a *app) listCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "Show the blocks in the Caddyfile",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := optionalConfig(cmd.String("config"))
			if err != nil {
				return err
			}
			path := caddyfilePath(cmd, cfg)
			doc, err := provision.Inspect(path)
			if err != nil {
				return err
			}
			ux.RenderDocument(a.out, path, doc)
			return nil
		},
	}
}

func (a *app) checkCmd() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Verify that the Caddyfile parses and can be rewritten",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := optionalConfig(cmd.String("config"))
			if err != nil {
				return err
			}
			path := caddyfilePath(cmd, cfg)
			doc, err := provision.Inspect(path)
			if err != nil {
				return err
			}
			if _, err := caddyfile.Build(doc); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			fmt.Fprintf(a.out, "%s✓%s %s: %d manual, %d automatic blocks\n",
				ux.Green, ux.Reset, path, len(doc.Manual), len(doc.Automatic))
			return nil
		},
	}
}

func (a *app) docsCmd() *cli.Command {
	return &cli.Command{
		Name:      "docs",
		Usage:     "Show documentation",
		ArgsUsage: "[topic]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				fmt.Fprint(a.out, "\nAvailable topics:\n\n")
				for _, t := range docs.All() {
					fmt.Fprintf(a.out, "  %-14s %s\n", t.Name, t.Summary)
				}
				fmt.Fprintln(a.out, "\nRun 'contty docs <topic>' to read a topic.")
				return nil
			}
			t, err := docs.Get(name)
			if err != nil {
				return err
			}
			fmt.Fprint(a.out, t.Content)
			return nil
		},
	}
}

func (a *app) options(cmd *cli.Command) provision.Options {
	return provision.Options{DryRun: cmd.Bool("dry-run"), Logger: a.logger}
}

func (a *app) report(cmd *cli.Command, path string, res *provision.Result) error {
	if cmd.Bool("dry-run") {
		_, err := a.out.Write(res.Output)
		return err
	}
	ux.RenderResult(a.out, path, res)
	return nil
}

// optionalConfig loads the config file if there is one. Commands that edit a
// single site work without it.
func optionalConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = &config.Config{}
		return cfg, config.Validate(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// caddyfilePath prefers --caddyfile (or CADDYFILE_LOCATION) over the config
// file.
func caddyfilePath(cmd *cli.Command, cfg *config.Config) string {
	if p := cmd.String("caddyfile"); p != "" {
		return p
	}
	return cfg.Caddyfile
}
