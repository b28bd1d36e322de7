package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-lifespan/internal/calendar"
	"github.com/tartampluch/go-lifespan/internal/config"
	"github.com/tartampluch/go-lifespan/internal/contacts"
	"github.com/tartampluch/go-lifespan/internal/engine"
	"github.com/tartampluch/go-lifespan/internal/feed"
	"github.com/tartampluch/go-lifespan/internal/render"
	"github.com/tartampluch/go-lifespan/internal/server"
)

// cli holds the global flags and the injectable collaborators of every command.
type cli struct {
	configPath string
	debug      bool
	lang       string
	asJSON     bool
	version    bool

	clock   engine.Clock
	secrets contacts.SecretStore
	loader  *contacts.Loader

	// logging is nil in tests; runMain installs setupLogging.
	logging func(debug bool) io.Closer
	closer  io.Closer
}

// sourceFlags are shared by the commands reading a vCard source.
type sourceFlags struct {
	file string
	url  string
	user string
}

func newCLI() *cli {
	return &cli{
		clock:   engine.RealClock{},
		secrets: contacts.KeyringStore{},
		loader:  contacts.NewLoader(),
	}
}

func (c *cli) close() {
	if c.closer != nil {
		_ = c.closer.Close() // Best effort close
	}
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           config.AppCommand,
		Short:         config.CmdDescRoot,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if c.logging != nil {
				c.closer = c.logging(c.debug)
				logStartupInfo()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.version {
				printVersion(cmd.OutOrStdout())
				return nil
			}
			return cmd.Help()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, config.FlagConfig, "", config.FlagDescConfig)
	pf.BoolVar(&c.debug, config.FlagDebug, false, config.FlagDescDebug)
	pf.StringVar(&c.lang, config.FlagLang, "", config.FlagDescLang)
	pf.BoolVar(&c.asJSON, config.FlagJSON, false, config.FlagDescJSON)
	root.Flags().BoolVar(&c.version, config.FlagVersion, false, config.FlagDescVersion)

	root.AddCommand(
		c.profileCommand(),
		c.spanCommand(),
		c.contactsCommand(),
		c.feedCommand(),
		c.credentialsCommand(),
		c.serveCommand(),
	)
	return root
}

// -----------------------------------------------------------------------------
// Commands
// -----------------------------------------------------------------------------

func (c *cli) profileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdProfile,
		Short: config.CmdDescProfile,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, settings, err := c.engine()
			if err != nil {
				return err
			}
			birth, err := parseArg(args[0])
			if err != nil {
				return err
			}

			var p engine.Profile
			if len(args) == 2 {
				ref, err := parseArg(args[1])
				if err != nil {
					return err
				}
				p, err = e.Profile(birth, ref)
				if err != nil {
					return err
				}
			} else if p, err = e.ProfileToday(birth); err != nil {
				return err
			}

			if c.asJSON {
				return render.JSON(cmd.OutOrStdout(), p)
			}
			r, err := c.renderer(cmd.OutOrStdout(), settings)
			if err != nil {
				return err
			}
			return r.Profile(p)
		},
	}
}

func (c *cli) spanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdSpan,
		Short: config.CmdDescSpan,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, settings, err := c.engine()
			if err != nil {
				return err
			}
			start, err := parseArg(args[0])
			if err != nil {
				return err
			}
			end, err := parseArg(args[1])
			if err != nil {
				return err
			}

			s, err := e.Span(start, end)
			if err != nil {
				return err
			}

			if c.asJSON {
				return render.JSON(cmd.OutOrStdout(), s)
			}
			r, err := c.renderer(cmd.OutOrStdout(), settings)
			if err != nil {
				return err
			}
			return r.Span(s)
		},
	}
}

func (c *cli) contactsCommand() *cobra.Command {
	var src sourceFlags
	cmd := &cobra.Command{
		Use:   config.CmdContacts,
		Short: config.CmdDescContacts,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, settings, err := c.engine()
			if err != nil {
				return err
			}
			subjects, err := c.load(cmd, src)
			if err != nil {
				return err
			}

			// A birthday without a year has no span to derive.
			entries := make([]render.ContactProfile, 0, len(subjects))
			for _, s := range contacts.WithKnownYear(subjects) {
				p, err := e.ProfileToday(s.Birth)
				if err != nil {
					slog.WarnContext(cmd.Context(), config.MsgSkippedProfile,
						config.LogKeyComponent, config.CompMain,
						config.LogKeyName, s.Name,
						config.LogKeyError, err,
					)
					continue
				}
				entries = append(entries, render.ContactProfile{Subject: s, Profile: p})
			}

			if c.asJSON {
				return render.JSON(cmd.OutOrStdout(), entries)
			}
			r, err := c.renderer(cmd.OutOrStdout(), settings)
			if err != nil {
				return err
			}
			return r.Contacts(entries)
		},
	}
	src.bind(cmd)
	return cmd
}

func (c *cli) feedCommand() *cobra.Command {
	var (
		src sourceFlags
		out string
	)
	cmd := &cobra.Command{
		Use:   config.CmdFeed,
		Short: config.CmdDescFeed,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, settings, err := c.engine()
			if err != nil {
				return err
			}
			gen, err := c.feedGenerator(e, settings)
			if err != nil {
				return err
			}
			data, stats, err := gen(cmd, src)
			if err != nil {
				return err
			}

			if out == "" {
				if _, err := cmd.OutOrStdout().Write(data); err != nil {
					return fmt.Errorf("%s: %w", config.ErrWriteOutput, err)
				}
				return nil
			}
			if err := os.WriteFile(out, data, config.FilePermUserRW); err != nil {
				return fmt.Errorf("%s: %w", config.ErrWriteOutput, err)
			}
			slog.InfoContext(cmd.Context(), config.MsgFeedWritten,
				config.LogKeyComponent, config.CompMain,
				config.LogKeyFile, out,
				config.LogKeyEvents, stats.Birthdays+stats.Milestones,
			)
			return nil
		},
	}
	src.bind(cmd)
	cmd.Flags().StringVar(&out, config.FlagOut, "", config.FlagDescOut)
	return cmd
}

func (c *cli) credentialsCommand() *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   config.CmdCredentials,
		Short: config.CmdDescCredentials,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pass, err := readPassword(cmd.InOrStdin())
			if err != nil {
				return err
			}
			if err := contacts.StorePassword(c.secrets, user, pass); err != nil {
				return err
			}
			slog.InfoContext(cmd.Context(), config.MsgPassSaved,
				config.LogKeyComponent, config.CompMain,
				config.LogKeyUser, user,
			)
			return nil
		},
	}
	cmd.Flags().StringVar(&user, config.FlagUser, "", config.FlagDescUser)
	return cmd
}

func (c *cli) serveCommand() *cobra.Command {
	var (
		src     sourceFlags
		port    string
		refresh time.Duration
	)
	cmd := &cobra.Command{
		Use:   config.CmdServe,
		Short: config.CmdDescServe,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := server.ValidatePort(port); err != nil {
				return err
			}
			if refresh <= 0 {
				return fmt.Errorf("%s: %s", config.ErrRefresh, refresh)
			}
			e, settings, err := c.engine()
			if err != nil {
				return err
			}
			gen, err := c.feedGenerator(e, settings)
			if err != nil {
				return err
			}

			srv := server.NewFeedServer(port, e)
			sync := func() error {
				data, _, err := gen(cmd, src)
				if err != nil {
					return err
				}
				srv.Update(data)
				return nil
			}

			// The first synchronization must succeed; later failures keep the last feed.
			if err := sync(); err != nil {
				return err
			}
			go func() {
				ticker := time.NewTicker(refresh)
				defer ticker.Stop()
				for {
					select {
					case <-cmd.Context().Done():
						return
					case <-ticker.C:
						if err := sync(); err != nil {
							slog.ErrorContext(cmd.Context(), config.MsgSyncFailed,
								config.LogKeyComponent, config.CompServer,
								config.LogKeyError, err,
							)
						}
					}
				}
			}()

			return srv.Start(cmd.Context())
		},
	}
	src.bind(cmd)
	cmd.Flags().StringVar(&port, config.FlagPort, config.DefaultPort, config.FlagDescPort)
	cmd.Flags().DurationVar(&refresh, config.FlagRefresh, config.DefaultRefreshInterval, config.FlagDescRefresh)
	return cmd
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

type feedFunc func(cmd *cobra.Command, src sourceFlags) ([]byte, feed.Stats, error)

// feedGenerator binds localized summaries and milestone settings to a generator.
func (c *cli) feedGenerator(e *engine.Engine, settings config.Settings) (feedFunc, error) {
	t, err := render.NewTranslator(c.language(settings))
	if err != nil {
		return nil, err
	}
	gen := &feed.Generator{Clock: e.Clock()}
	opts := feed.Options{
		Reminder:        config.DefaultReminder,
		MilestoneDays:   settings.MilestoneDays,
		FormatBirthday:  t.BirthdaySummary,
		FormatMilestone: t.MilestoneSummary,
	}

	return func(cmd *cobra.Command, src sourceFlags) ([]byte, feed.Stats, error) {
		subjects, err := c.load(cmd, src)
		if err != nil {
			return nil, feed.Stats{}, err
		}
		return gen.Generate(cmd.Context(), subjects, opts)
	}, nil
}

func (s *sourceFlags) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&s.file, config.FlagFile, "", config.FlagDescFile)
	f.StringVar(&s.url, config.FlagURL, "", config.FlagDescURL)
	f.StringVar(&s.user, config.FlagUser, "", config.FlagDescUser)
	cmd.MarkFlagsMutuallyExclusive(config.FlagFile, config.FlagURL)
}

// engine builds an Engine from the settings file, if any.
func (c *cli) engine() (*engine.Engine, config.Settings, error) {
	settings := config.DefaultSettings()
	if c.configPath != "" {
		var err error
		if settings, err = config.LoadSettings(c.configPath); err != nil {
			return nil, settings, err
		}
		slog.Debug(config.MsgSettingsLoaded,
			config.LogKeyComponent, config.CompConfig,
			config.LogKeyFile, c.configPath,
		)
	}

	e, err := engine.New(engine.WithSettings(settings), engine.WithClock(c.clock))
	if err != nil {
		return nil, settings, err
	}
	return e, e.Settings(), nil
}

// language prefers the --lang flag over the settings file.
func (c *cli) language(settings config.Settings) string {
	if c.lang != "" {
		return c.lang
	}
	return settings.Language
}

func (c *cli) renderer(w io.Writer, settings config.Settings) (*render.Renderer, error) {
	t, err := render.NewTranslator(c.language(settings))
	if err != nil {
		return nil, err
	}
	return render.New(w, t), nil
}

func (c *cli) load(cmd *cobra.Command, flags sourceFlags) ([]contacts.Subject, error) {
	pass, err := contacts.ResolvePassword(c.secrets, flags.user)
	if err != nil {
		return nil, err
	}
	subjects, _, err := c.loader.Load(cmd.Context(), contacts.Source{
		File:     flags.file,
		URL:      flags.url,
		User:     flags.user,
		Password: pass,
	})
	return subjects, err
}

func parseArg(value string) (calendar.Point, error) {
	p, err := calendar.ParsePoint(value)
	if err != nil {
		return calendar.Point{}, fmt.Errorf("%s: %w", config.ErrArgs, err)
	}
	return p, nil
}

// readPassword takes the first line of r, without its line ending.
func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("%s: %w", config.ErrPassRead, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
