// Package cli implements statusctl, the terminal client of the status page.
package cli

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MrSnakeDoc/statuspage/internal/client"
	"github.com/MrSnakeDoc/statuspage/internal/ui"
)

// settings is the resolved statusctl configuration (file, env, flags).
type settings struct {
	Server    string        `mapstructure:"server"`
	APIPrefix string        `mapstructure:"api_prefix"`
	Session   string        `mapstructure:"session"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type app struct {
	v        *viper.Viper
	cfgFile  string
	settings settings

	out      io.Writer
	errOut   io.Writer
	prompter Prompter

	client *client.Client
}

// Option customizes the command tree, used by tests.
type Option func(*app)

// WithOutput redirects normal and diagnostic output.
func WithOutput(out, errOut io.Writer) Option {
	return func(a *app) {
		a.out = out
		a.errOut = errOut
	}
}

// WithPrompter replaces the interactive huh forms.
func WithPrompter(p Prompter) Option {
	return func(a *app) { a.prompter = p }
}

// reportedError has already been shown to the user.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// Execute runs statusctl with os.Args.
func Execute() error {
	root := NewRootCmd()
	err := root.Execute()
	if err == nil {
		return nil
	}

	var reported reportedError
	if !errors.As(err, &reported) {
		fmt.Fprint(os.Stderr, ui.FormatError("statusctl failed", err.Error(), hintFor(err)))
	}
	return err
}

func hintFor(err error) string {
	switch {
	case errors.Is(err, client.ErrSessionExpired), errors.Is(err, client.ErrNotLoggedIn):
		return "run 'statusctl login' and try again"
	default:
		return ""
	}
}

// NewRootCmd builds the full command tree.
func NewRootCmd(opts ...Option) *cobra.Command {
	a := &app{
		v:        viper.New(),
		out:      os.Stdout,
		errOut:   os.Stderr,
		prompter: huhPrompter{},
	}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:   "statusctl",
		Short: "Public status view and admin console for the status page",
		Long: `statusctl shows the public service status page and lets the
administrator log in to add, edit and delete services.

Settings come from flags, STATUSCTL_* environment variables or
<config dir>/statusctl/config.yaml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "config file (default: <config dir>/statusctl/config.yaml)")
	pf.String("server", "http://localhost:3001", "status page server URL")
	pf.String("api-prefix", "/api", "API mount point on the server")
	pf.String("session", "", "session file (default: <config dir>/statusctl/session.json)")
	pf.Duration("timeout", 10*time.Second, "HTTP request timeout")

	for key, flag := range map[string]string{
		"server":     "server",
		"api_prefix": "api-prefix",
		"session":    "session",
		"timeout":    "timeout",
	} {
		_ = a.v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(
		newStatusCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newServicesCmd(a),
		newVersionCmd(a),
	)
	return root
}

func (a *app) initConfig() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			a.v.AddConfigPath(filepath.Join(dir, "statusctl"))
		}
	}

	a.v.SetEnvPrefix("STATUSCTL")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	if err := a.v.Unmarshal(&a.settings); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}

	session := a.settings.Session
	if session == "" {
		p, err := client.DefaultSessionPath()
		if err != nil {
			return err
		}
		session = p
	}

	c, err := client.New(apiURL(a.settings.Server, a.settings.APIPrefix),
		client.NewFileTokenStore(session),
		client.WithHTTPClient(&http.Client{Timeout: a.settings.Timeout}),
	)
	if err != nil {
		return err
	}
	a.client = c
	return nil
}

func apiURL(server, prefix string) string {
	prefix = strings.Trim(prefix, "/")
	server = strings.TrimRight(server, "/")
	if prefix == "" {
		return server
	}
	return server + "/" + prefix
}
