package cli

import (
	"bufio"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/docportal/internal/client/config"
	"github.com/dmitrijs2005/docportal/internal/client/portal"
)

// lookupEnv is a test seam for os.LookupEnv.
var lookupEnv = os.LookupEnv

// App carries state shared by all subcommands of one invocation.
type App struct {
	in  *bufio.Reader
	out io.Writer

	configPath string
	serverURL  string
	timeout    time.Duration

	config  *config.Config
	client  *portal.Client
	session *sessionStore
}

// NewRootCommand builds the portal command tree reading prompts from in
// and writing results to out.
func NewRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	a := &App{in: bufio.NewReader(in), out: out}

	root := &cobra.Command{
		Use:           "portal",
		Short:         "Upload documents to Odoo through the document portal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(out)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "path to JSON config file")
	pf.StringVar(&a.serverURL, "server", "", "portal base URL (env PORTAL_URL)")
	pf.DurationVar(&a.timeout, "timeout", 0, "per-request timeout (env PORTAL_TIMEOUT)")

	root.AddCommand(
		a.loginCommand(),
		a.logoutCommand(),
		a.uploadCommand(),
		a.contactsCommand(),
		a.foldersCommand(),
		a.uploadsCommand(),
	)
	return root
}

// setup loads configuration, then lets explicitly given flags win.
func (a *App) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath, lookupEnv)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("server") {
		cfg.ServerURL = a.serverURL
	}
	if flags.Changed("timeout") {
		cfg.Timeout = a.timeout
	}
	a.config = cfg

	a.session, err = newSessionStore(cfg.SessionDir)
	if err != nil {
		return err
	}

	a.client = portal.New(cfg.ServerURL, cfg.Timeout)
	token, err := a.session.Load()
	if err != nil {
		return err
	}
	a.client.SetToken(token)
	return nil
}
