// attendctl is the terminal companion to the campus attendance backend: it
// signs in, watches the scanner feed, renders the dashboards and exports
// CSV reports, holding its session in a token file the way the web client
// holds one in browser storage.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	attend "github.com/smartattend/go-attend"
	"github.com/smartattend/go-attend/client"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "attendctl",
		Short: "Campus attendance from the terminal",
		Long: `attendctl talks to the campus face-recognition attendance backend.

Sign in once and the session token is kept on disk; every command checks
it the way the web app's route guard does before opening a view.

Configuration comes from the environment:

  ATTEND_API_URL     backend base URL (default http://localhost:5000/api)
  ATTEND_TOKEN_FILE  session token path (default ~/.attend/token)`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		loginCmd(),
		logoutCmd(),
		whoamiCmd(),
		registerCmd(),
		statsCmd(),
		logsCmd(),
		hodCmd(),
		studentCmd(),
		studentsCmd(),
		leaveCmd(),
		scanCmd(),
		exportCmd(),
		healthCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("✗ ")+attend.UserMessage(err))
		os.Exit(1)
	}
}

// app wires the session stack the same way the web client does: one token
// store shared by the session manager and the API client, and a route guard
// deciding which views open.
type app struct {
	store   attend.TokenStore
	manager *attend.Manager
	api     *client.Client
	guard   *attend.Guard
}

func newApp() *app {
	store := attend.NewFileTokenStore(tokenPath())
	api := client.New(os.Getenv("ATTEND_API_URL"), store)
	manager := attend.NewManager(store).WithLoginService(api)
	return &app{
		store:   store,
		manager: manager,
		api:     api,
		guard:   attend.NewGuard(),
	}
}

func tokenPath() string {
	if p := os.Getenv("ATTEND_TOKEN_FILE"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".attend-token"
	}
	return filepath.Join(home, ".attend", "token")
}

// openRoute resolves the stored session and runs the route guard for the
// view backing a command. Commands only proceed on a render decision.
func (a *app) openRoute(ctx context.Context, route string) (attend.Session, error) {
	a.manager.Start()
	if err := a.manager.WaitReady(ctx); err != nil {
		return attend.Session{}, err
	}

	session := a.manager.Session()
	decision := a.guard.Evaluate(session, route)
	switch decision.Action {
	case attend.ActionRender:
		return session, nil
	case attend.ActionRedirect:
		if decision.Target == attend.RouteLogin {
			return attend.Session{}, errors.New("not signed in, run `attendctl login` first")
		}
		return attend.Session{}, fmt.Errorf("your account cannot open this view, its home is %s", decision.Target)
	default:
		return attend.Session{}, errors.New("session is still resolving")
	}
}

// cmdContext ties a command to Ctrl-C.
func cmdContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

func heading(s string) string { return headingStyle.Render(s) }

func success(format string, args ...any) {
	fmt.Println(okStyle.Render("✓ ") + fmt.Sprintf(format, args...))
}

func notice(format string, args ...any) {
	fmt.Println(warnStyle.Render("⚠ ") + fmt.Sprintf(format, args...))
}
