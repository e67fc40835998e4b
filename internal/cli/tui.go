package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tgienger/yusra/internal/ui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	app := ui.NewApp(ctx, e.client, e.session, e.db, e.log)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	e.log.Info("starting", "server", e.cfg.Server.BaseURL, "logged_in", e.session.LoggedIn())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running application: %w", err)
	}
	return nil
}
