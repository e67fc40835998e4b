package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var workspacesCmd = &cobra.Command{
	Use:     "workspaces",
	Aliases: []string{"ws"},
	Short:   "List your workspaces",
	Long: `List the workspaces of the logged in account.

With --boards every workspace is followed by its boards, which is handy for
finding board ids to pass to "yusra export".`,
	RunE: runWorkspaces,
}

func init() {
	workspacesCmd.Flags().Bool("boards", false, "also list the boards of each workspace")
}

func runWorkspaces(cmd *cobra.Command, args []string) error {
	withBoards, _ := cmd.Flags().GetBool("boards")

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	if !e.session.LoggedIn() {
		return fmt.Errorf("not logged in, run \"yusra login\" first")
	}

	ctx := cmd.Context()
	workspaces, err := e.client.ListWorkspaces(ctx)
	if err != nil {
		return fmt.Errorf("list workspaces: %w", err)
	}
	if len(workspaces) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No workspaces yet")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME")
	for _, ws := range workspaces {
		fmt.Fprintf(w, "%s\t%s\n", ws.ID, ws.Name)
		if !withBoards {
			continue
		}
		boards, err := e.client.ListBoards(ctx, ws.ID)
		if err != nil {
			w.Flush()
			return fmt.Errorf("list boards of %s: %w", ws.ID, err)
		}
		for _, b := range boards {
			fmt.Fprintf(w, "  %s\t  %s\n", b.ID, b.Title)
		}
	}
	return w.Flush()
}
