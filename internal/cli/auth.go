package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tgienger/yusra/internal/api"
	"github.com/tgienger/yusra/internal/ui"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the credential",
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored credential",
	RunE:  runLogout,
}

func init() {
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password (read from stdin when omitted)")

	registerCmd.Flags().String("name", "", "display name")
	registerCmd.Flags().String("email", "", "account email")
	registerCmd.Flags().String("password", "", "account password (read from stdin when omitted)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	password, err := passwordFlag(cmd)
	if err != nil {
		return err
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	tokens, err := e.client.Login(cmd.Context(), email, password)
	if err != nil {
		return authError(err, "login failed")
	}
	if err := e.session.SetCredential(*tokens); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", email)
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")
	password, err := passwordFlag(cmd)
	if err != nil {
		return err
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	tokens, err := e.client.Register(cmd.Context(), name, email, password)
	if err != nil {
		return authError(err, "registration failed")
	}
	if err := e.session.SetCredential(*tokens); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s\n", name)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.session.ClearCredential(); err != nil {
		return err
	}
	if err := e.db.SetSetting(ui.LastWorkspaceKey, ""); err != nil {
		e.log.Warn("clear last workspace failed", "err", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
	return nil
}

// passwordFlag returns --password, or the first line of stdin
func passwordFlag(cmd *cobra.Command) (string, error) {
	password, _ := cmd.Flags().GetString("password")
	if password != "" {
		return password, nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func authError(err error, fallback string) error {
	var ve *api.ValidationError
	if errors.As(err, &ve) {
		return fmt.Errorf("--%s is required", ve.Field)
	}
	return errors.New(api.MessageOf(err, fmt.Sprintf("%s: %v", fallback, err)))
}
