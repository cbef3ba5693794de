package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Inicia sesión contra el servidor",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := bufio.NewReader(cmd.InOrStdin())
			if username == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Usuario: ")
				line, err := in.ReadString('\n')
				if err != nil {
					return err
				}
				username = strings.TrimSpace(line)
			}
			if password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Contraseña: ")
				line, err := in.ReadString('\n')
				if err != nil {
					return err
				}
				password = strings.TrimSpace(line)
			}

			out, err := app.API.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			app.saveSession()

			fmt.Fprintf(cmd.OutOrStdout(), "Sesión iniciada como %s (%s)\n", out.User.DisplayName(), out.User.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "nombre de usuario")
	cmd.Flags().StringVarP(&password, "password", "p", "", "contraseña (se pedirá si no se indica)")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cierra la sesión actual",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.API.Logout()
			app.dropSession()
			fmt.Fprintln(cmd.OutOrStdout(), "Sesión cerrada")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Muestra el usuario de la sesión actual",
		RunE: func(cmd *cobra.Command, args []string) error {
			u := app.Session.User()
			if u == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Sin sesión activa")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s), rol %s\n", u.DisplayName(), u.Username, u.Role)
			if app.Session.Expired(nil) {
				fmt.Fprintln(cmd.OutOrStdout(), "Aviso: el token expiró; inicia sesión de nuevo")
			}
			return nil
		},
	}
}
