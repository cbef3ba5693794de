package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mascotacare/vetcli/internal/model"
)

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Administración de usuarios (solo administradores)",
	}
	cmd.AddCommand(
		newUserListCmd(app),
		newUserShowCmd(app),
		newUserCreateCmd(app),
		newUserUpdateCmd(app),
		newUserDeleteCmd(app),
		newUserAssistantsCmd(app),
	)
	return cmd
}

func newUserListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lista los usuarios del sistema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAdmin(); err != nil {
				return err
			}
			users, err := app.API.ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			for _, u := range users {
				fmt.Fprintf(cmd.OutOrStdout(), "[%d] %s — %s\n", u.ID, u.DisplayName(), u.Role)
			}
			return nil
		},
	}
}

func newUserShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Muestra un usuario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAdmin(); err != nil {
				return err
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("id de usuario inválido: %q", args[0])
			}
			u, err := app.API.GetUser(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[%d] %s (%s)\nRol: %s\n", u.ID, u.DisplayName(), u.Username, u.Role)
			if u.Email != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Email: %s\n", u.Email)
			}
			if u.Phone != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Teléfono: %s\n", u.Phone)
			}
			return nil
		},
	}
}

func newUserCreateCmd(app *App) *cobra.Command {
	var req model.CreateUserRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Crea un usuario",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAdmin(); err != nil {
				return err
			}
			u, err := app.API.CreateUser(cmd.Context(), &req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Usuario creado: [%d] %s\n", u.ID, u.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Username, "username", "", "nombre de usuario")
	cmd.Flags().StringVar(&req.Email, "email", "", "correo electrónico")
	cmd.Flags().StringVar(&req.Password, "password", "", "contraseña")
	cmd.Flags().StringVar(&req.Role, "role", model.RoleAssistant, "rol (admin|vet|assistant)")
	cmd.Flags().StringVar(&req.FullName, "full-name", "", "nombre completo")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "teléfono")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newUserUpdateCmd(app *App) *cobra.Command {
	var username, email, password, role, fullName, phone string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Actualiza un usuario; solo cambia los campos indicados",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAdmin(); err != nil {
				return err
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("id de usuario inválido: %q", args[0])
			}

			req := model.UpdateUserRequest{}
			set := func(flag string, dst **string, v string) {
				if cmd.Flags().Changed(flag) {
					*dst = &v
				}
			}
			set("username", &req.Username, username)
			set("email", &req.Email, email)
			set("password", &req.Password, password)
			set("role", &req.Role, role)
			set("full-name", &req.FullName, fullName)
			set("phone", &req.Phone, phone)

			u, err := app.API.UpdateUser(cmd.Context(), id, &req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Usuario actualizado: [%d] %s\n", u.ID, u.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "nombre de usuario")
	cmd.Flags().StringVar(&email, "email", "", "correo electrónico")
	cmd.Flags().StringVar(&password, "password", "", "contraseña nueva")
	cmd.Flags().StringVar(&role, "role", "", "rol (admin|vet|assistant)")
	cmd.Flags().StringVar(&fullName, "full-name", "", "nombre completo")
	cmd.Flags().StringVar(&phone, "phone", "", "teléfono")
	return cmd
}

func newUserDeleteCmd(app *App) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Elimina un usuario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAdmin(); err != nil {
				return err
			}
			if !confirmed {
				return fmt.Errorf("la eliminación es definitiva; repite con --yes para confirmar")
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("id de usuario inválido: %q", args[0])
			}
			if err := app.API.DeleteUser(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Usuario %d eliminado\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirma la eliminación")
	return cmd
}

func newUserAssistantsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "assistants",
		Short: "Lista los asistentes disponibles para asignación",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}
			assistants, err := app.API.ListAssistants(cmd.Context())
			if err != nil {
				return err
			}
			for _, u := range assistants {
				fmt.Fprintf(cmd.OutOrStdout(), "[%d] %s\n", u.ID, u.DisplayName())
			}
			return nil
		},
	}
}
