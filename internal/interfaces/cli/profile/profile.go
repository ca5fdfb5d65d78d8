// Package profile provides the profile commands.
package profile

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	profileUsecases "chamado/internal/application/profile/usecases"
	"chamado/internal/interfaces/cli/app"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show and edit your profile",
	}

	cmd.AddCommand(newShowCommand(), newSetCommand())
	return cmd
}

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.Bootstrap()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Resume(cmd.Context()); err != nil {
				return err
			}

			load := profileUsecases.NewLoadProfileUseCase(a.Users, a.Session, a.Logger)
			result, err := load.Execute(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Nome:  %s\n", result.Name)
			if result.Photo != "" {
				fmt.Fprintf(out, "Foto:  %d bytes (base64)\n", len(result.Photo))
			} else {
				fmt.Fprintln(out, "Foto:  (nenhuma)")
			}
			return nil
		},
	}
}

func newSetCommand() *cobra.Command {
	var name, photoFile string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Overwrite the profile with a new name and photo",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.Bootstrap()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Resume(cmd.Context()); err != nil {
				return err
			}

			photo := ""
			if photoFile != "" {
				data, err := os.ReadFile(photoFile)
				if err != nil {
					return fmt.Errorf("failed to read photo file: %w", err)
				}
				photo = base64.StdEncoding.EncodeToString(data)
			}

			save := profileUsecases.NewSaveProfileUseCase(a.Users, a.Session, a.Logger)
			err = save.Execute(cmd.Context(), profileUsecases.SaveProfileCommand{
				Name:  name,
				Photo: photo,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Perfil salvo com sucesso.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "display name")
	cmd.Flags().StringVar(&photoFile, "photo-file", "", "image file stored as the profile photo")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
