package cmd

import (
	"context"

	"github.com/Dylan-B-D/vps-manager-bot/internal/application"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *app, conv *conversationFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "login <target>",
		Short: "Log in to a configured VPS and bind it to the conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := conv.key()
			if err != nil {
				return err
			}

			targetName := args[0]
			connecting := application.LoginConnectingMessage(targetName)

			var result application.LoginResult
			err = runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), connecting.Description, func(ctx context.Context) error {
				var loginErr error
				result, loginErr = app.login.Login(ctx, key, targetName)
				return loginErr
			})
			if err != nil {
				if writeErr := writeMessage(cmd, app, application.LoginFailedMessage(targetName, err)); writeErr != nil {
					return writeErr
				}
				return err
			}

			return writeMessage(cmd, app, application.LoginSucceededMessage(result))
		},
	}
}
