package cmd

import (
	"errors"
	"fmt"

	"github.com/Dylan-B-D/vps-manager-bot/internal/domain"
	"github.com/spf13/cobra"
)

var errConversationRequired = errors.New("--guild and --channel are required")

type conversationFlags struct {
	guildID   uint64
	channelID uint64
}

func (f *conversationFlags) key() (domain.ConversationKey, error) {
	if f.guildID == 0 || f.channelID == 0 {
		return domain.ConversationKey{}, errConversationRequired
	}

	return domain.NewConversationKey(f.guildID, f.channelID), nil
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	conv := &conversationFlags{}

	rootCmd := &cobra.Command{
		Use:           "vpsbot",
		Short:         "vpsbot: per-channel VPS logins and resource snapshots",
		Long:          "vpsbot binds a conversation (guild + channel) to a configured VPS, keeps that binding for a limited time, and samples memory, disk, CPU and top processes of the bound host over SSH.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().Uint64Var(&conv.guildID, "guild", 0, "Guild (server) id of the conversation")
	rootCmd.PersistentFlags().Uint64Var(&conv.channelID, "channel", 0, "Channel id of the conversation")

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(app, conv),
		newCurrentCmd(app, conv),
		newResourcesCmd(app, conv),
		newSweepCmd(app),
		newServeCmd(app),
		newTargetsCmd(app),
		newSecretCmd(app),
	)

	return rootCmd
}

func writeMessage(cmd *cobra.Command, app *app, msg domain.Message) error {
	rendered, err := app.messageRender(msg)
	if err != nil {
		return fmt.Errorf("render message: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
