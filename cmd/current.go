package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	messagerender "github.com/Dylan-B-D/vps-manager-bot/internal/adapters/render/message"
	"github.com/Dylan-B-D/vps-manager-bot/internal/application"
	"github.com/spf13/cobra"
)

type sessionView struct {
	Key       string `json:"key"`
	Target    string `json:"target"`
	CreatedAt string `json:"created_at"`
	Expired   bool   `json:"expired"`
}

func newCurrentCmd(app *app, conv *conversationFlags) *cobra.Command {
	var all bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "current",
		Short: "Show the VPS bound to the conversation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if all {
				return writeAllSessions(cmd, app, asJSON)
			}

			key, err := conv.key()
			if err != nil {
				return err
			}

			name, ok, err := app.sessions.GetActiveTarget(cmd.Context(), key)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{"key": key.String(), "target": name, "logged_in": ok})
			}

			return writeMessage(cmd, app, application.CurrentTargetMessage(name, ok))
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "List the bindings of every conversation")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}

func writeAllSessions(cmd *cobra.Command, app *app, asJSON bool) error {
	records, err := app.sessions.ListSessions(cmd.Context())
	if err != nil {
		return err
	}

	now := app.now()
	if asJSON {
		views := make([]sessionView, 0, len(records))
		for _, record := range records {
			views = append(views, sessionView{
				Key:       record.Key.String(),
				Target:    record.TargetName,
				CreatedAt: record.CreatedAt.UTC().Format(time.RFC3339),
				Expired:   record.Expired(now, app.sessions.TTL()),
			})
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	}

	rendered, err := app.sessionsRender(records, messagerender.SessionsOptions{Now: now, TTL: app.sessions.TTL()})
	if err != nil {
		return fmt.Errorf("render sessions: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
