package cmd

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Dylan-B-D/vps-manager-bot/internal/application"
	"github.com/spf13/cobra"
)

type resourcesView struct {
	Target       string        `json:"target"`
	SampledAt    string        `json:"sampled_at"`
	CPUModel     string        `json:"cpu_model"`
	CPUCores     int           `json:"cpu_cores"`
	CPUPercent   float64       `json:"cpu_percent"`
	MemoryTotal  string        `json:"memory_total"`
	MemoryUsed   string        `json:"memory_used"`
	DiskSize     string        `json:"disk_size"`
	DiskUsed     string        `json:"disk_used"`
	DiskUsage    string        `json:"disk_use_percent"`
	TopProcesses []processView `json:"top_processes"`
}

type processView struct {
	PID        int     `json:"pid"`
	CPUPercent float64 `json:"cpu_percent"`
	MemPercent float64 `json:"mem_percent"`
	Command    string  `json:"command"`
}

func newResourcesCmd(app *app, conv *conversationFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "resources",
		Short: "Sample memory, disk, CPU and top processes of the bound VPS",
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := conv.key()
			if err != nil {
				return err
			}

			targetName, err := app.resources.ActiveTarget(cmd.Context(), key)
			if err != nil {
				if writeErr := writeMessage(cmd, app, application.ResourcesFailedMessage("", err)); writeErr != nil {
					return writeErr
				}
				return err
			}

			var result application.ResourcesResult
			sample := func(ctx context.Context) error {
				var sampleErr error
				result, sampleErr = app.resources.Resources(ctx, key)
				return sampleErr
			}

			if asJSON {
				err = sample(cmd.Context())
			} else {
				err = runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), application.ResourcesConnectingMessage(targetName).Description, sample)
			}
			if err != nil {
				if !asJSON {
					if writeErr := writeMessage(cmd, app, application.ResourcesFailedMessage(targetName, err)); writeErr != nil {
						return writeErr
					}
				}
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(toResourcesView(result))
			}

			return writeMessage(cmd, app, application.ResourcesMessage(result))
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}

func toResourcesView(result application.ResourcesResult) resourcesView {
	report := result.Report
	processes := make([]processView, 0, len(report.TopProcesses))
	for _, p := range report.TopProcesses {
		processes = append(processes, processView{PID: p.PID, CPUPercent: p.CPUPercent, MemPercent: p.MemPercent, Command: p.Command})
	}

	return resourcesView{
		Target:       result.Target.Name,
		SampledAt:    report.SampledAt.UTC().Format(time.RFC3339),
		CPUModel:     report.CPU.Model,
		CPUCores:     report.CPU.Cores,
		CPUPercent:   report.CPU.UtilizationPercent,
		MemoryTotal:  report.Memory.Total,
		MemoryUsed:   report.Memory.Used,
		DiskSize:     report.Disk.Size,
		DiskUsed:     report.Disk.Used,
		DiskUsage:    report.Disk.UsePercent,
		TopProcesses: processes,
	}
}
