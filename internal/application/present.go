package application

import (
	"errors"
	"fmt"

	"github.com/Dylan-B-D/vps-manager-bot/internal/domain"
)

const noActiveSessionText = "No VPS is currently logged in for this channel."

// DescribeError returns the text shown to a user for a failed operation.
func DescribeError(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, domain.ErrConnectionTimeout) {
		return "Connection failed"
	}

	return err.Error()
}

func LoginConnectingMessage(targetName string) domain.Message {
	return domain.Message{
		Title:       "VPS Login - " + targetName,
		Description: "Connecting to VPS... Please wait...",
		Color:       domain.ColorBlue,
	}
}

func LoginSucceededMessage(result LoginResult) domain.Message {
	description := ""
	if result.HasBanner {
		description = "```" + result.Banner + "```\n"
	}
	description += fmt.Sprintf("**Log-in as %s Successful!**", result.Target.Username)

	return domain.Message{
		Title:       "VPS Login - " + result.Target.Name,
		Description: description,
		Color:       domain.ColorGreen,
	}
}

func LoginFailedMessage(targetName string, err error) domain.Message {
	return domain.Message{
		Title:       "VPS Login - " + targetName,
		Description: DescribeError(err),
		Color:       domain.ColorRed,
	}
}

func CurrentTargetMessage(targetName string, ok bool) domain.Message {
	if !ok {
		return domain.Message{Description: noActiveSessionText, Color: domain.ColorBlue}
	}

	return domain.Message{
		Description: fmt.Sprintf("Currently logged in VPS for this channel: `%s`", targetName),
		Color:       domain.ColorBlue,
	}
}

func ResourcesConnectingMessage(targetName string) domain.Message {
	return domain.Message{
		Title:       "VPS Resources - " + targetName,
		Description: "Establishing connection... Please wait...",
		Color:       domain.ColorBlue,
	}
}

func ResourcesMessage(result ResourcesResult) domain.Message {
	report := result.Report
	return domain.Message{
		Title: "VPS Resources - " + result.Target.Name,
		Color: domain.ColorGreen,
		Fields: []domain.MessageField{
			{Name: "Memory Usage", Value: report.Memory.Describe(), Inline: true},
			{Name: "Disk Usage", Value: report.Disk.Describe(), Inline: true},
			{Name: "CPU", Value: report.CPU.Describe(), Inline: true},
			{Name: "Top 5 CPU Processes", Value: report.TopProcessesDescription()},
		},
	}
}

func ResourcesFailedMessage(targetName string, err error) domain.Message {
	if errors.Is(err, domain.ErrNoActiveSession) {
		return domain.Message{Description: noActiveSessionText, Color: domain.ColorRed}
	}

	return domain.Message{
		Title:       "VPS Resources - " + targetName,
		Description: DescribeError(err),
		Color:       domain.ColorRed,
	}
}
