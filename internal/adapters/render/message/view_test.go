package message

import (
	"strings"
	"testing"
	"time"

	"github.com/Dylan-B-D/vps-manager-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMessageWithFields(t *testing.T) {
	output, err := Render(domain.Message{
		Title: "VPS Resources - web-1",
		Color: domain.ColorGreen,
		Fields: []domain.MessageField{
			{Name: "CPU", Value: "Type: EPYC\nCores: 4\nUsage: 87.50%", Inline: true},
			{Name: "Top 5 CPU Processes", Value: "1. PID: 10 | CPU: 25.00% | MEM: 6.00% | CMD: app\n"},
		},
	})

	require.NoError(t, err)
	assert.Contains(t, output, "VPS Resources - web-1")
	assert.Contains(t, output, "CPU")
	assert.Contains(t, output, "Usage: 87.50%")
	assert.Contains(t, output, "1. PID: 10 | CPU: 25.00%")
}

func TestRenderMessageStripsMarkup(t *testing.T) {
	output, err := Render(domain.Message{
		Title:       "VPS Login - web-1",
		Description: "```/\\_/\\\n( o.o )```\n**Log-in as root Successful!**",
		Color:       domain.ColorGreen,
	})

	require.NoError(t, err)
	assert.Contains(t, output, "( o.o )")
	assert.Contains(t, output, "Log-in as root Successful!")
	assert.NotContains(t, output, "```")
	assert.NotContains(t, output, "**")
}

func TestRenderMessageWithoutTitle(t *testing.T) {
	output, err := Render(domain.Message{Description: "No VPS is currently logged in for this channel.", Color: domain.ColorRed})

	require.NoError(t, err)
	assert.Contains(t, output, "No VPS is currently logged in for this channel.")
}

func TestRenderSessions(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	output, err := RenderSessions([]domain.SessionRecord{
		{Key: domain.NewConversationKey(1, 2), TargetName: "web-1", CreatedAt: now.Add(-10 * time.Minute)},
		{Key: domain.NewConversationKey(3, 4), TargetName: "db-1", CreatedAt: now.Add(-45 * time.Minute)},
	}, SessionsOptions{Now: now, TTL: domain.SessionTTL})

	require.NoError(t, err)
	assert.Contains(t, output, "sessions: 2")
	assert.Contains(t, output, "1_2")
	assert.Contains(t, output, "20 minutes left")
	assert.Contains(t, output, "[expired]")
	assert.Contains(t, output, "expires at next sweep")
}

func TestRenderSessionsEmpty(t *testing.T) {
	output, err := RenderSessions(nil, SessionsOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "No VPS is logged in for any channel.")
}

func TestRenderTargetsAlignsColumnsAndHidesPasswords(t *testing.T) {
	output, err := RenderTargets([]domain.Target{
		{Name: "web-1", Host: "10.0.0.5", Username: "root", Password: "hunter2"},
		{Name: "database-1", Host: "10.0.0.6", Port: 2222, Username: "admin", PasswordRef: "vpsbot/targets/database-1/password"},
		{Name: "bare", Host: "10.0.0.7", Username: "ops"},
	})

	require.NoError(t, err)
	assert.Contains(t, output, "targets: 3")
	assert.Contains(t, output, "root@10.0.0.5:22")
	assert.Contains(t, output, "admin@10.0.0.6:2222")
	assert.Contains(t, output, "password: inline")
	assert.Contains(t, output, "password: vpsbot/targets/database-1/password")
	assert.Contains(t, output, "password: none")
	assert.NotContains(t, output, "hunter2")

	var columns []int
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, "@10.0.0.") {
			columns = append(columns, strings.Index(line, "password:"))
		}
	}
	require.Len(t, columns, 3)
	assert.Equal(t, columns[0], columns[1])
	assert.Equal(t, columns[1], columns[2])
}

func TestRenderTargetsEmpty(t *testing.T) {
	output, err := RenderTargets(nil)

	require.NoError(t, err)
	assert.Contains(t, output, "No targets configured.")
}

func TestFormatRemaining(t *testing.T) {
	assert.Equal(t, "1 minute left", formatRemaining(30*time.Second))
	assert.Equal(t, "30 minutes left", formatRemaining(30*time.Minute))
	assert.Equal(t, "expires at next sweep", formatRemaining(0))
}
