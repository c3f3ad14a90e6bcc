package version

// Version is set at build time with
// -ldflags "-X github.com/Dylan-B-D/vps-manager-bot/internal/version.Version=v1.2.3".
var Version = "dev"
