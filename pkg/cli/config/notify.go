package config

import (
	"log/slog"

	"github.com/secmon-lab/skoll/pkg/service/notify"
	"github.com/urfave/cli/v3"
)

// Notify holds the Slack notification configuration
type Notify struct {
	OAuthToken string
	Channel    string
}

// Flags returns CLI flags for Notify configuration
func (n *Notify) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-oauth-token",
			Usage:       "Slack OAuth token for report notifications",
			Category:    "Notification",
			Sources:     cli.EnvVars("SKOLL_SLACK_OAUTH_TOKEN"),
			Destination: &n.OAuthToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel that receives the run report",
			Category:    "Notification",
			Sources:     cli.EnvVars("SKOLL_SLACK_CHANNEL"),
			Destination: &n.Channel,
		},
	}
}

// ConfigureOptional creates a Slack notifier if configured, returns nil if not
func (n *Notify) ConfigureOptional(logger *slog.Logger) *notify.Slack {
	if !n.IsConfigured() {
		logger.Debug("Slack notification not configured")
		return nil
	}
	return notify.NewSlack(n.OAuthToken, n.Channel)
}

// IsConfigured checks if Slack notification is properly configured
func (n *Notify) IsConfigured() bool {
	return n.OAuthToken != "" && n.Channel != ""
}

// LogValue returns structured log value
func (n Notify) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_oauth_token", n.OAuthToken != ""),
		slog.String("channel", n.Channel),
	)
}
