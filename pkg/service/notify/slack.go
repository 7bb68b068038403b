package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/skoll/pkg/domain/interfaces"
	"github.com/secmon-lab/skoll/pkg/domain/model"
	"github.com/slack-go/slack"
)

// Slack posts run report summaries to a Slack channel
type Slack struct {
	client  *slack.Client
	channel string
}

var _ interfaces.ReportNotifier = (*Slack)(nil)

// NewSlack creates a new Slack notifier
func NewSlack(token, channel string) *Slack {
	return &Slack{
		client:  slack.New(token),
		channel: channel,
	}
}

// PostRunReport posts the report summary to the configured channel
func (s *Slack) PostRunReport(ctx context.Context, report *model.RunReport) error {
	if report == nil {
		return goerr.New("report is nil")
	}

	blocks := BuildReportBlocks(report)
	_, _, err := s.client.PostMessageContext(ctx, s.channel, slack.MsgOptionBlocks(blocks...))
	if err != nil {
		return goerr.Wrap(err, "failed to post run report",
			goerr.V("channel", s.channel),
			goerr.V("runID", report.RunID),
		)
	}

	return nil
}

// BuildReportBlocks builds the Slack message blocks for a run report
func BuildReportBlocks(report *model.RunReport) []slack.Block {
	emoji := "✅"
	if report.Errors > 0 {
		emoji = "⚠️"
	}

	header := slack.NewHeaderBlock(
		slack.NewTextBlockObject(slack.PlainTextType,
			fmt.Sprintf("%s OAuth revocation run (%s)", emoji, report.Mode), true, false),
	)

	fields := []*slack.TextBlockObject{
		mdField("Target client", report.TargetClientID.String()),
		mdField("Users processed", fmt.Sprintf("%d / %d", report.UsersProcessed, report.TotalUsers)),
		mdField("Users with match", fmt.Sprintf("%d", report.UsersWithMatch)),
		mdField("Grants revoked", fmt.Sprintf("%d", report.GrantsRevoked)),
		mdField("Errors", fmt.Sprintf("%d", report.Errors)),
		mdField("Skipped (protected)", fmt.Sprintf("%d", report.UsersSkipped)),
	}
	summary := slack.NewSectionBlock(nil, fields, nil)

	footer := slack.NewContextBlock("",
		slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("run `%s` · %s · took %s",
				report.RunID,
				report.StartedAt.Format(time.RFC3339),
				report.Duration().Round(time.Millisecond),
			), false, false),
	)

	return []slack.Block{header, summary, footer}
}

func mdField(label, value string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.MarkdownType,
		fmt.Sprintf("*%s:*\n%s", label, value), false, false)
}
