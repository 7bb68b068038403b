package model_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/skoll/pkg/domain/model"
	"github.com/secmon-lab/skoll/pkg/domain/types"
)

func TestRunReport_Append(t *testing.T) {
	cfg := model.RunConfig{
		DryRun:         false,
		MaxUsers:       10,
		TargetClientID: "X",
	}
	report := model.NewRunReport(cfg)
	gt.Equal(t, report.Mode, types.RunModeLive)
	gt.NotEqual(t, report.RunID, types.RunID(""))

	report.Append(model.UserOutcome{Email: "a@example.com", GrantsFound: 2, MatchingGrantsFound: 1, Revoked: 1})
	report.Append(model.UserOutcome{Email: "b@example.com", GrantsFound: 1})
	report.Append(model.UserOutcome{Email: "c@example.com", Skipped: true})

	gt.Equal(t, report.UsersProcessed, 3)
	gt.Equal(t, report.UsersWithMatch, 1)
	gt.Equal(t, report.GrantsRevoked, 1)
	gt.Equal(t, report.UsersSkipped, 1)

	matched := report.MatchedUsers()
	gt.Equal(t, len(matched), 1)
	gt.Equal(t, matched[0].Email, types.Email("a@example.com"))
}

func TestRunReport_Finalize(t *testing.T) {
	report := model.NewRunReport(model.RunConfig{MaxUsers: 1, TargetClientID: "X"})
	gt.True(t, report.EndedAt.IsZero())

	report.Finalize()
	gt.False(t, report.EndedAt.IsZero())
	gt.True(t, report.Duration() >= 0)
}

func TestRunReport_WriteText(t *testing.T) {
	report := model.NewRunReport(model.RunConfig{DryRun: true, MaxUsers: 10, TargetClientID: "X"})
	report.TotalUsers = 2
	report.Append(model.UserOutcome{Email: "a@example.com", GrantsFound: 2, MatchingGrantsFound: 1})
	report.Append(model.UserOutcome{Email: "b@example.com", Errored: true})
	report.Errors = 1
	report.Finalize()

	var sb strings.Builder
	gt.NoError(t, report.WriteText(&sb))

	out := sb.String()
	gt.S(t, out).Contains("dry-run")
	gt.S(t, out).Contains("target client: X")
	gt.S(t, out).Contains("a@example.com")
	gt.S(t, out).Contains("ERRORED")
	gt.S(t, out).Contains("errors: 1")
}
