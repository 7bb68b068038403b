package cli_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/skoll/pkg/cli"
	"github.com/secmon-lab/skoll/pkg/domain/model"
)

// Without Google credentials the directory falls back to an empty
// in-memory implementation, so the commands complete with empty reports.
func TestRun_PlanAgainstEmptyDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")

	err := cli.Run(context.Background(), []string{
		"skoll", "plan",
		"--client-id", "X",
		"--format", "json",
		"--output", path,
	})
	gt.NoError(t, err)

	data, err := os.ReadFile(path)
	gt.NoError(t, err)

	var report model.RunReport
	gt.NoError(t, json.Unmarshal(data, &report))
	gt.Equal(t, report.TotalUsers, 0)
	gt.Equal(t, report.UsersProcessed, 0)
	gt.Equal(t, report.GrantsRevoked, 0)
	gt.NotEqual(t, report.RunID, "")
}

func TestRun_MissingClientID(t *testing.T) {
	err := cli.Run(context.Background(), []string{"skoll", "run"})
	gt.Error(t, err)
}

func TestRun_InvalidFormat(t *testing.T) {
	err := cli.Run(context.Background(), []string{
		"skoll", "plan",
		"--client-id", "X",
		"--format", "xml",
	})
	gt.Error(t, err)
}

func TestRun_RejectsZeroMaxUsers(t *testing.T) {
	err := cli.Run(context.Background(), []string{
		"skoll", "run",
		"--client-id", "X",
		"--max-users", "0",
		"--dry-run",
	})
	gt.Error(t, err)
}
