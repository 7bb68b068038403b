package config

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/skoll/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// Output holds report output configuration
type Output struct {
	Format string
	Path   string
}

// Flags returns CLI flags for Output configuration
func (o *Output) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "format",
			Usage:       "Report format (text, json)",
			Category:    "Output",
			Value:       "text",
			Sources:     cli.EnvVars("SKOLL_FORMAT"),
			Destination: &o.Format,
		},
		&cli.StringFlag{
			Name:        "output",
			Usage:       "Report destination path (\"-\" for stdout)",
			Category:    "Output",
			Value:       "-",
			Sources:     cli.EnvVars("SKOLL_OUTPUT"),
			Destination: &o.Path,
		},
	}
}

// Validate validates the output configuration
func (o *Output) Validate() error {
	switch o.Format {
	case "text", "json", "":
		return nil
	default:
		return goerr.New("invalid report format", goerr.V("format", o.Format))
	}
}

// Write renders the report to the configured destination
func (o *Output) Write(report *model.RunReport) error {
	if report == nil {
		return goerr.New("report is nil")
	}

	w := io.Writer(os.Stdout)
	if o.Path != "" && o.Path != "-" {
		f, err := os.Create(o.Path)
		if err != nil {
			return goerr.Wrap(err, "failed to create report file",
				goerr.V("path", o.Path))
		}
		defer f.Close()
		w = f
	}

	if o.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return goerr.Wrap(err, "failed to encode report")
		}
		return nil
	}

	if err := report.WriteText(w); err != nil {
		return goerr.Wrap(err, "failed to render report")
	}
	return nil
}

// LogValue returns structured log value
func (o Output) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("format", o.Format),
		slog.String("path", o.Path),
	)
}
