package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/scanops/triage/internal/core/config"
	"github.com/scanops/triage/internal/infra/storage/postgres"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show recent escalations from the archive",
	Run:   runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := postgres.NewDB(ctx, cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = db.Close()
	}()

	repo := postgres.NewEscalationRepo(db)
	reports, err := repo.ListRecent(ctx, 20)
	if err != nil {
		slog.Error("Failed to query escalations", "error", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.Debug)
	_, _ = fmt.Fprintln(w, "TIME\tTOOL\tTARGET\tKIND\tURGENCY\tATTEMPTS\tERROR")

	for _, r := range reports {
		msg := r.ErrorMessage
		if len(msg) > 60 {
			msg = msg[:57] + "..."
		}
		msg = strings.ReplaceAll(msg, "\n", " ")
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			r.Timestamp.Format("2006-01-02 15:04:05"),
			r.Tool, r.Target, r.ErrorKind, r.Urgency, r.AttemptCount, msg)
	}
	_ = w.Flush()
}
