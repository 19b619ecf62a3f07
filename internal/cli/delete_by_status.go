package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/faculty/internal/config"
	"github.com/mrlokans/faculty/internal/entities"
	"github.com/mrlokans/faculty/internal/entrypoint"
	"github.com/mrlokans/faculty/internal/logger"
)

// StatusDeleter removes every student with a given status.
type StatusDeleter interface {
	CountStudentsByStatus(ctx context.Context, status entities.StudentStatus) (int64, error)
	DeleteStudentsByStatus(ctx context.Context, status entities.StudentStatus) (int64, error)
}

// DeleteByStatusCommand removes all students with one status, e.g. after graduation.
type DeleteByStatusCommand struct {
	Status entities.StudentStatus
	DryRun bool

	Out io.Writer
}

func NewDeleteByStatusCommand() *DeleteByStatusCommand {
	return &DeleteByStatusCommand{Out: os.Stdout}
}

func (cmd *DeleteByStatusCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("delete-by-status", flag.ContinueOnError)

	var status string
	fs.StringVar(&status, "status", "", "Student status to delete: active, expelled, academic_leave or graduated (required)")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Report how many students would be deleted without deleting them")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s delete-by-status -status <status> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Delete every student with the given status, along with contacts and grades.\n")
		fmt.Fprintf(os.Stderr, "The database is taken from the same environment settings as the server.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s delete-by-status -status graduated\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if status == "" {
		return fmt.Errorf("required flag -status not provided")
	}
	parsed, err := entities.ParseStudentStatus(status)
	if err != nil {
		return err
	}
	cmd.Status = parsed
	return nil
}

func (cmd *DeleteByStatusCommand) Run() error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer log.Sync()

	app, err := entrypoint.NewApp(cfg.Database, log)
	if err != nil {
		return err
	}
	defer app.Close()

	return cmd.Execute(context.Background(), app.Students)
}

// Execute performs the deletion against store.
func (cmd *DeleteByStatusCommand) Execute(ctx context.Context, store StatusDeleter) error {
	if cmd.DryRun {
		n, err := store.CountStudentsByStatus(ctx, cmd.Status)
		if err != nil {
			return fmt.Errorf("failed to count students: %w", err)
		}
		fmt.Fprintf(cmd.Out, "DRY RUN: would delete %d students with status %s\n", n, cmd.Status)
		return nil
	}

	deleted, err := store.DeleteStudentsByStatus(ctx, cmd.Status)
	if err != nil {
		return fmt.Errorf("failed to delete students: %w", err)
	}
	fmt.Fprintf(cmd.Out, "Deleted %d students with status %s\n", deleted, cmd.Status)
	return nil
}
