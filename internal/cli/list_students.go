package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/mrlokans/faculty/internal/config"
	"github.com/mrlokans/faculty/internal/entities"
	"github.com/mrlokans/faculty/internal/entrypoint"
	"github.com/mrlokans/faculty/internal/filters"
	"github.com/mrlokans/faculty/internal/logger"
	"github.com/mrlokans/faculty/internal/services"
)

// StudentFinder runs a student filter.
type StudentFinder interface {
	FilterStudents(ctx context.Context, f services.StudentFilter) ([]services.StudentRead, error)
}

// ListStudentsCommand prints students matching the given filters.
type ListStudentsCommand struct {
	Filter services.StudentFilter
	JSON   bool

	Out io.Writer
}

func NewListStudentsCommand() *ListStudentsCommand {
	return &ListStudentsCommand{Out: os.Stdout}
}

func (cmd *ListStudentsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("list-students", flag.ContinueOnError)

	var lastName, group, bornAfter, bornBefore, hasEmail string
	var scorePresent, scoreThreshold, limit int

	fs.StringVar(&lastName, "last-name", "", "Exact last name")
	fs.StringVar(&group, "group", "", "Exact group")
	fs.StringVar(&bornAfter, "born-after", "", "Born strictly after this date (YYYY-MM-DD)")
	fs.StringVar(&bornBefore, "born-before", "", "Born strictly before this date (YYYY-MM-DD)")
	fs.StringVar(&hasEmail, "has-email", "", "true or false: whether the contact has an email")
	fs.IntVar(&scorePresent, "score-present", 0, "Has at least one grade with this score (1-5)")
	fs.IntVar(&scoreThreshold, "score-threshold", 0, "Every grade is at least this score (1-5)")
	fs.IntVar(&limit, "limit", filters.DefaultLimit, "Maximum number of students")
	fs.IntVar(&cmd.Filter.Offset, "offset", 0, "Number of students to skip")
	fs.BoolVar(&cmd.JSON, "json", false, "Print JSON instead of a table")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s list-students [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List students matching all given filters, ordered by id.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s list-students -group PH-21 -score-threshold 4\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if lastName != "" {
		cmd.Filter.LastName = &lastName
	}
	if group != "" {
		cmd.Filter.Group = &group
	}
	if bornAfter != "" {
		d, err := entities.ParseDate(bornAfter)
		if err != nil {
			return fmt.Errorf("invalid -born-after: %w", err)
		}
		cmd.Filter.BornAfter = &d
	}
	if bornBefore != "" {
		d, err := entities.ParseDate(bornBefore)
		if err != nil {
			return fmt.Errorf("invalid -born-before: %w", err)
		}
		cmd.Filter.BornBefore = &d
	}
	if hasEmail != "" {
		v, err := strconv.ParseBool(hasEmail)
		if err != nil {
			return fmt.Errorf("invalid -has-email: %w", err)
		}
		cmd.Filter.HasEmail = &v
	}
	if scorePresent != 0 {
		s := entities.Score(scorePresent)
		if !s.Valid() {
			return fmt.Errorf("invalid -score-present: %d", scorePresent)
		}
		cmd.Filter.ScorePresent = &s
	}
	if scoreThreshold != 0 {
		s := entities.Score(scoreThreshold)
		if !s.Valid() {
			return fmt.Errorf("invalid -score-threshold: %d", scoreThreshold)
		}
		cmd.Filter.ScoreThreshold = &s
	}
	if limit < 0 || cmd.Filter.Offset < 0 {
		return fmt.Errorf("-limit and -offset must not be negative")
	}
	if limit > filters.MaxLimit {
		return fmt.Errorf("-limit must not exceed %d", filters.MaxLimit)
	}
	cmd.Filter.Limit = &limit
	return nil
}

func (cmd *ListStudentsCommand) Run() error {
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

// Execute runs the filter against finder and prints the result.
func (cmd *ListStudentsCommand) Execute(ctx context.Context, finder StudentFinder) error {
	students, err := finder.FilterStudents(ctx, cmd.Filter)
	if err != nil {
		return fmt.Errorf("failed to list students: %w", err)
	}

	if cmd.JSON {
		enc := json.NewEncoder(cmd.Out)
		enc.SetIndent("", "  ")
		if students == nil {
			students = []services.StudentRead{}
		}
		return enc.Encode(students)
	}

	if len(students) == 0 {
		fmt.Fprintln(cmd.Out, "No students found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLAST NAME\tFIRST NAME\tGROUP\tSTATUS\tBORN\tGRADES")
	for _, s := range students {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%d\n",
			s.ID, s.LastName, s.FirstName, s.Group, s.Status, s.BirthDate, len(s.Grades))
	}
	return w.Flush()
}
