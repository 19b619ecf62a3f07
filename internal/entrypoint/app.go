package entrypoint

import (
	"fmt"

	"github.com/mrlokans/faculty/internal/audit"
	"github.com/mrlokans/faculty/internal/config"
	"github.com/mrlokans/faculty/internal/database"
	auditrepo "github.com/mrlokans/faculty/internal/database/audit"
	"github.com/mrlokans/faculty/internal/logger"
	"github.com/mrlokans/faculty/internal/services"
)

// App holds the open store and the services built on it.
// Shared by the HTTP server and the one-shot commands.
type App struct {
	DB       *database.Database
	Audit    *audit.Service
	Students *services.StudentService
	Grades   *services.GradeService
}

func NewApp(cfg config.Database, log *logger.Logger) (*App, error) {
	db, err := database.NewDatabase(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	tx := services.NewGormTxRunner(db.DB)
	auditService := audit.NewService(auditrepo.NewRepository(db.DB), log)

	return &App{
		DB:       db,
		Audit:    auditService,
		Students: services.NewStudentService(db.DB, tx, auditService, log),
		Grades:   services.NewGradeService(db.DB, tx, auditService, log),
	}, nil
}

func (a *App) Close() error {
	return a.DB.Close()
}
