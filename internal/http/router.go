package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/faculty/internal/logger"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = logger.NewNop()
	}
	log = log.Named("http")

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestContext(log))
	router.Use(RequestLogger(log))
	router.Use(CORS(cfg.CORSOrigins))

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	if cfg.Students != nil {
		sc := NewStudentsController(cfg.Students)
		students := router.Group("/students")
		students.POST("/add", sc.CreateStudent)
		students.GET("/filter", sc.FilterStudentsQuery)
		students.POST("/filter", sc.FilterStudentsBody)
		students.GET("/:id", sc.GetStudent)
		students.DELETE("/delete/:id", sc.DeleteStudent)
		students.DELETE("/delete_by_status/:status", sc.DeleteStudentsByStatus)
		students.PATCH("/update/:id", sc.UpdateStudent)
	}

	if cfg.Grades != nil {
		gc := NewGradesController(cfg.Grades)
		grades := router.Group("/grades")
		grades.POST("/add", gc.CreateGrade)
		grades.GET("/:id", gc.GetGrade)
		grades.DELETE("/delete/:id", gc.DeleteGrade)
	}

	if cfg.Audit != nil {
		ac := NewAuditController(cfg.Audit)
		router.GET("/audit/events", ac.GetAuditEvents)
	}

	return router
}
