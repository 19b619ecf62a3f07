package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/faculty/internal/services"
)

type GradesController struct {
	store GradeStore
}

func NewGradesController(store GradeStore) *GradesController {
	return &GradesController{store: store}
}

var rejectCodes = map[services.RejectReason]string{
	services.RejectStudentNotFound: "student_not_found",
	services.RejectDuplicateGrade:  "duplicate_grade",
}

// CreateGrade records a grade for a student and course
// POST /grades/add
func (gc *GradesController) CreateGrade(c *gin.Context) {
	var in services.GradeCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		respondValidationError(c, err)
		return
	}
	if err := in.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	grade, reason, err := gc.store.CreateGrade(c.Request.Context(), in)
	if err != nil {
		respondInternalError(c, err, "create grade")
		return
	}
	if reason != services.RejectNone {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Student with matching id not found or grade already exists.",
			Code:    rejectCodes[reason],
			Details: reason.String(),
		})
		return
	}
	respondCreated(c, grade)
}

// GetGrade returns a single grade
// GET /grades/:id
func (gc *GradesController) GetGrade(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	grade, found, err := gc.store.GetGrade(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, err, "get grade")
		return
	}
	if !found {
		respondNotFound(c, "grade")
		return
	}
	c.JSON(http.StatusOK, grade)
}

// DeleteGrade removes a grade
// DELETE /grades/delete/:id
func (gc *GradesController) DeleteGrade(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	deleted, err := gc.store.DeleteGrade(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, err, "delete grade")
		return
	}
	if !deleted {
		respondNotFound(c, "grade")
		return
	}
	c.Status(http.StatusNoContent)
}
