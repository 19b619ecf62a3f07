package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/faculty/internal/entities"
	"github.com/mrlokans/faculty/internal/services"
)

type StudentsController struct {
	store StudentStore
}

func NewStudentsController(store StudentStore) *StudentsController {
	return &StudentsController{store: store}
}

// CreateStudent adds a student together with its contact
// POST /students/add
func (sc *StudentsController) CreateStudent(c *gin.Context) {
	var in services.StudentCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		respondValidationError(c, err)
		return
	}
	if err := in.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	student, err := sc.store.CreateStudent(c.Request.Context(), in)
	if err != nil {
		respondInternalError(c, err, "create student")
		return
	}
	respondCreated(c, student)
}

// GetStudent returns one student with contact and grades
// GET /students/:id
func (sc *StudentsController) GetStudent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	student, found, err := sc.store.GetStudent(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, err, "get student")
		return
	}
	if !found {
		respondNotFound(c, "student")
		return
	}
	c.JSON(http.StatusOK, student)
}

// DeleteStudent removes a student, its contact and grades
// DELETE /students/delete/:id
func (sc *StudentsController) DeleteStudent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	deleted, err := sc.store.DeleteStudent(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, err, "delete student")
		return
	}
	if !deleted {
		respondNotFound(c, "student")
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteStudentsByStatus removes every student with the given status
// DELETE /students/delete_by_status/:status
func (sc *StudentsController) DeleteStudentsByStatus(c *gin.Context) {
	status, err := entities.ParseStudentStatus(c.Param("status"))
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	deleted, err := sc.store.DeleteStudentsByStatus(c.Request.Context(), status)
	if err != nil {
		respondInternalError(c, err, "delete students by status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// UpdateStudent merges the provided fields into the stored student
// PATCH /students/update/:id
func (sc *StudentsController) UpdateStudent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var in services.StudentUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		respondValidationError(c, err)
		return
	}
	if err := in.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	student, found, err := sc.store.UpdateStudent(c.Request.Context(), id, in)
	if errors.Is(err, services.ErrContactPhoneRequired) {
		respondValidationError(c, err)
		return
	}
	if err != nil {
		respondInternalError(c, err, "update student")
		return
	}
	if !found {
		respondNotFound(c, "student")
		return
	}
	c.JSON(http.StatusOK, student)
}

// FilterStudentsQuery filters students by query string parameters
// GET /students/filter
// limit defaults to 10 and must be within 0..100; 0 returns an empty list.
func (sc *StudentsController) FilterStudentsQuery(c *gin.Context) {
	var f services.StudentFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		respondValidationError(c, err)
		return
	}
	sc.filter(c, f)
}

// FilterStudentsBody filters students by a JSON filter document
// POST /students/filter
// Same limit rules as the query form.
func (sc *StudentsController) FilterStudentsBody(c *gin.Context) {
	var f services.StudentFilter
	if err := c.ShouldBindJSON(&f); err != nil {
		respondValidationError(c, err)
		return
	}
	sc.filter(c, f)
}

func (sc *StudentsController) filter(c *gin.Context, f services.StudentFilter) {
	students, err := sc.store.FilterStudents(c.Request.Context(), f)
	if err != nil {
		respondInternalError(c, err, "filter students")
		return
	}
	if students == nil {
		students = []services.StudentRead{}
	}
	c.JSON(http.StatusOK, students)
}
