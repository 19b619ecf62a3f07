package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	auditrepo "github.com/mrlokans/faculty/internal/database/audit"
	"github.com/mrlokans/faculty/internal/entities"
)

const (
	defaultAuditLimit = 25
	maxAuditLimit     = 100
)

type AuditController struct {
	store AuditStore
}

func NewAuditController(store AuditStore) *AuditController {
	return &AuditController{store: store}
}

// GetAuditEvents returns paginated audit events as JSON
// GET /audit/events
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	limit, ok := parseIntQuery(c, "limit", defaultAuditLimit)
	if !ok {
		return
	}
	offset, ok := parseIntQuery(c, "offset", 0)
	if !ok {
		return
	}
	if limit < 1 || limit > maxAuditLimit {
		limit = defaultAuditLimit
	}

	q := auditrepo.Query{
		EventType:  entities.AuditEventType(c.Query("type")),
		EntityType: c.Query("entity_type"),
	}
	switch q.EventType {
	case "", entities.AuditEventCreate, entities.AuditEventUpdate, entities.AuditEventDelete:
	default:
		respondBadRequest(c, "invalid type")
		return
	}
	if raw := c.Query("entity_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			respondBadRequest(c, "invalid entity_id")
			return
		}
		q.EntityID = uint(id)
	}

	events, total, err := ac.store.GetEvents(c.Request.Context(), q, limit, offset)
	if err != nil {
		respondInternalError(c, err, "get audit events")
		return
	}
	if events == nil {
		events = []entities.AuditEvent{}
	}
	c.JSON(http.StatusOK, newPaginatedResponse(events, total, limit, offset))
}
