package plan

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rutalab/core/internal/middleware"
	"github.com/rutalab/core/internal/pkg/response"
	"go.uber.org/zap"
)

const mockHeader = "x-mock-plan"

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/plan", h.generatePlan)
	rg.POST("/plan/normalize", h.normalizePlan)

	plans := rg.Group("/plans", authMW)
	plans.GET("", h.listPlans)
	plans.GET("/:id", h.getPlan)
}

// POST /plan?mock=1  (also honors the x-mock-plan header)
func (h *Handler) generatePlan(c *gin.Context) {
	var dto PlanRequestDTO
	// Bind errors fall through to the validator, which reports every
	// malformed field at once.
	_ = c.ShouldBindJSON(&dto)

	req, problems := Validate(dto)
	if len(problems) > 0 {
		id := response.BadRequest(c, "solicitud inválida: "+strings.Join(problems, "; "))
		h.log.Warn("plan request rejected",
			zap.Strings("problems", problems),
			zap.String("error_id", id),
		)
		return
	}

	hints := RoutingHints{
		QueryMock:  isTruthy(c.Query("mock")),
		HeaderMock: isTruthy(c.GetHeader(mockHeader)),
	}
	uid := middleware.CurrentUserID(c)

	p, err := h.svc.Generate(c.Request.Context(), req, hints, uid)
	if err != nil {
		id := response.InternalError(c, "no se pudo generar el plan")
		h.log.Error("plan generation failed",
			zap.Error(err),
			zap.String("error_id", id),
			zap.String("objective", req.Objective),
		)
		return
	}

	response.OK(c, gin.H{"plan": p})
}

// POST /plan/normalize — total: any body yields a canonical plan.
func (h *Handler) normalizePlan(c *gin.Context) {
	var raw interface{}
	_ = c.ShouldBindJSON(&raw)
	response.OK(c, Normalize(raw))
}

// GET /plans  [auth]
func (h *Handler) listPlans(c *gin.Context) {
	uid := middleware.CurrentUserID(c)
	records, err := h.svc.ListRecords(c.Request.Context(), uid)
	if err != nil {
		id := response.InternalError(c, "no se pudieron cargar los planes")
		h.log.Error("plan list failed", zap.Error(err), zap.String("error_id", id), zap.String("uid", uid))
		return
	}
	response.OK(c, records)
}

// GET /plans/:id  [auth] — returns the stored record plus its canonical form.
func (h *Handler) getPlan(c *gin.Context) {
	uid := middleware.CurrentUserID(c)
	record, err := h.svc.GetRecord(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		if err == ErrRecordNotFound {
			response.NotFoundMsg(c, "plan no encontrado")
			return
		}
		id := response.InternalError(c, "no se pudo cargar el plan")
		h.log.Error("plan fetch failed", zap.Error(err), zap.String("error_id", id), zap.String("uid", uid))
		return
	}

	response.OK(c, gin.H{
		"record":    record,
		"canonical": Normalize(record.Plan),
	})
}

func isTruthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
