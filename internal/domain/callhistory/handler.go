package callhistory

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicvoice/clinicvoice/internal/platform/callctx"
	"github.com/clinicvoice/clinicvoice/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(tools *echo.Group) {
	tools.POST("/add_call_history", h.AddCallHistory)
	tools.GET("/call_history", h.ListCallHistory)
}

type addCallHistoryRequest struct {
	CallerNumber      string     `json:"caller_number"`
	CalledNumber      string     `json:"called_number"`
	CallStart         *time.Time `json:"call_start"`
	CallEnd           *time.Time `json:"call_end"`
	CallDuration      int        `json:"call_duration_seconds"`
	CallStatus        string     `json:"call_status"`
	AppointmentStatus string     `json:"appointment_status"`
	Summary           string     `json:"summary"`
}

func (h *Handler) AddCallHistory(c echo.Context) error {
	var req addCallHistoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	id := callctx.FromContext(c.Request().Context())
	clinicID, err := uuid.Parse(id.ClinicID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid clinic id")
	}

	rec := &Record{
		CallID:            id.CallID,
		ClinicID:          clinicID,
		CallerNumber:      req.CallerNumber,
		CalledNumber:      req.CalledNumber,
		CallStart:         req.CallStart,
		CallEnd:           req.CallEnd,
		CallDuration:      req.CallDuration,
		CallStatus:        req.CallStatus,
		AppointmentStatus: req.AppointmentStatus,
		Summary:           req.Summary,
	}
	if err := h.svc.Add(c.Request().Context(), rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"result": "Call history recorded."})
}

func (h *Handler) ListCallHistory(c echo.Context) error {
	id := callctx.FromContext(c.Request().Context())
	clinicID, err := uuid.Parse(id.ClinicID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid clinic id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListByClinic(c.Request().Context(), clinicID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
