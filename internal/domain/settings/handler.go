package settings

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicvoice/clinicvoice/internal/platform/callctx"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes wires the settings tools. The clinic-scoped endpoints run
// behind callctx.Middleware; the routing lookup only needs a call id since
// it is how the voice layer discovers the clinic in the first place.
func (h *Handler) RegisterRoutes(tools *echo.Group, routing *echo.Group) {
	tools.POST("/get_clinic_settings", h.GetClinicSettings)
	tools.POST("/get_doctor_details", h.GetDoctorDetails)
	routing.POST("/get_clinic_id_by_agent_phone", h.GetClinicIDByAgentPhone)
}

func (h *Handler) GetClinicSettings(c echo.Context) error {
	id := callctx.FromContext(c.Request().Context())
	clinicID, err := uuid.Parse(id.ClinicID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid clinic id")
	}
	cs, err := h.svc.GetByClinicID(c.Request().Context(), clinicID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"result": cs})
}

func (h *Handler) GetDoctorDetails(c echo.Context) error {
	var req struct {
		DoctorName string `json:"doctor_name"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	id := callctx.FromContext(c.Request().Context())
	clinicID, err := uuid.Parse(id.ClinicID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid clinic id")
	}
	doctors, err := h.svc.GetDoctorDetails(c.Request().Context(), clinicID, req.DoctorName)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"result": doctors})
}

func (h *Handler) GetClinicIDByAgentPhone(c echo.Context) error {
	var req struct {
		AgentPhone string `json:"agent_phone"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.AgentPhone == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "agent_phone is required")
	}
	clinicID, err := h.svc.ClinicIDByAgentPhone(c.Request().Context(), req.AgentPhone)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"result": clinicID.String()})
}
