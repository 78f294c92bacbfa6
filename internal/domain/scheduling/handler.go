package scheduling

import (
	"net/http"

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

// RegisterRoutes wires the scheduling tools the voice layer invokes. All of
// them run behind callctx.Middleware.
func (h *Handler) RegisterRoutes(tools *echo.Group) {
	tools.POST("/schedule_appointment", h.ScheduleAppointment)
	tools.POST("/check_availability", h.CheckAvailability)
	tools.POST("/get_available_slots", h.GetAvailableSlots)
	tools.POST("/reschedule_appointment", h.RescheduleAppointment)
	tools.POST("/cancel_appointment", h.CancelAppointment)
	tools.POST("/get_appointment_details", h.GetAppointmentDetails)
	tools.POST("/list_appointments_for_patient", h.ListAppointmentsForPatient)
}

func (h *Handler) ScheduleAppointment(c echo.Context) error {
	var req BookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	id := callctx.FromContext(c.Request().Context())
	out, err := h.svc.Book(c.Request().Context(), id, req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) CheckAvailability(c echo.Context) error {
	var req struct {
		Doctor string `json:"doctor_name"`
		Date   string `json:"appointment_date"`
		Time   string `json:"appointment_time"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	id := callctx.FromContext(c.Request().Context())
	out, err := h.svc.CheckAvailability(c.Request().Context(), id, req.Doctor, req.Date, req.Time)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetAvailableSlots(c echo.Context) error {
	var req struct {
		Doctor string `json:"doctor_name"`
		Date   string `json:"appointment_date"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	id := callctx.FromContext(c.Request().Context())
	slots, err := h.svc.GetAvailableSlots(c.Request().Context(), id, req.Doctor, req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"result": slots})
}

func (h *Handler) RescheduleAppointment(c echo.Context) error {
	var req struct {
		AppointmentID string `json:"appointment_id"`
		NewDate       string `json:"new_date"`
		NewTime       string `json:"new_time"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	id := callctx.FromContext(c.Request().Context())
	out, err := h.svc.Reschedule(c.Request().Context(), id, req.AppointmentID, req.NewDate, req.NewTime)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) CancelAppointment(c echo.Context) error {
	var req struct {
		AppointmentID string `json:"appointment_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	id := callctx.FromContext(c.Request().Context())
	out, err := h.svc.Cancel(c.Request().Context(), id, req.AppointmentID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetAppointmentDetails(c echo.Context) error {
	var req struct {
		PatientName string `json:"patient_name"`
		Doctor      string `json:"doctor_name"`
		Date        string `json:"appointment_date"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	id := callctx.FromContext(c.Request().Context())
	pg := pagination.FromContext(c)
	items, total, err := h.svc.GetAppointmentDetails(c.Request().Context(), id,
		Filter{PatientName: req.PatientName, Doctor: req.Doctor, Date: req.Date}, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) ListAppointmentsForPatient(c echo.Context) error {
	var req struct {
		PatientName string `json:"patient_name"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	id := callctx.FromContext(c.Request().Context())
	items, err := h.svc.ListAppointmentsForPatient(c.Request().Context(), id, req.PatientName)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"result": items})
}
