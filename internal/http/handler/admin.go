package handler

import (
	"net/http"

	"library-cms/internal/audit"
	"library-cms/internal/auth"
	"library-cms/internal/domain/maintenance"
	"library-cms/pkg/validator"

	"github.com/labstack/echo/v4"
)

// AdminHandler serves the super_admin operations: maintenance mode and backups.
type AdminHandler struct {
	maintenance MaintenanceService
	backups     BackupService
	rec         recorder
}

func NewAdminHandler(m MaintenanceService, b BackupService, auditLogger AuditLogger) *AdminHandler {
	return &AdminHandler{maintenance: m, backups: b, rec: recorder{audit: auditLogger}}
}

func (h *AdminHandler) GetMaintenance(c echo.Context) error {
	state, err := h.maintenance.Status(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, state)
}

func (h *AdminHandler) SetMaintenance(c echo.Context) error {
	var input maintenance.UpdateStateInput
	if err := bindStrictJSON(c, &input); err != nil {
		return err
	}
	if err := firstInvalid(validator.Text(fieldMessage, input.Message, validator.MaxBodyLen)); err != nil {
		return err
	}

	state, err := h.maintenance.Set(c.Request().Context(), input, auth.GetActor(c))
	h.rec.record(c, audit.ResourceTypeMaintenance, audit.ActionUpdate, nil, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, state)
}

func (h *AdminHandler) CreateBackup(c echo.Context) error {
	manifest, err := h.backups.Create(c.Request().Context(), auth.GetActor(c))
	h.rec.record(c, audit.ResourceTypeBackup, audit.ActionCreate, nil, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, manifest)
}
