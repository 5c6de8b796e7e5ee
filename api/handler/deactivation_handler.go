package handler

import (
	"errors"
	"net/http"

	"usergate/api/middleware"
	"usergate/internal/dto"
	"usergate/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type DeactivationHandler struct {
	Service  *service.DeactivationService
	Validate *validator.Validate
}

func NewDeactivationHandler(svc *service.DeactivationService, validate *validator.Validate) *DeactivationHandler {
	return &DeactivationHandler{Service: svc, Validate: validate}
}

func (h *DeactivationHandler) Deactivate(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid user id"))
	}
	actorID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	var req dto.DeactivateRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	result, err := h.Service.Deactivate(c.Request().Context(), userID, actorID, req.DeactivatedReason)
	if err != nil {
		return writeServiceError(c, err)
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	return c.JSON(status, dto.TransitionResponse{
		ID:      result.Record.ID.String(),
		UserID:  result.Record.UserID.String(),
		AdminID: result.Record.DeactivatedBy.String(),
	})
}

func (h *DeactivationHandler) Reactivate(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid user id"))
	}
	actorID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	var req dto.ReactivateRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	record, err := h.Service.Reactivate(c.Request().Context(), userID, actorID, req.ReactivatedReason)
	if err != nil {
		return writeServiceError(c, err)
	}

	adminID := ""
	if record.ReactivatedBy != nil {
		adminID = record.ReactivatedBy.String()
	}
	return c.JSON(http.StatusOK, dto.TransitionResponse{
		ID:      record.ID.String(),
		UserID:  record.UserID.String(),
		AdminID: adminID,
	})
}

func (h *DeactivationHandler) Delete(c echo.Context) error {
	deactivatedID, err := uuid.Parse(c.Param("deactivatedId"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid deactivation id"))
	}
	if err := h.Service.DeleteDeactivation(c.Request().Context(), deactivatedID); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "deactivated user deleted successfully"})
}

func (h *DeactivationHandler) GetDeactivatedUser(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid user id"))
	}
	detail, err := h.Service.GetDeactivatedUser(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.DeactivatedUserResponse{
		DeactivatedUserID:    detail.Target.ID.String(),
		DeactivatedUserName:  detail.Target.Name,
		DeactivatedUserEmail: detail.Target.Email,
		DeactivatedReason:    detail.Record.DeactivatedReason,
		DeactivatedAt:        detail.Record.DeactivatedAt,
		DeactivatedByID:      detail.Actor.ID.String(),
		DeactivatedByName:    detail.Actor.Name,
		DeactivatedByEmail:   detail.Actor.Email,
	})
}

func (h *DeactivationHandler) List(c echo.Context) error {
	records, err := h.Service.List(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.DeactivationResponsesFromEntities(records))
}

func (h *DeactivationHandler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}
