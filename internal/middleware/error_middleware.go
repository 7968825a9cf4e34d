package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/models/dto"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/pkg/apperrors"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/pkg/logger"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/pkg/session"
)

// User-facing failure texts. Kept identical for every cause that must stay
// indistinguishable to the client (unknown user vs wrong password).
const (
	MsgInvalidCredentials = "Usuario o contraseña incorrectos"
	MsgPermissionDenied   = "No tienes permisos para realizar esta acción"
	MsgDuplicateStudent   = "El alumno ya está registrado en ese grupo"
	MsgStudentNotFound    = "Alumno no encontrado"
	MsgUpdateFailed       = "No se pudo actualizar el registro"
	MsgValidationFailed   = "Datos inválidos: revisa los campos ingresados"
	MsgStorageUnavailable = "Servicio no disponible, intenta de nuevo más tarde"
)

// HandleAPIError maps application errors onto the JSON error envelope. Used
// by the read endpoints, which answer JSON rather than redirecting.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrStudentNotFound):
		c.JSON(http.StatusNotFound, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, MsgStudentNotFound),
		})
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeForbidden, MsgPermissionDenied),
		})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, MsgInvalidCredentials),
		})
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, MsgValidationFailed),
		})
	case errors.Is(err, apperrors.ErrDuplicateStudent):
		c.JSON(http.StatusConflict, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, MsgDuplicateStudent),
		})
	case errors.Is(err, apperrors.ErrUpdateFailed):
		c.JSON(http.StatusConflict, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUpdateFailed, MsgUpdateFailed),
		})
	case errors.Is(err, apperrors.ErrStorageUnavailable):
		logger.Error().Err(err).Msg("Storage unavailable")
		c.JSON(http.StatusServiceUnavailable, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeStorageUnavailable, MsgStorageUnavailable),
		})
	default:
		logger.Error().Err(err).Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInternalServer, MsgStorageUnavailable),
		})
	}
}

// RedirectWithError queues the user-facing flash for an application error and
// redirects back to the given view. Used by the form mutations, which never
// answer JSON errors.
func RedirectWithError(c *gin.Context, sess *session.Session, err error, target string) {
	text := MsgStorageUnavailable
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		text = MsgInvalidCredentials
	case errors.Is(err, apperrors.ErrPermissionDenied):
		text = MsgPermissionDenied
	case errors.Is(err, apperrors.ErrDuplicateStudent):
		text = MsgDuplicateStudent
	case errors.Is(err, apperrors.ErrStudentNotFound):
		text = MsgStudentNotFound
	case errors.Is(err, apperrors.ErrUpdateFailed):
		text = MsgUpdateFailed
	case errors.Is(err, apperrors.ErrValidationFailed):
		text = MsgValidationFailed
	case errors.Is(err, apperrors.ErrStorageUnavailable):
		logger.Error().Err(err).Msg("Storage unavailable")
	default:
		logger.Error().Err(err).Msg("Unhandled error on form mutation")
	}

	if sess != nil {
		sess.PushFlash(text, session.SeverityDanger)
	}
	c.Redirect(http.StatusSeeOther, target)
}
