package http

import (
	errs "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/carteira-backend/internal/domain/errors"
	"github.com/rafabene/carteira-backend/internal/domain/ports"
	"github.com/rafabene/carteira-backend/internal/handlers/dto"
	"github.com/rafabene/carteira-backend/internal/handlers/middleware"
	"github.com/rafabene/carteira-backend/internal/infrastructure/logging"
)

type errorKind int

const (
	kindValidation errorKind = iota
	kindBadRequest
	kindUnauthorized
	kindForbidden
	kindNotFound
	kindConflict
)

// errorKinds classifica os erros sentinela do domínio
var errorKinds = map[error]errorKind{
	errors.ErrValidation:             kindValidation,
	errors.ErrInvalidEmail:           kindValidation,
	errors.ErrInvalidAmount:          kindValidation,
	errors.ErrInvalidTransactionType: kindValidation,
	errors.ErrInvalidTransactionDate: kindValidation,
	errors.ErrInvalidStatus:          kindValidation,
	errors.ErrInvalidReminderDate:    kindValidation,
	errors.ErrInvalidRole:            kindValidation,

	errors.ErrCategoryDuplicate:      kindBadRequest,
	errors.ErrCategoryInUse:          kindBadRequest,
	errors.ErrCategoryTypeLocked:     kindBadRequest,
	errors.ErrCategoryTypeMismatch:   kindBadRequest,
	errors.ErrPaymentMethodInUse:     kindBadRequest,
	errors.ErrPaymentMethodExists:    kindBadRequest,
	errors.ErrNoPaymentMethod:        kindBadRequest,
	errors.ErrThemeDuplicate:         kindBadRequest,
	errors.ErrWrongPassword:          kindBadRequest,
	errors.ErrImpersonationSelf:      kindBadRequest,
	errors.ErrImpersonationTarget:    kindBadRequest,
	errors.ErrImpersonationNotActive: kindBadRequest,

	errors.ErrUnauthorized:       kindUnauthorized,
	errors.ErrInvalidCredentials: kindUnauthorized,

	errors.ErrForbidden:            kindForbidden,
	errors.ErrUserInactive:         kindForbidden,
	errors.ErrGlobalImmutable:      kindForbidden,
	errors.ErrMasterTokenImmutable: kindForbidden,

	errors.ErrUserNotFound:          kindNotFound,
	errors.ErrWalletNotFound:        kindNotFound,
	errors.ErrCategoryNotFound:      kindNotFound,
	errors.ErrPaymentMethodNotFound: kindNotFound,
	errors.ErrTransactionNotFound:   kindNotFound,
	errors.ErrReminderNotFound:      kindNotFound,
	errors.ErrTokenNotFound:         kindNotFound,
	errors.ErrThemeNotFound:         kindNotFound,
	errors.ErrFileNotFound:          kindNotFound,
	errors.ErrWebhookHash:           kindNotFound,

	errors.ErrEmailAlreadyExists:      kindConflict,
	errors.ErrImpersonationInProgress: kindConflict,
}

// classify devolve o sentinela conhecido por trás de err
func classify(err error) (error, errorKind, bool) {
	for sentinel, kind := range errorKinds {
		if errs.Is(err, sentinel) {
			return sentinel, kind, true
		}
	}
	return nil, 0, false
}

// respondError converte o erro em problem+json; erros desconhecidos viram 500 e só vão para o log
func respondError(c *gin.Context, logger ports.Logger, err error) {
	sentinel, kind, ok := classify(err)
	if !ok {
		logger.Error("unexpected error",
			logging.FieldPath, c.Request.URL.Path,
			logging.FieldRequestID, c.GetString(middleware.RequestIDContextKey),
			logging.FieldError, err)
		dto.WriteProblem(c, dto.InternalErrorResponseI18n(c))
		return
	}

	key := sentinel.Error()
	params := errors.ParamsOf(err)

	var response dto.ErrorResponse
	switch kind {
	case kindValidation:
		response = dto.ValidationErrorResponseI18n(c, nil)
		response.Detail = dto.T(c, key, params)
	case kindBadRequest:
		response = dto.BadRequestErrorResponseI18n(c, key, params)
	case kindUnauthorized:
		response = dto.UnauthorizedErrorResponseI18n(c, key)
	case kindForbidden:
		response = dto.ForbiddenErrorResponseI18n(c, key, params)
	case kindNotFound:
		response = dto.NotFoundErrorResponseI18n(c, key, params)
	case kindConflict:
		response = dto.ConflictErrorResponseI18n(c, key, params)
	}
	dto.WriteProblem(c, response)
}

// respondBindingError responde 400 com os erros por campo
func respondBindingError(c *gin.Context, err error) {
	dto.WriteProblem(c, dto.ValidationErrorResponseI18n(c, dto.ValidationErrors(c, err)))
}

// ErrorRenderer escreve os erros registrados por middlewares que abortaram sem responder
func ErrorRenderer(logger ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		respondError(c, logger, c.Errors.Last().Err)
	}
}

// idParam lê um id numérico da rota
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		dto.WriteProblem(c, dto.ValidationErrorResponseI18n(c, []dto.ValidationError{{
			Field:   name,
			Message: dto.T(c, "validation.invalid", map[string]interface{}{"Field": name}),
			Tag:     "numeric",
		}}))
		return 0, false
	}
	return uint(id), true
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
