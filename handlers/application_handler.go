package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"candidate_application/config"
	"candidate_application/i18n"
	"candidate_application/models"
	"candidate_application/services"
	"candidate_application/utils"
)

type ApplicationHandler struct {
	service    *services.ApplicationService
	translator i18n.Translator
	config     *config.Config
}

func NewApplicationHandler(service *services.ApplicationService, translator i18n.Translator, cfg *config.Config) *ApplicationHandler {
	if translator == nil {
		translator = i18n.Identity{}
	}
	return &ApplicationHandler{service: service, translator: translator, config: cfg}
}

func (h *ApplicationHandler) locale(c echo.Context) string {
	if al := c.Request().Header.Get("Accept-Language"); al != "" {
		return al
	}
	return h.config.DefaultLocale
}

func (h *ApplicationHandler) HandleGetApplicationForm(c echo.Context) error {
	form, err := h.service.BuildForm(c.Request().Context(), h.locale(c))
	if err != nil {
		return utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to load application form", err.Error())
	}
	return utils.SuccessResponse(c, "Application form retrieved successfully", form)
}

func (h *ApplicationHandler) HandleSubmitApplication(c echo.Context) error {
	ctx := c.Request().Context()
	locale := h.locale(c)
	form := new(models.CandidateApplication)

	if err := c.Bind(form); err != nil {
		h.service.Reject()
		return utils.ErrorResponse(c, http.StatusBadRequest, "Invalid input format", err.Error())
	}
	if isFormPost(c) {
		form.Copy = checkboxValue(c, models.FieldCopy)
	}

	var fieldErrors []utils.ValidationError
	if err := c.Validate(form); err != nil {
		errs, ok := utils.FieldErrors(err)
		if !ok {
			h.service.Reject()
			return utils.ErrorResponse(c, http.StatusBadRequest, "Validation failed", err.Error())
		}
		fieldErrors = append(fieldErrors, errs...)
	}
	if err := h.service.Validate(form); err != nil {
		fieldErrors = append(fieldErrors, h.fieldError(err, locale))
	}
	if len(fieldErrors) > 0 {
		h.service.Reject()
		return utils.ErrorResponse(c, http.StatusBadRequest, "Validation failed", fieldErrors)
	}

	result, err := h.service.Submit(ctx, form, locale)
	if err != nil {
		if services.IsValidationError(err) {
			return utils.ErrorResponse(c, http.StatusBadRequest, "Validation failed", []utils.ValidationError{h.fieldError(err, locale)})
		}
		zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to store application")
		return utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to save application", err.Error())
	}

	return utils.SuccessResponse(c, result.Messages[0], result)
}

func (h *ApplicationHandler) fieldError(err error, locale string) utils.ValidationError {
	var phoneErr *services.PhoneTooShortError
	if errors.As(err, &phoneErr) {
		return utils.ValidationError{
			Field:   phoneErr.Field(),
			Message: h.translator.Translate(locale, phoneErr.MessageKey()),
		}
	}
	return utils.ValidationError{Message: err.Error()}
}

func isFormPost(c echo.Context) bool {
	ct := c.Request().Header.Get(echo.HeaderContentType)
	return strings.HasPrefix(ct, echo.MIMEApplicationForm) || strings.HasPrefix(ct, echo.MIMEMultipartForm)
}

// checkboxValue treats an absent checkbox as unchecked, which is how browsers
// submit it.
func checkboxValue(c echo.Context, name string) *bool {
	var checked bool
	switch strings.ToLower(strings.TrimSpace(c.FormValue(name))) {
	case "", "0", "false", "off", "no":
		checked = false
	default:
		checked = true
	}
	return &checked
}
