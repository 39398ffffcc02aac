package handlers

import (
	"candidate_application/services"
	"candidate_application/utils"

	"github.com/labstack/echo/v4"
)

type ConfigHandler struct {
	namespace string
	locales   []string
}

func NewConfigHandler(namespace string, locales []string) *ConfigHandler {
	return &ConfigHandler{namespace: namespace, locales: locales}
}

func (h *ConfigHandler) HandleConfig(c echo.Context) error {
	configData := map[string]interface{}{
		"formId":         services.FormID,
		"namespace":      h.namespace,
		"minPhoneLength": services.MinPhoneLength,
		"locales":        h.locales,
	}
	return utils.SuccessResponse(c, "Configuration retrieved successfully", configData)
}
