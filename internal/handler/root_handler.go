package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RootHandler отдает метаданные сервиса на корневом эндпоинте
type RootHandler struct {
	baseURL string
}

// NewRootHandler создает новый обработчик корневого эндпоинта
func NewRootHandler(baseURL string) *RootHandler {
	return &RootHandler{baseURL: baseURL}
}

// ServiceInfo возвращает имя API, версию и карту основных эндпоинтов
func (h *RootHandler) ServiceInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"api_name":          "trivial.pub API",
		"version":           "1.0",
		"documentation_url": h.baseURL + "/docs",
		"endpoints": gin.H{
			"questions": h.baseURL + "/questions",
			"answers":   h.baseURL + "/answers",
			"users":     h.baseURL + "/users",
			"rounds":    h.baseURL + "/rounds",
		},
	})
}
