package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/trivial-api/internal/domain/entity"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestExtractUintParam(t *testing.T) {
	r := gin.New()
	var captured uint
	r.GET("/rounds/:round_id", ExtractUintParam("round_id", "roundID"), func(c *gin.Context) {
		captured = c.MustGet("roundID").(uint)
		c.Status(http.StatusOK)
	})

	// Числовой параметр проходит и сохраняется в контексте
	w := performRequest(r, "GET", "/rounds/42")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(42), captured)

	// Нечисловой параметр отклоняется до обработчика
	w = performRequest(r, "GET", "/rounds/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(r, "GET", "/rounds/-1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExtractCategoryParam(t *testing.T) {
	r := gin.New()
	var captured entity.Category
	r.GET("/questions/category/:category", ExtractCategoryParam("category", "category"), func(c *gin.Context) {
		captured = c.MustGet("category").(entity.Category)
		c.Status(http.StatusOK)
	})

	w := performRequest(r, "GET", "/questions/category/geography")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entity.CategoryGeography, captured)

	w = performRequest(r, "GET", "/questions/category/cooking")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExtractDifficultyParam(t *testing.T) {
	r := gin.New()
	r.GET("/questions/difficulty/:difficulty", ExtractDifficultyParam("difficulty", "difficulty"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := performRequest(r, "GET", "/questions/difficulty/hard")
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(r, "GET", "/questions/difficulty/extreme")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
