package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/trivial-api/internal/domain/entity"
)

// ExtractUintParam создает middleware для извлечения и валидации числового
// параметра URL. paramName — имя параметра в URL (например, "round_id"),
// contextKey — ключ, под которым значение сохраняется в контексте Gin.
func ExtractUintParam(paramName, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Param(paramName)
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid %s", paramName)})
			c.Abort()
			return
		}
		// Сохраняем как uint для единообразия
		c.Set(contextKey, uint(id))
		c.Next()
	}
}

// ExtractCategoryParam извлекает и валидирует категорию из параметра пути.
// Неизвестная категория — 400.
func ExtractCategoryParam(paramName, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		category, err := entity.ParseCategory(c.Param(paramName))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		c.Set(contextKey, category)
		c.Next()
	}
}

// ExtractDifficultyParam извлекает и валидирует сложность из параметра пути.
// Неизвестная сложность — 400.
func ExtractDifficultyParam(paramName, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		difficulty, err := entity.ParseDifficulty(c.Param(paramName))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		c.Set(contextKey, difficulty)
		c.Next()
	}
}
