package http

import (
	stdhttp "net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"devchat/internal/config"
)

// RequestLogger creates a middleware that logs HTTP requests.
func RequestLogger(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Msg("http request")
	}
}

// CORS allows the configured origins in production and any origin
// otherwise, matching the deployment-mode flag.
func CORS(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" {
			if allowed, value := allowOrigin(cfg, origin); allowed {
				c.Header("Access-Control-Allow-Origin", value)
				c.Header("Access-Control-Allow-Methods", "GET, POST")
				c.Header("Access-Control-Allow-Credentials", "true")
			}
		}
		if c.Request.Method == stdhttp.MethodOptions {
			c.AbortWithStatus(stdhttp.StatusNoContent)
			return
		}
		c.Next()
	}
}

func allowOrigin(cfg config.Config, origin string) (bool, string) {
	if !cfg.IsProduction() {
		return true, "*"
	}
	for _, allowed := range cfg.AllowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return true, origin
		}
	}
	return false, ""
}

// ErrorResponder converts unhandled handler errors into a JSON response,
// verbose in development and sanitized in production.
func ErrorResponder(cfg config.Config, logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")

		msg := "internal server error"
		if !cfg.IsProduction() {
			msg = err.Error()
		}
		c.JSON(stdhttp.StatusInternalServerError, ErrorResponse{Error: msg})
	}
}
