package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/sensorhub/internal/common"
	"github.com/gin-gonic/gin"
)

// respondError sends {"error": message}.
func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// writeError maps a service error to its HTTP status. Unknown errors are
// logged and reported as a bare 500.
func (s *Server) writeError(c *gin.Context, err error) {
	var verrs common.ValidationErrors

	switch {
	case errors.As(err, &verrs):
		c.AbortWithStatusJSON(http.StatusBadRequest, verrs)
	case errors.Is(err, common.ErrorConflict):
		respondError(c, http.StatusConflict, common.ErrorConflict.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		respondError(c, http.StatusUnauthorized, common.ErrorUnauthorized.Error())
	case errors.Is(err, common.ErrTokenExpired):
		c.Header("WWW-Authenticate", common.BearerScheme+` error="invalid_token"`)
		respondError(c, http.StatusUnauthorized, common.ErrTokenExpired.Error())
	case errors.Is(err, common.ErrInvalidToken):
		c.Header("WWW-Authenticate", common.BearerScheme+` error="invalid_token"`)
		respondError(c, http.StatusUnauthorized, common.ErrInvalidToken.Error())
	case errors.Is(err, common.ErrorNotFound):
		respondError(c, http.StatusNotFound, notFoundMessage(err))
	default:
		s.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
		respondError(c, http.StatusInternalServerError, common.ErrorInternal.Error())
	}
}

// notFoundMessage drops the sentinel prefix, leaving the detail.
func notFoundMessage(err error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, common.ErrorNotFound.Error()+": "); ok {
		return rest
	}
	return msg
}

// bindError reports a failed ShouldBindJSON into obj.
func (s *Server) bindError(c *gin.Context, err error, obj any) {
	if verrs, ok := fieldErrors(err, obj); ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, verrs)
		return
	}
	s.logger.Debug(c.Request.Context(), "malformed request body", "path", c.FullPath(), "error", err)
	respondError(c, http.StatusBadRequest, "malformed request body")
}
