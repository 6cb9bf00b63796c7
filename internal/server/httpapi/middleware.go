package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/sensorhub/internal/common"
	"github.com/dmitrijs2005/sensorhub/internal/logging"
	"github.com/dmitrijs2005/sensorhub/internal/server/services"
	"github.com/gin-gonic/gin"
)

const (
	requestIDHeader = "X-Request-ID"
	principalKey    = "principal"
)

// requestLogger logs one line per request after the handler chain ran.
func requestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id, _ = common.MakeRandHexString(8)
		}
		c.Header(requestIDHeader, id)

		c.Next()

		args := []any{
			"request_id", id,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"size", c.Writer.Size(),
		}
		if p, ok := principalFrom(c); ok {
			args = append(args, "user", p.UserName)
		}

		ctx := c.Request.Context()
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			logger.Error(ctx, "http request", args...)
		case status >= http.StatusBadRequest:
			logger.Warn(ctx, "http request", args...)
		default:
			logger.Info(ctx, "http request", args...)
		}
	}
}

// requireBearer resolves the Authorization bearer token to a Principal and
// stores it on the context; requests without a usable token get 401.
func (s *Server) requireBearer() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader(common.AuthorizationHeaderName))
		if !ok {
			c.Header("WWW-Authenticate", common.BearerScheme)
			respondError(c, http.StatusUnauthorized, "missing bearer token")
			return
		}

		p, err := s.auth.Principal(c.Request.Context(), token)
		if err != nil {
			s.writeError(c, err)
			return
		}

		c.Set(principalKey, p)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func principalFrom(c *gin.Context) (*services.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*services.Principal)
	return p, ok
}
