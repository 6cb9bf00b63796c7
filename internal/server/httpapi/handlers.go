package httpapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/sensorhub/internal/server/models"
	"github.com/gin-gonic/gin"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.bindError(c, err, &req)
		return
	}

	token, err := s.auth.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tokenResponse{Token: token})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.bindError(c, err, &req)
		return
	}

	token, err := s.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{Token: token})
}

func (s *Server) createReading(c *gin.Context) {
	var req readingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.bindError(c, err, &req)
		return
	}

	r, err := s.readings.Save(c.Request.Context(), req.SensorID, req.Value, req.Timestamp.ptr())
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.Header("Location", readingLocation(*r))
	c.JSON(http.StatusCreated, toReadingResponse(*r))
}

// readingLocation is the URL of the single-reading resource.
func readingLocation(r models.Reading) string {
	return readingsPath + "/" + url.PathEscape(r.SensorID) + "/" + strconv.FormatInt(r.ID, 10)
}

func (s *Server) getReading(c *gin.Context) {
	sensorID := c.Param("sensorId")
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusNotFound, fmt.Sprintf("no reading %s found for sensor ID: %s", c.Param("id"), sensorID))
		return
	}

	r, err := s.readings.Get(c.Request.Context(), sensorID, id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReadingResponse(*r))
}

func (s *Server) listReadings(c *gin.Context) {
	items, err := s.readings.ListAll(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReadingResponses(items))
}

func (s *Server) listSensorReadings(c *gin.Context) {
	items, err := s.readings.ListBySensor(c.Request.Context(), c.Param("sensorId"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReadingResponses(items))
}
