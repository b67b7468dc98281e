package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Juanarielok/prototipoR1-backend/internal/apierror"
	"github.com/Juanarielok/prototipoR1-backend/internal/dto"
	"github.com/Juanarielok/prototipoR1-backend/internal/service"
)

const fechaLayout = "2006-01-02"

type JornadasHandler struct{ svc service.JornadaService }

func NewJornadasHandler(svc service.JornadaService) *JornadasHandler {
	return &JornadasHandler{svc: svc}
}

func (h *JornadasHandler) CheckIn(c *gin.Context) {
	choferID, ok := claimsUserID(c)
	if !ok {
		return
	}
	var req dto.CheckInRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CheckIn(c.Request.Context(), choferID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *JornadasHandler) CheckOut(c *gin.Context) {
	choferID, ok := claimsUserID(c)
	if !ok {
		return
	}
	var req dto.CheckInRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CheckOut(c.Request.Context(), choferID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *JornadasHandler) MiJornada(c *gin.Context) {
	choferID, ok := claimsUserID(c)
	if !ok {
		return
	}
	resp, err := h.svc.MiJornada(c.Request.Context(), choferID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *JornadasHandler) MiHistorial(c *gin.Context) {
	choferID, ok := claimsUserID(c)
	if !ok {
		return
	}
	limite, ok := parseLimite(c)
	if !ok {
		return
	}
	resp, err := h.svc.MiHistorial(c.Request.Context(), choferID, limite)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *JornadasHandler) Activas(c *gin.Context) {
	resp, err := h.svc.Activas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HistorialChofer accepts ?limite, ?fechaInicio, ?fechaFin (YYYY-MM-DD).
// The date range only applies when both bounds are present.
func (h *JornadasHandler) HistorialChofer(c *gin.Context) {
	choferID, ok := parseIDParam(c)
	if !ok {
		return
	}
	limite, ok := parseLimite(c)
	if !ok {
		return
	}
	desde, ok := parseFecha(c, "fechaInicio")
	if !ok {
		return
	}
	hasta, ok := parseFecha(c, "fechaFin")
	if !ok {
		return
	}
	if hasta != nil {
		// Make the upper bound inclusive for the whole day.
		end := hasta.Add(24*time.Hour - time.Nanosecond)
		hasta = &end
	}

	resp, err := h.svc.HistorialChofer(c.Request.Context(), choferID, limite, desde, hasta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func parseLimite(c *gin.Context) (int, bool) {
	raw := c.Query("limite")
	if raw == "" {
		return 0, true
	}
	limite, err := strconv.Atoi(raw)
	if err != nil || limite <= 0 {
		c.JSON(http.StatusBadRequest, apierror.NewValidation("limite must be a positive integer"))
		return 0, false
	}
	return limite, true
}

func parseFecha(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(fechaLayout, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.NewValidation(name+" must be YYYY-MM-DD"))
		return nil, false
	}
	return &t, true
}
