package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Juanarielok/prototipoR1-backend/internal/dto"
	"github.com/Juanarielok/prototipoR1-backend/internal/service"
)

type AsignacionesHandler struct{ svc service.AsignacionService }

func NewAsignacionesHandler(svc service.AsignacionService) *AsignacionesHandler {
	return &AsignacionesHandler{svc: svc}
}

// Asignar godoc
// @Summary Asignar clientes a un chofer
// @Tags assignments
// @Accept json
// @Produce json
// @Param body body dto.AsignarRequest true "Chofer y clientes"
// @Success 201 {object} dto.AsignarResponse
// @Failure 404 {object} apierror.Error
// @Router /assignments [post]
func (h *AsignacionesHandler) Asignar(c *gin.Context) {
	var req dto.AsignarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Asignar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AsignacionesHandler) MisAsignaciones(c *gin.Context) {
	choferID, ok := claimsUserID(c)
	if !ok {
		return
	}
	resp, err := h.svc.MisAsignaciones(c.Request.Context(), choferID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AsignacionesHandler) Contar(c *gin.Context) {
	choferID, ok := claimsUserID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ContarAsignaciones(c.Request.Context(), choferID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
