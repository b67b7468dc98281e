package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Juanarielok/prototipoR1-backend/internal/dto"
	"github.com/Juanarielok/prototipoR1-backend/internal/service"
)

type RemitosHandler struct{ svc service.RemitoService }

func NewRemitosHandler(svc service.RemitoService) *RemitosHandler {
	return &RemitosHandler{svc: svc}
}

// Crear godoc
// @Summary Crear remito de entrega
// @Tags remitos
// @Accept json
// @Produce json
// @Param body body dto.CrearRemitoRequest true "Cliente y productos"
// @Success 201 {object} dto.CrearRemitoResponse
// @Failure 400 {object} apierror.Error
// @Failure 404 {object} apierror.Error
// @Router /remitos [post]
func (h *RemitosHandler) Crear(c *gin.Context) {
	choferID, ok := claimsUserID(c)
	if !ok {
		return
	}
	var req dto.CrearRemitoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), choferID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *RemitosHandler) Obtener(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RemitosHandler) PorCliente(c *gin.Context) {
	clienteID, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.PorCliente(c.Request.Context(), clienteID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RemitosHandler) MisRemitos(c *gin.Context) {
	choferID, ok := claimsUserID(c)
	if !ok {
		return
	}
	resp, err := h.svc.MisRemitos(c.Request.Context(), choferID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PDF streams the rendered remito as a download.
func (h *RemitosHandler) PDF(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	pdf, err := h.svc.GenerarPDF(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=remito_%s.pdf", id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
