package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/sgrsensor/internal/client/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) createSignal(c *gin.Context) {
	var req models.NewSignal
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	sg, err := h.store.CreateSignal(req)
	if err != nil {
		storeError(c, err)
		return
	}
	success(c, http.StatusAccepted, sg)
}

func (h *Handler) listSignals(c *gin.Context) {
	success(c, http.StatusOK, h.store.Signals())
}

func (h *Handler) getSignal(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	sg, err := h.store.Signal(id)
	if err != nil {
		storeError(c, err)
		return
	}
	success(c, http.StatusOK, sg)
}

// updateSignal overlays the request fields on the stored signal, so a
// body of {"setpoint": v} changes only the setpoint.
func (h *Handler) updateSignal(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	sg, err := h.store.Signal(id)
	if err != nil {
		storeError(c, err)
		return
	}
	if err := c.ShouldBindJSON(&sg); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	sg, err = h.store.PutSignal(id, sg)
	if err != nil {
		storeError(c, err)
		return
	}
	success(c, http.StatusOK, sg)
}

func (h *Handler) deleteSignal(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteSignal(id); err != nil {
		storeError(c, err)
		return
	}
	success(c, http.StatusOK, nil)
}

func (h *Handler) deleteSignals(c *gin.Context) {
	h.store.DeleteSignals()
	success(c, http.StatusOK, nil)
}
