package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/sgrsensor/internal/client/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) createSensor(c *gin.Context) {
	var req models.NewSensor
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	sn, err := h.store.CreateSensor(req)
	if err != nil {
		storeError(c, err)
		return
	}
	success(c, http.StatusAccepted, sn)
}

func (h *Handler) listSensors(c *gin.Context) {
	success(c, http.StatusOK, h.store.Sensors())
}

func (h *Handler) getSensor(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	sn, err := h.store.Sensor(id)
	if err != nil {
		storeError(c, err)
		return
	}
	success(c, http.StatusOK, sn)
}

// updateSensor overlays the request fields on the stored sensor.
func (h *Handler) updateSensor(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	sn, err := h.store.Sensor(id)
	if err != nil {
		storeError(c, err)
		return
	}
	if err := c.ShouldBindJSON(&sn); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	sn, err = h.store.PutSensor(id, sn)
	if err != nil {
		storeError(c, err)
		return
	}
	success(c, http.StatusOK, sn)
}

func (h *Handler) deleteSensor(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteSensor(id); err != nil {
		storeError(c, err)
		return
	}
	success(c, http.StatusOK, nil)
}

func (h *Handler) deleteSensors(c *gin.Context) {
	h.store.DeleteSensors()
	success(c, http.StatusOK, nil)
}

func (h *Handler) sensorSignals(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	signals, err := h.store.SignalsOf(id)
	if err != nil {
		storeError(c, err)
		return
	}
	success(c, http.StatusOK, signals)
}

func (h *Handler) sensorBuilds(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	builds, err := h.store.Builds(id)
	if err != nil {
		storeError(c, err)
		return
	}
	success(c, http.StatusOK, builds)
}

func (h *Handler) buildSensor(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	b, err := h.store.Build(id)
	if err != nil {
		storeError(c, err)
		return
	}
	success(c, http.StatusAccepted, b)
}

func (h *Handler) startSensor(c *gin.Context) {
	h.runSensor(c, true, http.StatusAccepted)
}

func (h *Handler) stopSensor(c *gin.Context) {
	h.runSensor(c, false, http.StatusOK)
}

func (h *Handler) runSensor(c *gin.Context, running bool, code int) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	if _, err := h.store.SetSensorState(id, running); err != nil {
		storeError(c, err)
		return
	}
	h.log.Info(c.Request.Context(), "sensor state changed", "sensor_id", id, "running", running)
	success(c, code, nil)
}

func (h *Handler) resetSensors(c *gin.Context) {
	h.store.ResetSensors()
	success(c, http.StatusOK, nil)
}

func (h *Handler) sensorState(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	sn, err := h.store.Sensor(id)
	if err != nil {
		storeError(c, err)
		return
	}
	success(c, http.StatusOK, models.SensorState{SensorID: id, State: sn.State})
}

func (h *Handler) setSensorState(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	flag, ok := pathInt(c, "state")
	if !ok {
		return
	}
	st, err := h.store.SetSensorState(id, flag != 0)
	if err != nil {
		storeError(c, err)
		return
	}
	success(c, http.StatusOK, st)
}

func (h *Handler) sensorStates(c *gin.Context) {
	success(c, http.StatusOK, h.store.SensorStates())
}

func (h *Handler) sensorMode(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	m, err := h.store.Mode(id)
	if err != nil {
		storeError(c, err)
		return
	}
	success(c, http.StatusOK, m)
}

func (h *Handler) setSensorMode(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	mode, err := strconv.Atoi(c.Param("mode"))
	if err != nil || mode < 0 {
		fail(c, http.StatusNotFound, "invalid mode")
		return
	}
	m, err := h.store.SetMode(id, mode)
	if err != nil {
		storeError(c, err)
		return
	}
	success(c, http.StatusOK, m)
}

func (h *Handler) sensorData(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	start, err := time.Parse(time.RFC3339, c.Param("start"))
	if err != nil {
		fail(c, http.StatusNotFound, "invalid start date")
		return
	}
	end, err := time.Parse(time.RFC3339, c.Param("end"))
	if err != nil {
		fail(c, http.StatusNotFound, "invalid end date")
		return
	}
	data, err := h.store.Data(id, start, end)
	if err != nil {
		storeError(c, err)
		return
	}
	success(c, http.StatusOK, data)
}

func (h *Handler) setVariables(c *gin.Context) {
	var req models.Variables
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	signals, err := h.store.SetVariables(req.SensorID, req.Values)
	if err != nil {
		serverError(c, err)
		return
	}
	success(c, http.StatusOK, signals)
}
