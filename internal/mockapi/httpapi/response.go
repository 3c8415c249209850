package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/sgrsensor/internal/common"
	"github.com/gin-gonic/gin"
)

const unauthorizedMessage = "Please, sign in to get access."

func success(c *gin.Context, code int, data any) {
	c.JSON(code, gin.H{"status": common.StatusSuccess, "data": data})
}

func fail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"status": common.StatusFail, "message": message})
}

func serverError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"status": common.StatusError, "message": err.Error()})
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": common.StatusUnauthorized, "message": unauthorizedMessage})
}
