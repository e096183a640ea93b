package handlers

import (
	"github.com/gin-gonic/gin"

	apperr "github.com/thereayou/whisper/pkg/errors"
)

// respondError переводит доменную ошибку в HTTP статус и тело
func respondError(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
}
