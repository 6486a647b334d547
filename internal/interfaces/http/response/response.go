package response

import (
	"github.com/gin-gonic/gin"
	domainerrors "pfp-registry.backend/internal/domain/errors"
	"pfp-registry.backend/pkg/utils"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Paginated sends a list response with pagination metadata
func Paginated(c *gin.Context, status int, data interface{}, meta utils.PaginationMeta) {
	c.JSON(status, gin.H{
		"data":       data,
		"pagination": meta,
	})
}

// Error sends an error response. Non-AppError values collapse into a 500
// so internal details never leak to clients.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if e, ok := err.(*domainerrors.AppError); ok {
		appErr = e
	} else {
		appErr = domainerrors.InternalError(err)
	}

	c.JSON(appErr.Status, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}

// ErrorWithStatus sends an error response with an explicit status and code
func ErrorWithStatus(c *gin.Context, status int, code string, message string) {
	c.JSON(status, gin.H{
		"code":    code,
		"message": message,
	})
}
