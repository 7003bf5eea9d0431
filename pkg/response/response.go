package response

import "github.com/gin-gonic/gin"

// Every endpoint answers with the same envelope:
//
//	success: { "success": true,  "message": ..., "data": ... }
//	failure: { "success": false, "message": ..., "errors": [...] }

// Success writes the success envelope. A nil payload becomes an empty object.
func Success(c *gin.Context, code int, message string, data interface{}) {
	if data == nil {
		data = gin.H{}
	}
	c.JSON(code, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// Error writes the error envelope. A nil detail list becomes an empty list.
func Error(c *gin.Context, code int, message string, errs interface{}) {
	if errs == nil {
		errs = []interface{}{}
	}
	c.JSON(code, gin.H{
		"success": false,
		"message": message,
		"errors":  errs,
	})
}
