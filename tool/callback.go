package tool

import (
	"maps"

	"github.com/gin-gonic/gin"
)

// Response envelopes shared by every controller: failures carry an "error"
// key, payloads ride under "data".

func FastReturnError(msg string) gin.H {
	return gin.H{
		"error": msg,
	}
}

func FastReturnSuccess() gin.H {
	return gin.H{
		"status": "ok",
	}
}

func FastReturnSuccessWithData(data any) gin.H {
	return gin.H{
		"data": data,
	}
}

// FastReturnErrorWithData flattens extra context (command outcomes, mostly)
// into the error envelope.
func FastReturnErrorWithData(msg string, data map[string]any) gin.H {
	resp := gin.H{
		"error": msg,
	}
	maps.Copy(resp, data)
	return resp
}
