package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorPageTemplate is the HTML template rendered for page errors
const ErrorPageTemplate = "error.html"

// ErrorResponse 표준 에러 응답 구조
type ErrorResponse struct {
	Error   string `json:"error"`   // 에러 코드
	Message string `json:"message"` // 사용자 메시지
}

// RespondWithError 에러 응답 헬퍼
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// RespondWithParsedError maps err and writes it as JSON
func RespondWithParsedError(c *gin.Context, err error) {
	info := ParseError(err)
	RespondWithError(c, info.Status, info.Code, info.Message)
}

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = internalError().Message
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}

// RenderErrorPage 에러 페이지 렌더링
func RenderErrorPage(c *gin.Context, statusCode int, message string) {
	c.HTML(statusCode, ErrorPageTemplate, gin.H{
		"PageTitle": http.StatusText(statusCode),
		"Status":    statusCode,
		"Title":     http.StatusText(statusCode),
		"Message":   message,
	})
}

// RenderParsedErrorPage maps err and renders the error page
func RenderParsedErrorPage(c *gin.Context, err error) {
	info := ParseError(err)
	RenderErrorPage(c, info.Status, info.Message)
}
