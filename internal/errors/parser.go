package errors

import (
	"errors"
	"net/http"

	"github.com/ikkim/recipe-box/internal/app/repository"
	"github.com/ikkim/recipe-box/internal/app/service"
	"github.com/ikkim/recipe-box/internal/middleware"
	"github.com/ikkim/recipe-box/pkg/importer"
)

// ErrorInfo 에러 정보 구조
type ErrorInfo struct {
	Code    string // 에러 코드 (codes.go 참조)
	Message string // 사용자에게 보여줄 메시지
	Status  int
}

// ParseError 에러를 코드/메시지/상태 코드로 변환.
// Messages never include the wrapped cause, so file paths and I/O details
// stay in the logs.
func ParseError(err error) ErrorInfo {
	if err == nil {
		return internalError()
	}

	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return ErrorInfo{Code: ValidationInvalidInput, Message: verr.Error(), Status: http.StatusBadRequest}
	}

	switch {
	case errors.Is(err, middleware.ErrInvalidCSRF):
		return ErrorInfo{Code: AccessInvalidCSRF, Message: "Invalid CSRF token.", Status: http.StatusForbidden}
	case errors.Is(err, middleware.ErrInvalidPIN):
		return ErrorInfo{Code: AccessInvalidPIN, Message: "Invalid PIN.", Status: http.StatusForbidden}

	case errors.Is(err, repository.ErrRecipeNotFound):
		return ErrorInfo{Code: RecipeNotFound, Message: "Recipe not found.", Status: http.StatusNotFound}
	case errors.Is(err, repository.ErrInvalidDocument):
		return ErrorInfo{Code: RecipeInvalidDocument, Message: "This recipe could not be read.", Status: http.StatusInternalServerError}
	case errors.Is(err, repository.ErrSlugExhausted):
		return ErrorInfo{Code: RecipeSlugExhausted, Message: "Could not find a free name for this recipe.", Status: http.StatusConflict}

	case errors.Is(err, service.ErrEmptyUpload):
		return ErrorInfo{Code: UploadEmpty, Message: "The uploaded file is empty.", Status: http.StatusBadRequest}
	case errors.Is(err, service.ErrUploadTooLarge):
		return ErrorInfo{Code: UploadTooLarge, Message: "The uploaded file is too large.", Status: http.StatusRequestEntityTooLarge}
	case errors.Is(err, service.ErrUnsupportedImage):
		return ErrorInfo{Code: UploadUnsupported, Message: "Only JPEG, PNG, WebP and GIF images are accepted.", Status: http.StatusUnsupportedMediaType}

	case errors.Is(err, importer.ErrInvalidURL):
		return ErrorInfo{Code: ValidationInvalidURL, Message: "Please enter a valid http(s) URL.", Status: http.StatusBadRequest}
	case errors.Is(err, importer.ErrNetworkError), errors.Is(err, importer.ErrInvalidConfig):
		return ErrorInfo{Code: ImportUnavailable, Message: "Could not reach the import service.", Status: http.StatusBadGateway}
	case errors.Is(err, importer.ErrUpstreamStatus):
		return ErrorInfo{Code: ImportUpstreamError, Message: "The import service returned an error.", Status: http.StatusBadGateway}
	case errors.Is(err, importer.ErrInvalidResponse):
		return ErrorInfo{Code: ImportInvalidResponse, Message: "The import service returned an invalid response.", Status: http.StatusBadGateway}
	case errors.Is(err, importer.ErrMissingTitle):
		return ErrorInfo{Code: ImportMissingTitle, Message: "The imported recipe has no title.", Status: http.StatusUnprocessableEntity}
	}

	return internalError()
}

func internalError() ErrorInfo {
	return ErrorInfo{
		Code:    InternalServerError,
		Message: "Something went wrong. Please try again later.",
		Status:  http.StatusInternalServerError,
	}
}
