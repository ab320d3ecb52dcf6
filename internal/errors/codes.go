package errors

// 에러 코드 상수 정의
// 형식: CATEGORY_SPECIFIC_DETAIL

const (
	// ==================== 접근 제어 (ACCESS_) ====================
	AccessInvalidCSRF = "ACCESS_INVALID_CSRF" // CSRF 토큰 불일치
	AccessInvalidPIN  = "ACCESS_INVALID_PIN"  // 관리자 PIN 불일치

	// ==================== 검증 (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // 잘못된 입력
	ValidationInvalidURL   = "VALIDATION_INVALID_URL"   // 잘못된 URL

	// ==================== 레시피 (RECIPE_) ====================
	RecipeNotFound        = "RECIPE_NOT_FOUND"        // 레시피 없음
	RecipeInvalidDocument = "RECIPE_INVALID_DOCUMENT" // 손상된 레시피 문서
	RecipeSlugExhausted   = "RECIPE_SLUG_EXHAUSTED"   // slug 할당 실패

	// ==================== 업로드 (UPLOAD_) ====================
	UploadEmpty       = "UPLOAD_EMPTY"        // 빈 파일
	UploadTooLarge    = "UPLOAD_TOO_LARGE"    // 용량 초과
	UploadUnsupported = "UPLOAD_UNSUPPORTED"  // 지원하지 않는 형식

	// ==================== 가져오기 (IMPORT_) ====================
	ImportUnavailable     = "IMPORT_UNAVAILABLE"      // 웹훅 연결 실패
	ImportUpstreamError   = "IMPORT_UPSTREAM_ERROR"   // 웹훅 오류 응답
	ImportInvalidResponse = "IMPORT_INVALID_RESPONSE" // 잘못된 응답
	ImportMissingTitle    = "IMPORT_MISSING_TITLE"    // 제목 없음

	// ==================== 모니터링 (TARGETS_) ====================
	TargetsInvalidInput = "TARGETS_INVALID_INPUT" // 잘못된 타겟 목록

	// ==================== 서버 (INTERNAL_) ====================
	InternalServerError = "INTERNAL_SERVER_ERROR" // 서버 오류
	InternalStorage     = "INTERNAL_STORAGE"      // 파일 저장 실패
)
