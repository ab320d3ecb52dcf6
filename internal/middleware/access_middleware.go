package middleware

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/recipe-box/config"
	"github.com/ikkim/recipe-box/internal/metrics"
	"github.com/ikkim/recipe-box/pkg/util"
)

const (
	CSRFFormField = "csrf"
	CSRFHeader    = "X-CSRF-Token"
	PINFormField  = "admin_pin"
)

var (
	ErrInvalidCSRF = errors.New("invalid CSRF token")
	ErrInvalidPIN  = errors.New("invalid PIN")
)

// AccessControl guards mutating requests: every mutation needs a CSRF token
// bound to the session, admin mutations also need the shared PIN.
// Failed PIN attempts are not throttled.
type AccessControl struct {
	csrfSecret   string
	tokenTTL     time.Duration
	adminPIN     string
	adminPINHash string
}

func NewAccessControl(cfg config.SecurityConfig) *AccessControl {
	return &AccessControl{
		csrfSecret:   cfg.CSRFSecret,
		tokenTTL:     cfg.CSRFTokenTTL,
		adminPIN:     cfg.AdminPIN,
		adminPINHash: cfg.AdminPINHash,
	}
}

// IssueToken returns a CSRF token for the current session
func (a *AccessControl) IssueToken(c *gin.Context) (string, error) {
	return util.GenerateCSRFToken(GetSessionID(c), a.csrfSecret, a.tokenTTL)
}

// CheckCSRF validates the token from the form field or the X-CSRF-Token header
func (a *AccessControl) CheckCSRF(c *gin.Context) error {
	token := c.PostForm(CSRFFormField)
	if token == "" {
		token = c.GetHeader(CSRFHeader)
	}

	sessionID := GetSessionID(c)
	if token == "" || sessionID == "" {
		return a.deny(c, "csrf", ErrInvalidCSRF, "missing token or session")
	}
	if err := util.ValidateCSRFToken(token, sessionID, a.csrfSecret); err != nil {
		return a.deny(c, "csrf", ErrInvalidCSRF, err.Error())
	}
	return nil
}

// CheckPIN compares the submitted admin_pin with the configured secret.
// A configured bcrypt hash takes precedence over the plain PIN.
func (a *AccessControl) CheckPIN(c *gin.Context) error {
	// compared as submitted, surrounding whitespace included
	submitted := c.PostForm(PINFormField)
	if submitted == "" {
		return a.deny(c, "pin", ErrInvalidPIN, "missing PIN")
	}

	var ok bool
	if a.adminPINHash != "" {
		ok = util.VerifyPINHash(a.adminPINHash, submitted)
	} else {
		ok = util.ComparePIN(a.adminPIN, submitted)
	}
	if !ok {
		return a.deny(c, "pin", ErrInvalidPIN, "PIN mismatch")
	}
	return nil
}

// Authorize runs the CSRF check and, when requirePIN is set, the PIN check.
// CSRF is always checked first.
func (a *AccessControl) Authorize(c *gin.Context, requirePIN bool) error {
	if err := a.CheckCSRF(c); err != nil {
		return err
	}
	if requirePIN {
		return a.CheckPIN(c)
	}
	return nil
}

func (a *AccessControl) deny(c *gin.Context, check string, err error, reason string) error {
	metrics.AccessDenied.WithLabelValues(check).Inc()
	GetLoggerFromContext(c).Warn("Access denied", map[string]interface{}{
		"check":  check,
		"reason": reason,
		"path":   c.Request.URL.Path,
	})
	return err
}
