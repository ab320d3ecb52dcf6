package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/recipe-box/internal/middleware"
	"github.com/ikkim/recipe-box/pkg/logger"
	"github.com/ikkim/recipe-box/pkg/redis"
)

const (
	TypeSuccess = "success"
	TypeDanger  = "danger"

	cookieName = "recipebox_flash"
)

// Message is shown once on the page a redirect lands on
type Message struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func Success(text string) Message {
	return Message{Type: TypeSuccess, Text: text}
}

func Danger(text string) Message {
	return Message{Type: TypeDanger, Text: text}
}

// Store keeps at most one pending message per visitor
type Store interface {
	Set(c *gin.Context, msg Message)
	// Pop returns and clears the pending message, nil when there is none
	Pop(c *gin.Context) *Message
}

// CookieStore keeps the message in a short lived cookie
type CookieStore struct {
	ttl    time.Duration
	secure bool
}

func NewCookieStore(ttl time.Duration, secure bool) *CookieStore {
	return &CookieStore{ttl: ttl, secure: secure}
}

func (s *CookieStore) Set(c *gin.Context, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookieName, base64.RawURLEncoding.EncodeToString(data), int(s.ttl.Seconds()), "/", "", s.secure, true)
}

func (s *CookieStore) Pop(c *gin.Context) *Message {
	raw, err := c.Cookie(cookieName)
	if err != nil || raw == "" {
		return nil
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookieName, "", -1, "/", "", s.secure, true)

	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	return decode(data)
}

// RedisStore keeps the message in Redis keyed by the session id
type RedisStore struct {
	ttl time.Duration
}

func NewRedisStore(ttl time.Duration) *RedisStore {
	return &RedisStore{ttl: ttl}
}

func (s *RedisStore) Set(c *gin.Context, msg Message) {
	sessionID := middleware.GetSessionID(c)
	if sessionID == "" {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := redis.SetFlash(c.Request.Context(), sessionID, data, s.ttl); err != nil {
		logger.Warn("Flash message dropped", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *RedisStore) Pop(c *gin.Context) *Message {
	sessionID := middleware.GetSessionID(c)
	if sessionID == "" {
		return nil
	}
	data, err := redis.PopFlash(c.Request.Context(), sessionID)
	if err != nil || data == nil {
		return nil
	}
	return decode(data)
}

func decode(data []byte) *Message {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil || msg.Text == "" {
		return nil
	}
	if msg.Type != TypeSuccess {
		msg.Type = TypeDanger
	}
	return &msg
}
