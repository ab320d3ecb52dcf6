package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/recipe-box/internal/app/model"
	"github.com/ikkim/recipe-box/internal/app/repository"
	"github.com/ikkim/recipe-box/internal/app/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTargetControllerTest(t *testing.T) (*gin.Engine, string) {
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "blackbox_targets.json")
	svc := service.NewTargetService(repository.NewTargetRepository(path), "", time.Second)
	ctrl := NewTargetController(svc)

	router := gin.New()
	router.GET("/load", ctrl.Load)
	router.POST("/save", ctrl.Save)
	return router, path
}

func TestTargetController_SaveThenLoad(t *testing.T) {
	router, path := setupTargetControllerTest(t)

	body := `[
		{"group": "web", "targets": ["https://a.example", "  "]},
		{"targets": ["https://no-group.example"]},
		{"group": "empty", "targets": [""]},
		"not an object"
	]`
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/save", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, MsgTargetsSaved, w.Body.String())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var stored []model.TargetFileEntry
	require.NoError(t, json.Unmarshal(raw, &stored))
	assert.Equal(t, []model.TargetFileEntry{{
		Labels:  model.TargetLabels{Job: "blackbox_http", Group: "web"},
		Targets: []string{"https://a.example"},
	}}, stored)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/load", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"name":"web","targets":["https://a.example"]}]`, w.Body.String())
}

func TestTargetController_SaveInvalidInput(t *testing.T) {
	router, path := setupTargetControllerTest(t)

	for _, body := range []string{`{"group":"web"}`, `null`, `not json`} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/save", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, MsgInvalidTargets, w.Body.String())
	}

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestTargetController_LoadEmpty(t *testing.T) {
	router, _ := setupTargetControllerTest(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/load", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
