package controller

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/recipe-box/config"
	"github.com/ikkim/recipe-box/internal/app/repository"
	"github.com/ikkim/recipe-box/internal/app/service"
	"github.com/ikkim/recipe-box/internal/flash"
	"github.com/ikkim/recipe-box/internal/middleware"
	"github.com/ikkim/recipe-box/internal/storage"
	"github.com/ikkim/recipe-box/internal/web"
	"github.com/ikkim/recipe-box/pkg/util"
	"github.com/stretchr/testify/require"
)

const (
	testPIN        = "2468"
	testCSRFSecret = "controller-test-secret"
	testSessionID  = "0f0e0d0c-0b0a-4908-8706-050403020100"
	testCookie     = "recipebox_session"
)

type testApp struct {
	router     *gin.Engine
	recipeRepo repository.RecipeRepository
	recipesDir string
	uploadsDir string
	csrf       string
}

func setupTestApp(t *testing.T, fetcher service.RecipeFetcher) *testApp {
	gin.SetMode(gin.TestMode)

	root := t.TempDir()
	recipesDir := filepath.Join(root, "recipes")
	uploadsDir := filepath.Join(root, "uploads")

	photos := storage.NewLocalStorage(uploadsDir, "/uploads/recipes")
	recipeRepo, err := repository.NewRecipeRepository(recipesDir, photos)
	require.NoError(t, err)

	security := config.SecurityConfig{
		AdminPIN:      testPIN,
		CSRFSecret:    testCSRFSecret,
		CSRFTokenTTL:  time.Hour,
		SessionCookie: testCookie,
	}
	access := middleware.NewAccessControl(security)
	flashStore := flash.NewCookieStore(time.Minute, false)

	recipeService := service.NewRecipeService(recipeRepo)
	reviewService := service.NewReviewService(recipeRepo, service.NewUploadService(photos))
	if fetcher == nil {
		fetcher = &stubFetcher{}
	}
	importService := service.NewImportService(fetcher)

	recipeController := NewRecipeController(recipeService, reviewService, access, flashStore)
	editController := NewEditController(recipeService, access, flashStore)
	createController := NewCreateController(recipeService, importService, access, flashStore)

	templates, err := web.Templates()
	require.NoError(t, err)

	router := gin.New()
	router.SetHTMLTemplate(templates)
	router.Use(middleware.Session(testCookie, false))
	router.GET("/", recipeController.Index)
	router.GET("/recipe", recipeController.Show)
	router.POST("/recipe", recipeController.Post)
	router.GET("/edit", editController.Show)
	router.POST("/edit", editController.Post)
	router.GET("/new", createController.Show)
	router.POST("/new", createController.Post)

	token, err := util.GenerateCSRFToken(testSessionID, testCSRFSecret, time.Hour)
	require.NoError(t, err)

	return &testApp{
		router:     router,
		recipeRepo: recipeRepo,
		recipesDir: recipesDir,
		uploadsDir: uploadsDir,
		csrf:       token,
	}
}

func (a *testApp) get(target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: testSessionID})
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) postForm(target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: testCookie, Value: testSessionID})
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) postMultipart(t *testing.T, target string, fields map[string]string, fileField, fileName string, file []byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileField != "" {
		part, err := mw.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(&http.Cookie{Name: testCookie, Value: testSessionID})
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// createPancakes stores a recipe through the service and returns its slug
func (a *testApp) createPancakes(t *testing.T) string {
	slug, err := service.NewRecipeService(a.recipeRepo).CreateRecipe(service.RecipeInput{
		Title:           "Pancakes",
		Description:     "Fluffy and quick",
		Tags:            "breakfast, sweet",
		IngredientNames: []string{"flour", "milk"},
		Steps:           []string{"Whisk", "Fry"},
	})
	require.NoError(t, err)
	return slug
}

func recipeForm(csrf, pin string) url.Values {
	return url.Values{
		"csrf":        {csrf},
		"admin_pin":   {pin},
		"title":       {"Banana Bread"},
		"description": {"Moist loaf"},
		"tags":        {"baking, sweet"},
		"ing_name[]":  {"banana", "flour"},
		"ing_qty[]":   {"3", "250"},
		"ing_unit[]":  {"", "g"},
		"steps[]":     {"Mash bananas", "Bake 60 minutes"},
	}
}

func flashCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == "recipebox_flash" {
			return c
		}
	}
	return nil
}

func httptestGetWithCookies(target string, cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: testSessionID})
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func serve(a *testApp, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}
