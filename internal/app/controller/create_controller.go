package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/recipe-box/internal/app/model"
	"github.com/ikkim/recipe-box/internal/app/service"
	apperrors "github.com/ikkim/recipe-box/internal/errors"
	"github.com/ikkim/recipe-box/internal/flash"
	"github.com/ikkim/recipe-box/internal/middleware"
	"github.com/ikkim/recipe-box/internal/web"
)

// CreateController serves /new: the URL import draft and the manual create form
type CreateController struct {
	pages
	recipeService service.RecipeService
	importService service.ImportService
}

func NewCreateController(
	recipeService service.RecipeService,
	importService service.ImportService,
	access *middleware.AccessControl,
	flashStore flash.Store,
) *CreateController {
	return &CreateController{
		pages:         pages{access: access, flash: flashStore},
		recipeService: recipeService,
		importService: importService,
	}
}

// Show 새 레시피 폼
func (ctrl *CreateController) Show(c *gin.Context) {
	ctrl.render(c, http.StatusOK, newPage{Form: emptyForm()})
}

// Post URL 가져오기(초안) 또는 수동 생성
func (ctrl *CreateController) Post(c *gin.Context) {
	if recipeURL, isImport := c.GetPostForm("url"); isImport {
		ctrl.importDraft(c, strings.TrimSpace(recipeURL))
		return
	}

	input := readRecipeInput(c)
	submitted, _ := service.NormalizeRecipeInput(input)

	if err := ctrl.access.Authorize(c, true); err != nil {
		info := apperrors.ParseError(err)
		ctrl.render(c, info.Status, newPage{Form: submitted, Errors: []string{info.Message}})
		return
	}

	slug, err := ctrl.recipeService.CreateRecipe(input)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrValidation) {
			status = http.StatusBadRequest
		}
		ctrl.render(c, status, newPage{Form: submitted, Errors: validationMessages(err)})
		return
	}

	ctrl.redirectWith(c, recipeURL(slug), flash.Success(MsgRecipeCreated))
}

// importDraft never saves: the draft only prefills the create form
func (ctrl *CreateController) importDraft(c *gin.Context, recipeURL string) {
	if err := ctrl.access.CheckCSRF(c); err != nil {
		info := apperrors.ParseError(err)
		ctrl.render(c, info.Status, newPage{Form: emptyForm(), ImportURL: recipeURL, Errors: []string{info.Message}})
		return
	}

	draft, err := ctrl.importService.Draft(c.Request.Context(), recipeURL)
	if err != nil {
		ctrl.render(c, http.StatusOK, newPage{Form: emptyForm(), ImportURL: recipeURL, Errors: validationMessages(err)})
		return
	}

	ctrl.render(c, http.StatusOK, newPage{Form: *draft, ImportURL: recipeURL, Message: MsgRecipeFetched})
}

type newPage struct {
	Form      model.RecipeContent
	ImportURL string
	Message   string
	Errors    []string
}

func (ctrl *CreateController) render(c *gin.Context, status int, page newPage) {
	data := ctrl.data(c, "New Recipe")
	data["Form"] = page.Form
	data["ImportURL"] = page.ImportURL
	data["Message"] = page.Message
	data["Errors"] = page.Errors
	c.HTML(status, web.NewPage, data)
}
