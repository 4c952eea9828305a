package v1

import (
	"net/http"

	"go-posting-workflow/internal/delivery/http/response"
	"go-posting-workflow/internal/domain"
	"go-posting-workflow/internal/usecase"
	"go-posting-workflow/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type TemplateHandler struct {
	templates *usecase.TemplateUsecase
}

func NewTemplateHandler(protected *gin.RouterGroup, templates *usecase.TemplateUsecase) {
	handler := &TemplateHandler{templates: templates}

	group := protected.Group("/templates")
	{
		group.GET("", handler.List)
		group.GET("/:id", handler.Get)
		group.POST("", handler.Save)
		group.DELETE("/:id", handler.Delete)
	}
}

// List returns the pre-built templates followed by the author's saved ones.
func (h *TemplateHandler) List(c *gin.Context) {
	authorID := c.GetString(string(domain.KeyUserID))
	templates, err := h.templates.List(c.Request.Context(), authorID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Templates retrieved", templates)
}

func (h *TemplateHandler) Get(c *gin.Context) {
	authorID := c.GetString(string(domain.KeyUserID))
	tpl, err := h.templates.Get(c.Request.Context(), authorID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Template retrieved", tpl)
}

func (h *TemplateHandler) Save(c *gin.Context) {
	authorID := c.GetString(string(domain.KeyUserID))

	var in usecase.SaveTemplateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	tpl, err := h.templates.Save(c.Request.Context(), authorID, in)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Template saved", tpl)
}

func (h *TemplateHandler) Delete(c *gin.Context) {
	authorID := c.GetString(string(domain.KeyUserID))
	if err := h.templates.Delete(c.Request.Context(), authorID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Template deleted", nil)
}
