package v1

import (
	"net/http"
	"strconv"

	"go-posting-workflow/internal/delivery/http/response"
	"go-posting-workflow/internal/domain"

	"github.com/gin-gonic/gin"
)

type PostingHandler struct {
	store domain.PostingStore
}

func NewPostingHandler(public *gin.RouterGroup, store domain.PostingStore) {
	handler := &PostingHandler{store: store}
	public.GET("/postings/public", handler.PublicList)
}

// PublicList returns active postings with simple page/limit pagination.
func (h *PostingHandler) PublicList(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}

	postings, total, err := h.store.FetchActive(c.Request.Context(), limit, (page-1)*limit)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Postings retrieved", gin.H{
		"postings": postings,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}
