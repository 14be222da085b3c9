package api

import (
	"net/http"
	"strconv"
	"strings"

	"backoffice-service/internal/store"

	"github.com/gin-gonic/gin"
)

// SuccessResponse is the uniform success envelope.
type SuccessResponse struct {
	Success       bool  `json:"success"`
	Data          any   `json:"data"`
	PageNumber    *int  `json:"pageNumber,omitempty"`
	TotalPages    *int  `json:"totalPages,omitempty"`
	TotalElements *int64 `json:"totalElements,omitempty"`
}

// FailureResponse is the uniform failure envelope used by handlers and
// the auth middleware.
type FailureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
}

// PageData is the type-erased page a resource hands back to the generic
// dispatch handler.
type PageData struct {
	Content       any
	Number        int
	TotalPages    int
	TotalElements int64
}

func pageData[T any](page store.Page[T]) PageData {
	return PageData{
		Content:       page.Content,
		Number:        page.Number,
		TotalPages:    page.TotalPages,
		TotalElements: page.TotalElements,
	}
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, SuccessResponse{Success: true, Data: data})
}

func respondPage(c *gin.Context, page PageData) {
	c.JSON(http.StatusOK, SuccessResponse{
		Success:       true,
		Data:          page.Content,
		PageNumber:    &page.Number,
		TotalPages:    &page.TotalPages,
		TotalElements: &page.TotalElements,
	})
}

// pageRequest reads the uniform pagination query parameters.
func pageRequest(c *gin.Context) store.PageRequest {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(store.DefaultPageSize)))
	return store.PageRequest{
		Page:    page,
		Size:    size,
		SortBy:  c.DefaultQuery("sortBy", "id"),
		SortDir: c.DefaultQuery("sortDir", "asc"),
	}
}

func wantsDeleted(c *gin.Context) bool {
	return strings.EqualFold(c.Query("deleted"), "true")
}
