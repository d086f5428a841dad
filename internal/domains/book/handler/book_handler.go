package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/service"
	"library-backend/internal/shared/response"
	"library-backend/pkg/apperror"
)

// Handler - book HTTP handler
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers the book routes under /books
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	books := router.Group("/books")
	{
		books.GET("/with-authors/:id", h.GetBookWithAuthors)   // GET /api/v1/books/with-authors/1
		books.POST("/with-authors", h.RegisterBookWithAuthors) // POST /api/v1/books/with-authors
		books.DELETE("/with-authors-list/:id", h.DeleteBook)   // DELETE /api/v1/books/with-authors-list/1
	}
}

// GetBookWithAuthors - GET /api/v1/books/with-authors/:id
func (h *Handler) GetBookWithAuthors(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	book, err := h.service.FindBookByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, book)
}

// RegisterBookWithAuthors - POST /api/v1/books/with-authors
// Body: {title, publicationDate (dd/MM/yyyy), onlineAvailability, authorIdList}
func (h *Handler) RegisterBookWithAuthors(c *gin.Context) {
	var req model.RegisterBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest("invalid request body: "+err.Error(), err))
		return
	}

	if _, err := h.service.SaveBook(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c)
}

// DeleteBook - DELETE /api/v1/books/with-authors-list/:id
func (h *Handler) DeleteBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if _, err := h.service.DeleteBookByID(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, apperror.BadRequest("invalid book id: "+c.Param("id"), err))
		return 0, false
	}
	return id, true
}
