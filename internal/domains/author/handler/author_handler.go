package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/author/filter"
	"library-backend/internal/domains/author/model"
	"library-backend/internal/domains/author/service"
	"library-backend/internal/shared"
	"library-backend/internal/shared/pagination"
	"library-backend/internal/shared/response"
	"library-backend/pkg/apperror"
)

const MsgRecordUpdated = "Record updated"

type AuthorHandler struct {
	service service.ServiceInterface
}

func NewAuthorHandler(svc service.ServiceInterface) *AuthorHandler {
	return &AuthorHandler{
		service: svc,
	}
}

// RegisterRoutes registers the author routes under /authors
func (h *AuthorHandler) RegisterRoutes(router *gin.RouterGroup) {
	authors := router.Group("/authors")
	{
		authors.POST("", h.Create)                       // POST /api/v1/authors
		authors.GET("/specifications", h.ListByCriteria) // GET /api/v1/authors/specifications?q=&birthdate=
		authors.GET("/specs", h.ListComposed)            // GET /api/v1/authors/specs?q=&birthdate=
		authors.GET("/paginated", h.ListPaginated)       // GET /api/v1/authors/paginated?pageNumber=0&pageSize=5&sort=id,asc
		authors.GET("/:id", h.GetByID)                   // GET /api/v1/authors/1
		authors.PUT("/:id", h.Update)                    // PUT /api/v1/authors/1
		authors.DELETE("/:id", h.Delete)                 // DELETE /api/v1/authors/1
	}
}

// ════════════════════════════════════════════════════════════════
// GET /api/v1/authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	author, err := h.service.FindAuthorByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, author)
}

// ════════════════════════════════════════════════════════════════
// POST /api/v1/authors
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Create(c *gin.Context) {
	var req model.AuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest("invalid request body: "+err.Error(), err))
		return
	}

	if _, err := h.service.SaveAuthor(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c)
}

// ════════════════════════════════════════════════════════════════
// PUT /api/v1/authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.AuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest("invalid request body: "+err.Error(), err))
		return
	}

	updated, err := h.service.UpdateAuthor(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, MsgRecordUpdated, updated)
}

// ════════════════════════════════════════════════════════════════
// DELETE /api/v1/authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if _, err := h.service.DeleteAuthorByID(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ════════════════════════════════════════════════════════════════
// GET /api/v1/authors/specifications?q=&birthdate=
// ════════════════════════════════════════════════════════════════

// ListByCriteria builds the whole search from the query at once
func (h *AuthorHandler) ListByCriteria(c *gin.Context) {
	criteria, ok := parseCriteria(c)
	if !ok {
		return
	}

	h.list(c, filter.FromCriteria(criteria))
}

// ════════════════════════════════════════════════════════════════
// GET /api/v1/authors/specs?q=&birthdate=
// ════════════════════════════════════════════════════════════════

// ListComposed chains one predicate per parameter
func (h *AuthorHandler) ListComposed(c *gin.Context) {
	criteria, ok := parseCriteria(c)
	if !ok {
		return
	}

	h.list(c, filter.And(filter.BirthdateEquals(criteria.Birthdate), filter.FullNameContains(criteria.Q)))
}

func (h *AuthorHandler) list(c *gin.Context, p filter.Predicate) {
	authors, err := h.service.FindAllWithPredicate(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, authors)
}

// ════════════════════════════════════════════════════════════════
// GET /api/v1/authors/paginated?q=&birthdate=&pageNumber=&pageSize=&sort=
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) ListPaginated(c *gin.Context) {
	criteria, ok := parseCriteria(c)
	if !ok {
		return
	}

	number, err := intQuery(c, "pageNumber", pagination.DefaultPageNumber)
	if err != nil {
		response.Error(c, err)
		return
	}
	size, err := intQuery(c, "pageSize", pagination.DefaultPageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	sort, err := pagination.ParseSort(c.QueryArray("sort"), model.SortableFields)
	if err != nil {
		response.Error(c, err)
		return
	}

	page, err := h.service.FindAllPaginated(c.Request.Context(), filter.FromCriteria(criteria), pagination.NewPageRequest(number, size, sort))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, page)
}

// ==================== PARAMS ====================

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, apperror.BadRequest("invalid author id: "+c.Param("id"), err))
		return 0, false
	}
	return id, true
}

func parseCriteria(c *gin.Context) (filter.Criteria, bool) {
	birthdate, err := shared.ParseOptionalDate(c.Query("birthdate"))
	if err != nil {
		response.Error(c, apperror.BadRequest("birthdate must use the dd/MM/yyyy format", err))
		return filter.Criteria{}, false
	}

	return filter.Criteria{
		Q:         c.Query("q"),
		Birthdate: birthdate.TimePtr(),
	}, true
}

func intQuery(c *gin.Context, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.BadRequest(key+" must be an integer", err)
	}
	return n, nil
}
