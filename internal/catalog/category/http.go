package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/minhngyn/opusdb/internal/platform/middleware"
	requestutil "github.com/minhngyn/opusdb/internal/platform/request"
	"github.com/minhngyn/opusdb/internal/platform/respond"
	"github.com/minhngyn/opusdb/internal/platform/sec"
	"github.com/minhngyn/opusdb/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listCategories)
	router.Get("/{slug}", handler.getCategory)

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Post("/", handler.createCategory)
		adminRoute.Delete("/{slug}", handler.deleteCategory)
	})
}

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	categories, total, err := handler.service.ListCategories(request.Context(), search, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, categories, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getCategory(writer http.ResponseWriter, request *http.Request) {
	categorySlug := requestutil.Param(request, "slug")

	found, err := handler.service.GetCategory(request.Context(), categorySlug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input Category

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateCategory(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	categorySlug := requestutil.Param(request, "slug")

	if err := handler.service.DeleteCategory(request.Context(), categorySlug); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
