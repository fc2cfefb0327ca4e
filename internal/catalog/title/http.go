package title

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/minhngyn/opusdb/internal/platform/middleware"
	requestutil "github.com/minhngyn/opusdb/internal/platform/request"
	"github.com/minhngyn/opusdb/internal/platform/respond"
	"github.com/minhngyn/opusdb/internal/platform/sec"
	"github.com/minhngyn/opusdb/pkg/pagination"
	"github.com/minhngyn/opusdb/pkg/query"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listTitles)
	router.Get("/{titleID}", handler.getTitle)

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Post("/", handler.createTitle)
		adminRoute.Patch("/{titleID}", handler.updateTitle)
		adminRoute.Delete("/{titleID}", handler.deleteTitle)
	})
}

func (handler *Handler) listTitles(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	params := request.URL.Query()

	filter := Filter{
		Names:        query.Multi(params["name"]),
		CategorySlug: params.Get("category"),
		GenreSlugs:   query.Multi(params["genre"]),
	}
	if year, ok := query.Int(params.Get("year")); ok {
		filter.Year = &year
	}

	titles, total, err := handler.service.ListTitles(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, titles, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getTitle(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.GetTitle(request.Context(), titleID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, title)
}

func (handler *Handler) createTitle(writer http.ResponseWriter, request *http.Request) {
	var input Input

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.CreateTitle(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, title)
}

func (handler *Handler) updateTitle(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.UpdateTitle(request.Context(), titleID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, title)
}

func (handler *Handler) deleteTitle(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteTitle(request.Context(), titleID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
