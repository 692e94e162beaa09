package book

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"bookshelf/internal/httpx"
)

type HTTPHandler struct {
	service *Service
	errs    *httpx.ErrorTranslator
}

func NewHTTPHandler(service *Service, errs *httpx.ErrorTranslator) *HTTPHandler {
	return &HTTPHandler{service: service, errs: errs}
}

// Get handles GET /api/books/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	b, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONMessage(w, http.StatusNotFound, fmt.Sprintf("No book was found with the id of %s", id))
			return
		}
		h.errs.Handle(w, r, err)
		return
	}

	httpx.JSONOK(w, map[string]any{"book": b})
}

// Search handles GET /api/books/search?query=&limit=
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, _ := strconv.Atoi(query.Get("limit"))

	books, err := h.service.Search(r.Context(), query.Get("query"), limit)
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	httpx.JSONOK(w, map[string]any{"books": books})
}
