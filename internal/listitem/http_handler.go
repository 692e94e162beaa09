package listitem

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"bookshelf/internal/book"
	"bookshelf/internal/httpx"
)

// ItemHandlerFunc handles a request for a list item the caller owns.
type ItemHandlerFunc func(w http.ResponseWriter, r *http.Request, item ListItem)

type HTTPHandler struct {
	service *Service
	errs    *httpx.ErrorTranslator
}

func NewHTTPHandler(service *Service, errs *httpx.ErrorTranslator) *HTTPHandler {
	return &HTTPHandler{service: service, errs: errs}
}

// RequireOwner loads the list item named by the {id} path value and passes it
// to next only when it belongs to the caller.
func (h *HTTPHandler) RequireOwner(next ItemHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		item, err := h.service.GetByID(r.Context(), id)
		if err != nil {
			h.handleItemError(w, r, id, err)
			return
		}

		callerID := httpx.UserIDFrom(r)
		if item.OwnerID != callerID {
			httpx.JSONMessage(w, http.StatusForbidden,
				fmt.Sprintf("User with id %s is not authorized to access the list item %s", callerID, item.ID))
			return
		}

		next(w, r, item)
	}
}

// GetOne handles GET /api/list-items/{id}
func (h *HTTPHandler) GetOne(w http.ResponseWriter, r *http.Request, item ListItem) {
	view, err := h.service.Compose(r.Context(), item)
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}
	httpx.JSONOK(w, map[string]any{"listItem": view})
}

// GetMany handles GET /api/list-items
func (h *HTTPHandler) GetMany(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ListForOwner(r.Context(), httpx.UserIDFrom(r))
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}
	httpx.JSONOK(w, map[string]any{"listItems": views})
}

type createReq struct {
	BookID string `json:"bookId"`
}

// Create handles POST /api/list-items
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReq
	if !httpx.BindJSON(w, r, &req) {
		return
	}
	bookID := strings.TrimSpace(req.BookID)
	if bookID == "" {
		httpx.JSONMessage(w, http.StatusBadRequest, "no bookId provided")
		return
	}

	ownerID := httpx.UserIDFrom(r)
	item, err := h.service.Create(r.Context(), ownerID, bookID)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicate):
			httpx.JSONMessage(w, http.StatusBadRequest,
				fmt.Sprintf("User %s already has a list item for the book with the ID %s", ownerID, bookID))
		case errors.Is(err, book.ErrNotFound):
			httpx.JSONMessage(w, http.StatusNotFound, fmt.Sprintf("No book was found with the id of %s", bookID))
		default:
			h.errs.Handle(w, r, err)
		}
		return
	}

	h.GetOne(w, r, item)
}

// Update handles PUT /api/list-items/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request, item ListItem) {
	var patch Patch
	if !httpx.BindJSON(w, r, &patch) {
		return
	}
	if err := patch.Validate(); err != nil {
		httpx.JSONMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.service.Update(r.Context(), item, patch)
	if err != nil {
		h.handleItemError(w, r, item.ID, err)
		return
	}

	h.GetOne(w, r, updated)
}

// Delete handles DELETE /api/list-items/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request, item ListItem) {
	if err := h.service.Delete(r.Context(), item.ID); err != nil {
		h.handleItemError(w, r, item.ID, err)
		return
	}
	httpx.JSONSuccess(w)
}

// handleItemError reports a vanished item as 404 and anything else as unclassified.
func (h *HTTPHandler) handleItemError(w http.ResponseWriter, r *http.Request, id string, err error) {
	if errors.Is(err, ErrNotFound) {
		httpx.JSONMessage(w, http.StatusNotFound, fmt.Sprintf("no list item was found with the id of %s", id))
		return
	}
	h.errs.Handle(w, r, err)
}
