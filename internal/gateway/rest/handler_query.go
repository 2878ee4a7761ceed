package rest

import (
	"errors"
	"net/http"

	"recipebox/internal/storage/types"
)

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.catalog.List(r.Context())
	if err != nil {
		writeServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	var q types.SearchQuery
	if err := h.decoder.Decode(&q, r.URL.Query()); err != nil {
		writeMessage(w, "No recipes found")
		return
	}

	list, err := h.catalog.Search(r.Context(), q)
	if err != nil {
		writeServerError(w, r, err)
		return
	}

	if len(list) == 0 {
		writeMessage(w, "No recipes found")
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleByCategory(w http.ResponseWriter, r *http.Request) {
	list, err := h.catalog.ByCategory(r.Context(), r.PathValue("category"))
	if err != nil {
		writeServerError(w, r, err)
		return
	}

	if len(list) == 0 {
		writeMessage(w, "No recipes found")
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleFavorites(w http.ResponseWriter, r *http.Request) {
	list, err := h.catalog.Favorites(r.Context())
	if err != nil {
		writeServerError(w, r, err)
		return
	}

	if len(list) == 0 {
		writeMessage(w, "No favorite recipes yet!")
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleTrending(w http.ResponseWriter, r *http.Request) {
	list, err := h.catalog.Trending(r.Context())
	if err != nil {
		writeServerError(w, r, err)
		return
	}

	// Empty array is a valid trending result.
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.catalog.Count(r.Context())
	if err != nil {
		writeServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, countResponse{Count: count})
}

func (h *Handler) handleRandom(w http.ResponseWriter, r *http.Request) {
	recipe, err := h.catalog.Random(r.Context())
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			writeMessage(w, "No recipes available")
			return
		}
		writeServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, recipe)
}
