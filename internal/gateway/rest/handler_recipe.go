package rest

import (
	"errors"
	"net/http"

	"recipebox/internal/storage/types"
)

type createRecipeRequest struct {
	Name         string   `json:"name" validate:"required"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions" validate:"required"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
}

type updateRecipeRequest struct {
	Name         string   `json:"name"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
}

type replaceTagsRequest struct {
	Tags []string `json:"tags"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAndValidate[createRecipeRequest](r)
	if err != nil {
		writeMessage(w, "Name and instructions are required")
		return
	}

	recipe, err := h.catalog.Create(r.Context(), req.Name, req.Instructions, req.Ingredients, req.Category, req.Tags)
	if err != nil {
		writeServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, recipeResponse{Message: "Recipe added successfully!", Recipe: recipe})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	recipe, err := h.catalog.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			writeMessage(w, "Recipe not found")
			return
		}
		writeServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, recipe)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAndValidate[updateRecipeRequest](r)
	if err != nil {
		writeMessage(w, "Invalid request body")
		return
	}

	update := types.RecipeUpdate{
		Name:         req.Name,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		Category:     req.Category,
		Tags:         req.Tags,
	}

	recipe, err := h.catalog.Update(r.Context(), r.PathValue("id"), update)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			writeMessage(w, "Recipe not found")
			return
		}
		writeServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, recipeResponse{Message: "Recipe updated successfully!", Recipe: recipe})
}

func (h *Handler) handleReplaceTags(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAndValidate[replaceTagsRequest](r)
	if err != nil {
		writeMessage(w, "Invalid request body")
		return
	}

	recipe, err := h.catalog.ReplaceTags(r.Context(), r.PathValue("id"), req.Tags)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			writeMessage(w, "Recipe not found")
			return
		}
		writeServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, recipeResponse{Message: "Tags updated successfully!", Recipe: recipe})
}

func (h *Handler) handleFavorite(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Favorite(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			writeMessage(w, "Recipe not found")
			return
		}
		writeServerError(w, r, err)
		return
	}

	writeMessage(w, "Recipe added to favorites!")
}

func (h *Handler) handleUnfavorite(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Unfavorite(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			writeMessage(w, "Recipe not found")
			return
		}
		writeServerError(w, r, err)
		return
	}

	writeMessage(w, "Recipe removed from favorites!")
}

func (h *Handler) handleLike(w http.ResponseWriter, r *http.Request) {
	recipe, err := h.catalog.Like(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			writeMessage(w, "Recipe not found")
			return
		}
		writeServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, recipeResponse{Message: "Recipe liked!", Recipe: recipe})
}

func (h *Handler) handleUnlike(w http.ResponseWriter, r *http.Request) {
	recipe, err := h.catalog.Unlike(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			writeMessage(w, "Recipe not found")
			return
		}
		writeServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, recipeResponse{Message: "Recipe unliked!", Recipe: recipe})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	recipe, err := h.catalog.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			writeMessage(w, "Recipe not found")
			return
		}
		writeServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, deleteResponse{Message: "Recipe deleted successfully!", Deleted: recipe})
}
