package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"neoverse-be/internal/product"

	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	products product.Service
}

type ratingJSON struct {
	Rate  *float64 `json:"rate"`
	Count *int     `json:"count"`
}

type productJSON struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Price       float64    `json:"price"`
	Description *string    `json:"description"`
	Category    *string    `json:"category"`
	Image       *string    `json:"image"`
	Rating      ratingJSON `json:"rating"`
}

// adminProductJSON is the admin dump shape: no rating block.
type adminProductJSON struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Image       *string `json:"image"`
}

func toProductJSON(p product.Product) productJSON {
	return productJSON{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Category:    p.Category,
		Image:       p.Image,
		Rating:      ratingJSON{Rate: p.Rating, Count: p.RatingCount},
	}
}

func toProductList(products []product.Product) []productJSON {
	out := make([]productJSON, 0, len(products))
	for _, p := range products {
		out = append(out, toProductJSON(p))
	}
	return out
}

func (h *ProductHandler) list(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	sort := r.URL.Query().Get("sort")

	products, err := h.products.List(r.Context(), limit, sort)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductList(products))
}

func (h *ProductHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Product not found")
		return
	}

	p, err := h.products.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductJSON(p))
}

func (h *ProductHandler) categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.products.Categories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *ProductHandler) byCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	products, err := h.products.ListByCategory(r.Context(), category)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductList(products))
}

func (h *ProductHandler) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")

	products, err := h.products.Search(r.Context(), q, category)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductList(products))
}

func (h *ProductHandler) count(w http.ResponseWriter, r *http.Request) {
	count, err := h.products.Count(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"product_count": count})
}

func (h *ProductHandler) seed(w http.ResponseWriter, r *http.Request) {
	count, err := h.products.SeedIfEmpty(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Products seeded successfully",
		"count":   count,
	})
}

// --- admin ---

func (h *ProductHandler) adminList(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context(), 0, "")
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]adminProductJSON, 0, len(products))
	for _, p := range products {
		out = append(out, adminProductJSON{
			ID: p.ID, Title: p.Title, Price: p.Price,
			Description: p.Description, Category: p.Category, Image: p.Image,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type createProductRequest struct {
	Title       *string  `json:"title"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Image       *string  `json:"image"`
}

func (h *ProductHandler) adminCreate(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	missing := missingFields([]fieldCheck{
		{"title", req.Title == nil || *req.Title == ""},
		{"price", req.Price == nil},
	})
	if missing != "" {
		writeMessage(w, http.StatusBadRequest, "Missing required fields: "+missing)
		return
	}

	p, err := h.products.Create(r.Context(), product.CreateProductParams{
		Title:       *req.Title,
		Price:       *req.Price,
		Description: req.Description,
		Category:    req.Category,
		Image:       req.Image,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, adminProductJSON{
		ID: p.ID, Title: p.Title, Price: p.Price,
		Description: p.Description, Category: p.Category, Image: p.Image,
	})
}

func (h *ProductHandler) adminUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Product not found")
		return
	}

	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	p, err := h.products.Update(r.Context(), id, product.UpdateProductParams{
		Title:       req.Title,
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
		Image:       req.Image,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, adminProductJSON{
		ID: p.ID, Title: p.Title, Price: p.Price,
		Description: p.Description, Category: p.Category, Image: p.Image,
	})
}

func (h *ProductHandler) adminDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Product not found")
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
