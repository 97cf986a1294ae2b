package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ecommerce-backend/internal/errors"
	"ecommerce-backend/internal/services"
)

func (h *APIHandlers) HandleNewProduct(w http.ResponseWriter, r *http.Request) {
	var req services.NewProductRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	p, err := h.svc.Products.Create(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	errors.WriteCreated(w, p)
}

func (h *APIHandlers) HandleLatestProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.Products.Latest(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	errors.WriteSuccess(w, products)
}

func (h *APIHandlers) HandleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Products.Categories(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	errors.WriteSuccess(w, categories)
}

func (h *APIHandlers) HandleAdminProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.Products.AdminProducts(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	errors.WriteSuccess(w, products)
}

func (h *APIHandlers) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Products.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	errors.WriteSuccess(w, p)
}

func (h *APIHandlers) HandleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req services.UpdateProductRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	p, err := h.svc.Products.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	errors.WriteSuccess(w, p)
}

func (h *APIHandlers) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Products.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	errors.WriteMessage(w, http.StatusOK, "Product deleted successfully")
}

// HandleSearchProducts serves /product/all?search=&category=&price=&sort=&page=.
func (h *APIHandlers) HandleSearchProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := services.SearchRequest{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Sort:     q.Get("sort"),
	}

	if v := q.Get("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			h.fail(w, r, errors.BadRequestWrap(err, "Invalid price"))
			return
		}
		req.Price = price
	}
	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			h.fail(w, r, errors.BadRequestWrap(err, "Invalid page"))
			return
		}
		req.Page = page
	}

	page, err := h.svc.Products.Search(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	errors.WriteSuccess(w, page)
}
