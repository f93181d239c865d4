package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/macrolens/bakecalc/internal/domain"
	"github.com/macrolens/bakecalc/internal/usecase"
)

// maxRecipeFileSize bounds the body accepted by the recipe import endpoint
const maxRecipeFileSize = 1 << 20

// Handler holds dependencies for HTTP handlers
type Handler struct {
	recipes  *usecase.RecipeService
	db       domain.IngredientDatabase
	products *usecase.ProductSearchService
}

// NewHandler creates a new HTTP handler. products may be nil when remote
// product search is not configured.
func NewHandler(recipes *usecase.RecipeService, db domain.IngredientDatabase, products *usecase.ProductSearchService) *Handler {
	return &Handler{
		recipes:  recipes,
		db:       db,
		products: products,
	}
}

// NutrientInfo describes one entry of the nutrient schema
type NutrientInfo struct {
	Key   string      `json:"key"`
	Label string      `json:"label"`
	Unit  domain.Unit `json:"unit"`
}

// IngredientResponse is a named per-100g profile
type IngredientResponse struct {
	Name      string         `json:"name"`
	Nutrients domain.Profile `json:"nutrients"`
}

// IngredientRequest is the body of PUT /ingredients/:name
type IngredientRequest struct {
	Nutrients *domain.Profile `json:"nutrients" binding:"required"`
}

// RecipeLine is one ingredient of the active recipe
type RecipeLine struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// RecipeResponse is the JSON view of a recipe
type RecipeResponse struct {
	Name        string       `json:"name"`
	Ingredients []RecipeLine `json:"ingredients"`
	TotalWeight float64      `json:"totalWeight"`
}

// RenameRequest is the body of PUT /recipe/name
type RenameRequest struct {
	Name string `json:"name"`
}

// WeightRequest is the body of PUT /recipe/ingredients/:name
type WeightRequest struct {
	Weight *float64 `json:"weight" binding:"required"`
}

// CalculateRequest is the optional body of POST /recipe/calculate
type CalculateRequest struct {
	BakedWeight *float64 `json:"bakedWeight"`
}

// ProductImportRequest selects one search hit to add as an ingredient
type ProductImportRequest struct {
	Query string `json:"query" binding:"required"`
	Code  string `json:"code" binding:"required"`
	Name  string `json:"name"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "bakecalc",
		"version": "1.0.0",
	})
}

// ListNutrients returns the ordered nutrient schema
func (h *Handler) ListNutrients(c *gin.Context) {
	all := domain.AllNutrients()
	out := make([]NutrientInfo, 0, len(all))
	for _, n := range all {
		out = append(out, NutrientInfo{Key: n.Key(), Label: n.Label(), Unit: n.Unit()})
	}
	c.JSON(http.StatusOK, gin.H{"nutrients": out})
}

// ListIngredients returns every ingredient name in the database
func (h *Handler) ListIngredients(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ingredients": h.db.ListNames()})
}

// GetIngredient returns the per-100g profile of one ingredient
func (h *Handler) GetIngredient(c *gin.Context) {
	name := c.Param("name")
	profile, ok := h.db.Lookup(name)
	if !ok {
		respondError(c, &domain.MissingIngredientError{Name: name})
		return
	}
	c.JSON(http.StatusOK, IngredientResponse{Name: name, Nutrients: profile})
}

// PutIngredient adds or replaces a custom ingredient
func (h *Handler) PutIngredient(c *gin.Context) {
	name := c.Param("name")
	if name == "" || strings.TrimSpace(name) != name {
		respondError(c, fmt.Errorf("%w: ingredient name %q must be non-empty without surrounding spaces", domain.ErrInvalidRequest, name))
		return
	}

	var req IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %v", domain.ErrMalformedInput, err))
		return
	}

	h.db.InsertOrReplace(name, *req.Nutrients)
	log.Printf("[CATALOG] Stored custom ingredient %q", name)

	c.JSON(http.StatusOK, IngredientResponse{Name: name, Nutrients: *req.Nutrients})
}

// DeleteIngredient removes an ingredient from the database
func (h *Handler) DeleteIngredient(c *gin.Context) {
	h.db.Remove(c.Param("name"))
	c.Status(http.StatusNoContent)
}

// GetRecipe returns the active recipe
func (h *Handler) GetRecipe(c *gin.Context) {
	c.JSON(http.StatusOK, toRecipeResponse(h.recipes.Recipe()))
}

// RenameRecipe sets the active recipe's name
func (h *Handler) RenameRecipe(c *gin.Context) {
	var req RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %v", domain.ErrMalformedInput, err))
		return
	}
	c.JSON(http.StatusOK, toRecipeResponse(h.recipes.SetName(req.Name)))
}

// PutRecipeIngredient sets the weight of a database ingredient in the active recipe
func (h *Handler) PutRecipeIngredient(c *gin.Context) {
	name := c.Param("name")
	if _, ok := h.db.Lookup(name); !ok {
		respondError(c, &domain.MissingIngredientError{Name: name})
		return
	}

	var req WeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %v", domain.ErrMalformedInput, err))
		return
	}

	recipe, err := h.recipes.AddIngredient(name, *req.Weight)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRecipeResponse(recipe))
}

// DeleteRecipeIngredient removes one ingredient from the active recipe
func (h *Handler) DeleteRecipeIngredient(c *gin.Context) {
	c.JSON(http.StatusOK, toRecipeResponse(h.recipes.RemoveIngredient(c.Param("name"))))
}

// ClearRecipe removes every ingredient from the active recipe
func (h *Handler) ClearRecipe(c *gin.Context) {
	c.JSON(http.StatusOK, toRecipeResponse(h.recipes.ClearIngredients()))
}

// CalculateRecipe aggregates the active recipe, optionally correcting for baking loss
func (h *Handler) CalculateRecipe(c *gin.Context) {
	var req CalculateRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			respondError(c, fmt.Errorf("%w: %v", domain.ErrMalformedInput, err))
			return
		}
	}

	calc, err := h.recipes.Calculate(req.BakedWeight)
	if err != nil {
		status, code := classifyError(err)
		body := gin.H{"error": err.Error(), "code": code}
		if calc != nil {
			// Correction failed; the uncorrected result is still useful.
			body["result"] = calc
		}
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, calc)
}

// ExportRecipe writes the active recipe as a YAML file
func (h *Handler) ExportRecipe(c *gin.Context) {
	recipe := h.recipes.Recipe()
	data, err := h.recipes.Export()
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", recipeFileName(recipe.Name())))
	c.Data(http.StatusOK, "application/x-yaml", data)
}

// ImportRecipe replaces the active recipe with an uploaded YAML file
func (h *Handler) ImportRecipe(c *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxRecipeFileSize+1))
	if err != nil {
		respondError(c, fmt.Errorf("%w: %v", domain.ErrMalformedInput, err))
		return
	}
	if len(data) > maxRecipeFileSize {
		respondError(c, fmt.Errorf("%w: recipe file exceeds %d bytes", domain.ErrMalformedInput, maxRecipeFileSize))
		return
	}

	recipe, err := h.recipes.Import(data)
	if err != nil {
		var unresolved *domain.UnresolvedIngredientsError
		if errors.As(err, &unresolved) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   err.Error(),
				"code":    "unresolved_ingredients",
				"missing": unresolved.Names,
			})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRecipeResponse(recipe))
}

// SearchProducts queries the remote product database
func (h *Handler) SearchProducts(c *gin.Context) {
	if h.products == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "Product search not configured",
			"code":  "not_configured",
		})
		return
	}

	var req domain.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err))
		return
	}

	ctx := c.Request.Context()
	select {
	case result := <-h.products.SearchAsync(ctx, req.Query):
		if result.Err != nil {
			respondError(c, result.Err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"query":    result.Query,
			"products": result.Products,
		})
	case <-ctx.Done():
		respondError(c, ctx.Err())
	}
}

// ImportProduct adds one search hit to the ingredient database
func (h *Handler) ImportProduct(c *gin.Context) {
	if h.products == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "Product search not configured",
			"code":  "not_configured",
		})
		return
	}

	var req ProductImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err))
		return
	}

	product, err := h.products.FindProduct(c.Request.Context(), req.Query, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	name, err := h.products.Ingest(h.db, product, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, IngredientResponse{Name: name, Nutrients: product.Profile})
}

func toRecipeResponse(r *domain.Recipe) RecipeResponse {
	names := r.IngredientNames()
	lines := make([]RecipeLine, 0, len(names))
	for _, name := range names {
		w, _ := r.Weight(name)
		lines = append(lines, RecipeLine{Name: name, Weight: w})
	}
	return RecipeResponse{
		Name:        r.Name(),
		Ingredients: lines,
		TotalWeight: r.TotalWeight(),
	}
}

// recipeFileName derives a download name such as "sourdough-loaf.yaml"
func recipeFileName(name string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, name)
	slug = strings.Trim(slug, "-")
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	if slug == "" {
		slug = "recipe"
	}
	return slug + ".yaml"
}

// respondError writes a JSON error body with the status matching err
func respondError(c *gin.Context, err error) {
	status, code := classifyError(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[HTTP] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{
		"error": err.Error(),
		"code":  code,
	})
}

// classifyError maps domain errors to an HTTP status and a stable error code
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrMalformedInput):
		return http.StatusBadRequest, "malformed_input"
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, "product_not_found"
	case errors.Is(err, domain.ErrMissingIngredient):
		return http.StatusNotFound, "missing_ingredient"
	case errors.Is(err, domain.ErrEmptyRecipe):
		return http.StatusUnprocessableEntity, "empty_recipe"
	case errors.Is(err, domain.ErrInvalidBakedWeight):
		return http.StatusUnprocessableEntity, "invalid_baked_weight"
	case errors.Is(err, domain.ErrUnresolvedIngredients):
		return http.StatusUnprocessableEntity, "unresolved_ingredients"
	case errors.Is(err, domain.ErrUpstreamFailure):
		return http.StatusBadGateway, "upstream_failure"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, "canceled"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
