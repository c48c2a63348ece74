package http

import (
	"errors"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jipbab-note/backend/internal/domain"
	"github.com/jipbab-note/backend/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 24
	maxPageSize     = 100

	defaultSuggestionLimit = 24
	minSuggestionLimit     = 1
	maxSuggestionLimit     = 80

	maxSearchLength = 40

	favoritesCollection = "favorites"
	communityCollection = "community"
	communityListKey    = "recipes"
)

var searchPattern = regexp.MustCompile(`^[0-9A-Za-z가-힣\s\-_/().,&]+$`)

// recipeCategoryAllowList holds the MFDS RCP_PAT2 values the list
// endpoint accepts as a filter.
var recipeCategoryAllowList = map[string]bool{
	"한식": true, "중식": true, "양식": true, "일식": true,
	"분식": true, "디저트": true, "국&찌개": true, "반찬": true, "기타": true,
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	catalog  *usecase.CatalogCache
	matcher  *usecase.Matcher
	recipes  domain.RecipeSource
	products domain.ProductSource
	store    domain.RecordStore
	logger   *zap.Logger
}

func NewHandler(
	catalog *usecase.CatalogCache,
	matcher *usecase.Matcher,
	recipes domain.RecipeSource,
	products domain.ProductSource,
	store domain.RecordStore,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		catalog:  catalog,
		matcher:  matcher,
		recipes:  recipes,
		products: products,
		store:    store,
		logger:   logger,
	}
}

// HealthCheck returns the health status of the API.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "jipbab-note-backend",
		"version": "1.0.0",
	})
}

// ListIngredientSuggestions serves a page of catalog names, optionally
// narrowed by category and a substring search.
func (h *Handler) ListIngredientSuggestions(c *gin.Context) {
	category, _ := domain.ParseCategory(c.Query("category"))
	cursor := parseNonNegativeInt(c.Query("cursor"), 0)
	limit := clamp(parseNonNegativeInt(c.Query("limit"), defaultSuggestionLimit), minSuggestionLimit, maxSuggestionLimit)

	search, err := normalizeSearch(c.Query("q"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	search = strings.ToLower(search)

	catalog, err := h.catalog.Get(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	names := catalog.Names(category)
	if search != "" {
		filtered := make([]string, 0, len(names))
		for _, name := range names {
			if strings.Contains(strings.ToLower(name), search) {
				filtered = append(filtered, name)
			}
		}
		names = filtered
	}

	total := len(names)
	if cursor > total {
		cursor = total
	}
	end := cursor + limit
	if end > total {
		end = total
	}

	// nextCursor is explicitly null on the last page, not absent.
	var nextCursor interface{}
	if end < total {
		nextCursor = end
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      names[cursor:end],
		"total":      total,
		"builtAt":    catalog.BuiltAt.UTC().Format(time.RFC3339),
		"nextCursor": nextCursor,
	})
}

// ListRecipes proxies one page of the upstream recipe corpus.
func (h *Handler) ListRecipes(c *gin.Context) {
	page := parsePositiveInt(c.Query("page"), 1)
	size := parsePositiveInt(c.Query("size"), defaultPageSize)
	if size > maxPageSize {
		size = maxPageSize
	}

	query, err := normalizeSearch(c.Query("q"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	start := (page-1)*size + 1
	end := start + size - 1

	chunk, err := h.recipes.FetchRecipes(c.Request.Context(), start, end, domain.RecipeFilter{
		Query:    query,
		Category: normalizeRecipeCategory(c.Query("category")),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	// The upstream RESULT block rides along; when it is absent the
	// success defaults stand in.
	code, message := chunk.Code, chunk.Message
	if code == "" {
		code = "INFO-000"
	}
	if message == "" {
		message = "정상 처리되었습니다."
	}

	c.JSON(http.StatusOK, gin.H{
		"recipes":    chunk.Recipes,
		"totalCount": chunk.TotalCount,
		"page":       page,
		"size":       size,
		"code":       code,
		"message":    message,
	})
}

// GetRecipeDetail resolves one recipe by id. UUIDs identify community
// recipes in the record store; everything else is an upstream RCP_SEQ.
func (h *Handler) GetRecipeDetail(c *gin.Context) {
	id := c.Param("id")

	if _, err := uuid.Parse(id); err == nil {
		recipe, err := h.findCommunityRecipe(c, id)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, recipe)
		return
	}

	detail, err := h.recipes.FetchRecipeBySeq(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// matchRequest deliberately leaves Ingredients unconstrained: an empty
// raw declaration is a valid recipe (rate 0, empty lists), not an error.
type matchRequest struct {
	Pantry      []string `json:"pantry" binding:"required"`
	Ingredients string   `json:"ingredients"`
}

// MatchRecipe grades one recipe's raw ingredient declaration against
// the caller's pantry.
func (h *Handler) MatchRecipe(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "pantry 배열을 보내 주세요.",
		})
		return
	}

	c.JSON(http.StatusOK, h.matcher.Match(req.Pantry, req.Ingredients))
}

// LookupProduct resolves a scanned barcode. A provider miss is not an
// error: the client keeps the scanned code and falls back to manual
// entry, so the stub response ships with HTTP 200.
func (h *Handler) LookupProduct(c *gin.Context) {
	barcode := domain.NormalizeBarcode(c.Query("barcode"))
	if !domain.IsValidFoodBarcode(barcode) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "유효한 바코드(숫자 8~14자리)를 전달해 주세요.",
		})
		return
	}

	product, err := h.products.Lookup(c.Request.Context(), barcode)
	if err != nil {
		if !errors.Is(err, domain.ErrProductNotFound) {
			h.logger.Warn("product lookup failed", zap.String("barcode", barcode), zap.Error(err))
		}
		c.JSON(http.StatusOK, gin.H{
			"barcode": barcode,
			"product": nil,
			"source":  domain.ProductSourceStub,
			"message": "외부 상품 정보를 찾지 못했습니다. 스캔 코드를 유지한 채 수동 입력으로 진행해 주세요.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barcode": barcode,
		"product": product,
		"source":  product.Source,
		"message": "상품 정보를 조회했습니다.",
	})
}

// ListFavorites returns the device's favorites, most recently saved
// first.
func (h *Handler) ListFavorites(c *gin.Context) {
	deviceID, ok := h.requireDeviceID(c)
	if !ok {
		return
	}

	favorites := []domain.FavoriteRecipe{}
	err := h.store.Get(c.Request.Context(), favoritesCollection, deviceID, &favorites)
	if err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
		h.respondError(c, err)
		return
	}

	sort.Slice(favorites, func(i, j int) bool {
		return favorites[i].SavedAt.After(favorites[j].SavedAt)
	})
	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

type favoritesRequest struct {
	Favorites []domain.FavoriteRecipe `json:"favorites" binding:"required"`
}

// SaveFavorites replaces the device's favorites wholesale. The client
// owns the list; the server only keeps it across devices and restarts.
func (h *Handler) SaveFavorites(c *gin.Context) {
	deviceID, ok := h.requireDeviceID(c)
	if !ok {
		return
	}

	var req favoritesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "favorites 배열을 보내 주세요."})
		return
	}

	if err := h.store.Put(c.Request.Context(), favoritesCollection, deviceID, req.Favorites); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": req.Favorites})
}

// ListCommunityRecipes returns the shared board, newest first.
func (h *Handler) ListCommunityRecipes(c *gin.Context) {
	recipes, err := h.loadCommunityRecipes(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	sort.Slice(recipes, func(i, j int) bool {
		return recipes[i].CreatedAt.After(recipes[j].CreatedAt)
	})
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

type communityRecipeRequest struct {
	Title        string              `json:"title" binding:"required"`
	Description  string              `json:"description"`
	Category     string              `json:"category"`
	ThumbnailURL string              `json:"thumbnailUrl"`
	Ingredients  []string            `json:"ingredients"`
	Steps        []domain.RecipeStep `json:"steps"`
}

// CreateCommunityRecipe appends one user-submitted recipe to the board.
func (h *Handler) CreateCommunityRecipe(c *gin.Context) {
	deviceID, ok := h.requireDeviceID(c)
	if !ok {
		return
	}

	var req communityRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "title은 필수입니다."})
		return
	}

	recipes, err := h.loadCommunityRecipes(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	recipe := domain.CommunityRecipe{
		ID:           uuid.NewString(),
		DeviceID:     deviceID,
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		Category:     strings.TrimSpace(req.Category),
		ThumbnailURL: strings.TrimSpace(req.ThumbnailURL),
		Ingredients:  req.Ingredients,
		Steps:        req.Steps,
		CreatedAt:    time.Now().UTC(),
	}
	recipes = append(recipes, recipe)

	if err := h.store.Put(c.Request.Context(), communityCollection, communityListKey, recipes); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *Handler) loadCommunityRecipes(c *gin.Context) ([]domain.CommunityRecipe, error) {
	recipes := []domain.CommunityRecipe{}
	err := h.store.Get(c.Request.Context(), communityCollection, communityListKey, &recipes)
	if err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
		return nil, err
	}
	return recipes, nil
}

func (h *Handler) findCommunityRecipe(c *gin.Context, id string) (*domain.CommunityRecipe, error) {
	recipes, err := h.loadCommunityRecipes(c)
	if err != nil {
		return nil, err
	}
	for i := range recipes {
		if recipes[i].ID == id {
			return &recipes[i], nil
		}
	}
	return nil, domain.ErrRecipeNotFound
}

func (h *Handler) requireDeviceID(c *gin.Context) (string, bool) {
	deviceID := strings.TrimSpace(c.GetHeader("X-Device-ID"))
	if deviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "X-Device-ID 헤더가 필요합니다."})
		return "", false
	}
	return deviceID, true
}

// respondError maps domain errors to HTTP statuses. Messages stay
// generic; upstream details and credentials never reach the client.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuery):
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "검색어는 40자 이하의 한글, 영문, 숫자와 일부 기호만 사용할 수 있습니다.",
		})
	case errors.Is(err, domain.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"message": "요청이 너무 많습니다. 잠시 후 다시 시도해 주세요.",
		})
	case errors.Is(err, domain.ErrRecipeNotFound), errors.Is(err, domain.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "레시피를 찾을 수 없습니다."})
	case errors.Is(err, domain.ErrMissingAPIKey):
		h.logger.Error("recipe api key is not configured")
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "레시피 API 키가 설정되어 있지 않습니다. JIPBAB_MFDS_API_KEY를 설정해 주세요.",
		})
	case errors.Is(err, domain.ErrUpstreamFailure):
		h.logger.Warn("upstream recipe api failure", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"message": "레시피 정보를 가져오지 못했습니다. 잠시 후 다시 시도해 주세요."})
	default:
		h.logger.Error("unhandled request error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "요청을 처리하는 중 오류가 발생했습니다."})
	}
}

// normalizeSearch validates a free-text query: at most 40 characters
// from the allowed set. Empty input is fine and means no filter.
func normalizeSearch(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	if utf8.RuneCountInString(trimmed) > maxSearchLength {
		return "", domain.ErrInvalidQuery
	}
	if !searchPattern.MatchString(trimmed) {
		return "", domain.ErrInvalidQuery
	}
	return trimmed, nil
}

// normalizeRecipeCategory maps a requested category onto the upstream
// vocabulary. 전체 and unknown values mean no filter; the app's 국·찌개
// label folds to the upstream's 국&찌개.
func normalizeRecipeCategory(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || trimmed == "전체" {
		return ""
	}
	if trimmed == "국·찌개" {
		trimmed = "국&찌개"
	}
	if !recipeCategoryAllowList[trimmed] {
		return ""
	}
	return trimmed
}

func parsePositiveInt(value string, fallback int) int {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 1 {
		return fallback
	}
	return parsed
}

func parseNonNegativeInt(value string, fallback int) int {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
