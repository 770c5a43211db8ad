package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	goredis "github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/chanjin5212/myfarm-storefront/internal/configs"
	"github.com/chanjin5212/myfarm-storefront/internal/helpers"
	"github.com/chanjin5212/myfarm-storefront/internal/models"
	"github.com/chanjin5212/myfarm-storefront/internal/pkg/apiclient"
	apperrors "github.com/chanjin5212/myfarm-storefront/internal/pkg/errors"
	"github.com/chanjin5212/myfarm-storefront/internal/pkg/redis"
)

const (
	DefaultPageSize   = 20
	SuggestPageSize   = 12
	MaxSuggestions    = 5
	productListPrefix = "products_list:"
	productItemPrefix = "product_detail:"
)

var sortLabels = map[string]string{
	models.SortPriceDesc: "가격높은순",
	models.SortPriceAsc:  "가격낮은순",
}

type ProductService interface {
	List(ctx context.Context, q models.ProductListQuery) (*models.ProductListRes, error)
	Get(ctx context.Context, id string) (*models.ProductDetailRes, error)
	Suggest(ctx context.Context, keyword string) ([]models.SuggestionRes, error)
	ListReviews(ctx context.Context, productID string, page, limit int) (*models.ReviewListRes, error)
	CreateReview(ctx context.Context, sess *models.Session, productID string, req models.CreateReviewReq) (*models.ReviewRes, error)
	ResetCaches(ctx context.Context) error
}

type productServiceImpl struct {
	api         apiclient.Doer
	redisClient *redis.RedisClient
	cacheCfg    configs.CacheConfig
	validator   *validator.Validate
	log         *logrus.Logger
}

func NewProductService(
	api apiclient.Doer,
	redisClient *redis.RedisClient,
	cacheCfg configs.CacheConfig,
	validator *validator.Validate,
	log *logrus.Logger,
) ProductService {
	return &productServiceImpl{
		api:         api,
		redisClient: redisClient,
		cacheCfg:    cacheCfg,
		validator:   validator,
		log:         log,
	}
}

// NormalizeListQuery fills defaults and rejects an inverted price range.
func NormalizeListQuery(q models.ProductListQuery) (models.ProductListQuery, error) {
	q.Keyword = strings.TrimSpace(q.Keyword)
	if q.Size == 0 {
		q.Size = DefaultPageSize
	}
	if q.SortBy == "" {
		q.SortBy = models.SortLatest
	}

	if q.Page < 0 {
		return q, apperrors.ErrInvalidRequestPayload
	}
	if q.Size != 12 && q.Size != 20 && q.Size != 40 {
		return q, apperrors.ErrInvalidPageSize
	}
	if _, ok := sortLabels[q.SortBy]; !ok && q.SortBy != models.SortLatest {
		return q, apperrors.ErrInvalidSortOption
	}
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return q, apperrors.ErrInvalidPriceRange
	}
	return q, nil
}

func listQueryValues(q models.ProductListQuery) url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("size", strconv.Itoa(q.Size))
	v.Set("sortBy", q.SortBy)
	helpers.SetIfNotEmpty(v, "keyword", q.Keyword)
	helpers.SetIntIfNotNil(v, "minPrice", q.MinPrice)
	helpers.SetIntIfNotNil(v, "maxPrice", q.MaxPrice)
	return v
}

func (s *productServiceImpl) List(ctx context.Context, q models.ProductListQuery) (*models.ProductListRes, error) {
	q, err := NormalizeListQuery(q)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Struct(q); err != nil {
		return nil, err
	}

	result, err := s.fetchList(ctx, q)
	if err != nil {
		return nil, err
	}

	return toProductListRes(q, result), nil
}

func (s *productServiceImpl) fetchList(ctx context.Context, q models.ProductListQuery) (*models.ProductListResult, error) {
	query := listQueryValues(q)
	cacheKey := productListPrefix + query.Encode()
	logger := s.log.WithField("cache_key", cacheKey)

	var result models.ProductListResult
	if s.getCache(ctx, cacheKey, &result) {
		logger.Debug("Cache HIT for product list.")
		return &result, nil
	}
	logger.Debug("Cache MISS for product list.")

	err := callUpstream(ctx, s.api, nil, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/products/v1",
		Query:  query,
	}, &result)
	if err != nil {
		return nil, err
	}

	s.setCacheAsync(cacheKey, result, s.cacheCfg.ProductListTTL)
	return &result, nil
}

func (s *productServiceImpl) Get(ctx context.Context, id string) (*models.ProductDetailRes, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.ErrInvalidRequestPayload
	}

	cacheKey := productItemPrefix + id
	var product models.Product
	if s.getCache(ctx, cacheKey, &product) {
		s.log.WithField("product_id", id).Debug("Cache HIT for product detail.")
		return toProductDetailRes(&product), nil
	}

	err := callUpstream(ctx, s.api, nil, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/products/v1/" + url.PathEscape(id),
	}, &product)
	if err != nil {
		return nil, err
	}

	s.setCacheAsync(cacheKey, product, s.cacheCfg.ProductDetailTTL)
	return toProductDetailRes(&product), nil
}

// Suggest returns up to MaxSuggestions product names for the search box.
// It shares the list cache with List.
func (s *productServiceImpl) Suggest(ctx context.Context, keyword string) ([]models.SuggestionRes, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []models.SuggestionRes{}, nil
	}

	q := models.ProductListQuery{
		Page:    0,
		Size:    SuggestPageSize,
		SortBy:  models.SortLatest,
		Keyword: keyword,
	}
	if err := s.validator.Struct(q); err != nil {
		return nil, err
	}

	result, err := s.fetchList(ctx, q)
	if err != nil {
		return nil, err
	}

	out := make([]models.SuggestionRes, 0, MaxSuggestions)
	for _, p := range result.Products {
		if len(out) == MaxSuggestions {
			break
		}
		out = append(out, models.SuggestionRes{ID: p.ID, Name: p.Name})
	}
	return out, nil
}

func (s *productServiceImpl) ListReviews(ctx context.Context, productID string, page, limit int) (*models.ReviewListRes, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}

	var raw json.RawMessage
	resp, err := doUpstream(ctx, s.api, nil, apiclient.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/products/%s/reviews", url.PathEscape(productID)),
		Query:  url.Values{"page": {strconv.Itoa(page)}, "limit": {strconv.Itoa(limit)}},
	})
	if err != nil {
		return nil, err
	}
	if err := apiclient.DecodeData(resp, &raw); err != nil {
		return nil, err
	}

	return decodeReviewPage(resp.Body, raw, page, limit)
}

func (s *productServiceImpl) CreateReview(ctx context.Context, sess *models.Session, productID string, req models.CreateReviewReq) (*models.ReviewRes, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	var review models.Review
	err := callUpstream(ctx, s.api, sess, apiclient.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/products/%s/reviews", url.PathEscape(productID)),
		Body:   req,
	}, &review)
	if err != nil {
		return nil, err
	}

	s.invalidateCaches(productItemPrefix + productID)
	res := toReviewRes(review)
	return &res, nil
}

func (s *productServiceImpl) getCache(ctx context.Context, key string, out interface{}) bool {
	if s.redisClient == nil {
		return false
	}

	val, err := s.redisClient.Client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			s.log.WithFields(logrus.Fields{"key": key, "error": err}).Warn("Failed to read from cache")
		}
		return false
	}
	return json.Unmarshal(val, out) == nil
}

func (s *productServiceImpl) setCacheAsync(key string, val interface{}, ttl time.Duration) {
	if s.redisClient == nil || ttl <= 0 {
		return
	}

	jsonBytes, err := json.Marshal(val)
	if err != nil {
		return
	}

	go func() {
		cacheCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.redisClient.Client.Set(cacheCtx, key, jsonBytes, ttl).Err(); err != nil {
			s.log.WithField("key", key).Warn("Failed to store result in cache")
		}
	}()
}

func (s *productServiceImpl) invalidateCaches(keys ...string) {
	if s.redisClient == nil {
		return
	}

	go func() {
		cacheCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.redisClient.Client.Del(cacheCtx, keys...).Err(); err != nil {
			s.log.Warnf("Failed to invalidate product caches %v: %v", keys, err)
		}
	}()
}

func (s *productServiceImpl) ResetCaches(ctx context.Context) error {
	if s.redisClient == nil {
		return nil
	}
	s.log.Info("Starting to reset ALL product caches...")

	resetCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()

	patterns := []string{
		productListPrefix + "*",
		productItemPrefix + "*",
	}

	var totalKeysDeleted int64
	for _, pattern := range patterns {
		var cursor uint64
		for {
			keys, nextCursor, err := s.redisClient.Client.Scan(resetCtx, cursor, pattern, 100).Result()
			if err != nil {
				s.log.Errorf("Error during Redis SCAN with pattern '%s': %v", pattern, err)
				return err
			}

			if len(keys) > 0 {
				if err := s.redisClient.Client.Del(resetCtx, keys...).Err(); err != nil {
					s.log.Warnf("Failed to delete batch of %d keys: %v", len(keys), err)
				} else {
					totalKeysDeleted += int64(len(keys))
				}
			}

			cursor = nextCursor
			if cursor == 0 {
				break
			}
		}
	}

	s.log.Infof("Successfully reset a total of %d product cache keys.", totalKeysDeleted)
	return nil
}
