package services

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/chanjin5212/myfarm-storefront/internal/models"
)

func totalPages(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

func newPageRes(page, limit, total int) models.PageRes {
	return models.PageRes{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages(total, limit),
	}
}

func discountRate(price int, originalPrice *int) int {
	if originalPrice == nil || *originalPrice <= 0 || *originalPrice <= price {
		return 0
	}
	return int(math.Round(float64(*originalPrice-price) * 100 / float64(*originalPrice)))
}

func toProductSummaryRes(p models.ProductSummary) models.ProductSummaryRes {
	return models.ProductSummaryRes{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		DiscountRate:  discountRate(p.Price, p.OriginalPrice),
		ThumbnailURL:  p.ThumbnailURL,
		AverageRating: p.AverageRating,
		ReviewCount:   p.ReviewCount,
		Status:        string(p.Status),
		StatusLabel:   p.Status.Label(),
		CreatedAt:     p.CreatedAt,
	}
}

func activeFilters(q models.ProductListQuery) []models.ActiveFilter {
	filters := []models.ActiveFilter{}
	if label, ok := sortLabels[q.SortBy]; ok {
		filters = append(filters, models.ActiveFilter{Key: "sort_by", Label: label})
	}
	if (q.MinPrice != nil && *q.MinPrice > 0) || (q.MaxPrice != nil && *q.MaxPrice > 0) {
		filters = append(filters, models.ActiveFilter{Key: "price", Label: "가격필터"})
	}
	return filters
}

func toProductListRes(q models.ProductListQuery, result *models.ProductListResult) *models.ProductListRes {
	products := make([]models.ProductSummaryRes, 0, len(result.Products))
	for _, p := range result.Products {
		products = append(products, toProductSummaryRes(p))
	}

	pages := totalPages(result.TotalCount, q.Size)
	return &models.ProductListRes{
		Products:      products,
		TotalCount:    result.TotalCount,
		Page:          q.Page,
		Size:          q.Size,
		TotalPages:    pages,
		HasNext:       q.Page+1 < pages,
		HasPrev:       q.Page > 0,
		Keyword:       q.Keyword,
		SortBy:        q.SortBy,
		ActiveFilters: activeFilters(q),
	}
}

// defaultOption is the option flagged default, else the first one.
func defaultOption(options []models.ProductOption) *models.ProductOption {
	if len(options) == 0 {
		return nil
	}
	for i := range options {
		if options[i].IsDefault {
			return &options[i]
		}
	}
	return &options[0]
}

func toProductDetailRes(p *models.Product) *models.ProductDetailRes {
	images := make([]models.ProductImage, len(p.Images))
	copy(images, p.Images)
	sort.SliceStable(images, func(i, j int) bool { return images[i].SortOrder < images[j].SortOrder })

	imageRes := make([]models.ProductImageRes, 0, len(images))
	for _, img := range images {
		imageRes = append(imageRes, models.ProductImageRes{ID: img.ID, ImageURL: img.ImageURL, IsThumbnail: img.IsThumbnail})
	}

	inStock := len(p.Options) == 0
	optionRes := make([]models.ProductOptionRes, 0, len(p.Options))
	for _, o := range p.Options {
		if o.Stock > 0 {
			inStock = true
		}
		optionRes = append(optionRes, models.ProductOptionRes{
			ID:              o.ID,
			Name:            o.OptionName,
			Value:           o.OptionValue,
			AdditionalPrice: o.AdditionalPrice,
			FinalPrice:      p.Price + o.AdditionalPrice,
			Stock:           o.Stock,
			IsDefault:       o.IsDefault,
			SoldOut:         o.Stock <= 0,
		})
	}

	res := &models.ProductDetailRes{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		DiscountRate:  discountRate(p.Price, p.OriginalPrice),
		Status:        string(p.Status),
		StatusLabel:   p.Status.Label(),
		Purchasable:   p.Status == models.ProductActive && inStock,
		Images:        imageRes,
		Options:       optionRes,
		Origin:        p.Origin,
		HarvestDate:   p.HarvestDate,
		StorageMethod: p.StorageMethod,
		IsOrganic:     p.IsOrganic,
		OrderCount:    p.OrderCount,
		Attributes:    p.Attributes,
		Tags:          p.Tags,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if def := defaultOption(p.Options); def != nil {
		res.DefaultOptionID = def.ID
	}
	return res
}

func toReviewRes(r models.Review) models.ReviewRes {
	return models.ReviewRes{
		ID:          r.ID,
		ProductID:   r.ProductID,
		ProductName: r.ProductName,
		OrderID:     r.OrderID,
		Author:      r.Author,
		Rating:      r.Rating,
		Comment:     r.Comment,
		Images:      r.Images,
		CreatedAt:   r.CreatedAt,
	}
}

type reviewPage struct {
	Reviews    []models.Review `json:"reviews"`
	TotalCount *int            `json:"totalCount"`
	Total      *int            `json:"total"`
}

// decodeReviewPage accepts either a bare review array (with paging in the
// envelope meta) or an object holding reviews and a total.
func decodeReviewPage(body []byte, data json.RawMessage, page, limit int) (*models.ReviewListRes, error) {
	var reviews []models.Review
	total := -1

	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &reviews); err != nil {
			return nil, err
		}
	} else if len(data) > 0 {
		var rp reviewPage
		if err := json.Unmarshal(data, &rp); err != nil {
			return nil, err
		}
		reviews = rp.Reviews
		switch {
		case rp.TotalCount != nil:
			total = *rp.TotalCount
		case rp.Total != nil:
			total = *rp.Total
		}
	}

	if total < 0 {
		var env models.Envelope
		if json.Unmarshal(body, &env) == nil && env.Meta != nil {
			total = env.Meta.Total
		} else {
			total = len(reviews)
		}
	}

	out := make([]models.ReviewRes, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, toReviewRes(r))
	}

	return &models.ReviewListRes{Reviews: out, PageRes: newPageRes(page, limit, total)}, nil
}

func toOrderRes(o models.Order) models.OrderRes {
	items := make([]models.OrderItemRes, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, models.OrderItemRes{
			ID:           it.ID,
			ProductID:    it.ProductID,
			ProductName:  it.Product.Name,
			ThumbnailURL: it.Product.ThumbnailURL,
			Quantity:     it.Quantity,
			Price:        it.Price,
			Subtotal:     it.Price * it.Quantity,
		})
	}

	return models.OrderRes{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		Status:        string(o.OrderStatus),
		StatusLabel:   o.OrderStatus.Label(),
		Cancellable:   o.OrderStatus.Cancellable(),
		PaymentMethod: o.PaymentMethod,
		PaymentStatus: o.PaymentStatus,
		TotalAmount:   o.TotalAmount,
		ShippingFee:   o.ShippingFee,
		Items:         items,
		ShippingAddress: models.OrderShippingAddrRes{
			RecipientName: o.ShippingAddress.RecipientName,
			Phone:         o.ShippingAddress.Phone,
			ZipCode:       o.ShippingAddress.ZipCode,
			Street:        o.ShippingAddress.Street,
			Detail:        o.ShippingAddress.Detail,
		},
		CreatedAt: o.CreatedAt,
	}
}

func toCartRes(c models.Cart) *models.CartRes {
	items := make([]models.CartItemRes, 0, len(c.Items))
	count, total := 0, 0
	for _, it := range c.Items {
		subtotal := it.Product.Price * it.Quantity
		items = append(items, models.CartItemRes{
			ID:           it.ID,
			ProductID:    it.ProductID,
			ProductName:  it.Product.Name,
			ThumbnailURL: it.Product.ThumbnailURL,
			Price:        it.Product.Price,
			Quantity:     it.Quantity,
			Subtotal:     subtotal,
		})
		count += it.Quantity
		total += subtotal
	}

	if c.TotalAmount > 0 {
		total = c.TotalAmount
	}
	return &models.CartRes{Items: items, ItemCount: count, TotalAmount: total}
}

// decodePaginated reads a {success,data:[...],meta} page. Without meta the
// total is the number of items returned.
func decodePaginated[T any](body []byte, page, limit int) ([]T, models.PageRes, error) {
	var items []T
	var env models.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, models.PageRes{}, err
		}
		return items, newPageRes(page, limit, len(items)), nil
	}

	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, &items); err != nil {
			return nil, models.PageRes{}, err
		}
	}

	if env.Meta != nil {
		pr := newPageRes(env.Meta.Page, env.Meta.Limit, env.Meta.Total)
		if pr.Page == 0 {
			pr.Page = page
		}
		if pr.Limit == 0 {
			pr.Limit = limit
		}
		if env.Meta.TotalPages > 0 {
			pr.TotalPages = env.Meta.TotalPages
		} else {
			pr.TotalPages = totalPages(pr.Total, pr.Limit)
		}
		return items, pr, nil
	}
	return items, newPageRes(page, limit, len(items)), nil
}
