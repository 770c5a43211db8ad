package models

type ProductStatus string

const (
	ProductActive       ProductStatus = "ACTIVE"
	ProductInactive     ProductStatus = "INACTIVE"
	ProductOutOfStock   ProductStatus = "OUT_OF_STOCK"
	ProductDiscontinued ProductStatus = "DISCONTINUED"
)

var productStatusLabels = map[ProductStatus]string{
	ProductActive:       "판매중",
	ProductInactive:     "판매중지",
	ProductOutOfStock:   "품절",
	ProductDiscontinued: "단종",
}

func (s ProductStatus) Label() string {
	if label, ok := productStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

const (
	SortLatest    = "latest"
	SortPriceDesc = "priceDesc"
	SortPriceAsc  = "priceAsc"
)

// ProductListQuery is the browser-facing filter/pagination state of the product list.
type ProductListQuery struct {
	Page     int    `query:"page" validate:"gte=0"`
	Size     int    `query:"size" validate:"oneof=12 20 40"`
	SortBy   string `query:"sort_by" validate:"oneof=latest priceDesc priceAsc"`
	Keyword  string `query:"keyword" validate:"max=100"`
	MinPrice *int   `query:"min_price" validate:"omitempty,gte=0"`
	MaxPrice *int   `query:"max_price" validate:"omitempty,gte=0"`
}

// upstream (camelCase)

type ProductSummary struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Price         int           `json:"price"`
	OriginalPrice *int          `json:"originalPrice,omitempty"`
	ThumbnailURL  string        `json:"thumbnailUrl"`
	AverageRating float64       `json:"averageRating"`
	ReviewCount   int           `json:"reviewCount"`
	Status        ProductStatus `json:"status"`
	CreatedAt     string        `json:"createdAt"`
}

type ProductListResult struct {
	Products   []ProductSummary `json:"products"`
	TotalCount int              `json:"totalCount"`
}

type ProductImage struct {
	ID          string `json:"id"`
	ImageURL    string `json:"imageUrl"`
	IsThumbnail bool   `json:"isThumbnail"`
	SortOrder   int    `json:"sortOrder"`
}

type ProductOption struct {
	ID              string `json:"id"`
	OptionName      string `json:"optionName"`
	OptionValue     string `json:"optionValue"`
	AdditionalPrice int    `json:"additionalPrice"`
	Stock           int    `json:"stock"`
	IsDefault       bool   `json:"isDefault"`
}

type Product struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Price         int               `json:"price"`
	OriginalPrice *int              `json:"originalPrice,omitempty"`
	Status        ProductStatus     `json:"status"`
	Images        []ProductImage    `json:"images"`
	Options       []ProductOption   `json:"options"`
	Origin        string            `json:"origin,omitempty"`
	HarvestDate   string            `json:"harvestDate,omitempty"`
	StorageMethod string            `json:"storageMethod,omitempty"`
	IsOrganic     bool              `json:"isOrganic"`
	OrderCount    int               `json:"orderCount"`
	Attributes    map[string]string `json:"attributes,omitempty"`
	Tags          []string          `json:"tags,omitempty"`
	CreatedAt     string            `json:"createdAt"`
	UpdatedAt     string            `json:"updatedAt"`
}

// browser-facing (snake_case)

type ProductSummaryRes struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Price         int     `json:"price"`
	OriginalPrice *int    `json:"original_price,omitempty"`
	DiscountRate  int     `json:"discount_rate,omitempty"`
	ThumbnailURL  string  `json:"thumbnail_url"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
	Status        string  `json:"status"`
	StatusLabel   string  `json:"status_label"`
	CreatedAt     string  `json:"created_at"`
}

type ActiveFilter struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type ProductListRes struct {
	Products      []ProductSummaryRes `json:"products"`
	TotalCount    int                 `json:"total_count"`
	Page          int                 `json:"page"`
	Size          int                 `json:"size"`
	TotalPages    int                 `json:"total_pages"`
	HasNext       bool                `json:"has_next"`
	HasPrev       bool                `json:"has_prev"`
	Keyword       string              `json:"keyword,omitempty"`
	SortBy        string              `json:"sort_by"`
	ActiveFilters []ActiveFilter      `json:"active_filters"`
}

type ProductImageRes struct {
	ID          string `json:"id"`
	ImageURL    string `json:"image_url"`
	IsThumbnail bool   `json:"is_thumbnail"`
}

type ProductOptionRes struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Value           string `json:"value"`
	AdditionalPrice int    `json:"additional_price"`
	FinalPrice      int    `json:"final_price"`
	Stock           int    `json:"stock"`
	IsDefault       bool   `json:"is_default"`
	SoldOut         bool   `json:"sold_out"`
}

type ProductDetailRes struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Description     string             `json:"description"`
	Price           int                `json:"price"`
	OriginalPrice   *int               `json:"original_price,omitempty"`
	DiscountRate    int                `json:"discount_rate,omitempty"`
	Status          string             `json:"status"`
	StatusLabel     string             `json:"status_label"`
	Purchasable     bool               `json:"purchasable"`
	Images          []ProductImageRes  `json:"images"`
	Options         []ProductOptionRes `json:"options"`
	DefaultOptionID string             `json:"default_option_id,omitempty"`
	Origin          string             `json:"origin,omitempty"`
	HarvestDate     string             `json:"harvest_date,omitempty"`
	StorageMethod   string             `json:"storage_method,omitempty"`
	IsOrganic       bool               `json:"is_organic"`
	OrderCount      int                `json:"order_count"`
	Attributes      map[string]string  `json:"attributes,omitempty"`
	Tags            []string           `json:"tags,omitempty"`
	CreatedAt       string             `json:"created_at"`
	UpdatedAt       string             `json:"updated_at"`
}

type SuggestionRes struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
