package models

type CartItem struct {
	ID        string         `json:"id"`
	ProductID string         `json:"productId"`
	Product   ProductSummary `json:"product"`
	Quantity  int            `json:"quantity"`
	CreatedAt string         `json:"createdAt"`
}

type Cart struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Items       []CartItem `json:"items"`
	TotalAmount int        `json:"totalAmount"`
	CreatedAt   string     `json:"createdAt"`
	UpdatedAt   string     `json:"updatedAt"`
}

type CartCount struct {
	Count int `json:"count"`
}

type AddToCartReq struct {
	ProductID string `json:"product_id" validate:"required"`
	OptionID  string `json:"option_id"`
	Quantity  int    `json:"quantity" validate:"required,gte=1,lte=99"`
}

type UpstreamAddToCartReq struct {
	ProductID string `json:"productId"`
	OptionID  string `json:"optionId,omitempty"`
	Quantity  int    `json:"quantity"`
}

type UpdateCartItemReq struct {
	Quantity int `json:"quantity" validate:"required,gte=1,lte=99"`
}

type RemoveCartItemsReq struct {
	ItemIDs []string `json:"item_ids" validate:"required,min=1"`
}

type UpstreamRemoveCartItemsReq struct {
	ItemIDs []string `json:"itemIds"`
}

type CartItemRes struct {
	ID           string `json:"id"`
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Price        int    `json:"price"`
	Quantity     int    `json:"quantity"`
	Subtotal     int    `json:"subtotal"`
}

type CartRes struct {
	Items       []CartItemRes `json:"items"`
	ItemCount   int           `json:"item_count"`
	TotalAmount int           `json:"total_amount"`
}
