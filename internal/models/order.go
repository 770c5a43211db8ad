package models

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderPreparing OrderStatus = "preparing"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

var orderStatusLabels = map[OrderStatus]string{
	OrderPending:   "결제대기",
	OrderConfirmed: "주문확인",
	OrderPreparing: "상품준비중",
	OrderShipped:   "배송중",
	OrderDelivered: "배송완료",
	OrderCancelled: "주문취소",
}

func (s OrderStatus) Label() string {
	if label, ok := orderStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Cancellable reports whether the order has not left the farm yet.
func (s OrderStatus) Cancellable() bool {
	return s == OrderPending || s == OrderConfirmed || s == OrderPreparing
}

type OrderListReq struct {
	Page  int    `query:"page" validate:"gte=1"`
	Limit int    `query:"limit" validate:"gte=1,lte=50"`
	Tab   string `query:"tab" validate:"oneof=all processing shipped delivered cancelled"`
}

type CancelOrderReq struct {
	Reason string `json:"reason" validate:"max=500"`
}

// upstream (camelCase)

type OrderShippingAddress struct {
	RecipientName string `json:"recipientName"`
	Phone         string `json:"phone"`
	ZipCode       string `json:"zipCode"`
	Street        string `json:"street"`
	Detail        string `json:"detail"`
}

type OrderItem struct {
	ID        string         `json:"id"`
	ProductID string         `json:"productId"`
	Product   ProductSummary `json:"product"`
	Quantity  int            `json:"quantity"`
	Price     int            `json:"price"`
}

type Order struct {
	ID              string               `json:"id"`
	UserID          string               `json:"userId"`
	OrderNumber     string               `json:"orderNumber"`
	Items           []OrderItem          `json:"items"`
	ShippingAddress OrderShippingAddress `json:"shippingAddress"`
	PaymentMethod   string               `json:"paymentMethod"`
	PaymentStatus   string               `json:"paymentStatus"`
	OrderStatus     OrderStatus          `json:"orderStatus"`
	TotalAmount     int                  `json:"totalAmount"`
	ShippingFee     int                  `json:"shippingFee"`
	CreatedAt       string               `json:"createdAt"`
	UpdatedAt       string               `json:"updatedAt"`
}

type UpstreamCancelOrderReq struct {
	Reason string `json:"reason,omitempty"`
}

// browser-facing (snake_case)

type OrderItemRes struct {
	ID           string `json:"id"`
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Quantity     int    `json:"quantity"`
	Price        int    `json:"price"`
	Subtotal     int    `json:"subtotal"`
}

type OrderRes struct {
	ID              string               `json:"id"`
	OrderNumber     string               `json:"order_number"`
	Status          string               `json:"status"`
	StatusLabel     string               `json:"status_label"`
	Cancellable     bool                 `json:"cancellable"`
	PaymentMethod   string               `json:"payment_method"`
	PaymentStatus   string               `json:"payment_status"`
	TotalAmount     int                  `json:"total_amount"`
	ShippingFee     int                  `json:"shipping_fee"`
	Items           []OrderItemRes       `json:"items"`
	ShippingAddress OrderShippingAddrRes `json:"shipping_address"`
	CreatedAt       string               `json:"created_at"`
}

type OrderShippingAddrRes struct {
	RecipientName string `json:"recipient_name"`
	Phone         string `json:"phone"`
	ZipCode       string `json:"zip_code"`
	Street        string `json:"street"`
	Detail        string `json:"detail"`
}

type OrderListRes struct {
	Orders []OrderRes `json:"orders"`
	PageRes
}
