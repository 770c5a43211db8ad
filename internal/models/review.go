package models

type Review struct {
	ID          string   `json:"id"`
	ProductID   string   `json:"productId"`
	ProductName string   `json:"productName,omitempty"`
	OrderID     string   `json:"orderId,omitempty"`
	Author      string   `json:"author,omitempty"`
	Rating      int      `json:"rating"`
	Comment     string   `json:"comment"`
	Images      []string `json:"images,omitempty"`
	CreatedAt   string   `json:"createdAt"`
}

type CreateReviewReq struct {
	Rating  int      `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string   `json:"comment" validate:"required,max=1000"`
	Images  []string `json:"images" validate:"max=5,dive,url"`
}

type ReviewListReq struct {
	Page  int    `query:"page" validate:"gte=1"`
	Limit int    `query:"limit" validate:"gte=1,lte=50"`
	Tab   string `query:"tab" validate:"omitempty,oneof=written pending"`
}

type ReviewRes struct {
	ID          string   `json:"id"`
	ProductID   string   `json:"product_id"`
	ProductName string   `json:"product_name,omitempty"`
	OrderID     string   `json:"order_id,omitempty"`
	Author      string   `json:"author,omitempty"`
	Rating      int      `json:"rating"`
	Comment     string   `json:"comment"`
	Images      []string `json:"images,omitempty"`
	CreatedAt   string   `json:"created_at"`
}

type ReviewListRes struct {
	Reviews []ReviewRes `json:"reviews"`
	PageRes
}
