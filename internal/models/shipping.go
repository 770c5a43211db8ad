package models

type ShippingAddressReq struct {
	RecipientName string `json:"recipient_name" validate:"required,max=50"`
	Phone         string `json:"phone" validate:"required,max=20"`
	Address       string `json:"address" validate:"required,max=200"`
	DetailAddress string `json:"detail_address,omitempty" validate:"max=200"`
	IsDefault     bool   `json:"is_default"`
	Memo          string `json:"memo,omitempty" validate:"max=200"`
}

type ShippingAddressListReq struct {
	Page int `query:"page" validate:"gte=0"`
	Size int `query:"size" validate:"gte=1,lte=50"`
}

type ShippingAddress struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id,omitempty"`
	RecipientName string `json:"recipient_name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	DetailAddress string `json:"detail_address,omitempty"`
	IsDefault     bool   `json:"is_default"`
	Memo          string `json:"memo,omitempty"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

type ShippingAddressList struct {
	TotalCount int               `json:"total_count"`
	Address    []ShippingAddress `json:"address"`
}
