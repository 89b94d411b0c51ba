package model

// 購物車只存在redis, 不落地db
type Cart struct {
	CustomerID string     `json:"customer_id"`
	Items      []CartItem `json:"items"`
}

type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}
