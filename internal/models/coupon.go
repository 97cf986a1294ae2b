package models

type Coupon struct {
	ID     string  `json:"_id"`
	Code   string  `json:"code"`
	Amount float64 `json:"amount"`
}
