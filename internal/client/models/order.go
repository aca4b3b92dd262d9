package models

// Order is the backend-issued handle for one pending payment. It lives only
// for the duration of a single checkout and is never persisted locally.
// Amount is in minor currency units, as returned by the order endpoint.
type Order struct {
	ID          string `json:"id"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	RazorpayKey string `json:"razorpayKey"`
}

// PaymentProof bundles the provider-issued fields the checkout hands back on
// completion. Field names follow the verification endpoint's wire contract.
type PaymentProof struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}
