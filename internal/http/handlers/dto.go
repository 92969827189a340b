package handlers

import "foodline-dispatch/internal/domain"

type operatorDTO struct {
	ID     int64                 `json:"id"`
	Role   domain.OperatorRole   `json:"role"`
	Status domain.OperatorStatus `json:"status"`
}

type registerOperatorRequest struct {
	ID int64 `json:"id"`
}

type setOperatorStatusRequest struct {
	Status string `json:"status"`
}

type submitOrderRequest struct {
	CustomerID   int64   `json:"customer_id"`
	CustomerName string  `json:"customer_name,omitempty"`
	Address      string  `json:"address"`
	ImageRef     string  `json:"image_ref"`
	ItemTotal    float64 `json:"item_total"`
	GST          float64 `json:"gst"`
	PaymentMode  string  `json:"payment_mode"`
	PaymentRef   string  `json:"payment_ref,omitempty"`
}

type orderDTO struct {
	Token      int64              `json:"token"`
	Status     domain.OrderStatus `json:"status"`
	CustomerID int64              `json:"customer_id"`
	OperatorID int64              `json:"operator_id"`
	Address    string             `json:"address"`
	ItemTotal  float64            `json:"item_total"`
	GST        float64            `json:"gst"`
	FinalPrice float64            `json:"final_price"`
	Payment    string             `json:"payment_mode"`
}

type orderActionRequest struct {
	OperatorID int64 `json:"operator_id"`
}

type completeOrderRequest struct {
	OperatorID  int64  `json:"operator_id"`
	TrackingRef string `json:"tracking_ref"`
}

type relayTextRequest struct {
	SenderID int64  `json:"sender_id"`
	Text     string `json:"text"`
}

type relayMediaRequest struct {
	SenderID int64  `json:"sender_id"`
	MediaRef string `json:"media_ref"`
}

type closeSessionRequest struct {
	PartyID int64 `json:"party_id"`
}

type startIntakeRequest struct {
	CustomerID   int64  `json:"customer_id"`
	Mode         string `json:"mode"`
	CustomerName string `json:"customer_name,omitempty"`
}

type intakeTextRequest struct {
	CustomerID int64  `json:"customer_id"`
	Text       string `json:"text"`
}

type intakePhotoRequest struct {
	CustomerID int64  `json:"customer_id"`
	ImageRef   string `json:"image_ref"`
}

type intakePaymentRequest struct {
	CustomerID  int64  `json:"customer_id"`
	PaymentMode string `json:"payment_mode"`
}

type intakeReplyDTO struct {
	Prompt     string  `json:"prompt,omitempty"`
	Done       bool    `json:"done"`
	Token      int64   `json:"token,omitempty"`
	FinalPrice float64 `json:"final_price,omitempty"`
}
