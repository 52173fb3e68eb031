package dto

import "time"

// RegisterLotRequest body para POST /validade/registro.
type RegisterLotRequest struct {
	ProductID    string `json:"produto_id"`
	LotEntryDate string `json:"data_entrada_lote"` // YYYY-MM-DD
	ExpiryDate   string `json:"data_validade"`     // YYYY-MM-DD
	Quantity     int    `json:"quantidade"`
	Status       string `json:"status,omitempty"` // default ATIVO
	Note         string `json:"observacao,omitempty"`
}

// WriteOffRequest body para POST /validade/perda.
type WriteOffRequest struct {
	LotID string `json:"lote_id"`
	Note  string `json:"observacao,omitempty"`
}

// LotResponse representación HTTP de un lote de validade.
type LotResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"produto_id"`
	LotEntryDate string    `json:"data_entrada_lote"`
	ExpiryDate   string    `json:"data_validade"`
	Quantity     int       `json:"quantidade"`
	Status       string    `json:"status"`
	RegisteredAt time.Time `json:"data_registro"`
	Note         string    `json:"observacao,omitempty"`
}

// NotificationRequest contrato de despacho hacia el notification-service.
type NotificationRequest struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Type      string `json:"type"` // EMAIL, SMS, IN_APP
}

// ProductResponse datos mínimos del product-service usados por el ledger.
type ProductResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Price        string `json:"price"`
	CategoryName string `json:"category_name"`
}
