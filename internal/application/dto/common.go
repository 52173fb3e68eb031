package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple con mensaje (disparos manuales de barridos).
type MessageResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}
