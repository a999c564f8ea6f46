package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OKResponse confirmación simple (DELETE).
type OKResponse struct {
	OK bool `json:"ok"`
}
