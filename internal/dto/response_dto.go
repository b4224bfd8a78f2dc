package dto

// Response is the envelope every endpoint answers with.
type Response struct {
	Status  bool        `json:"status" example:"true"`
	Message string      `json:"message" example:"Success"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse documents failure envelopes in swagger.
type ErrorResponse struct {
	Status  bool        `json:"status" example:"false"`
	Message string      `json:"message" example:"Validation error"`
	Data    interface{} `json:"data,omitempty"`
}
