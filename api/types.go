package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	pageHandler    pageHandler
	journeyHandler journeyHandler
	contactHandler contactHandler
	contentHandler contentHandler
	adminHandler   adminHandler
	seoHandler     seoHandler
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
}
