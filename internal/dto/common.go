package dto

// ListParams are the common pagination query parameters.
type ListParams struct {
	AccountID string `form:"accountID"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// ErrorResponse is the body of every non-2xx response. Code is a stable
// machine-readable error kind.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
