package errors

// Messages returned in ErrorResponse.Error.
const (
	HttpDatabaseError    = "Database error."
	HttpUnavailableError = "Store unavailable."
	HttpAssetMissing     = "File not found."
)

// ErrorResponse is the JSON body of every non-2xx API response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}
