package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

// Standard error codes
const (
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeInvalidEmail       = "INVALID_EMAIL"
	ErrCodeInvalidQuantity    = "INVALID_QUANTITY"
	ErrCodeInvalidPrice       = "INVALID_PRICE"
	ErrCodeInvalidCategory    = "INVALID_CATEGORY"
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeConfirmRequired    = "CONFIRMATION_REQUIRED"
	ErrCodeListingUnavailable = "LISTING_UNAVAILABLE"
	ErrCodeCorruptStore       = "CORRUPT_STORE"
	ErrCodeUnknownPage        = "UNKNOWN_PAGE"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors. Messages are shown to the user verbatim.
var (
	ErrMissingFields         = NewDomainError(ErrCodeMissingField, "Please fill in all fields")
	ErrMissingRequiredFields = NewDomainError(ErrCodeMissingField, "Please fill in all required fields")
	ErrInvalidEmail          = NewDomainError(ErrCodeInvalidEmail, "Please enter a valid email address")
	ErrInvalidQuantity       = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than 0")
	ErrInvalidPrice          = NewDomainError(ErrCodeInvalidPrice, "Price must be greater than 0")
	ErrInvalidCategory       = NewDomainError(ErrCodeInvalidCategory, "Please choose a valid category")
	ErrProductNotFound       = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrLoginToAdd            = NewDomainError(ErrCodeUnauthorised, "Please login to add a product")
	ErrLoginToDelete         = NewDomainError(ErrCodeUnauthorised, "Please login to delete products")
	ErrConfirmRequired       = NewDomainError(ErrCodeConfirmRequired, "Are you sure you want to delete this product?")
	ErrListingUnavailable    = NewDomainError(ErrCodeListingUnavailable, "Failed to load products")
	ErrCorruptProducts       = NewDomainError(ErrCodeCorruptStore, "Saved products could not be read and were reset")
	ErrCorruptSession        = NewDomainError(ErrCodeCorruptStore, "Saved login could not be read, please login again")
	ErrUnknownPage           = NewDomainError(ErrCodeUnknownPage, "Page not found")
	ErrLoginFailed           = NewDomainError(ErrCodeInternalError, "Login failed. Please try again.")
	ErrRegisterFailed        = NewDomainError(ErrCodeInternalError, "Registration failed. Please try again.")
	ErrAddProductFailed      = NewDomainError(ErrCodeInternalError, "Failed to add product. Please try again.")
	ErrDeleteProductFailed   = NewDomainError(ErrCodeInternalError, "Failed to delete product. Please try again.")
	ErrLogoutFailed          = NewDomainError(ErrCodeInternalError, "Logout failed. Please try again.")
)
