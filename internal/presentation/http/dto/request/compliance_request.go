package request

// ExpiryRequest sets or, with a null or empty date, clears a document expiry
type ExpiryRequest struct {
	ExpiryDate *string `json:"expiry_date"`
}

// CustomDocumentRequest adds a custom compliance document
type CustomDocumentRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ExpiryDate  *string `json:"expiry_date"`
}
