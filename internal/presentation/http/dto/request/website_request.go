package request

// UpdateWebsiteRequest edits the business website; omitted fields are kept
type UpdateWebsiteRequest struct {
	TemplateID *string                `json:"template_id"`
	Slug       *string                `json:"slug"`
	Title      *string                `json:"title"`
	Content    map[string]interface{} `json:"content"`
}
