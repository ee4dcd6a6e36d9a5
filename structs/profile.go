package structs

// UpdateTagsRequest replaces the caller's tag-sets.
type UpdateTagsRequest struct {
	Tags [][]string `json:"tags" binding:"required"`
}
