package model

// Template is a globally shared starter bundle with the same three-layer
// shape as a ContentVersion. Templates are read-only: cloning copies the
// layer values into a tenant, it never references the template row.
type Template struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	PreviewURL string `json:"preview_url"`
	Shell      string `json:"-"`
	Behavior   string `json:"-"`
	Payload    string `json:"-"`
}
