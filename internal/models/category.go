package models

type Category struct {
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}
