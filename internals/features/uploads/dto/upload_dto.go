package dto

import "strings"

type UploadURLInput struct {
	Filename    string `json:"filename" validate:"required,min=1,max=255"`
	ContentType string `json:"contentType" validate:"required,uploadtype"`
}

func (in *UploadURLInput) Defaults() {
	in.Filename = strings.TrimSpace(in.Filename)
	in.ContentType = strings.ToLower(strings.TrimSpace(in.ContentType))
}

type UploadURLResponse struct {
	URL        string `json:"url"`
	ObjectName string `json:"objectName"`
	PublicURL  string `json:"publicUrl"`
}

type UploadResponse struct {
	URL string `json:"url"`
}
