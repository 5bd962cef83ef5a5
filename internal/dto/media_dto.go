package dto

import "time"

// PresignedURLRequest asks for an upload URL for an image
// @Description kind is "avatar" or "featured"
type PresignedURLRequest struct {
	Kind        string `json:"kind" binding:"required,oneof=avatar featured" example:"featured"`
	FileName    string `json:"fileName" binding:"required,max=255" example:"cover.png"`
	ContentType string `json:"contentType" binding:"required" example:"image/png"`
	FileSize    int64  `json:"fileSize" binding:"required,min=1" example:"204800"`
}

// PresignedURLResponse contains the upload URL and the final public URL
type PresignedURLResponse struct {
	UploadURL string    `json:"uploadUrl"`
	FileKey   string    `json:"fileKey" example:"blog/featured/539167fb-b599-41ba-9ead-344a6d0b3a2f/2024/01/uuid_1700000000.png"`
	FileURL   string    `json:"fileUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}
