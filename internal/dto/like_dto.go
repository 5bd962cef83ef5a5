package dto

// LikeToggleResponse is the state of a like after a toggle or status read
type LikeToggleResponse struct {
	Liked     bool  `json:"liked" example:"true"`
	LikeCount int64 `json:"likeCount" example:"1"`
}
