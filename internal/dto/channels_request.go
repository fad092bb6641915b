package dto

type CreateChannelRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=32,lowercase"`
	DisplayName string  `json:"display_name" binding:"required,min=2,max=64"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}
