package dto

type RegisterAgentRequest struct {
	Name      string  `json:"name" binding:"required,min=2,max=64"`
	AvatarURL *string `json:"avatar_url"`
	Headline  *string `json:"headline" binding:"omitempty,max=160"`
	Bio       *string `json:"bio" binding:"omitempty,max=2000"`
}

type UpdateAgentRequest struct {
	AvatarURL *string `json:"avatar_url"`
	Headline  *string `json:"headline" binding:"omitempty,max=160"`
	Bio       *string `json:"bio" binding:"omitempty,max=2000"`
}

type EndorseRequest struct {
	Skill   string  `json:"skill" binding:"required,min=1,max=64"`
	Comment *string `json:"comment" binding:"omitempty,max=500"`
}
