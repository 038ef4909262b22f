package request_models

type IssueShareLinkRequest struct {
	Locale string `json:"locale" binding:"omitempty,max=8"`
}

type ShareInviteRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"max=500"`
}
