package contracts

type UserUpdateRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}
