package model

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateBoardRequest struct {
	Name string `json:"name"`
}

type ColumnRequest struct {
	Name string `json:"name"`
}
