package dto

type UserCreateDTO struct {
	Name string `json:"name"`
}

type UserUpdateDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
