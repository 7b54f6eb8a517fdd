package users_dto

type SignUpRequestDTO struct {
	Username string `json:"username" binding:"required,min=1,max=80"`
	Email    string `json:"email"    binding:"required,email,max=80"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequestDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenPairResponseDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AccessTokenResponseDTO struct {
	AccessToken string `json:"access_token"`
}
