package auth

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresIn  int64  `json:"access_token_expires_in"`
	RefreshToken          string `json:"-"`
	RefreshTokenExpiresIn int64  `json:"-"`
	UserID                string `json:"user_id"`
	CompanyID             string `json:"company_id"`
	EmployeeID            *string `json:"empleado_id"`
	Roles                 []string `json:"roles"`
	IsSuperadmin          bool   `json:"is_superadmin"`
}
