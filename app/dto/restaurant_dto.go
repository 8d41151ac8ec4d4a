package dto

// RegisterRequest represents the request payload for restaurant registration
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=255" example:"Pizza Co"`
	Email    string `json:"email" validate:"required,max=255" example:"a@x.com"`
	Password string `json:"password" validate:"required,max=72" example:"secret123"`
}

// RegisterResponse is returned after a successful registration. It never carries a token.
type RegisterResponse struct {
	ID     uint   `json:"id" example:"1"`
	Name   string `json:"name" example:"Pizza Co"`
	Online bool   `json:"online" example:"false"`
	Paid   bool   `json:"paid" example:"false"`
}

// LoginRequest represents the request payload for restaurant login
type LoginRequest struct {
	Email    string `json:"email" validate:"required" example:"a@x.com"`
	Password string `json:"password" validate:"required" example:"secret123"`
}

// LoginResponse carries the issued token and the public projection of the restaurant
type LoginResponse struct {
	Token      string              `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType  string              `json:"token_type" example:"Bearer"`
	ExpiresIn  int                 `json:"expires_in" example:"3600"`
	Restaurant RestaurantPublicDTO `json:"restaurant"`
}

// RestaurantPublicDTO is the login projection: no email, no digest
type RestaurantPublicDTO struct {
	ID     uint   `json:"id" example:"1"`
	Name   string `json:"name" example:"Pizza Co"`
	Online bool   `json:"online" example:"false"`
}

// RestaurantDTO is the listing projection
type RestaurantDTO struct {
	ID     uint   `json:"id" example:"1"`
	Name   string `json:"name" example:"Pizza Co"`
	Email  string `json:"email" example:"a@x.com"`
	Online bool   `json:"online" example:"true"`
	Paid   bool   `json:"paid" example:"false"`
}

// SetOnlineRequest toggles the caller's visibility. The field must be present; false is a valid value.
type SetOnlineRequest struct {
	Online *bool `json:"online" validate:"required" example:"true"`
}

// SetOnlineResponse reports the persisted visibility
type SetOnlineResponse struct {
	ID     uint   `json:"id" example:"1"`
	Name   string `json:"name" example:"Pizza Co"`
	Online bool   `json:"online" example:"true"`
}
