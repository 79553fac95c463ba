package dto

type AuthResponse struct {
	AccessToken string     `json:"access_token"`
	User        UserOutput `json:"user"`
}
