package model

// Claims holds the identity carried by an issued access token.
type Claims struct {
	Subject string `json:"sub"`
}
