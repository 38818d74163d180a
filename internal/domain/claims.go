package domain

import "github.com/golang-jwt/jwt/v5"

// Claims são os dados do usuário carregados no token emitido pelo console administrativo
type Claims struct {
	UserID     int
	UserName   string
	UserEmail  string
	UserRoleID int
	jwt.RegisteredClaims
}
