package admins_test

import "github.com/golang-jwt/jwt/v5"

func subject(id string) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{Subject: id}
}
