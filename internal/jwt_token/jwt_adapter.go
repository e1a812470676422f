package jwttoken

import (
	"eyecandy/pkg/platform/middleware/auth"
)

func ToMiddlewareClaims(claims *ViewerClaims) *auth.JWTClaims {
	return &auth.JWTClaims{
		ViewerID:   claims.ViewerID,
		ViewerType: claims.ViewerType,
	}
}

type JWTServiceAdapter struct {
	service *JWTService
}

func NewJWTServiceAdapter(service *JWTService) *JWTServiceAdapter {
	return &JWTServiceAdapter{service: service}
}

func (a *JWTServiceAdapter) ValidateToken(tokenString string) (*auth.JWTClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return ToMiddlewareClaims(claims), nil
}
