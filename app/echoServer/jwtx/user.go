// app/echoServer/jwtx/user.go
package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ApproverID resolves the caller identity set by the jwt middleware to
// the employee id attributed to workflow actions.
func ApproverID(c echo.Context) (uuid.UUID, error) {
	tok, ok := c.Get("user").(*jwt.Token)
	if !ok || tok == nil {
		return uuid.Nil, errors.New("no jwt token in context")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid jwt claims")
	}

	s, ok := claims["sub"].(string)
	if !ok || s == "" {
		return uuid.Nil, errors.New("sub missing in claims")
	}
	id, err := uuid.Parse(s)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, errors.New("sub is not a valid id")
	}
	return id, nil
}

// EmailFromContext returns the signed-in employee's email claim.
func EmailFromContext(c echo.Context) (string, error) {
	tok, ok := c.Get("user").(*jwt.Token)
	if !ok || tok == nil {
		return "", errors.New("no jwt token in context")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid jwt claims")
	}
	if s, ok := claims["email"].(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("email missing in claims")
}
