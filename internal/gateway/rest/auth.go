package rest

import (
	"context"
	"errors"
	"net/http"

	"marketplace-admin-backend/internal/domain"
)

type authGateway struct {
	c *Client
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse is the user record with the token alongside.
type loginResponse struct {
	userDTO
	Token string `json:"token"`
}

func (g *authGateway) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	var resp loginResponse
	err := g.c.do(ctx, "auth.login", http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		// A 401 from the login route is a credential failure, not an expired session.
		var unauth *domain.UnauthorizedError
		if errors.As(err, &unauth) {
			return nil, &domain.UnauthorizedError{Reason: domain.ReasonInvalidCredentials, Message: unauth.Message}
		}
		return nil, err
	}
	if resp.Token == "" {
		return nil, &domain.GatewayError{Op: "auth.login", Err: errors.New("login response carried no token")}
	}

	profile := resp.userDTO.toDomain()
	return &domain.LoginResult{
		Token:   resp.Token,
		Role:    profile.Role,
		Status:  profile.Status,
		Profile: profile,
	}, nil
}
