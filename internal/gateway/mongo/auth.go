package mongo

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"marketplace-admin-backend/internal/domain"
	"marketplace-admin-backend/internal/logger"
	"marketplace-admin-backend/internal/security"
)

const invalidCredentials = "Invalid email or password"

type authGateway struct {
	s *Store
}

// Login checks the bcrypt hash stored on the user document and issues a
// console token. Role and status are judged by the caller.
func (g *authGateway) Login(ctx context.Context, email, password string) (res *domain.LoginResult, err error) {
	const op = "auth.login"
	email = strings.ToLower(strings.TrimSpace(email))
	logger.GatewayCall(backendName, op, "email", email)
	defer func() { logger.GatewayResult(backendName, op, err, "email", email) }()

	var doc userDoc
	err = g.s.coll(g.s.names.Users).FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &domain.UnauthorizedError{Reason: domain.ReasonInvalidCredentials, Message: invalidCredentials}
	}
	if err != nil {
		return nil, wrap(op, err)
	}
	if err := security.CheckPassword(doc.Password, password); err != nil {
		return nil, &domain.UnauthorizedError{Reason: domain.ReasonInvalidCredentials, Message: invalidCredentials}
	}

	profile := doc.toDomain()
	if g.s.tokens == nil {
		return nil, &domain.GatewayError{Op: op, Err: errors.New("no token manager configured")}
	}
	token, err := g.s.tokens.GenerateAccessToken(profile.ID, profile.Email, string(profile.Role), string(profile.Status))
	if err != nil {
		return nil, wrap(op, err)
	}
	return &domain.LoginResult{
		Token:   token,
		Role:    profile.Role,
		Status:  profile.Status,
		Profile: profile,
	}, nil
}
