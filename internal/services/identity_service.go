package services

import (
	"fmt"

	"apotek/internal/models"

	"github.com/dgrijalva/jwt-go"
	"github.com/sirupsen/logrus"
)

// IdentityService verifies bearer tokens issued by the external identity provider.
// Tokens are never issued here.
type IdentityService struct {
	jwtSecret []byte
	log       logrus.FieldLogger
}

// NewIdentityService creates a new IdentityService for the provider's shared secret.
func NewIdentityService(jwtSecret string, log logrus.FieldLogger) *IdentityService {
	return &IdentityService{
		jwtSecret: []byte(jwtSecret),
		log:       log,
	}
}

// Enabled reports whether a secret is configured.
func (s *IdentityService) Enabled() bool {
	return len(s.jwtSecret) > 0
}

// Verify parses and validates a token and returns the patient it identifies.
// The patient id comes from "patient_id", falling back to "sub".
func (s *IdentityService) Verify(tokenString string) (models.Patient, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		s.log.WithError(err).Debug("token validation failed")
		return models.Patient{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.Patient{}, ErrInvalidToken
	}

	id, _ := claims["patient_id"].(string)
	if id == "" {
		id, _ = claims["sub"].(string)
	}
	if id == "" {
		return models.Patient{}, fmt.Errorf("%w: no patient id claim", ErrInvalidToken)
	}
	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)
	return models.Patient{ID: id, Name: name, Email: email}, nil
}
