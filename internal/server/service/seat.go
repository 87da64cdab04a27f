package service

import (
	"fmt"

	"github.com/lixenwraith/auth"
)

// issueSeatToken signs a token whose subject is the game ID
func (s *Service) issueSeatToken(gameID string) (string, error) {
	claims := map[string]any{
		"scope": "seat",
	}
	return auth.GenerateHS256Token(s.secret, gameID, claims, SeatTokenTTL)
}

// ValidateSeatToken checks that token was issued for gameID
func (s *Service) ValidateSeatToken(gameID, token string) error {
	subject, claims, err := auth.ValidateHS256Token(s.secret, token)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSeat, err)
	}
	if subject != gameID {
		return fmt.Errorf("%w: issued for another game", ErrInvalidSeat)
	}
	if scope, _ := claims["scope"].(string); scope != "seat" {
		return fmt.Errorf("%w: wrong scope", ErrInvalidSeat)
	}
	return nil
}
