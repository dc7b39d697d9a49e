package utils

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/o1egl/paseto"
)

const (
	AccessTokenExpiry  = 24 * time.Hour
	RefreshTokenExpiry = 7 * 24 * time.Hour
)

// TokenClaims is the payload carried inside a PASETO token.
type TokenClaims struct {
	UserID string    `json:"userId"`
	Role   string    `json:"role"`
	Expiry time.Time `json:"expiry"`
}

// GetSymmetricKey reads the PASETO symmetric key from the environment.
// PASETO v2 local mode requires exactly 32 bytes.
func GetSymmetricKey() []byte {
	key := os.Getenv("SYMMETRIC_KEY")
	if len(key) != 32 {
		log.Fatalf("SYMMETRIC_KEY must be 32 bytes long. Current length: %d", len(key))
	}
	return []byte(key)
}

// GenerateTokens mints the access and refresh token pair for a user.
func GenerateTokens(userID, role string) (accessToken, refreshToken string, err error) {
	accessToken, err = generatePASEToken(userID, role, AccessTokenExpiry)
	if err != nil {
		log.Printf("Error generating access token: %v", err)
		return "", "", err
	}

	refreshToken, err = generatePASEToken(userID, role, RefreshTokenExpiry)
	if err != nil {
		log.Printf("Error generating refresh token: %v", err)
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// GenerateAccessToken mints only the access token, used on refresh.
func GenerateAccessToken(userID, role string) (string, error) {
	token, err := generatePASEToken(userID, role, AccessTokenExpiry)
	if err != nil {
		log.Printf("Error generating access token: %v", err)
		return "", err
	}
	return token, nil
}

func generatePASEToken(userID, role string, expiry time.Duration) (string, error) {
	claims := TokenClaims{
		UserID: userID,
		Role:   role,
		Expiry: time.Now().Add(expiry),
	}

	token, err := paseto.NewV2().Encrypt(GetSymmetricKey(), claims, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// ValidateToken decrypts the token, rejects expired ones, and, when
// requiredRoles is non-empty, requires the claim's role to be one of them.
func ValidateToken(tokenString string, requiredRoles ...string) (*TokenClaims, error) {
	claims, err := parseToken(tokenString)
	if err != nil {
		log.Printf("Token parsing failed: %v", err)
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if time.Now().After(claims.Expiry) {
		log.Printf("Token expired: %v", claims)
		return nil, errors.New("token expired")
	}

	if len(requiredRoles) == 0 {
		return claims, nil
	}

	for _, role := range requiredRoles {
		if claims.Role == role {
			return claims, nil
		}
	}

	log.Printf("Insufficient permissions. Required roles: %v, found role: %v", requiredRoles, claims.Role)
	return nil, errors.New("insufficient permissions")
}

func parseToken(tokenString string) (*TokenClaims, error) {
	var claims TokenClaims
	if err := paseto.NewV2().Decrypt(tokenString, GetSymmetricKey(), &claims, nil); err != nil {
		log.Printf("Token decryption failed: %v", err)
		return nil, fmt.Errorf("failed to decrypt token: %w", err)
	}
	return &claims, nil
}
