package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims identifies the parent record a token was issued to.
type Claims struct {
	ParentID uint   `json:"parent_id"`
	UID      string `json:"uid"`
	Kind     string `json:"kind"`
}

type contextKey string

const ClaimsContextKey contextKey = "claims"

func GetClaims(c *gin.Context) *Claims {
	claims, exists := c.Get(string(ClaimsContextKey))
	if !exists {
		return nil
	}
	if parentClaims, ok := claims.(*Claims); ok {
		return parentClaims
	}
	return nil
}

// IssueToken signs claims with HS256, valid for ttl.
func IssueToken(secret string, ttl time.Duration, claims Claims) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"parent_id": claims.ParentID,
		"uid":       claims.UID,
		"kind":      claims.Kind,
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	})
	return token.SignedString([]byte(secret))
}

func ParseToken(secret, tokenString string) (*Claims, error) {
	mapClaims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, mapClaims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	parentID, ok := mapClaims["parent_id"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: missing parent_id", ErrInvalidToken)
	}
	uid, _ := mapClaims["uid"].(string)
	kind, _ := mapClaims["kind"].(string)

	return &Claims{
		ParentID: uint(parentID),
		UID:      uid,
		Kind:     kind,
	}, nil
}
