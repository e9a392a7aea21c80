package authController

import (
	"context"
	"errors"
	"time"

	"reworn/config"
	"reworn/internal/database"
	"reworn/internal/logger"

	"github.com/golang-jwt/jwt/v5"
)

// TokenLifetime is how long an issued device token stays valid. Devices are
// expected to re-register well before expiry.
const TokenLifetime = 30 * 24 * time.Hour

var (
	ErrValidation   = errors.New("validation error")
	ErrInvalidToken = errors.New("invalid token")
)

// AuthController issues and validates device tokens. The app is single
// tenant; a token proves the request comes from a registered device, not
// which person holds it.
type AuthController struct {
	db     database.DB
	Config config.Config
	log    logger.Logger
}

type RegisterDeviceRequest struct {
	DeviceID   string `json:"deviceId"`
	DeviceName string `json:"deviceName,omitempty"`
}

type DeviceTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type DeviceClaims struct {
	DeviceID   string `json:"deviceId"`
	DeviceName string `json:"deviceName,omitempty"`
	jwt.RegisteredClaims
}

type AuthControllerInterface interface {
	RegisterDevice(ctx context.Context, request *RegisterDeviceRequest) (*DeviceTokenResponse, error)
	ValidateToken(tokenString string) (*DeviceClaims, error)
}

func New(config config.Config, db database.DB) AuthControllerInterface {
	return &AuthController{
		db:     db,
		Config: config,
		log:    logger.New("authController"),
	}
}

// RegisterDevice issues a signed token for the given device identifier.
func (c *AuthController) RegisterDevice(
	ctx context.Context,
	request *RegisterDeviceRequest,
) (*DeviceTokenResponse, error) {
	log := logger.NewWithContext(ctx, "authController").Function("RegisterDevice")

	if request.DeviceID == "" {
		return nil, log.ErrorWithType(ErrValidation, "deviceId is required")
	}

	now := time.Now()
	expiresAt := now.Add(TokenLifetime)

	claims := DeviceClaims{
		DeviceID:   request.DeviceID,
		DeviceName: request.DeviceName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   request.DeviceID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(c.Config.AuthTokenSecret))
	if err != nil {
		return nil, log.Error("failed to sign device token", "error", err)
	}

	log.Info("Device registered", "deviceID", request.DeviceID)

	return &DeviceTokenResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
	}, nil
}

// ValidateToken parses and verifies a device token, returning its claims.
func (c *AuthController) ValidateToken(tokenString string) (*DeviceClaims, error) {
	log := c.log.Function("ValidateToken")

	claims := &DeviceClaims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(c.Config.AuthTokenSecret), nil
		},
	)
	if err != nil {
		return nil, log.ErrorWithType(ErrInvalidToken, "token validation failed", "error", err)
	}

	if !token.Valid || claims.DeviceID == "" {
		return nil, log.ErrorWithType(ErrInvalidToken, "token claims invalid")
	}

	return claims, nil
}
