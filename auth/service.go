package auth

import (
	"errors"
	"net/mail"
	"time"

	"github.com/Wanderboy007/inksesh-app/config"
	"github.com/Wanderboy007/inksesh-app/database"
	"github.com/Wanderboy007/inksesh-app/models"
	"github.com/go-pkgz/auth/v2"
	"github.com/go-pkgz/auth/v2/avatar"
	"github.com/go-pkgz/auth/v2/provider"
	"github.com/go-pkgz/auth/v2/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Global auth service instance
var authService *auth.Service

// SetupAuthService initializes the token service with a direct provider
// backed by the user table. Sessions are explicit: created at login, cleared
// at logout, expired by token duration.
func SetupAuthService() *auth.Service {
	options := auth.Opts{
		SecretReader: token.SecretFunc(func(id string) (string, error) {
			return config.Config("JWT_SECRET"), nil
		}),
		TokenDuration:  time.Hour * 24,
		CookieDuration: time.Hour * 24 * 7,
		Issuer:         "inksesh",
		URL:            config.ConfigDefault("APP_URL", "http://localhost:3000"),
		AvatarStore:    avatar.NewLocalFS("/tmp/avatars"),
	}

	service := auth.NewService(options)

	service.AddDirectProvider("local", provider.CredCheckerFunc(func(identity, password string) (bool, error) {
		return ValidateUserCredentials(identity, password)
	}))

	authService = service
	return service
}

func GetAuthService() *auth.Service {
	return authService
}

// ValidateUserCredentials checks an email-or-username identity against the
// stored bcrypt hash.
func ValidateUserCredentials(identity, password string) (bool, error) {
	user, err := LookupUser(identity)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}

	return CheckPasswordHash(password, user.Password), nil
}

// LookupUser resolves an identity to a user. Email-shaped identities are
// looked up by email, anything else by username. A missing user is (nil, nil).
func LookupUser(identity string) (*models.User, error) {
	db := database.GetDB()

	column := "username"
	if isEmail(identity) {
		column = "email"
	}

	var user models.User
	if err := db.Where(column+" = ?", identity).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(hashed), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func isEmail(identity string) bool {
	_, err := mail.ParseAddress(identity)
	return err == nil
}
