package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/vineetk-singh/auctionapi/pkg/database"
	"golang.org/x/crypto/bcrypt"
)

// User roles
const (
	RolePlayer = "Player"
	RoleOwner  = "Owner"
	RoleAdmin  = "Admin"
)

// User is the only entity with a system-assigned ID; usernames carry the
// uniqueness constraint instead.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"default:Player" json:"role"` // "Player", "Owner" or "Admin"
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// IsValidRole reports whether role is one of the known user roles.
func IsValidRole(role string) bool {
	switch role {
	case RolePlayer, RoleOwner, RoleAdmin:
		return true
	}
	return false
}

// SetPassword hashes and stores the plaintext password on the user.
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword compares the plaintext password against the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

// CreateUser hashes the password and persists a new user. Role defaults to
// Player when empty.
func CreateUser(db *database.DB, username, password, role string) (*User, error) {
	if role == "" {
		role = RolePlayer
	}

	user := &User{
		ID:       uuid.New(),
		Username: username,
		Role:     role,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}

	err := db.Create(user).Error
	return user, err
}

// GetUserByUsername fetches a user by its unique username
func GetUserByUsername(db *database.DB, username string) (*User, error) {
	var user User
	err := db.Where("username = ?", username).First(&user).Error
	return &user, err
}

// GetUserByID fetches a user by ID
func GetUserByID(db *database.DB, id uuid.UUID) (*User, error) {
	var user User
	err := db.Where("id = ?", id).First(&user).Error
	return &user, err
}
