package auth

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost matches the work factor used when the user base was
// created; raising it only affects newly hashed passwords.
const DefaultBcryptCost = 10

// PasswordHasher wraps bcrypt hashing and verification.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: DefaultBcryptCost}
}

// NewPasswordHasherWithCost allows tuning the work factor, mainly for
// tests where the default cost would dominate runtime.
func NewPasswordHasherWithCost(cost int) *PasswordHasher {
	return &PasswordHasher{cost: cost}
}

// Hash generates a salted bcrypt hash of the given password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify reports whether password matches hash. All failure modes
// (wrong password, malformed hash) collapse to false.
func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
