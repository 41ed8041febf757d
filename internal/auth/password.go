package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/blog-service/pkg/errs"
)

// PasswordHasher 单向口令散列
type PasswordHasher interface {
	Hash(raw string) (string, error)
	// Verify 口令匹配返回 true
	Verify(hash, raw string) bool
}

type bcryptHasher struct{ cost int }

// NewBcryptHasher cost<=0 时使用 bcrypt.DefaultCost
func NewBcryptHasher(cost int) PasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return bcryptHasher{cost: cost}
}

func (h bcryptHasher) Hash(raw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(raw), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", errs.Validation("password must be at most 72 bytes")
		}
		return "", err
	}
	return string(b), nil
}

func (h bcryptHasher) Verify(hash, raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}
