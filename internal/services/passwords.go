package services

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/rafabene/carteira-backend/internal/domain/errors"
)

const minPasswordLength = 6

// bcryptCost pode ser reduzido nos testes
var bcryptCost = bcrypt.DefaultCost

func hashPassword(password string) (string, error) {
	if len(password) < minPasswordLength || len(password) > 72 {
		return "", errors.ErrValidation
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
