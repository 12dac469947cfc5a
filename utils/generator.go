package utils

import (
	"crypto/rand"
	"errors"
	"math/big"

	"github.com/lucasditoro/reservapp/models"
	"gorm.io/gorm"
)

const codeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func generateCode(length int) (string, error) {
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeCharset))))
		if err != nil {
			return "", err
		}
		code[i] = codeCharset[n.Int64()]
	}
	return string(code), nil
}

// GenerateUniqueBookingCode returns a short reference code not yet used by
// any booking. Managers read these over the phone, so the charset skips
// ambiguous characters.
func GenerateUniqueBookingCode(tx *gorm.DB) (string, error) {
	for attempts := 0; attempts < 10; attempts++ {
		code, err := generateCode(6)
		if err != nil {
			return "", err
		}
		var count int64
		if err := tx.Model(&models.Booking{}).Where("code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", errors.New("could not generate a unique booking code")
}
