// Package session реализует серверные сессии: генерацию токенов,
// хранение связки токен -> пользователь в Redis с истечением срока
// жизни и передачу токена через HTTP cookie.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// keySize задает длину токена в байтах, 32 байта = 256 бит энтропии.
const keySize = 32

// GenerateKey возвращает криптографически случайный сессионный токен
// в hex-кодировке. Токен непредсказуем и не содержит никаких
// производных от времени или счетчиков компонентов.
func GenerateKey() (string, error) {
	const op = "session.GenerateKey"

	b := make([]byte, keySize)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return hex.EncodeToString(b), nil
}
