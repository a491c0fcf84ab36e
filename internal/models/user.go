// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля, флаги доступа
// и дату создания. Структура используется в бизнес‑логике и при
// работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Name         string    // Отображаемое имя пользователя
	Email        string    // Электронная почта (уникальная)
	PasswordHash string    // Хэш пароля пользователя
	IsAdmin      bool      // Признак администратора
	IsApproved   bool      // Признак одобрения учётной записи администратором
	CreatedAt    time.Time // Дата регистрации
}
