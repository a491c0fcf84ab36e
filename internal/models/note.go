package models

import "time"

// Note представляет заметку пользователя.
type Note struct {
	UID       string    // Уникальный идентификатор заметки
	UserUID   string    // Идентификатор владельца
	Title     string    // Заголовок заметки
	Body      string    // Текст заметки
	CreatedAt time.Time // Дата создания
}
