// Package authz реализует движок авторизации запросов: классификацию
// URL по уровням доступа и упорядоченный набор правил, определяющий,
// пропустить запрос, перенаправить его или отклонить.
package authz

import "github.com/magabrotheeeer/session-gate/internal/models"

// VisitorState описывает состояние посетителя с точки зрения авторизации.
type VisitorState int

const (
	// StateAnonymous — сессия отсутствует или не разрешилась в пользователя.
	StateAnonymous VisitorState = iota
	// StateUnapproved — пользователь аутентифицирован, но ещё не одобрен.
	StateUnapproved
	// StateApproved — пользователь аутентифицирован и одобрен.
	StateApproved
)

// Visitor — размеченное состояние посетителя. Поле User заполнено
// тогда и только тогда, когда State не StateAnonymous, поэтому правила
// никогда не обращаются к полям отсутствующего пользователя.
type Visitor struct {
	State VisitorState
	User  *models.User
}

// NewVisitor строит состояние посетителя из результата разрешения
// сессии. nil означает анонимного посетителя. Это единственный
// способ получить Visitor.
func NewVisitor(user *models.User) Visitor {
	switch {
	case user == nil:
		return Visitor{State: StateAnonymous}
	case !user.IsApproved:
		return Visitor{State: StateUnapproved, User: user}
	default:
		return Visitor{State: StateApproved, User: user}
	}
}

// IsAdmin сообщает, является ли посетитель администратором.
func (v Visitor) IsAdmin() bool {
	return v.User != nil && v.User.IsAdmin
}
