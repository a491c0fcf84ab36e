package authz

import "net/http"

// DecisionKind — вид решения по запросу.
type DecisionKind int

const (
	// KindProceed — запрос передаётся следующему обработчику.
	KindProceed DecisionKind = iota
	// KindRedirect — запрос перенаправляется по адресу Location.
	KindRedirect
	// KindReject — запрос отклоняется со статусом Status.
	KindReject
)

// Decision — результат проверки запроса.
type Decision struct {
	Kind     DecisionKind
	Location string // адрес перенаправления при KindRedirect
	Status   int    // HTTP-статус при KindReject
}

// Proceed пропускает запрос дальше.
func Proceed() Decision {
	return Decision{Kind: KindProceed}
}

// RedirectTo перенаправляет запрос по указанному пути.
func RedirectTo(path string) Decision {
	return Decision{Kind: KindRedirect, Location: path}
}

// Reject отклоняет запрос с указанным статусом.
func Reject(status int) Decision {
	return Decision{Kind: KindReject, Status: status}
}

// Decide применяет к запросу упорядоченный набор правил:
//
//  1. Публичные страницы доступны всем.
//  2. Переходные страницы доступны всем: выход должен работать и для
//     отсутствующей сессии, а комната ожидания — для неодобренного
//     пользователя с сессией.
//  3. Аноним на любой другой странице перенаправляется на вход.
//  4. Неодобренный пользователь перенаправляется в комнату ожидания.
//     Это правило стоит раньше административного: неодобренный
//     пользователь на административном URL получает перенаправление,
//     а не отказ.
//  5. Административные URL требуют признака администратора, иначе 403.
//
// Порядок правил фиксирован и проверяется тестами.
func Decide(p Policy, v Visitor, path string) Decision {
	tier := p.Classify(path)

	switch tier {
	case TierPublic, TierAuth:
		return Proceed()
	}

	switch v.State {
	case StateAnonymous:
		return RedirectTo(p.LoginPath)
	case StateUnapproved:
		return RedirectTo(p.WaitingRoomPath)
	}

	if tier == TierAdmin && !v.IsAdmin() {
		return Reject(http.StatusForbidden)
	}
	return Proceed()
}
