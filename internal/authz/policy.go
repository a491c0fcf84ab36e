package authz

import "slices"

// Tier — уровень доступа, к которому относится URL.
type Tier int

const (
	// TierPublic — страницы, доступные всем без сессии.
	TierPublic Tier = iota
	// TierAuth — переходные страницы аутентификации: выход из системы
	// и комната ожидания. Должны быть доступны и без сессии, и
	// неодобренному пользователю с сессией.
	TierAuth
	// TierAdmin — пространство URL, требующее признака администратора.
	TierAdmin
	// TierProtected — все остальные URL, требуют одобренного пользователя.
	TierProtected
)

// Policy задает разбиение URL на уровни доступа и адреса перенаправлений.
type Policy struct {
	PublicPaths     []string // точное совпадение
	AuthPaths       []string // точное совпадение
	AdminPrefixes   []string // совпадение по префиксу
	LoginPath       string
	WaitingRoomPath string
}

// DefaultPolicy возвращает политику приложения заметок.
func DefaultPolicy() Policy {
	return Policy{
		PublicPaths:     []string{"/", "/auth/login/", "/auth/register/"},
		AuthPaths:       []string{"/auth/logout/", "/auth/waiting-room/"},
		AdminPrefixes:   []string{"/admin/"},
		LoginPath:       "/auth/login/",
		WaitingRoomPath: "/auth/waiting-room/",
	}
}

// Classify относит путь к уровню доступа. Уровни проверяются в порядке
// приоритета: публичные, переходные, административные, защищённые.
func (p Policy) Classify(path string) Tier {
	if slices.Contains(p.PublicPaths, path) {
		return TierPublic
	}
	if slices.Contains(p.AuthPaths, path) {
		return TierAuth
	}
	for _, prefix := range p.AdminPrefixes {
		if len(path) >= len(prefix) && path[:len(prefix)] == prefix {
			return TierAdmin
		}
	}
	return TierProtected
}
