package calendar

import (
	"errors"
	"strings"
)

// Ошибки проверки принципала, пришедшего от слоя аутентификации.
var (
	ErrInvalidPrincipal = errors.New("invalid principal")
	ErrUnknownRole      = errors.New("unknown role")
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Principal: аутентифицированный пользователь. Ядро доверяет этим данным
// и не перепроверяет учётные данные.
type Principal struct {
	UserID   string
	Username string
	Role     Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// ValidatePrincipal:
//   - требует непустой идентификатор пользователя;
//   - подставляет роль USER, если роль не указана;
//   - отклоняет неизвестные роли.
func ValidatePrincipal(p Principal) (Principal, error) {
	p.UserID = strings.TrimSpace(p.UserID)
	p.Username = strings.TrimSpace(p.Username)
	if p.UserID == "" {
		return Principal{}, ErrInvalidPrincipal
	}

	switch Role(strings.ToUpper(string(p.Role))) {
	case "", RoleUser:
		p.Role = RoleUser
	case RoleAdmin:
		p.Role = RoleAdmin
	default:
		return Principal{}, ErrUnknownRole
	}
	return p, nil
}
