package models

import "time"

// Role - закрытый набор ролей пользователя
type Role string

const (
	RoleBuyer Role = "buyer"
	RoleShop  Role = "shop"
	RoleAdmin Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

// IsValid проверяет, что роль входит в закрытый набор
func (r Role) IsValid() bool {
	switch r {
	case RoleBuyer, RoleShop, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanSell - может ли пользователь с этой ролью владеть магазином и продавать
func (r Role) CanSell() bool {
	return r == RoleShop
}

// CanAdminister - административные права роли. Доступ к админке дополнительно требует IsSuperuser.
func (r Role) CanAdminister() bool {
	return r == RoleAdmin
}

// User представляет пользователя площадки
type User struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PassHash    []byte    `json:"-"`
	IsActive    bool      `json:"is_active"`
	IsSuperuser bool      `json:"is_superuser"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}
