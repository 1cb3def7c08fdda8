package entity

// Perfis de acesso.
const (
	RoleAdmin       = "admin"
	RoleCoordinator = "coordenador"
	RoleOperator    = "operador"
	RoleViewer      = "visualizador"
)

// User representa o operador autenticado. No MVP existe apenas o usuário demo configurado.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt
	Role         string
}
