package domain

import "errors"

// Erros de domínio (sem dependências externas).
// Os casos de uso embrulham estes sentinelas com fmt.Errorf("%w: ...") para
// acrescentar contexto legível ao operador; os handlers classificam com errors.Is.
var (
	ErrNotFound         = errors.New("recurso não encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrConflict         = errors.New("conflito com o estado atual")
	ErrInvalidOperation = errors.New("operação inválida")
	ErrUnauthorized     = errors.New("não autorizado")
	ErrForbidden        = errors.New("acesso negado")
)
