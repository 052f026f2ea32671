package errors

import "fmt"

// Kind classifica um erro de domínio. O adapter HTTP mapeia cada Kind
// para um status code; o core permanece livre de transporte.
type Kind string

const (
	KindValidation         Kind = "ValidationError"
	KindUnauthorized       Kind = "Unauthorized"
	KindForbidden          Kind = "ForbiddenError"
	KindNotFound           Kind = "NotFoundError"
	KindConflict           Kind = "ConflictError"
	KindCompensationFailed Kind = "CompensationFailedError"
	KindInternal           Kind = "InternalError"
)

// DomainError representa um erro de domínio com contexto adicional.
// Nota: Key é um código de erro (message ID para i18n).
// As traduções devem estar em internal/infrastructure/i18n/locales/*.json
type DomainError struct {
	Kind   Kind
	Key    string
	Params map[string]interface{}
	Err    error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Key, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Key)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Validation cria um erro de validação (400)
func Validation(key string) *DomainError {
	return &DomainError{Kind: KindValidation, Key: key}
}

// Unauthorized cria um erro de autenticação (401)
func Unauthorized(key string) *DomainError {
	return &DomainError{Kind: KindUnauthorized, Key: key}
}

// Forbidden cria um erro de autorização (403)
func Forbidden(key string) *DomainError {
	return &DomainError{Kind: KindForbidden, Key: key}
}

// NotFound cria um erro de recurso ausente ou invisível (404)
func NotFound(key string) *DomainError {
	return &DomainError{Kind: KindNotFound, Key: key}
}

// Conflict cria um erro de integridade referencial (409)
func Conflict(key string, params map[string]interface{}) *DomainError {
	return &DomainError{Kind: KindConflict, Key: key, Params: params}
}

// Internal cria um erro não classificado (500). O contexto completo
// fica nos logs do servidor, nunca no corpo da resposta.
func Internal(err error) *DomainError {
	return &DomainError{Kind: KindInternal, Key: "error.internal", Err: err}
}

// CompensationFailedError indica que o delete compensatório falhou
// após uma falha de vínculo de tags. Estado fatal, não retentável,
// que exige intervenção manual: preserva o erro original e o erro do
// rollback para diagnóstico do operador.
type CompensationFailedError struct {
	OriginalErr error
	RollbackErr error
}

func (e *CompensationFailedError) Error() string {
	return fmt.Sprintf("compensation failed: original: %v; rollback: %v",
		e.OriginalErr, e.RollbackErr)
}

func (e *CompensationFailedError) Unwrap() error {
	return e.OriginalErr
}

// CompensationFailed cria o erro de compensação falha (500)
func CompensationFailed(original, rollback error) *DomainError {
	return &DomainError{
		Kind: KindCompensationFailed,
		Key:  "error.compensation_failed",
		Err:  &CompensationFailedError{OriginalErr: original, RollbackErr: rollback},
	}
}
