package errors

import "errors"

// Business errors
// Nota: Estes são códigos de erro (message IDs para i18n).
// As traduções devem estar em internal/infrastructure/i18n/locales/*.json
var (
	ErrUserNotFound       = errors.New("error.user_not_found")
	ErrUserInactive       = errors.New("error.user_inactive")
	ErrEmailAlreadyExists = errors.New("error.email_already_exists")
	ErrInvalidCredentials = errors.New("error.invalid_credentials")
	ErrUnauthorized       = errors.New("error.unauthorized")
	ErrForbidden          = errors.New("error.forbidden")
	ErrValidation         = errors.New("error.validation.detail")

	ErrWalletNotFound        = errors.New("error.wallet_not_found")
	ErrCategoryNotFound      = errors.New("error.category_not_found")
	ErrCategoryDuplicate     = errors.New("error.category_duplicate")
	ErrCategoryInUse         = errors.New("error.category_in_use")
	ErrCategoryTypeLocked    = errors.New("error.category_type_locked")
	ErrCategoryTypeMismatch  = errors.New("error.category_type_mismatch")
	ErrGlobalImmutable       = errors.New("error.global_immutable")
	ErrPaymentMethodNotFound = errors.New("error.payment_method_not_found")
	ErrPaymentMethodInUse    = errors.New("error.payment_method_in_use")
	ErrPaymentMethodExists   = errors.New("error.payment_method_duplicate")
	ErrNoPaymentMethod       = errors.New("error.no_payment_method")
	ErrTransactionNotFound   = errors.New("error.transaction_not_found")
	ErrReminderNotFound      = errors.New("error.reminder_not_found")
	ErrTokenNotFound         = errors.New("error.token_not_found")
	ErrMasterTokenImmutable  = errors.New("error.master_token_immutable")
	ErrThemeNotFound         = errors.New("error.theme_not_found")
	ErrThemeDuplicate        = errors.New("error.theme_duplicate")
	ErrFileNotFound          = errors.New("error.file_not_found")
	ErrWrongPassword         = errors.New("error.wrong_password")

	ErrImpersonationSelf       = errors.New("error.impersonation_self")
	ErrImpersonationTarget     = errors.New("error.impersonation_target")
	ErrImpersonationNotActive  = errors.New("error.impersonation_not_active")
	ErrImpersonationInProgress = errors.New("error.impersonation_in_progress")

	ErrWebhookHash = errors.New("error.webhook_hash")
)

// Domain errors
// Nota: Estes são códigos de erro (message IDs para i18n).
// As traduções devem estar em internal/infrastructure/i18n/locales/*.json
var (
	ErrInvalidEmail           = errors.New("error.invalid_email")
	ErrInvalidAmount          = errors.New("error.invalid_amount")
	ErrInvalidTransactionType = errors.New("error.invalid_transaction_type")
	ErrInvalidTransactionDate = errors.New("error.invalid_transaction_date")
	ErrInvalidStatus          = errors.New("error.invalid_transaction_status")
	ErrInvalidReminderDate    = errors.New("error.invalid_reminder_date")
	ErrInvalidRole            = errors.New("error.invalid_role")
)

// ProblemType define tipos de problemas (URIs RFC 7807)
// Nota: O domínio base virá de configuração (API_BASE_URL)
//
//nolint:misspell
const (
	ProblemTypeValidation   = "/problems/validation-error"
	ProblemTypeNotFound     = "/problems/not-found"
	ProblemTypeConflict     = "/problems/conflict"
	ProblemTypeUnauthorized = "/problems/unauthorized"
	ProblemTypeForbidden    = "/problems/forbidden"
	ProblemTypeInternal     = "/problems/internal-error"
	ProblemTypeBadRequest   = "/problems/bad-request"
)

// DomainError associa um erro sentinela a parâmetros de interpolação da mensagem
type DomainError struct {
	Err    error
	Params map[string]interface{}
}

// New cria um DomainError com parâmetros para a tradução
func New(err error, params map[string]interface{}) *DomainError {
	return &DomainError{Err: err, Params: params}
}

func (e *DomainError) Error() string {
	return e.Err.Error()
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Key retorna o message ID para i18n
func (e *DomainError) Key() string {
	return e.Err.Error()
}

// ParamsOf extrai os parâmetros de tradução de err, se houver
func ParamsOf(err error) map[string]interface{} {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Params
	}
	return nil
}
