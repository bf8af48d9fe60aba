package services

import "fmt"

// OperationError is a validation failure carrying the user-facing message.
// Handlers convert these into a {success:false, message} response; any other
// error class is reported with a generic message so storage details never
// leak to the caller.
type OperationError struct {
	Code    string
	Message string
}

func (e *OperationError) Error() string {
	return e.Message
}

// Error codes for the ledger operations
const (
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeEmptyCode          = "EMPTY_CODE"
	CodeNotFound           = "NOT_FOUND"
	CodeInactive           = "INACTIVE"
	CodeAlreadyRedeemed    = "ALREADY_REDEEMED"
	CodeLimitReached       = "LIMIT_REACHED"
	CodeExpired            = "EXPIRED"
	CodeAlreadyClaimed     = "ALREADY_CLAIMED_TODAY"
	CodeInsufficientFunds  = "INSUFFICIENT_FUNDS"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeBetNotFound        = "BET_NOT_FOUND"
	CodeBetClosed          = "BET_CLOSED"
	CodeItemNotFound       = "ITEM_NOT_FOUND"
	CodeAlreadyOwned       = "ALREADY_OWNED"
	CodeInvalidBet         = "INVALID_BET"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
)

var (
	// ErrUnauthorized is returned when no authenticated user is present
	ErrUnauthorized = &OperationError{Code: CodeUnauthorized, Message: "Usuário não autenticado."}

	// ErrEmptyCode is returned when the submitted code is blank
	ErrEmptyCode = &OperationError{Code: CodeEmptyCode, Message: "Por favor, insira um código."}

	// ErrCodeNotFound is returned when no promo code matches
	ErrCodeNotFound = &OperationError{Code: CodeNotFound, Message: "Código inválido ou não encontrado."}

	// ErrAlreadyRedeemed is returned when the user already redeemed the code
	ErrAlreadyRedeemed = &OperationError{Code: CodeAlreadyRedeemed, Message: "Você já resgatou este código."}

	// ErrLimitReached is returned when the code's usage cap is exhausted
	ErrLimitReached = &OperationError{Code: CodeLimitReached, Message: "Este código promocional atingiu seu limite de usos."}

	// ErrCodeExpired is returned when the code's expiry has passed
	ErrCodeExpired = &OperationError{Code: CodeExpired, Message: "Este código expirou."}

	// ErrAlreadyClaimedToday is returned on a second daily claim within the
	// same UTC day
	ErrAlreadyClaimedToday = &OperationError{Code: CodeAlreadyClaimed, Message: "Você já resgatou sua recompensa diária hoje."}

	// ErrInsufficientFunds is returned when a debit exceeds the balance
	ErrInsufficientFunds = &OperationError{Code: CodeInsufficientFunds, Message: "Saldo insuficiente."}

	// ErrUserNotFound is returned when the authenticated user has no record
	ErrUserNotFound = &OperationError{Code: CodeUserNotFound, Message: "Usuário não encontrado."}

	// ErrBetNotFound is returned when no bet matches
	ErrBetNotFound = &OperationError{Code: CodeBetNotFound, Message: "Aposta não encontrada."}

	// ErrBetAlreadySettled is returned when settling a non-open bet
	ErrBetAlreadySettled = &OperationError{Code: CodeBetClosed, Message: "Esta aposta já foi liquidada."}

	// ErrItemNotFound is returned when a store item is missing or inactive
	ErrItemNotFound = &OperationError{Code: CodeItemNotFound, Message: "Item não encontrado ou indisponível."}

	// ErrInvalidBet is returned for an empty slip or non-positive stake
	ErrInvalidBet = &OperationError{Code: CodeInvalidBet, Message: "Aposta inválida."}

	// ErrInvalidCredentials is returned on failed admin login
	ErrInvalidCredentials = &OperationError{Code: CodeInvalidCredentials, Message: "Credenciais inválidas."}
)

// ErrInactiveCode builds the failure for a code already in a terminal state,
// naming that state in the message
func ErrInactiveCode(status string) *OperationError {
	return &OperationError{
		Code:    CodeInactive,
		Message: fmt.Sprintf("Este código não está mais ativo (status: %s).", status),
	}
}
