package domain

import "strings"

// Code identifica un error de dominio: código estable para el cliente,
// status HTTP y mensaje localizado (pt-BR, el idioma del negocio).
type Code struct {
	Code    string
	Status  int
	Message string
}

// Catálogo de errores de dominio (sin dependencias externas).
var (
	CodeAuthenticationRequired = Code{"AUTHENTICATION_REQUIRED", 401, "Autenticação necessária. Faça login para continuar."}
	CodeSessionExpired         = Code{"SESSION_EXPIRED", 401, "Sua sessão expirou. Faça login novamente."}
	CodeTokenInvalid           = Code{"TOKEN_INVALID", 401, "Sua sessão expirou ou é inválida. Faça login novamente."}
	CodeLoginNotFound          = Code{"LOGIN_NOT_FOUND", 401, "Conta não registrada. Verifique suas credenciais e tente novamente."}
	CodeInvalidCredentials     = Code{"INVALID_CREDENTIALS", 401, "Email e/ou senha incorretos. Verifique suas credenciais e tente novamente."}
	CodeUserInactive           = Code{"USER_INACTIVE", 403, "Conta inativa. Entre em contato com o suporte."}
	CodeAccessDenied           = Code{"ACCESS_DENIED", 403, "Acesso não permitido. Entre em contato com o suporte."}
	CodeNotFound               = Code{"NOT_FOUND", 404, "Chave de busca não encontrada. Verifique a chave de busca e tente novamente."}
	CodeEmailRegistered        = Code{"EMAIL_ALREADY_REGISTERED", 409, "Email já cadastrado. Utilize um email diferente ou faça login."}
	CodeInviteAlreadySent      = Code{"INVITE_ALREADY_SENT", 409, "Convite já enviado para esse email."}
	CodeUsernameInUse          = Code{"USERNAME_IN_USE", 409, "Nome de usuário já está em uso. Escolha outro."}
	CodeBrandAlreadyExists     = Code{"BRAND_ALREADY_EXISTS", 409, "Uma marca com esse nome já existe."}
	CodeAlreadyInState         = Code{"ALREADY_IN_STATE", 409, "O usuário já se encontra nesse estado."}
	CodeAmbiguousSelector      = Code{"AMBIGUOUS_SELECTOR", 409, "Informe exatamente um critério de busca."}
	CodeValidation             = Code{"VALIDATION", 400, "Entrada inválida. Verifique os campos enviados."}
	CodeInvalidInvite          = Code{"INVALID_INVITE", 400, "Convite inválido."}
	CodeExpiredInvite          = Code{"EXPIRED_INVITE", 400, "Convite expirado. Solicite um novo convite."}
	CodeInvalidRecoveryToken   = Code{"INVALID_RECOVERY_TOKEN", 400, "Token de recuperação inválido ou já utilizado."}
	CodeInternal               = Code{"INTERNAL", 500, "Erro interno. Tente novamente mais tarde."}
)

// Error error estructurado de dominio. Puede acumular varios pares
// (código, mensaje); el status HTTP es el del primer código.
type Error struct {
	Status int
	Items  []Code
}

// Raise construye un *Error a partir de uno o más códigos del catálogo.
func Raise(codes ...Code) *Error {
	status := 400
	if len(codes) > 0 {
		status = codes[0].Status
	}
	return &Error{Status: status, Items: codes}
}

// RaiseMsg construye un *Error con un código del catálogo pero mensaje ad hoc.
func RaiseMsg(code Code, message string) *Error {
	code.Message = message
	return &Error{Status: code.Status, Items: []Code{code}}
}

// Error implementa la interfaz error.
func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Items))
	for _, it := range e.Items {
		parts = append(parts, it.Code+": "+it.Message)
	}
	return strings.Join(parts, "; ")
}

// HasCode indica si el error contiene el código dado.
func (e *Error) HasCode(code string) bool {
	for _, it := range e.Items {
		if it.Code == code {
			return true
		}
	}
	return false
}
