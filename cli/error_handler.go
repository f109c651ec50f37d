package cli

import (
	"fmt"
	"os"

	"github.com/klausmullerDev/vizinhanca-cli/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
	}
}

// Handle provides user-friendly error messages based on error type
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeUnauthorized:
		fmt.Fprintf(os.Stderr, "❌ Sua sessão expirou. Faça login novamente com 'vizinhanca login'.\n")
		return err

	case errors.ErrCodeNoSession:
		fmt.Fprintf(os.Stderr, "❌ Nenhum usuário autenticado. Rode 'vizinhanca login' primeiro.\n")
		return err

	case errors.ErrCodeBadCredentials:
		fmt.Fprintf(os.Stderr, "❌ Email ou senha incorretos.\n")
		return err

	case errors.ErrCodeNetwork:
		fmt.Fprintf(os.Stderr, "❌ Não foi possível contactar o servidor. Verifique sua conexão e a configuração de api_url.\n")
		return err

	case errors.ErrCodeValidation, errors.ErrCodeInvalidInput:
		fmt.Fprintf(os.Stderr, "❌ %s\n", vizMessage(err))
		return err

	case errors.ErrCodeInvalidTransition:
		if vizErr, ok := err.(*errors.VizError); ok {
			fmt.Fprintf(os.Stderr, "❌ Este pedido está em '%v' e não permite essa ação.\n", vizErr.Details["from"])
		}
		return err

	case errors.ErrCodeNotAuthor, errors.ErrCodeNotHelper, errors.ErrCodeAlreadyRated:
		fmt.Fprintf(os.Stderr, "❌ %s\n", vizMessage(err))
		return err

	default:
		fmt.Fprintf(os.Stderr, "❌ Erro: %s\n", vizMessage(err))

		if h.Verbose {
			if vizErr, ok := err.(*errors.VizError); ok {
				fmt.Fprintf(os.Stderr, "\nDetalhes:\n%s\n", vizErr.ToJSON())
			}
		}
		return err
	}
}

// vizMessage returns the top-level message without the code prefix.
func vizMessage(err error) string {
	if vizErr, ok := err.(*errors.VizError); ok {
		return vizErr.Message
	}
	return err.Error()
}
