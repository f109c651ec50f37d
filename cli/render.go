package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/klausmullerDev/vizinhanca-cli/pkg/models"
)

var colored = isatty.IsTerminal(os.Stdout.Fd())

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	badgeStyles = map[models.Status]lipgloss.Style{
		models.StatusOpen:       lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		models.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		models.StatusFinished:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		models.StatusCancelled:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
	badgeLabels = map[models.Status]string{
		models.StatusOpen:       "ABERTO",
		models.StatusInProgress: "EM ANDAMENTO",
		models.StatusFinished:   "CONCLUÍDO",
		models.StatusCancelled:  "CANCELADO",
	}
)

func styled(s lipgloss.Style, text string) string {
	if !colored {
		return text
	}
	return s.Render(text)
}

// StatusBadge renders a pedido status label.
func StatusBadge(s models.Status) string {
	label, ok := badgeLabels[s]
	if !ok {
		label = string(s)
	}
	style, ok := badgeStyles[s]
	if !ok {
		return label
	}
	return styled(style, label)
}

// RenderPedido formats one pedido for list output.
func RenderPedido(p *models.Pedido) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", styled(titleStyle, p.Titulo), StatusBadge(p.Status))
	fmt.Fprintf(&b, "  %s\n", p.Descricao)
	fmt.Fprintf(&b, "  %s\n", styled(mutedStyle,
		fmt.Sprintf("id: %s · por %s · %s", p.ID, p.Author.Name, humanize.Time(p.CreatedAt))))

	if p.InteressesCount > 0 {
		names := make([]string, 0, len(p.Interesses))
		for _, i := range p.Interesses {
			names = append(names, i.User.Name)
		}
		fmt.Fprintf(&b, "  %s\n", styled(mutedStyle,
			fmt.Sprintf("%d interessado(s): %s", p.InteressesCount, strings.Join(names, ", "))))
	}
	if p.Ajudante != nil {
		fmt.Fprintf(&b, "  %s\n", styled(mutedStyle, "ajudante: "+p.Ajudante.Name))
	}
	if p.UsuarioJaDemonstrouInteresse {
		fmt.Fprintf(&b, "  %s\n", styled(badgeStyles[models.StatusOpen], "✓ Interesse enviado"))
	}

	return b.String()
}

// RenderNotificacao formats one notification for list output.
func RenderNotificacao(n *models.Notificacao) string {
	marker := "●"
	if n.Lida {
		marker = " "
	}
	line := fmt.Sprintf("%s %s  %s", marker, n.Mensagem,
		styled(mutedStyle, fmt.Sprintf("id: %s · %s", n.ID, humanize.Time(n.CreatedAt))))
	if !n.Lida && colored {
		return titleStyle.Render(line)
	}
	return line
}

// RenderMensagem formats one chat message.
func RenderMensagem(m *models.Mensagem, selfID string) string {
	who := m.Sender.Name
	if m.SenderID == selfID {
		who = "você"
	}
	return fmt.Sprintf("%s %s", styled(mutedStyle, fmt.Sprintf("[%s] %s:", m.CreatedAt.Format("15:04"), who)), m.Conteudo)
}
