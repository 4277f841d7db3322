package whatsapp

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/preferencial-eng/incendio/pkg/domain/model"
)

// BuildIssueCreatedMessage formats the WhatsApp announcement for a newly
// registered issue. The template matches the message the site crew already
// receives, in Portuguese.
func BuildIssueCreatedMessage(issue *model.Issue, site *model.SiteConfig, creatorName string) string {
	if creatorName == "" {
		creatorName = "Usuário desconhecido"
	}

	responsible := issue.Responsible
	if responsible == "" {
		responsible = "Não informado"
	}

	description := issue.Description
	if description == "" {
		description = "Sem descrição"
	}

	bottleneck := "Não"
	if issue.Bottleneck {
		bottleneck = "Sim"
	}

	message := fmt.Sprintf(`🔥 *NOVO INCÊNDIO REGISTRADO* 🔥

*Criador:* %s
*Setor:* %s
*Disciplina:* %s
*Severidade:* %d - %s
*Responsável:* %s
*Data do Incêndio:* %s
*Data a ser Apagada:* %s
*É Gargalo:* %s
*Descrição:*
%s

━━━━━━━━━━━━━━━━━━━━
📋 Sistema INCÊNDIO`,
		creatorName,
		site.SectorName(issue.Sector),
		site.DisciplineName(issue.Discipline),
		issue.Severity.Int(), issue.Severity.Name(),
		responsible,
		issue.OccurredOn.FormatBR(),
		issue.DueOn.FormatBR(),
		bottleneck,
		description,
	)

	return sanitizeText(message)
}

var multiNewline = regexp.MustCompile(`\n{3,}`)

// sanitizeText normalizes line breaks and strips non-printable characters
// that break the messaging provider
func sanitizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = multiNewline.ReplaceAllString(text, "\n\n")

	var b strings.Builder
	for _, r := range text {
		if r == '\n' || (r >= 0x20 && r <= 0x7E) || r >= 0xA0 {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
