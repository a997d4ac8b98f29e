package workflowsvc

import (
	"fmt"
	"strings"

	contentmodels "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/content/models"
	workflowmodels "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/workflow/models"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/utility"
)

// Soạn tin nhắn SMS cho approval loop. Ba ngôn ngữ: en, fr, es — lạ thì về en.
// Bảng từ vựng trong HELP là contract với parser, đổi ở đây phải đổi cả parser.

type msgSet struct {
	preview        string // header preview
	vocabulary     string
	help           string
	confirmApprove string
	confirmReject  string
	editPrompt     string
	expired        string
	noActive       string
	already        string
	terminal       string // fmt: status
	menuHeader     string
	menuFooter     string
	customInvite   string
	statusHeader   string
}

var messages = map[string]msgSet{
	"en": {
		preview:        "📣 New %s draft for your restaurant:",
		vocabulary:     "Reply APPROVE ✅ to publish, EDIT ✏️ to revise, REJECT ❌ to discard, VIEW 📱 to see it again, HELP for all commands.",
		help:           "Commands: APPROVE ✅ publish · EDIT ✏️ revise · REJECT ❌ discard · VIEW 📱 preview · STATUS current state · SUGGESTIONS daily ideas · 1-5 pick an idea · CUSTOM record your own · HELP this message.",
		confirmApprove: "✅ Published! Your %s post is live. Great choice.",
		confirmReject:  "❌ Draft discarded. Send a new voice note anytime or reply SUGGESTIONS for ideas.",
		editPrompt:     "✏️ Tell me what to change (e.g. \"shorter, mention the lobster special\") and I'll redo the draft.",
		expired:        "⏰ This approval expired after 24 hours. Send a new voice note to start fresh.",
		noActive:       "You have no content waiting for review. Send a voice note or reply SUGGESTIONS for today's ideas.",
		already:        "👍 Already handled that message.",
		terminal:       "This workflow is already %s and can't be changed.",
		menuHeader:     "💡 Today's content ideas:",
		menuFooter:     "Reply 1-5 to pick an idea, or CUSTOM to record your own.",
		customInvite:   "🎙️ Great! Record a voice note in the app and I'll turn it into posts.",
		statusHeader:   "📊 Current workflow: %s (%s), expires %s.",
	},
	"fr": {
		preview:        "📣 Nouveau brouillon %s pour votre restaurant :",
		vocabulary:     "Répondez APPROVE ✅ pour publier, EDIT ✏️ pour réviser, REJECT ❌ pour abandonner, VIEW 📱 pour revoir, HELP pour toutes les commandes.",
		help:           "Commandes : APPROVE ✅ publier · EDIT ✏️ réviser · REJECT ❌ abandonner · VIEW 📱 aperçu · STATUS état actuel · SUGGESTIONS idées du jour · 1-5 choisir une idée · CUSTOM enregistrer la vôtre · HELP ce message.",
		confirmApprove: "✅ Publié ! Votre publication %s est en ligne. Excellent choix.",
		confirmReject:  "❌ Brouillon abandonné. Envoyez une nouvelle note vocale ou répondez SUGGESTIONS pour des idées.",
		editPrompt:     "✏️ Dites-moi quoi changer (ex. « plus court, mentionnez le homard ») et je refais le brouillon.",
		expired:        "⏰ Cette approbation a expiré après 24 heures. Envoyez une nouvelle note vocale pour recommencer.",
		noActive:       "Aucun contenu en attente de révision. Envoyez une note vocale ou répondez SUGGESTIONS pour les idées du jour.",
		already:        "👍 Ce message a déjà été traité.",
		terminal:       "Ce workflow est déjà %s et ne peut plus changer.",
		menuHeader:     "💡 Idées de contenu du jour :",
		menuFooter:     "Répondez 1-5 pour choisir une idée, ou CUSTOM pour enregistrer la vôtre.",
		customInvite:   "🎙️ Parfait ! Enregistrez une note vocale dans l'app et j'en ferai des publications.",
		statusHeader:   "📊 Workflow actuel : %s (%s), expire %s.",
	},
	"es": {
		preview:        "📣 Nuevo borrador de %s para tu restaurante:",
		vocabulary:     "Responde APPROVE ✅ para publicar, EDIT ✏️ para revisar, REJECT ❌ para descartar, VIEW 📱 para verlo de nuevo, HELP para todos los comandos.",
		help:           "Comandos: APPROVE ✅ publicar · EDIT ✏️ revisar · REJECT ❌ descartar · VIEW 📱 vista previa · STATUS estado actual · SUGGESTIONS ideas del día · 1-5 elegir una idea · CUSTOM grabar la tuya · HELP este mensaje.",
		confirmApprove: "✅ ¡Publicado! Tu publicación de %s está en línea. Gran elección.",
		confirmReject:  "❌ Borrador descartado. Envía una nueva nota de voz o responde SUGGESTIONS para ideas.",
		editPrompt:     "✏️ Dime qué cambiar (ej. \"más corto, menciona la langosta\") y rehago el borrador.",
		expired:        "⏰ Esta aprobación expiró después de 24 horas. Envía una nueva nota de voz para empezar de nuevo.",
		noActive:       "No tienes contenido esperando revisión. Envía una nota de voz o responde SUGGESTIONS para las ideas de hoy.",
		already:        "👍 Ese mensaje ya fue procesado.",
		terminal:       "Este workflow ya está %s y no puede cambiar.",
		menuHeader:     "💡 Ideas de contenido de hoy:",
		menuFooter:     "Responde 1-5 para elegir una idea, o CUSTOM para grabar la tuya.",
		customInvite:   "🎙️ ¡Perfecto! Graba una nota de voz en la app y la convertiré en publicaciones.",
		statusHeader:   "📊 Workflow actual: %s (%s), expira %s.",
	},
}

func msgs(lang string) msgSet {
	lang = strings.ToLower(lang)
	if len(lang) >= 2 {
		lang = lang[:2]
	}
	if set, ok := messages[lang]; ok {
		return set
	}
	return messages["en"]
}

// previewMessage soạn tin preview cho một content item kèm bảng từ vựng trả lời
func previewMessage(lang string, item contentmodels.ContentItem) string {
	set := msgs(lang)

	var b strings.Builder
	fmt.Fprintf(&b, set.preview, item.Platform)
	b.WriteString("\n\n")
	b.WriteString(utility.TruncateString(item.Caption, 320))
	b.WriteString("\n")

	if len(item.Tags) > 0 {
		b.WriteString("\n")
		for i, tag := range item.Tags {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString("#" + tag)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\n🔥 %d/100 · ⏰ %s\n\n", item.ViralityScore, item.BestPostTime)
	b.WriteString(set.vocabulary)
	return b.String()
}

// helpMessage trả về bảng từ vựng đầy đủ
func helpMessage(lang string) string {
	return msgs(lang).help
}

func confirmApproved(lang, platform string) string {
	return fmt.Sprintf(msgs(lang).confirmApprove, platform)
}

func confirmRejected(lang string) string {
	return msgs(lang).confirmReject
}

func editPrompt(lang string) string {
	return msgs(lang).editPrompt
}

func expiredNotice(lang string) string {
	return msgs(lang).expired
}

func noActiveNotice(lang string) string {
	return msgs(lang).noActive + "\n\n" + msgs(lang).help
}

func alreadyHandled(lang string) string {
	return msgs(lang).already
}

func terminalNotice(lang, status string) string {
	return fmt.Sprintf(msgs(lang).terminal, status)
}

func customInvite(lang string) string {
	return msgs(lang).customInvite
}

// suggestionMenu soạn menu 5 ý tưởng được đánh số
func suggestionMenu(lang string, ideas []workflowmodels.IdeaSnapshot) string {
	set := msgs(lang)

	var b strings.Builder
	b.WriteString(set.menuHeader)
	b.WriteString("\n\n")
	for _, idea := range ideas {
		fmt.Fprintf(&b, "%d. %s — %s (%s)\n", idea.Rank, idea.Title, utility.TruncateString(idea.Description, 90), idea.Platform)
	}
	b.WriteString("\n")
	b.WriteString(set.menuFooter)
	return b.String()
}

// statusSummary soạn tóm tắt trạng thái workflow hiện tại
func statusSummary(lang string, wf workflowmodels.Workflow, expires string) string {
	return fmt.Sprintf(msgs(lang).statusHeader, wf.Type, wf.Status, expires)
}
