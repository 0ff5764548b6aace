package bot

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramSender adapts the bot API to the relay pipeline's Sender.
type TelegramSender struct {
	api TelegramAPI
}

func NewTelegramSender(api TelegramAPI) *TelegramSender {
	return &TelegramSender{api: api}
}

func (t *TelegramSender) SendMessage(chatID int64, text string) error {
	_, err := t.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func helpText() string {
	return strings.Join([]string{
		"/set_origin <id> [<id>...] - replace the origin channels",
		"/set_destination <id> [<id>...] - replace the destination channels",
		"/add_admin @username - add an admin (super admins only)",
		"/rm_admin [number] - remove an admin",
		"/pause - pause forwarding",
		"/resume - resume forwarding",
		"/status - show current configuration",
		"/cancel - cancel a pending /rm_admin selection",
	}, "\n")
}

func adminListText(admins []string) string {
	var sb strings.Builder
	sb.WriteString("Current admins:\n")
	for i, admin := range admins {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, admin)
	}
	sb.WriteString("Reply with a number to remove, or send /cancel.")
	return sb.String()
}

func (b *BotService) channelList(ids []int64) string {
	if len(ids) == 0 {
		return "Not set"
	}

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, fmt.Sprintf("%s (%d)", b.chatTitle(id), id))
	}

	return strings.Join(names, ", ")
}

// chatTitle resolves a channel's title, falling back to the bare ID when the
// bot cannot see the chat.
func (b *BotService) chatTitle(chatID int64) string {
	chat, err := b.api.GetChat(tgbotapi.ChatInfoConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: chatID},
	})
	if err != nil {
		log.Printf("bot: failed to get chat name for %d: %v", chatID, err)
		return fmt.Sprintf("Channel %d", chatID)
	}
	if chat.Title == "" {
		return fmt.Sprintf("Channel %d", chatID)
	}

	return chat.Title
}

func parseChannelIDs(raw string) ([]int64, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil, fmt.Errorf("no channel IDs given")
	}

	ids := make([]int64, 0, len(fields))
	for _, f := range fields {
		id, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad channel ID %q", f)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// postBody returns the forwardable text of a channel post: the text for a
// plain post, the caption for a media post.
func postBody(msg *tgbotapi.Message) string {
	if msg.Text != "" {
		return msg.Text
	}

	return msg.Caption
}

func senderUsername(msg *tgbotapi.Message) string {
	if msg.From == nil {
		return ""
	}

	return msg.From.UserName
}
