package bot

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/alphafeeds/relay_bot/internal/auth"
	"github.com/alphafeeds/relay_bot/internal/relay"
	"github.com/alphafeeds/relay_bot/internal/settings"
)

// TelegramAPI is the slice of *tgbotapi.BotAPI the service needs.
type TelegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetChat(config tgbotapi.ChatInfoConfig) (tgbotapi.Chat, error)
}

type BotService struct {
	api      TelegramAPI
	botUser  string
	manager  *settings.Manager
	guard    *auth.Guard
	pipeline *relay.Pipeline

	mu         sync.Mutex
	userStates map[int64]*UserState
}

func New(
	api TelegramAPI,
	botUser string,
	manager *settings.Manager,
	guard *auth.Guard,
	pipeline *relay.Pipeline,
) *BotService {
	return &BotService{
		api:        api,
		botUser:    botUser,
		manager:    manager,
		guard:      guard,
		pipeline:   pipeline,
		userStates: make(map[int64]*UserState),
	}
}

func (b *BotService) Start(botAPI *tgbotapi.BotAPI) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := botAPI.GetUpdatesChan(u)

	for update := range updates {
		b.HandleUpdate(update)
	}
}

// HandleUpdate routes one inbound platform event: channel posts go to the
// forwarding pipeline, user messages to the command dispatcher.
func (b *BotService) HandleUpdate(update tgbotapi.Update) {
	if update.ChannelPost != nil {
		b.pipeline.HandlePost(update.ChannelPost.Chat.ID, postBody(update.ChannelPost))
		return
	}

	if update.Message == nil {
		return
	}

	if update.Message.IsCommand() {
		b.handleCommand(update.Message)
		return
	}

	b.handleReply(update.Message)
}

func (b *BotService) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.handleStart(msg)
	case "help":
		b.reply(msg.Chat.ID, helpText())
	case "set_origin":
		b.handleSetOrigin(msg)
	case "set_destination":
		b.handleSetDestination(msg)
	case "add_admin":
		b.handleAddAdmin(msg)
	case "rm_admin":
		b.handleRmAdmin(msg)
	case "pause":
		b.handlePause(msg)
	case "resume":
		b.handleResume(msg)
	case "status":
		b.handleStatus(msg)
	case "cancel":
		b.handleCancel(msg)
	}
}

func (b *BotService) handleStart(msg *tgbotapi.Message) {
	log.Printf("bot: started by %s", senderUsername(msg))
	b.reply(msg.Chat.ID, fmt.Sprintf("@%s has started! Use /help to see commands.", b.botUser))
}

func (b *BotService) handleSetOrigin(msg *tgbotapi.Message) {
	if !b.requireRole(msg, auth.RoleAdmin) {
		return
	}

	ids, err := parseChannelIDs(msg.CommandArguments())
	if err != nil {
		b.reply(msg.Chat.ID, "Invalid Channel IDs. Use integers separated by spaces, e.g. /set_origin -100123 -100456")
		return
	}

	saveErr := b.manager.SetOrigin(ids)
	b.replyMutation(msg.Chat.ID, "Origin channels set: "+b.channelList(ids), saveErr)
	log.Printf("bot: origin channels set to %v by %s", ids, senderUsername(msg))
}

func (b *BotService) handleSetDestination(msg *tgbotapi.Message) {
	if !b.requireRole(msg, auth.RoleAdmin) {
		return
	}

	ids, err := parseChannelIDs(msg.CommandArguments())
	if err != nil {
		b.reply(msg.Chat.ID, "Invalid Channel IDs. Use integers separated by spaces, e.g. /set_destination -100123 -100456")
		return
	}

	saveErr := b.manager.SetDestination(ids)
	b.replyMutation(msg.Chat.ID, "Destination channels set: "+b.channelList(ids), saveErr)
	log.Printf("bot: destination channels set to %v by %s", ids, senderUsername(msg))
}

func (b *BotService) handleAddAdmin(msg *tgbotapi.Message) {
	if !b.requireRole(msg, auth.RoleSuperAdmin) {
		return
	}

	args := strings.Fields(msg.CommandArguments())
	if len(args) != 1 {
		b.reply(msg.Chat.ID, "Usage: /add_admin @username")
		return
	}

	username := strings.TrimPrefix(args[0], "@")
	if username == "" {
		b.reply(msg.Chat.ID, "Invalid username. Use format: @username")
		return
	}

	added, saveErr := b.manager.AddAdmin(username)
	if !added {
		b.reply(msg.Chat.ID, fmt.Sprintf("@%s is already an admin.", username))
		return
	}

	b.replyMutation(msg.Chat.ID, fmt.Sprintf("Added @%s as admin.", username), saveErr)
	log.Printf("bot: added admin %s by %s", username, senderUsername(msg))
}

func (b *BotService) handleRmAdmin(msg *tgbotapi.Message) {
	if !b.requireRole(msg, auth.RoleAdmin) {
		return
	}

	admins := b.manager.Snapshot().Admins
	if len(admins) == 0 {
		b.clearState(msg.From.ID)
		b.reply(msg.Chat.ID, "No admins to remove.")
		return
	}

	arg := strings.TrimSpace(msg.CommandArguments())
	if arg == "" {
		b.setState(msg.From.ID, StateAwaitingIndex)
		b.reply(msg.Chat.ID, adminListText(admins))
		return
	}

	index, err := strconv.Atoi(arg)
	if err != nil {
		b.reply(msg.Chat.ID, "Usage: /rm_admin or /rm_admin <number>")
		return
	}

	b.clearState(msg.From.ID)
	b.removeAdminAt(msg, index)
}

// handleReply consumes the numeric follow-up of a pending /rm_admin
// selection. Replies from users without a pending selection are ignored, so
// one user's selection is never touched by another user's messages.
func (b *BotService) handleReply(msg *tgbotapi.Message) {
	if msg.From == nil || !b.inState(msg.From.ID, StateAwaitingIndex) {
		return
	}

	if !b.requireRole(msg, auth.RoleAdmin) {
		return
	}

	index, err := strconv.Atoi(strings.TrimSpace(msg.Text))
	if err != nil {
		b.reply(msg.Chat.ID, "Send the number of the admin to remove, or /cancel.")
		return
	}

	b.clearState(msg.From.ID)
	b.removeAdminAt(msg, index)
}

func (b *BotService) removeAdminAt(msg *tgbotapi.Message, index int) {
	removed, err := b.manager.RemoveAdmin(index)
	if errors.Is(err, settings.ErrIndexOutOfRange) {
		b.reply(msg.Chat.ID, "Invalid number!")
		return
	}

	b.replyMutation(msg.Chat.ID, fmt.Sprintf("Removed admin %s.", removed), err)
	log.Printf("bot: removed admin %s by %s", removed, senderUsername(msg))
}

func (b *BotService) handlePause(msg *tgbotapi.Message) {
	if !b.requireRole(msg, auth.RoleAdmin) {
		return
	}

	changed, saveErr := b.manager.Pause()
	if !changed {
		b.reply(msg.Chat.ID, "Message forwarding is already paused.")
		return
	}

	b.replyMutation(msg.Chat.ID, "Message forwarding paused.", saveErr)
	log.Printf("bot: paused by %s", senderUsername(msg))
}

func (b *BotService) handleResume(msg *tgbotapi.Message) {
	if !b.requireRole(msg, auth.RoleAdmin) {
		return
	}

	changed, saveErr := b.manager.Resume()
	if !changed {
		b.reply(msg.Chat.ID, "Message forwarding is already running.")
		return
	}

	b.replyMutation(msg.Chat.ID, "Message forwarding resumed.", saveErr)
	log.Printf("bot: resumed by %s", senderUsername(msg))
}

func (b *BotService) handleStatus(msg *tgbotapi.Message) {
	if !b.requireRole(msg, auth.RoleAdmin) {
		return
	}

	s := b.manager.Snapshot()

	state := "Running"
	if s.Paused {
		state = "Paused"
	}

	admins := "None"
	if len(s.Admins) > 0 {
		admins = strings.Join(s.Admins, ", ")
	}

	b.reply(msg.Chat.ID, fmt.Sprintf(
		"Status: %s\nOrigin Channels: %s\nDestination Channels: %s\nAdmins: %s",
		state, b.channelList(s.OriginChannels), b.channelList(s.DestinationChannels), admins,
	))
	log.Printf("bot: status checked by %s", senderUsername(msg))
}

func (b *BotService) handleCancel(msg *tgbotapi.Message) {
	if !b.requireRole(msg, auth.RoleAdmin) {
		return
	}

	if msg.From != nil && b.inState(msg.From.ID, StateAwaitingIndex) {
		b.clearState(msg.From.ID)
		b.reply(msg.Chat.ID, "Operation cancelled.")
		return
	}

	b.reply(msg.Chat.ID, "Nothing to cancel.")
}

// requireRole gates a command on the invoker's role. On failure it replies
// with a rejection and reports false; nothing is mutated.
func (b *BotService) requireRole(msg *tgbotapi.Message, min auth.Role) bool {
	username := senderUsername(msg)
	role := b.guard.RoleOf(username, b.manager.Snapshot().Admins)
	if role >= min {
		return true
	}

	log.Printf("bot: permission denied for %q", username)
	if min == auth.RoleSuperAdmin {
		b.reply(msg.Chat.ID, "Only super admins can add admins!")
	} else {
		b.reply(msg.Chat.ID, "Permission denied. Only admins can use this command.")
	}

	return false
}

// replyMutation sends the result of a mutating command, tacking on a warning
// when the settings document could not be written. The in-memory change is
// kept either way.
func (b *BotService) replyMutation(chatID int64, text string, saveErr error) {
	if saveErr != nil {
		log.Printf("bot: failed to persist settings: %v", saveErr)
		text += "\nWarning: the change may not have been saved."
	}

	b.reply(chatID, text)
}

func (b *BotService) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("bot: failed to send reply to %d: %v", chatID, err)
	}
}

func (b *BotService) setState(userID int64, step string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.userStates[userID] = &UserState{Step: step}
}

func (b *BotService) clearState(userID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.userStates, userID)
}

func (b *BotService) inState(userID int64, step string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.userStates[userID]
	return ok && s.Step == step
}
