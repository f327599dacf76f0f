package bot

import (
	"fmt"

	"github.com/chowbot/chowbot/internal/command"
	"github.com/chowbot/chowbot/internal/order"
)

const helpText = `/start <order name> - starts an order. For example, /start waffles.
/view - shows active orders.

The following commands will ask for the order name, if there are multiple active orders.

/order [order name] <item> - adds an item to an order, or replaces the previously chosen one.
/cancel [order name] - removes your previously selected item from an order.
/end [order name] - stops an order.`

const noActiveOrders = "There are no active orders. Start one by using /start <order name>."

// CommandResult is what every operation hands back to the transport: whether
// the command took effect, the reply text, and an optional button layout.
type CommandResult struct {
	Success bool
	Message string
	Buttons [][]order.Button
}

func success(message string) CommandResult {
	return CommandResult{Success: true, Message: message}
}

func failure(message string) CommandResult {
	return CommandResult{Success: false, Message: message}
}

// Stats is a point-in-time count of live state.
type Stats struct {
	Conversations int
	Orders        int
}

// Bot routes commands to per-conversation order registries. Conversations
// are created lazily on the first /start and dropped when their last order
// ends, so idle chats hold no state.
//
// Bot is not safe for concurrent use. The transport guarantees mutual
// exclusion by handling one update at a time.
type Bot struct {
	conversations map[int64]*order.Registry
}

func New() *Bot {
	return &Bot{conversations: make(map[int64]*order.Registry)}
}

// Execute runs one parsed command on behalf of from in the given conversation.
func (b *Bot) Execute(chatID int64, from order.User, cmd command.Command) CommandResult {
	switch c := cmd.(type) {
	case command.Start:
		return b.StartOrder(chatID, from, c.Name)
	case command.End:
		return b.EndOrder(chatID, from, c.Name)
	case command.Add:
		return b.AddItem(chatID, from, c.Order, c.Item)
	case command.Cancel:
		return b.RemoveItem(chatID, from, c.Name)
	case command.View:
		return b.ViewOrders(chatID)
	case command.Help:
		return b.Help()
	default:
		return failure("Use /help for a list of recognized commands.")
	}
}

// StartOrder opens a new order owned by from.
func (b *Bot) StartOrder(chatID int64, from order.User, name string) CommandResult {
	reg, ok := b.conversations[chatID]
	if !ok {
		reg = order.NewRegistry()
		b.conversations[chatID] = reg
	}
	if !reg.Add(from, name) {
		return failure(fmt.Sprintf(
			"There is already an order for %s in progress. Use /order %s <item> to add an item to it.",
			name, name))
	}
	return success(fmt.Sprintf(
		"Order started for %s.\nUse /order <item> to order, /view to view active orders and /end when done.",
		name))
}

// EndOrder closes an order and replies with its final summary. Only the
// owner may close it.
func (b *Bot) EndOrder(chatID int64, from order.User, name string) CommandResult {
	reg, ok := b.conversations[chatID]
	if !ok {
		return failure(noActiveOrders)
	}
	ord, err := reg.Remove(from, name)
	if err != nil {
		return failure(err.Error())
	}
	if reg.Len() == 0 {
		delete(b.conversations, chatID)
	}
	return success(ord.Render())
}

// AddItem selects an item for from, replacing any previous choice, and
// replies with the updated order.
func (b *Bot) AddItem(chatID int64, from order.User, name, item string) CommandResult {
	reg, ok := b.conversations[chatID]
	if !ok {
		return failure(noActiveOrders)
	}
	ord := reg.AddItem(name, from, item)
	if ord == nil {
		return failure(fmt.Sprintf("Order %s not found.", name))
	}
	return orderResult(ord)
}

// RemoveItem withdraws from's selection and replies with the updated order.
func (b *Bot) RemoveItem(chatID int64, from order.User, name string) CommandResult {
	reg, ok := b.conversations[chatID]
	if !ok {
		return failure(noActiveOrders)
	}
	ord := reg.RemoveItem(name, from)
	if ord == nil {
		if _, exists := reg.Get(name); !exists {
			return failure(fmt.Sprintf("Order %s not found.", name))
		}
		return failure("You have not placed any orders. Use /order <item> to do so.")
	}
	return orderResult(ord)
}

// ViewOrders summarizes every open order in the conversation. An empty
// conversation is not an error.
func (b *Bot) ViewOrders(chatID int64) CommandResult {
	reg, ok := b.conversations[chatID]
	if !ok {
		return success("There are no active orders.")
	}
	return CommandResult{Success: true, Message: reg.Render(), Buttons: reg.Buttons()}
}

// Help replies with the usage text.
func (b *Bot) Help() CommandResult {
	return success(helpText)
}

// ActiveOrderNames lists the conversation's open order names in creation
// order; nil when the conversation holds no orders.
func (b *Bot) ActiveOrderNames(chatID int64) []string {
	reg, ok := b.conversations[chatID]
	if !ok {
		return nil
	}
	return reg.Names()
}

// HasActiveOrders reports whether any conversation holds an open order.
// Conversations are dropped as soon as they empty, so a live entry always
// means at least one order.
func (b *Bot) HasActiveOrders() bool {
	return len(b.conversations) > 0
}

// Stats counts live conversations and orders.
func (b *Bot) Stats() Stats {
	s := Stats{Conversations: len(b.conversations)}
	for _, reg := range b.conversations {
		s.Orders += reg.Len()
	}
	return s
}

func orderResult(ord *order.Order) CommandResult {
	return CommandResult{
		Success: true,
		Message: ord.Render(),
		Buttons: order.Rows(ord.Buttons()),
	}
}
