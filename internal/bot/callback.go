package bot

import (
	"fmt"
	"strings"

	"github.com/chowbot/chowbot/internal/order"
)

const unrecognizedButton = "Unrecognized button. Use /view to see the current orders."

// tapAction is the decision for a single button tap.
type tapAction int

const (
	// tapSelect picks the tapped item, replacing any current selection.
	tapSelect tapAction = iota
	// tapCancel withdraws the selection because the tapped item is the one
	// already held.
	tapCancel
)

// decideTap resolves what a tap on item means given the user's current
// selection in that order. It is a pure function so the toggle rule can be
// tested without any registry state.
func decideTap(current string, selected bool, tapped string) tapAction {
	if selected && current == tapped {
		return tapCancel
	}
	return tapSelect
}

// splitPayload decodes "<order name> <item>" button data. Order names carry
// no spaces, so the first space is the separator and the rest is the item.
func splitPayload(payload string) (name, item string, ok bool) {
	parts := strings.SplitN(payload, " ", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// HandleCallback interprets a button tap: tapping the item already selected
// withdraws it, tapping anything else selects it. fromView marks taps on an
// aggregate /view message, which is re-rendered across all orders so the
// edit matches what the user is looking at. The second return value is a
// short acknowledgment for the tap itself.
func (b *Bot) HandleCallback(chatID int64, from order.User, payload string, fromView bool) (CommandResult, string) {
	name, item, ok := splitPayload(payload)
	if !ok {
		return failure(unrecognizedButton), unrecognizedButton
	}

	reg, ok := b.conversations[chatID]
	if !ok {
		return failure(noActiveOrders), noActiveOrders
	}
	ord, exists := reg.Get(name)
	if !exists {
		msg := fmt.Sprintf("Order %s not found.", name)
		return failure(msg), msg
	}

	current, selected := ord.ItemFor(from)
	var ack string
	switch decideTap(current, selected, item) {
	case tapCancel:
		reg.RemoveItem(name, from)
		ack = fmt.Sprintf("Cancelled order of %s for %s.", item, name)
	case tapSelect:
		reg.AddItem(name, from, item)
		ack = fmt.Sprintf("Updated order for %s to %s.", name, item)
	}

	if fromView {
		return CommandResult{
			Success: true,
			Message: reg.Render(),
			Buttons: reg.Buttons(),
		}, ack
	}
	return orderResult(ord), ack
}
