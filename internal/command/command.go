package command

import (
	"strings"

	"github.com/samber/lo"
)

const (
	orderAndItemUsage = "Specify the order name and item you wish to order. For example, /order waffles chocolate."
	noActiveOrders    = "There are no active orders. Start one by using /start <order name>."
)

// Command is one fully resolved user intent. The concrete types below are
// the only implementations; consumers dispatch with a type switch.
type Command interface {
	isCommand()
}

// Start opens a new order with the given name.
type Start struct{ Name string }

// End closes an order. Only its owner may do so.
type End struct{ Name string }

// Cancel withdraws the sender's selected item from an order.
type Cancel struct{ Name string }

// Add selects an item in an order, replacing whatever the sender had chosen
// there before.
type Add struct {
	Order string
	Item  string
}

// View asks for a summary of every open order in the conversation.
type View struct{}

// Help asks for the usage text.
type Help struct{}

func (Start) isCommand()  {}
func (End) isCommand()    {}
func (Cancel) isCommand() {}
func (Add) isCommand()    {}
func (View) isCommand()   {}
func (Help) isCommand()   {}

// Parser turns raw chat text into commands. It resolves omitted order names
// against the conversation's open orders, so a lone /end or /cancel works
// whenever only one order is active.
type Parser struct {
	mention string
}

// NewParser builds a parser for the bot known by username. The username may
// arrive with or without its @ prefix; group messages address the bot as
// "/verb@username" and the mention is stripped before tokenizing.
func NewParser(username string) *Parser {
	username = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(username)), "@")
	p := &Parser{}
	if username != "" {
		p.mention = "@" + username
	}
	return p
}

// Parse interprets a single inbound message. active holds the names of the
// orders currently open in the conversation, in creation order. The returned
// error is a value for the user, never a programming fault.
func (p *Parser) Parse(raw string, active []string) (Command, *ParseError) {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "/") {
		return nil, parseErr(UnknownCommand, "Use /help for supported commands.")
	}

	text = strings.ToLower(text)
	if p.mention != "" {
		text = strings.ReplaceAll(text, p.mention, "")
	}

	// The leading "/" survives normalization, so there is always a verb token.
	tokens := strings.Fields(text)
	verb, args := tokens[0], tokens[1:]

	switch verb {
	case "/help":
		return Help{}, nil
	case "/view":
		return View{}, nil
	case "/start":
		if len(args) == 0 {
			return nil, parseErr(InvalidSyntax, "Specify the name of the order. For example, /start waffles.")
		}
		// Multi-word names collapse to one hyphenated token, so the name
		// stays addressable as a single argument later.
		return Start{Name: strings.Join(args, "-")}, nil
	case "/end":
		name, perr := resolveOrderName(args, active, "/end")
		if perr != nil {
			return nil, perr
		}
		return End{Name: name}, nil
	case "/cancel":
		name, perr := resolveOrderName(args, active, "/cancel")
		if perr != nil {
			return nil, perr
		}
		return Cancel{Name: name}, nil
	case "/order":
		return parseAdd(args, active)
	default:
		return nil, parseErr(UnknownCommand, "Use /help for a list of recognized commands.")
	}
}

// resolveOrderName applies the shared rule for verbs that target one order:
// with a single order open the name may be omitted, and a supplied name must
// match an open order exactly even when inference would have succeeded.
func resolveOrderName(args, active []string, verb string) (string, *ParseError) {
	if len(active) == 0 {
		return "", parseErr(NoActiveOrder, noActiveOrders)
	}
	if len(args) == 0 {
		if len(active) == 1 {
			return active[0], nil
		}
		return "", parseErr(AmbiguousOrderName,
			"There are multiple active orders. Specify the name of the order. For example, %s waffles.", verb)
	}
	name := strings.Join(args, "-")
	if lo.Contains(active, name) {
		return name, nil
	}
	return "", parseErr(OrderNotFound, "Order %s not found.", name)
}

func parseAdd(args, active []string) (Command, *ParseError) {
	if len(active) == 0 {
		return nil, parseErr(NoActiveOrder, noActiveOrders)
	}

	if len(active) == 1 {
		sole := active[0]
		if len(args) == 0 {
			return nil, errItemMissing()
		}
		// The order name is optional here, but when the first word matches
		// it is treated as the name, never as part of the item.
		if args[0] == sole {
			if len(args) == 1 {
				return nil, errItemMissing()
			}
			return Add{Order: sole, Item: strings.Join(args[1:], " ")}, nil
		}
		return Add{Order: sole, Item: strings.Join(args, " ")}, nil
	}

	switch {
	case len(args) == 0:
		return nil, parseErr(InvalidSyntax, orderAndItemUsage)
	case len(args) == 1:
		if lo.Contains(active, args[0]) {
			return nil, errItemMissing()
		}
		return nil, parseErr(AmbiguousOrderName, orderAndItemUsage)
	case lo.Contains(active, args[0]):
		return Add{Order: args[0], Item: strings.Join(args[1:], " ")}, nil
	default:
		return nil, parseErr(OrderNotFound, "Order %s not found. %s", args[0], orderAndItemUsage)
	}
}

func errItemMissing() *ParseError {
	return parseErr(InvalidSyntax, "Specify the name of the item you wish to order. For example, /order chocolate.")
}
