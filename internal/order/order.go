package order

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// buttonsPerRow caps how many item buttons share one keyboard row.
const buttonsPerRow = 2

// User identifies a conversation member. ID is the transport-assigned
// identity; Name is display-only and never used for equality.
type User struct {
	ID   int64
	Name string
}

// Button is one tappable item choice, kept as plain data so the transport
// decides how to render it. Data is "<order name> <item>", split on the
// first space when the tap comes back.
type Button struct {
	Label string
	Data  string
}

// Order is a single named group order: who owns it and who selected what.
type Order struct {
	Name  string
	Owner User

	// item name to the users who chose it, keyed by user ID
	selections map[string]map[int64]User
}

func New(name string, owner User) *Order {
	return &Order{
		Name:       name,
		Owner:      owner,
		selections: make(map[string]map[int64]User),
	}
}

// AddItem records user's choice of item, displacing any selection they
// already held in this order. It reports whether a previous selection was
// replaced.
func (o *Order) AddItem(user User, item string) bool {
	_, replaced := o.RemoveItem(user)
	users, ok := o.selections[item]
	if !ok {
		users = make(map[int64]User)
		o.selections[item] = users
	}
	users[user.ID] = user
	return replaced
}

// RemoveItem withdraws user's selection and returns the item it was for.
// Items left without users are dropped, so renders and buttons never show
// empty entries.
func (o *Order) RemoveItem(user User) (string, bool) {
	for item, users := range o.selections {
		if _, ok := users[user.ID]; ok {
			delete(users, user.ID)
			if len(users) == 0 {
				delete(o.selections, item)
			}
			return item, true
		}
	}
	return "", false
}

// ItemFor reports user's current selection, if any.
func (o *Order) ItemFor(user User) (string, bool) {
	for item, users := range o.selections {
		if _, ok := users[user.ID]; ok {
			return item, true
		}
	}
	return "", false
}

// Items returns the selected item names in sorted order.
func (o *Order) Items() []string {
	items := make([]string, 0, len(o.selections))
	for item := range o.selections {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}

// Render produces the order summary. Items are sorted by name and each line
// lists the count and the members who chose it, sorted by display name, so
// the same state always renders the same text.
func (o *Order) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Orders for %s:\n\n", o.Name)

	items := o.Items()
	if len(items) == 0 {
		b.WriteString("None")
		return b.String()
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		users := o.selections[item]
		names := make([]string, 0, len(users))
		for _, u := range users {
			names = append(names, u.Name)
		}
		sort.Strings(names)
		lines = append(lines, fmt.Sprintf("%d %s: %s", len(users), item, strings.Join(names, ", ")))
	}
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}

// Buttons returns one button per selected item, in render order.
func (o *Order) Buttons() []Button {
	return lo.Map(o.Items(), func(item string, _ int) Button {
		return Button{Label: item, Data: o.Name + " " + item}
	})
}

// Rows lays buttons out as keyboard rows.
func Rows(buttons []Button) [][]Button {
	if len(buttons) == 0 {
		return nil
	}
	return lo.Chunk(buttons, buttonsPerRow)
}
