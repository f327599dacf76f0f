package order

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// NotFoundError reports an operation against an order name that is not open
// in the conversation.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Order %s not found.", e.Name)
}

// NotOwnerError reports an end attempt by someone other than the order's
// owner. It carries the owner so the message can name who to ask.
type NotOwnerError struct {
	Owner User
	Name  string
}

func (e *NotOwnerError) Error() string {
	return fmt.Sprintf("Only %s may end their order for %s.", e.Owner.Name, e.Name)
}

// Registry holds the open orders of one conversation. Names are unique
// within it, and iteration follows creation order so renders and button
// layouts stay stable across calls.
//
// Registry is not safe for concurrent use; callers serialize access.
type Registry struct {
	orders map[string]*Order
	names  []string
}

func NewRegistry() *Registry {
	return &Registry{orders: make(map[string]*Order)}
}

// Add opens a fresh empty order owned by owner. It reports false and leaves
// the registry unchanged when the name is already taken.
func (r *Registry) Add(owner User, name string) bool {
	if _, exists := r.orders[name]; exists {
		return false
	}
	r.orders[name] = New(name, owner)
	r.names = append(r.names, name)
	return true
}

// Remove closes the named order and returns it for a final summary. Only the
// owner may close an order; anyone else gets a *NotOwnerError. A name that
// matches nothing yields a *NotFoundError.
func (r *Registry) Remove(requester User, name string) (*Order, error) {
	ord, exists := r.orders[name]
	if !exists {
		return nil, &NotFoundError{Name: name}
	}
	if ord.Owner.ID != requester.ID {
		return nil, &NotOwnerError{Owner: ord.Owner, Name: name}
	}
	delete(r.orders, name)
	for i, n := range r.names {
		if n == name {
			r.names = append(r.names[:i], r.names[i+1:]...)
			break
		}
	}
	return ord, nil
}

// AddItem records user's selection in the named order and returns the
// updated order, or nil when no such order is open.
func (r *Registry) AddItem(name string, user User, item string) *Order {
	ord, exists := r.orders[name]
	if !exists {
		return nil
	}
	ord.AddItem(user, item)
	return ord
}

// RemoveItem withdraws user's selection from the named order and returns the
// updated order. It returns nil when the order does not exist or the user
// had nothing selected in it.
func (r *Registry) RemoveItem(name string, user User) *Order {
	ord, exists := r.orders[name]
	if !exists {
		return nil
	}
	if _, removed := ord.RemoveItem(user); !removed {
		return nil
	}
	return ord
}

// Get looks up an open order by name.
func (r *Registry) Get(name string) (*Order, bool) {
	ord, exists := r.orders[name]
	return ord, exists
}

// Names returns the open order names in creation order. The slice is a copy;
// later registry changes do not show through it.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Len reports how many orders are open.
func (r *Registry) Len() int {
	return len(r.orders)
}

// Render concatenates every order's summary in creation order, prefixed with
// a count header when more than one is open.
func (r *Registry) Render() string {
	if len(r.names) == 0 {
		return "There are no active orders."
	}
	rendered := lo.Map(r.names, func(name string, _ int) string {
		return r.orders[name].Render()
	})
	var header string
	if len(rendered) > 1 {
		header = fmt.Sprintf("There are %d orders.\n", len(rendered))
	}
	return header + strings.Join(rendered, "\n\n")
}

// Buttons lays out every order's buttons, in creation order, as keyboard rows.
func (r *Registry) Buttons() [][]Button {
	var all []Button
	for _, name := range r.names {
		all = append(all, r.orders[name].Buttons()...)
	}
	return Rows(all)
}
