package order

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_Add(t *testing.T) {
	reg := NewRegistry()

	require.True(t, reg.Add(alice, "waffles"))
	require.Equal(t, 1, reg.Len())

	ord, ok := reg.Get("waffles")
	require.True(t, ok)
	require.Equal(t, alice, ord.Owner)
}

func TestRegistry_Add_DuplicateName(t *testing.T) {
	reg := NewRegistry()
	reg.Add(alice, "waffles")

	require.False(t, reg.Add(bob, "waffles"))

	// The original order is untouched.
	ord, _ := reg.Get("waffles")
	require.Equal(t, alice, ord.Owner)
	require.Equal(t, 1, reg.Len())
}

func TestRegistry_Remove_ByOwner(t *testing.T) {
	reg := NewRegistry()
	reg.Add(alice, "waffles")
	reg.AddItem("waffles", bob, "chocolate")

	ord, err := reg.Remove(alice, "waffles")

	require.NoError(t, err)
	require.Equal(t, "waffles", ord.Name)
	require.Equal(t, "Orders for waffles:\n\n1 chocolate: Bob", ord.Render())
	require.Zero(t, reg.Len())
	require.Empty(t, reg.Names())
}

func TestRegistry_Remove_NotOwner(t *testing.T) {
	reg := NewRegistry()
	reg.Add(alice, "waffles")

	ord, err := reg.Remove(bob, "waffles")

	require.Nil(t, ord)
	var notOwner *NotOwnerError
	require.ErrorAs(t, err, &notOwner)
	require.Equal(t, "Only Alice may end their order for waffles.", err.Error())
	require.Equal(t, 1, reg.Len())
}

func TestRegistry_Remove_UnknownName(t *testing.T) {
	reg := NewRegistry()
	reg.Add(alice, "waffles")

	ord, err := reg.Remove(alice, "pizza")

	require.Nil(t, ord)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "Order pizza not found.", err.Error())
}

func TestRegistry_Names_CreationOrder(t *testing.T) {
	reg := NewRegistry()
	reg.Add(alice, "waffles")
	reg.Add(bob, "pizza")
	reg.Add(carol, "sushi")

	require.Equal(t, []string{"waffles", "pizza", "sushi"}, reg.Names())

	_, err := reg.Remove(bob, "pizza")
	require.NoError(t, err)
	require.Equal(t, []string{"waffles", "sushi"}, reg.Names())
}

func TestRegistry_Names_ReturnsACopy(t *testing.T) {
	reg := NewRegistry()
	reg.Add(alice, "waffles")

	names := reg.Names()
	names[0] = "mutated"

	require.Equal(t, []string{"waffles"}, reg.Names())
}

func TestRegistry_AddItem(t *testing.T) {
	reg := NewRegistry()
	reg.Add(alice, "waffles")

	ord := reg.AddItem("waffles", bob, "chocolate")

	require.NotNil(t, ord)
	item, ok := ord.ItemFor(bob)
	require.True(t, ok)
	require.Equal(t, "chocolate", item)

	require.Nil(t, reg.AddItem("pizza", bob, "pepperoni"))
}

func TestRegistry_RemoveItem(t *testing.T) {
	reg := NewRegistry()
	reg.Add(alice, "waffles")
	reg.AddItem("waffles", bob, "chocolate")

	ord := reg.RemoveItem("waffles", bob)

	require.NotNil(t, ord)
	_, ok := ord.ItemFor(bob)
	require.False(t, ok)
}

func TestRegistry_RemoveItem_NothingSelected(t *testing.T) {
	reg := NewRegistry()
	reg.Add(alice, "waffles")

	require.Nil(t, reg.RemoveItem("waffles", bob))
	require.Nil(t, reg.RemoveItem("pizza", bob))
}

func TestRegistry_Render_Empty(t *testing.T) {
	reg := NewRegistry()

	require.Equal(t, "There are no active orders.", reg.Render())
}

func TestRegistry_Render_SingleOrderHasNoHeader(t *testing.T) {
	reg := NewRegistry()
	reg.Add(alice, "waffles")
	reg.AddItem("waffles", alice, "chocolate")

	require.Equal(t, "Orders for waffles:\n\n1 chocolate: Alice", reg.Render())
}

func TestRegistry_Render_MultipleOrders(t *testing.T) {
	reg := NewRegistry()
	reg.Add(alice, "waffles")
	reg.Add(bob, "pizza")
	reg.AddItem("waffles", alice, "chocolate")
	reg.AddItem("pizza", bob, "pepperoni")

	want := "There are 2 orders.\n" +
		"Orders for waffles:\n\n1 chocolate: Alice\n\n" +
		"Orders for pizza:\n\n1 pepperoni: Bob"
	require.Equal(t, want, reg.Render())
}

func TestRegistry_Buttons_SpanOrders(t *testing.T) {
	reg := NewRegistry()
	reg.Add(alice, "waffles")
	reg.Add(bob, "pizza")
	reg.AddItem("waffles", alice, "chocolate")
	reg.AddItem("waffles", bob, "strawberry")
	reg.AddItem("pizza", carol, "pepperoni")

	require.Equal(t, [][]Button{
		{
			{Label: "chocolate", Data: "waffles chocolate"},
			{Label: "strawberry", Data: "waffles strawberry"},
		},
		{
			{Label: "pepperoni", Data: "pizza pepperoni"},
		},
	}, reg.Buttons())
}

func TestRegistry_Buttons_Empty(t *testing.T) {
	reg := NewRegistry()
	require.Nil(t, reg.Buttons())

	reg.Add(alice, "waffles")
	require.Nil(t, reg.Buttons())
}
