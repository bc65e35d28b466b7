package orderbook

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
)

type OrderSide int

const (
	OrderSideBuy  OrderSide = 1
	OrderSideSell OrderSide = 2
	MaxPrice                = 10000
	MinPrice                = 9000
)

// ErrNotFound is returned by Remove for an ID the book does not hold.
var ErrNotFound = errors.New("order not found")

type Order struct {
	ID    int
	Side  OrderSide
	Price int
	Qty   int
}

// OrderBook is a set of resting orders keyed by ID.
type OrderBook interface {
	Insert(order Order) error
	Remove(id int) error
	// Reset drops every order at once.
	Reset()
	Len() int
	// Orders returns the resting orders in ID order.
	Orders() []Order
}

// Node is a BST node. Books that place nodes outside the Go heap rely on
// Node holding no pointers other than to sibling nodes.
type Node struct {
	Order Order
	Left  *Node
	Right *Node
}

// Generator produces a deterministic stream of orders and book actions.
// It is not safe for concurrent use; give each goroutine its own.
type Generator struct {
	rnd      *rand.Rand
	counter  int
	removals int
}

func NewGenerator(seed uint64) *Generator {
	return &Generator{
		rnd:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		counter:  1,
		removals: 1,
	}
}

func (g *Generator) randomBoolDistribution(truePercentage int) bool {
	return g.rnd.IntN(100) < truePercentage
}

func (g *Generator) randomSide() OrderSide {
	if g.rnd.IntN(2) == 0 {
		return OrderSideBuy
	}
	return OrderSideSell
}

// Next returns a new order with the next ID.
func (g *Generator) Next() Order {
	o := Order{
		ID:    g.counter,
		Side:  g.randomSide(),
		Price: g.rnd.IntN(MaxPrice-MinPrice) + MinPrice,
		Qty:   g.rnd.IntN(10) + 1,
	}
	g.counter++
	return o
}

// Act either inserts a fresh order or removes the oldest one not yet
// removed, with equal odds. It returns whatever the book returns; a
// removal of an order that was never inserted reports ErrNotFound.
func (g *Generator) Act(ob OrderBook) error {
	if g.randomBoolDistribution(50) {
		return ob.Insert(g.Next())
	}
	if g.removals >= g.counter {
		return nil
	}
	id := g.removals
	g.removals++
	return ob.Remove(id)
}

// Restart forgets outstanding orders so removals do not chase IDs dropped
// by a book reset. IDs keep increasing.
func (g *Generator) Restart() {
	g.removals = g.counter
}

// Print writes the orders grouped by side, highest ID first.
func Print(w io.Writer, orders []Order) {
	var buyOrders, sellOrders []Order
	for _, o := range orders {
		if o.Side == OrderSideBuy {
			buyOrders = append(buyOrders, o)
		} else {
			sellOrders = append(sellOrders, o)
		}
	}

	fmt.Fprintln(w, "\nOrder Book")
	fmt.Fprintln(w, strings.Repeat("-", 40))

	fmt.Fprintln(w, "Sells:")
	for i := len(sellOrders) - 1; i >= 0; i-- {
		o := sellOrders[i]
		fmt.Fprintf(w, "Price: %d, Quantity: %d, ID: %d\n", o.Price, o.Qty, o.ID)
	}

	fmt.Fprintln(w, strings.Repeat("-", 40))

	fmt.Fprintln(w, "Buys:")
	for i := len(buyOrders) - 1; i >= 0; i-- {
		o := buyOrders[i]
		fmt.Fprintf(w, "Price: %d, Quantity: %d, ID: %d\n", o.Price, o.Qty, o.ID)
	}
	fmt.Fprintln(w, strings.Repeat("-", 40))
}

// Tree holds the BST logic shared by the book implementations. The
// caller supplies node storage; Tree only links and unlinks.
type Tree struct {
	Root *Node
	n    int
}

// Link inserts nn keyed by Order.ID. Duplicates go to the right.
func (t *Tree) Link(nn *Node) {
	t.n++
	if t.Root == nil {
		t.Root = nn
		return
	}

	curr := t.Root
	for {
		if nn.Order.ID < curr.Order.ID {
			if curr.Left == nil {
				curr.Left = nn
				return
			}
			curr = curr.Left
		} else {
			if curr.Right == nil {
				curr.Right = nn
				return
			}
			curr = curr.Right
		}
	}
}

// Unlink removes the node with the given ID and returns it. If the node has
// two children, its in-order successor takes its place.
func (t *Tree) Unlink(id int) (*Node, error) {
	parent, node, isLeft := t.find(id)
	if node == nil {
		return nil, ErrNotFound
	}

	var replacement *Node

	switch {
	case node.Left == nil:
		replacement = node.Right
	case node.Right == nil:
		replacement = node.Left
	default:
		succParent, successor := findSuccessor(node.Right)

		// Detach the successor from deeper in the right subtree and hand it
		// the removed node's right child.
		if succParent != nil {
			succParent.Left = successor.Right
			successor.Right = node.Right
		}
		successor.Left = node.Left
		replacement = successor
	}

	if parent == nil {
		t.Root = replacement
	} else if isLeft {
		parent.Left = replacement
	} else {
		parent.Right = replacement
	}

	t.n--
	node.Left, node.Right = nil, nil
	return node, nil
}

func (t *Tree) Len() int {
	return t.n
}

func (t *Tree) Clear() {
	t.Root = nil
	t.n = 0
}

// Orders walks the tree in order.
func (t *Tree) Orders() []Order {
	orders := make([]Order, 0, t.n)
	var collect func(node *Node)
	collect = func(node *Node) {
		if node == nil {
			return
		}
		collect(node.Left)
		orders = append(orders, node.Order)
		collect(node.Right)
	}
	collect(t.Root)
	return orders
}

// find returns (parent, node, isLeftChild) for the node with the given ID.
func (t *Tree) find(id int) (*Node, *Node, bool) {
	var (
		parent  *Node
		current = t.Root
		isLeft  bool
	)

	for current != nil {
		if id == current.Order.ID {
			return parent, current, isLeft
		}
		parent = current
		if id < current.Order.ID {
			current = current.Left
			isLeft = true
		} else {
			current = current.Right
			isLeft = false
		}
	}
	return nil, nil, false
}

// findSuccessor returns (parent, successor) for the leftmost node under
// root. parent is nil when root itself is the successor.
func findSuccessor(root *Node) (*Node, *Node) {
	var (
		parent *Node
		curr   = root
	)
	for curr.Left != nil {
		parent = curr
		curr = curr.Left
	}
	return parent, curr
}
