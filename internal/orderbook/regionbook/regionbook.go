package regionbook

import (
	"fmt"

	"github.com/shivam-909/regionbuf/internal/orderbook"
	"github.com/shivam-909/regionbuf/region"
)

// regionbook implements orderbook.OrderBook using a BST whose nodes are
// placed in a region buffer.
type regionbook struct {
	buf  *region.Buffer
	tree orderbook.Tree
}

// New returns a book that places its nodes in buf. The book takes over
// buf's cursor: Reset on the book resets buf as well.
func New(buf *region.Buffer) orderbook.OrderBook {
	return &regionbook{buf: buf}
}

// Insert adds a new order keyed by Order.ID. It fails with an error
// wrapping region.ErrOutOfMemory once the buffer is exhausted.
func (b *regionbook) Insert(o orderbook.Order) error {
	nn, err := region.EmplaceValue(b.buf, orderbook.Node{Order: o})
	if err != nil {
		return fmt.Errorf("insert order %d: %w", o.ID, err)
	}
	b.tree.Link(nn)
	return nil
}

// Remove unlinks the order. Its node stays in the buffer until Reset.
func (b *regionbook) Remove(id int) error {
	_, err := b.tree.Unlink(id)
	return err
}

// Reset drops the tree and hands the whole buffer back to the cursor.
func (b *regionbook) Reset() {
	b.tree.Clear()
	b.buf.Reset()
}

func (b *regionbook) Len() int {
	return b.tree.Len()
}

func (b *regionbook) Orders() []orderbook.Order {
	return b.tree.Orders()
}
