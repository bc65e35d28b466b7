package standardbook

import (
	"github.com/shivam-909/regionbuf/internal/orderbook"
)

// standardbook keeps its nodes on the Go heap.
type standardbook struct {
	tree orderbook.Tree
}

func New() orderbook.OrderBook {
	return &standardbook{}
}

func (b *standardbook) Insert(o orderbook.Order) error {
	b.tree.Link(&orderbook.Node{Order: o})
	return nil
}

func (b *standardbook) Remove(id int) error {
	_, err := b.tree.Unlink(id)
	return err
}

func (b *standardbook) Reset() {
	b.tree.Clear()
}

func (b *standardbook) Len() int {
	return b.tree.Len()
}

func (b *standardbook) Orders() []orderbook.Order {
	return b.tree.Orders()
}
