package regionbook

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivam-909/regionbuf/internal/orderbook"
	"github.com/shivam-909/regionbuf/region"
)

func newBuffer(t *testing.T, nodes int) *region.Buffer {
	t.Helper()
	buf, err := region.New(uint64(nodes) * region.Sizeof[orderbook.Node]())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, buf.Release()) })
	return buf
}

func TestInsertPlacesNodesInBuffer(t *testing.T) {
	buf := newBuffer(t, 16)
	book := New(buf)

	g := orderbook.NewGenerator(11)
	for i := 0; i < 16; i++ {
		require.NoError(t, book.Insert(g.Next()))
	}
	assert.Equal(t, 16, book.Len())
	assert.Equal(t, buf.Cap(), buf.Offset())

	// The first insert becomes the root and sits at the start of the span.
	rb := book.(*regionbook)
	lo := uintptr(unsafe.Pointer(rb.tree.Root))
	hi := lo + uintptr(buf.Cap())

	var walk func(n *orderbook.Node) int
	walk = func(n *orderbook.Node) int {
		if n == nil {
			return 0
		}
		addr := uintptr(unsafe.Pointer(n))
		assert.GreaterOrEqual(t, addr, lo)
		assert.Less(t, addr, hi)
		return 1 + walk(n.Left) + walk(n.Right)
	}
	assert.Equal(t, 16, walk(rb.tree.Root))
}

func TestInsertExhausted(t *testing.T) {
	buf := newBuffer(t, 4)
	book := New(buf)

	g := orderbook.NewGenerator(5)
	for i := 0; i < 4; i++ {
		require.NoError(t, book.Insert(g.Next()))
	}

	err := book.Insert(g.Next())
	assert.ErrorIs(t, err, region.ErrOutOfMemory)
	assert.Equal(t, 4, book.Len())
}

func TestRemove(t *testing.T) {
	buf := newBuffer(t, 8)
	book := New(buf)

	for _, id := range []int{4, 2, 6, 1, 3, 5, 7} {
		require.NoError(t, book.Insert(orderbook.Order{ID: id, Side: orderbook.OrderSideBuy, Price: 9000 + id, Qty: 1}))
	}
	require.NoError(t, book.Remove(4))
	assert.ErrorIs(t, book.Remove(4), orderbook.ErrNotFound)

	var got []int
	for _, o := range book.Orders() {
		got = append(got, o.ID)
	}
	assert.Equal(t, []int{1, 2, 3, 5, 6, 7}, got)

	// Unlinked nodes are not reused before a reset.
	require.NoError(t, book.Insert(orderbook.Order{ID: 8}))
	assert.ErrorIs(t, book.Insert(orderbook.Order{ID: 9}), region.ErrOutOfMemory)
}

func TestResetReclaimsBuffer(t *testing.T) {
	buf := newBuffer(t, 32)
	book := New(buf)
	g := orderbook.NewGenerator(9)

	for frame := 0; frame < 5; frame++ {
		for {
			if err := book.Insert(g.Next()); err != nil {
				require.ErrorIs(t, err, region.ErrOutOfMemory)
				break
			}
		}
		assert.Equal(t, 32, book.Len())

		book.Reset()
		assert.Equal(t, 0, book.Len())
		assert.Empty(t, book.Orders())
		assert.Equal(t, uint64(0), buf.Offset())
	}
}

func TestActAgainstStandardBook(t *testing.T) {
	buf := newBuffer(t, 4096)
	rbook := New(buf)
	sbook := newHeapBook()

	rg, sg := orderbook.NewGenerator(21), orderbook.NewGenerator(21)
	for i := 0; i < 4000; i++ {
		require.NoError(t, rg.Act(rbook))
		require.NoError(t, sg.Act(sbook))
	}
	assert.Equal(t, sbook.Orders(), rbook.Orders())
}

type heapBook struct{ orderbook.Tree }

func newHeapBook() *heapBook { return &heapBook{} }

func (b *heapBook) Insert(o orderbook.Order) error {
	b.Link(&orderbook.Node{Order: o})
	return nil
}

func (b *heapBook) Remove(id int) error {
	_, err := b.Unlink(id)
	return err
}

func (b *heapBook) Reset() { b.Clear() }
