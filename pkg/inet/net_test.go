package inet

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func agent(t *testing.T, n *Net, kind Tag, label uint32) uint32 {
	t.Helper()
	addr, err := n.arena.Alloc()
	require.NoError(t, err)
	n.arena.nodes[addr] = Node{Kind: kind, Label: label}
	return addr
}

func identityBook(t *testing.T) *Book {
	t.Helper()
	tpl := NewTemplate()
	c := tpl.Alloc(Con, 0)
	tpl.Link(Aux(1, c), Aux(2, c))
	tpl.Link(RootPtr, Principal(Con, c))
	_, open := tpl.Unlinked()
	require.False(t, open)

	book := NewBook()
	book.Insert("id", tpl)
	return book
}

func TestPtrEncoding(t *testing.T) {
	assert.Equal(t, int64(-1), NumPtr(-1).Int())
	assert.Equal(t, int64(42), NumPtr(42).Int())
	assert.Equal(t, Num, NumPtr(-7).Tag())

	p := Aux(2, 99)
	assert.Equal(t, Var2, p.Tag())
	assert.Equal(t, uint32(99), p.Addr())
	assert.Equal(t, 2, p.Port())
	assert.True(t, p.HasSlot())
	assert.False(t, p.IsPri())

	c := Principal(Dup, 3)
	assert.True(t, c.IsNode())
	assert.True(t, c.IsPri())
	assert.Equal(t, 0, c.Port())

	assert.True(t, EraPtr.IsNilary())
	assert.False(t, EraPtr.HasSlot())
	assert.Equal(t, -1, RefPtr(1).Port())
	assert.Equal(t, "+5", NumPtr(5).String())
}

func TestArenaAllocFree(t *testing.T) {
	a := NewArena(2)
	x, err := a.Alloc()
	require.NoError(t, err)
	y, err := a.Alloc()
	require.NoError(t, err)
	assert.NotEqual(t, x, y)

	_, err = a.Alloc()
	assert.ErrorIs(t, err, ErrOutOfMemory)

	a.nodes[x].Kind = Con
	a.Free(x)
	assert.Nil(t, a.Get(x))
	assert.Equal(t, 1, a.Live())

	z, err := a.Alloc()
	require.NoError(t, err)
	assert.Equal(t, x, z)
}

func TestArenaAllocNIsAllOrNothing(t *testing.T) {
	a := NewArena(3)
	_, err := a.Alloc()
	require.NoError(t, err)

	buf, err := a.allocN(nil, 3)
	assert.ErrorIs(t, err, ErrOutOfMemory)
	assert.Empty(t, buf)
	assert.Equal(t, 1, a.Live())

	buf, err = a.allocN(nil, 2)
	require.NoError(t, err)
	assert.Len(t, buf, 2)
	assert.Equal(t, 3, a.Live())
}

func TestConAnnihilation(t *testing.T) {
	n := New(16)
	a := agent(t, n, Con, 0)
	b := agent(t, n, Con, 0)
	n.Link(Principal(Con, a), Principal(Con, b))
	n.Link(RootPtr, Aux(1, a))
	n.Link(Aux(2, a), EraPtr)
	n.Link(Aux(1, b), NumPtr(5))
	n.Link(Aux(2, b), NumPtr(7))

	require.NoError(t, n.Reduce(NewBook()))

	assert.Equal(t, NumPtr(5), n.Root())
	assert.Equal(t, 0, n.Live())
	// annihilation plus the eraser meeting the numeral
	assert.Equal(t, uint64(2), n.Rewrites())
	assert.Equal(t, uint64(1), n.Stats().Rules[RuleAnnihilate])
	assert.Equal(t, uint64(1), n.Stats().Rules[RuleVoid])
}

func TestAnnihilationFollowsInternalWires(t *testing.T) {
	// a's aux 2 is wired to b's aux 2, so a.aux1 and b.aux1 connect
	// through the pair and the loop disappears.
	n := New(16)
	a := agent(t, n, Dup, 3)
	b := agent(t, n, Dup, 3)
	n.Link(Principal(Dup, a), Principal(Dup, b))
	n.Link(RootPtr, Aux(1, a))
	n.Link(Aux(2, a), Aux(2, b))
	n.Link(Aux(1, b), NumPtr(9))

	require.NoError(t, n.Reduce(NewBook()))
	assert.Equal(t, NumPtr(9), n.Root())
	assert.Equal(t, 0, n.Live())
}

func TestCommutation(t *testing.T) {
	n := New(16)
	a := agent(t, n, Con, 0)
	b := agent(t, n, Dup, 1)
	n.Link(Principal(Con, a), Principal(Dup, b))
	n.Link(RootPtr, Aux(1, a))
	n.Link(Aux(2, a), EraPtr)
	n.Link(Aux(1, b), NumPtr(1))
	n.Link(Aux(2, b), NumPtr(2))

	r, ok := n.sched.Pop()
	require.True(t, ok)
	require.NoError(t, n.interact(NewBook(), r.A, r.B))
	assert.Equal(t, 4, n.Live())
	assert.Equal(t, uint64(1), n.Rewrites())
	// the copy facing the root wire is not an active pair
	assert.Equal(t, 3, n.sched.Len())

	require.NoError(t, n.Reduce(NewBook()))
	root := n.Root()
	require.Equal(t, Dup, root.Tag())
	nd, ok := n.NodeAt(root.Addr())
	require.True(t, ok)
	assert.Equal(t, uint32(1), nd.Label)
	assert.Equal(t, NumPtr(1), nd.Port[1])
	assert.Equal(t, NumPtr(2), nd.Port[2])
	assert.Equal(t, 1, n.Live())
}

func TestDifferentColorsCommute(t *testing.T) {
	n := New(16)
	a := agent(t, n, Dup, 1)
	b := agent(t, n, Dup, 2)
	n.Link(Principal(Dup, a), Principal(Dup, b))
	n.Link(RootPtr, Aux(1, a))
	n.Link(Aux(2, a), EraPtr)
	n.Link(Aux(1, b), EraPtr)
	n.Link(Aux(2, b), EraPtr)

	require.NoError(t, n.Reduce(NewBook()))
	assert.Equal(t, uint64(1), n.Stats().Rules[RuleCommute])
	root := n.Root()
	require.Equal(t, Dup, root.Tag())
	nd, ok := n.NodeAt(root.Addr())
	require.True(t, ok)
	assert.Equal(t, uint32(2), nd.Label)
	assert.Equal(t, EraPtr, nd.Port[1])
	assert.Equal(t, EraPtr, nd.Port[2])
	assert.Equal(t, 1, n.Live())
}

func TestEraseNode(t *testing.T) {
	n := New(4)
	a := agent(t, n, Con, 0)
	n.Link(EraPtr, Principal(Con, a))
	n.Link(RootPtr, Aux(1, a))
	n.Link(Aux(2, a), NumPtr(3))

	require.NoError(t, n.Reduce(NewBook()))
	assert.Equal(t, EraPtr, n.Root())
	assert.Equal(t, 0, n.Live())
	assert.Equal(t, uint64(1), n.Stats().Rules[RuleErase])
}

func TestEraseDoesNotDereference(t *testing.T) {
	book := identityBook(t)
	n := New(4)
	n.Link(EraPtr, RefPtr(book.ID("id")))
	n.Link(RootPtr, EraPtr)

	require.NoError(t, n.Reduce(book))
	assert.Equal(t, uint64(0), n.Dereferences())
	assert.Equal(t, 0, n.Live())
}

func TestNumeralCopiesThroughDup(t *testing.T) {
	n := New(4)
	d := agent(t, n, Dup, 1)
	c := agent(t, n, Con, 0)
	n.Link(NumPtr(4), Principal(Dup, d))
	n.Link(Aux(1, d), Aux(1, c))
	n.Link(Aux(2, d), Aux(2, c))
	n.Link(RootPtr, Principal(Con, c))

	require.NoError(t, n.Reduce(NewBook()))
	nd, ok := n.NodeAt(n.Root().Addr())
	require.True(t, ok)
	assert.Equal(t, NumPtr(4), nd.Port[1])
	assert.Equal(t, NumPtr(4), nd.Port[2])
	assert.Equal(t, uint64(1), n.Stats().Rules[RuleCopy])
}

func TestOperatorWithLiteralOperand(t *testing.T) {
	n := New(4)
	o := agent(t, n, Op2, uint32(OpAdd))
	n.Link(NumPtr(3), Principal(Op2, o))
	n.Link(Aux(1, o), NumPtr(4))
	n.Link(Aux(2, o), RootPtr)

	require.NoError(t, n.Reduce(NewBook()))
	assert.Equal(t, NumPtr(7), n.Root())
	assert.Equal(t, 0, n.Live())
}

func TestOperatorWaitsForSecondOperand(t *testing.T) {
	n := New(4)
	s := agent(t, n, Op2, uint32(OpSub))
	p := agent(t, n, Op2, uint32(OpAdd))
	n.Link(Aux(1, p), NumPtr(2))
	n.Link(Aux(2, p), Aux(1, s))
	n.Link(Aux(2, s), RootPtr)
	n.Link(NumPtr(1), Principal(Op2, p))
	n.Link(NumPtr(10), Principal(Op2, s))

	require.NoError(t, n.Reduce(NewBook()))
	assert.Equal(t, NumPtr(7), n.Root())
	assert.Equal(t, uint64(2), n.Stats().Rules[RuleOperate])
	assert.Equal(t, 0, n.Live())
}

func TestOpApply(t *testing.T) {
	tests := []struct {
		op   Op
		a, b int64
		want int64
	}{
		{OpAdd, 2, 3, 5},
		{OpSub, 2, 3, -1},
		{OpMul, -4, 3, -12},
		{OpDiv, 7, 2, 3},
		{OpDiv, 7, 0, 0},
		{OpMod, 7, 0, 0},
		{OpShl, 1, 4, 16},
		{OpLtn, 1, 2, 1},
		{OpEql, 1, 2, 0},
		{OpNeq, 1, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.op.Apply(tt.a, tt.b))
		})
	}

	op, ok := ParseOp("<=")
	require.True(t, ok)
	assert.Equal(t, OpLte, op)
	_, ok = ParseOp("=>")
	assert.False(t, ok)
}

func TestBootAndNormal(t *testing.T) {
	book := identityBook(t)
	n := New(8)
	require.NoError(t, n.Boot(book, "id"))
	assert.True(t, n.Root().IsRef())

	require.NoError(t, n.Normal(book))
	root := n.Root()
	require.Equal(t, Con, root.Tag())
	a1, _ := n.Target(Aux(1, root.Addr()))
	assert.Equal(t, Aux(2, root.Addr()), a1)
	assert.Equal(t, uint64(1), n.Dereferences())

	before := n.Rewrites()
	require.NoError(t, n.Normal(book))
	assert.Equal(t, before, n.Rewrites())
}

func TestBootUnknownName(t *testing.T) {
	n := New(8)
	err := n.Boot(NewBook(), "main")
	var re *RefError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "main", re.Name)
	assert.ErrorIs(t, err, ErrUndefinedReference)
}

func TestUndefinedReferenceKeepsPair(t *testing.T) {
	book := NewBook()
	id := book.ID("missing")
	n := New(8)
	c := agent(t, n, Con, 0)
	n.Link(RefPtr(id), Principal(Con, c))
	n.Link(Aux(1, c), EraPtr)
	n.Link(Aux(2, c), RootPtr)

	err := n.Reduce(book)
	assert.ErrorIs(t, err, ErrUndefinedReference)
	assert.Len(t, n.Redexes(), 1)
	assert.Equal(t, []string{"missing"}, book.Undefined())
}

func TestOutOfMemoryKeepsPair(t *testing.T) {
	n := New(3)
	a := agent(t, n, Con, 0)
	b := agent(t, n, Dup, 1)
	n.Link(Principal(Con, a), Principal(Dup, b))
	n.Link(RootPtr, Aux(1, a))
	n.Link(Aux(2, a), EraPtr)
	n.Link(Aux(1, b), EraPtr)
	n.Link(Aux(2, b), EraPtr)

	err := n.Reduce(NewBook())
	require.ErrorIs(t, err, ErrOutOfMemory)
	assert.Equal(t, 2, n.Live())
	assert.Equal(t, uint64(0), n.Rewrites())
	assert.Len(t, n.Redexes(), 1)
}

func TestExpandInstantiatesTreeReferences(t *testing.T) {
	book := identityBook(t)
	id := book.ID("id")
	n := New(8)
	c := agent(t, n, Con, 0)
	n.Link(RootPtr, Principal(Con, c))
	n.Link(Aux(1, c), RefPtr(id))
	n.Link(Aux(2, c), RefPtr(id))

	require.NoError(t, n.Expand(book))
	assert.Equal(t, uint64(2), n.Dereferences())
	assert.Equal(t, 3, n.Live())
	assert.Empty(t, n.Redexes())
}

func TestReduceHonoursCancellation(t *testing.T) {
	n := New(8)
	for i := 0; i < checkEvery+1; i++ {
		n.Link(EraPtr, NumPtr(int64(i)))
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := n.ReduceContext(ctx, NewBook())
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, uint64(checkEvery), n.Rewrites())
}

func TestTrace(t *testing.T) {
	n := New(4)
	n.EnableTrace(1)
	n.Link(EraPtr, NumPtr(1))
	n.Link(EraPtr, NumPtr(2))
	require.NoError(t, n.Reduce(NewBook()))

	events := n.TraceSnapshot()
	require.Len(t, events, 1)
	assert.Equal(t, RuleVoid, events[0].Rule)

	n.DisableTrace()
	assert.Nil(t, n.TraceSnapshot())
}

func TestPortErrorBecomesError(t *testing.T) {
	n := New(4)
	n.sched.Push(Principal(Con, 2), EraPtr)
	err := n.Reduce(NewBook())
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestPlaceRelocatesAroundFreeSlots(t *testing.T) {
	book := identityBook(t)
	n := New(4)
	x := agent(t, n, Con, 0)
	agent(t, n, Con, 0)
	n.arena.Free(x)

	r, err := book.Instantiate("id", n)
	require.NoError(t, err)
	assert.Equal(t, x, r.Addr())
	got, _ := n.Target(Aux(1, r.Addr()))
	assert.Equal(t, Aux(2, x), got)

	_, err = book.Instantiate("nope", n)
	assert.ErrorIs(t, err, ErrUndefinedReference)
}
