package compiler

// lookaheadDepth is the number of tokens the parser can see ahead. Must be a
// power of two.
const lookaheadDepth = 2

// lookahead is a fixed ring of tokens pulled from the lexer but not yet
// consumed by the parser.
type lookahead struct {
	items [lookaheadDepth]Token
	head  int
	n     int
}

func (q *lookahead) len() int { return q.n }

// push appends tok at the tail. It panics when the ring is full.
func (q *lookahead) push(tok Token) {
	if q.n == lookaheadDepth {
		panic("compiler: lookahead overflow")
	}
	q.items[(q.head+q.n)&(lookaheadDepth-1)] = tok
	q.n++
}

// pop removes and returns the head token.
func (q *lookahead) pop() Token {
	if q.n == 0 {
		panic("compiler: lookahead underflow")
	}
	tok := q.items[q.head]
	q.items[q.head] = Token{}
	q.head = (q.head + 1) & (lookaheadDepth - 1)
	q.n--
	return tok
}

// at returns the i-th buffered token without removing it.
func (q *lookahead) at(i int) Token {
	if i < 0 || i >= q.n {
		panic("compiler: lookahead index out of range")
	}
	return q.items[(q.head+i)&(lookaheadDepth-1)]
}
