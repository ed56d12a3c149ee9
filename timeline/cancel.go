package timeline

// Generations is a monotonic counter. Issuing a new Token cancels every
// Token issued before it.
type Generations struct {
	current uint64
}

// Next starts a new generation.
func (g *Generations) Next() Token {
	g.current++
	return Token{gens: g, gen: g.current}
}

// Current is the latest generation issued.
func (g *Generations) Current() uint64 {
	return g.current
}

// Token returns a Token for the current generation without starting a new
// one.
func (g *Generations) Token() Token {
	return Token{gens: g, gen: g.current}
}

// A Token belongs to one generation. The zero Token is never canceled.
type Token struct {
	gens *Generations
	gen  uint64
}

// Canceled reports whether a newer generation has been issued.
func (t Token) Canceled() bool {
	return t.gens != nil && t.gens.current != t.gen
}

// Generation is the generation the token was issued for.
func (t Token) Generation() uint64 {
	return t.gen
}
