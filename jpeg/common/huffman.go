package common

// Table is a canonical Huffman code, defined per Annex C of ITU-T T.81 by
// the per-length code counts (Bits) and the length-ordered symbol list
// (Values).
type Table struct {
	// Number of codes of each length (1-16 bits)
	Bits [16]int
	// Symbols in order of code length
	Values []byte

	codes [256]Code
}

// Code is an assigned Huffman code for one symbol
type Code struct {
	Code uint16 // The code bits, right-aligned
	Len  int    // Code length in bits, 0 if the symbol has no code
}

// NewTable builds a table from explicit (Bits, Values) arrays and derives
// the canonical codes: codes of each length are assigned sequentially,
// starting from twice the previous length's last code plus one.
func NewTable(bits [16]int, values []byte) *Table {
	t := &Table{
		Bits:   bits,
		Values: values,
	}

	code := uint16(0)
	p := 0
	for l := 0; l < 16; l++ {
		for i := 0; i < bits[l]; i++ {
			if p < len(values) {
				t.codes[values[p]] = Code{
					Code: code,
					Len:  l + 1,
				}
				code++
				p++
			}
		}
		code <<= 1
	}

	return t
}

// Encode writes the code for symbol to bw. Returns ErrUnknownSymbol if the
// symbol has no code in this table.
func (t *Table) Encode(symbol byte, bw *BitWriter) error {
	c := t.codes[symbol]
	if c.Len == 0 {
		return ErrUnknownSymbol
	}
	return bw.WriteBits(uint32(c.Code), c.Len)
}

// CodeFor returns the assigned code for symbol. A zero-length code means
// the symbol is absent.
func (t *Table) CodeFor(symbol byte) Code {
	return t.codes[symbol]
}

// LengthCounts returns the per-length code counts for DHT emission
func (t *Table) LengthCounts() [16]int {
	return t.Bits
}

// OrderedSymbols returns the symbols in length order for DHT emission
func (t *Table) OrderedSymbols() []byte {
	return t.Values
}
