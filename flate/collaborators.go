package flate

// HuffmanCoder is the entropy-coding collaborator the engine drives. It is
// implemented by package huffman; the engine never looks inside it, only
// calls these methods in the sequence described by the engine's drivers.
type HuffmanCoder interface {
	// TallyLit records a literal byte, returning whether the current block
	// is now full and should be flushed.
	TallyLit(b byte) bool
	// TallyDist records a length/distance match, returning whether the
	// current block is now full and should be flushed.
	TallyDist(dist, length int) bool
	// IsFull reports whether the current block should be flushed before
	// any more symbols are tallied.
	IsFull() bool
	// FlushBlock writes the accumulated symbols (plus, if cheaper, the raw
	// window bytes as a stored block) as one RFC 1951 block.
	FlushBlock(window []byte, start, length int, lastBlock bool)
	// FlushStoredBlock writes window[start:start+length] verbatim as a
	// stored block, bypassing any tallied symbols.
	FlushStoredBlock(window []byte, start, length int, lastBlock bool)
	// Reset clears tallied state for a new stream.
	Reset()
}

// Checksum is the rolling checksum collaborator updated with every byte
// that enters the window.
type Checksum interface {
	Update(p []byte)
	Reset()
	Value() uint32
}

// PendingBuffer is the bit-accumulation collaborator the HuffmanCoder
// writes into. The engine never touches it directly; it only asks whether
// output is fully drained before looping in Deflate.
type PendingBuffer interface {
	IsFlushed() bool
}
