package kfmt

import "io"

// ringBufferSize defines the size of the ring buffer that captures output
// while no sink is attached. It must always be a power of 2.
const ringBufferSize = 4096

// ringBuffer captures output written before a sink is attached and after the
// lifecycle handoff detaches it. Once full, the oldest bytes are overwritten.
type ringBuffer struct {
	buffer         [ringBufferSize]byte
	rIndex, wIndex int
}

// Write writes len(p) bytes from p to the ringBuffer.
func (rb *ringBuffer) Write(p []byte) (int, error) {
	for _, b := range p {
		rb.buffer[rb.wIndex] = b
		rb.wIndex = (rb.wIndex + 1) & (ringBufferSize - 1)
		if rb.rIndex == rb.wIndex {
			rb.rIndex = (rb.rIndex + 1) & (ringBufferSize - 1)
		}
	}

	return len(p), nil
}

// Read drains up to len(p) buffered bytes into p. It returns io.EOF once the
// buffer is empty.
func (rb *ringBuffer) Read(p []byte) (n int, err error) {
	for n < len(p) && rb.rIndex != rb.wIndex {
		// copy the contiguous run that starts at rIndex
		end := rb.wIndex
		if rb.rIndex > rb.wIndex {
			end = ringBufferSize
		}

		chunk := copy(p[n:], rb.buffer[rb.rIndex:end])
		n += chunk
		rb.rIndex = (rb.rIndex + chunk) & (ringBufferSize - 1)
	}

	if n == 0 {
		return 0, io.EOF
	}

	return n, nil
}

// Len returns the number of buffered bytes.
func (rb *ringBuffer) Len() int {
	return (rb.wIndex - rb.rIndex) & (ringBufferSize - 1)
}

// Reset discards any buffered bytes.
func (rb *ringBuffer) Reset() {
	rb.rIndex, rb.wIndex = 0, 0
}
