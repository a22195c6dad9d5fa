package parser

import "io"

// DefaultChunkSize is the largest piece handed to the tokenizer per read
const DefaultChunkSize = 8096

type chunkReader struct {
	r    io.Reader
	size int
}

// NewChunkReader limits every Read on r to at most size bytes
func NewChunkReader(r io.Reader, size int) io.Reader {
	if size <= 0 {
		size = DefaultChunkSize
	}
	return &chunkReader{r: r, size: size}
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if len(p) > c.size {
		p = p[:c.size]
	}
	return c.r.Read(p)
}
