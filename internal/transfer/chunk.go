// internal/transfer/chunk.go
package transfer

// Chunks partitions data into consecutive, non-overlapping slices of at most size bytes.
// The slices alias data. Empty data yields no chunks.
func Chunks(data []byte, size int) [][]byte {
	if size <= 0 {
		size = ChunkSize
	}

	out := make([][]byte, 0, ChunkCount(len(data), size))
	for off := 0; off < len(data); off += size {
		end := off + size
		if end > len(data) {
			end = len(data)
		}
		out = append(out, data[off:end:end])
	}
	return out
}

// ChunkCount is ceil(n/size).
func ChunkCount(n, size int) int {
	if size <= 0 {
		size = ChunkSize
	}
	return (n + size - 1) / size
}
