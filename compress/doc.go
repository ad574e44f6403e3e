// Package compress provides compression and decompression codecs for DCFS payloads.
//
// This package is an external collaborator, not a dependency of codec.Writer
// or codec.Reader: the wire format's FlagCompressed bit and wire.CompressionKind
// value are pure vocabulary an application uses to say "this BYTES value holds
// compressed bytes, compressed with this algorithm." Nothing in codec or wire
// ever calls into this package; an application compresses a payload with a
// Codec from here, writes the result as a BYTES value, and sets FlagCompressed
// itself, then reverses the process on read using the CompressionKind it
// recorded out-of-band (a struct field, a companion header value, or a
// convention agreed with the sender).
//
// # Overview
//
// The package supports four algorithms, selected via wire.CompressionKind:
//   - CompressionNone: No compression (fastest, largest)
//   - CompressionZstd: Excellent compression ratio, moderate speed
//   - CompressionS2: Balanced compression and speed
//   - CompressionLZ4: Fast decompression, moderate compression
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Supported Algorithms
//
// **NoOp Compression** (wire.CompressionNone)
//
//	codec := compress.NewNoOpCompressor()
//	compressed, _ := codec.Compress(data)  // Returns data unchanged
//	original, _ := codec.Decompress(compressed)  // Returns data unchanged
//
// Use when:
//   - Data is already incompressible (random, encrypted)
//   - CPU is more critical than payload size
//
// **Zstandard (Zstd)** (wire.CompressionZstd)
//
//	codec := compress.NewZstdCompressor()
//	compressed, _ := codec.Compress(data)  // Best compression ratio
//	original, _ := codec.Decompress(compressed)
//
// Best for storage-constrained or bandwidth-constrained transports where
// CPU cost is acceptable.
//
// **S2 (Snappy Alternative)** (wire.CompressionS2)
//
//	codec := compress.NewS2Compressor()
//	compressed, _ := codec.Compress(data)  // Fast with good compression
//	original, _ := codec.Decompress(compressed)
//
// Best for latency-sensitive paths needing a balance of speed and ratio.
//
// **LZ4** (wire.CompressionLZ4)
//
//	codec := compress.NewLZ4Compressor()
//	compressed, _ := codec.Compress(data)  // Very fast decompression
//	original, _ := codec.Decompress(compressed)
//
// Best for read-heavy workloads where decompression speed dominates.
//
// # Algorithm Selection Guide
//
// | Workload Type          | Recommended | Reason                              |
// |------------------------|-------------|-------------------------------------|
// | Storage-constrained    | Zstd        | Best compression ratio              |
// | Latency-sensitive      | S2 or LZ4   | Minimize added latency              |
// | Read-heavy             | LZ4         | Fastest decompression               |
// | CPU-constrained        | None        | No compression overhead             |
// | Network transmission   | Zstd        | Reduce bandwidth usage              |
//
// # Memory Management
//
// The Zstd codec pools its encoders and decoders, and the LZ4 codec pools
// its block compressors. S2 and NoOp keep no pooled state. Output buffers
// are allocated per call and are not pooled:
//   - LZ4 compression allocates the block bound for the input size
//   - LZ4 decompression starts at 4x the compressed size and doubles on a
//     short buffer, up to 128MiB
//   - NoOp returns its input slice unchanged
//
// # Thread Safety
//
// All codec implementations are thread-safe and can be safely shared across
// goroutines, though a codec per goroutine avoids internal lock contention
// under heavy concurrent use.
//
// # Error Handling
//
// Compression errors are rare but can occur on allocation failure or input
// exceeding an algorithm's limits. Decompression errors are more common:
// corrupted input, a mismatched algorithm, or a decompressed size exceeding
// a caller-imposed limit. All errors are wrapped with context for debugging.
//
// # Advanced Usage
//
// For custom compression needs, implement the Compressor/Decompressor interfaces:
//
//	type MyCodec struct{}
//
//	func (c *MyCodec) Compress(data []byte) ([]byte, error) {
//	    // Custom compression logic
//	    return compressedData, nil
//	}
//
//	func (c *MyCodec) Decompress(data []byte) ([]byte, error) {
//	    // Custom decompression logic
//	    return originalData, nil
//	}
//
// # Examples
//
// The round trip is: compress a payload with a Codec, write the result as
// a BYTES value with FlagCompressed set, then on read take the BYTES value
// and decompress it with the Codec for the recorded CompressionKind. The
// module ships no example program for it.
package compress
