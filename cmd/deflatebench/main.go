// Command deflatebench compresses a file with this module's engine at every
// level and reports the result alongside a handful of other LZ77-family
// codecs run one format at a time against the same corpus file.
package main

import (
	"bytes"
	"compress/flate"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	klauspostflate "github.com/klauspost/compress/flate"
	"github.com/pierrec/lz4/v4"
	"github.com/pierrec/xxHash/xxHash32"

	nflate "github.com/nox-compress/deflate/flate"
	"github.com/nox-compress/deflate/stream"
)

func main() {
	strategyName := flag.String("strategy", "default", "default|filtered|huffmanonly")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: deflatebench [-strategy name] <file>")
		os.Exit(2)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fingerprint := xxHash32.Checksum(data, 0)
	fmt.Printf("input: %d bytes, xxHash32 %#08x\n\n", len(data), fingerprint)

	fmt.Println("-- this module, level 0-9 --")
	for level := 0; level <= 9; level++ {
		result, err := benchOwn(data, level, *strategyName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "level %d: %v\n", level, err)
			continue
		}
		fmt.Println(result)
	}

	fmt.Println()
	fmt.Println("-- reference codecs --")
	for _, r := range []struct {
		name string
		fn   func([]byte) (codecResult, error)
	}{
		{"klauspost/compress/flate (level 6)", benchKlauspost},
		{"golang/snappy", benchSnappy},
		{"andybalholm/brotli (quality 6)", benchBrotli},
		{"pierrec/lz4", benchLZ4},
	} {
		res, err := r.fn(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.name, err)
			continue
		}
		fmt.Printf("%-38s %10d bytes  %10s  round-trip ok=%v\n", r.name, res.size, res.elapsed, res.ok)
	}
}

type codecResult struct {
	size    int
	elapsed time.Duration
	ok      bool
}

func benchOwn(data []byte, level int, strategyName string) (string, error) {
	start := time.Now()
	var compressed bytes.Buffer
	w := stream.NewWriter(&compressed, level)
	switch strategyName {
	case "filtered":
		w.SetStrategy(nflate.Filtered)
	case "huffmanonly":
		w.SetStrategy(nflate.HuffmanOnly)
	}
	if _, err := w.Write(data); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	elapsed := time.Since(start)

	r := flate.NewReader(bytes.NewReader(compressed.Bytes()))
	got, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	ok := bytes.Equal(got, data) && xxHash32.Checksum(got, 0) == xxHash32.Checksum(data, 0)

	return fmt.Sprintf("level %d: %10d bytes  %10s  round-trip ok=%v", level, compressed.Len(), elapsed, ok), nil
}

func benchKlauspost(data []byte) (codecResult, error) {
	start := time.Now()
	var b bytes.Buffer
	w, err := klauspostflate.NewWriter(&b, 6)
	if err != nil {
		return codecResult{}, err
	}
	if _, err := w.Write(data); err != nil {
		return codecResult{}, err
	}
	if err := w.Close(); err != nil {
		return codecResult{}, err
	}
	elapsed := time.Since(start)

	r := klauspostflate.NewReader(bytes.NewReader(b.Bytes()))
	got, err := io.ReadAll(r)
	if err != nil {
		return codecResult{}, err
	}
	return codecResult{size: b.Len(), elapsed: elapsed, ok: bytes.Equal(got, data)}, nil
}

func benchSnappy(data []byte) (codecResult, error) {
	start := time.Now()
	var b bytes.Buffer
	w := snappy.NewBufferedWriter(&b)
	if _, err := w.Write(data); err != nil {
		return codecResult{}, err
	}
	if err := w.Close(); err != nil {
		return codecResult{}, err
	}
	elapsed := time.Since(start)

	r := snappy.NewReader(bytes.NewReader(b.Bytes()))
	got, err := io.ReadAll(r)
	if err != nil {
		return codecResult{}, err
	}
	return codecResult{size: b.Len(), elapsed: elapsed, ok: bytes.Equal(got, data)}, nil
}

func benchBrotli(data []byte) (codecResult, error) {
	start := time.Now()
	var b bytes.Buffer
	w := brotli.NewWriterLevel(&b, 6)
	if _, err := w.Write(data); err != nil {
		return codecResult{}, err
	}
	if err := w.Close(); err != nil {
		return codecResult{}, err
	}
	elapsed := time.Since(start)

	r := brotli.NewReader(bytes.NewReader(b.Bytes()))
	got, err := io.ReadAll(r)
	if err != nil {
		return codecResult{}, err
	}
	return codecResult{size: b.Len(), elapsed: elapsed, ok: bytes.Equal(got, data)}, nil
}

func benchLZ4(data []byte) (codecResult, error) {
	start := time.Now()
	var b bytes.Buffer
	w := lz4.NewWriter(&b)
	if _, err := w.Write(data); err != nil {
		return codecResult{}, err
	}
	if err := w.Close(); err != nil {
		return codecResult{}, err
	}
	elapsed := time.Since(start)

	r := lz4.NewReader(bytes.NewReader(b.Bytes()))
	got, err := io.ReadAll(r)
	if err != nil {
		return codecResult{}, err
	}
	return codecResult{size: b.Len(), elapsed: elapsed, ok: bytes.Equal(got, data)}, nil
}
