package layout

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
	"math"
)

// Fingerprint returns a content hash of a layout pass's inputs. Two calls
// with equal blocks and viewport size return the same value, so callers can
// skip re-running an unchanged layout.
func Fingerprint(blocks []TextBlock, cols, rows int) string {
	h := sha256.New()
	writeInt(h, int64(cols))
	writeInt(h, int64(rows))
	writeInt(h, int64(len(blocks)))
	for _, b := range blocks {
		writeString(h, b.Text)
		writeFloat(h, b.X)
		writeFloat(h, b.Y)
		writeBool(h, b.Percent)
		writeString(h, b.Name)
		writeString(h, b.AnchorTo)
		writeString(h, string(b.AnchorPoint))
		writeInt(h, int64(b.AnchorOffset.X))
		writeInt(h, int64(b.AnchorOffset.Y))
		writeFloat(h, b.MaxWidthPercent)
		writeString(h, string(b.Alignment))
		writeBool(h, b.Centered)
		writeBool(h, b.Fixed)
		writeString(h, b.FontName)
	}
	return hex.EncodeToString(h.Sum(nil)[:16])
}

func writeInt(h hash.Hash, v int64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	h.Write(buf[:])
}

func writeFloat(h hash.Hash, v float64) {
	writeInt(h, int64(math.Float64bits(v)))
}

func writeBool(h hash.Hash, v bool) {
	if v {
		h.Write([]byte{1})
		return
	}
	h.Write([]byte{0})
}

// writeString is length-prefixed so adjacent fields cannot run together.
func writeString(h hash.Hash, s string) {
	writeInt(h, int64(len(s)))
	h.Write([]byte(s))
}
