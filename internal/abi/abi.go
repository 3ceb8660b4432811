// Package abi holds the calling convention of the WASM addon exports.
//
// Strings and arrays cross the boundary as a pointer into linear memory
// plus a length. A returned buffer is packed into one uint64: pointer in
// the high 32 bits, length in the low 32. Float arrays are little-endian
// IEEE 754 doubles, 8 bytes each.
//
// The helpers in this file are portable. The allocator that pins guest
// memory only exists when building for wasip1.
package abi

import (
	"encoding/binary"
	"fmt"
	"math"
)

// PtrHighBits is the shift of the pointer inside a packed value
const PtrHighBits = 32

// Float64Size is the width of one encoded array element
const Float64Size = 8

// MaxTotalAllocations caps the memory the guest allocator hands out
const MaxTotalAllocations = 100 * 1024 * 1024 // 100 MB

// MaxFloat64s is the longest array a single allocation can carry
const MaxFloat64s = MaxTotalAllocations / Float64Size

// PackPtrLen packs a pointer and length into a single uint64.
// Panics if ptr is 0 and length > 0.
func PackPtrLen(ptr, length uint32) uint64 {
	if ptr == 0 && length > 0 {
		panic(fmt.Sprintf("abi: invalid pack - null pointer with non-zero length (%d)", length))
	}
	return (uint64(ptr) << PtrHighBits) | uint64(length)
}

// UnpackPtrLen unpacks a uint64 into its pointer and length.
// Panics if ptr is 0 and length > 0.
func UnpackPtrLen(packed uint64) (ptr, length uint32) {
	ptr = uint32(packed >> PtrHighBits)
	length = uint32(packed)
	if ptr == 0 && length > 0 {
		panic(fmt.Sprintf("abi: invalid unpack - null pointer with non-zero length (%d)", length))
	}
	return ptr, length
}

// DecodeFloat64s reads little-endian doubles. len(b) must be a multiple
// of Float64Size.
func DecodeFloat64s(b []byte) ([]float64, error) {
	if len(b)%Float64Size != 0 {
		return nil, fmt.Errorf("abi: %d bytes is not a whole number of float64 values", len(b))
	}
	out := make([]float64, len(b)/Float64Size)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*Float64Size:]))
	}
	return out, nil
}

// EncodeFloat64s writes values as little-endian doubles
func EncodeFloat64s(values []float64) []byte {
	out := make([]byte, 0, len(values)*Float64Size)
	for _, v := range values {
		out = binary.LittleEndian.AppendUint64(out, math.Float64bits(v))
	}
	return out
}
