// Package image implements the assembler's memory image: two
// append-only Word arrays (code and data) sharing a combined capacity,
// with a sticky saturation flag once that capacity is exceeded.
package image

import "github.com/gmofishsauce/asm10/internal/word"

// DefaultBaseAddress is the load address of the first code word (C in
// the spec).
const DefaultBaseAddress = 100

// DefaultSize is the combined IC+DC capacity (MEMORY_SIZE in the spec).
const DefaultSize = 256

// Image holds the code and data word arrays for one assembly session.
type Image struct {
	base int
	size int

	code []word.Word
	data []word.Word
	full bool
}

// New returns an empty Image with the given base load address and
// combined code+data capacity.
func New(base, size int) *Image {
	return &Image{base: base, size: size}
}

// IC returns the current instruction counter (next code index).
func (img *Image) IC() int { return len(img.code) }

// DC returns the current data counter (next data index).
func (img *Image) DC() int { return len(img.data) }

// Base returns the configured load base address.
func (img *Image) Base() int { return img.base }

// Full reports whether an insert has ever been attempted past
// capacity; once true it stays true for the life of the Image.
func (img *Image) Full() bool { return img.full }

func (img *Image) hasRoom() bool {
	return img.IC()+img.DC() < img.size
}

// InsertCode appends w to the code array, or sets the sticky full flag
// if the combined capacity is already exhausted. Returns the index the
// word was stored at, or -1 if the image was full.
func (img *Image) InsertCode(w word.Word) int {
	if !img.hasRoom() {
		img.full = true
		return -1
	}
	img.code = append(img.code, w)
	return len(img.code) - 1
}

// InsertData appends w to the data array, mirroring InsertCode.
func (img *Image) InsertData(w word.Word) int {
	if !img.hasRoom() {
		img.full = true
		return -1
	}
	img.data = append(img.data, w)
	return len(img.data) - 1
}

// SetCode overwrites the code word at index with w; used by the second
// pass to patch a previously reserved slot.
func (img *Image) SetCode(index int, w word.Word) {
	img.code[index] = w
}

// Code and Data expose read-only views of the arrays, in emission
// order, for the output writers.
func (img *Image) Code() []word.Word { return img.code }
func (img *Image) Data() []word.Word { return img.data }

// DataLoadAddress returns the final load address of data[index]: the
// base, plus the final instruction count, plus the index within the
// data array.
func (img *Image) DataLoadAddress(index int) int {
	return img.base + img.IC() + index
}

// CodeLoadAddress returns the final load address of code[index].
func (img *Image) CodeLoadAddress(index int) int {
	return img.base + index
}
