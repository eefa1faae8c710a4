package image

import (
	"testing"

	"github.com/gmofishsauce/asm10/internal/word"
)

func TestInsertAndCounters(t *testing.T) {
	img := New(DefaultBaseAddress, DefaultSize)
	idx := img.InsertCode(word.New(1))
	if idx != 0 || img.IC() != 1 {
		t.Errorf("after one code insert: idx=%d IC=%d", idx, img.IC())
	}
	idx = img.InsertData(word.New(2))
	if idx != 0 || img.DC() != 1 {
		t.Errorf("after one data insert: idx=%d DC=%d", idx, img.DC())
	}
}

func TestSaturation(t *testing.T) {
	img := New(100, 2)
	img.InsertCode(word.New(1))
	img.InsertData(word.New(2))
	if img.Full() {
		t.Fatal("should not be full at capacity")
	}
	idx := img.InsertCode(word.New(3))
	if idx != -1 || !img.Full() {
		t.Errorf("expected overflow insert rejected and full flag set, got idx=%d full=%v", idx, img.Full())
	}
}

func TestLoadAddresses(t *testing.T) {
	img := New(100, 256)
	img.InsertCode(word.New(0))
	img.InsertCode(word.New(0))
	img.InsertData(word.New(0))
	if got := img.CodeLoadAddress(1); got != 101 {
		t.Errorf("CodeLoadAddress(1) = %d, want 101", got)
	}
	if got := img.DataLoadAddress(0); got != 102 {
		t.Errorf("DataLoadAddress(0) = %d, want 102", got)
	}
}

func TestSetCodePatch(t *testing.T) {
	img := New(100, 256)
	img.InsertCode(word.New(0))
	img.SetCode(0, word.PackAddress(5, word.ARERelocatable))
	if img.Code()[0].Bits() != (5<<2 | 2) {
		t.Errorf("patched word = %d, want %d", img.Code()[0].Bits(), 5<<2|2)
	}
}
