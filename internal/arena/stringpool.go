package arena

import (
	"golang.org/x/crypto/blake2b"
)

// StringID is a small integer handle for an interned string. Equal IDs
// imply equal string content; unequal IDs do not imply unequal content
// only if the pool was bypassed, which never happens through Intern.
type StringID int32

// InvalidStringID is never returned by Intern.
const InvalidStringID StringID = -1

// shortThreshold is the length at or under which strings are compared directly
// instead of through their content hash; short identifiers dominate a
// SystemVerilog source file and a direct map lookup on them is cheaper
// than hashing.
const shortThreshold = 64

// StringPool interns identifier and literal text to StringID, case
// sensitively. Long strings (macro bodies, string literals) are deduped
// via a blake2b-256 content hash before falling back to an exact
// comparison, so two macro expansions that produce byte-identical bodies
// share one arena allocation.
type StringPool struct {
	arena   *Arena
	byExact map[string]StringID // short strings
	byHash  map[[32]byte][]entry
	strings []string
}

type entry struct {
	text string
	id   StringID
}

// NewStringPool creates a pool backed by arena for the interned bytes.
func NewStringPool(arena *Arena) *StringPool {
	return &StringPool{
		arena:   arena,
		byExact: make(map[string]StringID),
		byHash:  make(map[[32]byte][]entry),
	}
}

// Intern returns the StringID for s, allocating and copying it into the
// arena on first occurrence. Equal strings, regardless of how they were
// produced (macro expansion, raw lexing), always yield the same StringID.
func (p *StringPool) Intern(s string) StringID {
	if len(s) <= shortThreshold {
		if id, ok := p.byExact[s]; ok {
			return id
		}
		id := p.alloc(s)
		p.byExact[s] = id
		return id
	}

	h := blake2b.Sum256([]byte(s))
	for _, e := range p.byHash[h] {
		if e.text == s {
			return e.id
		}
	}
	id := p.alloc(s)
	p.byHash[h] = append(p.byHash[h], entry{text: s, id: id})
	return id
}

func (p *StringPool) alloc(s string) StringID {
	buf := p.arena.Bytes(len(s), 1)
	copy(buf, s)
	id := StringID(len(p.strings))
	p.strings = append(p.strings, string(buf))
	return id
}

// Lookup returns the interned text for id. It panics if id is out of range,
// an internal-invariant failure per the error-handling design (class 5).
func (p *StringPool) Lookup(id StringID) string {
	if id < 0 || int(id) >= len(p.strings) {
		panic("arena: string pool lookup out of range")
	}
	return p.strings[id]
}

// Len reports how many distinct strings have been interned.
func (p *StringPool) Len() int { return len(p.strings) }
