// Package vocab provides the immutable phrase vocabulary backing the
// phrase tokenizer: a dense id→phrase list plus a hash index for the
// reverse lookup.
package vocab

// Membership is the narrow capability needed by components that only test
// whether an exact string exists in some vocabulary. Satisfied by
// *StringVocab; consumers should depend on this interface rather than the
// concrete type.
type Membership interface {
	Contains(phrase string) bool
}

// StringVocab is an immutable ordered phrase list with O(1) lookup in both
// directions. Ids are dense in [0, Size()).
type StringVocab struct {
	entries []string
	index   map[string]int
}

// New builds a StringVocab from an ordered phrase list. If the same phrase
// appears more than once, the last occurrence wins in the string→id index;
// entries keeps every slot so id→phrase stays defined for all ids.
func New(phrases []string) *StringVocab {
	v := &StringVocab{
		entries: make([]string, len(phrases)),
		index:   make(map[string]int, len(phrases)),
	}
	copy(v.entries, phrases)

	for i, p := range v.entries {
		v.index[p] = i
	}

	return v
}

// Contains reports whether phrase is an exact vocabulary entry.
func (v *StringVocab) Contains(phrase string) bool {
	_, ok := v.index[phrase]
	return ok
}

// LookupID returns the id of phrase, or ok=false if absent.
func (v *StringVocab) LookupID(phrase string) (int, bool) {
	id, ok := v.index[phrase]
	return id, ok
}

// LookupPhrase returns the phrase at id, or ok=false if id is outside
// [0, Size()). Out-of-range ids are not an error here; the detokenizer
// decides whether absence is user-facing.
func (v *StringVocab) LookupPhrase(id int) (string, bool) {
	if id < 0 || id >= len(v.entries) {
		return "", false
	}
	return v.entries[id], true
}

// Size returns the number of vocabulary entries.
func (v *StringVocab) Size() int {
	return len(v.entries)
}

// Entries returns the ordered phrase list. The returned slice is shared;
// callers must not modify it.
func (v *StringVocab) Entries() []string {
	return v.entries
}
