// Package phrase implements the phrase tokenizer core: greedy longest-match
// segmentation of UTF-8 text against a fixed phrase vocabulary, optional
// randomized regularization, and the reverse mapping from id sequences back
// to text.
//
// All position and length accounting is in Unicode codepoints, never bytes.
package phrase

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/example/go-phrasetok/internal/subword"
	"github.com/example/go-phrasetok/internal/trie"
	"github.com/example/go-phrasetok/internal/vocab"
	"github.com/example/go-phrasetok/internal/whitespace"
)

// ErrIDOutOfRange is returned by Detokenize and DetokenizeToTokens when an
// input id falls outside the valid vocabulary range. Caller-supplied id
// streams are untrusted, so the public boundary surfaces the problem instead
// of substituting a placeholder.
var ErrIDOutOfRange = errors.New("token id out of vocabulary range")

// Out-of-vocabulary policies. OOVUnknown emits the boundary unit verbatim
// with the configured unknown id; OOVSubword delegates the unit to the
// fallback subword encoder.
const (
	OOVUnknown = "unk"
	OOVSubword = "subword"
)

// Tokenizer segments text into vocabulary phrases and maps id sequences
// back to text. The vocabulary and phrase index are immutable after New, so
// concurrent Tokenize/Detokenize calls are safe; the regularization rand
// source is the only mutable state and is guarded by a mutex.
type Tokenizer struct {
	vocab     *vocab.StringVocab
	index     *trie.Trie
	ws        whitespace.Config
	prob      float64
	unknownID int
	oovPolicy string
	fallback  subword.Encoder

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Tokenizer at construction.
type Option func(*Tokenizer)

// WithRandSource sets the rand source used for regularization sampling.
// Pass a deterministically seeded source for reproducible segmentations.
func WithRandSource(rng *rand.Rand) Option {
	return func(t *Tokenizer) { t.rng = rng }
}

// WithSubwordEncoder sets the fallback subword encoder consumed by the
// OOVSubword policy.
func WithSubwordEncoder(enc subword.Encoder) Option {
	return func(t *Tokenizer) { t.fallback = enc }
}

// New builds a Tokenizer from a decoded configuration payload. It fails
// with an error wrapping ErrInvalidConfig when the payload is malformed or
// the phrase index cannot be built; the returned Tokenizer is nil in that
// case and must not be used.
func New(cfg Config, opts ...Option) (*Tokenizer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	index, err := trie.Build(cfg.Phrases)
	if err != nil {
		return nil, fmt.Errorf("%w: build phrase index: %v", ErrInvalidConfig, err)
	}

	t := &Tokenizer{
		vocab:     vocab.New(cfg.Phrases),
		index:     index,
		ws:        whitespace.FromSeparators(cfg.Separators),
		prob:      cfg.prob(),
		unknownID: cfg.unknownID(),
		oovPolicy: cfg.policy(),
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.oovPolicy == OOVSubword && t.fallback == nil {
		return nil, fmt.Errorf("%w: oov_policy %q requires a subword encoder", ErrInvalidConfig, OOVSubword)
	}
	if t.rng == nil {
		t.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return t, nil
}

// Vocab returns the tokenizer's vocabulary for lookup and inspection.
func (t *Tokenizer) Vocab() *vocab.StringVocab {
	return t.vocab
}

// Tokenize segments text into vocabulary phrases, returning parallel token
// and id sequences of identical length. It never fails: spans with no
// vocabulary match are handled by the configured out-of-vocabulary policy,
// and the scan position strictly increases every iteration, so the call
// always terminates. Empty input yields two empty sequences.
func (t *Tokenizer) Tokenize(text string) (tokens []string, ids []int) {
	tokens = []string{}
	ids = []int{}

	runes := []rune(text)
	cur := 0

	for cur < len(runes) {
		// Phrases may absorb a leading separator; try the match first and
		// only then skip the separator rune.
		if length, id, ok := t.pickMatch(runes, cur); ok {
			tokens = append(tokens, string(runes[cur:cur+length]))
			ids = append(ids, id)
			cur += length
			continue
		}

		if t.ws.IsSeparator(runes[cur]) {
			cur++
			continue
		}

		// No vocabulary phrase starts here: consume one boundary unit and
		// apply the OOV policy.
		end := t.ws.NextWord(runes, cur)
		tokens, ids = t.emitOOV(tokens, ids, string(runes[cur:end]))
		cur = end
	}

	return tokens, ids
}

// pickMatch returns the chosen in-vocabulary match at cur, applying the
// regularization policy: the longest candidate is accepted with probability
// prob, otherwise the next-shorter candidate is considered, down to the
// shortest candidate which is always accepted.
func (t *Tokenizer) pickMatch(runes []rune, cur int) (length, id int, ok bool) {
	ms := t.index.Matches(runes, cur)
	if len(ms) == 0 {
		return 0, 0, false
	}

	pick := ms[len(ms)-1]
	if t.prob < 1.0 {
		for i := len(ms) - 1; i > 0; i-- {
			if t.acceptDraw() {
				pick = ms[i]
				break
			}
			pick = ms[i-1]
		}
	}

	return pick.Length, pick.ID, true
}

// acceptDraw draws one uniform sample under the mutex guarding the shared
// rand source.
func (t *Tokenizer) acceptDraw() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rng.Float64() < t.prob
}

// emitOOV applies the out-of-vocabulary policy to a single boundary unit.
func (t *Tokenizer) emitOOV(tokens []string, ids []int, word string) ([]string, []int) {
	if t.oovPolicy == OOVSubword {
		pieces := t.fallback.EncodePieces(word)
		if len(pieces) > 0 {
			for _, p := range pieces {
				id, found := t.vocab.LookupID(p)
				if !found {
					id = t.unknownID
				}
				tokens = append(tokens, p)
				ids = append(ids, id)
			}
			return tokens, ids
		}
		// Encoder produced nothing; fall through to the unknown-id path so
		// the unit is still covered.
	}

	return append(tokens, word), append(ids, t.unknownID)
}

// DetokenizeToTokens maps ids to their vocabulary phrases in order. Any id
// outside [0, Size()) fails with ErrIDOutOfRange and no partial result.
func (t *Tokenizer) DetokenizeToTokens(ids []int) ([]string, error) {
	tokens := make([]string, len(ids))

	for i, id := range ids {
		p, ok := t.vocab.LookupPhrase(id)
		if !ok {
			return nil, fmt.Errorf("%w: id %d at position %d (vocabulary size %d)",
				ErrIDOutOfRange, id, i, t.vocab.Size())
		}
		tokens[i] = p
	}

	return tokens, nil
}

// Detokenize maps ids back to a single string. Tokens are joined with the
// canonical separator of the configured boundary convention, except that a
// phrase which itself begins with a separator reintroduces it and is
// concatenated directly. Fails with ErrIDOutOfRange on any invalid id.
func (t *Tokenizer) Detokenize(ids []int) (string, error) {
	tokens, err := t.DetokenizeToTokens(ids)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i, tok := range tokens {
		if i > 0 && !t.startsWithSeparator(tok) {
			b.WriteRune(t.ws.Joiner())
		}
		b.WriteString(tok)
	}

	return b.String(), nil
}

func (t *Tokenizer) startsWithSeparator(s string) bool {
	for _, r := range s {
		return t.ws.IsSeparator(r)
	}
	return false
}
