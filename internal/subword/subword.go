// Package subword provides the fallback subword tokenizer capability used
// by the phrase tokenizer's out-of-vocabulary policy. The primary
// implementation wraps a pure-Go SentencePiece model; the phrase engine
// depends only on the Encoder interface.
package subword

import (
	"errors"
	"fmt"

	gosp "github.com/vikesh-raj/go-sentencepiece-encoder/sentencepiece"
)

// ErrEmptyPath is returned when NewSentencePieceEncoder is called with an
// empty model path.
var ErrEmptyPath = errors.New("subword model path must not be empty")

// Encoder splits a single out-of-vocabulary word into subword pieces.
type Encoder interface {
	EncodePieces(word string) []string
}

// SentencePieceEncoder implements Encoder using a SentencePiece model.
type SentencePieceEncoder struct {
	proc gosp.Sentencepiece
}

// NewSentencePieceEncoder loads a SentencePiece model from the given path.
func NewSentencePieceEncoder(modelPath string) (*SentencePieceEncoder, error) {
	if modelPath == "" {
		return nil, ErrEmptyPath
	}

	proc, err := gosp.NewSentencepieceFromFile(modelPath, false)
	if err != nil {
		return nil, fmt.Errorf("load sentencepiece model %q: %w", modelPath, err)
	}

	return &SentencePieceEncoder{proc: proc}, nil
}

// EncodePieces splits word into subword piece strings.
func (e *SentencePieceEncoder) EncodePieces(word string) []string {
	if word == "" {
		return nil
	}

	tokens := e.proc.Tokenize(word)

	pieces := make([]string, len(tokens))
	for i, tok := range tokens {
		pieces[i] = tok.Text
	}

	return pieces
}
