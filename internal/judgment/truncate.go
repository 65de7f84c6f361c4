package judgment

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// Rough characters-per-token ratio used when no tokenizer can be loaded.
const fallbackCharsPerToken = 4

var (
	encoderCache   = make(map[string]*tiktoken.Tiktoken)
	encoderCacheMu sync.RWMutex
)

// encoderFor returns a cached tiktoken encoder, falling back to cl100k_base
// for models tiktoken does not know.
func encoderFor(model string) (*tiktoken.Tiktoken, error) {
	encoderCacheMu.RLock()
	if tkm, ok := encoderCache[model]; ok {
		encoderCacheMu.RUnlock()
		return tkm, nil
	}
	encoderCacheMu.RUnlock()

	encoderCacheMu.Lock()
	defer encoderCacheMu.Unlock()

	if tkm, ok := encoderCache[model]; ok {
		return tkm, nil
	}

	tkm, err := tiktoken.EncodingForModel(model)
	if err != nil {
		tkm, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil, err
		}
	}

	encoderCache[model] = tkm
	return tkm, nil
}

type tokenCodec interface {
	Encode(text string, allowedSpecial []string, disallowedSpecial []string) []int
	Decode(tokens []int) string
}

// Truncator caps document text to a token budget before prompting.
type Truncator struct {
	model     string
	maxTokens int
	load      func(model string) (tokenCodec, error)
}

// NewTruncator builds a truncator for model; maxTokens <= 0 disables it.
func NewTruncator(model string, maxTokens int) Truncator {
	return Truncator{
		model:     model,
		maxTokens: maxTokens,
		load: func(model string) (tokenCodec, error) {
			return encoderFor(model)
		},
	}
}

// Truncate returns text cut to the budget and whether anything was dropped.
func (t Truncator) Truncate(text string) (string, bool) {
	if t.maxTokens <= 0 || text == "" {
		return text, false
	}

	codec, err := t.load(t.model)
	if err != nil {
		return truncateRunes(text, t.maxTokens*fallbackCharsPerToken)
	}

	tokens := codec.Encode(text, nil, nil)
	if len(tokens) <= t.maxTokens {
		return text, false
	}
	return codec.Decode(tokens[:t.maxTokens]), true
}

func truncateRunes(text string, limit int) (string, bool) {
	runes := []rune(text)
	if len(runes) <= limit {
		return text, false
	}
	return string(runes[:limit]), true
}
