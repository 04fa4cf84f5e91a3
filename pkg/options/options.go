// Package options holds the tunable knobs of the correction engine.
package options

// DefaultOptions is the conservative default configuration: corrections
// below five letters need an explicit short-word exception, backtick
// delimited spans are skipped, and implausibly long "words" (pasted URLs,
// identifiers) are left alone.
var DefaultOptions = EngineOptions{
	MinTypoLength: 5,
	CodeDelimiter: '`',
	MaxWordLength: 64,
}

type EngineOptions struct {
	// MinTypoLength is the shortest word the engine will correct without
	// a short-word exception entry.
	MinTypoLength int

	// CodeDelimiter bounds inline code spans; text inside an odd-parity
	// run of this rune is never corrected.
	CodeDelimiter rune

	// MaxWordLength caps the extracted word length in runes; longer
	// tokens are not prose.
	MaxWordLength int
}

type Options interface {
	Apply(options *EngineOptions)
}

type FuncConfig struct {
	ops func(options *EngineOptions)
}

func (w FuncConfig) Apply(conf *EngineOptions) {
	w.ops(conf)
}

func NewFuncOption(f func(options *EngineOptions)) *FuncConfig {
	return &FuncConfig{ops: f}
}

func WithMinTypoLength(length int) Options {
	return NewFuncOption(func(options *EngineOptions) {
		options.MinTypoLength = length
	})
}

func WithCodeDelimiter(delimiter rune) Options {
	return NewFuncOption(func(options *EngineOptions) {
		options.CodeDelimiter = delimiter
	})
}

func WithMaxWordLength(length int) Options {
	return NewFuncOption(func(options *EngineOptions) {
		options.MaxWordLength = length
	})
}
