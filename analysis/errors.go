package analysis

import (
	"errors"

	"github.com/pivolan/torque_analyzer/csvreader"
	"github.com/pivolan/torque_analyzer/sample"
)

var (
	ErrNoFile            = errors.New("no file submitted")
	ErrIncompleteMapping = errors.New("incomplete column mapping")
	ErrBadArchive        = errors.New("cannot unpack uploaded archive")
)

// Kind groups errors by who is responsible for them.
type Kind int

const (
	KindServer Kind = iota
	KindInput
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindParse:
		return "parse"
	default:
		return "server"
	}
}

// KindOf classifies err. Errors this package does not recognise are server errors.
func KindOf(err error) Kind {
	var parseErr *csvreader.ParseError
	switch {
	case errors.As(err, &parseErr):
		return KindParse
	case errors.Is(err, ErrNoFile),
		errors.Is(err, ErrIncompleteMapping),
		errors.Is(err, ErrBadArchive),
		errors.Is(err, csvreader.ErrEmptyFile),
		errors.Is(err, csvreader.ErrDecodedTooLarge),
		errors.Is(err, sample.ErrUnknownColumn):
		return KindInput
	default:
		return KindServer
	}
}
