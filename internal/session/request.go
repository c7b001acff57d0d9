// Package session drives one end-to-end purchase analysis as a sequence of
// questions answered by an Asker.
package session

import (
	"context"
	"fmt"
)

// Kind is the type of answer a Request expects.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindYesNo
	KindChoice
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindYesNo:
		return "yes/no"
	case KindChoice:
		return "choice"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Option is one entry of a KindChoice request.
type Option struct {
	Key   string
	Label string
	Desc  string
}

// Request asks for a single answer.
type Request struct {
	Kind  Kind
	Key   string // stable identifier, e.g. "price" or "need.Safety"
	Label string
	Hint  string

	// Min and Max bound a KindNumber answer, inclusive.
	Min, Max float64

	// Options enumerates a KindChoice request. The answer is Response.Text,
	// normally the chosen option's position starting at "1".
	Options []Option
}

// Response is the answer to a Request. Only the field matching the request
// kind is meaningful.
type Response struct {
	Text   string
	Number float64
	Yes    bool
}

// Asker collects answers. Implementations validate numbers against the
// request bounds and re-ask on bad input; the orchestrator rejects anything
// that still slips through.
type Asker interface {
	Ask(ctx context.Context, req Request) (Response, error)
}

// AskerFunc adapts a function to Asker.
type AskerFunc func(ctx context.Context, req Request) (Response, error)

func (f AskerFunc) Ask(ctx context.Context, req Request) (Response, error) {
	return f(ctx, req)
}
