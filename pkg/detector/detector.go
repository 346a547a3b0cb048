package detector

import (
	"context"
	"errors"
)

type Provider interface {
	Start(ctx context.Context, input Document) (string, error)
	Get(ctx context.Context, id string, options *GetOptions) (*Result, error)
}

var (
	ErrInvalidObject = errors.New("invalid document object")
	ErrInvalidJob    = errors.New("invalid job id")
)

type Document struct {
	Bucket  string
	Key     string
	Version string
}

type GetOptions struct {
	NextToken  string
	MaxResults int
}

type Status string

const (
	StatusSubmitted      Status = "SUBMITTED"
	StatusInProgress     Status = "IN_PROGRESS"
	StatusSucceeded      Status = "SUCCEEDED"
	StatusFailed         Status = "FAILED"
	StatusPartialSuccess Status = "PARTIAL_SUCCESS"
)

// Terminal reports whether no further transition can occur.
// Unknown values are terminal.
func (s Status) Terminal() bool {
	return s != StatusSubmitted && s != StatusInProgress
}

func (s Status) Succeeded() bool {
	return s == StatusSucceeded
}

type Result struct {
	Status        Status
	StatusMessage string

	Pages  int
	Blocks []Block

	NextToken string
}

type BlockType string

const (
	BlockTypePage BlockType = "PAGE"
	BlockTypeLine BlockType = "LINE"
	BlockTypeWord BlockType = "WORD"
)

type Block struct {
	ID   string
	Type BlockType

	Page int
	Text string

	Confidence float64
}
