package batch

import (
	"errors"
	"fmt"

	"github.com/chiuwenyu/singlephase/internal/calc/singlephase"
)

var ErrNoItems = errors.New("no items")

type Input struct {
	Items []singlephase.Input `json:"items"`
}

type Result struct {
	Results []singlephase.Result `json:"results"`
	Count   int                  `json:"count"`
}

// ItemError reports which item of a batch failed.
type ItemError struct {
	Index int
	Name  string
	Err   error
}

func (e *ItemError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("item %d (%s): %v", e.Index, e.Name, e.Err)
	}
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

func (e *ItemError) Unwrap() error { return e.Err }

// Calculate evaluates every item with its own engine and stops at the first
// failure.
func Calculate(in Input) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, ErrNoItems
	}
	out := Result{Results: make([]singlephase.Result, 0, len(in.Items))}
	for i, item := range in.Items {
		res, err := singlephase.Calculate(item)
		if err != nil {
			return Result{}, &ItemError{Index: i, Name: item.Name, Err: err}
		}
		out.Results = append(out.Results, res)
	}
	out.Count = len(out.Results)
	return out, nil
}
