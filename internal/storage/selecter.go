package storage

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/pixil98/go-adventure/internal"
)

const (
	defaultSelectorRowLength = 80
	defaultSelectorRowCount  = 5
)

type validatingSelectable interface {
	ValidatingSpec
	Selector() string
}

// SelectableStorer renders the contents of a store as a numbered menu.
type SelectableStorer[T validatingSelectable] struct {
	Storer[T]

	options []option[T]
	output  []string
}

type option[T validatingSelectable] struct {
	id  string
	val T
}

func NewSelectableStorer[T validatingSelectable](st Storer[T]) *SelectableStorer[T] {
	s := &SelectableStorer[T]{Storer: st}
	s.refresh()
	return s
}

// refresh rebuilds the menu from the underlying store.
func (s *SelectableStorer[T]) refresh() {
	s.options = s.options[:0]
	for id, val := range s.GetAll() {
		s.options = append(s.options, option[T]{id: id, val: val})
	}
	slices.SortFunc(s.options, func(a, b option[T]) int {
		if c := strings.Compare(a.val.Selector(), b.val.Selector()); c != 0 {
			return c
		}
		return strings.Compare(a.id, b.id)
	})
	s.build()
}

func (s *SelectableStorer[T]) build() {
	colWidth := 1
	for _, v := range s.options {
		l := len(v.val.Selector()) + 7 // number, dot and padding
		if l > colWidth {
			colWidth = l
		}
	}

	// Fill columns first, left to right, growing past the default row count
	// when the values will not fit.
	numVals := len(s.options)
	numCols := max(defaultSelectorRowLength/colWidth, 1)
	numRows := max(numVals/numCols, defaultSelectorRowCount)

	rows := make([]string, numRows)
	for count, v := range s.options {
		rows[count%numRows] = rows[count%numRows] + fmt.Sprintf("%2d. %-*s  ", count+1, colWidth-5, v.val.Selector())
	}

	s.output = rows
}

func (s *SelectableStorer[T]) Len() int {
	return len(s.options)
}

// Prompt shows the menu and returns the chosen id. A blank line cancels and
// returns an empty id.
func (s *SelectableStorer[T]) Prompt(term *internal.Terminal, prompt string) (string, error) {
	s.refresh()

	_, err := fmt.Fprintf(term, "%s\n", prompt)
	if err != nil {
		return "", err
	}

	for _, str := range s.output {
		if len(str) > 0 {
			_, err = fmt.Fprintf(term, "%s\n", strings.TrimRight(str, " "))
			if err != nil {
				return "", err
			}
		}
	}

	selection, err := term.Prompt("Make your selection: ", internal.WithValidator(
		func(str string) (bool, string) {
			if str == "" {
				return true, ""
			}

			i, err := strconv.Atoi(str)
			if err != nil || s.Select(i) == "" {
				return false, "Invalid selection!\n"
			}

			return true, ""
		},
	))
	if err != nil {
		return "", err
	}

	if selection == "" {
		return "", nil
	}

	i, err := strconv.Atoi(selection)
	if err != nil {
		return "", err
	}

	return s.Select(i), nil
}

func (s *SelectableStorer[T]) Select(i int) string {
	if i < 1 || i > len(s.options) {
		return ""
	}
	return s.options[i-1].id
}
