package uifind

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
	"golang.org/x/exp/slices"

	"github.com/webtest-harness/webtest/framework/opt"
)

// SearchRoot is anything that elements can be searched for under. playwright.Page,
// playwright.Frame and playwright.ElementHandle all satisfy it.
type SearchRoot interface {
	QuerySelectorAll(selector string) ([]playwright.ElementHandle, error)
}

// Finder runs element lookups against a SearchRoot. A Finder is immutable and can be shared.
type Finder struct {
	root           SearchRoot
	throwOnMissing bool
}

// New returns a Finder that reports missing elements as a NotFoundError.
func New(root SearchRoot) *Finder {
	return &Finder{root: root, throwOnMissing: true}
}

// ThrowOnMissing returns a copy of the Finder with the given mode. When throw is false, lookups
// that match nothing return an absent result, or -1 for index lookups, and a nil error.
func (f *Finder) ThrowOnMissing(throw bool) *Finder {
	copied := *f
	copied.throwOnMissing = throw
	return &copied
}

// FindElement returns the first element matching selector.
func (f *Finder) FindElement(selector string) (opt.Maybe[playwright.ElementHandle], error) {
	elements, err := f.elements(selector)
	if err != nil || len(elements) == 0 {
		return opt.None[playwright.ElementHandle](), err
	}
	return opt.Some(elements[0]), nil
}

// FindElementWithText returns the first element matching selector, in the order the search root
// returned them, whose inner text is exactly text. If elements match the selector but none has
// the text, the result is absent in either mode.
func (f *Finder) FindElementWithText(selector, text string) (opt.Maybe[playwright.ElementHandle], error) {
	elements, err := f.elements(selector)
	if err != nil || len(elements) == 0 {
		return opt.None[playwright.ElementHandle](), err
	}
	index, err := indexOfText(elements, text)
	if err != nil || index < 0 {
		return opt.None[playwright.ElementHandle](), err
	}
	return opt.Some(elements[index]), nil
}

// FindIndexOfElementWithText is like FindElementWithText but returns the element's position, or
// -1.
func (f *Finder) FindIndexOfElementWithText(selector, text string) (int, error) {
	elements, err := f.elements(selector)
	if err != nil || len(elements) == 0 {
		return -1, err
	}
	return indexOfText(elements, text)
}

// FindIndexOfElementWithTextIn returns the position of the first element in elements whose inner
// text is exactly text. Unlike the selector-based lookups, a collection in which nothing has the
// text counts as missing, as does a nil collection.
func (f *Finder) FindIndexOfElementWithTextIn(elements []playwright.ElementHandle, text string) (int, error) {
	if elements == nil {
		return -1, f.missing("Element Collection is null")
	}
	index, err := indexOfText(elements, text)
	if err != nil {
		return -1, err
	}
	if index < 0 {
		return -1, f.missing(fmt.Sprintf("Text did not match any element in collection of %d elements", len(elements)))
	}
	return index, nil
}

func (f *Finder) elements(selector string) ([]playwright.ElementHandle, error) {
	elements, err := f.root.QuerySelectorAll(selector)
	if err != nil {
		return nil, fmt.Errorf("failed to query elements by %q: %w", selector, err)
	}
	if len(elements) == 0 {
		return nil, f.missing(fmt.Sprintf("No result found for selector %s", selector))
	}
	return elements, nil
}

func (f *Finder) missing(description string) error {
	if !f.throwOnMissing {
		return nil
	}
	return &NotFoundError{Description: description}
}

func indexOfText(elements []playwright.ElementHandle, text string) (int, error) {
	var readErr error
	index := slices.IndexFunc(elements, func(e playwright.ElementHandle) bool {
		if e == nil {
			return false
		}
		var innerText string
		innerText, readErr = e.InnerText()
		return readErr != nil || innerText == text
	})
	if readErr != nil {
		return -1, fmt.Errorf("failed to read text of element %d: %w", index, readErr)
	}
	return index, nil
}
