package uifind

import (
	"errors"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeElement struct {
	playwright.ElementHandle // unimplemented methods panic
	text                     string
	readErr                  error
}

func (e *fakeElement) InnerText() (string, error) {
	return e.text, e.readErr
}

type fakeRoot struct {
	results map[string][]playwright.ElementHandle
	err     error
	queries []string
}

func (r *fakeRoot) QuerySelectorAll(selector string) ([]playwright.ElementHandle, error) {
	r.queries = append(r.queries, selector)
	if r.err != nil {
		return nil, r.err
	}
	return r.results[selector], nil
}

func elements(texts ...string) []playwright.ElementHandle {
	ret := make([]playwright.ElementHandle, 0, len(texts))
	for _, text := range texts {
		ret = append(ret, &fakeElement{text: text})
	}
	return ret
}

func makeRoot() *fakeRoot {
	return &fakeRoot{results: map[string][]playwright.ElementHandle{
		"li.item": elements("apple", "banana", "cherry", "banana"),
		"#title":  elements("Shop"),
	}}
}

func TestFindElementReturnsFirstMatch(t *testing.T) {
	root := makeRoot()
	found, err := New(root).FindElement("li.item")
	require.NoError(t, err)
	require.True(t, found.IsDefined())
	assert.Same(t, root.results["li.item"][0], found.Value())
	assert.Equal(t, []string{"li.item"}, root.queries)
}

func TestFindElementWithNoMatches(t *testing.T) {
	t.Run("throw mode", func(t *testing.T) {
		found, err := New(makeRoot()).FindElement("table")
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
		assert.Equal(t, "no matching element: No result found for selector table", err.Error())
		assert.False(t, found.IsDefined())
	})

	t.Run("absent mode", func(t *testing.T) {
		found, err := New(makeRoot()).ThrowOnMissing(false).FindElement("table")
		assert.NoError(t, err)
		assert.False(t, found.IsDefined())
	})
}

func TestThrowOnMissingReturnsCopy(t *testing.T) {
	f := New(makeRoot())
	quiet := f.ThrowOnMissing(false)

	_, err := f.FindElement("table")
	assert.Error(t, err)
	_, err = quiet.FindElement("table")
	assert.NoError(t, err)
}

func TestFindElementWithText(t *testing.T) {
	root := makeRoot()
	f := New(root)

	found, err := f.FindElementWithText("li.item", "banana")
	require.NoError(t, err)
	require.True(t, found.IsDefined())
	assert.Same(t, root.results["li.item"][1], found.Value())

	found, err = f.FindElementWithText("li.item", "Banana")
	assert.NoError(t, err)
	assert.False(t, found.IsDefined())

	_, err = f.FindElementWithText("table", "x")
	assert.True(t, IsNotFound(err))

	found, err = f.ThrowOnMissing(false).FindElementWithText("table", "x")
	assert.NoError(t, err)
	assert.False(t, found.IsDefined())
}

func TestFindIndexOfElementWithText(t *testing.T) {
	f := New(makeRoot())

	index, err := f.FindIndexOfElementWithText("li.item", "cherry")
	require.NoError(t, err)
	assert.Equal(t, 2, index)

	index, err = f.FindIndexOfElementWithText("li.item", "durian")
	assert.NoError(t, err)
	assert.Equal(t, -1, index)

	index, err = f.FindIndexOfElementWithText("table", "x")
	assert.True(t, IsNotFound(err))
	assert.Equal(t, -1, index)

	index, err = f.ThrowOnMissing(false).FindIndexOfElementWithText("table", "x")
	assert.NoError(t, err)
	assert.Equal(t, -1, index)
}

func TestFindIndexOfElementWithTextIn(t *testing.T) {
	f := New(nil)
	collection := elements("one", "two", "three")

	index, err := f.FindIndexOfElementWithTextIn(collection, "two")
	require.NoError(t, err)
	assert.Equal(t, 1, index)

	index, err = f.FindIndexOfElementWithTextIn(collection, "four")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "Text did not match any element in collection")
	assert.Equal(t, -1, index)

	index, err = f.FindIndexOfElementWithTextIn(nil, "two")
	require.Error(t, err)
	assert.Equal(t, "no matching element: Element Collection is null", err.Error())
	assert.Equal(t, -1, index)

	quiet := f.ThrowOnMissing(false)
	index, err = quiet.FindIndexOfElementWithTextIn(collection, "four")
	assert.NoError(t, err)
	assert.Equal(t, -1, index)
	index, err = quiet.FindIndexOfElementWithTextIn(nil, "two")
	assert.NoError(t, err)
	assert.Equal(t, -1, index)
}

func TestFindIndexOfElementWithTextInSkipsNilElements(t *testing.T) {
	collection := []playwright.ElementHandle{nil, &fakeElement{text: "x"}}
	index, err := New(nil).FindIndexOfElementWithTextIn(collection, "x")
	require.NoError(t, err)
	assert.Equal(t, 1, index)
}

func TestSearchRootErrorIsReturned(t *testing.T) {
	rootErr := errors.New("target closed")
	f := New(&fakeRoot{err: rootErr}).ThrowOnMissing(false)

	_, err := f.FindElement("li")
	assert.ErrorIs(t, err, rootErr)
	assert.False(t, IsNotFound(err))

	_, err = f.FindIndexOfElementWithText("li", "x")
	assert.ErrorIs(t, err, rootErr)
}

func TestTextReadErrorIsReturned(t *testing.T) {
	readErr := errors.New("element detached")
	collection := []playwright.ElementHandle{
		&fakeElement{text: "a"},
		&fakeElement{readErr: readErr},
		&fakeElement{text: "c"},
	}
	f := New(&fakeRoot{results: map[string][]playwright.ElementHandle{"li": collection}})

	index, err := f.FindIndexOfElementWithTextIn(collection, "c")
	assert.ErrorIs(t, err, readErr)
	assert.False(t, IsNotFound(err))
	assert.Equal(t, -1, index)

	found, err := f.FindElementWithText("li", "c")
	assert.ErrorIs(t, err, readErr)
	assert.False(t, found.IsDefined())

	index, err = f.FindIndexOfElementWithText("li", "a")
	assert.NoError(t, err)
	assert.Equal(t, 0, index)
}

func TestIsNotFound(t *testing.T) {
	assert.False(t, IsNotFound(nil))
	assert.False(t, IsNotFound(errors.New("other")))
	assert.True(t, IsNotFound(&NotFoundError{Description: "x"}))
}
