package domain

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultIcon is assigned to library items created on first reference
const DefaultIcon = "●"

// Placeholder names used when an entry or expense carries no tag
const (
	UnsourcedLabel     = "Sem fonte"
	UncategorizedLabel = "Outros"
)

// LibraryItem is a named, coloured tag: a bank, a source or a category.
type LibraryItem struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// Validate ensures the item adheres to domain rules
func (i LibraryItem) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return errors.New("library item name cannot be empty")
	}
	return nil
}

// Library is an ordered set of items whose names are unique case-insensitively.
type Library []LibraryItem

// Find returns the item whose name matches case-insensitively.
func (l Library) Find(name string) (LibraryItem, bool) {
	key := BankKey(name)
	for _, item := range l {
		if BankKey(item.Name) == key {
			return item, true
		}
	}
	return LibraryItem{}, false
}

// Ensure returns the library with name registered.
// Unknown names get a deterministic colour derived from the name and the default icon.
// Blank names are ignored.
func (l Library) Ensure(name string) Library {
	name = strings.TrimSpace(name)
	if name == "" {
		return l
	}
	if _, ok := l.Find(name); ok {
		return l
	}
	return append(l, LibraryItem{Name: name, Color: HashColor(name), Icon: DefaultIcon})
}

// EnsureAll registers every name in names.
func (l Library) EnsureAll(names ...string) Library {
	for _, n := range names {
		l = l.Ensure(n)
	}
	return l
}

// Validate checks names are present and unique case-insensitively.
func (l Library) Validate() error {
	seen := make(map[string]bool, len(l))
	for _, item := range l {
		if err := item.Validate(); err != nil {
			return err
		}
		key := BankKey(item.Name)
		if seen[key] {
			return fmt.Errorf("duplicate library item %q", item.Name)
		}
		seen[key] = true
	}
	return nil
}

// HashColor derives a stable CSS hsl() colour from a name.
// The hash is the 32-bit "h*31 + c" string hash over UTF-16 code units.
func HashColor(name string) string {
	var h int32
	for _, r := range name {
		if r >= 0x10000 {
			// surrogate pair
			r -= 0x10000
			h = h*31 + int32(0xD800+(r>>10))
			h = h*31 + int32(0xDC00+(r&0x3FF))
			continue
		}
		h = h*31 + int32(r)
	}
	hue := int(h) % 360
	if hue < 0 {
		hue = -hue
	}
	return fmt.Sprintf("hsl(%d, 65%%, 55%%)", hue)
}
