// Package seo holds the page metadata written into the document head and
// the structured-data blocks that search engines read.
package seo

import (
	"fmt"
	"sync"
	"unicode/utf8"
)

const (
	MaxTitleLength       = 60
	MaxDescriptionLength = 160
)

type Metadata struct {
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Canonical      string           `json:"canonical,omitempty"`
	StructuredData []StructuredData `json:"structured_data,omitempty"`
}

// Warnings lists lengths that would be truncated in search results.
func (m Metadata) Warnings() []string {
	var out []string
	if n := utf8.RuneCountInString(m.Title); n > MaxTitleLength {
		out = append(out, fmt.Sprintf("title is %d characters (recommended %d)", n, MaxTitleLength))
	}
	if n := utf8.RuneCountInString(m.Description); n > MaxDescriptionLength {
		out = append(out, fmt.Sprintf("description is %d characters (recommended %d)", n, MaxDescriptionLength))
	}
	return out
}

// Head is the metadata of the currently displayed page. Apply overwrites
// it; the most recently applied page wins and there is no teardown.
type Head struct {
	mu      sync.RWMutex
	current Metadata
	applied int
}

func NewHead() *Head {
	return &Head{}
}

func (h *Head) Apply(m Metadata) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = Metadata{
		Title:          m.Title,
		Description:    m.Description,
		Canonical:      m.Canonical,
		StructuredData: append([]StructuredData(nil), m.StructuredData...),
	}
	h.applied++
}

func (h *Head) Title() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current.Title
}

func (h *Head) Description() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current.Description
}

func (h *Head) Current() Metadata {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Applied counts Apply calls, used to assert the page applied metadata once.
func (h *Head) Applied() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.applied
}
