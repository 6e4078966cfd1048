package page

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var (
	ErrPageNotFound   = errors.New("page not found")
	ErrCourseNotFound = errors.New("course not found")
	ErrBankNotFound   = errors.New("question bank not found")
)

type PageRepository interface {
	ListCourses(ctx context.Context) ([]Course, error)
	GetCourse(ctx context.Context, slug string) (*Course, error)
	ListPages(ctx context.Context, course string) ([]*Page, error)
	GetPage(ctx context.Context, slug string) (*Page, error)
	ListBanks(ctx context.Context) ([]*QuestionBank, error)
	GetBank(ctx context.Context, slug string) (*QuestionBank, error)
}

type MemoryRepository struct {
	mu      sync.RWMutex
	courses map[string]Course
	pages   map[string]*Page
	banks   map[string]*QuestionBank
}

// NewMemoryRepository serves a loaded Library. Pages are read-only once
// loaded; Replace swaps the whole library at once.
func NewMemoryRepository(lib *Library) *MemoryRepository {
	r := &MemoryRepository{}
	r.Replace(lib)
	return r
}

func (r *MemoryRepository) Replace(lib *Library) {
	courses := make(map[string]Course)
	pages := make(map[string]*Page)
	banks := make(map[string]*QuestionBank)
	if lib != nil {
		for _, c := range lib.Courses {
			courses[c.Slug] = c
		}
		for _, p := range lib.Pages {
			pages[p.Slug] = p
		}
		for _, b := range lib.Banks {
			banks[b.Slug] = b
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.courses, r.pages, r.banks = courses, pages, banks
}

func (r *MemoryRepository) ListCourses(ctx context.Context) ([]Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Course, 0, len(r.courses))
	for _, c := range r.courses {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

func (r *MemoryRepository) GetCourse(ctx context.Context, slug string) (*Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.courses[slug]
	if !ok {
		return nil, ErrCourseNotFound
	}
	return &c, nil
}

func (r *MemoryRepository) ListPages(ctx context.Context, course string) ([]*Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Page, 0, len(r.pages))
	for _, p := range r.pages {
		if course != "" && p.Course != course {
			continue
		}
		out = append(out, p)
	}
	SortPages(out)
	return out, nil
}

func (r *MemoryRepository) GetPage(ctx context.Context, slug string) (*Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.pages[slug]
	if !ok {
		return nil, ErrPageNotFound
	}
	return p, nil
}

func (r *MemoryRepository) ListBanks(ctx context.Context) ([]*QuestionBank, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*QuestionBank, 0, len(r.banks))
	for _, b := range r.banks {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

func (r *MemoryRepository) GetBank(ctx context.Context, slug string) (*QuestionBank, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.banks[slug]
	if !ok {
		return nil, ErrBankNotFound
	}
	return b, nil
}

// SortPages orders pages by course, module, section, then slug.
func SortPages(pages []*Page) {
	sort.SliceStable(pages, func(i, j int) bool {
		a, b := pages[i], pages[j]
		if a.Course != b.Course {
			return a.Course < b.Course
		}
		if a.Module != b.Module {
			return a.Module < b.Module
		}
		if a.Section != b.Section {
			return a.Section < b.Section
		}
		return a.Slug < b.Slug
	})
}
