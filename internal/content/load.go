package content

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/saulo-duarte/studycentre/internal/page"
)

const coursesFile = "courses.yaml"

// Options controls how authoring defects are handled. Strict loads fail on
// any error; otherwise the broken parts are dropped and reported.
type Options struct {
	Strict bool
}

type coursesDoc struct {
	Courses []page.Course `yaml:"courses"`
}

// Load reads the library from fsys. The report is always returned, even
// when the load fails, so callers can print every issue at once.
func Load(fsys fs.FS, opts Options) (*page.Library, *Report, error) {
	report := &Report{}
	lib := &page.Library{}
	files := map[string]string{}

	data, err := fs.ReadFile(fsys, coursesFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		report.add(SeverityWarning, coursesFile, "", "file not found, no courses loaded")
	case err != nil:
		return nil, report, fmt.Errorf("read %s: %w", coursesFile, err)
	default:
		var doc coursesDoc
		if err := decodeStrict(data, &doc); err != nil {
			report.add(SeverityError, coursesFile, "", "%v", err)
		} else {
			lib.Courses = doc.Courses
		}
	}

	pageFiles, err := yamlFiles(fsys, "pages")
	if err != nil {
		return nil, report, err
	}
	for _, name := range pageFiles {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, report, fmt.Errorf("read %s: %w", name, err)
		}
		var p page.Page
		if err := decodeStrict(data, &p); err != nil {
			report.add(SeverityError, name, "", "%v", err)
			salvaged, dropped, ok := salvagePage(data)
			if !ok {
				continue
			}
			report.add(SeverityWarning, name, strings.Join(dropped, ","), "page kept without %s", strings.Join(dropped, " and "))
			p = *salvaged
		}
		if p.Slug == "" {
			p.Slug = slugFromFile(name)
		}
		if first, seen := files[p.Slug]; seen {
			report.add(SeverityError, name, "slug", "duplicate page slug %s, first defined in %s", p.Slug, first)
			continue
		}
		files[p.Slug] = name
		lib.Pages = append(lib.Pages, &p)
	}

	bankFiles, err := yamlFiles(fsys, "banks")
	if err != nil {
		return nil, report, err
	}
	for _, name := range bankFiles {
		var b page.QuestionBank
		if err := readInto(fsys, name, &b); err != nil {
			report.add(SeverityError, name, "", "%v", err)
			continue
		}
		if b.Slug == "" {
			b.Slug = slugFromFile(name)
		}
		if first, seen := files["bank:"+b.Slug]; seen {
			report.add(SeverityError, name, "slug", "duplicate bank slug %s, first defined in %s", b.Slug, first)
			continue
		}
		files["bank:"+b.Slug] = name
		lib.Banks = append(lib.Banks, &b)
	}

	clean := Validate(lib, report, files)
	if opts.Strict && report.HasErrors() {
		return nil, report, &ValidationError{Issues: report.Errors()}
	}
	return clean, report, nil
}

func readInto(fsys fs.FS, name string, out interface{}) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return err
	}
	return decodeStrict(data, out)
}

func yamlFiles(fsys fs.FS, dir string) ([]string, error) {
	var out []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := fs.Glob(fsys, path.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", dir, err)
		}
		out = append(out, matches...)
	}
	sort.Strings(out)
	return out, nil
}

func slugFromFile(name string) string {
	base := path.Base(name)
	return strings.TrimSuffix(strings.TrimSuffix(base, ".yaml"), ".yml")
}
