package page_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/studycentre/internal/content"
	"github.com/saulo-duarte/studycentre/internal/page"
	"github.com/saulo-duarte/studycentre/internal/quiz"
)

const siteURL = "http://example.test"

func loadLibrary(t *testing.T) *page.Library {
	t.Helper()
	lib, _, err := content.Load(content.Embedded(), content.Options{Strict: true})
	if err != nil {
		t.Fatalf("load embedded library: %v", err)
	}
	return lib
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	return newServerFor(t, loadLibrary(t))
}

func newServerFor(t *testing.T, lib *page.Library) *httptest.Server {
	t.Helper()
	c := page.NewPageContainer(page.NewMemoryRepository(lib), siteURL)

	r := chi.NewRouter()
	r.Mount("/api", page.Routes(c.Handler))
	r.Mount("/pages", page.HTMLRoutes(c.Handler))
	r.Get("/sitemap.xml", c.Handler.Sitemap)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, u string) (int, string) {
	t.Helper()
	resp, err := http.Get(u)
	if err != nil {
		t.Fatalf("GET %s: %v", u, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func postForm(t *testing.T, u string, form url.Values) (int, string) {
	t.Helper()
	resp, err := http.PostForm(u, form)
	if err != nil {
		t.Fatalf("POST %s: %v", u, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

const sectionSlug = "coshh-awareness-module-1-section-1"

func TestShowPage(t *testing.T) {
	srv := newServer(t)

	code, body := get(t, srv.URL+"/pages/"+sectionSlug)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}

	for _, want := range []string{
		"<title>What Is COSHH? | COSHH Awareness Module 1.1</title>",
		`<link rel="canonical" href="http://example.test/pages/` + sectionSlug + `">`,
		"<h1>What Is COSHH?</h1>",
		"Learning outcomes",
		"Quick check: What does COSHH stand for?",
		"<caption>Substances outside COSHH</caption>",
		"Module 1.1 quiz",
		`href="/pages/coshh-awareness-module-1-section-2"`,
		"Last reviewed 2026-03-02",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page body missing %q", want)
		}
	}
	if strings.Contains(body, "feedback") {
		t.Error("a fresh page should show no answer feedback")
	}

	t.Run("CourseCrumbIsALabel", func(t *testing.T) {
		if !strings.Contains(body, "<span>COSHH Awareness</span>") {
			t.Error("course breadcrumb should render as a label")
		}
		if strings.Contains(body, "/api/") {
			t.Error("the HTML page should not link into the JSON API")
		}
	})

	t.Run("ChecksFollowTheirSection", func(t *testing.T) {
		intro := strings.Index(body, "Introduction to COSHH")
		check := strings.Index(body, "Quick check: What does COSHH stand for?")
		scope := strings.Index(body, "What COSHH covers")
		if !(intro < check && check < scope) {
			t.Errorf("inline check not placed after its section: %d %d %d", intro, check, scope)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		if code, _ := get(t, srv.URL+"/pages/nope"); code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", code)
		}
	})
}

func TestAnswerCheck(t *testing.T) {
	srv := newServer(t)
	action := srv.URL + "/pages/" + sectionSlug + "/checks/coshh-stands-for"

	t.Run("Incorrect", func(t *testing.T) {
		code, body := postForm(t, action, url.Values{"option": {"0"}})
		if code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
		if !strings.Contains(body, "Not quite") {
			t.Error("expected incorrect feedback")
		}
		if !strings.Contains(body, "COSHH stands for the Control of Substances Hazardous to Health.") {
			t.Error("explanation should be shown for an incorrect answer")
		}
	})

	t.Run("Correct", func(t *testing.T) {
		_, body := postForm(t, action, url.Values{"option": {"1"}})
		if !strings.Contains(body, "<strong>Correct</strong>") {
			t.Error("expected correct feedback")
		}
	})

	t.Run("OutOfRange", func(t *testing.T) {
		if code, _ := postForm(t, action, url.Values{"option": {"9"}}); code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", code)
		}
	})

	t.Run("MissingOption", func(t *testing.T) {
		if code, _ := postForm(t, action, url.Values{}); code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", code)
		}
	})

	t.Run("UnknownCheck", func(t *testing.T) {
		code, _ := postForm(t, srv.URL+"/pages/"+sectionSlug+"/checks/ghost", url.Values{"option": {"0"}})
		if code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", code)
		}
	})
}

func TestSubmitQuiz(t *testing.T) {
	srv := newServer(t)

	form := url.Values{"q.1": {"0"}, "q.2": {"2"}, "q.3": {"0"}}
	code, body := postForm(t, srv.URL+"/pages/"+sectionSlug+"/quiz", form)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if !strings.Contains(body, "Score: 2 / 5") {
		t.Errorf("expected score 2 / 5 in body")
	}

	if code, _ := postForm(t, srv.URL+"/pages/"+sectionSlug+"/quiz", url.Values{"q.1": {"x"}}); code != http.StatusBadRequest {
		t.Errorf("expected 400 for a non-numeric option, got %d", code)
	}
}

func TestEmptyQuiz(t *testing.T) {
	lib := &page.Library{
		Courses: []page.Course{{Slug: "coshh-awareness", Title: "COSHH Awareness"}},
		Pages: []*page.Page{{
			Slug:        "empty-quiz",
			Kind:        page.KindSection,
			Course:      "coshh-awareness",
			Title:       "Nothing to ask",
			Description: "A section whose quiz has no questions yet.",
			Quiz:        &quiz.Quiz{Title: "Coming soon"},
		}},
	}
	srv := newServerFor(t, lib)

	for _, tc := range []struct {
		name string
		do   func() (int, string)
	}{
		{"Fresh", func() (int, string) { return get(t, srv.URL+"/pages/empty-quiz") }},
		{"Submitted", func() (int, string) { return postForm(t, srv.URL+"/pages/empty-quiz/quiz", url.Values{}) }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			code, body := tc.do()
			if code != http.StatusOK {
				t.Fatalf("expected 200, got %d", code)
			}
			for _, want := range []string{"No questions available.", "Score: 0 / 0"} {
				if !strings.Contains(body, want) {
					t.Errorf("body missing %q", want)
				}
			}
		})
	}
}

func TestSEOPage(t *testing.T) {
	srv := newServer(t)

	_, body := get(t, srv.URL+"/pages/electrical-apprenticeship-faq")
	if !strings.Contains(body, `<script type="application/ld+json">`) || !strings.Contains(body, `"@type":"FAQPage"`) {
		t.Errorf("structured data not rendered verbatim")
	}
	if !strings.Contains(body, "How long does an electrical apprenticeship take?") {
		t.Error("FAQ missing")
	}
	if strings.Contains(body, `id="quiz"`) {
		t.Error("a page without a quiz should not render one")
	}
}

func TestJSONPage(t *testing.T) {
	srv := newServer(t)

	code, body := get(t, srv.URL+"/api/pages/"+sectionSlug)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if strings.Contains(body, "correct_index") || strings.Contains(body, "explanation") {
		t.Error("page JSON must not leak answers")
	}

	var resp page.PageResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Quiz == nil || len(resp.Quiz.Questions) != 5 {
		t.Errorf("unexpected quiz: %+v", resp.Quiz)
	}
	if resp.Metadata.Title != "What Is COSHH? | COSHH Awareness Module 1.1" {
		t.Errorf("unexpected metadata title %q", resp.Metadata.Title)
	}
}

func TestCatalogue(t *testing.T) {
	srv := newServer(t)

	_, body := get(t, srv.URL+"/api/courses/coshh-awareness")
	var detail page.CourseDetail
	if err := json.Unmarshal([]byte(body), &detail); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var slugs []string
	for _, p := range detail.Pages {
		slugs = append(slugs, p.Slug)
	}
	want := "coshh-awareness-module-1,coshh-awareness-module-1-section-1,coshh-awareness-module-1-section-2"
	if strings.Join(slugs, ",") != want {
		t.Errorf("unexpected order: %v", slugs)
	}

	if code, _ := get(t, srv.URL+"/api/courses/nope"); code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", code)
	}

	_, body = get(t, srv.URL+"/api/banks")
	if !strings.Contains(body, `"slug":"coshh-awareness"`) || !strings.Contains(body, `"questions":30`) {
		t.Errorf("unexpected banks body: %s", body)
	}
	if !strings.Contains(body, `"Control Measures \u0026 PPE":6`) || !strings.Contains(body, `"pass_threshold":80`) {
		t.Errorf("unexpected banks body: %s", body)
	}
}

func TestSitemap(t *testing.T) {
	srv := newServer(t)

	_, body := get(t, srv.URL+"/sitemap.xml")
	if !strings.Contains(body, "<loc>http://example.test/pages/"+sectionSlug+"</loc>") {
		t.Errorf("sitemap missing section page:\n%s", body)
	}
	if !strings.Contains(body, "<lastmod>2026-03-02</lastmod>") {
		t.Error("sitemap missing lastmod")
	}
}
