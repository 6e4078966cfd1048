package seo

import (
	"encoding/xml"
	"time"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type SitemapEntry struct {
	Path    string
	LastMod time.Time
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func BuildSitemap(baseURL string, entries []SitemapEntry) ([]byte, error) {
	set := urlSet{Xmlns: sitemapNS}
	for _, e := range entries {
		u := sitemapURL{Loc: baseURL + e.Path}
		if !e.LastMod.IsZero() {
			u.LastMod = e.LastMod.Format("2006-01-02")
		}
		set.URLs = append(set.URLs, u)
	}
	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}
