package fetcher

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ainewshub/internal/source"
)

// ExtractFunc pulls candidates out of a parsed page. Strategies are tried
// in order until one yields a non-empty result, so each source can carry
// its own prioritized stack and survive page-structure drift.
type ExtractFunc func(doc *goquery.Document, base *url.URL) []source.Candidate

const fallbackMinTitleLen = 20

// ContainerStrategy scans container elements with article-like semantics,
// taking the title from the first matching heading or link inside each
// container and the summary from the first excerpt-like element.
func ContainerStrategy(containerSel, titleSel, summarySel string) ExtractFunc {
	return func(doc *goquery.Document, base *url.URL) []source.Candidate {
		var out []source.Candidate
		doc.Find(containerSel).Each(func(_ int, el *goquery.Selection) {
			titleEl := el.Find(titleSel).First()
			title := strings.TrimSpace(titleEl.Text())

			href, ok := titleEl.Attr("href")
			if !ok || href == "" {
				href, _ = el.Find("a").First().Attr("href")
			}
			if title == "" || href == "" {
				return
			}

			summary := strings.TrimSpace(el.Find(summarySel).First().Text())
			if summary == "" {
				summary = title
			}

			out = append(out, source.Candidate{
				Title:   title,
				Summary: summary,
				URL:     resolveURL(base, href),
			})
		})
		return out
	}
}

// NewsLinkStrategy scans anchors matched by linkSel, deriving the title
// from a nested heading, an aria-label, or the link text. Anchors whose
// href equals one of skipHrefs (e.g. a section index) are ignored.
func NewsLinkStrategy(linkSel string, minTitleLen int, skipHrefs ...string) ExtractFunc {
	skip := make(map[string]struct{}, len(skipHrefs))
	for _, h := range skipHrefs {
		skip[h] = struct{}{}
	}

	return func(doc *goquery.Document, base *url.URL) []source.Candidate {
		var out []source.Candidate
		doc.Find(linkSel).Each(func(_ int, el *goquery.Selection) {
			href, ok := el.Attr("href")
			if !ok || href == "" {
				return
			}
			if _, skipped := skip[href]; skipped {
				return
			}

			title := strings.TrimSpace(el.Find("h2, h3, h4").Text())
			if title == "" {
				title, _ = el.Attr("aria-label")
			}
			if title == "" {
				title = strings.TrimSpace(el.Text())
			}
			if len(title) < minTitleLen {
				return
			}

			summary := strings.TrimSpace(el.Find("p").Text())
			if summary == "" {
				summary = title
			}

			out = append(out, source.Candidate{
				Title:   title,
				Summary: summary,
				URL:     resolveURL(base, href),
			})
		})
		return out
	}
}

// LinkTextStrategy is the last-resort fallback: every hyperlink whose
// visible text is long enough to plausibly be a headline.
func LinkTextStrategy(minLen int) ExtractFunc {
	return func(doc *goquery.Document, base *url.URL) []source.Candidate {
		var out []source.Candidate
		doc.Find("a").Each(func(_ int, el *goquery.Selection) {
			title := strings.TrimSpace(el.Text())
			href, ok := el.Attr("href")
			if !ok || href == "" || len(title) < minLen {
				return
			}
			out = append(out, source.Candidate{
				Title:   title,
				Summary: title,
				URL:     resolveURL(base, href),
			})
		})
		return out
	}
}

// StrategiesFor returns the extraction stack tuned for a known source,
// or a generic container-then-links stack for anything else.
func StrategiesFor(name string) []ExtractFunc {
	switch name {
	case "anthropic.com":
		return []ExtractFunc{
			NewsLinkStrategy("a[href*='/news/']", 5, "/news"),
		}
	default:
		return []ExtractFunc{
			ContainerStrategy("article, .post, .entry, .item", "h1, h2, h3, a", "p, .summary, .excerpt"),
			LinkTextStrategy(fallbackMinTitleLen),
		}
	}
}

func resolveURL(base *url.URL, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
