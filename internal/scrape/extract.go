package scrape

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// noiseSelector matches tags that carry no article text.
const noiseSelector = "script,style,nav,footer,aside,noscript"

// contentSelector matches the tags the body text is collected from.
const contentSelector = "p,h1,h2,h3,h4,h5,h6,li"

var strayChars = regexp.MustCompile(`[\\+]`)

// PreprocessText normalizes extracted text for keyword extraction. Words
// longer than 25 characters are usually URLs or formatting artifacts and are
// dropped; backslashes and plus signs confuse downstream tokenization.
func PreprocessText(text string) string {
	words := strings.Fields(text)
	kept := words[:0]
	for _, w := range words {
		if len(w) <= 25 {
			kept = append(kept, w)
		}
	}
	return strayChars.ReplaceAllString(strings.Join(kept, " "), "")
}

// ExtractArticle parses an HTML document into head and body text. The head
// keeps the title and metadata text; the body is the readable article
// content. Both are preprocessed.
func ExtractArticle(raw []byte, pageURL string) Article {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return Article{Error: "parse HTML: " + err.Error()}
	}

	doc.Find(noiseSelector).Remove()

	var art Article
	if head := doc.Find("head"); head.Length() > 0 {
		art.Head = PreprocessText(nodeText(head))
	}
	art.Body = PreprocessText(bodyText(doc, raw, pageURL))
	return art
}

// bodyText prefers readability extraction and falls back to collecting text
// from content tags when readability finds nothing.
func bodyText(doc *goquery.Document, raw []byte, pageURL string) string {
	if parsed, err := url.Parse(pageURL); err == nil {
		if article, err := readability.FromReader(bytes.NewReader(raw), parsed); err == nil {
			if text := strings.TrimSpace(article.TextContent); text != "" {
				return text
			}
		}
	}

	var parts []string
	doc.Find("body").Find(contentSelector).Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, " ")
}

// nodeText joins the stripped text nodes under a selection with single
// spaces, unlike Selection.Text which concatenates them raw.
func nodeText(sel *goquery.Selection) string {
	var parts []string
	for _, node := range sel.Nodes {
		var walk func(*html.Node)
		walk = func(n *html.Node) {
			if n.Type == html.TextNode {
				if text := strings.TrimSpace(n.Data); text != "" {
					parts = append(parts, text)
				}
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
		}
		walk(node)
	}
	return strings.Join(parts, " ")
}
