package extract

import (
	"bytes"
	u "net/url"
	"strings"

	"github.com/tanq16/docgrab/internal/utils"
	"golang.org/x/net/html"
)

// DocumentLinks scans the page body for anchors pointing at document files
// and returns their absolute URLs in document order. Duplicate hrefs are kept
// so each occurrence gets its own download attempt.
func DocumentLinks(pageURL string, body []byte, allowedExtensions []string) ([]string, error) {
	base, err := u.Parse(pageURL)
	if err != nil {
		return nil, &utils.InvalidURLError{URL: pageURL, Err: err}
	}
	var links []string
	tokenizer := html.NewTokenizer(bytes.NewReader(body))
	for {
		tokenType := tokenizer.Next()
		if tokenType == html.ErrorToken {
			// EOF or malformed tail; either way we have what we have
			return links, nil
		}
		if tokenType != html.StartTagToken && tokenType != html.SelfClosingTagToken {
			continue
		}
		name, hasAttr := tokenizer.TagName()
		if len(name) != 1 || name[0] != 'a' || !hasAttr {
			continue
		}
		href, ok := anchorHref(tokenizer)
		if !ok || !isDownloadable(href, allowedExtensions) {
			continue
		}
		resolved, err := resolveURL(base, href)
		if err != nil {
			continue
		}
		links = append(links, resolved)
	}
}

func anchorHref(tokenizer *html.Tokenizer) (string, bool) {
	for {
		key, val, more := tokenizer.TagAttr()
		if string(key) == "href" {
			return string(val), true
		}
		if !more {
			return "", false
		}
	}
}

func isDownloadable(href string, allowedExtensions []string) bool {
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
		return false
	}
	return utils.IsAllowedFile(href, allowedExtensions)
}

func resolveURL(base *u.URL, href string) (string, error) {
	rel, err := u.Parse(href)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(rel).String(), nil
}
