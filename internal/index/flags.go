package index

import (
	"regexp"
	"slices"
	"strings"

	"quicksearch/internal/domain"
)

var (
	extendedFlag   = regexp.MustCompile(`/e`)
	extensionsFlag = regexp.MustCompile(`<[^>]*>`)
	trailingExt    = regexp.MustCompile(`\.[^.\s/]+$`)
)

// Query is a plain search line with its flags split out
type Query struct {
	Name       string   // lower-cased name fragment to match
	Extensions []string // ".txt" style, or domain.FolderExt
	Extended   bool     // also search the extended dirs
}

// ParseQuery strips the flags from a search line.
//
//	"myFile /e <txt, go>" -> {Name: "myfile", Extensions: [".txt", ".go"], Extended: true}
//	"report.pdf"          -> {Name: "report", Extensions: [".pdf"]}
func ParseQuery(input string) Query {
	input = strings.ToLower(input)
	q := Query{}

	if extendedFlag.MatchString(input) {
		q.Extended = true
		input = extendedFlag.ReplaceAllString(input, "")
	}

	for _, match := range extensionsFlag.FindAllString(input, -1) {
		match = strings.NewReplacer("<", "", ">", "", " ", "").Replace(match)
		for _, ext := range strings.Split(match, ",") {
			if ext = normalizeExt(ext); ext != "" {
				q.Extensions = append(q.Extensions, ext)
			}
		}
	}
	input = extensionsFlag.ReplaceAllString(input, "")

	// lone flag characters
	input = strings.Trim(input, " /<>")

	if !slices.Contains(q.Extensions, domain.FolderExt) {
		if loc := trailingExt.FindStringIndex(input); loc != nil && loc[0] > 0 {
			q.Extensions = append(q.Extensions, input[loc[0]:])
			input = input[:loc[0]]
		}
	}

	q.Name = strings.TrimSpace(input)
	return q
}

func normalizeExt(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" || ext == domain.FolderExt {
		return ext
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// allows reports whether e passes the extension filter
func (q Query) allows(e domain.Entry) bool {
	if len(q.Extensions) == 0 {
		return true
	}
	return slices.Contains(q.Extensions, e.Ext)
}
