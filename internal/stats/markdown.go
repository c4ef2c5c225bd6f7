package stats

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
)

// WriteMarkdown renders r as a markdown document with four sections in
// order: unique pages, longest page, top words, subdomains.
func WriteMarkdown(w io.Writer, r Report) error {
	md := markdown.NewMarkdown(w)

	md.H1("Crawl Report")
	md.PlainText("")

	md.H2("Unique Pages")
	md.PlainText("")
	md.PlainText(strconv.Itoa(r.UniquePages))
	md.PlainText("")

	md.H2("Longest Page")
	md.PlainText("")
	if r.Longest.URL == "" {
		md.PlainText("No pages recorded.")
	} else {
		md.Table(markdown.TableSet{
			Header: []string{"URL", "Words"},
			Rows:   [][]string{{r.Longest.URL, strconv.Itoa(r.Longest.Words)}},
		})
	}
	md.PlainText("")

	md.H2("Top " + strconv.Itoa(len(r.TopWords)) + " Words")
	md.PlainText("")
	rows := make([][]string, 0, len(r.TopWords))
	for i, wc := range r.TopWords {
		rows = append(rows, []string{strconv.Itoa(i + 1), wc.Word, strconv.Itoa(wc.Count)})
	}
	md.Table(markdown.TableSet{
		Header: []string{"#", "Word", "Count"},
		Rows:   rows,
	})
	md.PlainText("")

	md.H2("Subdomains")
	md.PlainText("")
	rows = make([][]string, 0, len(r.Subdomains))
	for _, sc := range r.Subdomains {
		rows = append(rows, []string{sc.Host, strconv.Itoa(sc.Pages)})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Host", "Pages"},
		Rows:   rows,
	})

	return md.Build()
}
