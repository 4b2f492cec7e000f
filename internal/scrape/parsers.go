package scrape

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/serc-ps/lottogen/internal/models"
)

// ParseFunc extracts raw draw records from a parsed page. Output is not yet
// deduplicated; callers run Dedupe over the accumulated records.
type ParseFunc func(doc *goquery.Document, maxNumber, numbersDrawn int) []models.DrawRecord

// strategyParsers is the closed dispatch table for parser strategies.
var strategyParsers = map[models.ParserStrategy]ParseFunc{
	models.StrategyPrintLayout:  ParsePrintLayout,
	models.StrategyGenericTable: ParseGenericTables,
}

// ParserFor returns the parse function for a strategy.
func ParserFor(strategy models.ParserStrategy) (ParseFunc, bool) {
	fn, ok := strategyParsers[strategy]
	return fn, ok
}

var (
	monthRe = regexp.MustCompile(`January|February|March|April|May|June|July|August|September|October|November|December`)
	dateRe  = regexp.MustCompile(`(January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4}`)
	numRe   = regexp.MustCompile(`\b\d{1,2}\b`)
)

// ParsePrintLayout parses print-friendly result pages from their flattened
// visible text. The text is split on month-name tokens, each split point
// starting a candidate block; a block contributes a record only if it carries
// a "<Month> day, year" date and at least numbersDrawn in-range numbers.
// Digits inside the matched date text are not number candidates.
//
// Known source ambiguity: a month name outside a date context (a headline,
// say) also starts a block and can conflate two dates. That mirrors how the
// providers' print pages are actually structured and is left as is.
func ParsePrintLayout(doc *goquery.Document, maxNumber, numbersDrawn int) []models.DrawRecord {
	text := flattenText(doc)

	starts := monthRe.FindAllStringIndex(text, -1)
	var draws []models.DrawRecord
	for i, loc := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		block := text[loc[0]:end]

		dateLoc := dateRe.FindStringIndex(block)
		if dateLoc == nil {
			continue
		}
		date, ok := ParseDate(block[dateLoc[0]:dateLoc[1]])
		if !ok {
			continue
		}

		rest := block[:dateLoc[0]] + " " + block[dateLoc[1]:]
		nums := extractNumbers(rest, maxNumber)
		if len(nums) < numbersDrawn {
			continue
		}
		rec := models.DrawRecord{Date: date, Main: nums[:numbersDrawn]}
		if len(nums) > numbersDrawn {
			rec.Bonus = nums[numbersDrawn]
		}
		draws = append(draws, rec)
	}
	return draws
}

// ParseGenericTables walks every table row in the document. A row contributes
// a record when one of its cells holds a parseable date (first matching cell
// in document order wins) and the row's cells together carry at least
// numbersDrawn distinct in-range numbers, deduplicated in first-occurrence
// order. Numbers are collected from all cells, the date cell included.
//
// Known source ambiguity: trusting the first date-like cell can misattribute
// a secondary date column. Preserved as the providers' tables behave.
func ParseGenericTables(doc *goquery.Document, maxNumber, numbersDrawn int) []models.DrawRecord {
	var draws []models.DrawRecord
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			var cells []string
			row.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, cellText(cell))
			})
			if len(cells) == 0 {
				return
			}

			var date string
			for _, c := range cells {
				if iso, ok := ParseDate(c); ok {
					date = iso
					break
				}
			}
			if date == "" {
				return
			}

			var nums []int
			for _, c := range cells {
				nums = append(nums, extractNumbers(c, maxNumber)...)
			}
			seen := make(map[int]bool, len(nums))
			cleaned := nums[:0]
			for _, n := range nums {
				if !seen[n] {
					seen[n] = true
					cleaned = append(cleaned, n)
				}
			}
			if len(cleaned) < numbersDrawn {
				return
			}
			rec := models.DrawRecord{Date: date, Main: cleaned[:numbersDrawn]}
			if len(cleaned) > numbersDrawn {
				rec.Bonus = cleaned[numbersDrawn]
			}
			draws = append(draws, rec)
		})
	})
	return draws
}

// Dedupe collapses raw records to exactly one per canonical date (the last
// record encountered for a date wins) and returns them sorted ascending by
// date. ISO date strings sort chronologically as plain strings.
func Dedupe(draws []models.DrawRecord) []models.DrawRecord {
	uniq := make(map[string]models.DrawRecord, len(draws))
	for _, d := range draws {
		uniq[d.Date] = d
	}
	dates := make([]string, 0, len(uniq))
	for date := range uniq {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	out := make([]models.DrawRecord, 0, len(dates))
	for _, date := range dates {
		out = append(out, uniq[date])
	}
	return out
}

// extractNumbers pulls every standalone 1-2 digit integer within
// [1, maxNumber] out of text, in textual order, duplicates included.
func extractNumbers(text string, maxNumber int) []int {
	var nums []int
	for _, tok := range numRe.FindAllString(text, -1) {
		n, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		if n >= 1 && n <= maxNumber {
			nums = append(nums, n)
		}
	}
	return nums
}

// flattenText returns the document's visible text with text nodes joined by
// single spaces, so numbers in adjacent elements never run together.
func flattenText(doc *goquery.Document) string {
	var parts []string
	for _, node := range doc.Selection.Nodes {
		collectText(node, &parts)
	}
	return strings.Join(parts, " ")
}

// cellText returns a table cell's visible text, space-joined.
func cellText(s *goquery.Selection) string {
	var parts []string
	for _, node := range s.Nodes {
		collectText(node, &parts)
	}
	return strings.Join(parts, " ")
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			*parts = append(*parts, strings.Join(strings.Fields(t), " "))
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}
