// Package review извлекает отзывы со страниц, найденных при поиске.
package review

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// NotAvailable значение поля, которое не удалось извлечь
const NotAvailable = "N/A"

// Review один разобранный отзыв
type Review struct {
	URL     string
	Overall string
	RDev    string
	Text    string
	Look    string
	Smell   string
	Taste   string
	Feel    string
	Date    string
}

// Placeholder отзыв-заглушка для страницы, которую не удалось загрузить
func Placeholder(url string) Review {
	return Review{
		URL:     url,
		Overall: NotAvailable,
		RDev:    NotAvailable,
		Text:    NotAvailable,
		Look:    NotAvailable,
		Smell:   NotAvailable,
		Taste:   NotAvailable,
		Feel:    NotAvailable,
		Date:    NotAvailable,
	}
}

// Rule извлекает одно поле из блока отзыва
type Rule struct {
	Field   string
	Extract func(block *goquery.Selection, text string) (string, bool)
	set     func(r *Review, value string)
}

var (
	commentPattern = regexp.MustCompile(`overall: \d+(.*?)character`)
	lookPattern    = regexp.MustCompile(`look: (\d+\.?\d?)`)
	smellPattern   = regexp.MustCompile(`smell: (\d+\.?\d?)`)
	tastePattern   = regexp.MustCompile(`taste: (\d+\.?\d?)`)
	feelPattern    = regexp.MustCompile(`feel: (\d+\.?\d?)`)
)

// Rules правила в порядке применения; каждое работает независимо от остальных
var Rules = []Rule{
	{Field: "Overall", Extract: selectorText("span.BAscore_norm"), set: func(r *Review, v string) { r.Overall = v }},
	{Field: "Rdev", Extract: selectorText("span.rAvg_norm"), set: func(r *Review, v string) { r.RDev = v }},
	{Field: "Text", Extract: submatch(commentPattern), set: func(r *Review, v string) { r.Text = v }},
	{Field: "Look", Extract: submatch(lookPattern), set: func(r *Review, v string) { r.Look = v }},
	{Field: "Feel", Extract: submatch(feelPattern), set: func(r *Review, v string) { r.Feel = v }},
	{Field: "Smell", Extract: submatch(smellPattern), set: func(r *Review, v string) { r.Smell = v }},
	{Field: "Taste", Extract: submatch(tastePattern), set: func(r *Review, v string) { r.Taste = v }},
	{Field: "Date", Extract: trailingDate, set: func(r *Review, v string) { r.Date = v }},
}

// Parse разбирает блок div.user-comment. Поле без совпадения получает N/A.
func Parse(url string, block *goquery.Selection) Review {
	review := Placeholder(url)
	text := block.Text()

	for _, rule := range Rules {
		if value, ok := rule.Extract(block, text); ok {
			rule.set(&review, value)
		}
	}
	return review
}

func selectorText(selector string) func(*goquery.Selection, string) (string, bool) {
	return func(block *goquery.Selection, _ string) (string, bool) {
		found := block.Find(selector).First()
		if found.Length() == 0 {
			return "", false
		}
		return strings.TrimSpace(found.Text()), true
	}
}

func submatch(pattern *regexp.Regexp) func(*goquery.Selection, string) (string, bool) {
	return func(_ *goquery.Selection, text string) (string, bool) {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			return "", false
		}
		return match[1], true
	}
}

// trailingDate дата отзыва: две последние части текста через запятую
func trailingDate(_ *goquery.Selection, text string) (string, bool) {
	parts := strings.Split(text, ",")
	if len(parts) > 2 {
		parts = parts[len(parts)-2:]
	}
	date := strings.TrimSpace(strings.Join(parts, ","))
	if date == "" {
		return "", false
	}
	return date, true
}
