// Package web holds the page template, its static assets and the
// translatable strings shown on the page.
package web

import (
	"embed"
	"html/template"
	"io/fs"

	"engagementAPI/internal/i18n"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static is the asset tree served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Elements lists every node carrying data-en / data-ar strings.
var Elements = []i18n.Element{
	{ID: "loader-text", En: "Loading our celebration…", Ar: "جارٍ تحميل احتفالنا…"},
	{ID: "hero-kicker", En: "We're getting engaged", Ar: "نحتفل بخطوبتنا"},
	{ID: "hero-title", En: "Ahmed & Manar", Ar: "أحمد و منار"},
	{ID: "hero-date", En: "Friday, 30 January 2026 · 7:00 PM", Ar: "الجمعة ٣٠ يناير ٢٠٢٦ · ٧:٠٠ مساءً"},
	{ID: "countdown-title", En: "Counting down to our day", Ar: "العد التنازلي ليومنا"},
	{ID: "label-days", En: "Days", Ar: "أيام"},
	{ID: "label-hours", En: "Hours", Ar: "ساعات"},
	{ID: "label-minutes", En: "Minutes", Ar: "دقائق"},
	{ID: "label-seconds", En: "Seconds", Ar: "ثوانٍ"},
	{ID: "wishes-title", En: "Leave us a wish", Ar: "اترك لنا أمنية"},
	{ID: "guestName", En: "Your name", Ar: "اسمك", Target: i18n.Placeholder},
	{ID: "guestMessage", En: "Your wish for us", Ar: "أمنيتك لنا", Target: i18n.Placeholder},
	{ID: "submit-label", En: "Send wish", Ar: "أرسل الأمنية"},
	{ID: "successMessage", En: "Thank you! Your wish has been added.", Ar: "شكراً لك! تمت إضافة أمنيتك."},
	{ID: "lang-toggle", En: "العربية", Ar: "English"},
	{ID: "footer-text", En: "With love, Ahmed & Manar", Ar: "مع الحب، أحمد و منار"},
}

// Element looks up a translatable node by id.
func Element(id string) i18n.Element {
	for _, e := range Elements {
		if e.ID == id {
			return e
		}
	}
	return i18n.Element{ID: id}
}

// Translation is what the template needs to render one node.
type Translation struct {
	ID   string
	En   string
	Ar   string
	Text string
}

// Translate renders node id for lang.
func Translate(lang i18n.Lang, id string) Translation {
	e := Element(id)
	return Translation{ID: e.ID, En: e.En, Ar: e.Ar, Text: e.In(lang)}
}

// Templates parses the page templates with the helper funcs they use.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"tr": Translate,
	}).ParseFS(templateFS, "templates/*.html")
}
