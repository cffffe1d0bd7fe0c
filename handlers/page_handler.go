package handlers

import (
	"bytes"
	"html/template"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"engagementAPI/internal/audio"
	"engagementAPI/internal/countdown"
	"engagementAPI/internal/i18n"
	"engagementAPI/web"
)

type PageHandler struct {
	tmpl     *template.Template
	event    time.Time
	audioSrc string
	loop     audio.Loop
	now      func() time.Time
}

type countdownItem struct {
	Field countdown.Field
	Value string
	Label string
}

type pageData struct {
	Doc       i18n.Document
	EventISO  string
	Countdown []countdownItem
	AudioSrc  string
	Audio     audio.View
}

func NewPageHandler(event time.Time, audioSrc string, loop audio.Loop) (*PageHandler, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}

	return &PageHandler{
		tmpl:     tmpl,
		event:    event,
		audioSrc: audioSrc,
		loop:     loop,
		now:      time.Now,
	}, nil
}

// ServePage renders the page in the visitor's saved language. A ?lang= query
// wins over the cookie.
func (h *PageHandler) ServePage(w http.ResponseWriter, r *http.Request) {
	lang := i18n.English
	if c, err := r.Cookie(i18n.PreferenceKey); err == nil {
		lang = i18n.ParseOr(c.Value, lang)
	}
	if q := r.URL.Query().Get("lang"); q != "" {
		lang = i18n.ParseOr(q, lang)
	}

	display := countdown.Remaining(h.now(), h.event).Display()
	items := make([]countdownItem, 0, len(countdown.Order))
	for _, f := range countdown.Order {
		items = append(items, countdownItem{
			Field: f,
			Value: display[f],
			Label: "label-" + string(f),
		})
	}

	data := pageData{
		Doc:       i18n.Render(lang, web.Elements),
		EventISO:  h.event.Format(time.RFC3339),
		Countdown: items,
		AudioSrc:  h.audioSrc,
		Audio:     audio.NewController(h.loop, audio.NewIdle(0)).View(),
	}

	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "index.html", data); err != nil {
		log.WithError(err).Error("failed to render page")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
