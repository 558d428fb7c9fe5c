// Package dispatch decides how one question is rendered into outbound
// sends. Two shapes exist: a native quiz poll when the text fits the
// poll limits, and a hybrid (text message + generic-prompt poll) when
// it does not. An optional explanation and a promotional message follow
// in both shapes.
package dispatch

import (
	"context"
	"unicode/utf8"

	"mcqbot/internal/question"
	"mcqbot/pkg/logx"
)

// Telegram limits. Lengths are counted in characters, not bytes; the
// feed content is Gujarati.
const (
	MessageLimit      = 4096
	PollQuestionLimit = 300
	PollOptionLimit   = 100
)

// Fixed strings embedded for the channel's Gujarati audience.
const (
	questionLabel = "❓ <b>પ્રશ્ન:</b>\n"
	explainLabel  = "📘 <b>સમજૂતી:</b>\n"

	// genericPrompt replaces the question text on the hybrid-path poll:
	// "choose the correct option".
	genericPrompt = "યોગ્ય વિકલ્પ પસંદ કરો:"

	// Truncation markers, appended whenever text is cut.
	questionMarker = "\n\n... (પ્રશ્ન સંક્ષિપ્ત)"
	explainMarker  = "\n\n... (શેષ ભાગ કાઢી નાખવામાં આવ્યો છે)"
)

// DefaultPromoText is the fixed marketing copy on the trailing
// promotional message.
const DefaultPromoText = "📚 <b>જનરલ નોલેજ MCQ</b>\nદરરોજ નવા પ્રશ્નો માટે ચેનલ સાથે જોડાયેલા રહો!"

// Sender issues the outbound platform calls.
type Sender interface {
	SendMessage(ctx context.Context, text string) error
	SendQuizPoll(ctx context.Context, prompt string, options []string, correct int) error
}

// QuoteProvider supplies an optional short quote for the promotional
// message. ok=false means "post the promo without a quote".
type QuoteProvider interface {
	Fetch(ctx context.Context) (quote string, ok bool)
}

// PromoConfig controls the trailing promotional message.
type PromoConfig struct {
	Enabled bool
	// Text overrides DefaultPromoText when set.
	Text string
}

// Dispatcher renders one question into an ordered sequence of sends:
// question (message and/or poll), explanation, promo. The first three
// are primary: any failure aborts the run. The promo is best-effort.
type Dispatcher struct {
	sender Sender
	quotes QuoteProvider
	promo  PromoConfig
	log    logx.Logger
}

func New(sender Sender, quotes QuoteProvider, promo PromoConfig, log logx.Logger) *Dispatcher {
	if promo.Text == "" {
		promo.Text = DefaultPromoText
	}
	return &Dispatcher{sender: sender, quotes: quotes, promo: promo, log: log}
}

// Dispatch sends the question, picking the direct-poll path when both
// the question text and every option fit the native poll limits, and
// the hybrid path otherwise.
func (d *Dispatcher) Dispatch(ctx context.Context, q *question.Question) error {
	text := q.Text
	options := q.Options()
	correct := q.CorrectIndex()

	questionLen := utf8.RuneCountInString(text)
	maxOptionLen := 0
	for _, opt := range options {
		if n := utf8.RuneCountInString(opt); n > maxOptionLen {
			maxOptionLen = n
		}
	}

	direct := questionLen <= PollQuestionLimit && maxOptionLen <= PollOptionLimit
	d.log.Info("dispatching question",
		logx.String("id", q.ID.String()),
		logx.Int("question_len", questionLen),
		logx.Int("max_option_len", maxOptionLen),
		logx.Bool("direct_poll", direct),
	)

	if direct {
		if err := d.sender.SendQuizPoll(ctx, text, options, correct); err != nil {
			return err
		}
	} else {
		msg := questionLabel + truncate(text, MessageLimit-utf8.RuneCountInString(questionLabel), questionMarker)
		if err := d.sender.SendMessage(ctx, msg); err != nil {
			return err
		}
		if err := d.sender.SendQuizPoll(ctx, genericPrompt, truncateOptions(options), correct); err != nil {
			return err
		}
	}

	if q.Explanation != "" {
		msg := explainLabel + truncate(q.Explanation, MessageLimit-utf8.RuneCountInString(explainLabel), explainMarker)
		if err := d.sender.SendMessage(ctx, msg); err != nil {
			return err
		}
	}

	d.sendPromo(ctx)
	return nil
}

// sendPromo posts the trailing promotional message. Quote lookup and
// the send itself are both non-fatal: a failed promo never fails a run
// that already delivered the question.
func (d *Dispatcher) sendPromo(ctx context.Context) {
	if !d.promo.Enabled {
		return
	}
	text := d.promo.Text
	if d.quotes != nil {
		if quote, ok := d.quotes.Fetch(ctx); ok {
			text += "\n\n💡 <i>" + quote + "</i>"
		}
	}
	if err := d.sender.SendMessage(ctx, text); err != nil {
		d.log.Warn("promotional message failed", logx.Err(err))
	}
}

// truncate cuts text to fit limit and appends the marker so readers can
// tell content was dropped. The cut point leaves 50 runes of headroom,
// which covers the longest marker.
func truncate(text string, limit int, marker string) string {
	r := []rune(text)
	if len(r) <= limit {
		return text
	}
	return string(r[:limit-50]) + marker
}

// truncateOptions sizes each option for the hybrid-path poll.
func truncateOptions(options []string) []string {
	out := make([]string, len(options))
	for i, opt := range options {
		r := []rune(opt)
		if len(r) > PollOptionLimit {
			opt = string(r[:PollOptionLimit-3]) + "..."
		}
		out[i] = opt
	}
	return out
}
