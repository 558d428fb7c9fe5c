// Package telegram wraps the outbound half of the Bot API: plain HTML
// messages and native quiz polls, both aimed at one channel.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"

	"golang.org/x/time/rate"

	"mcqbot/pkg/logx"
)

// Platform limits, enforced defensively before every poll send so an
// oversized payload degrades to a truncated one instead of a 400.
const (
	PollQuestionLimit = 300
	PollOptionLimit   = 100
)

type Config struct {
	Token     string
	ChannelID string
	// RatePerSec caps outbound sends; Telegram throttles bots that
	// burst. Zero means the default of 1.
	RatePerSec int
	// Offline skips the getMe probe; used by tests.
	Offline bool
}

// channel adapts the configured channel identifier (numeric id or
// @username) to telebot's Recipient.
type channel string

func (c channel) Recipient() string { return string(c) }

// Sender sends messages and quiz polls to a single channel.
type Sender struct {
	bot     *tele.Bot
	to      tele.Recipient
	limiter *rate.Limiter
	log     logx.Logger
}

func New(cfg Config, log logx.Logger) (*Sender, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, errors.New("telegram token is empty")
	}
	if strings.TrimSpace(cfg.ChannelID) == "" {
		return nil, errors.New("telegram channel id is empty")
	}
	b, err := tele.NewBot(tele.Settings{
		Token:   cfg.Token,
		Offline: cfg.Offline,
	})
	if err != nil {
		return nil, err
	}
	rps := cfg.RatePerSec
	if rps <= 0 {
		rps = 1
	}
	return &Sender{
		bot:     b,
		to:      channel(strings.TrimSpace(cfg.ChannelID)),
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
		log:     log,
	}, nil
}

// SendMessage posts one HTML text message with link previews disabled.
func (s *Sender) SendMessage(ctx context.Context, text string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := s.bot.Send(s.to, text, &tele.SendOptions{
		ParseMode:             tele.ModeHTML,
		DisableWebPagePreview: true,
	})
	if err != nil {
		return fmt.Errorf("telegram sendMessage: %w", err)
	}
	return nil
}

// SendQuizPoll posts one single-correct-answer quiz poll.
//
// The prompt and options are truncated to the platform limits here as a
// last line of defense; callers are expected to have already sized
// them. A poll with fewer than two usable options or an out-of-range
// correct index is a caller bug, not an expected runtime state.
func (s *Sender) SendQuizPoll(ctx context.Context, prompt string, options []string, correct int) error {
	prompt, options = clampPoll(prompt, options)
	if err := validateQuizPoll(prompt, options, correct); err != nil {
		return err
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	poll := &tele.Poll{
		Type:          tele.PollQuiz,
		Question:      prompt,
		CorrectOption: correct,
	}
	poll.AddOptions(options...)

	_, err := s.bot.Send(s.to, poll)
	if err != nil {
		return fmt.Errorf("telegram sendPoll: %w", err)
	}
	return nil
}

// clampPoll trims and truncates the prompt and options to platform
// limits, substituting placeholders for blank options.
func clampPoll(prompt string, options []string) (string, []string) {
	prompt = truncRunes(strings.TrimSpace(prompt), PollQuestionLimit)

	out := make([]string, len(options))
	for i, opt := range options {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			opt = fmt.Sprintf("Option %c", 'A'+i)
		}
		out[i] = truncRunes(opt, PollOptionLimit)
	}
	return prompt, out
}

// truncRunes cuts by rune, not byte: the feed is Gujarati and a byte
// slice could split a code point, which Telegram rejects.
func truncRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}

func validateQuizPoll(prompt string, options []string, correct int) error {
	if prompt == "" {
		return errors.New("quiz poll: empty prompt")
	}
	usable := 0
	for _, opt := range options {
		if opt != "" {
			usable++
		}
	}
	if usable < 2 {
		return fmt.Errorf("quiz poll: need at least 2 options, have %d", usable)
	}
	if correct < 0 || correct >= len(options) {
		return fmt.Errorf("quiz poll: correct index %d out of range [0,%d)", correct, len(options))
	}
	return nil
}
