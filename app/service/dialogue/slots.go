package dialogue

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"contactia/app/model"
)

const (
	minPartySize = 1
	maxPartySize = 20
)

var (
	timePattern  = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
	phonePattern = regexp.MustCompile(`^[+0-9 -]{7,15}$`)

	// LLL-YYYYMMDD-NNNN, e.g. SOL-20251107-4123
	reservationIDPattern = regexp.MustCompile(`^[A-Z]{3}-\d{8}-\d{4}$`)

	whitespace = regexp.MustCompile(`\s`)
)

// slot is one entry of the fixed left-to-right reservation questionnaire.
// accept returns the normalized value, or false when the text does not look
// like this field yet.
type slot struct {
	name   string
	filled func(d *model.Draft) bool
	accept func(text string) (string, bool)
	assign func(d *model.Draft, value string)
	prompt string
	hint   string
}

var reservationSlots = []slot{
	{
		name:   "personas",
		filled: func(d *model.Draft) bool { return d.PartySize != 0 },
		accept: acceptPartySize,
		assign: func(d *model.Draft, v string) { d.PartySize, _ = strconv.Atoi(v) },
		prompt: msgAskPartySize,
		hint:   msgHintPartySize,
	},
	{
		name:   "fecha",
		filled: func(d *model.Draft) bool { return d.Date != "" },
		accept: acceptDate,
		assign: func(d *model.Draft, v string) { d.Date = v },
		prompt: msgAskDate,
		hint:   msgHintDate,
	},
	{
		name:   "hora",
		filled: func(d *model.Draft) bool { return d.Time != "" },
		accept: acceptTime,
		assign: func(d *model.Draft, v string) { d.Time = v },
		prompt: msgAskTime,
		hint:   msgHintTime,
	},
	{
		name:   "nombre",
		filled: func(d *model.Draft) bool { return d.FullName != "" },
		accept: acceptName,
		assign: func(d *model.Draft, v string) { d.FullName = v },
		prompt: msgAskName,
	},
	{
		name:   "email",
		filled: func(d *model.Draft) bool { return d.Email != "" },
		accept: acceptEmail,
		assign: func(d *model.Draft, v string) { d.Email = v },
		prompt: msgAskEmail,
		hint:   msgHintEmail,
	},
	{
		name:   "telefono",
		filled: func(d *model.Draft) bool { return d.Phone != "" },
		accept: acceptPhone,
		assign: func(d *model.Draft, v string) { d.Phone = v },
		prompt: msgAskPhone,
		hint:   msgHintPhone,
	},
}

func acceptPartySize(text string) (string, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return "", false
	}
	if n < minPartySize || n > maxPartySize {
		return "", false
	}

	return strconv.Itoa(n), true
}

// acceptDate takes DD/MM/YYYY (what the bot asks for) or ISO YYYY-MM-DD and
// normalizes to ISO.
func acceptDate(text string) (string, bool) {
	text = strings.TrimSpace(text)

	for _, layout := range []string{"02/01/2006", "2006-01-02"} {
		if t, err := time.Parse(layout, text); err == nil {
			return t.Format("2006-01-02"), true
		}
	}

	return "", false
}

func acceptTime(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if !timePattern.MatchString(text) {
		return "", false
	}

	parts := strings.SplitN(text, ":", 2)
	hour, _ := strconv.Atoi(parts[0])
	minute, _ := strconv.Atoi(parts[1])
	if hour > 23 || minute > 59 {
		return "", false
	}

	return text, true
}

func acceptName(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}

	return text, true
}

func acceptEmail(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if !strings.Contains(text, "@") {
		return "", false
	}

	return text, true
}

// acceptPhone validates 7-15 characters of [+0-9 -], strips whitespace and
// prefixes +34 for bare Spanish mobile numbers (leading 6 or 7).
func acceptPhone(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if !phonePattern.MatchString(text) {
		return "", false
	}

	tel := whitespace.ReplaceAllString(text, "")
	if !strings.HasPrefix(tel, "+") && (strings.HasPrefix(tel, "6") || strings.HasPrefix(tel, "7")) {
		tel = "+34" + tel
	}

	return tel, true
}

// displayDate converts a stored ISO date back to DD/MM/YYYY for summaries
// and notifications.
func displayDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}

	return t.Format("02/01/2006")
}
