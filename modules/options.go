package modules

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	tg "github.com/amarnathcjd/gogram/telegram"
)

const (
	optionCount    = 9
	optionsPerRow  = 3
	tokenMarker    = "captcha"
	tokenSubMarker = "option"
)

var ErrMalformedToken = errors.New("malformed captcha token")

// OptionSet is one challenge keyboard: nine candidate codes with exactly one
// designated correct slot. Distractors are not deduplicated; the designated
// slot is authoritative.
type OptionSet struct {
	Options      []string
	CorrectIndex int
}

func BuildOptions(code string) OptionSet {
	correct := rand.IntN(optionCount)
	options := make([]string, optionCount)
	for i := range options {
		if i == correct {
			options[i] = code
		} else {
			options[i] = GenerateCode(len(code))
		}
	}
	return OptionSet{Options: options, CorrectIndex: correct}
}

// Keyboard renders the set as a 3x3 grid of callback buttons.
func (o OptionSet) Keyboard() *tg.ReplyInlineMarkup {
	buttons := make([]tg.KeyboardButton, 0, len(o.Options))
	for i, option := range o.Options {
		buttons = append(buttons, tg.Button.Data(option, OptionToken(i, option)))
	}
	return tg.NewKeyboard().NewColumn(optionsPerRow, buttons...).Build()
}

// OptionToken encodes one button's callback payload:
// captcha_option_<index>_<value>.
func OptionToken(index int, value string) string {
	return fmt.Sprintf("%s_%s_%d_%s", tokenMarker, tokenSubMarker, index, value)
}

// ParseOptionToken validates the four-field token shape and returns the slot
// index and the literal selected value.
func ParseOptionToken(data string) (int, string, error) {
	parts := strings.Split(data, "_")
	if len(parts) != 4 || parts[0] != tokenMarker || parts[1] != tokenSubMarker {
		return 0, "", ErrMalformedToken
	}
	index, err := strconv.Atoi(parts[2])
	if err != nil || index < 0 || index >= optionCount {
		return 0, "", ErrMalformedToken
	}
	return index, parts[3], nil
}
