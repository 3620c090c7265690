package modules

import (
	"errors"
	"fmt"
	"time"

	tg "github.com/amarnathcjd/gogram/telegram"
)

// StartGateHandle begins the captcha flow: records the subscriber, renders
// and publishes a challenge image, and presents the 3x3 option keyboard.
func StartGateHandle(m *tg.NewMessage) error {
	userID := m.SenderID()

	if subscribers.Add(userID) {
		saveSubscribers()
	}
	LogUserAction(userID, "issued /start")

	processing, _ := m.Reply("🔄 Processing your request... Please wait.")

	code := GenerateCode(codeLength)
	img, err := RenderCaptcha(code)
	if err != nil {
		logWarn("captcha render for " + fmt.Sprint(userID) + " failed: " + err.Error())
		deleteMessage(processing)
		m.Reply("❌ Error generating captcha image. Please try again later.")
		return nil
	}

	url, assetID, err := Assets.Upload(img)
	if err != nil {
		logWarn("captcha publish for " + fmt.Sprint(userID) + " failed: " + err.Error())
		deleteMessage(processing)
		m.Reply("❌ Error generating captcha image. Please try again later.")
		return nil
	}

	options := BuildOptions(code)
	Captcha.Begin(userID, code, assetID)

	deleteMessage(processing)

	_, err = m.ReplyMedia(url, &tg.MediaOptions{
		Caption:     "Select the correct captcha code from the options below:",
		ReplyMarkup: options.Keyboard(),
	})
	if err != nil {
		logWarn("could not send captcha to " + fmt.Sprint(userID) + ": " + err.Error())
		Captcha.Drop(userID)
		m.Reply("❌ Error generating captcha image. Please try again later.")
	}
	return nil
}

// CaptchaCallbackHandle validates a pressed option against the user's
// session and hands verified users an invite link.
func CaptchaCallbackHandle(cb *tg.CallbackQuery) error {
	userID := cb.SenderID
	data := cb.DataString()
	LogUserAction(userID, "pressed button with data: "+data)

	_, value, err := ParseOptionToken(data)
	if err != nil {
		cb.Answer("Invalid captcha response.")
		cb.Client.SendMessage(userID, "❌ Invalid captcha response. Please try again.")
		return nil
	}

	result, left, err := Captcha.Submit(userID, value)
	if errors.Is(err, ErrNoSession) {
		cb.Answer("No active session.")
		cb.Client.SendMessage(userID, "❌ No active captcha session. Please restart the process.")
		return nil
	}

	switch result {
	case SubmitVerified:
		cb.Answer("Correct!")
		cb.Client.SendMessage(userID, "✅ Correct!")
		sendInvite(cb.Client, userID)
	case SubmitWrong:
		cb.Answer("Incorrect.")
		cb.Client.SendMessage(userID, fmt.Sprintf("❌ Incorrect. You have %d attempts left.", left))
	case SubmitLocked:
		cb.Answer("Too many attempts.")
		cb.Client.SendMessage(userID, "❌ You have exceeded the maximum attempts. Please try again later.")
	}
	return nil
}

func sendInvite(c *tg.Client, userID int64) {
	link, err := Invites.Issue(userID)
	if err != nil {
		logWarn("invite issuance for " + fmt.Sprint(userID) + " failed: " + err.Error())
		c.SendMessage(userID, "❌ An error occurred while generating the invite link. Please contact the admin.")
		return
	}

	c.SendMessage(userID, "Here is your <b>unique</b> invite link (valid for 1 minute):", &tg.SendOptions{
		ReplyMarkup: tg.NewKeyboard().AddRow(
			tg.Button.URL("Join Channel", link),
		).Build(),
	})
}

func deleteMessage(m *tg.NewMessage) {
	if m != nil {
		m.Delete()
	}
}

func PingHandle(m *tg.NewMessage) error {
	start := time.Now()
	sent, _ := m.Reply("Pinging...")
	_, err := sent.Edit(fmt.Sprintf("<code>Pong!</code> <code>%s</code>", time.Since(start).String()))
	return err
}

func init() {
	Mods.AddModule("Gate", `<b>Here are the commands available in Gate module:</b>

<code>/start</code> - solve a captcha to receive a channel invite link
<code>/ping</code> - check the bot's response time
<code>/help</code> - show the help message`)
}
