package modules

import (
	"fmt"
	"strings"

	tg "github.com/amarnathcjd/gogram/telegram"
)

const messageChunkSize = 4096

// invalidRecipient matches the transport errors that mean the id can never
// be delivered to again and should be pruned from the subscriber set.
func invalidRecipient(err error) bool {
	msg := err.Error()
	for _, marker := range []string{
		"PEER_ID_INVALID",
		"USER_ID_INVALID",
		"PARTICIPANT_ID_INVALID",
		"INPUT_USER_DEACTIVATED",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// BroadcastHandle sends the message to every subscriber; invalid recipients
// are pruned, other delivery errors are logged and skipped.
func BroadcastHandle(m *tg.NewMessage) error {
	userID := m.SenderID()

	if !isAdmin(userID) {
		m.Reply("❌ You are not authorized to send messages.")
		return nil
	}

	text := m.Args()
	if text == "" {
		m.Reply("Usage: /sendtousers <message>")
		return nil
	}
	LogUserAction(userID, "broadcast message to subscribers")

	pruned := false
	for _, id := range subscribers.Snapshot() {
		if _, err := m.Client.SendMessage(id, text); err != nil {
			if invalidRecipient(err) {
				subscribers.Remove(id)
				pruned = true
				logWarn(fmt.Sprintf("pruned unreachable subscriber %d: %s", id, err.Error()))
			} else {
				logWarn(fmt.Sprintf("could not send broadcast to %d: %s", id, err.Error()))
			}
		}
	}
	if pruned {
		saveSubscribers()
	}

	m.Reply("✅ Message sent to all users.")
	return nil
}

// ListUsersHandle resolves every subscriber and replies with their names,
// pruning ids that no longer resolve or have no username.
func ListUsersHandle(m *tg.NewMessage) error {
	userID := m.SenderID()

	if !isAdmin(userID) {
		m.Reply("❌ You are not authorized to view the list of users.")
		return nil
	}

	ids := subscribers.Snapshot()
	if len(ids) == 0 {
		m.Reply("No users subscribed yet.")
		return nil
	}

	var details strings.Builder
	details.WriteString("Subscribed users:\n")

	pruned := false
	for _, id := range ids {
		user, err := m.Client.GetUser(id)
		if err != nil {
			subscribers.Remove(id)
			pruned = true
			logWarn(fmt.Sprintf("pruned unresolvable subscriber %d: %s", id, err.Error()))
			continue
		}
		if user.Username == "" {
			subscribers.Remove(id)
			pruned = true
			continue
		}

		name := strings.TrimSpace(user.FirstName + " " + user.LastName)
		fmt.Fprintf(&details, "%s (@%s)\n", shorten(name, 30), shorten(user.Username, 30))
	}
	if pruned {
		saveSubscribers()
	}

	text := details.String()
	for start := 0; start < len(text); start += messageChunkSize {
		end := min(start+messageChunkSize, len(text))
		m.Reply(text[start:end])
	}
	return nil
}

func shorten(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

func init() {
	Mods.AddModule("Broadcast", `<b>Here are the commands available in Broadcast module:</b>

<code>/sendtousers [message]</code> - send a message to all subscribed users (admins only)
<code>/listusers</code> - list all users subscribed to the bot (admins only)`)
}
