package modules

import (
	"fmt"
	"strconv"
	"strings"

	tg "github.com/amarnathcjd/gogram/telegram"
)

// parseUserArg accepts "<id>" or "admin <id>" and returns the id.
func parseUserArg(args string) (int64, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return 0, fmt.Errorf("missing user id")
	}
	return strconv.ParseInt(fields[len(fields)-1], 10, 64)
}

func AddAdminHandle(m *tg.NewMessage) error {
	userID := m.SenderID()

	newID, err := parseUserArg(m.Args())
	if err != nil {
		m.Reply("❌ Please provide a valid admin ID. Usage: /add admin <id>")
		return nil
	}

	if !isAdmin(userID) {
		m.Reply("❌ You are not authorized to add admins.")
		return nil
	}

	if !admins.Add(newID) {
		m.Reply(fmt.Sprintf("❌ User %d is already an admin.", newID))
		return nil
	}
	saveAdmins()
	LogUserAction(userID, fmt.Sprintf("added admin %d", newID))

	m.Reply(fmt.Sprintf("✅ User %d has been added as an admin.", newID))
	return nil
}

func RemoveAdminHandle(m *tg.NewMessage) error {
	userID := m.SenderID()

	targetID, err := parseUserArg(m.Args())
	if err != nil {
		m.Reply("❌ Please provide a valid admin ID. Usage: /remove admin <id>")
		return nil
	}

	if !isAdmin(userID) {
		m.Reply("❌ You are not authorized to remove admins.")
		return nil
	}

	if !admins.Remove(targetID) {
		m.Reply(fmt.Sprintf("❌ User %d is not an admin.", targetID))
		return nil
	}
	saveAdmins()
	LogUserAction(userID, fmt.Sprintf("removed admin %d", targetID))

	m.Reply(fmt.Sprintf("✅ User %d has been removed as an admin.", targetID))
	return nil
}

func init() {
	Mods.AddModule("Admin", `<b>Here are the commands available in Admin module:</b>

<code>/add admin [id]</code> - add a user as an admin (admins only)
<code>/remove admin [id]</code> - remove a user from the admins (admins only)`)
}
