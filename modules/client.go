package modules

import (
	tg "github.com/amarnathcjd/gogram/telegram"
)

var (
	Client    *tg.Client
	OwnerId   int64
	ChannelId int64

	Captcha *CaptchaStore
	Invites *InviteManager
	Assets  AssetStore
)

// Setup wires the gate services onto a connected client. Must run before
// handler registration.
func Setup(c *tg.Client, ownerId, channelId int64, assets AssetStore) {
	Client = c
	OwnerId = ownerId
	ChannelId = channelId
	Assets = assets

	Captcha = NewCaptchaStore(releaseAsset, notifyExpired)
	Invites = NewInviteManager(&channelInvites{client: c, channelID: channelId})

	loadRoster()
}

func releaseAsset(assetID string) {
	if Assets == nil || assetID == "" {
		return
	}
	if err := Assets.Destroy(assetID); err != nil {
		logWarn("could not release captcha asset " + assetID + ": " + err.Error())
	}
}

func notifyExpired(userID int64) {
	if Client == nil {
		return
	}
	Client.SendMessage(userID, "❌ Your captcha has expired. Please generate a new one.")
}

func logInfo(msg string) {
	if Client != nil {
		Client.Logger.Info(msg)
	}
}

func logWarn(msg string) {
	if Client != nil {
		Client.Logger.Warn(msg)
	}
}

func FilterOwner(m *tg.NewMessage) bool {
	if m.SenderID() == OwnerId {
		return true
	}
	m.Reply("You are not allowed to use this command")
	return false
}

func isAdmin(userID int64) bool {
	return userID == OwnerId || admins.Has(userID)
}
