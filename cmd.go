package main

import (
	"main/modules"

	"github.com/amarnathcjd/gogram/telegram"
)

func initFunc(c *telegram.Client) {
	c.UpdatesGetState()
	c.SetCommandPrefixes("/")

	c.On("cmd:start", modules.StartGateHandle)
	c.On("cmd:help", modules.HelpHandle)
	c.On("cmd:ping", modules.PingHandle)

	c.On("cmd:add", modules.AddAdminHandle)
	c.On("cmd:remove", modules.RemoveAdminHandle)
	c.On("cmd:sendtousers", modules.BroadcastHandle)
	c.On("cmd:listusers", modules.ListUsersHandle)

	c.On("cmd:stats", modules.StatsHandle, telegram.Custom(modules.FilterOwner))

	c.On("callback:captcha_", modules.CaptchaCallbackHandle)
	c.On("callback:help_back", modules.HelpBackCallback)

	modules.Mods.Init(c)
}
