package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	tg "github.com/amarnathcjd/gogram/telegram"
	dotenv "github.com/joho/godotenv"

	"main/modules"
	"main/modules/db"
)

var startTimeStamp = time.Now().Unix()
var ownerId int64 = 0

func main() {
	dotenv.Load()
	ownerId, _ = strconv.ParseInt(os.Getenv("OWNER_ID"), 10, 64)
	channelId, _ := strconv.ParseInt(os.Getenv("CHANNEL_ID"), 10, 64)

	db.SetPath(os.Getenv("DATABASE_FILE"))

	appId, _ := strconv.Atoi(os.Getenv("APP_ID"))
	client, err := tg.NewClient(tg.ClientConfig{
		AppID:    int32(appId),
		AppHash:  os.Getenv("APP_HASH"),
		LogLevel: tg.LogInfo,
		Session:  "session.dat",
	})

	if err != nil {
		panic(err)
	}

	client.Conn()
	client.LoginBot(os.Getenv("BOT_TOKEN"))

	modules.Setup(client, ownerId, channelId, buildAssetStore())
	modules.Captcha.StartReaper(time.Minute)
	defer modules.Captcha.StopReaper()
	defer db.CloseDB()

	initFunc(client)

	if port := os.Getenv("AUDIT_PORT"); port != "" {
		auditServer := NewAuditServer(port)
		auditServer.Start()
		defer auditServer.Stop()
	}

	me, err := client.GetMe()

	if err != nil {
		panic(err)
	}

	client.Logger.Info(fmt.Sprintf("Authenticated as @%s, in %s.", me.Username, time.Since(time.Unix(startTimeStamp, 0)).String()))
	client.Idle()
}

func buildAssetStore() modules.AssetStore {
	if os.Getenv("CAPTCHA_STORAGE") == "cloudinary" {
		store, err := modules.NewCloudinaryAssets(
			os.Getenv("CLOUDINARY_CLOUD_NAME"),
			os.Getenv("CLOUDINARY_API_KEY"),
			os.Getenv("CLOUDINARY_API_SECRET"),
		)
		if err != nil {
			panic(err)
		}
		return store
	}
	return modules.NewLocalAssets(os.TempDir())
}
