package modules

import (
	"fmt"
	"runtime"
	"time"

	tg "github.com/amarnathcjd/gogram/telegram"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

var bootTime = time.Now()

// StatsHandle reports process and gate state to the owner.
func StatsHandle(m *tg.NewMessage) error {
	msg, _ := m.Reply("<code>...Gathering stats...</code>")

	var cpuPerc float64
	if percs, err := cpu.Percent(0, false); err == nil && len(percs) > 0 {
		cpuPerc = percs[0]
	}

	info := "<b>🛡 Gatekeeper Stats:</b>\n\n"
	info += fmt.Sprintf("⏱️ <b>Uptime:</b> %s\n", time.Since(bootTime).Round(time.Second))
	info += fmt.Sprintf("🧑‍💻 <b>OS:</b> %s | <b>Arch:</b> %s\n", runtime.GOOS, runtime.GOARCH)
	info += fmt.Sprintf("🚀 <b>CPUs:</b> %d | <b>Goroutines:</b> %d\n", runtime.NumCPU(), runtime.NumGoroutine())
	info += fmt.Sprintf("🖥️ <b>CPU:</b> %.2f%%\n", cpuPerc)

	if vm, err := mem.VirtualMemory(); err == nil {
		info += fmt.Sprintf("💾 <b>Memory:</b> %s / %s (%.2f%%)\n",
			humanBytes(vm.Used), humanBytes(vm.Total), vm.UsedPercent)
	}
	if du, err := disk.Usage("/"); err == nil {
		info += fmt.Sprintf("💽 <b>Disk:</b> %s / %s (%.2f%%)\n",
			humanBytes(du.Used), humanBytes(du.Total), du.UsedPercent)
	}

	info += fmt.Sprintf("\n🧩 <b>Active captchas:</b> %d\n", Captcha.ActiveSessions())
	info += fmt.Sprintf("🔗 <b>Active invites:</b> %d\n", Invites.ActiveInvites())
	info += fmt.Sprintf("👥 <b>Subscribers:</b> %d | <b>Admins:</b> %d\n",
		len(subscribers.Snapshot()), len(admins.Snapshot()))

	_, err := msg.Edit(info)
	return err
}

func humanBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

func init() {
	Mods.AddModule("Stats", `<b>Here are the commands available in Stats module:</b>

<code>/stats</code> - process and gate statistics (owner only)`)
}
