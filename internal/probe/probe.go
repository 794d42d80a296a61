package probe

import (
	"log"
	"time"

	probing "github.com/prometheus-community/pro-bing"
)

// Reachable sends ICMP pings to the schedule source host and reports
// whether any reply came back. It distinguishes "the source is down"
// from "the source is up but refused us" after a transport failure.
func Reachable(host string) bool {
	pinger, err := probing.NewPinger(host)
	if err != nil {
		log.Printf("[probe] failed to create pinger for %s: %v", host, err)
		return false
	}
	pinger.Count = 3
	pinger.Timeout = 5 * time.Second
	pinger.SetPrivileged(true)
	if err := pinger.Run(); err != nil {
		return false
	}
	return pinger.Statistics().PacketsRecv > 0
}
