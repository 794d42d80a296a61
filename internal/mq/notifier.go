package mq

import (
	"context"
	"log"
	"sort"
	"time"

	"svitlo-board/internal/schedule"
	"svitlo-board/internal/snapshot"
)

// ScheduleNotifier implements snapshot.Notifier by publishing to RabbitMQ.
type ScheduleNotifier struct {
	pub           *Publisher
	overlapGroups []string
}

// NewScheduleNotifier creates a notifier that publishes applied snapshots
// to RabbitMQ. overlapGroups selects the groups watched for simultaneous
// outages.
func NewScheduleNotifier(pub *Publisher, overlapGroups []string) *ScheduleNotifier {
	return &ScheduleNotifier{pub: pub, overlapGroups: overlapGroups}
}

// SnapshotUpdated publishes a schedule.updated message for the new day,
// plus an overlap.alert when the watched groups go dark at the same time.
// Snapshots without data for today publish nothing.
func (n *ScheduleNotifier) SnapshotUpdated(region string, snap *snapshot.RegionSnapshot) {
	day := snap.TodayData()
	if day == nil {
		log.Printf("[mq] skipping publish for %s: no data for today", region)
		return
	}

	groups := make([]string, 0, len(day))
	for g := range day {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	msg := ScheduleUpdatedMsg{
		Region:      region,
		Date:        snap.TodayKey(),
		LastUpdated: snap.LastUpdated,
		FactUpdate:  snap.Fact.Update,
		Groups:      groups,
		When:        time.Now(),
	}
	if err := n.pub.Publish(context.Background(), RoutingScheduleUpdated, msg); err != nil {
		log.Printf("[mq] failed to publish schedule update for %s: %v", region, err)
	}

	points := schedule.BuildTimeline(day, nil, n.overlapGroups)
	intervals := schedule.FormatIntervals(schedule.ExtractIntervals(points, schedule.OverlapOff))
	if len(intervals) == 0 {
		return
	}
	alert := OverlapAlertMsg{
		Region:    region,
		Date:      snap.TodayKey(),
		Groups:    n.overlapGroups,
		Intervals: intervals,
		When:      time.Now(),
	}
	if err := n.pub.Publish(context.Background(), RoutingOverlapAlert, alert); err != nil {
		log.Printf("[mq] failed to publish overlap alert for %s: %v", region, err)
	}
}
