package schedule

// Status is the per-slot power state published by the schedule feed.
// Hour slots carry all five values; after half-hour expansion only
// StatusYes, StatusNo and StatusMaybe remain.
type Status string

const (
	StatusYes    Status = "yes"    // power on for the whole slot
	StatusNo     Status = "no"     // power off for the whole slot
	StatusMaybe  Status = "maybe"  // uncertain
	StatusFirst  Status = "first"  // off the first 30 min, on the second
	StatusSecond Status = "second" // on the first 30 min, off the second
)

// Normalize maps a raw feed value onto the closed Status set. Anything
// unknown, including the empty string, becomes StatusMaybe.
func Normalize(raw string) Status {
	switch s := Status(raw); s {
	case StatusYes, StatusNo, StatusMaybe, StatusFirst, StatusSecond:
		return s
	default:
		return StatusMaybe
	}
}

// Halves splits an hour-level status into its two half-hour values.
// The transitional first/second keys resolve here, so everything
// downstream works on a uniform 48-slot day.
func (s Status) Halves() (Status, Status) {
	switch s {
	case StatusFirst:
		return StatusNo, StatusYes
	case StatusSecond:
		return StatusYes, StatusNo
	case StatusYes:
		return StatusYes, StatusYes
	case StatusNo:
		return StatusNo, StatusNo
	default:
		return StatusMaybe, StatusMaybe
	}
}

// IsOutage reports whether the slot contains any outage time. The
// transitional keys count as outages: part of the hour is off.
func (s Status) IsOutage() bool {
	return s == StatusNo || s == StatusFirst || s == StatusSecond
}

// IsNo reports a full outage slot.
func (s Status) IsNo() bool { return s == StatusNo }

// IsMaybe reports an uncertain slot.
func (s Status) IsMaybe() bool { return s == StatusMaybe }

// Level returns the plotting ordinal for the status: no=0, maybe=1,
// yes=2. Values outside the closed set rank with maybe.
func (s Status) Level() int {
	switch s {
	case StatusNo:
		return 0
	case StatusYes:
		return 2
	default:
		return 1
	}
}
