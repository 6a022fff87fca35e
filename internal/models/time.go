package models

import "time"

// UnixTime is seconds since epoch.
type UnixTime uint64

func Now() UnixTime {
	return UnixTime(time.Now().Unix())
}

func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0)
}
