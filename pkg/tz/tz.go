package tz

import "time"

// WordPressLayout is the layout of local dates in WordPress REST payloads.
const WordPressLayout = "2006-01-02 15:04:05"

// Amsterdam is the Europe/Amsterdam location (CET/CEST with automatic DST),
// the timezone the remote WordPress site reports local dates in.
var Amsterdam *time.Location

func init() {
	var err error
	Amsterdam, err = time.LoadLocation("Europe/Amsterdam")
	if err != nil {
		panic("tz: load Europe/Amsterdam: " + err.Error())
	}
}

// ParseSiteLocal parses a WordPress local date as Amsterdam wall-clock time.
func ParseSiteLocal(value string) (time.Time, error) {
	return time.ParseInLocation(WordPressLayout, value, Amsterdam)
}

// ParseUTC parses a WordPress utc_* date.
func ParseUTC(value string) (time.Time, error) {
	return time.ParseInLocation(WordPressLayout, value, time.UTC)
}
