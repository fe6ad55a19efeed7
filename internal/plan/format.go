package plan

import (
	"fmt"
	"time"
)

// FormatVolume renders a distance volume: meters below one kilometer, then
// kilometers with one decimal ("950 m", "1.0 km").
func FormatVolume(meters float64) string {
	if meters < 0 {
		meters = 0
	}
	if meters < 1000 {
		return fmt.Sprintf("%.0f m", meters)
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}

// NoVolume reports whether a formatted volume string represents an empty
// session, so display code can suppress it.
func NoVolume(v string) bool {
	return v == "0 m" || v == "0.0 km"
}

// Summary is the short human-readable rendering of a session's totals.
// Volume is empty when the session has no planned distance.
type Summary struct {
	Date   string `json:"date"`
	Series string `json:"series"`
	Blocks string `json:"blocks"`
	Volume string `json:"volume,omitempty"`
}

// Summarize renders a session's date and aggregated totals for list displays.
func Summarize(date time.Time, series []Series) Summary {
	t := ComputeTotals(series)

	sum := Summary{
		Date:   date.Format("02/01/2006"),
		Series: fmt.Sprintf("%d %s", t.SeriesCount, plural(t.SeriesCount, "série", "séries")),
		Blocks: fmt.Sprintf("%d %s", t.BlockCount, plural(t.BlockCount, "bloc", "blocs")),
	}
	if v := FormatVolume(t.VolumeMeters); !NoVolume(v) {
		sum.Volume = v
	}
	return sum
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
