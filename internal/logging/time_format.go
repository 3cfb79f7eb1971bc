package logging

import "time"

// CI runners prefix their own dates, so console lines carry time of day only.
const consoleTimeLayout = "15:04:05.000"

func formatTimestamp(ts time.Time) string {
	return ts.Local().Format(consoleTimeLayout)
}
