package generator

import (
	"fmt"
	"strings"
	"time"
)

// footerTimeInfo formats the timestamp shown in each page footer. Source
// modification times come from the filesystem; listing pages use the build
// time instead.
func footerTimeInfo(ts time.Time, offsetHours int, source string) string {
	if ts.IsZero() {
		ts = time.Now().UTC()
		source = "Fallback"
	}

	zone := time.FixedZone(fmt.Sprintf("UTC%+d", offsetHours), offsetHours*3600)
	local := ts.In(zone)

	// Microseconds keep otherwise identical timestamps distinguishable;
	// trailing zeros are trimmed for readability.
	stamp := local.Format("2006-01-02 15:04:05.000000")
	stamp = strings.TrimRight(stamp, "0")
	stamp = strings.TrimRight(stamp, ".")

	return fmt.Sprintf("Page built: %s (UTC%+d - %s)", stamp, offsetHours, source)
}
