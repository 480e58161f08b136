package acis

import (
	"fmt"
	"regexp"
	"strconv"
)

// An ACIS SID is an identifier string plus an integer type code separated
// by a space, e.g. "13697 1".
var sidRegex = regexp.MustCompile(`^([^ ]*) (\d+)$`)

var sidTypes = map[int]string{
	1: "WBAN", 2: "COOP", 3: "FAA", 4: "WMO", 5: "ICAO",
	6: "GHCN", 7: "NWSLI", 8: "RCC", 9: "ThreadEx", 10: "CoCoRaHS",
}

// SidsTable decodes the list of SIDs from a site's metadata into a table of
// identifiers keyed by their type name.
func SidsTable(sids []string) (map[string]string, error) {
	table := make(map[string]string, len(sids))
	for _, sid := range sids {
		m := sidRegex.FindStringSubmatch(sid)
		if m == nil {
			return nil, fmt.Errorf("invalid SID: %q", sid)
		}
		code, _ := strconv.Atoi(m[2])
		name, ok := sidTypes[code]
		if !ok {
			return nil, fmt.Errorf("unknown SID type: %d", code)
		}
		table[name] = m[1]
	}
	return table, nil
}
