package projections

import (
	"context"
	"math"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	domainParticipant "qrcheckin/internal/domain/participant"
)

// UnassignedDistrict is the bucket for roster entries without a district.
// It sorts after every named district regardless of collation order.
const UnassignedDistrict = "미지정"

// MemberStatus is one roster entry's attendance flag inside a district group.
type MemberStatus struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	BaptismalName string `json:"baptismalName"`
	PhoneLast4    string `json:"phoneLast4"`
	Attended      bool   `json:"attended"`
}

// DistrictGroup aggregates one district's attendance.
type DistrictGroup struct {
	District string         `json:"district"`
	Total    int            `json:"total"`
	Attended int            `json:"attended"`
	Percent  int            `json:"percent"`
	Members  []MemberStatus `json:"members"`
}

// DistrictReport is the full per-district breakdown.
type DistrictReport struct {
	SessionID string          `json:"sessionId,omitempty"`
	Districts []DistrictGroup `json:"districts"`
}

// DistrictReportQuery selects the attendance scope. An empty SessionID
// reports over all recorded check-ins.
type DistrictReportQuery struct {
	SessionID string
}

// DistrictRosterStore lists the roster for grouping.
type DistrictRosterStore interface {
	List(ctx context.Context) ([]domainParticipant.Participant, error)
}

// AttendedIDsFunc returns the set of participant IDs with a check-in for the
// query scope. Injected so the projection stays free of record shapes.
type AttendedIDsFunc func(ctx context.Context, sessionID string) (map[string]bool, error)

// DistrictReportDeps holds dependencies for the district report.
type DistrictReportDeps struct {
	ParticipantStore DistrictRosterStore
	AttendedIDs      AttendedIDsFunc
}

// QueryDistrictReport groups the roster by district and marks who attended.
// Districts sort by Korean collation with the unassigned bucket last; members
// sort attended-first, then by collated name. Attendance for IDs not on the
// roster is ignored, so the per-district Attended counts sum to the size of
// the intersection of attended IDs with the roster.
//
// POST: Output is deterministic for identical inputs
func QueryDistrictReport(ctx context.Context, query DistrictReportQuery, deps DistrictReportDeps) (DistrictReport, error) {
	roster, err := deps.ParticipantStore.List(ctx)
	if err != nil {
		return DistrictReport{}, err
	}
	attended, err := deps.AttendedIDs(ctx, query.SessionID)
	if err != nil {
		return DistrictReport{}, err
	}
	return DistrictReport{
		SessionID: query.SessionID,
		Districts: buildDistrictGroups(roster, attended, collate.New(language.Korean)),
	}, nil
}

// buildDistrictGroups is the pure aggregation over a roster snapshot.
func buildDistrictGroups(roster []domainParticipant.Participant, attended map[string]bool, coll *collate.Collator) []DistrictGroup {
	byDistrict := make(map[string][]MemberStatus)
	for _, p := range roster {
		district := p.District
		if district == "" {
			district = UnassignedDistrict
		}
		byDistrict[district] = append(byDistrict[district], MemberStatus{
			ID:            p.ID,
			Name:          p.Name,
			BaptismalName: p.BaptismalName,
			PhoneLast4:    p.PhoneLast4,
			Attended:      attended[p.ID],
		})
	}

	names := make([]string, 0, len(byDistrict))
	for name := range byDistrict {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if names[i] == UnassignedDistrict {
			return false
		}
		if names[j] == UnassignedDistrict {
			return true
		}
		return coll.CompareString(names[i], names[j]) < 0
	})

	groups := make([]DistrictGroup, 0, len(names))
	for _, name := range names {
		members := byDistrict[name]
		sort.SliceStable(members, func(i, j int) bool {
			if members[i].Attended != members[j].Attended {
				return members[i].Attended
			}
			return coll.CompareString(members[i].Name, members[j].Name) < 0
		})
		count := 0
		for _, m := range members {
			if m.Attended {
				count++
			}
		}
		percent := 0
		if len(members) > 0 {
			percent = int(math.Round(float64(count) / float64(len(members)) * 100))
		}
		groups = append(groups, DistrictGroup{
			District: name,
			Total:    len(members),
			Attended: count,
			Percent:  percent,
			Members:  members,
		})
	}
	return groups
}
