package projections

import (
	"context"
	"reflect"
	"testing"

	domainParticipant "qrcheckin/internal/domain/participant"
	"qrcheckin/internal/hashing"
)

type fixedRoster []domainParticipant.Participant

func (f fixedRoster) List(_ context.Context) ([]domainParticipant.Participant, error) {
	return f, nil
}

func member(t *testing.T, id, name, district string) domainParticipant.Participant {
	t.Helper()
	hasher := hashing.New("test-salt")
	p, err := domainParticipant.New(id, name, "010-1234-5678", "", district, hasher.Sum)
	if err != nil {
		t.Fatalf("fixture %q: %v", name, err)
	}
	return p
}

func attendedSet(ids ...string) AttendedIDsFunc {
	return func(_ context.Context, _ string) (map[string]bool, error) {
		set := make(map[string]bool, len(ids))
		for _, id := range ids {
			set[id] = true
		}
		return set, nil
	}
}

func TestQueryDistrictReport(t *testing.T) {
	ctx := context.Background()

	t.Run("groups by district with unassigned last", func(t *testing.T) {
		roster := fixedRoster{
			member(t, "p1", "김철수", "나구역"),
			member(t, "p2", "김영희", ""),
			member(t, "p3", "박민수", "가구역"),
		}
		report, err := QueryDistrictReport(ctx, DistrictReportQuery{}, DistrictReportDeps{
			ParticipantStore: roster,
			AttendedIDs:      attendedSet(),
		})
		if err != nil {
			t.Fatalf("QueryDistrictReport: %v", err)
		}
		var order []string
		for _, g := range report.Districts {
			order = append(order, g.District)
		}
		want := []string{"가구역", "나구역", UnassignedDistrict}
		if !reflect.DeepEqual(order, want) {
			t.Errorf("district order %v, want %v", order, want)
		}
	})

	t.Run("attended counts and rounding", func(t *testing.T) {
		roster := fixedRoster{
			member(t, "p1", "김철수", "1구역"),
			member(t, "p2", "김영희", "1구역"),
			member(t, "p3", "박민수", "1구역"),
		}
		report, err := QueryDistrictReport(ctx, DistrictReportQuery{SessionID: "s1"}, DistrictReportDeps{
			ParticipantStore: roster,
			AttendedIDs:      attendedSet("p1", "p3"),
		})
		if err != nil {
			t.Fatalf("QueryDistrictReport: %v", err)
		}
		g := report.Districts[0]
		if g.Total != 3 || g.Attended != 2 {
			t.Errorf("got total=%d attended=%d", g.Total, g.Attended)
		}
		if g.Percent != 67 {
			t.Errorf("percent %d, want 67 (2/3 rounded)", g.Percent)
		}
	})

	t.Run("members sort attended first then by name", func(t *testing.T) {
		roster := fixedRoster{
			member(t, "p1", "홍길동", "1구역"),
			member(t, "p2", "김영희", "1구역"),
			member(t, "p3", "박민수", "1구역"),
		}
		report, err := QueryDistrictReport(ctx, DistrictReportQuery{}, DistrictReportDeps{
			ParticipantStore: roster,
			AttendedIDs:      attendedSet("p1"),
		})
		if err != nil {
			t.Fatalf("QueryDistrictReport: %v", err)
		}
		members := report.Districts[0].Members
		var names []string
		for _, m := range members {
			names = append(names, m.Name)
		}
		want := []string{"홍길동", "김영희", "박민수"}
		if !reflect.DeepEqual(names, want) {
			t.Errorf("member order %v, want %v", names, want)
		}
	})

	t.Run("attendance off the roster is ignored", func(t *testing.T) {
		roster := fixedRoster{
			member(t, "p1", "김철수", "1구역"),
		}
		report, err := QueryDistrictReport(ctx, DistrictReportQuery{}, DistrictReportDeps{
			ParticipantStore: roster,
			AttendedIDs:      attendedSet("p1", "ghost"),
		})
		if err != nil {
			t.Fatalf("QueryDistrictReport: %v", err)
		}
		sum := 0
		for _, g := range report.Districts {
			sum += g.Attended
		}
		if sum != 1 {
			t.Errorf("attended sum %d, want 1 (ghost id excluded)", sum)
		}
	})

	t.Run("empty district has zero percent", func(t *testing.T) {
		report, err := QueryDistrictReport(ctx, DistrictReportQuery{}, DistrictReportDeps{
			ParticipantStore: fixedRoster{},
			AttendedIDs:      attendedSet(),
		})
		if err != nil {
			t.Fatalf("QueryDistrictReport: %v", err)
		}
		if len(report.Districts) != 0 {
			t.Errorf("got %d districts for empty roster", len(report.Districts))
		}
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		roster := fixedRoster{
			member(t, "p1", "김철수", "2구역"),
			member(t, "p2", "김영희", "1구역"),
			member(t, "p3", "박민수", ""),
			member(t, "p4", "이영수", "1구역"),
		}
		deps := DistrictReportDeps{ParticipantStore: roster, AttendedIDs: attendedSet("p2", "p3")}
		first, err := QueryDistrictReport(ctx, DistrictReportQuery{}, deps)
		if err != nil {
			t.Fatalf("QueryDistrictReport: %v", err)
		}
		for i := 0; i < 5; i++ {
			again, err := QueryDistrictReport(ctx, DistrictReportQuery{}, deps)
			if err != nil {
				t.Fatalf("QueryDistrictReport: %v", err)
			}
			if !reflect.DeepEqual(first, again) {
				t.Fatalf("report differs between calls:\n%+v\n%+v", first, again)
			}
		}
	})
}
