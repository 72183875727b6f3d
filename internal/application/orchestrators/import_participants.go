package orchestrators

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	domainParticipant "qrcheckin/internal/domain/participant"
)

// ImportParticipantsInput carries a CSV roster upload. Columns are
// name, phone, baptismalName, district; a first row carrying the known
// header labels is skipped.
type ImportParticipantsInput struct {
	Reader     io.Reader
	ReplaceAll bool
}

// ImportParticipantsStore is the participant surface needed by the import.
type ImportParticipantsStore interface {
	GetByNameAndPhoneHash(ctx context.Context, name, phoneHash string) (domainParticipant.Participant, error)
	Save(ctx context.Context, p domainParticipant.Participant) error
	DeleteAll(ctx context.Context) error
}

// ImportParticipantsDeps holds dependencies for ImportParticipants.
type ImportParticipantsDeps struct {
	ParticipantStore ImportParticipantsStore
	HashPhone        domainParticipant.HashFunc
	GenerateID       func() string
	Now              func() time.Time
}

// ImportParticipantsResult summarizes one import run.
type ImportParticipantsResult struct {
	TotalRows int `json:"totalRows"`
	Inserted  int `json:"inserted"`
	Skipped   int `json:"skipped"`
}

// ExecuteImportParticipants loads a CSV roster. Rows that fail validation or
// duplicate an existing entry (same name and phone hash, in the file or the
// store) are skipped, never aborting the run. With ReplaceAll the existing
// roster is cleared first, so dedupe runs only within the file.
//
// POST: TotalRows == Inserted + Skipped
func ExecuteImportParticipants(ctx context.Context, input ImportParticipantsInput, deps ImportParticipantsDeps) (ImportParticipantsResult, error) {
	if input.ReplaceAll {
		if err := deps.ParticipantStore.DeleteAll(ctx); err != nil {
			return ImportParticipantsResult{}, err
		}
	}

	r := csv.NewReader(input.Reader)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var result ImportParticipantsResult
	seen := make(map[string]bool) // name + "|" + phoneHash within this file
	first := true
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row, count and move on.
			result.TotalRows++
			result.Skipped++
			first = false
			continue
		}
		name, phone, baptismal, district := column(row, 0), column(row, 1), column(row, 2), column(row, 3)
		if first {
			first = false
			if isHeaderRow(name) {
				continue
			}
		}
		result.TotalRows++

		p, err := domainParticipant.New(deps.GenerateID(), name, phone, baptismal, district, deps.HashPhone)
		if err != nil {
			result.Skipped++
			continue
		}
		key := p.Name + "|" + p.PhoneHash
		if seen[key] {
			result.Skipped++
			continue
		}
		if !input.ReplaceAll {
			_, err := deps.ParticipantStore.GetByNameAndPhoneHash(ctx, p.Name, p.PhoneHash)
			if err == nil {
				result.Skipped++
				seen[key] = true
				continue
			}
			if !errors.Is(err, domainParticipant.ErrNotFound) {
				return ImportParticipantsResult{}, err
			}
		}
		p.CreatedAt = deps.Now().UTC().Format(time.RFC3339)
		if err := deps.ParticipantStore.Save(ctx, p); err != nil {
			return ImportParticipantsResult{}, err
		}
		seen[key] = true
		result.Inserted++
	}

	slog.Info("participant_event", "event", "roster_imported",
		"total", result.TotalRows, "inserted", result.Inserted,
		"skipped", result.Skipped, "replace_all", input.ReplaceAll)

	return result, nil
}

// isHeaderRow reports whether a first row is the column header. Only the known
// name labels count; a malformed first data row still reaches the totals.
func isHeaderRow(name string) bool {
	switch strings.ToUpper(name) {
	case "이름", "NAME":
		return true
	}
	return false
}

func column(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
