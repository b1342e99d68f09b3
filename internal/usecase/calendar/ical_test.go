package calendar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twgdev/sigma-scheduler/internal/domain/entities"
)

func TestExportICal(t *testing.T) {
	m := meetingAt("1", "2025-11-03", "10:00", "Acme Corp")
	m.Partner = "Jane Roe"
	m.Location = "Booth 12"
	m.Agenda = "Contract review"

	tentative := meetingAt("2", "2025-11-04", "14:00", "Globex")
	tentative.Status = entities.MeetingStatusNotConfirmed

	out, err := ExportICal(entities.DefaultEventID, []*entities.Meeting{m, tentative})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.Contains(t, out, "UID:1@sigma-rome-2025")
	assert.Contains(t, out, "SUMMARY:Acme Corp / Jane Roe")
	assert.Contains(t, out, "DTSTART:20251103T100000")
	assert.Contains(t, out, "DTEND:20251103T103000")
	assert.Contains(t, out, "LOCATION:Booth 12")
	assert.Contains(t, out, "DESCRIPTION:Contract review")
	assert.Contains(t, out, "STATUS:CONFIRMED")
	assert.Contains(t, out, "STATUS:TENTATIVE")
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
}

func TestExportICalEmpty(t *testing.T) {
	out, err := ExportICal(entities.DefaultEventID, nil)
	require.NoError(t, err)
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.NotContains(t, out, "BEGIN:VEVENT")
}

func TestExportICalBadSlot(t *testing.T) {
	broken := meetingAt("9", "not-a-date", "10:00", "Acme Corp")
	_, err := ExportICal(entities.DefaultEventID, []*entities.Meeting{broken})
	assert.Error(t, err)
}
