package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twgdev/sigma-scheduler/internal/domain/entities"
)

func meetingAt(id, date, slot, company string) *entities.Meeting {
	return &entities.Meeting{
		ID:          id,
		EventID:     entities.DefaultEventID,
		Date:        date,
		TimeSlot:    slot,
		Status:      entities.MeetingStatusConfirmed,
		CompanyName: company,
	}
}

func TestBuildDayGridUnfiltered(t *testing.T) {
	meetings := []*entities.Meeting{
		meetingAt("1", "2025-11-03", "10:00", "Acme Corp"),
		meetingAt("2", "2025-11-03", "14:30", "Globex"),
		meetingAt("3", "2025-11-04", "10:00", "Initech"),
	}

	grid := BuildDayGrid(meetings, "2025-11-03", "")

	assert.Equal(t, "2025-11-03", grid.Date)
	assert.Equal(t, "Nov 3 (Mon)", grid.DateDisplay)
	require.Len(t, grid.Slots, 12, "every half-hour bucket from 10:00 to 15:30 is present")

	assert.Equal(t, "10:00", grid.Slots[0].TimeSlot)
	require.NotNil(t, grid.Slots[0].Meeting)
	assert.Equal(t, "Acme Corp", grid.Slots[0].Meeting.CompanyName)

	assert.Equal(t, "15:30", grid.Slots[len(grid.Slots)-1].TimeSlot)
	assert.Nil(t, grid.Slots[1].Meeting, "free slots carry no meeting")

	// The other day's meeting never appears on this grid
	for _, slot := range grid.Slots {
		if slot.Meeting != nil {
			assert.NotEqual(t, "3", slot.Meeting.ID)
		}
	}
}

func TestBuildDayGridDuplicateSlotFirstWins(t *testing.T) {
	meetings := []*entities.Meeting{
		meetingAt("1", "2025-11-03", "10:00", "Acme Corp"),
		meetingAt("2", "2025-11-03", "10:00", "Globex"),
	}

	grid := BuildDayGrid(meetings, "2025-11-03", "")

	require.Len(t, grid.Slots, 12)
	require.NotNil(t, grid.Slots[0].Meeting)
	assert.Equal(t, "1", grid.Slots[0].Meeting.ID, "duplicate slot never doubles a row")
}

func TestBuildDayGridFilterHidesEmptyAndUnmatchedSlots(t *testing.T) {
	meetings := []*entities.Meeting{
		meetingAt("1", "2025-11-03", "10:00", "Acme Corp"),
		meetingAt("2", "2025-11-03", "14:30", "Globex"),
	}

	grid := BuildDayGrid(meetings, "2025-11-03", "acme")

	require.Len(t, grid.Slots, 1)
	assert.Equal(t, "10:00", grid.Slots[0].TimeSlot)
	assert.Equal(t, "Acme Corp", grid.Slots[0].Meeting.CompanyName)
}

func TestBuildDayGridFilterNoMatches(t *testing.T) {
	meetings := []*entities.Meeting{
		meetingAt("1", "2025-11-03", "10:00", "Acme Corp"),
	}

	grid := BuildDayGrid(meetings, "2025-11-03", "no such company")
	assert.Empty(t, grid.Slots)
}

func TestFilterMeetings(t *testing.T) {
	meetings := []*entities.Meeting{
		meetingAt("1", "2025-11-03", "10:00", "Acme Corp"),
		meetingAt("2", "2025-11-03", "10:30", "Globex"),
	}
	meetings[1].Partner = "Alice Cooper"

	assert.Len(t, FilterMeetings(meetings, ""), 2)
	assert.Len(t, FilterMeetings(meetings, "ACME"), 1)

	byPartner := FilterMeetings(meetings, "cooper")
	require.Len(t, byPartner, 1)
	assert.Equal(t, "2", byPartner[0].ID)

	assert.Empty(t, FilterMeetings(meetings, "umbrella"))
}
