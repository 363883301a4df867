package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ts(hour, min int) time.Time {
	return time.Date(2026, 9, 1, hour, min, 0, 0, time.UTC)
}

func TestMeetingOverlaps(t *testing.T) {
	m := &Meeting{StartTime: ts(10, 0), EndTime: ts(11, 0)}

	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"cắt ngang nửa sau", ts(10, 30), ts(11, 30), true},
		{"cắt ngang nửa trước", ts(9, 30), ts(10, 30), true},
		{"trùng khít", ts(10, 0), ts(11, 0), true},
		{"nằm gọn bên trong", ts(10, 15), ts(10, 45), true},
		{"bao trùm toàn bộ", ts(9, 0), ts(12, 0), true},
		{"chạm biên cuối", ts(11, 0), ts(12, 0), true},
		{"chạm biên đầu", ts(9, 0), ts(10, 0), true},
		{"trước đó hẳn", ts(8, 0), ts(9, 59), false},
		{"sau đó hẳn", ts(11, 1), ts(12, 0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, m.Overlaps(tc.start, tc.end))
		})
	}
}

func TestMeetingStatus(t *testing.T) {
	assert.True(t, MeetingScheduled.Active())
	assert.True(t, MeetingOngoing.Active())
	assert.False(t, MeetingCompleted.Active())
	assert.False(t, MeetingCancelled.Active())

	assert.False(t, MeetingStatus("paused").Valid())

	assert.True(t, MeetingScheduled.CanTransitionTo(MeetingOngoing))
	assert.True(t, MeetingScheduled.CanTransitionTo(MeetingCancelled))
	assert.True(t, MeetingOngoing.CanTransitionTo(MeetingCompleted))
	assert.False(t, MeetingOngoing.CanTransitionTo(MeetingCancelled))
	assert.False(t, MeetingCompleted.CanTransitionTo(MeetingScheduled))
	assert.False(t, MeetingCancelled.CanTransitionTo(MeetingScheduled))
	// giữ nguyên trạng thái luôn hợp lệ
	assert.True(t, MeetingCompleted.CanTransitionTo(MeetingCompleted))
}
